package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"vecgeom/internal/plot"
	"vecgeom/internal/stl"
	"vecgeom/vec3"
)

const supersample = 2

func main() {
	renderDir := flag.String("render", "", "Also render each mesh as WebP into this directory")
	size := flag.Int("size", 640, "Rendered image size in pixels")
	azDeg := flag.Float64("az", 45, "View azimuth in degrees")
	elDeg := flag.Float64("el", 30, "View elevation in degrees")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo [-render DIR] [-size N] [-az DEG] [-el DEG] mesh.stl ...")
		os.Exit(1)
	}

	exit := 0
	for _, arg := range flag.Args() {
		m, err := stl.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit = 1
			continue
		}

		rep := stl.Analyze(m)
		name := m.Name
		if name == "" {
			name = filepath.Base(arg)
		}
		fmt.Printf("\n=== %s (facets=%d) ===\n", name, rep.Facets)
		fmt.Printf("  surface area : %.6g\n", rep.TotalArea)
		fmt.Printf("  bounds min   : [%.6g %.6g %.6g]\n", rep.Min[0], rep.Min[1], rep.Min[2])
		fmt.Printf("  bounds max   : [%.6g %.6g %.6g]\n", rep.Max[0], rep.Max[1], rep.Max[2])
		if rep.Facets > len(rep.Degenerate) {
			fmt.Printf("  corner angles: %.2f..%.2f deg\n", deg(rep.MinAngle), deg(rep.MaxAngle))
			fmt.Printf("  normal drift : %.3f deg\n", deg(rep.NormalDev))
		}
		if len(rep.Degenerate) > 0 {
			fmt.Printf("  degenerate   : %d facets\n", len(rep.Degenerate))
		}
		if rep.ZeroNormals > 0 {
			fmt.Printf("  zero normals : %d facets\n", rep.ZeroNormals)
		}

		if *renderDir != "" {
			out, err := render(m, rep, *renderDir, arg, *size, *azDeg, *elDeg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exit = 1
				continue
			}
			fmt.Printf("Rendered %s\n", out)
		}
	}
	os.Exit(exit)
}

func render(m *stl.Mesh, rep stl.Report, dir, src string, size int, azDeg, elDeg float64) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	rs := size * supersample
	scale, center := plot.Fit(rep.Min, rep.Max, rs)
	centered := m.Translate(center.Scale(-1))

	c := plot.NewCanvas(rs, rs, color.NRGBA{R: 16, G: 18, B: 24, A: 255})
	cam := plot.NewCamera(azDeg*math.Pi/180, elDeg*math.Pi/180, scale, rs, rs)
	plot.RenderMesh(c, cam, centered, color.NRGBA{R: 225, G: 225, B: 230, A: 255}, vec3.Vec3{1, 0.6, 1.8})

	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	out := filepath.Join(dir, stem+".webp")
	return out, plot.WriteWebP(out, plot.Downsample(c.Img, size))
}

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
