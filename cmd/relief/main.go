package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"vecgeom/internal/heightmap"
	"vecgeom/internal/plot"
	"vecgeom/internal/stl"
	"vecgeom/vec3"
)

const supersample = 2

func main() {
	cell := flag.Float64("cell", 1, "Horizontal spacing between samples")
	zscale := flag.Float64("zscale", 40, "Height of a full-intensity pixel")
	maxDim := flag.Int("maxdim", 512, "Downsample so the larger grid dimension fits this; 0 keeps full size")
	renderDir := flag.String("render", "", "Also render each field as shaded relief WebP into this directory")
	size := flag.Int("size", 640, "Rendered image size in pixels")
	azDeg := flag.Float64("az", 225, "View azimuth in degrees")
	elDeg := flag.Float64("el", 40, "View elevation in degrees")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: relief [-cell F] [-zscale F] [-maxdim N] [-render DIR] heightmap.png ...")
		os.Exit(1)
	}

	ctx := context.Background()
	exit := 0
	for _, arg := range flag.Args() {
		if err := report(ctx, arg, *cell, *zscale, *maxDim, *renderDir, *size, *azDeg, *elDeg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func report(ctx context.Context, path string, cell, zscale float64, maxDim int, renderDir string, size int, azDeg, elDeg float64) error {
	f, err := heightmap.Load(path, heightmap.Options{Cell: cell, ZScale: zscale, MaxDim: maxDim})
	if err != nil {
		return err
	}

	tr, err := f.Derive(ctx)
	if err != nil {
		return err
	}
	area, err := f.SurfaceArea(ctx)
	if err != nil {
		return err
	}

	maxSlope, meanSlope, steepest := 0.0, 0.0, 0
	for i, s := range tr.Slope {
		if s > maxSlope {
			maxSlope, steepest = s, i
		}
		meanSlope += s
	}
	if len(tr.Slope) > 0 {
		meanSlope /= float64(len(tr.Slope))
	}

	planar := float64(f.W-1) * float64(f.H-1) * f.Cell * f.Cell

	fmt.Printf("\n=== %s (%dx%d, cell=%.6g) ===\n", filepath.Base(path), f.W, f.H, f.Cell)
	fmt.Printf("  surface area : %.6g\n", area)
	if planar > 0 {
		fmt.Printf("  planar area  : %.6g (relief factor %.4f)\n", planar, area/planar)
	}
	fmt.Printf("  slope        : mean %.2f deg, max %.2f deg\n", deg(meanSlope), deg(maxSlope))
	if maxSlope > 0 {
		fmt.Printf("  steepest     : sample (%d, %d), downhill heading %.1f deg\n",
			steepest%f.W, steepest/f.W, deg(tr.Aspect[steepest]))
	}

	if renderDir == "" {
		return nil
	}
	if err := os.MkdirAll(renderDir, 0755); err != nil {
		return err
	}

	m := f.Mesh()
	rep := stl.Analyze(m)
	rs := size * supersample
	scale, center := plot.Fit(rep.Min, rep.Max, rs)

	c := plot.NewCanvas(rs, rs, color.NRGBA{R: 12, G: 14, B: 18, A: 255})
	cam := plot.NewCamera(azDeg*math.Pi/180, elDeg*math.Pi/180, scale, rs, rs)
	plot.RenderMesh(c, cam, m.Translate(center.Scale(-1)), color.NRGBA{R: 200, G: 210, B: 190, A: 255}, vec3.Vec3{-1, -0.5, 1.6})

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(renderDir, stem+".webp")
	if err := plot.WriteWebP(out, plot.Downsample(c.Img, size)); err != nil {
		return err
	}
	fmt.Printf("Rendered %s\n", out)
	return nil
}

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
