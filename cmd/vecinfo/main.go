package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vecgeom/internal/config"
	"vecgeom/internal/scene"
)

func main() {
	renderDir := flag.String("render", "", "Also render each scene as WebP into this directory")
	asJSON := flag.Bool("json", false, "Print evaluated values as JSON")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: vecinfo [-render DIR] [-json] scene.yaml ...")
		os.Exit(1)
	}

	// View defaults shared with the batch tool.
	var cfg config.Config
	cfg.Resolve(config.Flags{})
	fallback := scene.View{
		AzimuthDeg:   cfg.AzimuthDeg,
		ElevationDeg: cfg.ElevationDeg,
		Size:         cfg.Size,
		Scale:        cfg.ScalePx,
	}

	exit := 0
	for _, arg := range flag.Args() {
		s, err := scene.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit = 1
			continue
		}

		vals := s.Evaluate()

		if *asJSON {
			data, err := json.MarshalIndent(vals, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exit = 1
				continue
			}
			fmt.Println(string(data))
		} else {
			title := arg
			if s.Name != "" {
				title = fmt.Sprintf("%s (%s)", arg, s.Name)
			}
			fmt.Printf("\n=== %s ===\n", title)
			for _, v := range vals {
				printValue(v)
			}
		}

		if *renderDir != "" {
			if err := os.MkdirAll(*renderDir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exit = 1
				continue
			}
			stem := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
			out := filepath.Join(*renderDir, stem+".webp")
			if err := scene.Render(s, fallback, cfg.Supersample, out); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exit = 1
				continue
			}
			fmt.Printf("Rendered %s\n", out)
		}
	}
	os.Exit(exit)
}

func printValue(v scene.Value) {
	switch {
	case v.Error != "":
		fmt.Printf("  %-28s ! %s\n", v.Label, v.Error)
	case v.Kind == scene.KindScalar:
		fmt.Printf("  %-28s = %.6g\n", v.Label, v.Scalar)
	case v.Kind == scene.KindAngles:
		fmt.Printf("  %-28s = [%.6g %.6g %.6g] rad\n", v.Label, v.Vec[0], v.Vec[1], v.Vec[2])
	default:
		fmt.Printf("  %-28s = [%.6g %.6g %.6g]\n", v.Label, v.Vec[0], v.Vec[1], v.Vec[2])
	}
}
