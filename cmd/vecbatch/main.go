package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"vecgeom/internal/batch"
	"vecgeom/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneDir := flag.String("scenes", "", "Scene directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	size := flag.Int("size", 0, "Image size in pixels (default: 640)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Process only first N scenes for testing")
	incremental := flag.Bool("incremental", false, "Skip scenes unchanged since the last manifest")
	verbose := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SceneDir:    *sceneDir,
		OutputDir:   *outputDir,
		Size:        *size,
		Workers:     *workers,
		Incremental: *incremental,
		Verbose:     *verbose,
	})

	logger := buildLogger(cfg.Verbose)
	defer logger.Sync()

	docs, err := batch.Discover(cfg.SceneDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning scenes: %v\n", err)
		os.Exit(1)
	}

	if *testN > 0 && *testN < len(docs) {
		docs = docs[:*testN]
	}

	if len(docs) == 0 {
		fmt.Println("No scene documents to process.")
		os.Exit(0)
	}

	var previous *batch.Manifest
	if cfg.Incremental {
		previous, err = batch.ReadManifest(cfg.Manifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: previous manifest: %v\n", err)
		}
	}

	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}
	fmt.Printf("Vector scene batch renderer%s\n", mode)
	fmt.Printf("Scenes: %d, Workers: %d\n", len(docs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	entries := batch.Run(batch.Config{
		SceneDir:     cfg.SceneDir,
		OutputDir:    cfg.OutputDir,
		Size:         cfg.Size,
		Supersample:  cfg.Supersample,
		ScalePx:      cfg.ScalePx,
		AzimuthDeg:   cfg.AzimuthDeg,
		ElevationDeg: cfg.ElevationDeg,
		Workers:      cfg.Workers,
		Incremental:  cfg.Incremental,
		Previous:     previous,
		Log:          logger,
	}, docs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	rendered, skipped := 0, 0
	var failures []batch.Entry
	for _, e := range entries {
		switch {
		case e.Error != "":
			failures = append(failures, e)
		case e.Skipped:
			skipped++
		default:
			rendered++
		}
	}

	fmt.Printf("Rendered: %d/%d", rendered, len(docs))
	if skipped > 0 {
		fmt.Printf(" (skipped %d unchanged)", skipped)
	}
	fmt.Println()

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, e := range failures[:limit] {
			fmt.Printf("  %s: %s\n", e.Scene, e.Error)
		}
	}

	// Write manifest
	if err := batch.NewManifest(entries).Write(cfg.Manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", cfg.Manifest)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}

func buildLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
