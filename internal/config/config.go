package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and run settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	SceneDir  string `json:"scene_dir"`
	OutputDir string `json:"output_dir"`
	Manifest  string `json:"manifest"`

	// View settings used when a scene does not carry its own view.
	Size         int     `json:"size"`
	Supersample  int     `json:"supersample"`
	ScalePx      float64 `json:"scale_px"`
	AzimuthDeg   float64 `json:"azimuth_deg"`
	ElevationDeg float64 `json:"elevation_deg"`

	// Run settings
	Workers     int  `json:"workers"`
	Incremental bool `json:"incremental"`
	Verbose     bool `json:"verbose"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir    string
	OutputDir   string
	Size        int
	Workers     int
	Incremental bool
	Verbose     bool
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.Size = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Incremental {
		c.Incremental = true
	}
	if flags.Verbose {
		c.Verbose = true
	}

	// Auto-detect base dir if still empty
	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.SceneDir == "" {
			c.SceneDir = filepath.Join(c.BaseDir, "scenes")
		} else if !filepath.IsAbs(c.SceneDir) {
			c.SceneDir = filepath.Join(c.BaseDir, c.SceneDir)
		}

		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "renders")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}
	if c.SceneDir == "" {
		c.SceneDir = "scenes"
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Manifest == "" {
		c.Manifest = filepath.Join(c.OutputDir, "manifest.json")
	} else if !filepath.IsAbs(c.Manifest) && c.BaseDir != "" {
		c.Manifest = filepath.Join(c.BaseDir, c.Manifest)
	}

	// Defaults for view settings
	if c.Size <= 0 {
		c.Size = 640
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.ScalePx <= 0 {
		c.ScalePx = 48
	}
	if c.AzimuthDeg == 0 {
		c.AzimuthDeg = 45
	}
	if c.ElevationDeg == 0 {
		c.ElevationDeg = 30
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if _, err := os.Stat(filepath.Join(base, "scenes")); err == nil {
				return base
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "scenes")); err == nil {
		return cwd
	}

	return ""
}
