// Package batch evaluates and renders collections of scene documents with
// a worker pool, writing a JSON manifest of results.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"vecgeom/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	SceneDir  string
	OutputDir string

	// Fallback view for documents without their own view block.
	Size         int
	Supersample  int
	ScalePx      float64
	AzimuthDeg   float64
	ElevationDeg float64

	Workers     int
	Incremental bool
	Previous    *Manifest // last run's manifest, may be nil
	Log         *zap.Logger
}

// Discover lists the scene documents (.yaml, .yml) in dir.
func Discover(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}

	var docs []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			docs = append(docs, e.Name())
		}
	}
	return docs, nil
}

// Run processes all documents using a worker pool.
func Run(cfg Config, docs []string) []Entry {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	total := len(docs)
	results := make([]Entry, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	docChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range docChan {
				results[idx] = processScene(cfg, docs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range docs {
		docChan <- i
	}
	close(docChan)

	wg.Wait()
	close(done)

	cfg.Log.Info("run complete",
		zap.Int("scenes", total),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

func processScene(cfg Config, name string) Entry {
	path := filepath.Join(cfg.SceneDir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return Entry{Scene: name, Error: err.Error()}
	}
	digest := fmt.Sprintf("%016x", xxhash.Sum64(raw))

	if cfg.Incremental && cfg.Previous != nil {
		if prev, ok := cfg.Previous.Lookup(name); ok && prev.Error == "" && prev.Digest == digest {
			cfg.Log.Debug("unchanged, skipping", zap.String("scene", name))
			prev.Skipped = true
			return prev
		}
	}

	s, err := scene.Load(path)
	if err != nil {
		return Entry{Scene: name, Digest: digest, Error: err.Error()}
	}

	e := Entry{
		Scene:  name,
		Name:   s.Name,
		Digest: digest,
		Values: s.Evaluate(),
	}

	image := strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
	outPath := filepath.Join(cfg.OutputDir, image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		e.Error = err.Error()
		return e
	}

	fallback := scene.View{
		AzimuthDeg:   cfg.AzimuthDeg,
		ElevationDeg: cfg.ElevationDeg,
		Size:         cfg.Size,
		Scale:        cfg.ScalePx,
	}
	if err := scene.Render(s, fallback, cfg.Supersample, outPath); err != nil {
		e.Error = err.Error()
		return e
	}
	e.Image = image

	cfg.Log.Debug("rendered",
		zap.String("scene", name),
		zap.Int("values", len(e.Values)))
	return e
}
