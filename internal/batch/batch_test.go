package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vecgeom/internal/scene"
)

const goodDoc = `
name: pair
vectors:
  a: [3, 4]
  b: [1, 0, 0]
measure:
  - op: length
    args: [a]
  - op: dot
    args: [a, b]
`

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b.yml", goodDoc)
	writeDoc(t, dir, "a.yaml", goodDoc)
	writeDoc(t, dir, "notes.txt", "not a scene")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	docs, err := Discover(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.yaml", "b.yml"}, docs)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "batch: scan")
}

func testConfig(sceneDir, outDir string) Config {
	return Config{
		SceneDir:     sceneDir,
		OutputDir:    outDir,
		Size:         64,
		ScalePx:      6,
		AzimuthDeg:   40,
		ElevationDeg: 25,
		Workers:      2,
	}
}

func TestRun(t *testing.T) {
	sceneDir, outDir := t.TempDir(), t.TempDir()
	writeDoc(t, sceneDir, "pair.yaml", goodDoc)
	writeDoc(t, sceneDir, "broken.yaml", "vectors: [not a map\n")

	entries := Run(testConfig(sceneDir, outDir), []string{"broken.yaml", "pair.yaml"})
	require.Len(t, entries, 2)

	require.Equal(t, "broken.yaml", entries[0].Scene)
	require.NotEmpty(t, entries[0].Error)
	require.NotEmpty(t, entries[0].Digest)
	require.Empty(t, entries[0].Image)

	good := entries[1]
	require.Equal(t, "pair.yaml", good.Scene)
	require.Equal(t, "pair", good.Name)
	require.Empty(t, good.Error)
	require.Equal(t, "pair.webp", good.Image)
	require.NotEmpty(t, good.Digest)
	require.Len(t, good.Values, 2)
	require.Equal(t, 5.0, good.Values[0].Scalar)
	require.Equal(t, 3.0, good.Values[1].Scalar)

	_, err := os.Stat(filepath.Join(outDir, "pair.webp"))
	require.NoError(t, err)
}

func TestRunIncremental(t *testing.T) {
	sceneDir, outDir := t.TempDir(), t.TempDir()
	writeDoc(t, sceneDir, "one.yaml", goodDoc)
	writeDoc(t, sceneDir, "two.yaml", goodDoc)
	docs := []string{"one.yaml", "two.yaml"}
	cfg := testConfig(sceneDir, outDir)

	first := Run(cfg, docs)
	require.Empty(t, first[0].Error)
	require.Empty(t, first[1].Error)

	cfg.Incremental = true
	cfg.Previous = NewManifest(first)

	second := Run(cfg, docs)
	require.True(t, second[0].Skipped)
	require.True(t, second[1].Skipped)
	require.Equal(t, first[0].Digest, second[0].Digest)
	require.Equal(t, first[0].Values, second[0].Values)

	// Touch one document; only it reruns.
	writeDoc(t, sceneDir, "two.yaml", goodDoc+"  - op: cross\n    args: [a, b]\n")
	third := Run(cfg, docs)
	require.True(t, third[0].Skipped)
	require.False(t, third[1].Skipped)
	require.Len(t, third[1].Values, 3)
}

func TestRunDoesNotSkipPreviousFailures(t *testing.T) {
	sceneDir, outDir := t.TempDir(), t.TempDir()
	writeDoc(t, sceneDir, "doc.yaml", goodDoc)
	cfg := testConfig(sceneDir, outDir)
	cfg.Incremental = true

	first := Run(cfg, []string{"doc.yaml"})
	failed := first[0]
	failed.Error = "transient failure"

	cfg.Previous = NewManifest([]Entry{failed})
	second := Run(cfg, []string{"doc.yaml"})
	require.False(t, second[0].Skipped)
	require.Empty(t, second[0].Error)
}

func TestManifestRoundTrip(t *testing.T) {
	m := NewManifest([]Entry{{
		Scene:  "a.yaml",
		Name:   "pair",
		Digest: "00bdecafc0ffee00",
		Image:  "a.webp",
		Values: []scene.Value{
			{Label: "len-a", Op: "length", Kind: scene.KindScalar, Scalar: 5},
		},
	}})

	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, m.Write(p))

	got, err := ReadManifest(p)
	require.NoError(t, err)
	require.Equal(t, m.RunID, got.RunID)
	require.WithinDuration(t, m.Created, got.Created, time.Second)
	require.Equal(t, m.Entries, got.Entries)

	e, ok := got.Lookup("a.yaml")
	require.True(t, ok)
	require.Equal(t, "pair", e.Name)

	_, ok = got.Lookup("other.yaml")
	require.False(t, ok)
}

func TestReadManifestMissing(t *testing.T) {
	m, err := ReadManifest(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestReadManifestBadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(p, []byte("{oops"), 0o644))

	_, err := ReadManifest(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse manifest")
}

func TestManifestWriteCreatesDir(t *testing.T) {
	m := NewManifest(nil)
	p := filepath.Join(t.TempDir(), "out", "deep", "manifest.json")
	require.NoError(t, m.Write(p))

	got, err := ReadManifest(p)
	require.NoError(t, err)
	require.Equal(t, m.RunID, got.RunID)
}

func TestManifestWriteBadPath(t *testing.T) {
	// A plain file where the directory should go makes creation fail.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "occupied"), nil, 0o644))

	m := NewManifest(nil)
	err := m.Write(filepath.Join(dir, "occupied", "m.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest")
}
