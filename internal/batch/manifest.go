package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vecgeom/internal/scene"
)

// Entry records the outcome of processing one scene document.
type Entry struct {
	Scene   string        `json:"scene"`
	Name    string        `json:"name,omitempty"`
	Digest  string        `json:"digest,omitempty"`
	Image   string        `json:"image,omitempty"`
	Values  []scene.Value `json:"values,omitempty"`
	Skipped bool          `json:"skipped,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Manifest records one batch run.
type Manifest struct {
	RunID   string    `json:"run_id"`
	Created time.Time `json:"created"`
	Entries []Entry   `json:"entries"`
}

// NewManifest stamps entries with a fresh run ID.
func NewManifest(entries []Entry) *Manifest {
	return &Manifest{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
		Entries: entries,
	}
}

// Lookup finds the entry for a scene document.
func (m *Manifest) Lookup(sceneName string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Scene == sceneName {
			return e, true
		}
	}
	return Entry{}, false
}

// Write saves the manifest as indented JSON, creating the parent directory
// when needed.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: create manifest dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest of a previous run. A missing file is not
// an error; it returns nil.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("batch: read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("batch: parse manifest %s: %w", path, err)
	}
	return &m, nil
}
