// Package scene loads measurement documents: named vectors and points plus
// the operations to evaluate over them.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vecgeom/vec3"
)

// Coords accepts up to three numbers and zero-fills missing components.
type Coords vec3.Vec3

func (c *Coords) UnmarshalYAML(value *yaml.Node) error {
	var raw []float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw) > 3 {
		return fmt.Errorf("got %d coordinates, want at most 3", len(raw))
	}
	*c = Coords(vec3.New(raw...))
	return nil
}

// Measurement is one requested operation over named vectors or points.
// The scale op takes a vector name and a numeric literal.
type Measurement struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
	As   string   `yaml:"as"`
}

// Figure is drawn geometry: a segment between two named points or a filled
// triangle over three.
type Figure struct {
	Kind   string   `yaml:"kind"`
	Points []string `yaml:"points"`
}

// View selects the projection used when the scene is rendered.
type View struct {
	AzimuthDeg   float64 `yaml:"azimuth_deg"`
	ElevationDeg float64 `yaml:"elevation_deg"`
	Size         int     `yaml:"size"`
	Scale        float64 `yaml:"scale"`
}

// Scene is a measurement document.
type Scene struct {
	Name    string            `yaml:"name"`
	Vectors map[string]Coords `yaml:"vectors"`
	Points  map[string]Coords `yaml:"points"`
	Figures []Figure          `yaml:"figures"`
	Measure []Measurement     `yaml:"measure"`
	View    *View             `yaml:"view"`
}

// arity maps each operation to its argument count; -1 means one or more.
var arity = map[string]int{
	"length":        1,
	"unit":          1,
	"dir-angles":    1,
	"planar-angles": 1,
	"angle-xy":      1,
	"add":           -1,
	"sub":           -1,
	"dot":           2,
	"cross":         2,
	"inner-angle":   2,
	"scale":         2,
	"direction":     2,
	"angle-at":      3,
	"plane-normal":  3,
	"tri-area":      3,
}

// Load reads and validates a scene document.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scene) validate() error {
	for name := range s.Vectors {
		if _, dup := s.Points[name]; dup {
			return fmt.Errorf("%q names both a vector and a point", name)
		}
	}
	for i, f := range s.Figures {
		var want int
		switch f.Kind {
		case "segment":
			want = 2
		case "triangle":
			want = 3
		default:
			return fmt.Errorf("figure %d: unknown kind %q", i, f.Kind)
		}
		if len(f.Points) != want {
			return fmt.Errorf("figure %d: %s takes %d points, got %d", i, f.Kind, want, len(f.Points))
		}
		for _, name := range f.Points {
			if _, err := s.resolve(name); err != nil {
				return fmt.Errorf("figure %d: %w", i, err)
			}
		}
	}
	for i, m := range s.Measure {
		want, ok := arity[m.Op]
		if !ok {
			return fmt.Errorf("measure %d: unknown op %q", i, m.Op)
		}
		if want == -1 {
			if len(m.Args) == 0 {
				return fmt.Errorf("measure %d: %s needs at least one argument", i, m.Op)
			}
			continue
		}
		if len(m.Args) != want {
			return fmt.Errorf("measure %d: %s takes %d arguments, got %d", i, m.Op, want, len(m.Args))
		}
	}
	return nil
}
