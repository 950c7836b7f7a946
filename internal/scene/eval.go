package scene

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"vecgeom/vec3"
)

// Value kinds. Angle triples use KindAngles with the three angles stored in
// Vec component order.
const (
	KindScalar = "scalar"
	KindVector = "vector"
	KindAngles = "angles"
)

// Value is one evaluated measurement. Kind selects whether Scalar or Vec
// holds the result; failed measurements carry Error instead.
type Value struct {
	Label  string    `json:"label"`
	Op     string    `json:"op"`
	Kind   string    `json:"kind,omitempty"`
	Scalar float64   `json:"scalar,omitempty"`
	Vec    vec3.Vec3 `json:"vec,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Evaluate runs every measurement in document order. A failed measurement
// records its error and the rest still run.
func (s *Scene) Evaluate() []Value {
	out := make([]Value, 0, len(s.Measure))
	for _, m := range s.Measure {
		out = append(out, s.eval(m))
	}
	return out
}

func (s *Scene) eval(m Measurement) Value {
	v := Value{Label: m.As, Op: m.Op}
	if v.Label == "" {
		v.Label = fmt.Sprintf("%s(%s)", m.Op, strings.Join(m.Args, ", "))
	}

	args := make([]vec3.Vec3, len(m.Args))
	for i, name := range m.Args {
		if m.Op == "scale" && i == 1 {
			continue // numeric literal, parsed below
		}
		a, err := s.resolve(name)
		if err != nil {
			v.Error = err.Error()
			return v
		}
		args[i] = a
	}

	switch m.Op {
	case "length":
		v.Kind, v.Scalar = KindScalar, args[0].Len()
	case "unit":
		u, err := args[0].Unit()
		if err != nil {
			v.Error = err.Error()
			return v
		}
		v.Kind, v.Vec = KindVector, u
	case "add":
		v.Kind, v.Vec = KindVector, args[0].Add(args[1:]...)
	case "sub":
		v.Kind, v.Vec = KindVector, args[0].Sub(args[1:]...)
	case "scale":
		f, err := strconv.ParseFloat(m.Args[1], 64)
		if err != nil {
			v.Error = fmt.Sprintf("bad scale factor %q", m.Args[1])
			return v
		}
		v.Kind, v.Vec = KindVector, args[0].Scale(f)
	case "dot":
		v.Kind, v.Scalar = KindScalar, args[0].Dot(args[1])
	case "cross":
		v.Kind, v.Vec = KindVector, args[0].Cross(args[1])
	case "inner-angle":
		a, err := args[0].InnerAngle(args[1])
		if err != nil {
			v.Error = err.Error()
			return v
		}
		v.Kind, v.Scalar = KindScalar, a
	case "dir-angles":
		ax, ay, az, err := args[0].DirAngles()
		if err != nil {
			v.Error = err.Error()
			return v
		}
		v.Kind, v.Vec = KindAngles, vec3.Vec3{ax, ay, az}
	case "planar-angles":
		xy, xz, yz := args[0].PlanarAngles()
		v.Kind, v.Vec = KindAngles, vec3.Vec3{xy, xz, yz}
	case "angle-xy":
		v.Kind, v.Scalar = KindScalar, args[0].AngleXY()
	case "direction":
		d, err := vec3.Direction(args[0], args[1])
		if err != nil {
			v.Error = err.Error()
			return v
		}
		v.Kind, v.Vec = KindVector, d
	case "angle-at":
		a, err := vec3.AngleAt(args[0], args[1], args[2])
		if err != nil {
			v.Error = err.Error()
			return v
		}
		v.Kind, v.Scalar = KindScalar, a
	case "plane-normal":
		n, err := vec3.PlaneNormal(args[0], args[1], args[2])
		if err != nil {
			v.Error = err.Error()
			return v
		}
		v.Kind, v.Vec = KindVector, n
	case "tri-area":
		v.Kind, v.Scalar = KindScalar, vec3.TriArea(args[0], args[1], args[2])
	}
	return v
}

func (s *Scene) resolve(name string) (vec3.Vec3, error) {
	if c, ok := s.Vectors[name]; ok {
		return vec3.Vec3(c), nil
	}
	if c, ok := s.Points[name]; ok {
		return vec3.Vec3(c), nil
	}
	return vec3.Vec3{}, fmt.Errorf("unknown name %q", name)
}

// NamedVec pairs a scene vector with its name.
type NamedVec struct {
	Name string
	V    vec3.Vec3
}

// VectorList returns the scene's vectors sorted by name, for stable output.
func (s *Scene) VectorList() []NamedVec {
	names := make([]string, 0, len(s.Vectors))
	for name := range s.Vectors {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]NamedVec, len(names))
	for i, name := range names {
		out[i] = NamedVec{Name: name, V: vec3.Vec3(s.Vectors[name])}
	}
	return out
}
