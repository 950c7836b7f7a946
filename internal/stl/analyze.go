package stl

import (
	"math"

	"vecgeom/vec3"
)

// Report summarizes the geometry of a mesh. All angles are radians.
type Report struct {
	Facets     int
	TotalArea  float64
	Min, Max   vec3.Vec3 // axis-aligned bounds over all vertices
	Degenerate []int     // indices of facets with no plane

	// MinAngle and MaxAngle are the extreme corner angles over facets that
	// have a plane. NormalDev is the worst disagreement between a stored
	// normal and the one recomputed from the winding; facets that store a
	// zero normal are counted in ZeroNormals instead of compared.
	MinAngle    float64
	MaxAngle    float64
	NormalDev   float64
	ZeroNormals int
}

// Analyze measures m: surface area, bounds, corner angle range, and how far
// the stored normals drift from the vertex winding.
func Analyze(m *Mesh) Report {
	rep := Report{Facets: len(m.Facets)}
	firstVert := true
	firstAngle := true

	for i, f := range m.Facets {
		for _, v := range f.Verts {
			if firstVert {
				rep.Min, rep.Max = v, v
				firstVert = false
				continue
			}
			for k := 0; k < 3; k++ {
				rep.Min[k] = math.Min(rep.Min[k], v[k])
				rep.Max[k] = math.Max(rep.Max[k], v[k])
			}
		}

		rep.TotalArea += vec3.TriArea(f.Verts[0], f.Verts[1], f.Verts[2])

		wound, err := vec3.PlaneNormal(f.Verts[0], f.Verts[1], f.Verts[2])
		if err != nil {
			// Collinear or repeated vertices
			rep.Degenerate = append(rep.Degenerate, i)
			continue
		}

		if dev, err := f.Normal.InnerAngle(wound); err != nil {
			rep.ZeroNormals++
		} else if dev > rep.NormalDev {
			rep.NormalDev = dev
		}

		for c := 0; c < 3; c++ {
			a, err := vec3.AngleAt(f.Verts[c], f.Verts[(c+1)%3], f.Verts[(c+2)%3])
			if err != nil {
				continue
			}
			if firstAngle || a < rep.MinAngle {
				rep.MinAngle = a
			}
			if firstAngle || a > rep.MaxAngle {
				rep.MaxAngle = a
			}
			firstAngle = false
		}
	}
	return rep
}
