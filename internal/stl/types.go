package stl

import "vecgeom/vec3"

// Facet is one triangle of a solid, with the normal its writer recorded.
// The stored normal is kept as-is; Analyze compares it against the normal
// implied by the vertex winding.
type Facet struct {
	Normal vec3.Vec3
	Verts  [3]vec3.Vec3
}

// Mesh is a parsed STL solid.
type Mesh struct {
	Name   string
	Facets []Facet
}

// Translate returns a copy of the mesh with d added to every vertex.
// Stored normals are direction-only and stay unchanged.
func (m *Mesh) Translate(d vec3.Vec3) *Mesh {
	out := &Mesh{Name: m.Name, Facets: make([]Facet, len(m.Facets))}
	for i, f := range m.Facets {
		nf := f
		for k := range nf.Verts {
			nf.Verts[k] = nf.Verts[k].Add(d)
		}
		out.Facets[i] = nf
	}
	return out
}
