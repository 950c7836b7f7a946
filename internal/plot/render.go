package plot

import (
	"errors"
	"image/color"

	"vecgeom/internal/stl"
	"vecgeom/vec3"
)

const meshAmbient = 0.25

// RenderMesh flat-shades every facet of m under the given light direction.
// Facets without a plane are skipped.
func RenderMesh(c *Canvas, cam *Camera, m *stl.Mesh, base color.NRGBA, light vec3.Vec3) {
	for _, f := range m.Facets {
		n, err := vec3.PlaneNormal(f.Verts[0], f.Verts[1], f.Verts[2])
		if errors.Is(err, vec3.ErrUndefinedDirection) {
			continue
		}
		c.Triangle(cam, f.Verts[0], f.Verts[1], f.Verts[2], base, Shade(n, light, meshAmbient))
	}
}

// Axes draws the coordinate axes as colored arrows of the given length:
// X red, Y green, Z blue.
func Axes(c *Canvas, cam *Camera, length float64) {
	c.Arrow(cam, vec3.Vec3{}, vec3.Vec3{length, 0, 0}, color.NRGBA{R: 220, G: 60, B: 60, A: 255})
	c.Arrow(cam, vec3.Vec3{}, vec3.Vec3{0, length, 0}, color.NRGBA{R: 60, G: 200, B: 60, A: 255})
	c.Arrow(cam, vec3.Vec3{}, vec3.Vec3{0, 0, length}, color.NRGBA{R: 80, G: 110, B: 240, A: 255})
}
