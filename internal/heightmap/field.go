// Package heightmap turns raster images into height fields and derives
// per-sample terrain measurements from them.
package heightmap

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"vecgeom/internal/stl"
	"vecgeom/vec3"
)

var up = vec3.Vec3{0, 0, 1}

// Field is a row-major grid of sample heights spaced Cell apart.
type Field struct {
	W, H    int
	Cell    float64
	Heights []float64
}

// At returns the height at (x, y), clamping coordinates to the grid edge.
func (f *Field) At(x, y int) float64 {
	x = min(max(x, 0), f.W-1)
	y = min(max(y, 0), f.H-1)
	return f.Heights[y*f.W+x]
}

// Point returns the sample at (x, y) as a point in space.
func (f *Field) Point(x, y int) vec3.Vec3 {
	return vec3.Vec3{float64(x) * f.Cell, float64(y) * f.Cell, f.At(x, y)}
}

// Terrain holds per-sample measurements derived from a field, in the same
// row-major order as Field.Heights. Slope is the tilt from horizontal and
// Aspect the downhill heading from +X, both in radians; flat samples report
// zero for both.
type Terrain struct {
	Normals []vec3.Vec3
	Slope   []float64
	Aspect  []float64
}

// Derive computes normals, slope, and aspect for every sample. Rows are
// processed in parallel.
func (f *Field) Derive(ctx context.Context) (*Terrain, error) {
	t := &Terrain{
		Normals: make([]vec3.Vec3, f.W*f.H),
		Slope:   make([]float64, f.W*f.H),
		Aspect:  make([]float64, f.W*f.H),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for y := 0; y < f.H; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := 0; x < f.W; x++ {
				i := y*f.W + x
				n := f.normalAt(x, y)
				t.Normals[i] = n
				t.Slope[i], _ = n.InnerAngle(up)
				t.Aspect[i] = f.aspectAt(x, y)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

// normalAt crosses the two clamped tangents through (x, y). Samples with no
// usable tangent plane fall back to straight up.
func (f *Field) normalAt(x, y int) vec3.Vec3 {
	x0, x1 := max(x-1, 0), min(x+1, f.W-1)
	y0, y1 := max(y-1, 0), min(y+1, f.H-1)

	tx := vec3.Vec3{float64(x1-x0) * f.Cell, 0, f.At(x1, y) - f.At(x0, y)}
	ty := vec3.Vec3{0, float64(y1-y0) * f.Cell, f.At(x, y1) - f.At(x, y0)}

	n, err := tx.Cross(ty).Unit()
	if errors.Is(err, vec3.ErrUndefinedDirection) {
		return up
	}
	return n
}

// aspectAt is the downhill heading at (x, y), zero for flat samples.
func (f *Field) aspectAt(x, y int) float64 {
	x0, x1 := max(x-1, 0), min(x+1, f.W-1)
	y0, y1 := max(y-1, 0), min(y+1, f.H-1)

	var grad vec3.Vec3
	if x1 > x0 {
		grad[0] = (f.At(x1, y) - f.At(x0, y)) / (float64(x1-x0) * f.Cell)
	}
	if y1 > y0 {
		grad[1] = (f.At(x, y1) - f.At(x, y0)) / (float64(y1-y0) * f.Cell)
	}

	downhill := vec3.Vec3{}.Sub(grad)
	if downhill[0] == 0 && downhill[1] == 0 {
		return 0
	}
	return downhill.AngleXY()
}

// SurfaceArea sums the true area of the surface, splitting each grid cell
// into two triangles. Rows are processed in parallel.
func (f *Field) SurfaceArea(ctx context.Context) (float64, error) {
	if f.W < 2 || f.H < 2 {
		return 0, nil
	}

	rows := make([]float64, f.H-1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for y := 0; y < f.H-1; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var sum float64
			for x := 0; x < f.W-1; x++ {
				p00 := f.Point(x, y)
				p10 := f.Point(x+1, y)
				p01 := f.Point(x, y+1)
				p11 := f.Point(x+1, y+1)
				sum += vec3.TriArea(p00, p10, p11) + vec3.TriArea(p00, p11, p01)
			}
			rows[y] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, r := range rows {
		total += r
	}
	return total, nil
}

// Mesh triangulates the field, two facets per grid cell, with normals taken
// from the vertex winding. Facets without a plane store a zero normal.
func (f *Field) Mesh() *stl.Mesh {
	m := &stl.Mesh{Name: "heightfield"}
	if f.W < 2 || f.H < 2 {
		return m
	}

	m.Facets = make([]stl.Facet, 0, 2*(f.W-1)*(f.H-1))
	for y := 0; y < f.H-1; y++ {
		for x := 0; x < f.W-1; x++ {
			p00 := f.Point(x, y)
			p10 := f.Point(x+1, y)
			p01 := f.Point(x, y+1)
			p11 := f.Point(x+1, y+1)
			m.Facets = append(m.Facets, facet(p00, p10, p11), facet(p00, p11, p01))
		}
	}
	return m
}

func facet(a, b, c vec3.Vec3) stl.Facet {
	n, _ := vec3.PlaneNormal(a, b, c)
	return stl.Facet{Normal: n, Verts: [3]vec3.Vec3{a, b, c}}
}
