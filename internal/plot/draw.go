package plot

import (
	"image/color"
	"math"

	"vecgeom/vec3"
)

// Line draws a straight segment in screen space with linearly interpolated
// depth. The segment is clipped to the frame first, so the walk length is
// bounded by the canvas even when the endpoints project far outside it.
func (c *Canvas) Line(x0, y0, z0, x1, y1, z1 float64, col color.NRGBA) {
	dx := x1 - x0
	dy := y1 - y0

	// Liang-Barsky clip of the parametric range against a window one pixel
	// wider than the frame. SetDepth still guards the exact bounds, so the
	// slack keeps edge rounding identical to an unclipped walk.
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{
		{-dx, x0 + 1},
		{dx, float64(c.W) - x0},
		{-dy, y0 + 1},
		{dy, float64(c.H) - y0},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	steps := int(math.Max(math.Abs(dx*(t1-t0)), math.Abs(dy*(t1-t0)))) + 1
	for i := 0; i <= steps; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(steps)
		x := x0 + dx*t
		y := y0 + dy*t
		z := z0 + (z1-z0)*t
		c.SetDepth(int(x+0.5), int(y+0.5), z, col)
	}
}

// Arrow draws the segment from one world point to another and finishes it
// with two barbs angled off the shaft's screen heading.
func (c *Canvas) Arrow(cam *Camera, from, to vec3.Vec3, col color.NRGBA) {
	x0, y0, z0 := cam.Project(from)
	x1, y1, z1 := cam.Project(to)
	c.Line(x0, y0, z0, x1, y1, z1, col)

	shaft := vec3.Vec3{x1 - x0, y1 - y0, 0}
	if shaft.Len() == 0 {
		return
	}
	theta := shaft.AngleXY()

	const barb = 9.0
	for _, spread := range []float64{math.Pi - 0.5, math.Pi + 0.5} {
		bx := x1 + barb*math.Cos(theta+spread)
		by := y1 + barb*math.Sin(theta+spread)
		c.Line(x1, y1, z1, bx, by, z1, col)
	}
}

// Triangle fills the projection of a world triangle with col scaled by
// shade, honoring the depth buffer.
func (c *Canvas) Triangle(cam *Camera, p0, p1, p2 vec3.Vec3, col color.NRGBA, shade float64) {
	x0, y0, z0 := cam.Project(p0)
	x1, y1, z1 := cam.Project(p1)
	x2, y2, z2 := cam.Project(p2)

	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX > c.W-1 {
		maxX = c.W - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > c.H-1 {
		maxY = c.H - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	shaded := scaleColor(col, shade)
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}
			z := w0*z0 + w1*z1 + w2*z2
			c.SetDepth(sx, sy, z, shaded)
		}
	}
}

// Shade is a double-sided Lambert term for a surface normal under a light
// direction, lifted by ambient. Inputs with no direction get ambient only.
func Shade(normal, light vec3.Vec3, ambient float64) float64 {
	n, err := normal.Unit()
	if err != nil {
		return ambient
	}
	l, err := light.Unit()
	if err != nil {
		return ambient
	}
	return ambient + (1-ambient)*math.Abs(n.Dot(l))
}

func scaleColor(col color.NRGBA, s float64) color.NRGBA {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	col.R = uint8(float64(col.R)*s + 0.5)
	col.G = uint8(float64(col.G)*s + 0.5)
	col.B = uint8(float64(col.B)*s + 0.5)
	return col
}
