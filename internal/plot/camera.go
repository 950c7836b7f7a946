package plot

import (
	"errors"
	"math"

	"vecgeom/vec3"
)

var worldUp = vec3.Vec3{0, 0, 1}

// Camera is an orthographic view described by its screen basis vectors.
// Right and Up span the image plane, Forward points from the viewer into
// the scene.
type Camera struct {
	Right, Up, Forward vec3.Vec3
	Scale              float64 // pixels per world unit
	CX, CY             float64 // screen position of the world origin
}

// NewCamera places a viewer at the given azimuth and elevation (radians)
// looking at the origin. The basis comes from unit and cross products of
// the viewing direction; a straight-down or straight-up view, where that
// construction has no horizontal reference, falls back to the Y axis.
func NewCamera(azimuth, elevation, scale float64, w, h int) *Camera {
	eye := vec3.Vec3{
		math.Cos(elevation) * math.Cos(azimuth),
		math.Cos(elevation) * math.Sin(azimuth),
		math.Sin(elevation),
	}
	forward := eye.Scale(-1)

	right, err := forward.Cross(worldUp).Unit()
	if errors.Is(err, vec3.ErrUndefinedDirection) {
		right, _ = forward.Cross(vec3.Vec3{0, 1, 0}).Unit()
	}
	up, _ := right.Cross(forward).Unit()

	return &Camera{
		Right:   right,
		Up:      up,
		Forward: forward,
		Scale:   scale,
		CX:      float64(w) / 2,
		CY:      float64(h) / 2,
	}
}

// Project maps a world point to screen coordinates plus a depth value that
// grows toward the viewer.
func (c *Camera) Project(p vec3.Vec3) (sx, sy, depth float64) {
	sx = c.CX + c.Scale*p.Dot(c.Right)
	sy = c.CY - c.Scale*p.Dot(c.Up)
	depth = -p.Dot(c.Forward)
	return sx, sy, depth
}

// Fit returns the camera scale and world center that frame the bounding box
// [min, max] in a size-pixel image, with margin around the model.
func Fit(min, max vec3.Vec3, size int) (scale float64, center vec3.Vec3) {
	center = min.Add(max).Scale(0.5)

	extent := 0.0
	for k := 0; k < 3; k++ {
		extent = math.Max(extent, max[k]-min[k])
	}
	scale = 40
	if extent > 0 {
		scale = 0.42 * float64(size) / extent
	}
	return scale, center
}
