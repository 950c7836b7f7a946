package scene

import (
	"image/color"
	"math"

	"vecgeom/internal/plot"
	"vecgeom/vec3"
)

var (
	diagramBG  = color.NRGBA{R: 16, G: 18, B: 24, A: 255}
	segmentCol = color.NRGBA{R: 170, G: 175, B: 190, A: 255}
	fillCol    = color.NRGBA{R: 95, G: 105, B: 130, A: 255}
	sceneLight = vec3.Vec3{1, 0.6, 1.8}

	palette = []color.NRGBA{
		{R: 240, G: 200, B: 80, A: 255},
		{R: 120, G: 200, B: 240, A: 255},
		{R: 240, G: 120, B: 180, A: 255},
		{R: 150, G: 240, B: 140, A: 255},
		{R: 220, G: 150, B: 90, A: 255},
	}
)

const figureAmbient = 0.3

// Render draws the scene's vectors over coordinate axes and saves the image
// as WebP. Angles come from the document's view block when present; size and
// scale fall back per field. Vectors are colored in name order. The frame is
// drawn at supersample times the requested size and filtered back down.
func Render(s *Scene, fallback View, supersample int, path string) error {
	v := fallback
	if s.View != nil {
		v.AzimuthDeg = s.View.AzimuthDeg
		v.ElevationDeg = s.View.ElevationDeg
		if s.View.Size > 0 {
			v.Size = s.View.Size
		}
		if s.View.Scale > 0 {
			v.Scale = s.View.Scale
		}
	}
	if supersample < 1 {
		supersample = 1
	}
	rs := v.Size * supersample

	c := plot.NewCanvas(rs, rs, diagramBG)
	cam := plot.NewCamera(
		v.AzimuthDeg*math.Pi/180,
		v.ElevationDeg*math.Pi/180,
		v.Scale*float64(supersample), rs, rs,
	)

	vs := s.VectorList()
	axis := 1.0
	for _, nv := range vs {
		axis = math.Max(axis, nv.V.Len())
	}
	for _, p := range s.Points {
		axis = math.Max(axis, vec3.Vec3(p).Len())
	}
	plot.Axes(c, cam, axis)
	for _, f := range s.Figures {
		drawFigure(c, cam, s, f)
	}
	for i, nv := range vs {
		c.Arrow(cam, vec3.Vec3{}, nv.V, palette[i%len(palette)])
	}

	return plot.WriteWebP(path, plot.Downsample(c.Img, v.Size))
}

// drawFigure paints one validated figure. Degenerate triangles leave no
// pixels, matching how the rasterizer treats zero-area projections.
func drawFigure(c *plot.Canvas, cam *plot.Camera, s *Scene, f Figure) {
	pts := make([]vec3.Vec3, len(f.Points))
	for i, name := range f.Points {
		pts[i], _ = s.resolve(name)
	}

	switch f.Kind {
	case "segment":
		x0, y0, z0 := cam.Project(pts[0])
		x1, y1, z1 := cam.Project(pts[1])
		c.Line(x0, y0, z0, x1, y1, z1, segmentCol)
	case "triangle":
		n, err := vec3.PlaneNormal(pts[0], pts[1], pts[2])
		if err != nil {
			return
		}
		c.Triangle(cam, pts[0], pts[1], pts[2], fillCol, plot.Shade(n, sceneLight, figureAmbient))
	}
}
