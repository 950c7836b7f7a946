// Package plot renders vectors, meshes, and height fields to raster images.
// Projection is orthographic and built entirely from vector products, so a
// view is described by two headings rather than a matrix.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// Canvas is an NRGBA render target with a depth buffer. Depth grows toward
// the viewer, so larger values win.
type Canvas struct {
	W, H int
	Img  *image.NRGBA
	zbuf []float64
}

// NewCanvas allocates a canvas filled with bg and a -inf depth buffer.
func NewCanvas(w, h int, bg color.NRGBA) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}
	zbuf := make([]float64, w*h)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &Canvas{W: w, H: h, Img: img, zbuf: zbuf}
}

// Set writes a pixel ignoring depth. Out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return
	}
	i := c.Img.PixOffset(x, y)
	c.Img.Pix[i] = col.R
	c.Img.Pix[i+1] = col.G
	c.Img.Pix[i+2] = col.B
	c.Img.Pix[i+3] = col.A
}

// SetDepth writes a pixel only when z is nearer than what is already there.
func (c *Canvas) SetDepth(x, y int, z float64, col color.NRGBA) {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return
	}
	zi := y*c.W + x
	if z <= c.zbuf[zi] {
		return
	}
	c.zbuf[zi] = z
	i := c.Img.PixOffset(x, y)
	c.Img.Pix[i] = col.R
	c.Img.Pix[i+1] = col.G
	c.Img.Pix[i+2] = col.B
	c.Img.Pix[i+3] = col.A
}

// WriteWebP saves img to path as lossless WebP.
func WriteWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("plot: encode %s: %w", path, err)
	}
	return nil
}
