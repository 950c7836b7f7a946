package heightmap

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"
)

// Options controls how a raster becomes a height field.
// Zero values for Cell and ZScale mean 1.
type Options struct {
	Cell   float64 // horizontal spacing between samples
	ZScale float64 // height assigned to a full-intensity pixel
	MaxDim int     // if >0, downsample so that max(W, H) <= MaxDim
}

// Load reads a raster heightmap (PNG, JPEG, or TGA) and converts pixel
// intensity into sample heights.
func Load(path string, opt Options) (*Field, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("heightmap: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("heightmap: decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("heightmap: empty image %s", path)
	}

	if opt.Cell == 0 {
		opt.Cell = 1
	}
	if opt.ZScale == 0 {
		opt.ZScale = 1
	}

	gray := toGray16(img, opt.MaxDim)
	gb := gray.Bounds()
	f := &Field{
		W:       gb.Dx(),
		H:       gb.Dy(),
		Cell:    opt.Cell,
		Heights: make([]float64, gb.Dx()*gb.Dy()),
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			g := gray.Gray16At(gb.Min.X+x, gb.Min.Y+y).Y
			f.Heights[y*f.W+x] = float64(g) / 65535 * opt.ZScale
		}
	}
	return f, nil
}

// toGray16 converts any image to 16-bit grayscale, resampling it down first
// when maxDim asks for fewer samples than the source carries.
func toGray16(src image.Image, maxDim int) *image.Gray16 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			h = max(h*maxDim/w, 1)
			w = maxDim
		} else {
			w = max(w*maxDim/h, 1)
			h = maxDim
		}
		dst := image.NewGray16(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		return dst
	}

	if g, ok := src.(*image.Gray16); ok {
		return g
	}
	dst := image.NewGray16(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
