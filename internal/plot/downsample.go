package plot

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Downsample reduces a supersampled frame to target pixels per side with
// CatmullRom filtering. The canvas draws opaque pixels, so no alpha
// premultiply pass is needed. Frames already at or below target pass through.
func Downsample(img *image.NRGBA, target int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= target && b.Dy() <= target {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, target, target))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
