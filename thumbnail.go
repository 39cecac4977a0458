package fillable

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DefaultThumbnailSize is the edge length, in pixels, of generated
// thumbnails.
const DefaultThumbnailSize = 256

// Thumbnail renders src onto a white square canvas of the given edge
// length, scaled to fit and centered. Catmull-Rom resampling keeps thin
// line work readable at small sizes. A size of zero or less uses
// DefaultThumbnailSize; a nil or empty source yields a blank canvas.
func Thumbnail(src image.Image, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultThumbnailSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if src == nil {
		return dst
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return dst
	}

	scale := min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	tw := max(1, int(float64(b.Dx())*scale+0.5))
	th := max(1, int(float64(b.Dy())*scale+0.5))
	x0 := (size - tw) / 2
	y0 := (size - th) / 2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), src, b, xdraw.Over, nil)
	return dst
}
