package fillable

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// goldenAngle, in degrees, spreads consecutive region hues far apart on the
// hue wheel.
const goldenAngle = 137.50776405003785

// Preview renders the label map as a color image for manual review: every
// region gets its own pastel color and line pixels stay white. Colors
// depend only on region ids, so previews of identical label maps are
// identical.
func Preview(lm *LabelMap) *image.RGBA {
	if lm == nil || lm.Width() <= 0 || lm.Height() <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	w, h := lm.Width(), lm.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cache := make(map[int]color.RGBA)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := lm.RegionIDAt(x, y)
			c := color.RGBA{0xff, 0xff, 0xff, 0xff}
			if id != 0 {
				var ok bool
				if c, ok = cache[id]; !ok {
					c = regionColor(id)
					cache[id] = c
				}
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

// regionColor maps a region id to its preview color by walking the hue
// wheel in golden-angle steps.
func regionColor(id int) color.RGBA {
	hue := math.Mod(float64(id)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.45, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
