// Package sobel implements a portable CPU edge-detection engine using 3x3
// Sobel gradients. It trades the quality of the ML engines for having no
// dependencies at all, which makes it the fallback on every platform and
// the reference engine for tests.
//
// Importing the package registers the engine under the name "sobel".
package sobel

import (
	"errors"
	"image"
	"math"

	"github.com/linework/fillable"
	"github.com/linework/fillable/detect"
)

// Name is the engine's registry name.
const Name = detect.EngineSobel

// Common engine errors.
var (
	// ErrNoImage is returned when ExtractLines is called without an image.
	ErrNoImage = errors.New("sobel: nil image")

	// ErrImageTooSmall is returned for images below the 3x3 kernel size.
	ErrImageTooSmall = errors.New("sobel: image smaller than 3x3")
)

func init() {
	detect.Register(Name, func() detect.Engine { return &Engine{} })
}

// Engine detects edges with 3x3 Sobel gradients over the image luminance.
type Engine struct{}

// Name returns the engine identifier.
func (*Engine) Name() string { return Name }

// ExtractLines converts img to luminance, optionally smooths it, computes
// Sobel gradient magnitudes normalized to full range, and derives the
// binarization threshold hint with Otsu's method. The one-pixel border
// carries no gradient and stays zero.
func (*Engine) ExtractLines(img image.Image, s detect.Settings) (*fillable.EdgeMap, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	b := fillable.BitmapFromImage(img)
	w, h := b.Width(), b.Height()
	if w < 3 || h < 3 {
		return nil, ErrImageTooSmall
	}

	gray := b.Pix()
	if s.BlurRadius > 0 {
		gray = blur(gray, w, h, s.BlurRadius)
	}

	mag := make([]uint16, w*h)
	var maxMag uint16
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := y*w + x
			tl, tc, tr := int(gray[p-w-1]), int(gray[p-w]), int(gray[p-w+1])
			ml, mr := int(gray[p-1]), int(gray[p+1])
			bl, bc, br := int(gray[p+w-1]), int(gray[p+w]), int(gray[p+w+1])
			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			m := uint16(math.Sqrt(float64(gx*gx + gy*gy)))
			mag[p] = m
			if m > maxMag {
				maxMag = m
			}
		}
	}

	// Normalize to full range so the threshold hint is comparable across
	// images with different contrast.
	out := make([]uint8, w*h)
	if maxMag > 0 {
		for i, m := range mag {
			out[i] = uint8(int(m) * 255 / int(maxMag))
		}
	}

	level := otsu(out)
	suggested := float64(level) / 255
	if s.Threshold > 0 {
		suggested = math.Min(s.Threshold, 1)
		level = uint8(suggested * 255)
	}

	edges := 0
	for _, v := range out {
		if v > level {
			edges++
		}
	}
	density := float64(edges) / float64(w*h)

	fillable.Logger().Debug("sobel extraction complete",
		"width", w, "height", h,
		"threshold", suggested,
		"edgeDensity", density)

	return fillable.NewEdgeMap(out, w, h, false, fillable.EngineMeta{
		SuggestedThreshold: suggested,
		EdgeDensity:        density,
	})
}
