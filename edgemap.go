package fillable

import (
	"errors"
	"image"
)

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("fillable: invalid dimensions")

	// ErrBufferSize is returned when a provided buffer is smaller than the
	// dimensions require.
	ErrBufferSize = errors.New("fillable: pixel buffer too small")
)

// EngineMeta carries the detector-reported hints attached to an EdgeMap.
type EngineMeta struct {
	// SuggestedThreshold is the detector's recommended binarization
	// threshold as a fraction of full intensity, in [0, 1].
	SuggestedThreshold float64

	// EdgeDensity is the fraction of pixels the detector considers edge
	// pixels, in [0, 1].
	EdgeDensity float64
}

// EdgeMap is the raw output of an edge detector: one intensity byte per
// pixel where higher values mean stronger edge response. It is produced
// externally (or by a detect.Engine) and treated as immutable by the
// pipeline.
type EdgeMap struct {
	Width  int
	Height int

	// Pix holds one intensity byte per pixel in row-major order.
	Pix []uint8

	// IsBinary reports that Pix already holds finished binary line art:
	// LinePixel for lines and FillablePixel for fillable background.
	// When set, post-processing skips binarization entirely.
	IsBinary bool

	// Meta carries the producing engine's threshold and density hints.
	Meta EngineMeta
}

// NewEdgeMap creates an EdgeMap over an existing buffer without copying.
// len(pix) must be at least width*height.
func NewEdgeMap(pix []uint8, width, height int, isBinary bool, meta EngineMeta) (*EdgeMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pix) < width*height {
		return nil, ErrBufferSize
	}
	return &EdgeMap{
		Width:    width,
		Height:   height,
		Pix:      pix[:width*height],
		IsBinary: isBinary,
		Meta:     meta,
	}, nil
}

// EdgeMapFromImage converts an image to an EdgeMap using the standard
// luminance weights. The caller supplies the engine hints.
func EdgeMapFromImage(img image.Image, isBinary bool, meta EngineMeta) (*EdgeMap, error) {
	if img == nil {
		return nil, ErrInvalidDimensions
	}
	b := BitmapFromImage(img)
	return NewEdgeMap(b.Pix(), b.Width(), b.Height(), isBinary, meta)
}

// IntensityAt returns the edge intensity at (x, y).
// Out-of-bounds coordinates read as zero.
func (m *EdgeMap) IntensityAt(x, y int) uint8 {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}
