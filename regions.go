package fillable

import (
	"github.com/linework/fillable/internal/label"
)

// Difficulty grades assigned to regions by area. Large open areas are easy
// to fill; small detailed ones are hard.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Area cut points, in pixels, between the difficulty grades.
const (
	easyMinPixels   = 50000
	mediumMinPixels = 10000
)

// Point is a sub-pixel position in image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned pixel rectangle anchored at its top-left corner.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size holds integer pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Region describes one fillable region of a page.
type Region struct {
	// ID is the region's label map id, assigned from 1 in row-major
	// discovery order.
	ID int `json:"id"`

	// Centroid is the mean pixel position of the region.
	Centroid Point `json:"centroid"`

	// BoundingBox is the tightest rectangle containing the region.
	BoundingBox Box `json:"boundingBox"`

	// PixelCount is the region's area in pixels.
	PixelCount int `json:"pixelCount"`

	// Difficulty grades the region for players: 1 easy, 2 medium, 3 hard.
	Difficulty int `json:"difficulty"`
}

// PageMetadata is the per-page sidecar describing every extracted region.
// It marshals to the JSON layout consumed by the player apps.
type PageMetadata struct {
	ImageSize     Size     `json:"imageSize"`
	TotalRegions  int      `json:"totalRegions"`
	LabelEncoding Encoding `json:"labelEncoding"`
	Regions       []Region `json:"regions"`
}

// Extract labels every fillable region of the line art and computes its
// metadata. Region ids start at 1 in row-major discovery order; id 0 is
// reserved for line pixels. The label map uses grayscale8 when at most 255
// regions exist and rgb24 otherwise.
//
// Extraction is deterministic: the same line art always yields the same
// ids, metadata, and label map bytes.
func Extract(la *LineArt) (*LabelMap, *PageMetadata) {
	if la == nil || la.Bitmap == nil || la.Bitmap.Width() <= 0 || la.Bitmap.Height() <= 0 {
		return emptyLabelMap(), emptyPageMetadata()
	}
	w, h := la.Bitmap.Width(), la.Bitmap.Height()
	labels, comps := label.Label(la.Bitmap.Pix(), w, h, fillableMin)
	return buildPage(labels, comps, w, h)
}

// ExtractParallel is Extract with the labeling pass spread over the given
// number of worker goroutines. Output is identical to Extract for every
// worker count; values of one or less run the sequential scan.
func ExtractParallel(la *LineArt, workers int) (*LabelMap, *PageMetadata) {
	if la == nil || la.Bitmap == nil || la.Bitmap.Width() <= 0 || la.Bitmap.Height() <= 0 {
		return emptyLabelMap(), emptyPageMetadata()
	}
	w, h := la.Bitmap.Width(), la.Bitmap.Height()
	labels, comps := label.LabelParallel(la.Bitmap.Pix(), w, h, fillableMin, workers)
	return buildPage(labels, comps, w, h)
}

func emptyPageMetadata() *PageMetadata {
	return &PageMetadata{
		LabelEncoding: EncodingGray8,
		Regions:       []Region{},
	}
}

// buildPage encodes the label array into a LabelMap and derives the region
// metadata from the component statistics.
func buildPage(labels []uint32, comps []label.Component, w, h int) (*LabelMap, *PageMetadata) {
	enc := EncodingGray8
	if len(comps) > EncodingGray8.MaxRegions() {
		enc = EncodingRGB24
	}

	lm := &LabelMap{
		encoding: enc,
		width:    w,
		height:   h,
		pix:      make([]uint8, w*h*enc.BytesPerPixel()),
	}
	switch enc {
	case EncodingGray8:
		for i, l := range labels {
			lm.pix[i] = uint8(l)
		}
	case EncodingRGB24:
		for i, l := range labels {
			if l == 0 {
				continue
			}
			lm.pix[i*3], lm.pix[i*3+1], lm.pix[i*3+2] = EncodeID(int(l))
		}
	}

	regions := make([]Region, len(comps))
	for i, c := range comps {
		regions[i] = Region{
			ID: c.ID,
			Centroid: Point{
				X: float64(c.SumX) / float64(c.PixelCount),
				Y: float64(c.SumY) / float64(c.PixelCount),
			},
			BoundingBox: Box{
				X:      c.MinX,
				Y:      c.MinY,
				Width:  c.MaxX - c.MinX + 1,
				Height: c.MaxY - c.MinY + 1,
			},
			PixelCount: c.PixelCount,
			Difficulty: difficultyFor(c.PixelCount),
		}
	}

	meta := &PageMetadata{
		ImageSize:     Size{Width: w, Height: h},
		TotalRegions:  len(regions),
		LabelEncoding: enc,
		Regions:       regions,
	}

	Logger().Debug("regions extracted",
		"width", w, "height", h,
		"totalRegions", meta.TotalRegions,
		"encoding", enc.String())

	return lm, meta
}

func difficultyFor(pixelCount int) int {
	switch {
	case pixelCount > easyMinPixels:
		return DifficultyEasy
	case pixelCount > mediumMinPixels:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
