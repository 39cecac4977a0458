package fillable

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/linework/fillable/internal/label"
	"github.com/linework/fillable/internal/morph"
)

// Post-processing tuning constants.
const (
	// simplifyDensityMax is the edge density above which simplified runs
	// raise the binarization threshold to thin out over-detailed output.
	simplifyDensityMax = 0.15

	// simplifyThresholdBoost is added to the suggested threshold on dense
	// simplified runs, capped at simplifyThresholdCap.
	simplifyThresholdBoost = 0.2
	simplifyThresholdCap   = 0.9

	// snapshotMinPixels is the component size floor for the region
	// estimate.
	snapshotMinPixels = 100

	// speckleMinImage is the image size, in pixels, below which speckle
	// removal is skipped: on tiny images the erosion destroys legitimate
	// small content.
	speckleMinImage = 10000
)

// postRun tracks the working buffer and the applied-operation log through
// one Process call.
type postRun struct {
	buf  []uint8
	w, h int
	ops  []Op
	log  *slog.Logger
}

// apply commits a step's output buffer, or skips the step when it failed,
// leaving the prior buffer in place. It reports whether the step applied.
func (r *postRun) apply(name, params string, out []uint8, err error) bool {
	if err != nil {
		r.log.Warn("post-process step skipped", "op", name, "error", err)
		return false
	}
	r.buf = out
	r.ops = append(r.ops, Op{Name: name, Params: params})
	return true
}

// Process turns a raw edge map into clean binary line art.
//
// The algorithm is fixed and order-dependent:
//
//  1. Binarize at the detector's suggested threshold (skipped for binary
//     inputs). Simplified runs on dense edge maps raise the threshold.
//  2. Close micro-gaps in the traced lines; simplified runs close twice.
//  3. Snapshot the fillable region count. This must happen after closing
//     and before dilation: dilating first would merge adjacent regions and
//     corrupt the estimate.
//  4. Dilate the lines to the target thickness.
//  5. Re-binarize with a hard threshold at 128.
//  6. Remove speckles by opening the lines.
//  7. On simplified runs, merge undersized fillable regions into the
//     surrounding lines.
//
// Process never fails: a sub-step that cannot run is skipped with a warning
// through the package logger, and the prior buffer passes through
// unchanged. Degenerate inputs produce an empty LineArt.
func Process(em *EdgeMap, cfg PostProcessConfig) *LineArt {
	log := Logger()
	if em == nil || em.Width <= 0 || em.Height <= 0 || len(em.Pix) < em.Width*em.Height {
		return &LineArt{Bitmap: NewBitmap(0, 0), LineThickness: 1}
	}

	w, h := em.Width, em.Height
	r := &postRun{w: w, h: h, log: log}

	// 1. Binarize. Binary inputs are already line art.
	r.buf = make([]uint8, w*h)
	copy(r.buf, em.Pix)
	if !em.IsBinary {
		cutoff := em.Meta.SuggestedThreshold
		if cfg.SimplifyRegions && em.Meta.EdgeDensity > simplifyDensityMax {
			cutoff = math.Min(cutoff+simplifyThresholdBoost, simplifyThresholdCap)
		}
		out, err := morph.Binarize(em.Pix, w, h, cutoff)
		r.apply("binarize", fmt.Sprintf("cutoff=%.2f", cutoff), out, err)
	}

	// 2. Close micro-gaps in the traced lines.
	if cfg.CloseKernel > 0 {
		out, err := morph.CloseLines(r.buf, w, h, cfg.CloseKernel)
		r.apply("close", fmt.Sprintf("radius=%d", cfg.CloseKernel), out, err)
	}
	if cfg.SimplifyRegions {
		radius := max(1, cfg.CloseKernel/2)
		out, err := morph.CloseLines(r.buf, w, h, radius)
		r.apply("close", fmt.Sprintf("radius=%d", radius), out, err)
	}

	// 3. Region-count snapshot, after closing and before dilation.
	estimate := label.Count(r.buf, w, h, fillableMin, snapshotMinPixels)
	r.ops = append(r.ops, Op{
		Name:   "snapshot",
		Params: fmt.Sprintf("regions=%d minPixels=%d", estimate, snapshotMinPixels),
	})

	// 4. Dilate lines to the target thickness.
	thickness := 1
	if cfg.Thickness > 1 {
		radius := cfg.Thickness / 2
		out, err := morph.DilateLines(r.buf, w, h, radius)
		if r.apply("dilate", fmt.Sprintf("radius=%d", radius), out, err) {
			thickness = 2*radius + 1
		}
	}

	// 5. Hard threshold against grayscale bleed from the passes above.
	thresholded, err := morph.Threshold(r.buf, w, h, 128)
	r.apply("threshold", "level=128", thresholded, err)

	// 6. Speckle removal.
	if w*h >= speckleMinImage && cfg.MinSpeckleArea > 0 {
		radius := int(math.Sqrt(float64(cfg.MinSpeckleArea)) / 3)
		if radius > 0 {
			out, err := morph.OpenLines(r.buf, w, h, radius)
			r.apply("despeckle", fmt.Sprintf("radius=%d", radius), out, err)
		}
	}

	// 7. Merge undersized fillable regions into the surrounding lines.
	if cfg.SimplifyRegions && cfg.MinRegionArea > 0 {
		out, removed, err := simplifySmall(r.buf, w, h, cfg.MinRegionArea)
		if err != nil {
			log.Warn("post-process step skipped", "op", "simplify", "error", err)
		} else {
			r.buf = out
			r.ops = append(r.ops, Op{
				Name:   "simplify",
				Params: fmt.Sprintf("minArea=%d removed=%d", cfg.MinRegionArea, removed),
			})
		}
	}

	log.Debug("post-processing complete",
		"width", w, "height", h,
		"regionEstimate", estimate,
		"lineThickness", thickness,
		"ops", len(r.ops))

	return &LineArt{
		Bitmap:         newBitmapFrom(r.buf, w, h),
		LineThickness:  thickness,
		RegionEstimate: estimate,
		Ops:            r.ops,
	}
}

// simplifySmall converts fillable components below minArea pixels into line
// pixels, visually merging them into the surrounding line work. It returns
// the new buffer and the number of components removed.
func simplifySmall(pix []uint8, width, height, minArea int) ([]uint8, int, error) {
	if width <= 0 || height <= 0 {
		return nil, 0, ErrInvalidDimensions
	}
	if len(pix) < width*height {
		return nil, 0, ErrBufferSize
	}

	labels, comps := label.Label(pix, width, height, fillableMin)

	small := make([]bool, len(comps)+1)
	removed := 0
	for _, c := range comps {
		if c.PixelCount < minArea {
			small[c.ID] = true
			removed++
		}
	}

	out := make([]uint8, width*height)
	copy(out, pix[:width*height])
	if removed == 0 {
		return out, 0, nil
	}
	for i, l := range labels {
		if l != 0 && small[l] {
			out[i] = LinePixel
		}
	}
	return out, removed, nil
}
