// Package morph implements the grayscale morphology passes used to clean
// binary line art.
//
// All operations read white (255) as fillable background and black (0) as
// line work, so thickening lines is a neighborhood minimum and thinning
// them a neighborhood maximum. Square structuring elements are separable:
// each operation runs a row pass into a pooled scratch buffer and a column
// pass into the result, giving O(w*h*r) instead of O(w*h*r*r).
package morph

import "errors"

// Common errors for morphology operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("morph: invalid dimensions")

	// ErrBufferSize is returned when the source buffer is smaller than the
	// dimensions require.
	ErrBufferSize = errors.New("morph: pixel buffer too small")

	// ErrInvalidRadius is returned when a kernel radius is negative.
	ErrInvalidRadius = errors.New("morph: invalid kernel radius")

	// ErrInvalidCutoff is returned when a binarization cutoff is outside [0, 1].
	ErrInvalidCutoff = errors.New("morph: cutoff outside [0, 1]")
)

// validate checks a source buffer against its claimed dimensions.
func validate(src []uint8, width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if len(src) < width*height {
		return ErrBufferSize
	}
	return nil
}

// DilateLines thickens line (black) pixels by radius in every direction
// using a square structuring element. The source is not modified.
func DilateLines(src []uint8, width, height, radius int) ([]uint8, error) {
	return minMaxFilter(src, width, height, radius, rowMin, colMin)
}

// ErodeLines thins line (black) pixels by radius in every direction using
// a square structuring element. The source is not modified.
func ErodeLines(src []uint8, width, height, radius int) ([]uint8, error) {
	return minMaxFilter(src, width, height, radius, rowMax, colMax)
}

// CloseLines seals gaps in line work up to roughly 2*radius pixels wide by
// dilating and then eroding the lines.
func CloseLines(src []uint8, width, height, radius int) ([]uint8, error) {
	out, err := DilateLines(src, width, height, radius)
	if err != nil {
		return nil, err
	}
	return ErodeLines(out, width, height, radius)
}

// OpenLines removes line fragments thinner than roughly 2*radius pixels by
// eroding and then dilating the lines. Used for speckle removal.
func OpenLines(src []uint8, width, height, radius int) ([]uint8, error) {
	out, err := ErodeLines(src, width, height, radius)
	if err != nil {
		return nil, err
	}
	return DilateLines(out, width, height, radius)
}

// passFunc is one separable filter pass between two equal-size buffers.
type passFunc func(src, dst []uint8, width, height, radius int)

// minMaxFilter runs the two-pass separable filter:
//  1. row pass: src -> pooled temp
//  2. column pass: temp -> dst
func minMaxFilter(src []uint8, width, height, radius int, rowPass, colPass passFunc) ([]uint8, error) {
	if err := validate(src, width, height); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, ErrInvalidRadius
	}

	dst := make([]uint8, width*height)
	if radius == 0 {
		copy(dst, src[:width*height])
		return dst, nil
	}

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	rowPass(src, temp, width, height, radius)
	colPass(temp, dst, width, height, radius)
	return dst, nil
}

// rowMin writes the horizontal window minimum of src into dst.
// Windows are clamped at the image edges (edge extension).
func rowMin(src, dst []uint8, width, height, radius int) {
	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		out := dst[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			lo, hi := window(x, radius, width)
			m := row[lo]
			for k := lo + 1; k <= hi; k++ {
				if row[k] < m {
					m = row[k]
				}
			}
			out[x] = m
		}
	}
}

// rowMax writes the horizontal window maximum of src into dst.
func rowMax(src, dst []uint8, width, height, radius int) {
	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		out := dst[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			lo, hi := window(x, radius, width)
			m := row[lo]
			for k := lo + 1; k <= hi; k++ {
				if row[k] > m {
					m = row[k]
				}
			}
			out[x] = m
		}
	}
}

// colMin writes the vertical window minimum of src into dst.
func colMin(src, dst []uint8, width, height, radius int) {
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			lo, hi := window(y, radius, height)
			m := src[lo*width+x]
			for k := lo + 1; k <= hi; k++ {
				if v := src[k*width+x]; v < m {
					m = v
				}
			}
			dst[y*width+x] = m
		}
	}
}

// colMax writes the vertical window maximum of src into dst.
func colMax(src, dst []uint8, width, height, radius int) {
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			lo, hi := window(y, radius, height)
			m := src[lo*width+x]
			for k := lo + 1; k <= hi; k++ {
				if v := src[k*width+x]; v > m {
					m = v
				}
			}
			dst[y*width+x] = m
		}
	}
}

// window clamps [center-radius, center+radius] to [0, size).
func window(center, radius, size int) (lo, hi int) {
	lo = center - radius
	if lo < 0 {
		lo = 0
	}
	hi = center + radius
	if hi >= size {
		hi = size - 1
	}
	return lo, hi
}
