package sobel

import "math"

// gaussianKernel builds a normalized 1D kernel for the given radius, with
// sigma at half the radius.
func gaussianKernel(radius int) []float64 {
	if radius < 1 {
		return []float64{1}
	}
	sigma := math.Max(float64(radius)/2, 0.5)
	k := make([]float64, radius*2+1)
	var sum float64
	for i := range k {
		d := float64(i - radius)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// blur applies a separable Gaussian blur to a luminance buffer. The two-pass
// algorithm convolves rows then columns, clamping samples at the borders.
func blur(src []uint8, width, height, radius int) []uint8 {
	kernel := gaussianKernel(radius)
	half := len(kernel) / 2

	temp := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var acc float64
			for i, kv := range kernel {
				sx := x + i - half
				if sx < 0 {
					sx = 0
				} else if sx >= width {
					sx = width - 1
				}
				acc += kv * float64(src[row+sx])
			}
			temp[row+x] = acc
		}
	}

	out := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc float64
			for i, kv := range kernel {
				sy := y + i - half
				if sy < 0 {
					sy = 0
				} else if sy >= height {
					sy = height - 1
				}
				acc += kv * temp[sy*width+x]
			}
			out[y*width+x] = uint8(acc + 0.5)
		}
	}
	return out
}
