// Package label implements connected-component labeling over binary
// line-art buffers.
//
// Components are 4-connected sets of pixels whose intensity strictly
// exceeds a cutoff. Ids are assigned in row-major discovery order starting
// at 1; id 0 marks pixels that belong to no component. Filling is iterative
// with an explicit stack, so arbitrarily large components cannot overflow
// the goroutine stack. The label array doubles as the visited set.
package label

// Component accumulates the statistics of one connected component.
type Component struct {
	// ID is the component's label, assigned from 1 in discovery order.
	ID int

	// PixelCount is the number of pixels in the component.
	PixelCount int

	// SumX and SumY are coordinate sums; the centroid is Sum/PixelCount.
	SumX, SumY int64

	// MinX, MinY, MaxX, MaxY are the inclusive bounding box corners.
	MinX, MinY, MaxX, MaxY int
}

// Label scans pix in row-major order and labels every 4-connected component
// of pixels with intensity strictly above cutoff. It returns one label per
// pixel (0 for unlabeled pixels) and per-component statistics ordered by id.
//
// Given identical input, the returned labels and statistics are identical
// on every run.
func Label(pix []uint8, width, height int, cutoff uint8) ([]uint32, []Component) {
	if width <= 0 || height <= 0 || len(pix) < width*height {
		return nil, nil
	}

	n := width * height
	labels := make([]uint32, n)
	var comps []Component

	// Pixel indices fit int32 for any page below 2^31 pixels.
	stack := make([]int32, 0, 1024)
	next := uint32(0)

	for start := 0; start < n; start++ {
		if labels[start] != 0 || pix[start] <= cutoff {
			continue
		}

		next++
		sx, sy := start%width, start/width
		c := Component{ID: int(next), MinX: sx, MinY: sy, MaxX: sx, MaxY: sy}

		labels[start] = next
		stack = append(stack[:0], int32(start))

		for len(stack) > 0 {
			p := int(stack[len(stack)-1])
			stack = stack[:len(stack)-1]

			x := p % width
			y := p / width

			c.PixelCount++
			c.SumX += int64(x)
			c.SumY += int64(y)
			if x < c.MinX {
				c.MinX = x
			}
			if x > c.MaxX {
				c.MaxX = x
			}
			if y < c.MinY {
				c.MinY = y
			}
			if y > c.MaxY {
				c.MaxY = y
			}

			// Push unvisited fillable neighbors, marking them at push
			// time so no pixel enters the stack twice.
			if x > 0 {
				if q := p - 1; labels[q] == 0 && pix[q] > cutoff {
					labels[q] = next
					stack = append(stack, int32(q))
				}
			}
			if x < width-1 {
				if q := p + 1; labels[q] == 0 && pix[q] > cutoff {
					labels[q] = next
					stack = append(stack, int32(q))
				}
			}
			if y > 0 {
				if q := p - width; labels[q] == 0 && pix[q] > cutoff {
					labels[q] = next
					stack = append(stack, int32(q))
				}
			}
			if y < height-1 {
				if q := p + width; labels[q] == 0 && pix[q] > cutoff {
					labels[q] = next
					stack = append(stack, int32(q))
				}
			}
		}

		comps = append(comps, c)
	}

	return labels, comps
}

// Count labels pix and returns the number of components holding at least
// minPixels pixels.
func Count(pix []uint8, width, height int, cutoff uint8, minPixels int) int {
	_, comps := Label(pix, width, height, cutoff)
	n := 0
	for _, c := range comps {
		if c.PixelCount >= minPixels {
			n++
		}
	}
	return n
}
