package label

import "sync"

// LabelParallel produces output identical to Label using worker goroutines
// over horizontal bands, with union-find merging across the band seams and
// a final row-major relabeling pass that restores discovery order.
//
// It exists as a performance optimization for very large pages; callers may
// substitute it for Label freely because the labels, ids, and statistics
// match the sequential scan bit for bit regardless of worker count.
func LabelParallel(pix []uint8, width, height int, cutoff uint8, workers int) ([]uint32, []Component) {
	if width <= 0 || height <= 0 || len(pix) < width*height {
		return nil, nil
	}

	bands := workers
	if bands > height {
		bands = height
	}
	if bands <= 1 {
		return Label(pix, width, height, cutoff)
	}

	n := width * height
	labels := make([]uint32, n)
	bandComps := make([][]Component, bands)
	rowLo := make([]int, bands)
	rowHi := make([]int, bands)

	// Phase 1: label each band independently with band-local ids.
	// Bands cover disjoint row ranges, so the shared label array is
	// written without synchronization.
	var wg sync.WaitGroup
	for b := 0; b < bands; b++ {
		rowLo[b] = b * height / bands
		rowHi[b] = (b + 1) * height / bands
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			bandComps[b] = labelBand(pix, labels, width, rowLo[b], rowHi[b], cutoff)
		}(b)
	}
	wg.Wait()

	// Phase 2: shift band-local ids into one provisional id space.
	offset := make([]uint32, bands)
	total := uint32(0)
	for b := 0; b < bands; b++ {
		offset[b] = total
		total += uint32(len(bandComps[b]))
	}
	for b := 0; b < bands; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			off := offset[b]
			if off == 0 {
				return
			}
			for i := rowLo[b] * width; i < rowHi[b]*width; i++ {
				if labels[i] != 0 {
					labels[i] += off
				}
			}
			for j := range bandComps[b] {
				bandComps[b][j].ID += int(off)
			}
		}(b)
	}
	wg.Wait()

	// Phase 3: union provisional ids across every band seam.
	uf := newUnionFind(int(total))
	for b := 1; b < bands; b++ {
		top := (rowLo[b] - 1) * width
		bot := rowLo[b] * width
		for x := 0; x < width; x++ {
			if pix[top+x] > cutoff && pix[bot+x] > cutoff {
				uf.union(int32(labels[top+x]), int32(labels[bot+x]))
			}
		}
	}

	// Phase 4: relabel in row-major order. The first pixel of each merged
	// set assigns the next final id, which reproduces the sequential
	// scan's discovery order exactly.
	finalOf := make([]uint32, total+1)
	finalCount := uint32(0)
	for i := 0; i < n; i++ {
		l := labels[i]
		if l == 0 {
			continue
		}
		root := uf.find(int32(l))
		f := finalOf[root]
		if f == 0 {
			finalCount++
			f = finalCount
			finalOf[root] = f
		}
		labels[i] = f
	}

	if finalCount == 0 {
		return labels, nil
	}

	// Merge per-band statistics into the final components.
	comps := make([]Component, finalCount)
	for b := 0; b < bands; b++ {
		for _, c := range bandComps[b] {
			f := finalOf[uf.find(int32(c.ID))]
			fc := &comps[f-1]
			if fc.ID == 0 {
				fc.ID = int(f)
				fc.PixelCount = c.PixelCount
				fc.SumX, fc.SumY = c.SumX, c.SumY
				fc.MinX, fc.MinY = c.MinX, c.MinY
				fc.MaxX, fc.MaxY = c.MaxX, c.MaxY
				continue
			}
			fc.PixelCount += c.PixelCount
			fc.SumX += c.SumX
			fc.SumY += c.SumY
			if c.MinX < fc.MinX {
				fc.MinX = c.MinX
			}
			if c.MinY < fc.MinY {
				fc.MinY = c.MinY
			}
			if c.MaxX > fc.MaxX {
				fc.MaxX = c.MaxX
			}
			if c.MaxY > fc.MaxY {
				fc.MaxY = c.MaxY
			}
		}
	}

	return labels, comps
}

// labelBand labels the rows [rowLo, rowHi) of pix with band-local ids
// starting at 1, writing into the shared label array. The fill never leaves
// the band; cross-band merging happens later along the seams.
func labelBand(pix []uint8, labels []uint32, width, rowLo, rowHi int, cutoff uint8) []Component {
	var comps []Component
	stack := make([]int32, 0, 1024)
	next := uint32(0)

	for start := rowLo * width; start < rowHi*width; start++ {
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
			if y > rowLo {
				if q := p - width; labels[q] == 0 && pix[q] > cutoff {
					labels[q] = next
					stack = append(stack, int32(q))
				}
			}
			if y < rowHi-1 {
				if q := p + width; labels[q] == 0 && pix[q] > cutoff {
					labels[q] = next
					stack = append(stack, int32(q))
				}
			}
		}

		comps = append(comps, c)
	}

	return comps
}
