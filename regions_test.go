package fillable

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"reflect"
	"testing"
)

// lineArtFromRows builds binary line art from a row pattern where '.' is
// fillable (255) and '#' is line (0).
func lineArtFromRows(rows []string) *LineArt {
	h := len(rows)
	w := len(rows[0])
	pix := make([]uint8, w*h)
	for y, row := range rows {
		for x := 0; x < w; x++ {
			if row[x] == '.' {
				pix[y*w+x] = FillablePixel
			}
		}
	}
	return &LineArt{Bitmap: newBitmapFrom(pix, w, h), LineThickness: 1}
}

// gridLineArt builds a page of isolated single-pixel regions at every odd
// coordinate pair, n per axis.
func gridLineArt(n int) *LineArt {
	size := 2*n + 1
	b := NewBitmap(size, size)
	for y := 1; y < size; y += 2 {
		for x := 1; x < size; x += 2 {
			b.SetPixel(x, y, FillablePixel)
		}
	}
	return &LineArt{Bitmap: b, LineThickness: 1}
}

// checkPageConsistency recomputes region statistics from the label map and
// compares them to the metadata.
func checkPageConsistency(t *testing.T, lm *LabelMap, meta *PageMetadata) {
	t.Helper()

	counts := make(map[int]int)
	for y := 0; y < lm.Height(); y++ {
		for x := 0; x < lm.Width(); x++ {
			id := lm.RegionIDAt(x, y)
			if id == 0 {
				continue
			}
			counts[id]++
			if id < 1 || id > meta.TotalRegions {
				t.Fatalf("label map id %d at (%d,%d) outside [1, %d]", id, x, y, meta.TotalRegions)
			}
		}
	}

	if len(counts) != meta.TotalRegions {
		t.Errorf("label map holds %d distinct ids, metadata says %d", len(counts), meta.TotalRegions)
	}
	for _, r := range meta.Regions {
		if counts[r.ID] != r.PixelCount {
			t.Errorf("region %d: label map count %d, metadata PixelCount %d",
				r.ID, counts[r.ID], r.PixelCount)
		}
	}
}

func TestExtractDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		la   *LineArt
	}{
		{"nil line art", nil},
		{"nil bitmap", &LineArt{}},
		{"empty bitmap", &LineArt{Bitmap: NewBitmap(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lm, meta := Extract(tt.la)

			if lm == nil || meta == nil {
				t.Fatal("Extract() returned nil results")
			}
			if meta.TotalRegions != 0 {
				t.Errorf("TotalRegions = %d, want 0", meta.TotalRegions)
			}
			if meta.Regions == nil || len(meta.Regions) != 0 {
				t.Errorf("Regions = %v, want empty non-nil", meta.Regions)
			}
			if meta.LabelEncoding != EncodingGray8 {
				t.Errorf("LabelEncoding = %v, want %v", meta.LabelEncoding, EncodingGray8)
			}
			if lm.Width() != 0 || lm.Height() != 0 {
				t.Errorf("label map = %dx%d, want empty", lm.Width(), lm.Height())
			}
		})
	}
}

func TestExtractSingleRegion(t *testing.T) {
	la := lineArtFromRows([]string{
		"######",
		"#....#",
		"#....#",
		"#....#",
		"######",
	})

	lm, meta := Extract(la)

	if meta.TotalRegions != 1 {
		t.Fatalf("TotalRegions = %d, want 1", meta.TotalRegions)
	}
	got := meta.Regions[0]
	want := Region{
		ID:          1,
		Centroid:    Point{X: 2.5, Y: 2},
		BoundingBox: Box{X: 1, Y: 1, Width: 4, Height: 3},
		PixelCount:  12,
		Difficulty:  DifficultyHard,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("region = %+v, want %+v", got, want)
	}

	if id := lm.RegionIDAt(0, 0); id != 0 {
		t.Errorf("id at line pixel = %d, want 0", id)
	}
	if id := lm.RegionIDAt(2, 2); id != 1 {
		t.Errorf("id at interior pixel = %d, want 1", id)
	}
	checkPageConsistency(t, lm, meta)
}

// TestExtractIDsRowMajor: ids follow the row-major position of each region's
// first pixel, not region size or any geometric order.
func TestExtractIDsRowMajor(t *testing.T) {
	la := lineArtFromRows([]string{
		"#######",
		"####..#",
		"####..#",
		"#######",
		"#..####",
		"#..####",
		"#######",
	})

	lm, meta := Extract(la)

	if meta.TotalRegions != 2 {
		t.Fatalf("TotalRegions = %d, want 2", meta.TotalRegions)
	}
	if id := lm.RegionIDAt(4, 1); id != 1 {
		t.Errorf("upper-right region id = %d, want 1", id)
	}
	if id := lm.RegionIDAt(1, 4); id != 2 {
		t.Errorf("lower-left region id = %d, want 2", id)
	}
}

// TestExtractEncodingSelection: the encoding is chosen from the final region
// count, switching to rgb24 only past 255 regions.
func TestExtractEncodingSelection(t *testing.T) {
	t.Run("255 regions stay grayscale8", func(t *testing.T) {
		la := gridLineArt(16)
		la.Bitmap.SetPixel(1, 1, LinePixel) // down to 255 regions

		lm, meta := Extract(la)

		if meta.TotalRegions != 255 {
			t.Fatalf("TotalRegions = %d, want 255", meta.TotalRegions)
		}
		if meta.LabelEncoding != EncodingGray8 {
			t.Errorf("LabelEncoding = %v, want %v", meta.LabelEncoding, EncodingGray8)
		}
		if got, want := len(lm.Pix()), 33*33; got != want {
			t.Errorf("buffer size = %d, want %d (one byte per pixel)", got, want)
		}
		if id := lm.RegionIDAt(31, 31); id != 255 {
			t.Errorf("last region id = %d, want 255", id)
		}
		checkPageConsistency(t, lm, meta)
	})

	t.Run("256 regions switch to rgb24", func(t *testing.T) {
		la := gridLineArt(16)

		lm, meta := Extract(la)

		if meta.TotalRegions != 256 {
			t.Fatalf("TotalRegions = %d, want 256", meta.TotalRegions)
		}
		if meta.LabelEncoding != EncodingRGB24 {
			t.Errorf("LabelEncoding = %v, want %v", meta.LabelEncoding, EncodingRGB24)
		}
		if got, want := len(lm.Pix()), 33*33*3; got != want {
			t.Errorf("buffer size = %d, want %d (three bytes per pixel)", got, want)
		}
		if id := lm.RegionIDAt(31, 31); id != 256 {
			t.Errorf("last region id = %d, want 256", id)
		}
		checkPageConsistency(t, lm, meta)
	})
}

func TestExtractDeterminism(t *testing.T) {
	la := gridLineArt(8)

	lm1, meta1 := Extract(la)
	lm2, meta2 := Extract(la)

	if !bytes.Equal(lm1.Pix(), lm2.Pix()) {
		t.Error("label map bytes differ between runs")
	}
	if !reflect.DeepEqual(meta1, meta2) {
		t.Error("metadata differs between runs")
	}
}

// TestExtractParallelMatchesExtract: worker count never changes ids,
// metadata, or encoded bytes.
func TestExtractParallelMatchesExtract(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	noisePix := make([]uint8, 97*64)
	for i := range noisePix {
		if r.Float64() < 0.6 {
			noisePix[i] = FillablePixel
		}
	}

	inputs := []struct {
		name string
		la   *LineArt
	}{
		{"noise", &LineArt{Bitmap: newBitmapFrom(noisePix, 97, 64)}},
		{"many regions", gridLineArt(16)},
	}
	for _, in := range inputs {
		wantLM, wantMeta := Extract(in.la)
		for _, workers := range []int{2, 4, 7} {
			got, gotMeta := ExtractParallel(in.la, workers)
			if !bytes.Equal(got.Pix(), wantLM.Pix()) {
				t.Errorf("%s workers=%d: label map bytes differ", in.name, workers)
			}
			if got.Encoding() != wantLM.Encoding() {
				t.Errorf("%s workers=%d: encoding differs", in.name, workers)
			}
			if !reflect.DeepEqual(gotMeta, wantMeta) {
				t.Errorf("%s workers=%d: metadata differs", in.name, workers)
			}
		}
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		pixels int
		want   int
	}{
		{1, DifficultyHard},
		{10000, DifficultyHard},
		{10001, DifficultyMedium},
		{50000, DifficultyMedium},
		{50001, DifficultyEasy},
		{5000000, DifficultyEasy},
	}
	for _, tt := range tests {
		if got := difficultyFor(tt.pixels); got != tt.want {
			t.Errorf("difficultyFor(%d) = %d, want %d", tt.pixels, got, tt.want)
		}
	}
}

// TestPageMetadataJSON pins the sidecar schema consumed by the player apps.
func TestPageMetadataJSON(t *testing.T) {
	meta := &PageMetadata{
		ImageSize:     Size{Width: 4, Height: 3},
		TotalRegions:  1,
		LabelEncoding: EncodingGray8,
		Regions: []Region{{
			ID:          1,
			Centroid:    Point{X: 1.5, Y: 1},
			BoundingBox: Box{X: 0, Y: 0, Width: 4, Height: 3},
			PixelCount:  9,
			Difficulty:  3,
		}},
	}

	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"imageSize":{"width":4,"height":3},"totalRegions":1,"labelEncoding":"grayscale8",` +
		`"regions":[{"id":1,"centroid":{"x":1.5,"y":1},"boundingBox":{"x":0,"y":0,"width":4,"height":3},` +
		`"pixelCount":9,"difficulty":3}]}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}

	var back PageMetadata
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(&back, meta) {
		t.Errorf("round trip = %+v, want %+v", &back, meta)
	}
}
