package fillable

import (
	"image"
	"image/color"
	"testing"
)

func TestThumbnailDefaults(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 100, 100))

	for _, size := range []int{0, -5} {
		dst := Thumbnail(src, size)
		want := image.Rect(0, 0, DefaultThumbnailSize, DefaultThumbnailSize)
		if dst.Bounds() != want {
			t.Errorf("Thumbnail(size=%d) bounds = %v, want %v", size, dst.Bounds(), want)
		}
	}
}

func TestThumbnailNilSource(t *testing.T) {
	dst := Thumbnail(nil, 64)

	if dst.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("bounds = %v, want 64x64", dst.Bounds())
	}
	white := color.RGBA{255, 255, 255, 255}
	for _, p := range []struct{ x, y int }{{0, 0}, {32, 32}, {63, 63}} {
		if got := dst.RGBAAt(p.x, p.y); got != white {
			t.Errorf("pixel (%d,%d) = %v, want white", p.x, p.y, got)
		}
	}
}

func TestThumbnailEmptySource(t *testing.T) {
	dst := Thumbnail(image.NewGray(image.Rect(0, 0, 0, 0)), 64)
	if dst.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Errorf("bounds = %v, want 64x64", dst.Bounds())
	}
}

// TestThumbnailLetterboxing: a wide source scales to fit and centers
// vertically, leaving white bands above and below.
func TestThumbnailLetterboxing(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 200, 100)) // all black

	dst := Thumbnail(src, 64)

	// Scaled content occupies 64x32 centered at rows 16..47.
	if got := dst.RGBAAt(32, 32); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want black content", got)
	}
	white := color.RGBA{255, 255, 255, 255}
	if got := dst.RGBAAt(32, 4); got != white {
		t.Errorf("top band pixel = %v, want white", got)
	}
	if got := dst.RGBAAt(32, 60); got != white {
		t.Errorf("bottom band pixel = %v, want white", got)
	}
}

func TestThumbnailSquareFillsCanvas(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 128, 128)) // all black

	dst := Thumbnail(src, 32)

	if got := dst.RGBAAt(16, 16); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want black", got)
	}
	if got := dst.RGBAAt(2, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("corner-adjacent pixel = %v, want black", got)
	}
}
