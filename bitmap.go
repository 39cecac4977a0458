package fillable

import (
	"image"
	"image/color"
)

// White and black pixel values for binary line art. Intermediate values can
// appear in raw edge maps; post-processing reduces everything to these two.
const (
	// LinePixel is the value of a line (non-fillable) pixel.
	LinePixel uint8 = 0

	// FillablePixel is the value of a fillable background pixel.
	FillablePixel uint8 = 255
)

// fillableMin is the intensity a pixel must exceed to count as fillable.
const fillableMin uint8 = 200

// Bitmap represents a rectangular grayscale pixel buffer, one byte per
// pixel in row-major order. It is the working representation for edge maps
// and line art.
type Bitmap struct {
	width  int
	height int
	pix    []uint8
}

// NewBitmap creates a new bitmap with the given dimensions.
// All pixels start at zero (line/black). Non-positive dimensions yield an
// empty bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// newBitmapFrom wraps an existing buffer without copying. The caller must
// hand over ownership; len(pix) must be width*height.
func newBitmapFrom(pix []uint8, width, height int) *Bitmap {
	return &Bitmap{width: width, height: height, pix: pix}
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.height
}

// Pix returns the raw pixel data.
func (b *Bitmap) Pix() []uint8 {
	return b.pix
}

// SetPixel sets the intensity of a single pixel.
func (b *Bitmap) SetPixel(x, y int, v uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = v
}

// PixelAt returns the intensity of a single pixel.
// Out-of-bounds coordinates read as LinePixel.
func (b *Bitmap) PixelAt(x, y int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return LinePixel
	}
	return b.pix[y*b.width+x]
}

// Fill sets every pixel to the given intensity.
func (b *Bitmap) Fill(v uint8) {
	for i := range b.pix {
		b.pix[i] = v
	}
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Bitmap{width: b.width, height: b.height, pix: pix}
}

// Image converts the bitmap to an image.Gray sharing no memory with b.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// BitmapFromImage creates a bitmap from an image, converting to grayscale
// via the standard luminance weights.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	b := NewBitmap(width, height)

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			src := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			copy(b.pix[y*width:(y+1)*width], src)
		}
		return b
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			b.pix[y*width+x] = c.(color.Gray).Y
		}
	}
	return b
}

// At implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return color.Gray{Y: b.PixelAt(x, y)}
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.GrayModel
}
