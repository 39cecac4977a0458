package fillable

import (
	"errors"
	"fmt"
	"image"
)

// ErrUnknownEncoding is returned when an encoding tag is not recognized.
var ErrUnknownEncoding = errors.New("fillable: unknown label encoding")

// Encoding identifies how region ids are stored in a LabelMap. Exactly one
// encoding applies per asset; consumers branch on the tag and never infer
// the encoding from buffer size.
type Encoding uint8

const (
	// EncodingGray8 stores one id byte per pixel. The pixel value is the
	// region id directly, so at most 255 regions fit.
	EncodingGray8 Encoding = iota

	// EncodingRGB24 packs an id across three bytes per pixel as
	// id = R + G*256 + B*65536, supporting up to 16,777,215 regions.
	EncodingRGB24

	// encodingCount is the number of encodings (for internal use).
	encodingCount
)

// EncodingInfo contains metadata about a label encoding.
type EncodingInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// MaxRegions is the largest region id the encoding can represent.
	MaxRegions int
}

// encodingInfoTable contains metadata for each encoding.
var encodingInfoTable = [encodingCount]EncodingInfo{
	EncodingGray8: {
		BytesPerPixel: 1,
		MaxRegions:    255,
	},
	EncodingRGB24: {
		BytesPerPixel: 3,
		MaxRegions:    16777215,
	},
}

// Info returns the EncodingInfo for this encoding.
func (e Encoding) Info() EncodingInfo {
	if e >= encodingCount {
		return EncodingInfo{}
	}
	return encodingInfoTable[e]
}

// BytesPerPixel returns the number of bytes per pixel for this encoding.
func (e Encoding) BytesPerPixel() int {
	return e.Info().BytesPerPixel
}

// MaxRegions returns the largest region id this encoding can represent.
func (e Encoding) MaxRegions() int {
	return e.Info().MaxRegions
}

// IsValid returns true if the encoding is a known encoding.
func (e Encoding) IsValid() bool {
	return e < encodingCount
}

// String returns the serialized name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingGray8:
		return "grayscale8"
	case EncodingRGB24:
		return "rgb24"
	default:
		return "unknown"
	}
}

// ParseEncoding converts a serialized encoding name back to its tag.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "grayscale8":
		return EncodingGray8, nil
	case "rgb24":
		return EncodingRGB24, nil
	default:
		return encodingCount, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

// MarshalJSON encodes the encoding as its serialized name.
func (e Encoding) MarshalJSON() ([]byte, error) {
	if !e.IsValid() {
		return nil, ErrUnknownEncoding
	}
	return []byte(`"` + e.String() + `"`), nil
}

// UnmarshalJSON decodes the encoding from its serialized name.
func (e *Encoding) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrUnknownEncoding
	}
	parsed, err := ParseEncoding(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// EncodeID splits a region id into its rgb24 channel bytes.
func EncodeID(id int) (r, g, b uint8) {
	return uint8(id & 0xff), uint8((id >> 8) & 0xff), uint8((id >> 16) & 0xff)
}

// DecodeID reassembles a region id from its rgb24 channel bytes.
func DecodeID(r, g, b uint8) int {
	return int(r) + int(g)*256 + int(b)*65536
}

// LabelMap assigns a region id to every pixel of a page. Id 0 marks line
// and background pixels and never identifies a region. The buffer layout
// depends on the encoding tag.
type LabelMap struct {
	encoding Encoding
	width    int
	height   int
	pix      []uint8
}

// NewLabelMap creates an all-zero label map with the given dimensions and
// encoding.
func NewLabelMap(width, height int, encoding Encoding) (*LabelMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !encoding.IsValid() {
		return nil, ErrUnknownEncoding
	}
	return &LabelMap{
		encoding: encoding,
		width:    width,
		height:   height,
		pix:      make([]uint8, width*height*encoding.BytesPerPixel()),
	}, nil
}

// emptyLabelMap builds the result for degenerate zero-size inputs.
func emptyLabelMap() *LabelMap {
	return &LabelMap{encoding: EncodingGray8, pix: []uint8{}}
}

// Encoding returns the encoding tag.
func (m *LabelMap) Encoding() Encoding {
	return m.encoding
}

// Width returns the width of the label map.
func (m *LabelMap) Width() int {
	return m.width
}

// Height returns the height of the label map.
func (m *LabelMap) Height() int {
	return m.height
}

// Pix returns the raw encoded buffer.
func (m *LabelMap) Pix() []uint8 {
	return m.pix
}

// RegionIDAt returns the region id at (x, y), or 0 for line/background
// pixels and out-of-bounds coordinates.
func (m *LabelMap) RegionIDAt(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	switch m.encoding {
	case EncodingGray8:
		return int(m.pix[y*m.width+x])
	case EncodingRGB24:
		i := (y*m.width + x) * 3
		return DecodeID(m.pix[i], m.pix[i+1], m.pix[i+2])
	default:
		return 0
	}
}

// setRegionID writes a region id at (x, y). Ids beyond the encoding's
// MaxRegions are truncated to their low bytes; extraction chooses the
// encoding so this never happens in practice.
func (m *LabelMap) setRegionID(x, y, id int) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	switch m.encoding {
	case EncodingGray8:
		m.pix[y*m.width+x] = uint8(id)
	case EncodingRGB24:
		i := (y*m.width + x) * 3
		m.pix[i], m.pix[i+1], m.pix[i+2] = EncodeID(id)
	}
}

// Image converts the label map to an image for persistence: image.Gray for
// grayscale8, image.RGBA with opaque alpha for rgb24. The recorded encoding
// must accompany the image so consumers can decode it.
func (m *LabelMap) Image() image.Image {
	switch m.encoding {
	case EncodingRGB24:
		img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
		for p := 0; p < m.width*m.height; p++ {
			img.Pix[p*4+0] = m.pix[p*3+0]
			img.Pix[p*4+1] = m.pix[p*3+1]
			img.Pix[p*4+2] = m.pix[p*3+2]
			img.Pix[p*4+3] = 0xff
		}
		return img
	default:
		img := image.NewGray(image.Rect(0, 0, m.width, m.height))
		copy(img.Pix, m.pix)
		return img
	}
}

// LabelMapFromImage rebuilds a LabelMap from a persisted image and its
// recorded encoding. The encoding must be supplied by the consumer; it is
// never guessed from the image.
func LabelMapFromImage(img image.Image, encoding Encoding) (*LabelMap, error) {
	if img == nil {
		return nil, ErrInvalidDimensions
	}
	bounds := img.Bounds()
	m, err := NewLabelMap(bounds.Dx(), bounds.Dy(), encoding)
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			switch encoding {
			case EncodingGray8:
				// Gray images report r == g == b.
				m.pix[y*m.width+x] = uint8(r >> 8)
			case EncodingRGB24:
				i := (y*m.width + x) * 3
				m.pix[i] = uint8(r >> 8)
				m.pix[i+1] = uint8(g >> 8)
				m.pix[i+2] = uint8(b >> 8)
			}
		}
	}
	return m, nil
}
