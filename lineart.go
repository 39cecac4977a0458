package fillable

// Op records one post-processing operation that was applied, with the
// parameters it ran with. The log is diagnostic only; nothing downstream
// reads it.
type Op struct {
	Name   string
	Params string
}

// LineArt is the post-processed page: binary line work where white pixels
// are fillable background and black pixels are lines.
type LineArt struct {
	// Bitmap holds the final binary buffer.
	Bitmap *Bitmap

	// LineThickness is the achieved line thickness in pixels.
	LineThickness int

	// RegionEstimate counts the fillable components of at least 100
	// pixels, measured after gap sealing and before line dilation.
	RegionEstimate int

	// Ops is the ordered log of operations that actually ran.
	Ops []Op
}
