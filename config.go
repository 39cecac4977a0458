package fillable

// PostProcessConfig controls the post-processing stage. The zero value is
// usable but performs almost no cleanup; DefaultConfig returns the tuned
// production values.
type PostProcessConfig struct {
	// CloseKernel is the radius of the gap-sealing close applied to the
	// traced lines. Zero disables gap sealing.
	CloseKernel int

	// Thickness is the target line thickness in pixels. Values of one or
	// less leave the detected lines at their natural thickness.
	Thickness int

	// MinSpeckleArea is the approximate area, in pixels, of the largest
	// line fragment still considered noise. The speckle pass derives its
	// kernel radius from this value. Zero disables speckle removal.
	MinSpeckleArea int

	// SimplifyRegions reduces page complexity for young audiences: the
	// binarization threshold is raised on dense edge maps, an extra close
	// pass runs, and fillable regions below MinRegionArea are merged into
	// the surrounding lines.
	SimplifyRegions bool

	// MinRegionArea is the smallest fillable region, in pixels, kept when
	// SimplifyRegions is set.
	MinRegionArea int
}

// DefaultConfig returns the post-processing defaults used for production
// page assets.
func DefaultConfig() PostProcessConfig {
	return PostProcessConfig{
		CloseKernel:     2,
		Thickness:       3,
		MinSpeckleArea:  16,
		SimplifyRegions: false,
		MinRegionArea:   500,
	}
}
