package morph

// Binarize converts raw edge intensities into binary line art. Intensities
// strictly above cutoff*255 become line pixels (0), everything else becomes
// fillable background (255). cutoff is a fraction in [0, 1].
func Binarize(src []uint8, width, height int, cutoff float64) ([]uint8, error) {
	if err := validate(src, width, height); err != nil {
		return nil, err
	}
	if cutoff < 0 || cutoff > 1 {
		return nil, ErrInvalidCutoff
	}

	level := cutoff * 255
	dst := make([]uint8, width*height)
	for i, v := range src[:width*height] {
		if float64(v) > level {
			dst[i] = 0
		} else {
			dst[i] = 255
		}
	}
	return dst, nil
}

// Threshold re-binarizes a buffer after grayscale bleed: values strictly
// above level become 255, the rest 0.
func Threshold(src []uint8, width, height int, level uint8) ([]uint8, error) {
	if err := validate(src, width, height); err != nil {
		return nil, err
	}

	dst := make([]uint8, width*height)
	for i, v := range src[:width*height] {
		if v > level {
			dst[i] = 255
		} else {
			dst[i] = 0
		}
	}
	return dst, nil
}
