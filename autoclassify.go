package fillable

// AutoClassify recommends the age group a page suits best and validates the
// page against that recommendation in one step. The recommendation measures
// tiny regions against the family floor as a neutral yardstick; the
// returned result re-measures them against the recommended group, so it can
// still report issues when no group fits the page well.
func AutoClassify(meta *PageMetadata) (AgeGroup, QAResult) {
	var regions []Region
	if meta != nil {
		regions = meta.Regions
	}

	floor := AgeGroupFamily.Bounds().MinRegionPixels
	regionCount := len(regions)
	tinyCount := 0
	var totalPixels int64
	for _, r := range regions {
		if r.PixelCount < floor {
			tinyCount++
		}
		totalPixels += int64(r.PixelCount)
	}

	var tinyPercentage, avgRegionSize float64
	if regionCount > 0 {
		tinyPercentage = float64(tinyCount) / float64(regionCount)
		avgRegionSize = float64(totalPixels) / float64(regionCount)
	}

	recommended := RecommendAgeGroup(regionCount, avgRegionSize, tinyPercentage)
	return recommended, Validate(meta, recommended)
}
