package fillable

import (
	"errors"
	"fmt"
)

// ErrUnknownAgeGroup is returned when an age group name is not recognized.
var ErrUnknownAgeGroup = errors.New("fillable: unknown age group")

// AgeGroup selects the audience a page is validated against. Each group
// binds a region-count ceiling and a minimum comfortable tap-target size.
type AgeGroup string

const (
	AgeGroupKids   AgeGroup = "kids"
	AgeGroupFamily AgeGroup = "family"
	AgeGroupAdult  AgeGroup = "adult"
)

// AgeBounds holds the hard validation limits of one age group.
type AgeBounds struct {
	// MaxRegions is the largest acceptable region count. Counts strictly
	// above it fail validation.
	MaxRegions int

	// MinRegionPixels is the smallest region a player in this group can
	// comfortably tap. Smaller regions count as tiny.
	MinRegionPixels int
}

var ageBoundsTable = map[AgeGroup]AgeBounds{
	AgeGroupKids:   {MaxRegions: 150, MinRegionPixels: 5000},
	AgeGroupFamily: {MaxRegions: 300, MinRegionPixels: 2000},
	AgeGroupAdult:  {MaxRegions: 1000, MinRegionPixels: 500},
}

// Bounds returns the group's validation limits. Unknown groups use the
// family limits.
func (g AgeGroup) Bounds() AgeBounds {
	if b, ok := ageBoundsTable[g]; ok {
		return b
	}
	return ageBoundsTable[AgeGroupFamily]
}

// IsValid returns true if the group is one of the known age groups.
func (g AgeGroup) IsValid() bool {
	_, ok := ageBoundsTable[g]
	return ok
}

// ParseAgeGroup converts an age group name to its tag.
func ParseAgeGroup(s string) (AgeGroup, error) {
	g := AgeGroup(s)
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %q (want kids, family or adult)", ErrUnknownAgeGroup, s)
	}
	return g, nil
}

// TinyRegionThreshold is the fraction of tiny regions above which a page
// fails hard validation. It is shared by every age group; only the tiny
// size itself varies per group.
const TinyRegionThreshold = 0.30

// Severity ranks a QAIssue. Fail issues block the page; warn issues only
// annotate it.
type Severity string

const (
	SeverityFail Severity = "fail"
	SeverityWarn Severity = "warn"
)

// Status is the overall validation outcome for a page.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Issue codes emitted by Validate.
const (
	// CodeRegionCountExceeded fails a page with more regions than the
	// target group allows.
	CodeRegionCountExceeded = "REGION_COUNT_EXCEEDED"

	// CodeTooManyTinyRegions fails a page whose tiny-region share exceeds
	// TinyRegionThreshold.
	CodeTooManyTinyRegions = "TOO_MANY_TINY_REGIONS"

	// CodeAgeGroupMismatch warns that the page suits a different group
	// better than the one it was validated against.
	CodeAgeGroupMismatch = "AGE_GROUP_MISMATCH"
)

// QAIssue is one finding from validation.
type QAIssue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// QAResult is the outcome of validating one page against an age group.
type QAResult struct {
	// Status aggregates the issues: fail beats warn beats pass.
	Status Status `json:"status"`

	// RegionCount is the number of regions on the page.
	RegionCount int `json:"regionCount"`

	// TinyRegionCount is the number of regions below the target group's
	// MinRegionPixels.
	TinyRegionCount int `json:"tinyRegionCount"`

	// TinyPercentage is TinyRegionCount over RegionCount, zero for an
	// empty page.
	TinyPercentage float64 `json:"tinyPercentage"`

	// RecommendedAgeGroup is the group the page actually suits.
	RecommendedAgeGroup AgeGroup `json:"recommendedAgeGroup"`

	// Issues lists every finding, hard failures first.
	Issues []QAIssue `json:"issues"`
}

// Recommendation cascade bounds. The kids and family "acceptable" rungs
// hold tiny shares to a stricter bar than the blocking threshold, so a page
// can clear hard validation and still be nudged to an older group.
const (
	kidsIdealMaxRegions   = 80
	kidsIdealMinAvgSize   = 10000
	familyIdealMaxRegions = 200
	familyIdealMinAvgSize = 3000
	kidsOkMaxRegions      = 150
	kidsOkMaxTinyShare    = 0.20
	familyOkMaxRegions    = 300
	familyOkMaxTinyShare  = 0.25
)

// RecommendAgeGroup maps page statistics to the best-fitting age group.
// Rules are evaluated in order and the first match wins; pages matching no
// rule fall through to adult. The cascade is pure: equal inputs always
// produce the same recommendation.
func RecommendAgeGroup(regionCount int, avgRegionSize, tinyPercentage float64) AgeGroup {
	switch {
	case regionCount <= kidsIdealMaxRegions && avgRegionSize >= kidsIdealMinAvgSize:
		return AgeGroupKids
	case regionCount <= familyIdealMaxRegions && avgRegionSize >= familyIdealMinAvgSize:
		return AgeGroupFamily
	case regionCount <= kidsOkMaxRegions && tinyPercentage <= kidsOkMaxTinyShare:
		return AgeGroupKids
	case regionCount <= familyOkMaxRegions && tinyPercentage <= familyOkMaxTinyShare:
		return AgeGroupFamily
	default:
		return AgeGroupAdult
	}
}

// Validate checks page metadata against the target age group. It is a pure
// function: no I/O, never fails, degenerate metadata yields a passing
// result for an empty page.
//
// Hard validation fails the page when the region count strictly exceeds the
// group's MaxRegions, or when the tiny-region share strictly exceeds
// TinyRegionThreshold. The advisory recommendation never fails a page; a
// recommendation other than the target only adds a warning.
func Validate(meta *PageMetadata, target AgeGroup) QAResult {
	bounds := target.Bounds()

	var regions []Region
	if meta != nil {
		regions = meta.Regions
	}

	regionCount := len(regions)
	tinyCount := 0
	var totalPixels int64
	for _, r := range regions {
		if r.PixelCount < bounds.MinRegionPixels {
			tinyCount++
		}
		totalPixels += int64(r.PixelCount)
	}

	var tinyPercentage, avgRegionSize float64
	if regionCount > 0 {
		tinyPercentage = float64(tinyCount) / float64(regionCount)
		avgRegionSize = float64(totalPixels) / float64(regionCount)
	}

	issues := make([]QAIssue, 0, 2)
	if regionCount > bounds.MaxRegions {
		issues = append(issues, QAIssue{
			Severity: SeverityFail,
			Code:     CodeRegionCountExceeded,
			Message: fmt.Sprintf("%d regions exceed the %s limit of %d",
				regionCount, target, bounds.MaxRegions),
		})
	}
	if tinyPercentage > TinyRegionThreshold {
		issues = append(issues, QAIssue{
			Severity: SeverityFail,
			Code:     CodeTooManyTinyRegions,
			Message: fmt.Sprintf("%.1f%% of regions are below %d pixels (limit %.0f%%)",
				tinyPercentage*100, bounds.MinRegionPixels, TinyRegionThreshold*100),
		})
	}

	recommended := RecommendAgeGroup(regionCount, avgRegionSize, tinyPercentage)
	if recommended != target {
		issues = append(issues, QAIssue{
			Severity: SeverityWarn,
			Code:     CodeAgeGroupMismatch,
			Message: fmt.Sprintf("page suits %s better than the requested %s",
				recommended, target),
		})
	}

	status := StatusPass
	for _, issue := range issues {
		switch {
		case issue.Severity == SeverityFail:
			status = StatusFail
		case status == StatusPass:
			status = StatusWarn
		}
	}

	return QAResult{
		Status:              status,
		RegionCount:         regionCount,
		TinyRegionCount:     tinyCount,
		TinyPercentage:      tinyPercentage,
		RecommendedAgeGroup: recommended,
		Issues:              issues,
	}
}
