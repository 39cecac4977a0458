package fillable

import "time"

// Pipeline runs the three stages in sequence: post-processing, region
// extraction, validation. The zero value is usable; it validates against
// the family group with no post-processing cleanup.
//
// A Pipeline is stateless between runs and safe for concurrent use.
type Pipeline struct {
	// Config drives the post-processing stage.
	Config PostProcessConfig

	// Target is the age group pages are validated against. Ignored when
	// AutoClassify is set.
	Target AgeGroup

	// AutoClassify derives the age group from the page itself instead of
	// validating against Target.
	AutoClassify bool

	// LabelWorkers spreads region labeling over worker goroutines when
	// above one. The output is identical for every value; raise it only
	// for very large pages.
	LabelWorkers int
}

// NewPipeline returns a pipeline with the given post-processing config that
// validates against target.
func NewPipeline(cfg PostProcessConfig, target AgeGroup) *Pipeline {
	return &Pipeline{Config: cfg, Target: target}
}

// Timing records how long each stage of a run took.
type Timing struct {
	PostProcess time.Duration
	Extract     time.Duration
	Validate    time.Duration
	Total       time.Duration
}

// Result bundles everything one pipeline run produces.
type Result struct {
	// LineArt is the post-processed binary page.
	LineArt *LineArt

	// LabelMap assigns a region id to every pixel.
	LabelMap *LabelMap

	// Metadata describes every extracted region.
	Metadata *PageMetadata

	// AgeGroup is the group the page was validated against: Target, or
	// the recommendation when auto-classifying.
	AgeGroup AgeGroup

	// QA is the validation outcome.
	QA QAResult

	// Timing holds per-stage wall-clock durations.
	Timing Timing
}

// Run processes one edge map through all three stages. It never fails:
// degenerate inputs flow through as valid empty results and post-processing
// degrades by skipping rather than aborting.
func (p *Pipeline) Run(em *EdgeMap) *Result {
	start := time.Now()

	la := Process(em, p.Config)
	postDone := time.Now()

	var (
		lm   *LabelMap
		meta *PageMetadata
	)
	if p.LabelWorkers > 1 {
		lm, meta = ExtractParallel(la, p.LabelWorkers)
	} else {
		lm, meta = Extract(la)
	}
	extractDone := time.Now()

	group := p.Target
	var qa QAResult
	if p.AutoClassify {
		group, qa = AutoClassify(meta)
	} else {
		qa = Validate(meta, group)
	}
	validateDone := time.Now()

	res := &Result{
		LineArt:  la,
		LabelMap: lm,
		Metadata: meta,
		AgeGroup: group,
		QA:       qa,
		Timing: Timing{
			PostProcess: postDone.Sub(start),
			Extract:     extractDone.Sub(postDone),
			Validate:    validateDone.Sub(extractDone),
			Total:       validateDone.Sub(start),
		},
	}

	Logger().Info("pipeline run complete",
		"width", la.Bitmap.Width(),
		"height", la.Bitmap.Height(),
		"regions", meta.TotalRegions,
		"encoding", meta.LabelEncoding.String(),
		"ageGroup", group,
		"status", qa.Status,
		"elapsed", res.Timing.Total)

	return res
}
