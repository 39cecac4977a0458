package fillable

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchItem pairs an edge map with the name its results are reported under.
type BatchItem struct {
	Name string
	Edge *EdgeMap
}

// BatchResult is one page's outcome within a batch run.
type BatchResult struct {
	Name   string
	Result *Result
}

// ProcessBatch runs the pipeline over every item with at most workers pages
// in flight; workers of zero or less means one per CPU. Results keep the
// order of items regardless of scheduling.
//
// A page that fails validation is a result, not an error; the batch always
// completes unless ctx is canceled, in which case the partial work is
// discarded and the context's error returned.
func ProcessBatch(ctx context.Context, p *Pipeline, items []BatchItem, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]BatchResult, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = BatchResult{Name: item.Name, Result: p.Run(item.Edge)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Logger().Info("batch complete", "pages", len(items), "workers", workers)
	return results, nil
}

// BatchSummary aggregates the outcomes of a batch run.
type BatchSummary struct {
	Pages        int              `json:"pages"`
	Passed       int              `json:"passed"`
	Warned       int              `json:"warned"`
	Failed       int              `json:"failed"`
	TotalRegions int              `json:"totalRegions"`
	ByGroup      map[AgeGroup]int `json:"byGroup"`
	Elapsed      time.Duration    `json:"elapsed"`
}

// Summarize tallies batch results into one summary: status counts, total
// regions, a histogram of recommended age groups, and the summed per-page
// processing time.
func Summarize(results []BatchResult) BatchSummary {
	s := BatchSummary{
		Pages:   len(results),
		ByGroup: make(map[AgeGroup]int),
	}
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		switch r.Result.QA.Status {
		case StatusPass:
			s.Passed++
		case StatusWarn:
			s.Warned++
		case StatusFail:
			s.Failed++
		}
		s.TotalRegions += r.Result.Metadata.TotalRegions
		s.ByGroup[r.Result.QA.RecommendedAgeGroup]++
		s.Elapsed += r.Result.Timing.Total
	}
	return s
}
