package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/linework/fillable"
)

// passingResult builds a small passing pipeline result for report tests.
func passingResult() *fillable.Result {
	return &fillable.Result{
		LineArt: &fillable.LineArt{
			Bitmap:         fillable.NewBitmap(64, 64),
			LineThickness:  3,
			RegionEstimate: 2,
			Ops: []fillable.Op{
				{Name: "close", Params: "radius=2"},
				{Name: "snapshot", Params: "regions=2 minPixels=100"},
				{Name: "dilate", Params: "radius=1"},
			},
		},
		Metadata: &fillable.PageMetadata{
			ImageSize:     fillable.Size{Width: 64, Height: 64},
			TotalRegions:  2,
			LabelEncoding: fillable.EncodingGray8,
			Regions: []fillable.Region{
				{ID: 1, PixelCount: 60000, Difficulty: fillable.DifficultyEasy,
					Centroid: fillable.Point{X: 32, Y: 20}},
				{ID: 2, PixelCount: 12000, Difficulty: fillable.DifficultyMedium,
					Centroid: fillable.Point{X: 32, Y: 50}},
			},
		},
		AgeGroup: fillable.AgeGroupKids,
		QA: fillable.QAResult{
			Status:              fillable.StatusPass,
			RegionCount:         2,
			RecommendedAgeGroup: fillable.AgeGroupKids,
			Issues:              []fillable.QAIssue{},
		},
	}
}

func failingResult() *fillable.Result {
	res := passingResult()
	res.QA = fillable.QAResult{
		Status:              fillable.StatusFail,
		RegionCount:         200,
		TinyRegionCount:     90,
		TinyPercentage:      0.45,
		RecommendedAgeGroup: fillable.AgeGroupAdult,
		Issues: []fillable.QAIssue{
			{Severity: fillable.SeverityFail, Code: fillable.CodeRegionCountExceeded,
				Message: "200 regions exceed the kids limit of 150"},
			{Severity: fillable.SeverityWarn, Code: fillable.CodeAgeGroupMismatch,
				Message: "page suits adult better than the requested kids"},
		},
	}
	return res
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("writes report header and summary table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "cat-001.png", passingResult()); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Fillability Report") {
			t.Error("expected output to contain H1 header")
		}
		if !strings.Contains(output, "`cat-001.png`") {
			t.Error("expected output to contain the page name")
		}
		if !strings.Contains(output, "64x64") {
			t.Error("expected output to contain the page size")
		}
		if !strings.Contains(output, "grayscale8") {
			t.Error("expected output to contain the label encoding")
		}
	})

	t.Run("passing page gets a tip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", passingResult()); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "✅ pass") {
			t.Error("expected pass status marker")
		}
		if !strings.Contains(output, "[!TIP]") {
			t.Error("expected TIP alert for a passing page")
		}
	})

	t.Run("failing page gets a caution and the issue table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", failingResult()); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "❌ fail") {
			t.Error("expected fail status marker")
		}
		if !strings.Contains(output, "[!CAUTION]") {
			t.Error("expected CAUTION alert for a failing page")
		}
		if !strings.Contains(output, fillable.CodeRegionCountExceeded) {
			t.Error("expected the failing issue code in the issue table")
		}
		if !strings.Contains(output, "200 regions exceed the kids limit of 150") {
			t.Error("expected the issue message in the issue table")
		}
	})

	t.Run("warning page gets a warning alert", func(t *testing.T) {
		t.Parallel()

		res := passingResult()
		res.QA.Status = fillable.StatusWarn
		res.QA.RecommendedAgeGroup = fillable.AgeGroupFamily

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", res); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "⚠️ warn") {
			t.Error("expected warn status marker")
		}
		if !strings.Contains(output, "[!WARNING]") {
			t.Error("expected WARNING alert")
		}
	})

	t.Run("writes region sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", passingResult()); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Regions") {
			t.Error("expected regions header")
		}
		if !strings.Contains(output, "Largest regions") {
			t.Error("expected largest regions section")
		}
		if !strings.Contains(output, "60000") {
			t.Error("expected the largest region's pixel count")
		}
	})

	t.Run("caps the largest regions table", func(t *testing.T) {
		t.Parallel()

		res := passingResult()
		res.Metadata.Regions = nil
		for i := 1; i <= 7; i++ {
			res.Metadata.Regions = append(res.Metadata.Regions, fillable.Region{
				ID: i, PixelCount: 7000 + i, Difficulty: fillable.DifficultyHard,
			})
		}
		res.Metadata.TotalRegions = 7

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", res); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "7007") {
			t.Error("expected the biggest region listed")
		}
		if !strings.Contains(output, "7003") {
			t.Error("expected the fifth-biggest region listed")
		}
		if strings.Contains(output, "7002") || strings.Contains(output, "7001") {
			t.Error("expected only the top five regions listed")
		}
	})

	t.Run("handles empty pages", func(t *testing.T) {
		t.Parallel()

		res := passingResult()
		res.Metadata.Regions = nil
		res.Metadata.TotalRegions = 0

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", res); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		if !strings.Contains(buf.String(), "No fillable regions found.") {
			t.Error("expected message about an empty page")
		}
	})

	t.Run("writes the operation log", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", passingResult()); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Post-Processing") {
			t.Error("expected post-processing header")
		}
		if !strings.Contains(output, "`close` radius=2") {
			t.Error("expected the close op in the bullet list")
		}
	})

	t.Run("handles an empty operation log", func(t *testing.T) {
		t.Parallel()

		res := passingResult()
		res.LineArt.Ops = nil

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "page", res); err != nil {
			t.Fatalf("WriteMarkdown() error = %v", err)
		}

		if !strings.Contains(buf.String(), "No operations applied.") {
			t.Error("expected message about an empty op log")
		}
	})
}

func TestWriteBatchMarkdown(t *testing.T) {
	t.Parallel()

	newBatch := func() ([]fillable.BatchResult, fillable.BatchSummary) {
		results := []fillable.BatchResult{
			{Name: "cat.png", Result: passingResult()},
			{Name: "maze.png", Result: failingResult()},
			{Name: "broken.png"}, // nil Result is skipped
		}
		summary := fillable.BatchSummary{
			Pages:        3,
			Passed:       1,
			Failed:       1,
			TotalRegions: 202,
			ByGroup: map[fillable.AgeGroup]int{
				fillable.AgeGroupKids:  1,
				fillable.AgeGroupAdult: 1,
			},
			Elapsed: 1500 * time.Millisecond,
		}
		return results, summary
	}

	t.Run("writes summary and page rows", func(t *testing.T) {
		t.Parallel()

		results, summary := newBatch()
		var buf bytes.Buffer
		if err := WriteBatchMarkdown(&buf, results, summary); err != nil {
			t.Fatalf("WriteBatchMarkdown() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Batch Fillability Report") {
			t.Error("expected batch report header")
		}
		if !strings.Contains(output, "`cat.png`") || !strings.Contains(output, "`maze.png`") {
			t.Error("expected per-page rows")
		}
		if strings.Contains(output, "broken.png") {
			t.Error("pages without results must be skipped")
		}
		if !strings.Contains(output, "## Recommended Groups") {
			t.Error("expected group histogram")
		}
	})

	t.Run("alert follows the worst status", func(t *testing.T) {
		t.Parallel()

		results, summary := newBatch()
		var buf bytes.Buffer
		if err := WriteBatchMarkdown(&buf, results, summary); err != nil {
			t.Fatalf("WriteBatchMarkdown() error = %v", err)
		}
		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected CAUTION alert when pages failed")
		}

		summary.Failed = 0
		summary.Warned = 1
		buf.Reset()
		if err := WriteBatchMarkdown(&buf, results, summary); err != nil {
			t.Fatalf("WriteBatchMarkdown() error = %v", err)
		}
		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected WARNING alert when pages warned")
		}

		summary.Warned = 0
		buf.Reset()
		if err := WriteBatchMarkdown(&buf, results, summary); err != nil {
			t.Fatalf("WriteBatchMarkdown() error = %v", err)
		}
		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected TIP alert for a clean batch")
		}
	})
}
