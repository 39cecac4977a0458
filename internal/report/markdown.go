// Package report renders pipeline results for humans and for the player
// apps: markdown QA reports for review, JSON sidecars for consumption.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/linework/fillable"
)

// topRegionRows is the number of regions listed in the per-page report.
const topRegionRows = 5

// WriteMarkdown renders a human-readable fillability report for one page.
func WriteMarkdown(w io.Writer, name string, res *fillable.Result) error {
	md := markdown.NewMarkdown(w)

	md.H1("Fillability Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Page", "`" + name + "`"},
			{"Size", fmt.Sprintf("%dx%d", res.Metadata.ImageSize.Width, res.Metadata.ImageSize.Height)},
			{"Regions", strconv.Itoa(res.Metadata.TotalRegions)},
			{"Label encoding", res.Metadata.LabelEncoding.String()},
			{"Age group", string(res.AgeGroup)},
			{"Status", statusText(res.QA.Status)},
		},
	})
	md.PlainText("")

	writeValidation(md, res.QA)
	writeRegions(md, res.Metadata)
	writeOps(md, res.LineArt)

	return md.Build()
}

// statusText decorates a status for the report tables.
func statusText(s fillable.Status) string {
	switch s {
	case fillable.StatusFail:
		return "❌ fail"
	case fillable.StatusWarn:
		return "⚠️ warn"
	default:
		return "✅ pass"
	}
}

// writeValidation writes the QA outcome with one alert matched to the
// overall status.
func writeValidation(md *markdown.Markdown, qa fillable.QAResult) {
	md.H2("Validation")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Region count", strconv.Itoa(qa.RegionCount)},
			{"Tiny regions", strconv.Itoa(qa.TinyRegionCount)},
			{"Tiny share", fmt.Sprintf("%.1f%%", qa.TinyPercentage*100)},
			{"Recommended group", string(qa.RecommendedAgeGroup)},
		},
	})
	md.PlainText("")

	if len(qa.Issues) > 0 {
		rows := make([][]string, 0, len(qa.Issues))
		for _, issue := range qa.Issues {
			rows = append(rows, []string{string(issue.Severity), issue.Code, issue.Message})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Severity", "Code", "Message"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	switch qa.Status {
	case fillable.StatusFail:
		md.Cautionf("Page fails hard validation for the %s group and should not ship as is.",
			qa.RecommendedAgeGroup)
	case fillable.StatusWarn:
		md.Warningf("Page is technically acceptable but suits the %s group better.",
			qa.RecommendedAgeGroup)
	default:
		md.Tip("Page is well suited to its target group.")
	}
	md.PlainText("")
}

// writeRegions writes the difficulty histogram and the largest regions.
func writeRegions(md *markdown.Markdown, meta *fillable.PageMetadata) {
	md.H2("Regions")
	md.PlainText("")

	if meta.TotalRegions == 0 {
		md.PlainText("No fillable regions found.")
		md.PlainText("")
		return
	}

	var easy, medium, hard int
	for _, r := range meta.Regions {
		switch r.Difficulty {
		case fillable.DifficultyEasy:
			easy++
		case fillable.DifficultyMedium:
			medium++
		default:
			hard++
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Difficulty", "Count"},
		Rows: [][]string{
			{"Easy", strconv.Itoa(easy)},
			{"Medium", strconv.Itoa(medium)},
			{"Hard", strconv.Itoa(hard)},
		},
	})
	md.PlainText("")

	largest := make([]fillable.Region, len(meta.Regions))
	copy(largest, meta.Regions)
	sort.Slice(largest, func(i, j int) bool {
		if largest[i].PixelCount != largest[j].PixelCount {
			return largest[i].PixelCount > largest[j].PixelCount
		}
		return largest[i].ID < largest[j].ID
	})
	if len(largest) > topRegionRows {
		largest = largest[:topRegionRows]
	}

	rows := make([][]string, 0, len(largest))
	for _, r := range largest {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.PixelCount),
			strconv.Itoa(r.Difficulty),
			fmt.Sprintf("(%.0f, %.0f)", r.Centroid.X, r.Centroid.Y),
		})
	}
	md.PlainText("### Largest regions")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Pixels", "Difficulty", "Centroid"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeOps writes the post-processing diagnostics.
func writeOps(md *markdown.Markdown, la *fillable.LineArt) {
	md.H2("Post-Processing")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Line thickness", strconv.Itoa(la.LineThickness)},
			{"Region estimate", strconv.Itoa(la.RegionEstimate)},
		},
	})
	md.PlainText("")

	if len(la.Ops) == 0 {
		md.PlainText("No operations applied.")
		md.PlainText("")
		return
	}
	ops := make([]string, 0, len(la.Ops))
	for _, op := range la.Ops {
		ops = append(ops, "`"+op.Name+"` "+op.Params)
	}
	md.BulletList(ops...)
	md.PlainText("")
}

// WriteBatchMarkdown renders a summary report over a whole batch run.
func WriteBatchMarkdown(w io.Writer, results []fillable.BatchResult, summary fillable.BatchSummary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Batch Fillability Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Pages", strconv.Itoa(summary.Pages)},
			{"Passed", strconv.Itoa(summary.Passed)},
			{"Warned", strconv.Itoa(summary.Warned)},
			{"Failed", strconv.Itoa(summary.Failed)},
			{"Total regions", strconv.Itoa(summary.TotalRegions)},
			{"Processing time", summary.Elapsed.String()},
		},
	})
	md.PlainText("")

	if len(summary.ByGroup) > 0 {
		groups := make([]fillable.AgeGroup, 0, len(summary.ByGroup))
		for g := range summary.ByGroup {
			groups = append(groups, g)
		}
		sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

		rows := make([][]string, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, []string{string(g), strconv.Itoa(summary.ByGroup[g])})
		}
		md.H2("Recommended Groups")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Age group", "Pages"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Pages")
	md.PlainText("")
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		rows = append(rows, []string{
			"`" + r.Name + "`",
			strconv.Itoa(r.Result.Metadata.TotalRegions),
			string(r.Result.QA.RecommendedAgeGroup),
			statusText(r.Result.QA.Status),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Regions", "Recommended", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case summary.Failed > 0:
		md.Cautionf("%d page(s) failed hard validation and need rework.", summary.Failed)
	case summary.Warned > 0:
		md.Warningf("%d page(s) were flagged for a different age group.", summary.Warned)
	default:
		md.Tip("Every page passed validation.")
	}
	md.PlainText("")

	return md.Build()
}
