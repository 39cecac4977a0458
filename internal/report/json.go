package report

import (
	"encoding/json"
	"io"

	"github.com/linework/fillable"
)

// WriteMetadata writes the page metadata sidecar consumed by the player
// apps.
func WriteMetadata(w io.Writer, meta *fillable.PageMetadata) error {
	return writeJSON(w, meta)
}

// WriteQA writes one page's validation result.
func WriteQA(w io.Writer, qa fillable.QAResult) error {
	return writeJSON(w, qa)
}

// WriteSummary writes a batch summary.
func WriteSummary(w io.Writer, s fillable.BatchSummary) error {
	return writeJSON(w, s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
