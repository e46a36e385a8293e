package diagfmt

import (
	"encoding/json"
	"io"

	"voxkit/internal/diag"
)

type jsonEntry struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Data     string `json:"data,omitempty"`
	Message  string `json:"message"`
}

// JSON renders a bag as a sorted JSON array, one object per entry. Info
// entries are always included; filtering is the consumer's job.
func JSON(w io.Writer, bag *diag.Bag) error {
	sorted := diag.NewBag()
	sorted.Merge(bag)
	sorted.Sort()

	entries := make([]jsonEntry, 0, sorted.Len())
	for _, d := range sorted.Items() {
		entries = append(entries, jsonEntry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Data:     d.Data,
			Message:  d.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
