package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"voxkit/internal/diag"
)

var (
	mustFixColor = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// Pretty renders a bag one entry per line:
//
//	<severity> <code id> <data name>: <message>
//
// Entries are rendered in sorted order; the bag itself is not mutated.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	sorted := diag.NewBag()
	sorted.Merge(bag)
	sorted.Sort()

	shown := 0
	hidden := 0
	for _, d := range sorted.Items() {
		if d.Severity == diag.SevInfo && !opts.ShowInfo {
			continue
		}
		if opts.MaxEntries > 0 && shown >= opts.MaxEntries {
			hidden++
			continue
		}
		data := d.Data
		if data == "" {
			data = "-"
		}
		fmt.Fprintf(w, "%s %s %s: %s\n", severityTag(d.Severity, opts.Color), d.Code.ID(), data, d.Message)
		shown++
	}
	if hidden > 0 {
		fmt.Fprintf(w, "... and %d more\n", hidden)
	}
}

func severityTag(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevMustFix:
		return mustFixColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return infoColor.Sprint(sev.String())
	}
}
