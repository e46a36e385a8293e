// Package diagfmt renders diagnostic bags for the CLI: a colorized
// human-readable form and a machine-readable JSON form.
package diagfmt

// PrettyOpts управляет человекочитаемым выводом.
type PrettyOpts struct {
	// Color enables ANSI-colored severity labels.
	Color bool
	// ShowInfo includes Info entries (compiling logs); off by default because
	// external tools can be chatty.
	ShowInfo bool
	// MaxEntries caps the number of rendered entries; 0 means unlimited.
	MaxEntries int
}
