package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voxkit/internal/diag"
	"voxkit/internal/diagfmt"
)

// colorEnabled resolves the --color tri-state against the terminal.
func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// renderDiagnostics prints a bag in the requested format. Info entries (tool
// chatter, cache notes) are suppressed under --quiet.
func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, format string) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	maxEntries, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	switch format {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), bag)
	case "pretty":
		diagfmt.Pretty(cmd.OutOrStdout(), bag, diagfmt.PrettyOpts{
			Color:      colorEnabled(cmd),
			ShowInfo:   !quiet,
			MaxEntries: maxEntries,
		})
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func printTimings(cmd *cobra.Command, summary string) {
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), summary)
	}
}
