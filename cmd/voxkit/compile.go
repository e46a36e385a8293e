package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"voxkit/internal/diag"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <module>...",
	Short: "Compile individual voice data modules",
	Long:  `Compile one or more named modules from raw data without assembling a container; useful for iterating on a single data table`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	addBuildFlags(compileCmd)
	compileCmd.Flags().String("out-dir", "", "write each compiled payload to <out-dir>/<module>.bin")
}

// runCompile executes the "compile" command: it compiles every named module
// concurrently, prints the merged diagnostics and exits non-zero when any
// MustFix finding remains.
func runCompile(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	if err := checkModuleNames(args); err != nil {
		return err
	}

	bs, err := newBuildSession(cmd)
	if err != nil {
		return err
	}
	outs, err := bs.session.CompileAll(args, bs.validate, bs.jobs)
	if err != nil {
		return err
	}

	merged := diag.NewBag()
	for _, name := range args {
		merged.Merge(outs[name].Bag)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		for _, name := range args {
			out := outs[name]
			if out.Data == nil {
				continue
			}
			path := filepath.Join(outDir, name+".bin")
			if err := os.WriteFile(path, out.Data, 0o600); err != nil {
				merged.Add(diag.Warning(diag.SaveBinaryFileFail, name, "failed to write %q: %v", path, err))
			}
		}
	}

	if err := renderDiagnostics(cmd, merged, format); err != nil {
		return err
	}
	printTimings(cmd, bs.session.Timer.Summary())

	if merged.HasMustFix() {
		cmd.SilenceUsage = true
		return errors.New("compilation failed")
	}
	return nil
}
