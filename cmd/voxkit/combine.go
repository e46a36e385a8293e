package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voxkit/internal/container"
	"voxkit/internal/diag"
)

var combineCmd = &cobra.Command{
	Use:   "combine [flags] [module...]",
	Short: "Compile modules and assemble the voice container",
	Long: `Compile the requested modules (default: the manifest's module list, or every
known module) and combine them into one deterministic container file. Missing
necessary modules are compiled on demand with strict validation.`,
	RunE: runCombine,
}

func init() {
	addBuildFlags(combineCmd)
	combineCmd.Flags().String("output", "", "container output path (default from voxkit.toml, else voice.bin)")
	combineCmd.Flags().Uint32("build", 0, "build number stamped into the container header")
}

func runCombine(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	buildNum, err := cmd.Flags().GetUint32("build")
	if err != nil {
		return fmt.Errorf("failed to get build flag: %w", err)
	}

	bs, err := newBuildSession(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 && bs.manifest != nil {
		names = bs.manifest.Config.Build.Modules
	}
	if len(names) == 0 {
		names = container.ModuleNames()
	}
	if err := checkModuleNames(names); err != nil {
		return err
	}
	if outPath == "" && bs.manifest != nil {
		outPath = bs.manifest.Config.Voice.Output
	}
	if outPath == "" {
		outPath = "voice.bin"
	}
	if buildNum == 0 && bs.manifest != nil {
		buildNum = bs.manifest.Config.Build.Number
	}

	outs, err := bs.session.CompileAll(names, bs.validate, bs.jobs)
	if err != nil {
		return err
	}

	asm := container.NewAssembler()
	merged := diag.NewBag()
	for _, name := range names {
		out := outs[name]
		merged.Merge(out.Bag)
		merged.Merge(bs.session.RegisterInto(asm, out))
	}

	combineBag, err := asm.Combine(outPath, container.NecessaryModules(), container.CombineOptions{
		Build:             buildNum,
		Language:          bs.language,
		StrictAutoCompile: true,
		Compile: func(name string, strict bool) (*diag.Bag, error) {
			out := bs.session.BuildStored(name, strict)
			if out.Err != nil {
				return out.Bag, out.Err
			}
			bag := diag.NewBag()
			bag.Merge(out.Bag)
			bag.Merge(bs.session.RegisterInto(asm, out))
			return bag, nil
		},
	})
	merged.Merge(combineBag)
	if err != nil {
		return err
	}

	if err := renderDiagnostics(cmd, merged, format); err != nil {
		return err
	}
	printTimings(cmd, bs.session.Timer.Summary())

	if merged.HasMustFix() {
		cmd.SilenceUsage = true
		return errors.New("combine failed")
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d modules)\n", outPath, asm.Len())
	}
	return nil
}
