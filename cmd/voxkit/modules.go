package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxkit/internal/container"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the known voice data modules",
	RunE:  runModules,
}

func init() {
	modulesCmd.Flags().Bool("tokens", false, "include module and format GUIDs")
}

func runModules(cmd *cobra.Command, _ []string) error {
	showTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}

	necessary := make(map[string]bool)
	for _, n := range container.NecessaryModules() {
		necessary[n] = true
	}

	w := cmd.OutOrStdout()
	for _, name := range container.ModuleNames() {
		mark := " "
		if necessary[name] {
			mark = "*"
		}
		if showTokens {
			tok, _ := container.TokenOf(name)
			ftok, _ := container.FormatTokenOf(name)
			fmt.Fprintf(w, "%s %-16s %s %s\n", mark, name, tok, ftok)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", mark, name)
	}
	fmt.Fprintln(w, "\n* necessary: compiled on demand when missing at combine time")
	return nil
}
