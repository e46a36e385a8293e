package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voxkit/internal/cache"
	"voxkit/internal/compiler"
	"voxkit/internal/container"
	"voxkit/internal/exttool"
	"voxkit/internal/rawdata"
)

// buildSettings is everything a build command resolved from flags and the
// optional voxkit.toml manifest. Flags always win over the manifest.
type buildSettings struct {
	session  *compiler.Session
	language rawdata.Language
	validate bool
	jobs     int
	manifest *voiceManifest
}

// addBuildFlags registers the flags shared by compile and combine.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-root", "", "raw voice data root (default from voxkit.toml)")
	cmd.Flags().String("language", "", "target language code, e.g. en-US (default from voxkit.toml)")
	cmd.Flags().String("cache-dir", "", "compiled module cache directory (default from voxkit.toml, empty disables)")
	cmd.Flags().Bool("no-validate", false, "downgrade content validation findings to warnings")
	cmd.Flags().Int("jobs", 0, "max parallel module compiles (0=unbounded)")
	cmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
}

// newBuildSession resolves flags plus manifest into a ready compiler session.
func newBuildSession(cmd *cobra.Command) (*buildSettings, error) {
	dataRoot, err := cmd.Flags().GetString("data-root")
	if err != nil {
		return nil, fmt.Errorf("failed to get data-root flag: %w", err)
	}
	langStr, err := cmd.Flags().GetString("language")
	if err != nil {
		return nil, fmt.Errorf("failed to get language flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	noValidate, err := cmd.Flags().GetBool("no-validate")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-validate flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}

	manifest, found, err := loadVoiceManifest(".")
	if err != nil {
		return nil, err
	}
	if found {
		if dataRoot == "" {
			dataRoot = manifest.Config.Voice.DataRoot
		}
		if langStr == "" {
			langStr = manifest.Config.Voice.Language
		}
		if cacheDir == "" {
			cacheDir = manifest.Config.Build.CacheDir
		}
		if jobs == 0 {
			jobs = manifest.Config.Build.Jobs
		}
	}
	if dataRoot == "" {
		return nil, errors.New(noVoxkitTomlMessage)
	}
	if langStr == "" {
		return nil, errors.New("target language not specified (--language or voxkit.toml)")
	}
	lang, err := rawdata.ParseLanguage(langStr)
	if err != nil {
		return nil, err
	}

	reg := rawdata.NewRegistry()
	reg.SetLanguage(lang)
	reg.SetDataRoot(dataRoot)

	s := compiler.NewSession(reg, exttool.ExecRunner{}).WithContext(cmd.Context())
	if cacheDir != "" {
		c, err := cache.Open(cacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache %q: %w", cacheDir, err)
		}
		s.Cache = c
	}

	return &buildSettings{
		session:  s,
		language: lang,
		validate: !noValidate,
		jobs:     jobs,
		manifest: manifest,
	}, nil
}

// checkModuleNames rejects names outside the reserved table before any work
// starts.
func checkModuleNames(names []string) error {
	for _, name := range names {
		if !container.KnownModule(name) {
			return fmt.Errorf("unknown module %q (see `voxkit modules`)", name)
		}
	}
	return nil
}
