package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const noVoxkitTomlMessage = "no voxkit.toml found\nplease point at the data explicitly, e.g.:\n  voxkit compile --data-root path/to/data PhoneSet"

type voiceManifest struct {
	Path   string
	Root   string
	Config voiceConfig
}

type voiceConfig struct {
	Voice voiceSection `toml:"voice"`
	Build buildSection `toml:"build"`
}

type voiceSection struct {
	Name     string `toml:"name"`
	Language string `toml:"language"`
	DataRoot string `toml:"data-root"`
	Output   string `toml:"output"`
}

type buildSection struct {
	Number   uint32   `toml:"number"`
	Jobs     int      `toml:"jobs"`
	CacheDir string   `toml:"cache-dir"`
	Modules  []string `toml:"modules"`
}

func findVoxkitToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "voxkit.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadVoiceManifest(startDir string) (*voiceManifest, bool, error) {
	manifestPath, ok, err := findVoxkitToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg voiceConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("failed to parse %q: %w", manifestPath, err)
	}
	m := &voiceManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}
	// Relative paths in the manifest are anchored at the manifest directory,
	// not the process working directory.
	if m.Config.Voice.DataRoot != "" && !filepath.IsAbs(m.Config.Voice.DataRoot) {
		m.Config.Voice.DataRoot = filepath.Join(m.Root, m.Config.Voice.DataRoot)
	}
	if m.Config.Voice.Output != "" && !filepath.IsAbs(m.Config.Voice.Output) {
		m.Config.Voice.Output = filepath.Join(m.Root, m.Config.Voice.Output)
	}
	if m.Config.Build.CacheDir != "" && !filepath.IsAbs(m.Config.Build.CacheDir) {
		m.Config.Build.CacheDir = filepath.Join(m.Root, m.Config.Build.CacheDir)
	}
	return m, true, nil
}
