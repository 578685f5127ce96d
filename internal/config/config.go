// Package config provides configuration management for chlog using koanf.
// Values load with priority: environment variables (CHLOG_*) > project config
// (.chlog.yml at the repository root) > defaults. The defaults reproduce the
// conventional changelogs/ layout, so a project without a config file needs
// nothing besides the fragment folders.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileName is the project config file looked up at the repository root.
const FileName = ".chlog.yml"

// envPrefix namespaces the environment variable overrides.
const envPrefix = "CHLOG_"

// Configuration holds the chlog settings.
type Configuration struct {
	// Dir is the changelog tree directory, relative to the repository root.
	Dir string `koanf:"dir"`
	// UnreleasedDir is the pending-fragment folder name under Dir.
	UnreleasedDir string `koanf:"unreleased_dir"`
	// ReleasedDir is the released-version folder name under Dir.
	ReleasedDir string `koanf:"released_dir"`
	// FragmentSuffix selects which files count as fragments.
	FragmentSuffix string `koanf:"fragment_suffix"`
	// ReleaseInfoFile is the per-version release metadata filename.
	ReleaseInfoFile string `koanf:"release_info_file"`
	// ArchiveFile is the optional legacy changelog appended verbatim,
	// relative to Dir.
	ArchiveFile string `koanf:"archive_file"`
	// OutputFile is the generated changelog, relative to the repository root.
	OutputFile string `koanf:"output_file"`
	// Header is the notice emitted at the top of the generated changelog.
	Header string `koanf:"header"`
}

// Load reads configuration for the repository rooted at root.
// A missing project config file is not an error; defaults apply.
func Load(root string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading project config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: CHLOG_OUTPUT_FILE -> output_file
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// validate rejects values that would break path construction.
func validate(cfg *Configuration) error {
	checks := []struct {
		key   string
		value string
	}{
		{"dir", cfg.Dir},
		{"unreleased_dir", cfg.UnreleasedDir},
		{"released_dir", cfg.ReleasedDir},
		{"release_info_file", cfg.ReleaseInfoFile},
		{"output_file", cfg.OutputFile},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return fmt.Errorf("config key %q must not be empty", c.key)
		}
	}
	if !strings.HasPrefix(cfg.FragmentSuffix, ".") {
		return fmt.Errorf("config key \"fragment_suffix\" must start with a dot, got %q", cfg.FragmentSuffix)
	}
	return nil
}
