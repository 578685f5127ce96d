package config

// DefaultHeader is the notice emitted at the top of the generated changelog.
const DefaultHeader = "**Note:** This file is automatically generated. Use chlog to add your own entry"

// Defaults returns the default configuration values as koanf keys.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"dir":               "changelogs",
		"unreleased_dir":    "unreleased",
		"released_dir":      "released",
		"fragment_suffix":   ".yml",
		"release_info_file": "release-info",
		"archive_file":      "archive.md",
		"output_file":       "CHANGELOG.md",
		"header":            DefaultHeader,
	}
}

// Template is a fully commented config file template written by tooling and
// documentation; it mirrors Defaults.
const Template = `# chlog configuration
# Place this file at the repository root as .chlog.yml
# Every key is optional; the values below are the defaults.

dir: changelogs              # Changelog tree, relative to the repository root
unreleased_dir: unreleased   # Pending fragments folder under the tree
released_dir: released       # Released versions folder under the tree
fragment_suffix: .yml        # Files with this suffix count as fragments
release_info_file: release-info  # Release metadata filename per version
archive_file: archive.md     # Optional legacy changelog appended verbatim
output_file: CHANGELOG.md    # Generated changelog, relative to the root
`
