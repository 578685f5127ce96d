package errors

import "fmt"

// Constructors for the error conditions chlog reports. Keeping the templates
// in one place keeps messages consistent across commands.

// InvalidVersionFormat reports a version tag that failed structural
// validation. The reason comes from the version package and names the exact
// violation (missing marker, missing number, non-numeric component).
func InvalidVersionFormat(reason error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  reason.Error(),
		Usage:    "chlog <version>  (e.g. chlog v1.2.19)",
		Remediation: []string{
			"Version tags are the marker 'v' followed by dot-separated numbers",
		},
		Err: reason,
	}
}

// DuplicateRelease reports an attempt to release a version that already has
// a folder in the released area.
func DuplicateRelease(tag string) *CLIError {
	return New(Release,
		fmt.Sprintf("changelog for version %s already exists", tag),
		"Pick a version that has not been released yet",
		"Use 'chlog rebuild' to regenerate CHANGELOG.md without releasing",
	)
}

// NoPendingChanges reports a release attempt with an empty unreleased area.
func NoPendingChanges(dir string) *CLIError {
	return New(Release,
		fmt.Sprintf("there are no unreleased changes in %s", dir),
		"Add fragment files with 'chlog new --title \"...\"' before releasing",
	)
}

// MalformedFragment reports a fragment file that failed to decode or is
// missing a required field.
func MalformedFragment(path string, cause error) *CLIError {
	return &CLIError{
		Category: Fragment,
		Message:  fmt.Sprintf("malformed fragment %s: %v", path, cause),
		Remediation: []string{
			"Fragment files must be YAML with the fields 'author' and 'title'",
			"Run 'chlog lint' to check all unreleased fragments",
		},
		Err: cause,
	}
}
