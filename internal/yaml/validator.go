// Package yaml provides syntax-level validation for fragment files.
// It checks well-formedness only; required-field checks live in the
// fragments package.
package yaml

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidateSyntax streams through r and reports the first YAML syntax error,
// or nil when every document is well-formed.
func ValidateSyntax(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// ValidateFile validates the YAML syntax of the file at path.
func ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := ValidateSyntax(f); err != nil {
		return fmt.Errorf("YAML syntax error in %s: %w", path, err)
	}
	return nil
}
