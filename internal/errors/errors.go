// Package errors provides structured error handling for the chlog CLI.
// Errors carry a category and optional remediation guidance so failures
// surface as actionable messages rather than bare strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies what went wrong.
type Category int

const (
	// Argument errors are caused by invalid or missing command arguments,
	// including version tags that fail format validation.
	Argument Category = iota
	// Configuration errors are caused by invalid or unreadable configuration.
	Configuration
	// Release errors are lifecycle violations at release time: a duplicate
	// version folder or an empty unreleased area.
	Release
	// Fragment errors are caused by fragment files that fail to decode or
	// are missing required fields.
	Fragment
	// Runtime errors cover everything else: filesystem and repository
	// failures during execution.
	Runtime
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Release:
		return "Release Error"
	case Fragment:
		return "Fragment Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a categorized error with remediation guidance.
type CLIError struct {
	// Category is the kind of failure.
	Category Category
	// Message describes what went wrong.
	Message string
	// Remediation lists actionable steps to resolve the error.
	Remediation []string
	// Usage shows correct command syntax (optional, for argument errors).
	Usage string
	// Err is the wrapped underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// New creates a CLIError with the given category and message.
func New(category Category, message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap annotates an existing error with a category and message prefix.
// Returns nil when err is nil.
func Wrap(err error, category Category, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

// As attempts to extract a CLIError from an error chain.
// Returns nil if none is present.
func As(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
