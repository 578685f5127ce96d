// Package output provides terminal output helpers for the chlog CLI.
// It is kept dependency-light so any package can emit warnings and status
// lines without import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	warnLabel   = color.New(color.FgYellow, color.Bold).SprintFunc()
	successMark = color.New(color.FgGreen, color.Bold).SprintFunc()
	pathStyle   = color.New(color.FgCyan).SprintFunc()
	dimmed      = color.New(color.Faint).SprintFunc()
)

// IsTerminal reports whether the given file descriptor is an interactive
// terminal. Used to decide whether to run spinners in watch mode.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Warnf writes a highlighted warning line. Tolerant-scan conditions (skipped
// folders, overwritten release-info) are reported through here; they never
// fail the run.
func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnLabel("Warning:"), fmt.Sprintf(format, args...))
}

// Successf writes a checkmarked status line with the subject path highlighted.
func Successf(w io.Writer, path, format string, args ...any) {
	fmt.Fprintf(w, "%s %s %s\n", successMark("✓"), fmt.Sprintf(format, args...), pathStyle(path))
}

// Statusf writes a dim informational line.
func Statusf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s\n", dimmed(fmt.Sprintf(format, args...)))
}
