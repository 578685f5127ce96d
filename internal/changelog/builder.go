// Package changelog aggregates released fragments into the generated
// CHANGELOG document. Building is read-only over the fragment store and
// all-or-nothing: the full line sequence is assembled in memory before the
// caller writes anything, so a failed build leaves the previous output file
// untouched.
package changelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raveheart1/chlog/internal/fragments"
	"github.com/raveheart1/chlog/internal/version"
)

// Builder renders the changelog for one fragment store.
type Builder struct {
	store  *fragments.Store
	header string
}

// NewBuilder creates a Builder. The header is the notice emitted as the
// first line of the document.
func NewBuilder(store *fragments.Store, header string) *Builder {
	return &Builder{store: store, header: header}
}

// Build returns the complete changelog as a sequence of lines, each
// including its trailing newline. Versions appear newest first; within a
// version, titles group under their author in first-encounter order. The
// archive file, when present, is appended verbatim. Given unchanged storage,
// repeated builds return identical sequences.
func (b *Builder) Build() ([]string, error) {
	lines := []string{b.header + "\n", "\n"}

	tags, err := b.store.ListReleasedVersions()
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		section, err := b.buildVersionSection(tag)
		if err != nil {
			return nil, err
		}
		lines = append(lines, section...)
	}

	archive, err := b.archiveLines()
	if err != nil {
		return nil, err
	}
	return append(lines, archive...), nil
}

// buildVersionSection renders one version: heading, author groups, and a
// trailing blank line.
func (b *Builder) buildVersionSection(tag string) ([]string, error) {
	info, err := b.store.ReadReleaseInfo(tag)
	if err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("## Version %s (%s)\n", version.Number(tag), info.Date)}

	authors, titles, err := b.groupByAuthor(tag)
	if err != nil {
		return nil, err
	}
	for _, author := range authors {
		lines = append(lines, fmt.Sprintf("*@%s*\n", author))
		for _, title := range titles[author] {
			lines = append(lines, "- "+title+"\n")
		}
	}
	return append(lines, "\n"), nil
}

// groupByAuthor reads every fragment under a version and collects titles per
// author. Authors keep the order of first encounter; titles keep fragment
// read order. A fragment that fails to decode aborts the whole build.
func (b *Builder) groupByAuthor(tag string) ([]string, map[string][]string, error) {
	names, err := b.store.ListVersionFragments(tag)
	if err != nil {
		return nil, nil, err
	}

	var authors []string
	titles := make(map[string][]string)
	for _, name := range names {
		frag, err := b.store.ReadFragment(filepath.Join(b.store.VersionDir(tag), name))
		if err != nil {
			return nil, nil, err
		}
		if _, seen := titles[frag.Author]; !seen {
			authors = append(authors, frag.Author)
		}
		titles[frag.Author] = append(titles[frag.Author], frag.Title)
	}
	return authors, titles, nil
}

// archiveLines returns the legacy changelog split into lines, byte-exact.
// No archive file means no lines.
func (b *Builder) archiveLines() ([]string, error) {
	data, err := os.ReadFile(b.store.ArchivePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// Write concatenates the lines into w.
func Write(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile builds the changelog and overwrites the output file in full.
// The content is assembled before the file is opened, so a build failure
// leaves the previous document untouched.
func (b *Builder) WriteFile(path string) error {
	lines, err := b.Build()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644)
}
