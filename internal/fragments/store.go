// Package fragments owns the on-disk changelog tree: pending fragment files
// under changelogs/unreleased, released fragments and release metadata under
// changelogs/released/<version>. The Store is rooted at an explicit
// repository root; nothing in this package consults ambient process state.
package fragments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/output"
	"github.com/raveheart1/chlog/internal/version"
)

// Fragment is a single pending change record. Both fields are required.
type Fragment struct {
	Author string `yaml:"author"`
	Title  string `yaml:"title"`
}

// ReleaseInfo is the metadata written once per released version.
type ReleaseInfo struct {
	Date       string `yaml:"date"`
	ReleasedBy string `yaml:"released_by"`
}

// Options configures a Store. Zero values fall back to the conventional
// layout (changelogs/unreleased, changelogs/released, .yml fragments).
type Options struct {
	// Dir is the changelog tree directory name under the root.
	Dir string
	// UnreleasedDir and ReleasedDir are folder names under Dir.
	UnreleasedDir string
	ReleasedDir   string
	// Suffix selects which files count as fragments.
	Suffix string
	// InfoFile is the release metadata filename inside a version folder.
	InfoFile string
	// ArchiveFile is the legacy changelog filename under Dir.
	ArchiveFile string
	// Warn receives tolerant-scan warnings. Defaults to os.Stderr.
	Warn io.Writer
}

// Store reads and writes the changelog tree for one repository.
type Store struct {
	root string
	opts Options
}

// NewStore creates a Store rooted at the given repository root.
func NewStore(root string, opts Options) *Store {
	if opts.Dir == "" {
		opts.Dir = "changelogs"
	}
	if opts.UnreleasedDir == "" {
		opts.UnreleasedDir = "unreleased"
	}
	if opts.ReleasedDir == "" {
		opts.ReleasedDir = "released"
	}
	if opts.Suffix == "" {
		opts.Suffix = ".yml"
	}
	if opts.InfoFile == "" {
		opts.InfoFile = "release-info"
	}
	if opts.ArchiveFile == "" {
		opts.ArchiveFile = "archive.md"
	}
	if opts.Warn == nil {
		opts.Warn = os.Stderr
	}
	return &Store{root: root, opts: opts}
}

// Root returns the repository root the store is bound to.
func (s *Store) Root() string {
	return s.root
}

// Suffix returns the fragment file suffix.
func (s *Store) Suffix() string {
	return s.opts.Suffix
}

// UnreleasedDir returns the absolute path of the pending-fragment folder.
func (s *Store) UnreleasedDir() string {
	return filepath.Join(s.root, s.opts.Dir, s.opts.UnreleasedDir)
}

// ReleasedDir returns the absolute path of the released-versions folder.
func (s *Store) ReleasedDir() string {
	return filepath.Join(s.root, s.opts.Dir, s.opts.ReleasedDir)
}

// VersionDir returns the absolute path of one released version's folder.
func (s *Store) VersionDir(tag string) string {
	return filepath.Join(s.ReleasedDir(), tag)
}

// RelVersionDir returns the version folder path relative to the repository
// root, as expected by Client.Add.
func (s *Store) RelVersionDir(tag string) string {
	return filepath.Join(s.opts.Dir, s.opts.ReleasedDir, tag)
}

// ArchivePath returns the absolute path of the optional legacy changelog.
func (s *Store) ArchivePath() string {
	return filepath.Join(s.root, s.opts.Dir, s.opts.ArchiveFile)
}

// ListUnreleased returns the names of pending fragment files, sorted by
// filename so downstream output is deterministic regardless of what order
// the filesystem returns entries in.
func (s *Store) ListUnreleased() ([]string, error) {
	return s.listFragments(s.UnreleasedDir())
}

// ListVersionFragments returns the fragment filenames inside a released
// version's folder, sorted by filename.
func (s *Store) ListVersionFragments(tag string) ([]string, error) {
	return s.listFragments(s.VersionDir(tag))
}

func (s *Store) listFragments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.opts.Suffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadFragment decodes one fragment file. A fragment that cannot be decoded
// or is missing a required field fails with a Fragment-category error.
func (s *Store) ReadFragment(path string) (Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("reading fragment: %w", err)
	}

	var frag Fragment
	if err := yaml.Unmarshal(data, &frag); err != nil {
		return Fragment{}, chlogerrors.MalformedFragment(path, err)
	}
	if strings.TrimSpace(frag.Author) == "" {
		return Fragment{}, chlogerrors.MalformedFragment(path, fmt.Errorf("missing required field %q", "author"))
	}
	if strings.TrimSpace(frag.Title) == "" {
		return Fragment{}, chlogerrors.MalformedFragment(path, fmt.Errorf("missing required field %q", "title"))
	}
	return frag, nil
}

// WriteFragment encodes a fragment into the unreleased folder under the
// given filename, creating the folder if needed.
func (s *Store) WriteFragment(name string, frag Fragment) (string, error) {
	dir := s.UnreleasedDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	data, err := yaml.Marshal(frag)
	if err != nil {
		return "", fmt.Errorf("encoding fragment: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing fragment: %w", err)
	}
	return path, nil
}

// MoveFragment relocates a pending fragment into a version's folder.
// The source file no longer exists afterward.
func (s *Store) MoveFragment(name, tag string) error {
	src := filepath.Join(s.UnreleasedDir(), name)
	dst := filepath.Join(s.VersionDir(tag), name)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving fragment %s into %s: %w", name, tag, err)
	}
	return nil
}

// WriteReleaseInfo serializes release metadata into the version folder,
// overwriting any existing content. A pre-existing file is a warning, not an
// error: it only happens when a release is re-run.
func (s *Store) WriteReleaseInfo(tag string, info ReleaseInfo) error {
	path := filepath.Join(s.VersionDir(tag), s.opts.InfoFile)
	if _, err := os.Stat(path); err == nil {
		output.Warnf(s.opts.Warn, "%s already exists and will be overwritten", path)
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding release info: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing release info: %w", err)
	}
	return nil
}

// ReadReleaseInfo reads a version's release metadata. Absence is expected
// for folders created before this tool recorded metadata; it yields a zero
// value, never an error.
func (s *Store) ReadReleaseInfo(tag string) (ReleaseInfo, error) {
	path := filepath.Join(s.VersionDir(tag), s.opts.InfoFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ReleaseInfo{}, nil
	}
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("reading release info: %w", err)
	}

	var info ReleaseInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return ReleaseInfo{}, fmt.Errorf("decoding release info %s: %w", path, err)
	}
	return info, nil
}

// ListReleasedVersions enumerates the released-version folders, newest
// first. The scan is tolerant: entries that are not directories, or whose
// names fail version validation, are warned about and skipped. A missing
// released area yields an empty list.
func (s *Store) ListReleasedVersions() ([]string, error) {
	dir := s.ReleasedDir()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var tags []string
	for _, entry := range entries {
		if !entry.IsDir() {
			output.Warnf(s.opts.Warn, "%s is not a directory. Skipping.", entry.Name())
			continue
		}
		if err := version.Check(entry.Name()); err != nil {
			output.Warnf(s.opts.Warn, "%s has an unsupported format. Skipping.", entry.Name())
			continue
		}
		tags = append(tags, entry.Name())
	}
	version.SortDescending(tags)
	return tags, nil
}
