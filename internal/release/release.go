// Package release implements the release transition: sealing all pending
// fragments into a new immutable version folder, stamping release metadata,
// and staging the folder for the next commit.
package release

import (
	"fmt"
	"io"
	"os"
	"time"

	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/fragments"
	"github.com/raveheart1/chlog/internal/git"
	"github.com/raveheart1/chlog/internal/output"
	"github.com/raveheart1/chlog/internal/version"
)

// Releaser promotes unreleased fragments into released version folders.
type Releaser struct {
	store *fragments.Store
	vcs   git.Client
	now   func() time.Time
	out   io.Writer
}

// Option configures a Releaser.
type Option func(*Releaser)

// WithClock overrides the release timestamp source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(r *Releaser) { r.now = now }
}

// WithOutput sets the writer for status messages. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(r *Releaser) { r.out = w }
}

// New creates a Releaser over the given store and version-control client.
func New(store *fragments.Store, vcs git.Client, opts ...Option) *Releaser {
	r := &Releaser{
		store: store,
		vcs:   vcs,
		now:   time.Now,
		out:   os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Release moves every pending fragment into a new folder for tag, writes the
// release metadata, and stages the folder. It fails with a Release-category
// error when the version folder already exists or when there is nothing to
// release. There is no rollback: a failure partway through the moves leaves
// the tree in a mixed state.
func (r *Releaser) Release(tag string) error {
	if err := version.Check(tag); err != nil {
		return chlogerrors.InvalidVersionFormat(err)
	}

	dest := r.store.VersionDir(tag)
	if _, err := os.Stat(dest); err == nil {
		return chlogerrors.DuplicateRelease(tag)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	names, err := r.store.ListUnreleased()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return chlogerrors.NoPendingChanges(r.store.UnreleasedDir())
	}

	for _, name := range names {
		if err := r.store.MoveFragment(name, tag); err != nil {
			return err
		}
	}

	releasedBy, err := r.vcs.UserName()
	if err != nil {
		return fmt.Errorf("resolving releaser identity: %w", err)
	}
	info := fragments.ReleaseInfo{
		Date:       r.now().Format("2006-01-02"),
		ReleasedBy: releasedBy,
	}
	if err := r.store.WriteReleaseInfo(tag, info); err != nil {
		return err
	}

	if err := r.vcs.Add(r.store.RelVersionDir(tag)); err != nil {
		return fmt.Errorf("staging release folder: %w", err)
	}

	output.Successf(r.out, dest, "Released %d change(s) as %s into", len(names), tag)
	return nil
}
