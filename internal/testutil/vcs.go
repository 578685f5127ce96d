// Package testutil provides shared test fixtures: a fake version-control
// client and helpers for building changelog trees in temporary directories.
package testutil

import (
	"errors"
	"sync"
)

// FakeVCS implements git.Client without a repository. It records staged
// paths and returns canned values, so release and CLI tests run against a
// plain temporary directory.
type FakeVCS struct {
	// RootDir is returned by Root.
	RootDir string
	// User is returned by UserName.
	User string
	// UserErr, when set, makes UserName fail.
	UserErr error

	mu     sync.Mutex
	staged []string
}

// NewFakeVCS returns a fake client for the given root with a default user.
func NewFakeVCS(root string) *FakeVCS {
	return &FakeVCS{RootDir: root, User: "Test Releaser"}
}

// Root returns the configured root directory.
func (f *FakeVCS) Root() (string, error) {
	if f.RootDir == "" {
		return "", errors.New("not a repository")
	}
	return f.RootDir, nil
}

// UserName returns the configured user or the configured error.
func (f *FakeVCS) UserName() (string, error) {
	if f.UserErr != nil {
		return "", f.UserErr
	}
	return f.User, nil
}

// Add records the staged path.
func (f *FakeVCS) Add(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = append(f.staged, path)
	return nil
}

// Staged returns the paths staged so far.
func (f *FakeVCS) Staged() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.staged...)
}
