// Package git provides the narrow version-control surface chlog depends on:
// resolving the repository root, reading the configured user name, and
// staging released changelog folders. It uses the go-git library, so no git
// CLI installation is required. The rest of the tool only sees the Client
// interface, which tests satisfy with a fake.
package git

import (
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// Client is the version-control contract chlog requires.
type Client interface {
	// Root returns the absolute path of the repository root.
	Root() (string, error)
	// UserName returns the configured committer identity (user.name).
	UserName() (string, error)
	// Add stages the given path, relative to the repository root, for the
	// next commit. Directories are staged recursively. No commit is made.
	Add(path string) error
}

// RepoClient implements Client against a real repository found by walking up
// from a starting directory, the way git itself resolves its root.
type RepoClient struct {
	// start is the directory the repository search begins from.
	// Empty means the current working directory.
	start string
}

// NewRepoClient returns a Client rooted at the repository containing start.
// Pass an empty string to search from the current working directory.
func NewRepoClient(start string) *RepoClient {
	return &RepoClient{start: start}
}

// open locates and opens the repository. Opening is cheap enough to do per
// call, and keeps the client free of cached state that could go stale.
func (c *RepoClient) open() (*gogit.Repository, error) {
	start := c.start
	if start == "" {
		var err error
		start, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", start, err)
	}
	return repo, nil
}

// Root returns the absolute path to the repository worktree root.
func (c *RepoClient) Root() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root, err := filepath.Abs(worktree.Filesystem.Root())
	if err != nil {
		return "", fmt.Errorf("resolving worktree root: %w", err)
	}
	return root, nil
}

// UserName returns user.name from the repository config, merged with the
// global and system scopes the way git config resolution works.
func (c *RepoClient) UserName() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}

	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return "", fmt.Errorf("reading git config: %w", err)
	}
	if cfg.User.Name == "" {
		return "", fmt.Errorf("git user.name is not configured")
	}
	return cfg.User.Name, nil
}

// Add stages path (relative to the repository root) for the next commit.
func (c *RepoClient) Add(path string) error {
	repo, err := c.open()
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if _, err := worktree.Add(filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	return nil
}
