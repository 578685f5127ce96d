package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// InitTree creates the conventional changelogs/unreleased and
// changelogs/released folders under root.
func InitTree(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "changelogs", "unreleased"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "changelogs", "released"), 0o755))
}

// WriteUnreleased writes a pending fragment file with the given author and
// title under changelogs/unreleased.
func WriteUnreleased(t *testing.T, root, name, author, title string) {
	t.Helper()

	path := filepath.Join(root, "changelogs", "unreleased", name)
	content := "author: " + author + "\ntitle: " + title + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// WriteArchive writes the legacy changelog under changelogs/archive.md.
func WriteArchive(t *testing.T, root, content string) {
	t.Helper()

	path := filepath.Join(root, "changelogs", "archive.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
