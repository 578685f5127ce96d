package release

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chlogerrors "github.com/raveheart1/chlog/internal/errors"
	"github.com/raveheart1/chlog/internal/fragments"
	"github.com/raveheart1/chlog/internal/testutil"
)

var fixedTime = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newReleaser(t *testing.T) (*Releaser, *fragments.Store, *testutil.FakeVCS) {
	t.Helper()

	root := t.TempDir()
	testutil.InitTree(t, root)
	store := fragments.NewStore(root, fragments.Options{Warn: &bytes.Buffer{}})
	vcs := testutil.NewFakeVCS(root)
	r := New(store, vcs,
		WithClock(func() time.Time { return fixedTime }),
		WithOutput(&bytes.Buffer{}),
	)
	return r, store, vcs
}

func TestReleaseMovesFragmentsAndWritesInfo(t *testing.T) {
	r, store, vcs := newReleaser(t)
	testutil.WriteUnreleased(t, store.Root(), "fix-bug.yml", "ana", "Fix bug")
	testutil.WriteUnreleased(t, store.Root(), "add-feature.yml", "bo", "Add feature")

	require.NoError(t, r.Release("v2.0.0"))

	// Unreleased area drained.
	names, err := store.ListUnreleased()
	require.NoError(t, err)
	assert.Empty(t, names)

	// Destination holds exactly the moved fragments.
	moved, err := store.ListVersionFragments("v2.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"add-feature.yml", "fix-bug.yml"}, moved)

	info, err := store.ReadReleaseInfo("v2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", info.Date)
	assert.Equal(t, "Test Releaser", info.ReleasedBy)

	// The folder was staged, relative to the root.
	assert.Equal(t, []string{filepath.Join("changelogs", "released", "v2.0.0")}, vcs.Staged())
}

func TestReleaseInvalidVersion(t *testing.T) {
	r, store, _ := newReleaser(t)
	testutil.WriteUnreleased(t, store.Root(), "fix.yml", "ana", "Fix")

	tests := map[string]string{
		"placeholder":  "v",
		"no marker":    "1.2.3",
		"non numeric":  "v1.x",
		"empty string": "",
	}
	for name, tag := range tests {
		t.Run(name, func(t *testing.T) {
			err := r.Release(tag)
			require.Error(t, err)
			cliErr := chlogerrors.As(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, chlogerrors.Argument, cliErr.Category)
		})
	}
}

func TestReleaseDuplicate(t *testing.T) {
	r, store, vcs := newReleaser(t)
	testutil.WriteUnreleased(t, store.Root(), "fix.yml", "ana", "Fix")
	require.NoError(t, r.Release("v1.0.0"))

	testutil.WriteUnreleased(t, store.Root(), "more.yml", "bo", "More")
	err := r.Release("v1.0.0")
	require.Error(t, err)
	cliErr := chlogerrors.As(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, chlogerrors.Release, cliErr.Category)
	assert.Contains(t, err.Error(), "already exists")

	// Existing release untouched, new fragment still pending.
	moved, listErr := store.ListVersionFragments("v1.0.0")
	require.NoError(t, listErr)
	assert.Equal(t, []string{"fix.yml"}, moved)
	pending, listErr := store.ListUnreleased()
	require.NoError(t, listErr)
	assert.Equal(t, []string{"more.yml"}, pending)
	assert.Len(t, vcs.Staged(), 1, "no second staging")
}

func TestReleaseNoPendingChanges(t *testing.T) {
	r, store, vcs := newReleaser(t)

	err := r.Release("v1.0.0")
	require.Error(t, err)
	cliErr := chlogerrors.As(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, chlogerrors.Release, cliErr.Category)
	assert.Contains(t, err.Error(), "no unreleased changes")

	// The folder may exist (created before the check) but holds no fragments.
	moved, listErr := store.ListVersionFragments("v1.0.0")
	require.NoError(t, listErr)
	assert.Empty(t, moved)
	_, statErr := os.Stat(filepath.Join(store.VersionDir("v1.0.0"), "release-info"))
	assert.True(t, os.IsNotExist(statErr), "no release-info without a release")
	assert.Empty(t, vcs.Staged())
}

func TestReleaseUserNameFailure(t *testing.T) {
	r, store, vcs := newReleaser(t)
	vcs.UserErr = errors.New("user.name is not configured")
	testutil.WriteUnreleased(t, store.Root(), "fix.yml", "ana", "Fix")

	err := r.Release("v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "releaser identity")
}
