package fragments

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chlogerrors "github.com/raveheart1/chlog/internal/errors"
)

// newTestStore returns a store over a fresh tree with warnings captured.
func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()

	warn := &bytes.Buffer{}
	store := NewStore(t.TempDir(), Options{Warn: warn})
	require.NoError(t, os.MkdirAll(store.UnreleasedDir(), 0o755))
	require.NoError(t, os.MkdirAll(store.ReleasedDir(), 0o755))
	return store, warn
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListUnreleased(t *testing.T) {
	store, _ := newTestStore(t)

	writeFile(t, filepath.Join(store.UnreleasedDir(), "b-feature.yml"), "author: bo\ntitle: B\n")
	writeFile(t, filepath.Join(store.UnreleasedDir(), "a-fix.yml"), "author: ana\ntitle: A\n")
	writeFile(t, filepath.Join(store.UnreleasedDir(), "notes.txt"), "not a fragment")
	require.NoError(t, os.MkdirAll(filepath.Join(store.UnreleasedDir(), "nested.yml"), 0o755))

	names, err := store.ListUnreleased()
	require.NoError(t, err)
	assert.Equal(t, []string{"a-fix.yml", "b-feature.yml"}, names, "sorted, fragments only")
}

func TestListUnreleasedMissingFolder(t *testing.T) {
	store := NewStore(t.TempDir(), Options{Warn: &bytes.Buffer{}})

	_, err := store.ListUnreleased()
	assert.Error(t, err)
}

func TestReadFragment(t *testing.T) {
	store, _ := newTestStore(t)

	tests := map[string]struct {
		content string
		want    Fragment
		wantErr string
	}{
		"valid fragment": {
			content: "author: ana\ntitle: Fix bug\n",
			want:    Fragment{Author: "ana", Title: "Fix bug"},
		},
		"missing author": {
			content: "title: Fix bug\n",
			wantErr: `missing required field "author"`,
		},
		"missing title": {
			content: "author: ana\n",
			wantErr: `missing required field "title"`,
		},
		"blank title": {
			content: "author: ana\ntitle: \"  \"\n",
			wantErr: `missing required field "title"`,
		},
		"invalid yaml": {
			content: ":\n\t- nope",
			wantErr: "malformed fragment",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(store.UnreleasedDir(), "entry.yml")
			writeFile(t, path, tt.content)

			frag, err := store.ReadFragment(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				cliErr := chlogerrors.As(err)
				require.NotNil(t, cliErr)
				assert.Equal(t, chlogerrors.Fragment, cliErr.Category)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, frag)
		})
	}
}

func TestWriteFragmentRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	path, err := store.WriteFragment("add-feature.yml", Fragment{Author: "bo", Title: "Add feature"})
	require.NoError(t, err)

	frag, err := store.ReadFragment(path)
	require.NoError(t, err)
	assert.Equal(t, Fragment{Author: "bo", Title: "Add feature"}, frag)
}

func TestMoveFragment(t *testing.T) {
	store, _ := newTestStore(t)

	src := filepath.Join(store.UnreleasedDir(), "fix.yml")
	writeFile(t, src, "author: ana\ntitle: Fix\n")
	require.NoError(t, os.MkdirAll(store.VersionDir("v1.0.0"), 0o755))

	require.NoError(t, store.MoveFragment("fix.yml", "v1.0.0"))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source must be gone after move")
	assert.FileExists(t, filepath.Join(store.VersionDir("v1.0.0"), "fix.yml"))
}

func TestReleaseInfoRoundTrip(t *testing.T) {
	store, warn := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.VersionDir("v1.0.0"), 0o755))

	info := ReleaseInfo{Date: "2026-08-30", ReleasedBy: "Test Releaser"}
	require.NoError(t, store.WriteReleaseInfo("v1.0.0", info))
	assert.Empty(t, warn.String(), "first write is silent")

	got, err := store.ReadReleaseInfo("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, info, got)

	// Overwrite warns but succeeds.
	require.NoError(t, store.WriteReleaseInfo("v1.0.0", info))
	assert.Contains(t, warn.String(), "already exists")
}

func TestReadReleaseInfoAbsent(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.VersionDir("v1.0.0"), 0o755))

	info, err := store.ReadReleaseInfo("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, ReleaseInfo{}, info, "absence is a zero value, not an error")
}

func TestListReleasedVersions(t *testing.T) {
	store, warn := newTestStore(t)

	for _, tag := range []string{"v1.2.0", "v1.10.0", "v1.2.5"} {
		require.NoError(t, os.MkdirAll(store.VersionDir(tag), 0o755))
	}
	// Entries the tolerant scan must skip.
	require.NoError(t, os.MkdirAll(store.VersionDir("not-a-version"), 0o755))
	writeFile(t, filepath.Join(store.ReleasedDir(), "stray.txt"), "x")

	tags, err := store.ListReleasedVersions()
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.10.0", "v1.2.5", "v1.2.0"}, tags, "numeric descending order")

	warnings := warn.String()
	assert.Contains(t, warnings, "not-a-version")
	assert.Contains(t, warnings, "stray.txt")
}

func TestListReleasedVersionsMissingArea(t *testing.T) {
	store := NewStore(t.TempDir(), Options{Warn: &bytes.Buffer{}})

	tags, err := store.ListReleasedVersions()
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestListVersionFragments(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.VersionDir("v1.0.0"), 0o755))
	writeFile(t, filepath.Join(store.VersionDir("v1.0.0"), "z.yml"), "author: a\ntitle: Z\n")
	writeFile(t, filepath.Join(store.VersionDir("v1.0.0"), "a.yml"), "author: a\ntitle: A\n")
	writeFile(t, filepath.Join(store.VersionDir("v1.0.0"), "release-info"), "date: '2026-08-30'\n")

	names, err := store.ListVersionFragments("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yml", "z.yml"}, names, "release-info is not a fragment")
}

func TestCustomSuffix(t *testing.T) {
	warn := &bytes.Buffer{}
	store := NewStore(t.TempDir(), Options{Suffix: ".yaml", Warn: warn})
	require.NoError(t, os.MkdirAll(store.UnreleasedDir(), 0o755))
	writeFile(t, filepath.Join(store.UnreleasedDir(), "a.yaml"), "author: a\ntitle: A\n")
	writeFile(t, filepath.Join(store.UnreleasedDir(), "b.yml"), "author: b\ntitle: B\n")

	names, err := store.ListUnreleased()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml"}, names)
}
