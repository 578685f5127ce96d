package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/chlog/internal/config"
	chlogerrors "github.com/raveheart1/chlog/internal/errors"
)

func TestInitWritesConfigTemplate(t *testing.T) {
	root, _ := newFixture(t)

	out, _, err := runCommand(t, "--root", root, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(filepath.Join(root, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Template, string(data))
}

func TestInitRefusesExistingConfig(t *testing.T) {
	root, _ := newFixture(t)

	path := filepath.Join(root, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("output_file: NOTES.md\n"), 0o644))

	_, _, err := runCommand(t, "--root", root, "init")
	require.Error(t, err)
	cliErr := chlogerrors.As(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, chlogerrors.Configuration, cliErr.Category)
	assert.Contains(t, cliErr.Message, "already exists")

	// The existing file is untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output_file: NOTES.md\n", string(data))
}
