package device

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_PersistsAcrossCalls(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := ID(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "device-"))

	second, err := ID(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second, "id is stable once persisted")
}

func TestID_KeepsExistingID(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := "device-preseeded"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "device-id"), []byte(existing+"\n"), 0o600))

	got, err := ID(dir)
	require.NoError(t, err)
	assert.Equal(t, existing, got, "an existing id is never rotated")
}

func TestID_RegeneratesFromEmptyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "device-id"), []byte("  \n"), 0o600))

	got, err := ID(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "device-"))
}

func TestID_CreatesDataDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := ID(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "device-id"))
	assert.NoError(t, err)
}

func TestID_TemporaryWithoutDir(t *testing.T) {
	t.Parallel()

	first, err := ID("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "temp-"))

	second, err := ID("")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "temporary ids are per-call")
}
