package autosave

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesBaseNameWhenFree(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, "hello")
	require.NoError(t, err)

	pid := os.Getpid()
	assert.Equal(t, filepath.Join(dir, fmt.Sprintf("treenote.%d.save", pid)), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestSaveFallsBackToNumericSuffixOnConflict(t *testing.T) {
	dir := t.TempDir()
	pid := os.Getpid()
	base := filepath.Join(dir, fmt.Sprintf("treenote.%d.save", pid))
	require.NoError(t, os.WriteFile(base, []byte("existing"), 0o644))

	path, err := Save(dir, "new content")
	require.NoError(t, err)
	assert.Equal(t, base+".0", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}

func TestSaveSkipsTakenSuffixes(t *testing.T) {
	dir := t.TempDir()
	pid := os.Getpid()
	base := filepath.Join(dir, fmt.Sprintf("treenote.%d.save", pid))
	require.NoError(t, os.WriteFile(base, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(base+".0", []byte("b"), 0o644))

	path, err := Save(dir, "c")
	require.NoError(t, err)
	assert.Equal(t, base+".1", path)
}

func TestConflictsListsOnlyMatchingPidFiles(t *testing.T) {
	dir := t.TempDir()
	pid := os.Getpid()
	other := pid + 1

	require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("treenote.%d.save", pid)), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("treenote.%d.save.0", pid)), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("treenote.%d.save", other)), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), nil, 0o644))

	names, err := Conflicts(dir, pid)
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestConflictsOnMissingDir(t *testing.T) {
	_, err := Conflicts(filepath.Join(t.TempDir(), "nope"), os.Getpid())
	assert.Error(t, err)
}
