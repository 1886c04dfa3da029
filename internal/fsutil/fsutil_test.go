package fsutil

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(root, 0o755))
		path := root + "/" + name
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestCopyDirectory_AcrossFilesystems(t *testing.T) {
	src := afero.NewMemMapFs()
	dst := afero.NewMemMapFs()
	require.NoError(t, src.MkdirAll("/save/sub/deeper", 0o755))
	writeTree(t, src, "/save", map[string]string{
		"main":            "main data",
		"sub/extra.bin":   "\x00\x01\x02",
		"sub/deeper/file": "deep",
	})

	require.NoError(t, CopyDirectory(src, "/save", dst, "/backups/b1"))

	for name, want := range map[string]string{
		"/backups/b1/main":            "main data",
		"/backups/b1/sub/extra.bin":   "\x00\x01\x02",
		"/backups/b1/sub/deeper/file": "deep",
	} {
		got, err := afero.ReadFile(dst, name)
		require.NoError(t, err, name)
		assert.Equal(t, want, string(got), name)
	}
}

func TestCopyDirectory_MissingSource(t *testing.T) {
	err := CopyDirectory(afero.NewMemMapFs(), "/nope", afero.NewMemMapFs(), "/dst")
	assert.Error(t, err)
}

func TestRecreate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTree(t, fs, "/b/old", map[string]string{"stale": "x"})

	require.NoError(t, Recreate(fs, "/b/old"))
	assert.True(t, DirectoryExists(fs, "/b/old"))
	_, err := fs.Stat("/b/old/stale")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, Recreate(fs, "/b/new"))
	assert.True(t, DirectoryExists(fs, "/b/new"))
}

func TestDeleteFolderRecursively(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTree(t, fs, "/b/x", map[string]string{"a": "1"})

	require.NoError(t, DeleteFolderRecursively(fs, "/b/x"))
	assert.False(t, DirectoryExists(fs, "/b/x"))
	assert.Error(t, DeleteFolderRecursively(fs, "/b/x"))
}

func TestClearDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTree(t, fs, "/c", map[string]string{"a": "1", "b": "2"})
	require.NoError(t, fs.MkdirAll("/c/sub", 0o755))

	require.NoError(t, ClearDirectory(fs, "/c"))
	entries, err := afero.ReadDir(fs, "/c")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.True(t, DirectoryExists(fs, "/c"))
}

func TestDirSizeAndSubdirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTree(t, fs, "/r/one", map[string]string{"f": "12345"})
	writeTree(t, fs, "/r/two", map[string]string{"g": "123"})
	writeTree(t, fs, "/r", map[string]string{"loose": "zz"})

	size, err := DirSize(fs, "/r")
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	names, err := Subdirectories(fs, "/r")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, names)

	names, err = Subdirectories(fs, "/missing")
	require.NoError(t, err)
	assert.Empty(t, names)
}
