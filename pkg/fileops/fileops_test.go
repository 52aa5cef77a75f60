package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	t.Run("resolves an existing directory", func(t *testing.T) {
		dir := t.TempDir()
		root, err := ResolveRoot(dir)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(root))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := ResolveRoot("")
		assert.Error(t, err)
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		_, err := ResolveRoot(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("rejects a regular file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := ResolveRoot(file)
		assert.Error(t, err)
	})
}

func TestReadFileUnder(t *testing.T) {
	root, err := ResolveRoot(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "doc.md"), []byte("content"), 0o644))

	t.Run("reads a file beneath the root", func(t *testing.T) {
		data, err := ReadFileUnder(root, "sub/doc.md")
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("rejects absolute paths", func(t *testing.T) {
		_, err := ReadFileUnder(root, filepath.Join(root, "sub", "doc.md"))
		assert.ErrorIs(t, err, ErrTraversal)
	})

	t.Run("rejects dotdot escapes", func(t *testing.T) {
		outside := filepath.Dir(root)
		require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.md"), []byte("secret"), 0o644))
		_, err := ReadFileUnder(root, "../secret.md")
		assert.ErrorIs(t, err, ErrTraversal)
	})

	t.Run("rejects symlinks pointing outside the root", func(t *testing.T) {
		outside := filepath.Join(t.TempDir(), "secret.md")
		require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
		link := filepath.Join(root, "link.md")
		require.NoError(t, os.Symlink(outside, link))
		_, err := ReadFileUnder(root, "link.md")
		assert.ErrorIs(t, err, ErrTraversal)
	})

	t.Run("missing file surfaces the os error", func(t *testing.T) {
		_, err := ReadFileUnder(root, "sub/gone.md")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
