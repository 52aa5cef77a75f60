package docindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Citizen4our/arch-mcp-server/pkg/fileops"
)

func TestContentReaderResolve(t *testing.T) {
	root, err := fileops.ResolveRoot(t.TempDir())
	require.NoError(t, err)
	writeTree(t, root, map[string]string{
		"architecture/proj-a/c1.mdx": "# context",
	})

	idx, _, err := NewScanner(root, testRules(t), testLogger()).Scan()
	require.NoError(t, err)
	reader := NewContentReader(root)

	t.Run("reads indexed content with its mime type", func(t *testing.T) {
		data, mime, err := reader.Resolve(idx, "docs://architecture/architecture/proj-a/c1.mdx")
		require.NoError(t, err)
		assert.Equal(t, "# context", string(data))
		assert.Equal(t, "text/markdown", mime)
	})

	t.Run("unknown uri is NotFoundError", func(t *testing.T) {
		_, _, err := reader.Resolve(idx, "docs://architecture/missing.md")
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "resource", nfErr.Kind)
	})

	t.Run("file deleted after scan is IOError", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(root, "architecture", "proj-a", "c1.mdx")))
		_, _, err := reader.Resolve(idx, "docs://architecture/architecture/proj-a/c1.mdx")
		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
	})
}

func TestContentReaderFreshReads(t *testing.T) {
	root, err := fileops.ResolveRoot(t.TempDir())
	require.NoError(t, err)
	writeTree(t, root, map[string]string{
		"backend/go/style.md": "old",
	})

	idx, _, err := NewScanner(root, testRules(t), testLogger()).Scan()
	require.NoError(t, err)
	reader := NewContentReader(root)

	writeTree(t, root, map[string]string{
		"backend/go/style.md": "new content, longer than scanned",
	})

	data, _, err := reader.Resolve(idx, "docs://backend/backend/go/style.md")
	require.NoError(t, err)
	assert.Equal(t, "new content, longer than scanned", string(data))
}
