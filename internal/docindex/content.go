package docindex

import (
	"github.com/Citizen4our/arch-mcp-server/pkg/fileops"
)

// ContentReader resolves docs:// URIs to file bytes. Content is never
// cached: the index holds metadata only, so reads always reflect the file
// as it exists right now, which may differ from the scanned snapshot.
type ContentReader struct {
	root string
}

// NewContentReader creates a reader rooted at a resolved documentation root.
func NewContentReader(root string) *ContentReader {
	return &ContentReader{root: root}
}

// Root returns the resolved documentation root.
func (cr *ContentReader) Root() string {
	return cr.root
}

// Resolve looks the URI up in the given snapshot and reads the backing file.
// An unindexed URI is a NotFoundError; an indexed URI whose file has gone
// missing or unreadable since the scan is an IOError.
func (cr *ContentReader) Resolve(idx *DocumentIndex, uri string) ([]byte, string, error) {
	rec, ok := idx.Lookup(uri)
	if !ok {
		return nil, "", &NotFoundError{Kind: "resource", Key: uri}
	}
	data, err := fileops.ReadFileUnder(cr.root, rec.FilePath)
	if err != nil {
		return nil, "", &IOError{Path: rec.FilePath, Err: err}
	}
	return data, rec.MimeType, nil
}
