package docindex

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// URIScheme prefixes every document URI produced by the scanner.
const URIScheme = "docs://"

// LangGroupNone is the grouping and filter key used for records that carry
// no language tag.
const LangGroupNone = "none"

// Lang is an optional programming-language tag. The zero value means the
// document has no language; absence is explicit, never an accidental empty
// string with hidden meaning.
type Lang string

// LangNone is the explicit "no language" value.
const LangNone Lang = ""

// IsNone reports whether the tag is absent.
func (l Lang) IsNone() bool { return l == LangNone }

// GroupKey returns the key the tag contributes to language groupings and
// filters: the tag itself, or "none" when absent.
func (l Lang) GroupKey() string {
	if l.IsNone() {
		return LangGroupNone
	}
	return string(l)
}

// ResourceInfo is a classified document record. Records are created by the
// scanner, owned by the DocumentIndex that produced them, and never mutated
// afterwards.
type ResourceInfo struct {
	URI         string   `json:"uri"`
	FilePath    string   `json:"file_path"`
	Area        string   `json:"area"`
	Lang        Lang     `json:"lang"`
	Category    []string `json:"category"`
	Project     string   `json:"project"`
	MimeType    string   `json:"mime_type"`
	Size        int64    `json:"size"`
	Description string   `json:"description"`
}

// HasCategory reports whether the record carries the given category tag.
func (r *ResourceInfo) HasCategory(tag string) bool {
	return slices.Contains(r.Category, tag)
}

// mimeTypes is the fixed extension table. Files with any other extension
// are not indexed at all.
var mimeTypes = map[string]string{
	".md":   "text/markdown",
	".mdx":  "text/markdown",
	".txt":  "text/plain",
	".yaml": "application/yaml",
}

// MimeTypeFor returns the mime type for a file name and whether its
// extension belongs to the supported set.
func MimeTypeFor(name string) (string, bool) {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	return mime, ok
}

// BuildURI derives the canonical document URI from the classified area and
// the slash-relative path under the docs root. The result is stable across
// scans for unchanged files and rules.
func BuildURI(area, relPath string) string {
	return URIScheme + area + "/" + relPath
}

// describe generates the short summary string stored on each record. It is
// derived from classification metadata only, never from file content.
func describe(area string, lang Lang, categories []string) string {
	return fmt.Sprintf("%s - %s (%s)", strings.Join(categories, ", "), area, lang.GroupKey())
}
