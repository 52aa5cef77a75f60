package docindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLang(t *testing.T) {
	assert.True(t, LangNone.IsNone())
	assert.Equal(t, LangGroupNone, LangNone.GroupKey())
	assert.False(t, Lang("php").IsNone())
	assert.Equal(t, "php", Lang("php").GroupKey())
}

func TestMimeTypeFor(t *testing.T) {
	cases := map[string]string{
		"c1.mdx":    "text/markdown",
		"README.md": "text/markdown",
		"NOTES.txt": "text/plain",
		"user.yaml": "application/yaml",
	}
	for name, want := range cases {
		got, ok := MimeTypeFor(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := MimeTypeFor("image.png")
	assert.False(t, ok)
	_, ok = MimeTypeFor("Makefile")
	assert.False(t, ok)
}

func TestBuildURI(t *testing.T) {
	assert.Equal(t, "docs://architecture/proj-a/c1.mdx", BuildURI("architecture", "proj-a/c1.mdx"))
	assert.Equal(t, "docs://agreements/backend/php/api/user-service.md",
		BuildURI("agreements", "backend/php/api/user-service.md"))
}

func TestHasCategory(t *testing.T) {
	r := ResourceInfo{Category: []string{"c1", "erd"}}
	assert.True(t, r.HasCategory("erd"))
	assert.False(t, r.HasCategory("adr"))
}
