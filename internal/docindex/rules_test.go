package docindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleSet(t *testing.T) {
	t.Run("valid mapping with captures", func(t *testing.T) {
		data := []byte(`
rules:
  - pattern: '^backend/(?P<lang>[^/]+)/(?P<rest>.+)$'
    area: backend
    lang: $lang
    category: [agreements]
  - pattern: '^architecture/(?P<proj>[^/]+)/.+$'
    area: architecture
    category: [c1]
    project: $proj
`)
		rs, err := ParseRuleSet(data, "test.yaml")
		require.NoError(t, err)
		assert.Equal(t, 2, rs.Len())
	})

	t.Run("zero rules is a config error", func(t *testing.T) {
		data := []byte("rules: []\n")
		_, err := ParseRuleSet(data, "test.yaml")
		require.Error(t, err)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("unknown top level key is rejected", func(t *testing.T) {
		data := []byte(`
rules:
  - pattern: '.*'
    area: misc
    category: [doc]
mappings: []
`)
		_, err := ParseRuleSet(data, "test.yaml")
		require.Error(t, err)
	})

	t.Run("invalid regex is a config error", func(t *testing.T) {
		data := []byte(`
rules:
  - pattern: '^backend/(unclosed'
    area: backend
    category: [doc]
`)
		_, err := ParseRuleSet(data, "test.yaml")
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("missing area is a config error", func(t *testing.T) {
		data := []byte(`
rules:
  - pattern: '.*'
    category: [doc]
`)
		_, err := ParseRuleSet(data, "test.yaml")
		require.Error(t, err)
	})

	t.Run("empty category is a config error", func(t *testing.T) {
		data := []byte(`
rules:
  - pattern: '.*'
    area: misc
    category: []
`)
		_, err := ParseRuleSet(data, "test.yaml")
		require.Error(t, err)
	})

	t.Run("reference to unknown capture is a config error", func(t *testing.T) {
		data := []byte(`
rules:
  - pattern: '^backend/(?P<lang>[^/]+)/.+$'
    area: backend
    lang: $language
    category: [agreements]
`)
		_, err := ParseRuleSet(data, "test.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "language")
	})
}

func TestClassify(t *testing.T) {
	data := []byte(`
rules:
  - pattern: '^adr/(?P<name>.+)$'
    area: architecture
    category: [adr]
  - pattern: '^architecture/(?P<proj>[^/]+)/(?P<name>.+)$'
    area: architecture
    category: [c1]
    project: $proj
  - pattern: '^backend/(?P<lang>[^/]+)/(?P<rest>.+)$'
    area: backend
    lang: $lang
    category: [agreements]
  - pattern: '.*\.yaml$'
    area: openapi
    category: [openapi]
`)
	rs, err := ParseRuleSet(data, "test.yaml")
	require.NoError(t, err)

	t.Run("captures expand into classification fields", func(t *testing.T) {
		cls, ok := rs.Classify("backend/php/api/user.md")
		require.True(t, ok)
		assert.Equal(t, "backend", cls.Area)
		assert.Equal(t, Lang("php"), cls.Lang)
		assert.Equal(t, []string{"agreements"}, cls.Category)
		assert.Empty(t, cls.Project)
	})

	t.Run("project capture", func(t *testing.T) {
		cls, ok := rs.Classify("architecture/proj-a/c1.mdx")
		require.True(t, ok)
		assert.Equal(t, "proj-a", cls.Project)
		assert.True(t, cls.Lang.IsNone())
	})

	t.Run("first match wins over later rules", func(t *testing.T) {
		// matches both the adr rule and the trailing yaml catch-all
		cls, ok := rs.Classify("adr/003-storage.yaml")
		require.True(t, ok)
		assert.Equal(t, []string{"adr"}, cls.Category)
		assert.Equal(t, "architecture", cls.Area)
	})

	t.Run("no rule matches", func(t *testing.T) {
		_, ok := rs.Classify("scratch/notes.md")
		assert.False(t, ok)
	})
}

func TestLoadRuleSetMissingFile(t *testing.T) {
	_, err := LoadRuleSet("/nonexistent/arch-mcp.yaml")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
