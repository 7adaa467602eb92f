package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/cache"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/lint"
)

func TestCache_PutGet(t *testing.T) {
	t.Parallel()

	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	key := cache.NewKey("v1", "cfg", "index.html", []byte("<p>"))
	_, err = c.Get(key)
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	diag := lint.Diagnostic{
		RuleName:    "no-unclosed-tag",
		Severity:    config.SeverityError,
		FilePath:    "index.html",
		Message:     "Expected a corresponding HTML closing tag for p.",
		Details:     []lint.Detail{{Kind: lint.DetailLog, Severity: config.SeverityError, Message: "m"}, {Kind: lint.DetailSnippet, Start: 1, End: 2}},
		StartOffset: 0,
		EndOffset:   3,
		StartLine:   1,
		StartColumn: 1,
		EndLine:     1,
		EndColumn:   4,
		Fixable:     true,
		Fix:         &fix.NodeEdit{Rule: "x"},
	}
	require.NoError(t, c.Put(key, &cache.Entry{Path: "index.html", Diagnostics: []lint.Diagnostic{diag}}))

	entry, err := c.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "index.html", entry.Path)
	assert.False(t, entry.CreatedAt.IsZero())
	require.Len(t, entry.Diagnostics, 1)

	got := entry.Diagnostics[0]
	assert.Nil(t, got.Fix, "structured fixes are not cached")
	diag.Fix = nil
	assert.Equal(t, diag, got)
	assert.True(t, got.HasFix())
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := cache.Open(dir)
	require.NoError(t, err)

	key := cache.NewKey("v1", "cfg", "a.html", nil)
	require.NoError(t, c.Put(key, &cache.Entry{Path: "a.html"}))

	hexKey := key.String()
	path := filepath.Join(dir, "results", hexKey[:2], hexKey+".mp")
	require.NoError(t, os.WriteFile(path, []byte{0xc1}, 0o644))

	_, err = c.Get(key)
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	key := cache.NewKey("v1", "cfg", "a.html", []byte("x"))
	require.NoError(t, c.Put(key, &cache.Entry{Path: "a.html"}))
	require.NoError(t, c.Clear())

	_, err = c.Get(key)
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestNewKey(t *testing.T) {
	t.Parallel()

	base := cache.NewKey("v1", "cfg", "a.html", []byte("x"))

	assert.Equal(t, base, cache.NewKey("v1", "cfg", "a.html", []byte("x")))
	assert.NotEqual(t, base, cache.NewKey("v2", "cfg", "a.html", []byte("x")))
	assert.NotEqual(t, base, cache.NewKey("v1", "cfg2", "a.html", []byte("x")))
	assert.NotEqual(t, base, cache.NewKey("v1", "cfg", "b.html", []byte("x")))
	assert.NotEqual(t, base, cache.NewKey("v1", "cfg", "a.html", []byte("y")))
	assert.NotEqual(t, base, cache.NewKey("v1", "cfga.html", "", []byte("x")), "parts are separated")
	assert.Len(t, base.String(), 64)
}

func TestNilCache(t *testing.T) {
	t.Parallel()

	var c *cache.Cache
	_, err := c.Get(cache.Key{})
	require.ErrorIs(t, err, cache.ErrCacheMiss)
	require.NoError(t, c.Put(cache.Key{}, &cache.Entry{}))
	require.NoError(t, c.Clear())
}
