package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare domain", "example.com", "example.com"},
		{"https scheme", "https://example.com", "example.com"},
		{"http scheme", "http://example.com", "example.com"},
		{"www prefix", "https://www.example.com", "example.com"},
		{"path stripped", "https://example.com/collections/sunglasses", "example.com"},
		{"query stripped", "https://example.com?utm=x", "example.com"},
		{"fragment stripped", "https://example.com#top", "example.com"},
		{"mixed case", "HTTPS://WWW.Example.COM/Path", "example.com"},
		{"surrounding space", "  https://example.com  ", "example.com"},
		{"platform subdomain", "https://shop-name.myshopify.com/products", "shop-name.myshopify.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://www.example.com/path?q=1#frag",
		"shop.example.co.uk",
		"HTTP://WWW.STORE.COM",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestCache_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")

	c := New(path)
	assert.False(t, c.IsProcessed("https://example.com"))

	c.MarkProcessed("https://www.example.com/page", "ab12cd34")

	assert.True(t, c.IsProcessed("example.com"))
	assert.True(t, c.IsProcessed("http://example.com/other"))

	leadID, ok := c.LeadID("https://example.com")
	require.True(t, ok)
	assert.Equal(t, "ab12cd34", leadID)

	// A fresh instance reads the same entries back from disk.
	reloaded := New(path)
	assert.True(t, reloaded.IsProcessed("example.com"))
	leadID, ok = reloaded.LeadID("example.com")
	require.True(t, ok)
	assert.Equal(t, "ab12cd34", leadID)
}

func TestCache_MissingFile(t *testing.T) {
	t.Parallel()

	c := New(filepath.Join(t.TempDir(), "does", "not", "exist.json"))
	assert.Equal(t, 0, c.Stats().Count)
}

func TestCache_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := New(path)
	assert.Equal(t, 0, c.Stats().Count)

	// The cache remains usable after discarding the corrupt file.
	c.MarkProcessed("example.com", "lead1234")
	assert.True(t, c.IsProcessed("example.com"))
}

func TestCache_Remove(t *testing.T) {
	t.Parallel()

	c := New(filepath.Join(t.TempDir(), "processed.json"))
	c.MarkProcessed("example.com", "lead1234")

	assert.True(t, c.Remove("https://www.example.com"))
	assert.False(t, c.IsProcessed("example.com"))
	assert.False(t, c.Remove("example.com"))
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.json")
	c := New(path)
	c.MarkProcessed("one.com", "a")
	c.MarkProcessed("two.com", "b")

	c.Clear()

	assert.Equal(t, 0, c.Stats().Count)
	assert.Equal(t, 0, New(path).Stats().Count)
}

func TestCache_Domains_Sorted(t *testing.T) {
	t.Parallel()

	c := New(filepath.Join(t.TempDir(), "processed.json"))
	c.MarkProcessed("zeta.com", "z")
	c.MarkProcessed("alpha.com", "a")
	c.MarkProcessed("mid.com", "m")

	assert.Equal(t, []string{"alpha.com", "mid.com", "zeta.com"}, c.Domains())
}

func TestCache_MarkProcessed_Overwrites(t *testing.T) {
	t.Parallel()

	c := New(filepath.Join(t.TempDir(), "processed.json"))
	c.MarkProcessed("example.com", "first")
	c.MarkProcessed("https://example.com", "second")

	leadID, ok := c.LeadID("example.com")
	require.True(t, ok)
	assert.Equal(t, "second", leadID)
	assert.Equal(t, 1, c.Stats().Count)
}

func TestCache_MarkProcessed_EmptyDomain(t *testing.T) {
	t.Parallel()

	c := New(filepath.Join(t.TempDir(), "processed.json"))
	c.MarkProcessed("", "lead1234")
	assert.Equal(t, 0, c.Stats().Count)
}
