// Package cache implements the processed-domain dedup cache. Entries are keyed
// by normalized domain and persisted as a JSON file after every mutation.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Entry records one processed domain.
type Entry struct {
	LeadID      string    `json:"lead_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Stats summarizes cache contents.
type Stats struct {
	Count int    `json:"count"`
	Path  string `json:"path"`
}

// Cache is a file-backed set of processed domains. Saves are best-effort: a
// failed write is logged and the in-memory state stays authoritative for the
// rest of the run.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
}

// New loads the cache from path. A missing file yields an empty cache; a
// corrupt file is logged and discarded rather than aborting the run.
func New(path string) *Cache {
	c := &Cache{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("cache: read failed, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		zap.L().Warn("cache: corrupt file, starting empty",
			zap.String("path", path), zap.Error(err))
		c.entries = make(map[string]Entry)
		return c
	}

	zap.L().Debug("cache: loaded",
		zap.String("path", path), zap.Int("entries", len(c.entries)))
	return c
}

// Normalize reduces a URL or domain to its canonical cache key: lowercase
// host with scheme, leading www., path, query, and fragment removed.
// Normalize is idempotent.
func Normalize(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	for _, prefix := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// IsProcessed reports whether the URL's domain has already been processed.
func (c *Cache) IsProcessed(rawURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[Normalize(rawURL)]
	return ok
}

// LeadID returns the lead ID recorded for the URL's domain, if any.
func (c *Cache) LeadID(rawURL string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Normalize(rawURL)]
	return e.LeadID, ok
}

// MarkProcessed records the URL's domain as processed under leadID,
// overwriting any prior entry, and persists the cache.
func (c *Cache) MarkProcessed(rawURL, leadID string) {
	domain := Normalize(rawURL)
	if domain == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[domain] = Entry{LeadID: leadID, ProcessedAt: time.Now().UTC()}
	c.save()
}

// Remove deletes the URL's domain from the cache. Returns whether an entry
// existed.
func (c *Cache) Remove(rawURL string) bool {
	domain := Normalize(rawURL)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[domain]; !ok {
		return false
	}
	delete(c.entries, domain)
	c.save()
	return true
}

// Clear drops all entries and persists the empty cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	c.save()
}

// Stats returns the entry count and backing path.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Count: len(c.entries), Path: c.path}
}

// Domains returns all cached domains in sorted order.
func (c *Cache) Domains() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	domains := make([]string, 0, len(c.entries))
	for d := range c.entries {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// Entry returns the full entry for a domain.
func (c *Cache) Entry(rawURL string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Normalize(rawURL)]
	return e, ok
}

// save persists entries to disk. Callers must hold c.mu. Failures are logged
// and swallowed; the in-memory state remains valid for the rest of the run.
func (c *Cache) save() {
	if err := c.writeFile(); err != nil {
		zap.L().Warn("cache: save failed", zap.String("path", c.path), zap.Error(err))
	}
}

func (c *Cache) writeFile() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "cache: create dir")
		}
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return eris.Wrap(err, "cache: marshal")
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return eris.Wrap(err, "cache: write")
	}
	return nil
}
