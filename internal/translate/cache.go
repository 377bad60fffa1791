package translate

import (
	"strings"
	"sync"
)

// DefaultCacheSize bounds the translation cache when no size is configured.
const DefaultCacheSize = 500

// Cache is a bounded map from (source language, target language, normalized
// text) to translated text. Eviction is strict insertion order: the oldest
// inserted entry goes first, regardless of how often it was read.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[string]string
	order   []string
}

// NewCache creates a cache holding at most size entries.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		size:    size,
		entries: make(map[string]string, size),
	}
}

// cacheKey builds the composite lookup key. Text is trimmed and case-folded
// so that repeated utterances hit regardless of casing; NUL separators keep
// the components from aliasing each other.
func cacheKey(sourceLang, targetLang, text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	return sourceLang + "\x00" + targetLang + "\x00" + normalized
}

// Get returns the cached translation for the key, if present.
func (c *Cache) Get(sourceLang, targetLang, text string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[cacheKey(sourceLang, targetLang, text)]
	return value, ok
}

// Put stores a translation and evicts the oldest-inserted entry when the
// bound is exceeded. Re-inserting an existing key updates the value without
// changing its insertion position.
func (c *Cache) Put(sourceLang, targetLang, text, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(sourceLang, targetLang, text)
	if _, exists := c.entries[key]; exists {
		c.entries[key] = translated
		return
	}

	c.entries[key] = translated
	c.order = append(c.order, key)

	if len(c.entries) > c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
