package fs

import (
	"slices"
	"sync"
	"time"
)

type cacheEntry struct {
	data         []byte
	lastModified time.Time
	size         int64
}

// cache keeps the last bytes read per key, valid while mtime and size match.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]*cacheEntry)}
}

// Get returns a copy of the cached bytes if the entry is fresh.
func (c *cache) Get(key string, mtime time.Time, size int64) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.lastModified.Equal(mtime) || entry.size != size {
		return nil, false
	}
	return slices.Clone(entry.data), true
}

// Set updates an entry in the cache.
func (c *cache) Set(key string, data []byte, mtime time.Time, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{data: slices.Clone(data), lastModified: mtime, size: size}
}

// Delete removes a single entry from the cache.
func (c *cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
