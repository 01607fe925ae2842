package textindex

import (
	"fmt"
	"sync"
	"time"
)

// CacheKey derives the index cache key for a candidate set identified by
// goal and difficulty.
func CacheKey(goal, difficulty string) string {
	return fmt.Sprintf("%s_%s", goal, difficulty)
}

type cacheEntry struct {
	index     *Index
	expiresAt time.Time
	lastUsed  time.Time
}

// IndexCache memoizes built indexes under candidate-set keys, bounded by
// a max entry count and a TTL. Safe for concurrent use; redundant
// rebuilds on concurrent misses for the same key are tolerated, the
// last writer wins and the structure stays consistent.
type IndexCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	maxEntries int
	ttl        time.Duration

	now func() time.Time // injectable clock for tests
}

// NewIndexCache creates a cache holding at most maxEntries indexes, each
// expiring ttl after insertion.
func NewIndexCache(maxEntries int, ttl time.Duration) *IndexCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &IndexCache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the cached index for key, if present and unexpired.
func (c *IndexCache) Get(key string) (*Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	e.lastUsed = c.now()
	return e.index, true
}

// Put stores an index under key, evicting the least recently used entry
// when the cache is full.
func (c *IndexCache) Put(key string, idx *Index) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	now := c.now()
	c.entries[key] = &cacheEntry{
		index:     idx,
		expiresAt: now.Add(c.ttl),
		lastUsed:  now,
	}
}

// Invalidate drops every entry. Called after the underlying corpus
// changes.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len returns the current number of cached entries.
func (c *IndexCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked removes expired entries first, then the least recently
// used entry if still at capacity. Caller holds the lock.
func (c *IndexCache) evictLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.lastUsed.Before(oldest) {
			oldestKey = k
			oldest = e.lastUsed
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
