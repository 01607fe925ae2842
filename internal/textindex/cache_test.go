package textindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "GATE AE_beginner", CacheKey("GATE AE", "beginner"))
}

func TestIndexCachePutGet(t *testing.T) {
	c := NewIndexCache(10, time.Hour)
	idx := BuildIndex([]string{"thrust engine"}, 0)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Put("k", idx)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, idx, got)
}

func TestIndexCacheTTLExpiry(t *testing.T) {
	c := NewIndexCache(10, time.Minute)

	base := time.Now()
	clock := base
	c.now = func() time.Time { return clock }

	c.Put("k", BuildIndex([]string{"thrust"}, 0))

	clock = base.Add(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock = base.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestIndexCacheLRUEviction(t *testing.T) {
	c := NewIndexCache(2, time.Hour)

	base := time.Now()
	clock := base
	c.now = func() time.Time { return clock }

	idx := BuildIndex([]string{"thrust"}, 0)
	c.Put("a", idx)
	clock = clock.Add(time.Second)
	c.Put("b", idx)

	// Touch "a" so "b" becomes the LRU entry.
	clock = clock.Add(time.Second)
	_, ok := c.Get("a")
	require.True(t, ok)

	clock = clock.Add(time.Second)
	c.Put("c", idx)

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestIndexCacheEvictsExpiredBeforeLRU(t *testing.T) {
	c := NewIndexCache(2, time.Minute)

	base := time.Now()
	clock := base
	c.now = func() time.Time { return clock }

	idx := BuildIndex([]string{"thrust"}, 0)
	c.Put("old", idx)
	clock = base.Add(2 * time.Minute)
	c.Put("fresh", idx)

	// "old" is expired, so inserting a third entry drops it rather than
	// the least recently used live entry.
	c.Put("newer", idx)

	_, ok := c.Get("fresh")
	assert.True(t, ok)
	_, ok = c.Get("newer")
	assert.True(t, ok)
	_, ok = c.Get("old")
	assert.False(t, ok)
}

func TestIndexCacheInvalidate(t *testing.T) {
	c := NewIndexCache(10, time.Hour)
	c.Put("a", BuildIndex([]string{"thrust"}, 0))
	c.Put("b", BuildIndex([]string{"lift"}, 0))
	require.Equal(t, 2, c.Len())

	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestIndexCacheOverwriteSameKey(t *testing.T) {
	c := NewIndexCache(1, time.Hour)
	first := BuildIndex([]string{"thrust"}, 0)
	second := BuildIndex([]string{"lift"}, 0)

	c.Put("k", first)
	c.Put("k", second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, c.Len())
}
