package cas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/turing/interp"
)

func TestLRUCache_BasicOperation(t *testing.T) {
	underlying := NewMemoryCAS()
	cache := NewLRUCache(underlying, 2)

	var hashes []Hash
	for i, w := range []string{"a", "b", "c", "d"} {
		h, err := cache.Put(config(i, w, 0))
		require.NoError(t, err)
		hashes = append(hashes, h)
	}
	assert.Equal(t, 4, underlying.Len())

	for i, h := range hashes {
		got, err := Retrieve[interp.Configuration](cache, h)
		require.NoError(t, err)
		assert.Equal(t, i, got.State)

		stats := cache.Stats()
		assert.LessOrEqual(t, stats.Size, stats.MaxSize)
	}
	assert.Equal(t, CacheStats{Size: 2, MaxSize: 2}, cache.Stats())
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 2)
	h1, _ := cache.Put(config(1, "a", 0))
	h2, _ := cache.Put(config(2, "a", 0))
	h3, _ := cache.Put(config(3, "a", 0))

	for _, h := range []Hash{h1, h2, h1, h3} {
		_, err := Retrieve[interp.Configuration](cache, h)
		require.NoError(t, err)
	}
	_, ok := cache.cache[h1]
	assert.True(t, ok, "h1 was used more recently than h2")
	_, ok = cache.cache[h2]
	assert.False(t, ok)
}

func TestLRUCache_DefaultSizeAndDelegation(t *testing.T) {
	underlying := NewMemoryCAS()
	cache := NewLRUCache(underlying, 0)
	assert.Equal(t, 1000, cache.Stats().MaxSize)

	h, err := cache.Put(config(0, "x", 0))
	require.NoError(t, err)
	assert.True(t, cache.Has(h))

	cache.RecordDepth(h, 3)
	assert.Equal(t, []int{3}, underlying.GetDepths(h))
	assert.Equal(t, []int{3}, cache.GetDepths(h))
}
