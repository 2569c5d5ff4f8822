package store

import (
	"testing"

	"github.com/swapsies/swapsies/swapsiestest/assert"
)

func TestBTreeCacheWrap(t *testing.T) {
	RunConformance(t, func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

// TestBTreeCacheOverEmptyStore checks that a write to a store that keeps
// nothing succeeds and does not leak values.
func TestBTreeCacheOverEmptyStore(t *testing.T) {
	empty := BTreeCacheable{EmptyKVStore{}}
	cache := empty.CacheWrap()

	k, v := []byte("ask"), []byte("active")
	assert.Nil(t, cache.Set(k, v))
	expectValue(t, cache, k, v)

	assert.Nil(t, cache.Write())
	expectValue(t, empty, k, nil)
	expectValue(t, cache, k, nil)
}

func TestDiscardDropsPendingOperations(t *testing.T) {
	base := MemStore()
	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("A")))
	cache.Discard()
	// Write after Discard must not leak the discarded changes.
	assert.Nil(t, cache.Write())
	expectValue(t, base, []byte("a"), nil)
}
