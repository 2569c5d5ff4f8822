package store

import (
	"bytes"

	"github.com/google/btree"
)

// degree of the cache btrees.
const degree = 2

// BTreeCacheable adds a btree based CacheWrap to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache that can later be written to this store or
// discarded.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store keeping everything in memory. Nothing it holds
// is ever persisted.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap keeps all writes in an in memory btree shadowing the
// backing store. Each write is also recorded in a batch and Write flushes
// that batch to the backing store.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over kv. Writes never go to kv
// directly, only through batch. A free list may be shared between nested
// caches, nil creates a new one.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(degree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing to this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all changes to the backing store. The cache is empty
// afterwards, whether the write succeeded or not.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all changes.
func (b BTreeCacheWrap) Discard() {
	b.bt.Clear(true)
	if d, ok := b.batch.(discarder); ok {
		d.discard()
	}
}

type discarder interface {
	discard()
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(cacheItem{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(cacheItem{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get returns the cached value, or the one of the backing store if the key
// was not written to this cache.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	it, ok := b.lookup(key)
	if !ok {
		return b.back.Get(key)
	}
	if it.deleted {
		return nil, nil
	}
	return it.value, nil
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	it, ok := b.lookup(key)
	if !ok {
		return b.back.Has(key)
	}
	return !it.deleted, nil
}

func (b BTreeCacheWrap) lookup(key []byte) (cacheItem, bool) {
	found := b.bt.Get(cacheItem{key: key})
	if found == nil {
		return cacheItem{}, false
	}
	return found.(cacheItem), true
}

// Iterator returns keys within [start, end) in ascending order, merging
// this cache with the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(ascend(b.bt, start, end), parent, false), nil
}

// ReverseIterator returns keys within [start, end) in descending order,
// merging this cache with the backing store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(descend(b.bt, start, end), parent, true), nil
}

// cacheItem is a write recorded in the cache. A deleted item hides the
// value of the backing store.
type cacheItem struct {
	key     []byte
	value   []byte
	deleted bool
}

func (c cacheItem) Less(than btree.Item) bool {
	return bytes.Compare(c.key, than.(cacheItem).key) < 0
}
