package swapsies

// ReadOnlyKVStore gives read access to a key value store. Keys must not be
// nil.
type ReadOnlyKVStore interface {
	// Get returns the value stored under key, or nil if there is none.
	Get(key []byte) ([]byte, error)

	// Has returns true if a value is stored under key.
	Has(key []byte) (bool, error)

	// Iterator returns all pairs with keys in [start, end) in ascending
	// order. A nil start or end leaves that side of the range open.
	// The domain must not be written to while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator is Iterator in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes to a store or a batch. Callers must not modify keys and
// values once passed in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a store that can be written to.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch writing to this store.
	NewBatch() Batch
}

// Batch collects writes and applies them to its store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks over a range of pairs.
//
//	it, err := db.Iterator(start, end)
//	if err != nil {
//		return err
//	}
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		...
//	}
type Iterator interface {
	// Next returns the next pair, or ErrIteratorDone once the range is
	// exhausted.
	Next() (key, value []byte, err error)

	// Release frees the resources held by the iterator.
	Release()
}

// CacheableKVStore can stage writes in a cache. Caches nest, so a
// transaction can run each of its steps in a cache of its own and keep or
// drop the result of every step separately.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a cache over another store. Reads see the staged writes
// on top of the store below. Either Write or Discard must be called once the
// cache is no longer needed.
type KVCacheWrap interface {
	CacheableKVStore

	// Write applies all staged writes to the store below.
	Write() error

	// Discard drops all staged writes.
	Discard()
}
