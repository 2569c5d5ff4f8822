//nolint
package store

import "github.com/swapsies/swapsies"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = swapsies.ReadOnlyKVStore
type SetDeleter = swapsies.SetDeleter
type KVStore = swapsies.KVStore
type Batch = swapsies.Batch
type Iterator = swapsies.Iterator
type CacheableKVStore = swapsies.CacheableKVStore
type KVCacheWrap = swapsies.KVCacheWrap

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
