package orm

import (
	"bytes"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
)

// ErrInvalidIndex is returned when an index specified is invalid
var ErrInvalidIndex = errors.Register(100, "invalid index")

// Indexer calculates the secondary index keys for a given model.
//
// All keys returned by an indexer must be of the same length, as the index
// stores references as a concatenation of the index key and the primary
// key.
type Indexer func(Model) ([][]byte, error)

// index is a 1:N secondary index. Each reference is stored as an empty
// value under <index key><primary key>.
type index struct {
	bucket  Bucket
	indexer Indexer
}

func newIndex(name string, indexer Indexer) *index {
	return &index{
		bucket:  NewBucket(name),
		indexer: indexer,
	}
}

// update removes references of prev and creates references of next. Either
// may be nil.
func (i *index) update(db swapsies.KVStore, primary []byte, prev, next Model) error {
	var prevKeys, nextKeys [][]byte
	var err error
	if prev != nil {
		if prevKeys, err = i.indexer(prev); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}
	if next != nil {
		if nextKeys, err = i.indexer(next); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}

	for _, k := range prevKeys {
		if contains(nextKeys, k) {
			continue
		}
		if err := i.bucket.Delete(db, refKey(k, primary)); err != nil {
			return err
		}
	}
	for _, k := range nextKeys {
		if contains(prevKeys, k) {
			continue
		}
		if err := i.bucket.Set(db, refKey(k, primary), []byte{}); err != nil {
			return err
		}
	}
	return nil
}

// refs returns all primary keys indexed under given key.
func (i *index) refs(db swapsies.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	keys, err := i.bucket.Keys(db, key)
	if err != nil {
		return nil, err
	}
	for n, k := range keys {
		keys[n] = k[len(key):]
	}
	return keys, nil
}

func refKey(indexKey, primary []byte) []byte {
	out := make([]byte, 0, len(indexKey)+len(primary))
	out = append(out, indexKey...)
	return append(out, primary...)
}

func contains(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}
