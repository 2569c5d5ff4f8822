/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index and may possess secondary indexes (1:N).
* Easy queries for one and iteration.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString
)

// Bucket is a prefixed subspace of the DB. It stores raw values. Use
// ModelBucket when values are models.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data. Panics if the name is not a
// valid bucket name.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns the raw value stored under given key, or nil if missing.
func (b Bucket) Get(db swapsies.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "bucket get")
	}
	return raw, nil
}

// Has returns true if a value is stored under given key.
func (b Bucket) Has(db swapsies.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "bucket has")
	}
	return ok, nil
}

// Set writes the raw value under given key.
func (b Bucket) Set(db swapsies.KVStore, key, value []byte) error {
	return errors.Wrap(db.Set(b.DBKey(key), value), "bucket set")
}

// Delete will remove the value at a key
func (b Bucket) Delete(db swapsies.KVStore, key []byte) error {
	return errors.Wrap(db.Delete(b.DBKey(key)), "bucket delete")
}

// Keys returns all keys of this bucket that start with given prefix, in
// ascending order. Returned keys do not contain the bucket prefix.
func (b Bucket) Keys(db swapsies.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	start := b.DBKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "bucket iterator")
	}
	defer it.Release()

	var keys [][]byte
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "bucket iterator")
		}
		keys = append(keys, append([]byte(nil), key[len(b.prefix):]...))
	}
}

// prefixEnd returns the first key that is greater than all keys starting
// with given prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
