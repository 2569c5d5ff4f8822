/*
Package tmdb provides a persistent KVStore backed by a tendermint tm-db
database (goleveldb on disk, or an in-memory database for tests).

All writes of a transaction are staged in a btree cache wrap and flushed to
the database with a single atomic batch.
*/
package tmdb

import (
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/store"
	dbm "github.com/tendermint/tm-db"
)

// CommitStore is a KVStore over a tm-db database.
type CommitStore struct {
	db dbm.DB
}

var _ store.CacheableKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) a goleveldb database with given name in
// the dir directory.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return &CommitStore{db: db}, nil
}

// NewMemCommitStore returns a store that keeps all data in memory.
func NewMemCommitStore() *CommitStore {
	return &CommitStore{db: dbm.NewMemDB()}
}

// Close releases the database.
func (s *CommitStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns nil iff key doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return v, nil
}

// Has checks if a key exists.
func (s *CommitStore) Has(key []byte) (bool, error) {
	ok, err := s.db.Has(key)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set writes directly to the database. Prefer CacheWrap for anything that
// must be atomic.
func (s *CommitStore) Set(key, value []byte) error {
	if err := s.db.Set(key, value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes directly from the database.
func (s *CommitStore) Delete(key []byte) error {
	if err := s.db.Delete(key); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	it, err := s.db.Iterator(nilIfEmpty(start), nilIfEmpty(end))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &iterator{it: it}, nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	it, err := s.db.ReverseIterator(nilIfEmpty(start), nilIfEmpty(end))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &iterator{it: it}, nil
}

// NewBatch returns a batch that writes all its operations atomically.
func (s *CommitStore) NewBatch() store.Batch {
	return &batch{db: s.db}
}

// CacheWrap gives us a savepoint to perform actions. Nothing is written to
// the database until Write is called on the returned cache.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

// batch is a store.Batch over a tm-db batch. The underlying batch is
// created lazily and released after each Write.
type batch struct {
	db dbm.DB
	b  dbm.Batch
}

func (b *batch) get() dbm.Batch {
	if b.b == nil {
		b.b = b.db.NewBatch()
	}
	return b.b
}

func (b *batch) Set(key, value []byte) error {
	b.get().Set(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.get().Delete(key)
	return nil
}

// Write flushes all operations in a single synced write.
func (b *batch) Write() error {
	if b.b == nil {
		return nil
	}
	defer b.discard()
	if err := b.b.WriteSync(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b *batch) discard() {
	if b.b != nil {
		b.b.Close()
		b.b = nil
	}
}
