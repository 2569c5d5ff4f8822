package orm

import (
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/x"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	x.Persistent
	x.Validater
}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw values.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db swapsies.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists,
	// ErrNotFound otherwise.
	Has(db swapsies.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// first. All indexes are updated.
	Put(db swapsies.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db swapsies.KVStore, key []byte) error

	// ByIndex returns primary keys of all entities that are indexed under
	// given key by the named index.
	ByIndex(db swapsies.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error)
}

// ModelBucketOption is implemented by options that can be used when creating
// a model bucket.
type ModelBucketOption func(*modelBucket)

// WithIndex configures a secondary index. Indexer returns all keys a model is
// indexed under. The model type passed to the indexer is the one the bucket
// was created with.
func WithIndex(name string, indexer Indexer) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("index " + name + " registered twice")
		}
		mb.indexes[name] = newIndex(mb.b.name+"_"+name, indexer)
	}
}

// NewModelBucket returns a ModelBucket storing models under given bucket
// name. newModel must return an empty instance of the stored model. It is
// used to load the previous state when updating indexes.
func NewModelBucket(name string, newModel func() Model, opts ...ModelBucketOption) ModelBucket {
	mb := &modelBucket{
		b:        NewBucket(name),
		newModel: newModel,
		indexes:  make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b        Bucket
	newModel func() Model
	indexes  map[string]*index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db swapsies.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db swapsies.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db swapsies.KVStore, key []byte, m Model) error {
	raw, err := x.MarshalValid(m)
	if err != nil {
		return err
	}
	if len(mb.indexes) > 0 {
		prev, err := mb.previous(db, key)
		if err != nil {
			return err
		}
		for _, idx := range mb.indexes {
			if err := idx.update(db, key, prev, m); err != nil {
				return err
			}
		}
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db swapsies.KVStore, key []byte) error {
	prev, err := mb.previous(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.ErrNotFound
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return err
		}
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) ByIndex(db swapsies.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "unknown index %q", indexName)
	}
	return idx.refs(db, key)
}

// previous returns the currently stored model or nil.
func (mb *modelBucket) previous(db swapsies.ReadOnlyKVStore, key []byte) (Model, error) {
	prev := mb.newModel()
	switch err := mb.One(db, key, prev); {
	case err == nil:
		return prev, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
