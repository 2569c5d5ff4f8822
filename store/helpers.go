package store

import (
	"github.com/swapsies/swapsies/errors"
)

// SliceIterator iterates over a slice of models in the slice order.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next model of the slice.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

// EmptyKVStore never holds any data. It is the bottom layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) {
	return nil, nil
}

func (EmptyKVStore) Has([]byte) (bool, error) {
	return false, nil
}

func (EmptyKVStore) Set(_, _ []byte) error {
	return nil
}

func (EmptyKVStore) Delete([]byte) error {
	return nil
}

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is a recorded set or delete.
type Op struct {
	kind  opKind
	key   []byte
	value []byte
}

// Apply performs the operation on given store.
func (o Op) Apply(out SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrDatabase, "unknown kind: %d", o.kind)
	}
}

func SetOp(key, value []byte) Op {
	return Op{kind: setKind, key: key, value: value}
}

func DelOp(key []byte) Op {
	return Op{kind: delKind, key: key}
}

// NonAtomicBatch records operations and applies them one by one on Write.
// A failure halfway leaves the target partially written, so it is only
// used to flush a cache into another in memory layer.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies all recorded operations in order and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

func (b *NonAtomicBatch) discard() {
	b.ops = nil
}
