package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/swapsies/swapsies/errors"
)

// ascend collects cached items within [start, end) in ascending order.
// Items are copied upfront, so the btree may change once this returns.
func ascend(bt *btree.BTree, start, end []byte) []cacheItem {
	var items []cacheItem
	collect := func(i btree.Item) bool {
		it := i.(cacheItem)
		if end != nil && bytes.Compare(it.key, end) >= 0 {
			return false
		}
		items = append(items, it)
		return true
	}
	if start == nil {
		bt.Ascend(collect)
	} else {
		bt.AscendGreaterOrEqual(cacheItem{key: start}, collect)
	}
	return items
}

// descend collects cached items within [start, end) in descending order.
func descend(bt *btree.BTree, start, end []byte) []cacheItem {
	var items []cacheItem
	collect := func(i btree.Item) bool {
		it := i.(cacheItem)
		if end != nil && bytes.Equal(it.key, end) {
			return true
		}
		if start != nil && bytes.Compare(it.key, start) < 0 {
			return false
		}
		items = append(items, it)
		return true
	}
	if end == nil {
		bt.Descend(collect)
	} else {
		bt.DescendLessOrEqual(cacheItem{key: end}, collect)
	}
	return items
}

// mergeIterator combines cached items with the results of the parent
// iterator. Cached values shadow parent values of the same key and cached
// deletes hide them.
type mergeIterator struct {
	items   []cacheItem
	reverse bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []cacheItem, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

// peekParent loads the next parent pair, if any.
func (m *mergeIterator) peekParent() error {
	if m.parentDone || m.parentKey != nil {
		return nil
	}
	key, value, err := m.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.parentDone = true
		return nil
	}
	if err != nil {
		return err
	}
	m.parentKey, m.parentVal = key, value
	return nil
}

func (m *mergeIterator) popParent() ([]byte, []byte) {
	k, v := m.parentKey, m.parentVal
	m.parentKey, m.parentVal = nil, nil
	return k, v
}

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}

		if len(m.items) == 0 {
			if m.parentDone {
				return nil, nil, errors.ErrIteratorDone
			}
			k, v := m.popParent()
			return k, v, nil
		}

		item := m.items[0]
		if !m.parentDone {
			cmp := bytes.Compare(m.parentKey, item.key)
			if m.reverse {
				cmp = -cmp
			}
			if cmp < 0 {
				k, v := m.popParent()
				return k, v, nil
			}
			if cmp == 0 {
				m.popParent()
			}
		}

		m.items = m.items[1:]
		if item.deleted {
			continue
		}
		return item.key, item.value, nil
	}
}

func (m *mergeIterator) Release() {
	m.items = nil
	m.parent.Release()
}
