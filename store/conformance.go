package store

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

// StoreFactory returns an empty store and a function releasing it.
type StoreFactory func() (CacheableKVStore, func())

// RunConformance checks that stores created by newStore behave as a KVStore
// with nestable caches. Every store implementation runs it from its tests.
func RunConformance(t *testing.T, newStore StoreFactory) {
	t.Run("cache layers", func(t *testing.T) { testCacheLayers(t, newStore) })
	t.Run("shadowing", func(t *testing.T) { testShadowing(t, newStore) })
	t.Run("random ranges", func(t *testing.T) { testRandomRanges(t, newStore) })
}

func testCacheLayers(t *testing.T, newStore StoreFactory) {
	base, release := newStore()
	defer release()

	ask, active := []byte("ask/01"), []byte("active")
	expectValue(t, base, ask, nil)
	assert.Nil(t, base.Set(ask, active))
	expectValue(t, base, ask, active)

	tx := base.CacheWrap()
	expectValue(t, tx, ask, active)
	balance, amount := []byte("cash/alice"), []byte{100}
	assert.Nil(t, tx.Set(balance, amount))
	expectValue(t, tx, balance, amount)
	expectValue(t, base, balance, nil)

	// A nested cache sees both layers and changes neither until written.
	leg := tx.CacheWrap()
	assert.Nil(t, leg.Delete(ask))
	expectValue(t, leg, ask, nil)
	expectValue(t, leg, balance, amount)
	expectValue(t, tx, ask, active)
	leg.Discard()
	expectValue(t, tx, ask, active)

	leg = tx.CacheWrap()
	assert.Nil(t, leg.Delete(ask))
	assert.Nil(t, leg.Write())
	expectValue(t, tx, ask, nil)
	expectValue(t, base, ask, active)

	assert.Nil(t, tx.Write())
	expectValue(t, base, ask, nil)
	expectValue(t, base, balance, amount)

	dropped := base.CacheWrap()
	assert.Nil(t, dropped.Set([]byte("nft/7"), []byte("bob")))
	dropped.Discard()
	expectValue(t, base, []byte("nft/7"), nil)
}

func testShadowing(t *testing.T, newStore StoreFactory) {
	var (
		a  = Pair([]byte("a"), []byte("parent a"))
		a2 = Pair([]byte("a"), []byte("child a"))
		b  = Pair([]byte("b"), []byte("parent b"))
		c  = Pair([]byte("c"), []byte("parent c"))
		d  = Pair([]byte("d"), []byte("child d"))
	)

	cases := map[string]struct {
		parent []Op
		child  []Op
		want   []Model
	}{
		"child only": {
			child: []Op{SetOp(c.Key, c.Value), SetOp(a.Key, a.Value)},
			want:  []Model{a, c},
		},
		"parent only": {
			parent: []Op{SetOp(b.Key, b.Value), SetOp(a.Key, a.Value)},
			want:   []Model{a, b},
		},
		"child overwrites": {
			parent: []Op{SetOp(a.Key, a.Value), SetOp(b.Key, b.Value)},
			child:  []Op{SetOp(a2.Key, a2.Value), SetOp(d.Key, d.Value)},
			want:   []Model{a2, b, d},
		},
		"child deletes": {
			parent: []Op{SetOp(a.Key, a.Value), SetOp(b.Key, b.Value), SetOp(c.Key, c.Value)},
			child:  []Op{DelOp(a.Key), DelOp(c.Key), DelOp(d.Key)},
			want:   []Model{b},
		},
		"child deletes then sets again": {
			parent: []Op{SetOp(a.Key, a.Value)},
			child:  []Op{DelOp(a.Key), SetOp(a2.Key, a2.Value)},
			want:   []Model{a2},
		},
		"everything deleted": {
			parent: []Op{SetOp(a.Key, a.Value), SetOp(b.Key, b.Value)},
			child:  []Op{DelOp(b.Key), DelOp(a.Key)},
			want:   nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, release := newStore()
			defer release()

			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}

			expectIteration(t, child, nil, nil, false, tc.want)
			expectIteration(t, child, nil, nil, true, reversed(tc.want))
			for _, m := range tc.want {
				expectValue(t, child, m.Key, m.Value)
			}

			assert.Nil(t, child.Write())
			expectIteration(t, base, nil, nil, false, tc.want)
		})
	}
}

// testRandomRanges applies random writes to a store and a cache over it and
// compares iteration over random ranges with a map holding the same data.
func testRandomRanges(t *testing.T, newStore StoreFactory) {
	rnd := rand.New(rand.NewSource(7))
	base, release := newStore()
	defer release()

	keys := make([][]byte, 40)
	for i := range keys {
		keys[i] = randomBytes(rnd, 1+rnd.Intn(6))
	}
	want := make(map[string][]byte)
	apply := func(db SetDeleter, n int) {
		for i := 0; i < n; i++ {
			key := keys[rnd.Intn(len(keys))]
			if rnd.Intn(3) == 0 {
				assert.Nil(t, db.Delete(key))
				delete(want, string(key))
				continue
			}
			value := randomBytes(rnd, 1+rnd.Intn(32))
			assert.Nil(t, db.Set(key, value))
			want[string(key)] = value
		}
	}

	apply(base, 60)
	committed := within(want, nil, nil)
	cache := base.CacheWrap()
	apply(cache, 60)

	bound := func() []byte {
		switch rnd.Intn(4) {
		case 0:
			return nil
		case 1:
			return randomBytes(rnd, 1+rnd.Intn(6))
		default:
			return keys[rnd.Intn(len(keys))]
		}
	}
	for i := 0; i < 50; i++ {
		start, end := bound(), bound()
		if start != nil && end != nil && bytes.Compare(start, end) > 0 {
			start, end = end, start
		}
		expected := within(want, start, end)
		expectIteration(t, cache, start, end, false, expected)
		expectIteration(t, cache, start, end, true, reversed(expected))
	}

	expectIteration(t, base, nil, nil, false, committed)
	assert.Nil(t, cache.Write())
	expectIteration(t, base, nil, nil, false, within(want, nil, nil))
}

func expectValue(t testing.TB, db ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := db.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := db.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func expectIteration(t testing.TB, db ReadOnlyKVStore, start, end []byte, reverse bool, want []Model) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	var got []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		got = append(got, Pair(key, value))
	}
	if len(got) != len(want) {
		t.Fatalf("range [%x, %x) reverse %v: want %d pairs, got %d", start, end, reverse, len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) || !bytes.Equal(want[i].Value, got[i].Value) {
			t.Fatalf("range [%x, %x) reverse %v: pair %d: want %x=%x, got %x=%x",
				start, end, reverse, i, want[i].Key, want[i].Value, got[i].Key, got[i].Value)
		}
	}
}

// within returns pairs of data with keys in [start, end), sorted by key.
func within(data map[string][]byte, start, end []byte) []Model {
	var res []Model
	for k, v := range data {
		key := []byte(k)
		if start != nil && bytes.Compare(key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(key, end) >= 0 {
			continue
		}
		res = append(res, Pair(key, v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func reversed(models []Model) []Model {
	if models == nil {
		return nil
	}
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func randomBytes(rnd *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rnd.Read(b)
	return b
}
