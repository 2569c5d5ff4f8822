package store

import (
	"testing"

	"github.com/swapsies/swapsies/swapsiestest/assert"
)

func TestReleasedIteratorAllowsWrites(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		db := MemStore()
		assert.Nil(t, db.Set([]byte("a"), []byte("A")))
		cache := db.CacheWrap()

		open := cache.Iterator
		if reverse {
			open = cache.ReverseIterator
		}
		it, err := open([]byte("a"), []byte("z"))
		assert.Nil(t, err)
		// Release is synchronous, writing right after must be safe.
		it.Release()
		assert.Nil(t, db.Delete([]byte("a")))
	}
}

func TestDescendExcludesEnd(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, db.Set([]byte(k), []byte(k)))
	}
	expectIteration(t, db, []byte("b"), []byte("d"), true, []Model{
		Pair([]byte("c"), []byte("c")),
		Pair([]byte("b"), []byte("b")),
	})
	expectIteration(t, db, []byte("b"), []byte("d"), false, []Model{
		Pair([]byte("b"), []byte("b")),
		Pair([]byte("c"), []byte("c")),
	})
	expectIteration(t, db, []byte("bb"), nil, true, []Model{
		Pair([]byte("d"), []byte("d")),
		Pair([]byte("c"), []byte("c")),
	})
}
