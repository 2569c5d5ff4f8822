package orm

import (
	"testing"

	"github.com/swapsies/swapsies/store"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("a") })
	assert.Panics(t, func() { NewBucket("Upper") })
	assert.Panics(t, func() { NewBucket("with:colon") })
	assert.Equal(t, "asks", NewBucket("asks").Name())
}

func TestBucketKeys(t *testing.T) {
	db := store.MemStore()
	a := NewBucket("aaa")
	b := NewBucket("aab")

	assert.Nil(t, a.Set(db, []byte("x1"), []byte("1")))
	assert.Nil(t, a.Set(db, []byte("x2"), []byte("2")))
	assert.Nil(t, a.Set(db, []byte("y1"), []byte("3")))
	assert.Nil(t, b.Set(db, []byte("x3"), []byte("4")))

	keys, err := a.Keys(db, []byte("x"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("x1"), []byte("x2")}, keys)

	keys, err = a.Keys(db, nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(keys))

	raw, err := a.Get(db, []byte("y1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("3"), raw)

	assert.Nil(t, a.Delete(db, []byte("y1")))
	ok, err := a.Has(db, []byte("y1"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":       {prefix: []byte("ab"), want: []byte("ac")},
		"carry":        {prefix: []byte{0x01, 0xff}, want: []byte{0x02}},
		"all max":      {prefix: []byte{0xff, 0xff}, want: nil},
		"empty prefix": {prefix: nil, want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, prefixEnd(tc.prefix))
		})
	}
}
