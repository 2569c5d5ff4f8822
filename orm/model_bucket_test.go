package orm

import (
	"encoding/json"
	"testing"

	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/store"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

// counter is a model used only in tests.
type counter struct {
	Owner string
	Count int64
}

func (c *counter) Marshal() ([]byte, error) { return json.Marshal(c) }

func (c *counter) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Field("Count", errors.ErrAmount, "must not be negative")
	}
	if len(c.Owner) != 3 {
		return errors.Field("Owner", errors.ErrInput, "must be 3 characters")
	}
	return nil
}

func byOwner(m Model) ([][]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.ErrType.Newf("%T", m)
	}
	return [][]byte{[]byte(c.Owner)}, nil
}

func newCounterBucket() ModelBucket {
	return NewModelBucket("cnts", func() Model { return &counter{} }, WithIndex("owner", byOwner))
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	if err := b.Put(db, []byte("c1"), &counter{Owner: "bob", Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	err := b.Put(db, []byte("c1"), &counter{Owner: "bob", Count: -4})
	assert.FieldError(t, err, "Count", errors.ErrAmount)
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))

	refs, err := b.ByIndex(db, "owner", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(refs))
}

func TestModelBucketIndex(t *testing.T) {
	cases := map[string]struct {
		ops      func(t *testing.T, db store.KVStore, b ModelBucket)
		owner    string
		wantRefs []string
	}{
		"find none": {
			ops:   func(t *testing.T, db store.KVStore, b ModelBucket) {},
			owner: "bob",
		},
		"find all of the owner, in key order": {
			ops: func(t *testing.T, db store.KVStore, b ModelBucket) {
				assert.Nil(t, b.Put(db, []byte("c2"), &counter{Owner: "bob", Count: 2}))
				assert.Nil(t, b.Put(db, []byte("c1"), &counter{Owner: "bob", Count: 1}))
				assert.Nil(t, b.Put(db, []byte("c3"), &counter{Owner: "eve", Count: 1}))
			},
			owner:    "bob",
			wantRefs: []string{"c1", "c2"},
		},
		"update moves the reference": {
			ops: func(t *testing.T, db store.KVStore, b ModelBucket) {
				assert.Nil(t, b.Put(db, []byte("c1"), &counter{Owner: "bob", Count: 1}))
				assert.Nil(t, b.Put(db, []byte("c1"), &counter{Owner: "eve", Count: 1}))
			},
			owner:    "eve",
			wantRefs: []string{"c1"},
		},
		"update removes the old reference": {
			ops: func(t *testing.T, db store.KVStore, b ModelBucket) {
				assert.Nil(t, b.Put(db, []byte("c1"), &counter{Owner: "bob", Count: 1}))
				assert.Nil(t, b.Put(db, []byte("c1"), &counter{Owner: "eve", Count: 1}))
			},
			owner: "bob",
		},
		"delete removes the reference": {
			ops: func(t *testing.T, db store.KVStore, b ModelBucket) {
				assert.Nil(t, b.Put(db, []byte("c1"), &counter{Owner: "bob", Count: 1}))
				assert.Nil(t, b.Put(db, []byte("c2"), &counter{Owner: "bob", Count: 1}))
				assert.Nil(t, b.Delete(db, []byte("c1")))
			},
			owner:    "bob",
			wantRefs: []string{"c2"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := newCounterBucket()
			tc.ops(t, db, b)

			refs, err := b.ByIndex(db, "owner", []byte(tc.owner))
			assert.Nil(t, err)
			got := make([]string, len(refs))
			for i, r := range refs {
				got[i] = string(r)
			}
			if len(tc.wantRefs) == 0 {
				assert.Equal(t, 0, len(got))
			} else {
				assert.Equal(t, tc.wantRefs, got)
			}
		})
	}
}

func TestModelBucketUnknownIndex(t *testing.T) {
	_, err := newCounterBucket().ByIndex(store.MemStore(), "age", []byte("x"))
	assert.IsErr(t, ErrInvalidIndex, err)
}
