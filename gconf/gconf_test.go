package gconf

import (
	"encoding/json"
	"testing"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/store"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

type limits struct {
	Owner   swapsies.Address `json:"owner"`
	Entries int32            `json:"entries"`
}

func (l *limits) Validate() error {
	if l.Entries < 0 {
		return errors.Field("Entries", errors.ErrAmount, "must not be negative")
	}
	if len(l.Owner) != 0 {
		return errors.Field("Owner", l.Owner.Validate(), "invalid owner")
	}
	return nil
}

func (l *limits) Marshal() ([]byte, error)     { return json.Marshal(l) }
func (l *limits) Unmarshal(raw []byte) error { return json.Unmarshal(raw, l) }

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *limits
		WantSaveErr *errors.Error
	}{
		"zero value": {
			Conf: &limits{},
		},
		"with values": {
			Conf: &limits{Owner: swapsies.NewAddress([]byte("owner")), Entries: 8},
		},
		"invalid address cannot be saved": {
			Conf:        &limits{Owner: swapsies.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid amount cannot be saved": {
			Conf:        &limits{Entries: -1},
			WantSaveErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "lim", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got limits
			assert.Nil(t, Load(db, "lim", &got))
			assert.Equal(t, tc.Conf.Entries, got.Entries)
			assert.Equal(t, true, tc.Conf.Owner.Equals(got.Owner))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got limits
	err := Load(store.MemStore(), "lim", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    int32
	}{
		"configured": {
			genesis: `{"conf": {"lim": {"entries": 4}}}`,
			want:    4,
		},
		"missing package configuration": {
			genesis: `{"conf": {"other": {}}}`,
			wantErr: errors.ErrNotFound,
		},
		"missing conf section": {
			genesis: `{}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"lim": {"entries": -2}}}`,
			wantErr: errors.ErrAmount,
		},
		"malformed configuration": {
			genesis: `{"conf": {"lim": {"entries": "many"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts swapsies.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "lim", &limits{})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			var got limits
			assert.Nil(t, Load(db, "lim", &got))
			assert.Equal(t, tc.want, got.Entries)
		})
	}
}
