package cash

import (
	"encoding/json"
	"testing"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/store"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": {
			"balances": [
				{"token": "0x1111111111111111111111111111111111111111", "holder": "0x2222222222222222222222222222222222222222", "amount": "1000"},
				{"token": "0x1111111111111111111111111111111111111111", "holder": "0x3333333333333333333333333333333333333333", "amount": "0x10"}
			],
			"allowances": [
				{"token": "0x1111111111111111111111111111111111111111", "owner": "0x2222222222222222222222222222222222222222", "spender": "0x4444444444444444444444444444444444444444", "amount": "250"}
			]
		}
	}`
	var opts swapsies.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	token := swapsies.MustParseAddress("0x1111111111111111111111111111111111111111")
	holder := swapsies.MustParseAddress("0x2222222222222222222222222222222222222222")
	other := swapsies.MustParseAddress("0x3333333333333333333333333333333333333333")
	spender := swapsies.MustParseAddress("0x4444444444444444444444444444444444444444")

	ctrl := NewController()
	bal, err := ctrl.Balance(db, token, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), bal.Uint64())
	bal, err = ctrl.Balance(db, token, other)
	assert.Nil(t, err)
	assert.Equal(t, uint64(16), bal.Uint64())
	allowed, err := ctrl.Allowance(db, token, holder, spender)
	assert.Nil(t, err)
	assert.Equal(t, uint64(250), allowed.Uint64())
}

func TestGenesisErrors(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"missing amount": {
			genesis: `{"cash": {"balances": [{"token": "0x1111111111111111111111111111111111111111", "holder": "0x2222222222222222222222222222222222222222"}]}}`,
			wantErr: errors.ErrAmount,
		},
		"short holder": {
			genesis: `{"cash": {"balances": [{"token": "0x1111111111111111111111111111111111111111", "holder": "0x22", "amount": "1"}]}}`,
			wantErr: errors.ErrInput,
		},
		"malformed section": {
			genesis: `{"cash": {"balances": "nope"}}`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts swapsies.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestGenesisSectionIsOptional(t *testing.T) {
	assert.Nil(t, Initializer{}.FromGenesis(swapsies.Options{}, store.MemStore()))
}
