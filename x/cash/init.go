package cash

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
)

const optKey = "cash"

// GenesisBalance is used to parse the json from genesis file. Amounts
// are decimal or 0x prefixed hex strings.
type GenesisBalance struct {
	Token  swapsies.Address `json:"token"`
	Holder swapsies.Address `json:"holder"`
	Amount *uint256.Int     `json:"amount"`
}

// GenesisAllowance is an allowance granted at genesis.
type GenesisAllowance struct {
	Token   swapsies.Address `json:"token"`
	Owner   swapsies.Address `json:"owner"`
	Spender swapsies.Address `json:"spender"`
	Amount  *uint256.Int     `json:"amount"`
}

// Genesis is the content of the "cash" genesis section.
type Genesis struct {
	Balances   []GenesisBalance   `json:"balances"`
	Allowances []GenesisAllowance `json:"allowances"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ swapsies.Initializer = Initializer{}

// FromGenesis will parse initial balances and allowances from genesis
// and save them to the database
func (Initializer) FromGenesis(opts swapsies.Options, kv swapsies.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController()
	for i, b := range gen.Balances {
		if b.Amount == nil {
			return errors.Wrapf(errors.ErrAmount, "balance %d: missing amount", i)
		}
		if err := ctrl.Mint(kv, b.Token, b.Holder, b.Amount); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
	}
	for i, a := range gen.Allowances {
		if a.Amount == nil {
			return errors.Wrapf(errors.ErrAmount, "allowance %d: missing amount", i)
		}
		if err := ctrl.Approve(kv, a.Token, a.Owner, a.Spender, a.Amount); err != nil {
			return errors.Wrapf(err, "allowance %d", i)
		}
	}
	return nil
}
