package nft

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
)

const optKey = "nft"

// GenesisItem is an item minted at genesis, with an optional approved
// address.
type GenesisItem struct {
	Collection swapsies.Address `json:"collection"`
	ID         *uint256.Int     `json:"id"`
	Owner      swapsies.Address `json:"owner"`
	Approved   swapsies.Address `json:"approved,omitempty"`
}

// GenesisOperator is an operator approval granted at genesis.
type GenesisOperator struct {
	Collection swapsies.Address `json:"collection"`
	Owner      swapsies.Address `json:"owner"`
	Operator   swapsies.Address `json:"operator"`
}

// Genesis is the content of the "nft" genesis section.
type Genesis struct {
	Items     []GenesisItem     `json:"items"`
	Operators []GenesisOperator `json:"operators"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ swapsies.Initializer = Initializer{}

// FromGenesis mints all items and grants operator approvals declared in
// the genesis file.
func (Initializer) FromGenesis(opts swapsies.Options, kv swapsies.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController()
	for i, it := range gen.Items {
		if err := ctrl.Mint(kv, it.Collection, it.ID, it.Owner); err != nil {
			return errors.Wrapf(err, "item %d", i)
		}
		if len(it.Approved) != 0 {
			if err := ctrl.Approve(kv, it.Owner, it.Collection, it.ID, it.Approved); err != nil {
				return errors.Wrapf(err, "item %d", i)
			}
		}
	}
	for i, op := range gen.Operators {
		if err := ctrl.SetApprovalForAll(kv, op.Collection, op.Owner, op.Operator, true); err != nil {
			return errors.Wrapf(err, "operator %d", i)
		}
	}
	return nil
}
