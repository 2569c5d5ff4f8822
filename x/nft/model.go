package nft

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Item is the state of a single token.
type Item struct {
	Owner swapsies.Address
	// Approved is the address allowed to move this item, if any.
	Approved swapsies.Address
}

var _ orm.Model = (*Item)(nil)

func (i *Item) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", i.Owner.Validate())
	if len(i.Approved) != 0 {
		errs = errors.AppendField(errs, "Approved", i.Approved.Validate())
	}
	return errs
}

func (i *Item) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(i)
}

func (i *Item) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, i)
}

// Operator marks an address approved to move every item of an owner
// within a collection. Only granted operators are stored.
type Operator struct {
	Approved bool
}

var _ orm.Model = (*Operator)(nil)

func (o *Operator) Validate() error {
	if !o.Approved {
		return errors.Wrap(errors.ErrState, "revoked operators are not stored")
	}
	return nil
}

func (o *Operator) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(o)
}

func (o *Operator) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, o)
}

// NewItemBucket returns the bucket holding items, keyed by
// collection|id.
func NewItemBucket() orm.ModelBucket {
	return orm.NewModelBucket("nft", func() orm.Model { return &Item{} })
}

// NewOperatorBucket returns the bucket holding operator approvals, keyed by
// collection|owner|operator.
func NewOperatorBucket() orm.ModelBucket {
	return orm.NewModelBucket("nft_operator", func() orm.Model { return &Operator{} })
}

func itemKey(collection swapsies.Address, id *uint256.Int) []byte {
	b := id.Bytes32()
	return append(collection.Clone(), b[:]...)
}

func operatorKey(collection, owner, operator swapsies.Address) []byte {
	out := make([]byte, 0, 3*swapsies.AddressLength)
	out = append(out, collection...)
	out = append(out, owner...)
	return append(out, operator...)
}
