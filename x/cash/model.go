package cash

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Amount is an unsigned 256 bit value, stored as 32 big endian bytes.
type Amount struct {
	Value []byte
}

var _ orm.Model = (*Amount)(nil)

// NewAmount returns the stored form of given value.
func NewAmount(v *uint256.Int) *Amount {
	b := v.Bytes32()
	return &Amount{Value: b[:]}
}

// Int returns the numeric value.
func (a *Amount) Int() *uint256.Int {
	return new(uint256.Int).SetBytes(a.Value)
}

func (a *Amount) Validate() error {
	if len(a.Value) != 32 {
		return errors.Field("Value", errors.ErrAmount, "want 32 bytes, got %d", len(a.Value))
	}
	return nil
}

func (a *Amount) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Amount) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func newAmount() orm.Model { return &Amount{} }

// NewBalanceBucket returns the bucket holding balances, keyed by
// token|holder.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", newAmount)
}

// NewAllowanceBucket returns the bucket holding allowances, keyed by
// token|owner|spender.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash_allow", newAmount)
}

func balanceKey(token, holder swapsies.Address) []byte {
	return join(token, holder)
}

func allowanceKey(token, owner, spender swapsies.Address) []byte {
	return join(token, owner, spender)
}

func join(addrs ...swapsies.Address) []byte {
	out := make([]byte, 0, len(addrs)*swapsies.AddressLength)
	for _, a := range addrs {
		out = append(out, a...)
	}
	return out
}
