package cash

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/orm"
)

// maxAllowance is treated as an infinite allowance.
var maxAllowance = new(uint256.Int).SetAllOne()

// Controller is the functionality needed by other packages to read and move
// fungible tokens. All state is kept in the KVStore passed to each call, so
// a cache wrapped store stages ledger changes together with any other
// change.
type Controller struct {
	balances   orm.ModelBucket
	allowances orm.ModelBucket
}

// NewController returns a controller using the default buckets.
func NewController() *Controller {
	return &Controller{
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
	}
}

// Balance returns the amount of token held by holder. Unknown holders have a
// zero balance.
func (c *Controller) Balance(db swapsies.ReadOnlyKVStore, token, holder swapsies.Address) (*uint256.Int, error) {
	return c.load(db, c.balances, balanceKey(token, holder))
}

// Allowance returns how much of owner's token spender can still pull.
func (c *Controller) Allowance(db swapsies.ReadOnlyKVStore, token, owner, spender swapsies.Address) (*uint256.Int, error) {
	return c.load(db, c.allowances, allowanceKey(token, owner, spender))
}

// Mint creates amount of token and assigns it to holder. This is only used
// when loading genesis and in tests.
func (c *Controller) Mint(db swapsies.KVStore, token, to swapsies.Address, amount *uint256.Int) error {
	if err := validateAddresses(token, to); err != nil {
		return err
	}
	bal, err := c.Balance(db, token, to)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return errors.Wrapf(errors.ErrOverflow, "mint %s to %s", amount.Dec(), to)
	}
	return c.balances.Put(db, balanceKey(token, to), NewAmount(sum))
}

// Approve sets the allowance of spender over owner's token. Setting it
// overwrites any previous value.
func (c *Controller) Approve(db swapsies.KVStore, token, owner, spender swapsies.Address, amount *uint256.Int) error {
	if err := validateAddresses(token, owner, spender); err != nil {
		return err
	}
	return c.allowances.Put(db, allowanceKey(token, owner, spender), NewAmount(amount))
}

// Transfer moves amount of token from one holder to another. The caller
// must make sure from authorized the move.
func (c *Controller) Transfer(db swapsies.KVStore, token, from, to swapsies.Address, amount *uint256.Int) error {
	if err := validateAddresses(token, from, to); err != nil {
		return err
	}
	src, err := c.Balance(db, token, from)
	if err != nil {
		return err
	}
	if src.Lt(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"%s holds %s of %s, want %s", from, src.Dec(), token, amount.Dec())
	}
	if from.Equals(to) {
		return nil
	}
	dst, err := c.Balance(db, token, to)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(dst, amount)
	if overflow {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", to)
	}
	if err := c.balances.Put(db, balanceKey(token, from), NewAmount(new(uint256.Int).Sub(src, amount))); err != nil {
		return err
	}
	return c.balances.Put(db, balanceKey(token, to), NewAmount(sum))
}

// TransferFrom moves amount of token from one holder to another on behalf
// of spender. Unless spender is the owner, the allowance must cover the
// amount and is decreased by it.
func (c *Controller) TransferFrom(db swapsies.KVStore, spender, token, from, to swapsies.Address, amount *uint256.Int) error {
	if !spender.Equals(from) {
		allowed, err := c.Allowance(db, token, from, spender)
		if err != nil {
			return err
		}
		if allowed.Lt(amount) {
			return errors.Wrapf(errors.ErrNotApproved,
				"%s may spend %s of %s owned by %s, want %s", spender, allowed.Dec(), token, from, amount.Dec())
		}
		if !allowed.Eq(maxAllowance) {
			left := new(uint256.Int).Sub(allowed, amount)
			if err := c.allowances.Put(db, allowanceKey(token, from, spender), NewAmount(left)); err != nil {
				return err
			}
		}
	}
	return c.Transfer(db, token, from, to, amount)
}

func (c *Controller) load(db swapsies.ReadOnlyKVStore, b orm.ModelBucket, key []byte) (*uint256.Int, error) {
	var a Amount
	switch err := b.One(db, key, &a); {
	case err == nil:
		return a.Int(), nil
	case errors.ErrNotFound.Is(err):
		return new(uint256.Int), nil
	default:
		return nil, err
	}
}

func validateAddresses(addrs ...swapsies.Address) error {
	for _, a := range addrs {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}
