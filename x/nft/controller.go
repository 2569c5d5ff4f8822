package nft

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/orm"
)

// Controller reads and moves non-fungible tokens stored in the KVStore
// passed to each call.
type Controller struct {
	items     orm.ModelBucket
	operators orm.ModelBucket
}

// NewController returns a controller using the default buckets.
func NewController() *Controller {
	return &Controller{
		items:     NewItemBucket(),
		operators: NewOperatorBucket(),
	}
}

// Mint creates a new item owned by to. Creating an item that already
// exists fails with ErrDuplicate.
func (c *Controller) Mint(db swapsies.KVStore, collection swapsies.Address, id *uint256.Int, to swapsies.Address) error {
	if err := collection.Validate(); err != nil {
		return errors.Wrap(err, "collection")
	}
	if id == nil {
		return errors.Wrap(errors.ErrInput, "missing token id")
	}
	key := itemKey(collection, id)
	switch err := c.items.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %s of %s", id.Dec(), collection)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.items.Put(db, key, &Item{Owner: to})
}

// OwnerOf returns the owner of an item, or ErrNotFound.
func (c *Controller) OwnerOf(db swapsies.ReadOnlyKVStore, collection swapsies.Address, id *uint256.Int) (swapsies.Address, error) {
	item, err := c.item(db, collection, id)
	if err != nil {
		return nil, err
	}
	return item.Owner, nil
}

// GetApproved returns the address approved for given item. It is nil when
// none is.
func (c *Controller) GetApproved(db swapsies.ReadOnlyKVStore, collection swapsies.Address, id *uint256.Int) (swapsies.Address, error) {
	item, err := c.item(db, collection, id)
	if err != nil {
		return nil, err
	}
	return item.Approved, nil
}

// Approve allows approved to move the item. Only the owner or an
// operator of the owner can approve. An empty address clears the approval.
func (c *Controller) Approve(db swapsies.KVStore, caller, collection swapsies.Address, id *uint256.Int, approved swapsies.Address) error {
	item, err := c.item(db, collection, id)
	if err != nil {
		return err
	}
	if !caller.Equals(item.Owner) {
		ok, err := c.IsApprovedForAll(db, collection, item.Owner, caller)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "%s is neither owner nor operator", caller)
		}
	}
	item.Approved = approved
	return c.items.Put(db, itemKey(collection, id), item)
}

// SetApprovalForAll grants or revokes operator rights over all items of
// owner within a collection.
func (c *Controller) SetApprovalForAll(db swapsies.KVStore, collection, owner, operator swapsies.Address, approved bool) error {
	for _, a := range []swapsies.Address{collection, owner, operator} {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	key := operatorKey(collection, owner, operator)
	if approved {
		return c.operators.Put(db, key, &Operator{Approved: true})
	}
	if err := c.operators.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}

// IsApprovedForAll returns true if operator can move all items of owner
// within a collection.
func (c *Controller) IsApprovedForAll(db swapsies.ReadOnlyKVStore, collection, owner, operator swapsies.Address) (bool, error) {
	switch err := c.operators.Has(db, operatorKey(collection, owner, operator)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// TransferFrom moves an item owned by from to the to address on behalf of
// spender. The spender must be the owner, the approved address of the
// item, or an operator of the owner.
func (c *Controller) TransferFrom(db swapsies.KVStore, spender, collection swapsies.Address, id *uint256.Int, from, to swapsies.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	item, err := c.item(db, collection, id)
	if err != nil {
		return err
	}
	if !item.Owner.Equals(from) {
		return errors.Wrapf(ErrNotOwner, "token %s of %s is not owned by %s", id.Dec(), collection, from)
	}
	if !spender.Equals(from) && !(len(item.Approved) != 0 && spender.Equals(item.Approved)) {
		ok, err := c.IsApprovedForAll(db, collection, from, spender)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrNotApproved, "%s may not move token %s of %s", spender, id.Dec(), collection)
		}
	}
	item.Owner = to
	item.Approved = nil
	return c.items.Put(db, itemKey(collection, id), item)
}

func (c *Controller) item(db swapsies.ReadOnlyKVStore, collection swapsies.Address, id *uint256.Int) (*Item, error) {
	if id == nil {
		return nil, errors.Wrap(errors.ErrInput, "missing token id")
	}
	var item Item
	if err := c.items.One(db, itemKey(collection, id), &item); err != nil {
		return nil, errors.Wrapf(err, "token %s of %s", id.Dec(), collection)
	}
	return &item, nil
}
