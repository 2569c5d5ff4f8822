package nft

import "github.com/swapsies/swapsies/errors"

// nft reserves 500~600
var (
	// ErrNotOwner is returned when an item is moved from an address that
	// does not own it.
	ErrNotOwner = errors.Register(500, "not the owner")
)
