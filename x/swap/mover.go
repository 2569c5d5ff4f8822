package swap

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
)

// FungibleLedger is the pull transfer capability of a fungible token
// ledger. The spender must be allowed to move the amount owned by from.
type FungibleLedger interface {
	TransferFrom(db swapsies.KVStore, spender, token, from, to swapsies.Address, amount *uint256.Int) error
}

// NonFungibleLedger is the pull transfer capability of a non-fungible
// token ledger. The spender must be allowed to move the item owned by from.
type NonFungibleLedger interface {
	TransferFrom(db swapsies.KVStore, spender, collection swapsies.Address, id *uint256.Int, from, to swapsies.Address) error
}

// LegKind tells which ledger a leg goes through.
type LegKind uint8

const (
	FungibleLeg LegKind = iota + 1
	NonFungibleLeg
)

func (k LegKind) String() string {
	switch k {
	case FungibleLeg:
		return "fungible"
	case NonFungibleLeg:
		return "non-fungible"
	default:
		return fmt.Sprintf("LegKind(%d)", uint8(k))
	}
}

// Leg is a single pull transfer of a bundle entry.
type Leg struct {
	Kind  LegKind
	Token swapsies.Address
	// Value is the amount for fungible legs and the token id for
	// non-fungible legs.
	Value *uint256.Int
	From  swapsies.Address
	To    swapsies.Address
}

func (l Leg) String() string {
	return fmt.Sprintf("%s %s of %s from %s to %s", l.Kind, l.Value.Dec(), l.Token, l.From, l.To)
}

// Plan returns all transfers that fill given ask, in the order they are
// executed. Asker bundles go first, fungible before non-fungible, and every
// bundle keeps its listed order.
func Plan(ask *Ask) []Leg {
	n := ask.AskerFungible.Len() + ask.AskerNonFungible.Len() +
		ask.FillerFungible.Len() + ask.FillerNonFungible.Len()
	legs := make([]Leg, 0, n)
	add := func(kind LegKind, tokens []swapsies.Address, values []*uint256.Int, from, to swapsies.Address) {
		for i := range tokens {
			legs = append(legs, Leg{Kind: kind, Token: tokens[i], Value: values[i], From: from, To: to})
		}
	}
	add(FungibleLeg, ask.AskerFungible.Tokens, ask.AskerFungible.Amounts, ask.Asker, ask.Filler)
	add(NonFungibleLeg, ask.AskerNonFungible.Tokens, ask.AskerNonFungible.TokenIDs, ask.Asker, ask.Filler)
	add(FungibleLeg, ask.FillerFungible.Tokens, ask.FillerFungible.Amounts, ask.Filler, ask.Asker)
	add(NonFungibleLeg, ask.FillerNonFungible.Tokens, ask.FillerNonFungible.TokenIDs, ask.Filler, ask.Asker)
	return legs
}

// Mover executes all transfers of an ask as a single unit.
type Mover struct {
	fungible    FungibleLedger
	nonFungible NonFungibleLedger
}

// NewMover returns a mover using given ledgers.
func NewMover(fungible FungibleLedger, nonFungible NonFungibleLedger) *Mover {
	return &Mover{fungible: fungible, nonFungible: nonFungible}
}

// Execute applies every leg of the ask with spender as the pulling party.
// Transfers are staged in a cache of db and written only when all of them
// succeed. On failure nothing is written and the returned error is
// ErrTransfer together with the ledger failure.
func (m *Mover) Execute(db swapsies.CacheableKVStore, spender swapsies.Address, ask *Ask) error {
	cache := db.CacheWrap()
	for i, leg := range Plan(ask) {
		if err := m.apply(cache, spender, leg); err != nil {
			cache.Discard()
			return errors.Append(
				errors.Wrapf(errors.ErrTransfer, "leg %d: %s", i, leg),
				err,
			)
		}
	}
	return errors.Wrap(cache.Write(), "write transfers")
}

func (m *Mover) apply(db swapsies.KVStore, spender swapsies.Address, leg Leg) error {
	switch leg.Kind {
	case FungibleLeg:
		return m.fungible.TransferFrom(db, spender, leg.Token, leg.From, leg.To, leg.Value)
	case NonFungibleLeg:
		return m.nonFungible.TransferFrom(db, spender, leg.Token, leg.Value, leg.From, leg.To)
	default:
		return errors.Wrapf(errors.ErrState, "unknown leg kind %s", leg.Kind)
	}
}
