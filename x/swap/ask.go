package swap

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
)

// FungibleBundle lists fungible token amounts. Tokens and Amounts are
// parallel sequences and their order is significant.
type FungibleBundle struct {
	Tokens  []swapsies.Address `json:"tokens"`
	Amounts []*uint256.Int     `json:"amounts"`
}

// Len returns the number of entries.
func (b FungibleBundle) Len() int {
	return len(b.Tokens)
}

func (b FungibleBundle) validate(field string) error {
	var errs error
	if len(b.Tokens) != len(b.Amounts) {
		errs = errors.AppendField(errs, field, errors.Wrapf(errors.ErrInput,
			"%d tokens but %d amounts", len(b.Tokens), len(b.Amounts)))
	}
	for i, t := range b.Tokens {
		errs = errors.AppendField(errs, fmt.Sprintf("%s.Tokens.%d", field, i), t.Validate())
	}
	for i, a := range b.Amounts {
		if a == nil {
			errs = errors.AppendField(errs, fmt.Sprintf("%s.Amounts.%d", field, i),
				errors.Wrap(errors.ErrInput, "missing amount"))
		}
	}
	return errs
}

// NonFungibleBundle lists non-fungible tokens. Tokens and TokenIDs are
// parallel sequences and their order is significant.
type NonFungibleBundle struct {
	Tokens   []swapsies.Address `json:"tokens"`
	TokenIDs []*uint256.Int     `json:"token_ids"`
}

// Len returns the number of entries.
func (b NonFungibleBundle) Len() int {
	return len(b.Tokens)
}

func (b NonFungibleBundle) validate(field string) error {
	var errs error
	if len(b.Tokens) != len(b.TokenIDs) {
		errs = errors.AppendField(errs, field, errors.Wrapf(errors.ErrInput,
			"%d tokens but %d token ids", len(b.Tokens), len(b.TokenIDs)))
	}
	for i, t := range b.Tokens {
		errs = errors.AppendField(errs, fmt.Sprintf("%s.Tokens.%d", field, i), t.Validate())
	}
	for i, id := range b.TokenIDs {
		if id == nil {
			errs = errors.AppendField(errs, fmt.Sprintf("%s.TokenIDs.%d", field, i),
				errors.Wrap(errors.ErrInput, "missing token id"))
		}
	}
	return errs
}

// Ask is a swap proposal. The asker gives the asker bundles and receives
// the filler bundles. Only Filler can accept it.
type Ask struct {
	Asker             swapsies.Address  `json:"asker"`
	Filler            swapsies.Address  `json:"filler"`
	AskerFungible     FungibleBundle    `json:"asker_fungible"`
	AskerNonFungible  NonFungibleBundle `json:"asker_non_fungible"`
	FillerFungible    FungibleBundle    `json:"filler_fungible"`
	FillerNonFungible NonFungibleBundle `json:"filler_non_fungible"`
}

// Validate ensures the ask can be encoded. All returned errors are
// ErrInput field errors.
func (a *Ask) Validate() error {
	if a == nil {
		return errors.Wrap(errors.ErrInput, "missing ask")
	}
	var errs error
	errs = errors.AppendField(errs, "Asker", a.Asker.Validate())
	errs = errors.AppendField(errs, "Filler", a.Filler.Validate())
	errs = errors.Append(errs,
		a.AskerFungible.validate("AskerFungible"),
		a.AskerNonFungible.validate("AskerNonFungible"),
		a.FillerFungible.validate("FillerFungible"),
		a.FillerNonFungible.validate("FillerNonFungible"),
	)
	return errs
}

// validateLimit ensures no bundle has more than max entries. Zero means no
// limit.
func (a *Ask) validateLimit(max int32) error {
	if max <= 0 {
		return nil
	}
	var errs error
	check := func(field string, n int) {
		if n > int(max) {
			errs = errors.AppendField(errs, field, errors.Wrapf(errors.ErrInput,
				"%d entries, at most %d allowed", n, max))
		}
	}
	check("AskerFungible", a.AskerFungible.Len())
	check("AskerNonFungible", a.AskerNonFungible.Len())
	check("FillerFungible", a.FillerFungible.Len())
	check("FillerNonFungible", a.FillerNonFungible.Len())
	return errs
}
