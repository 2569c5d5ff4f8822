package swap

import (
	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// AskRecord is the stored form of an active ask.
type AskRecord struct {
	Asker             []byte
	Filler            []byte
	AskerFungible     BundleRecord
	AskerNonFungible  BundleRecord
	FillerFungible    BundleRecord
	FillerNonFungible BundleRecord
}

// BundleRecord is the stored form of a bundle. Every value is a 32 byte big
// endian number.
type BundleRecord struct {
	Tokens [][]byte
	Values [][]byte
}

var _ orm.Model = (*AskRecord)(nil)

func newAskRecord(ask *Ask) *AskRecord {
	return &AskRecord{
		Asker:             ask.Asker.Clone(),
		Filler:            ask.Filler.Clone(),
		AskerFungible:     newBundleRecord(ask.AskerFungible.Tokens, ask.AskerFungible.Amounts),
		AskerNonFungible:  newBundleRecord(ask.AskerNonFungible.Tokens, ask.AskerNonFungible.TokenIDs),
		FillerFungible:    newBundleRecord(ask.FillerFungible.Tokens, ask.FillerFungible.Amounts),
		FillerNonFungible: newBundleRecord(ask.FillerNonFungible.Tokens, ask.FillerNonFungible.TokenIDs),
	}
}

func newBundleRecord(tokens []swapsies.Address, values []*uint256.Int) BundleRecord {
	var b BundleRecord
	for _, t := range tokens {
		b.Tokens = append(b.Tokens, t.Clone())
	}
	for _, v := range values {
		w := v.Bytes32()
		b.Values = append(b.Values, w[:])
	}
	return b
}

// Ask returns the ask this record stores.
func (r *AskRecord) Ask() *Ask {
	at, av := r.AskerFungible.parts()
	ant, anv := r.AskerNonFungible.parts()
	ft, fv := r.FillerFungible.parts()
	fnt, fnv := r.FillerNonFungible.parts()
	return &Ask{
		Asker:             swapsies.Address(r.Asker).Clone(),
		Filler:            swapsies.Address(r.Filler).Clone(),
		AskerFungible:     FungibleBundle{Tokens: at, Amounts: av},
		AskerNonFungible:  NonFungibleBundle{Tokens: ant, TokenIDs: anv},
		FillerFungible:    FungibleBundle{Tokens: ft, Amounts: fv},
		FillerNonFungible: NonFungibleBundle{Tokens: fnt, TokenIDs: fnv},
	}
}

func (b BundleRecord) parts() ([]swapsies.Address, []*uint256.Int) {
	var (
		tokens []swapsies.Address
		values []*uint256.Int
	)
	for _, t := range b.Tokens {
		tokens = append(tokens, swapsies.Address(t).Clone())
	}
	for _, v := range b.Values {
		values = append(values, new(uint256.Int).SetBytes(v))
	}
	return tokens, values
}

func (b BundleRecord) validate() error {
	for _, v := range b.Values {
		if len(v) != 32 {
			return errors.Wrapf(errors.ErrModel, "value of %d bytes", len(v))
		}
	}
	return nil
}

func (r *AskRecord) Validate() error {
	if err := r.Ask().Validate(); err != nil {
		return err
	}
	return errors.Append(
		r.AskerFungible.validate(),
		r.AskerNonFungible.validate(),
		r.FillerFungible.validate(),
		r.FillerNonFungible.validate(),
	)
}

func (r *AskRecord) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

func (r *AskRecord) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, r)
}
