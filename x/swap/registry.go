package swap

import (
	"context"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/orm"
	"github.com/swapsies/swapsies/x"
)

// Party names one side of an ask.
type Party string

const (
	Asker  Party = "asker"
	Filler Party = "filler"
)

// Registry keeps the set of active asks, keyed by fingerprint. An ask is
// active while its record is stored. Cancelled, filled and never created
// asks all look the same.
type Registry struct {
	asks orm.ModelBucket
}

// NewRegistry returns a registry using the default bucket and indexes.
func NewRegistry() *Registry {
	return &Registry{
		asks: orm.NewModelBucket("ask", func() orm.Model { return &AskRecord{} },
			orm.WithIndex(string(Asker), partyIndexer(Asker)),
			orm.WithIndex(string(Filler), partyIndexer(Filler)),
		),
	}
}

func partyIndexer(p Party) orm.Indexer {
	return func(m orm.Model) ([][]byte, error) {
		rec, ok := m.(*AskRecord)
		if !ok {
			return nil, errors.WithType(errors.ErrModel, m)
		}
		if p == Asker {
			return [][]byte{rec.Asker}, nil
		}
		return [][]byte{rec.Filler}, nil
	}
}

// Create makes the ask active under given fingerprint. It fails with
// ErrDuplicate if it already is.
func (r *Registry) Create(db swapsies.KVStore, fp Fingerprint, ask *Ask) error {
	switch active, err := r.IsActive(db, fp); {
	case err != nil:
		return err
	case active:
		return errors.Wrap(errors.ErrDuplicate, "ask already active")
	}
	return r.asks.Put(db, fp[:], newAskRecord(ask))
}

// RequireActiveAndAuthorized returns the stored ask if it is active and the
// current caller is given party of it.
func (r *Registry) RequireActiveAndAuthorized(ctx context.Context, db swapsies.ReadOnlyKVStore, auth x.Authenticator, fp Fingerprint, party Party) (*Ask, error) {
	ask, err := r.Load(db, fp)
	if err != nil {
		return nil, err
	}
	switch party {
	case Asker:
		if !auth.HasAddress(ctx, ask.Asker) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only the asker can cancel")
		}
	case Filler:
		if !auth.HasAddress(ctx, ask.Filler) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only the designated filler can fill")
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown party %q", party)
	}
	return ask, nil
}

// Deactivate removes an active ask. It fails with ErrNotFound if the ask
// is not active.
func (r *Registry) Deactivate(db swapsies.KVStore, fp Fingerprint) error {
	if err := r.asks.Delete(db, fp[:]); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrNotFound, "ask is not active")
		}
		return err
	}
	return nil
}

// IsActive returns true if an ask with given fingerprint is active.
func (r *Registry) IsActive(db swapsies.ReadOnlyKVStore, fp Fingerprint) (bool, error) {
	switch err := r.asks.Has(db, fp[:]); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Load returns the active ask stored under given fingerprint.
func (r *Registry) Load(db swapsies.ReadOnlyKVStore, fp Fingerprint) (*Ask, error) {
	var rec AskRecord
	if err := r.asks.One(db, fp[:], &rec); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrNotFound, "ask is not active")
		}
		return nil, err
	}
	return rec.Ask(), nil
}

// ActiveBy returns fingerprints of all active asks in which addr is given
// party, in ascending order.
func (r *Registry) ActiveBy(db swapsies.ReadOnlyKVStore, party Party, addr swapsies.Address) ([]Fingerprint, error) {
	if party != Asker && party != Filler {
		return nil, errors.Wrapf(errors.ErrInput, "unknown party %q", party)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	keys, err := r.asks.ByIndex(db, string(party), addr)
	if err != nil {
		return nil, err
	}
	fps := make([]Fingerprint, 0, len(keys))
	for _, k := range keys {
		var fp Fingerprint
		if len(k) != len(fp) {
			return nil, errors.Wrapf(errors.ErrModel, "index reference of %d bytes", len(k))
		}
		copy(fp[:], k)
		fps = append(fps, fp)
	}
	return fps, nil
}
