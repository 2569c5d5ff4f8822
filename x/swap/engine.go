package swap

import (
	"context"
	"sync"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/log"
	"github.com/swapsies/swapsies/x"
)

// Engine drives the life of asks: creating, cancelling and filling them.
//
// Every operation runs as one transaction over a cache of the store. The
// cache is written only when the whole operation succeeds, so a failed
// operation leaves no trace. Operations are serialized.
type Engine struct {
	mu       sync.Mutex
	db       swapsies.CacheableKVStore
	auth     x.Authenticator
	registry *Registry
	mover    *Mover
	logger   log.Logger
	events   EventSink
}

// NewEngine returns an engine keeping its state in db. Callers are
// identified by auth. Fills move assets through given ledgers, which must
// keep their state in the same store.
func NewEngine(db swapsies.CacheableKVStore, auth x.Authenticator, fungible FungibleLedger, nonFungible NonFungibleLedger) *Engine {
	return &Engine{
		db:       db,
		auth:     auth,
		registry: NewRegistry(),
		mover:    NewMover(fungible, nonFungible),
		logger:   log.NewNopLogger(),
		events:   nopSink{},
	}
}

// WithLogger sets the logger used by the engine.
func (e *Engine) WithLogger(l log.Logger) *Engine {
	e.logger = l.With("module", "swap")
	return e
}

// WithEvents sets the sink that receives events of committed changes.
func (e *Engine) WithEvents(s EventSink) *Engine {
	e.events = s
	return e
}

// CreateAsk makes given ask active and returns its fingerprint. Only the
// asker can create an ask.
func (e *Engine) CreateAsk(ctx context.Context, ask *Ask) (Fingerprint, error) {
	var fp Fingerprint
	err := e.transact("create", &fp, func(db swapsies.KVCacheWrap) (Event, error) {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return nil, err
		}
		if fp, err = FingerprintOf(ask); err != nil {
			return nil, err
		}
		if err := ask.validateLimit(conf.MaxBundleEntries); err != nil {
			return nil, err
		}
		if err := rejectSpenderParty(conf, ask); err != nil {
			return nil, err
		}
		if !e.auth.HasAddress(ctx, ask.Asker) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only the asker can create the ask")
		}
		if err := e.registry.Create(db, fp, ask); err != nil {
			return nil, err
		}
		return AskCreated{FP: fp, Ask: ask}, nil
	})
	if err != nil {
		return Fingerprint{}, err
	}
	return fp, nil
}

// CancelAsk deactivates given ask. Only the asker can cancel it.
func (e *Engine) CancelAsk(ctx context.Context, ask *Ask) error {
	var fp Fingerprint
	return e.transact("cancel", &fp, func(db swapsies.KVCacheWrap) (Event, error) {
		var err error
		if fp, err = FingerprintOf(ask); err != nil {
			return nil, err
		}
		return e.cancel(ctx, db, fp)
	})
}

// CancelAskByFingerprint deactivates the ask stored under given
// fingerprint. Only the asker can cancel it.
func (e *Engine) CancelAskByFingerprint(ctx context.Context, fp Fingerprint) error {
	return e.transact("cancel", &fp, func(db swapsies.KVCacheWrap) (Event, error) {
		return e.cancel(ctx, db, fp)
	})
}

func (e *Engine) cancel(ctx context.Context, db swapsies.KVStore, fp Fingerprint) (Event, error) {
	stored, err := e.registry.RequireActiveAndAuthorized(ctx, db, e.auth, fp, Asker)
	if err != nil {
		return nil, err
	}
	if err := e.registry.Deactivate(db, fp); err != nil {
		return nil, err
	}
	return AskCancelled{Asker: stored.Asker, FP: fp, Ask: stored}, nil
}

// FillAsk exchanges the bundles of given ask and deactivates it. Only the
// designated filler can fill an ask. Either all assets move or nothing
// changes.
func (e *Engine) FillAsk(ctx context.Context, ask *Ask) error {
	var fp Fingerprint
	return e.transact("fill", &fp, func(db swapsies.KVCacheWrap) (Event, error) {
		var err error
		fp, err = e.fill(ctx, db, ask)
		if err != nil {
			return nil, err
		}
		return AskFilled{FP: fp, Ask: ask}, nil
	})
}

// CheckFill returns the error FillAsk would return for given ask, without
// changing any state.
func (e *Engine) CheckFill(ctx context.Context, ask *Ask) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	db := e.db.CacheWrap()
	defer db.Discard()
	_, err := runRecover(db, func(db swapsies.KVCacheWrap) (Event, error) {
		_, err := e.fill(ctx, db, ask)
		return nil, err
	})
	return err
}

func (e *Engine) fill(ctx context.Context, db swapsies.KVCacheWrap, ask *Ask) (Fingerprint, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return Fingerprint{}, err
	}
	fp, err := FingerprintOf(ask)
	if err != nil {
		return fp, err
	}
	if _, err := e.registry.RequireActiveAndAuthorized(ctx, db, e.auth, fp, Filler); err != nil {
		return fp, err
	}
	if err := rejectSpenderParty(conf, ask); err != nil {
		return fp, err
	}
	// The ask is inactive before any asset moves.
	if err := e.registry.Deactivate(db, fp); err != nil {
		return fp, err
	}
	if err := e.mover.Execute(db, conf.Engine, ask); err != nil {
		return fp, err
	}
	return fp, nil
}

// rejectSpenderParty fails when the engine address is a party of the ask.
// Ledgers let an owner move its own assets without an allowance, so such a
// party would give up its bundle without approving it.
func rejectSpenderParty(conf *Configuration, ask *Ask) error {
	if ask.Asker.Equals(conf.Engine) || ask.Filler.Equals(conf.Engine) {
		return errors.Wrap(errors.ErrInput, "engine address cannot be a party of an ask")
	}
	return nil
}

// IsActive returns true if an ask with given fingerprint is active.
func (e *Engine) IsActive(fp Fingerprint) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ok, err := e.registry.IsActive(e.db, fp)
	if err != nil {
		e.logger.Error("cannot read ask", "fingerprint", fp.String(), "err", err)
		return false
	}
	return ok
}

// Ask returns the active ask stored under given fingerprint.
func (e *Engine) Ask(fp Fingerprint) (*Ask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Load(e.db, fp)
}

// ActiveAsks returns fingerprints of all active asks where addr is given
// party.
func (e *Engine) ActiveAsks(party Party, addr swapsies.Address) ([]Fingerprint, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.ActiveBy(e.db, party, addr)
}

// Update runs fn in a transaction serialized with all engine operations.
// Changes made by fn are written only if it returns nil. The command line
// tool uses it to change the ledgers sharing the engine store.
func (e *Engine) Update(fn func(db swapsies.KVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	db := e.db.CacheWrap()
	_, err := runRecover(db, func(db swapsies.KVCacheWrap) (Event, error) {
		return nil, fn(db)
	})
	if err != nil {
		db.Discard()
		return err
	}
	return errors.Wrap(db.Write(), "commit")
}

// View runs fn over the store, serialized with all engine operations.
func (e *Engine) View(fn func(db swapsies.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.db)
}

// transact runs fn over a cache of the store and writes the cache only if
// fn succeeds. The event returned by fn is published after the write. fp
// is read for logging once fn returns.
func (e *Engine) transact(op string, fp *Fingerprint, fn func(swapsies.KVCacheWrap) (Event, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	db := e.db.CacheWrap()
	ev, err := runRecover(db, fn)
	if err != nil {
		db.Discard()
		e.logger.Debug("rejected", "op", op, "fingerprint", fp.String(), "err", err)
		return err
	}
	if err := db.Write(); err != nil {
		e.logger.Error("cannot commit", "op", op, "fingerprint", fp.String(), "err", err)
		return errors.Wrap(err, "commit")
	}
	e.logger.Info("committed", "op", op, "fingerprint", fp.String())
	e.events.Publish(ev)
	return nil
}

func runRecover(db swapsies.KVCacheWrap, fn func(swapsies.KVCacheWrap) (Event, error)) (ev Event, err error) {
	defer errors.Recover(&err)
	return fn(db)
}
