/*
Package app wires the ledgers and the swap engine over a single store.

All components keep their state in the same database, so a fill moves
fungible and non-fungible tokens and deactivates the ask in one atomic
write.
*/
package app

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/log"
	"github.com/swapsies/swapsies/store/tmdb"
	"github.com/swapsies/swapsies/x"
	"github.com/swapsies/swapsies/x/cash"
	"github.com/swapsies/swapsies/x/nft"
	"github.com/swapsies/swapsies/x/swap"
)

// DBName is the name of the database within the home directory.
const DBName = "swapsies"

// App contains the store and all components working on it.
type App struct {
	logger log.Logger
	store  *tmdb.CommitStore
	auth   *x.CtxAuth

	Cash   *cash.Controller
	NFT    *nft.Controller
	Engine *swap.Engine
}

// Open returns an application using the database in given directory.
func Open(dir string, logger log.Logger) (*App, error) {
	db, err := tmdb.NewCommitStore(dir, DBName)
	if err != nil {
		return nil, err
	}
	return New(db, logger), nil
}

// New returns an application using given store. Events of committed asks
// are written to the logger.
func New(db *tmdb.CommitStore, logger log.Logger) *App {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	a := &App{
		logger: logger,
		store:  db,
		auth:   &x.CtxAuth{Key: "app"},
		Cash:   cash.NewController(),
		NFT:    nft.NewController(),
	}
	a.Engine = swap.NewEngine(db, a.auth, a.Cash, a.NFT).
		WithLogger(logger).
		WithEvents(swap.LogSink{Logger: logger.With("module", "events")})
	return a
}

// Close releases the database.
func (a *App) Close() error {
	return a.store.Close()
}

// As returns a context authenticated as given caller.
func (a *App) As(ctx context.Context, caller swapsies.Address) context.Context {
	return a.auth.SetAddresses(ctx, caller)
}

func (a *App) caller(ctx context.Context) (swapsies.Address, error) {
	caller := x.MainSigner(ctx, a.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return caller, nil
}

// Approve sets the allowance of spender over the fungible token of the
// caller.
func (a *App) Approve(ctx context.Context, token, spender swapsies.Address, amount *uint256.Int) error {
	owner, err := a.caller(ctx)
	if err != nil {
		return err
	}
	return a.Engine.Update(func(db swapsies.KVStore) error {
		return a.Cash.Approve(db, token, owner, spender, amount)
	})
}

// ApproveItem allows approved to move a single item. The caller must own
// the item or be an operator of its owner.
func (a *App) ApproveItem(ctx context.Context, collection swapsies.Address, id *uint256.Int, approved swapsies.Address) error {
	caller, err := a.caller(ctx)
	if err != nil {
		return err
	}
	return a.Engine.Update(func(db swapsies.KVStore) error {
		return a.NFT.Approve(db, caller, collection, id, approved)
	})
}

// SetOperator grants or revokes operator rights over all items of the
// caller in a collection.
func (a *App) SetOperator(ctx context.Context, collection, operator swapsies.Address, approved bool) error {
	owner, err := a.caller(ctx)
	if err != nil {
		return err
	}
	return a.Engine.Update(func(db swapsies.KVStore) error {
		return a.NFT.SetApprovalForAll(db, collection, owner, operator, approved)
	})
}

// Balance returns the amount of token held by holder.
func (a *App) Balance(token, holder swapsies.Address) (*uint256.Int, error) {
	var bal *uint256.Int
	err := a.Engine.View(func(db swapsies.ReadOnlyKVStore) error {
		var err error
		bal, err = a.Cash.Balance(db, token, holder)
		return err
	})
	return bal, err
}

// Allowance returns how much of owner's token spender can pull.
func (a *App) Allowance(token, owner, spender swapsies.Address) (*uint256.Int, error) {
	var allowed *uint256.Int
	err := a.Engine.View(func(db swapsies.ReadOnlyKVStore) error {
		var err error
		allowed, err = a.Cash.Allowance(db, token, owner, spender)
		return err
	})
	return allowed, err
}

// Item describes the state of a non-fungible token.
type Item struct {
	Owner    swapsies.Address `json:"owner"`
	Approved swapsies.Address `json:"approved,omitempty"`
}

// Item returns the owner and the approved address of an item.
func (a *App) Item(collection swapsies.Address, id *uint256.Int) (*Item, error) {
	var it Item
	err := a.Engine.View(func(db swapsies.ReadOnlyKVStore) error {
		var err error
		if it.Owner, err = a.NFT.OwnerOf(db, collection, id); err != nil {
			return err
		}
		it.Approved, err = a.NFT.GetApproved(db, collection, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Configuration returns the swap engine configuration.
func (a *App) Configuration() (*swap.Configuration, error) {
	var conf *swap.Configuration
	err := a.Engine.View(func(db swapsies.ReadOnlyKVStore) error {
		var err error
		conf, err = swap.LoadConfiguration(db)
		return err
	})
	return conf, err
}
