package app

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/x/cash"
	"github.com/swapsies/swapsies/x/nft"
	"github.com/swapsies/swapsies/x/swap"
)

// IsValidChainID is the RegExp to ensure valid chain IDs
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// Genesis file format.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState swapsies.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return &gen, nil
}

// Initializer loads the state of all components from genesis, in
// dependency order.
func Initializer() swapsies.Initializer {
	return swapsies.ChainInitializers(
		cash.Initializer{},
		nft.Initializer{},
		swap.Initializer{},
	)
}

// InitGenesis loads the genesis state into the store. The whole genesis is
// written at once, and only into a store that was never initialized.
func (a *App) InitGenesis(gen *Genesis) error {
	if !IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", gen.ChainID)
	}
	err := a.Engine.Update(func(db swapsies.KVStore) error {
		if err := saveChainID(db, gen.ChainID); err != nil {
			return err
		}
		return Initializer().FromGenesis(gen.AppState, db)
	})
	if err != nil {
		return err
	}
	a.logger.Info("genesis loaded", "chain_id", gen.ChainID)
	return nil
}

// ChainID returns the chain id the store was initialized with, or an empty
// string.
func (a *App) ChainID() (string, error) {
	var id string
	err := a.Engine.View(func(db swapsies.ReadOnlyKVStore) error {
		var err error
		id, err = loadChainID(db)
		return err
	})
	return id, err
}

const chainIDKey = "_app:chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(kv swapsies.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set
func saveChainID(kv swapsies.KVStore, chainID string) error {
	switch prev, err := loadChainID(kv); {
	case err != nil:
		return err
	case prev != "":
		return errors.Wrapf(errors.ErrState, "already initialized as %q", prev)
	}
	return kv.Set([]byte(chainIDKey), []byte(chainID))
}
