package swapsies

import (
	"encoding/json"

	"github.com/swapsies/swapsies/errors"
)

// Options is the application state of a genesis file. Every extension owns
// the section stored under its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis section of an extension into the store.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers returns an Initializer running all inits in order. It
// stops at the first failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (all initializers) FromGenesis(opts Options, db KVStore) error {
	for _, in := range all {
		if err := in.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
