package swap

import (
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/gconf"
)

const optKey = "swap"

// Genesis is the content of the "swap" genesis section.
type Genesis struct {
	Asks []*Ask `json:"asks"`
}

// Initializer fulfils the Initializer interface to load the engine
// configuration and active asks from the genesis file.
type Initializer struct{}

var _ swapsies.Initializer = Initializer{}

// FromGenesis stores the "conf.swap" configuration, if present, and makes
// every ask of the "swap" section active.
func (Initializer) FromGenesis(opts swapsies.Options, kv swapsies.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, packageName, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		// The engine refuses to work until configured.
	default:
		return errors.Wrap(err, "configuration")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	reg := NewRegistry()
	for i, ask := range gen.Asks {
		fp, err := FingerprintOf(ask)
		if err != nil {
			return errors.Wrapf(err, "ask %d", i)
		}
		if err := ask.validateLimit(conf.MaxBundleEntries); err != nil {
			return errors.Wrapf(err, "ask %d", i)
		}
		if err := reg.Create(kv, fp, ask); err != nil {
			return errors.Wrapf(err, "ask %d", i)
		}
	}
	return nil
}
