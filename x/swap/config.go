package swap

import (
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/gconf"
)

const packageName = "swap"

// Configuration of the swap engine, kept in the store.
type Configuration struct {
	// Engine is the spender address parties grant allowances to. All
	// transfers of a fill are pulled by it. It can never be the asker or
	// the filler of an ask.
	Engine swapsies.Address `json:"engine"`
	// MaxBundleEntries limits the size of every bundle. Zero means no
	// limit.
	MaxBundleEntries int32 `json:"max_bundle_entries"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate requires a valid engine address and a non negative limit.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Engine", c.Engine.Validate())
	if c.MaxBundleEntries < 0 {
		errs = errors.AppendField(errs, "MaxBundleEntries", errors.ErrInput)
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// LoadConfiguration returns the configuration stored in db. A store that was
// never configured is an ErrState failure.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrState, "swap engine is not configured")
		}
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, packageName, conf)
}
