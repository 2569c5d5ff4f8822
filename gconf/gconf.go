package gconf

import (
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/x"
)

// ReadStore is the part of swapsies.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of swapsies.KVStore needed to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is implemented by the configuration of a package.
type Configuration interface {
	x.Persistent
	x.Validater
}

// key of the configuration singleton of a package.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db Store, pkg string, conf x.MarshalValidater) error {
	raw, err := x.MarshalValid(conf)
	if err != nil {
		return errors.Wrapf(err, "configuration of %q", pkg)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "configuration of %q: %s", pkg, err)
	}
	return nil
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned if
// pkg was never configured.
func Load(db ReadStore, pkg string, dst x.Persistent) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "configuration of %q: %s", pkg, err)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "configuration of %q", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "configuration of %q: %s", pkg, err)
	}
	return nil
}

// InitConfig reads the genesis section conf.<pkg> into conf and saves it.
// ErrNotFound is returned if the section is missing.
func InitConfig(db Store, opts swapsies.Options, pkg string, conf Configuration) error {
	var sections swapsies.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return err
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %q section in genesis configuration", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
