package tmdb

import (
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/store"
	dbm "github.com/tendermint/tm-db"
)

// iterator adapts the cursor style tm-db iterator.
type iterator struct {
	it dbm.Iterator
}

var _ store.Iterator = (*iterator)(nil)

func (i *iterator) Next() (key, value []byte, err error) {
	if !i.it.Valid() {
		if err := i.it.Error(); err != nil {
			return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return nil, nil, errors.ErrIteratorDone
	}
	key, value = i.it.Key(), i.it.Value()
	i.it.Next()
	return key, value, nil
}

func (i *iterator) Release() {
	i.it.Close()
}
