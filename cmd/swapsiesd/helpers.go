package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/x/swap"
)

// readAsk reads a JSON encoded ask from a file, or from standard input
// when the path is "-".
func readAsk(path string, stdin io.Reader) (*swap.Ask, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read ask: %s", err)
	}
	var ask swap.Ask
	if err := json.Unmarshal(raw, &ask); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode ask: %s", err)
	}
	return &ask, nil
}

func parseAddress(name, s string) (swapsies.Address, error) {
	a, err := swapsies.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return a, nil
}

// parseUint accepts decimal and 0x prefixed hex numbers.
func parseUint(name, s string) (*uint256.Int, error) {
	var n uint256.Int
	if err := n.UnmarshalText([]byte(s)); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%s: %s", name, err)
	}
	return &n, nil
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
