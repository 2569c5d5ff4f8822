package swapsies

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/swapsies/swapsies/errors"
	"golang.org/x/crypto/sha3"
)

// AddressLength is the length of all addresses. Parties and asset contracts
// share the same address space.
const AddressLength = 20

// Address represents a party or an asset contract. It is a 20 byte value,
// rendered as 0x prefixed hex.
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address from its text form. Accepted formats are
// 0x prefixed hex, "hex:" prefixed hex and "bech32:" prefixed bech32. A string
// without any prefix is decoded as hex.
// An empty value is decoded as a nil address.
func ParseAddress(enc string) (Address, error) {
	format := "hex"
	if strings.HasPrefix(enc, "0x") || strings.HasPrefix(enc, "0X") {
		enc = enc[2:]
	} else if chunks := strings.SplitN(enc, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}

	// No value zero the address.
	if len(enc) == 0 {
		return nil, nil
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr := Address(val)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return addr, nil
	case "bech32":
		_, data, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		payload, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "convert bech32 bits: %s", err)
		}
		addr := Address(payload)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return addr, nil
	default:
		return nil, errors.ErrType.Newf("unknown format %q", format)
	}
}

// MustParseAddress is like ParseAddress but panics on error. Use it only for
// constants and tests.
func MustParseAddress(enc string) Address {
	a, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return a
}

// Bech32 returns the bech32 form of the address using given human readable
// part.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	enc, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return enc, nil
}

// String returns a human readable string.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return "0x" + hex.EncodeToString(a)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address: %X", []byte(a))
	}
	return nil
}

// NewAddress hashes and truncates into the proper size.
// The last AddressLength bytes of the Keccak-256 digest are used.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	sum := h.Sum(nil)
	return sum[len(sum)-AddressLength:]
}
