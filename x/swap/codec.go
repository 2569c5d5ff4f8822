package swap

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/holiman/uint256"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"golang.org/x/crypto/sha3"
)

const wordSize = 32

// Fingerprint is the content address of an ask.
type Fingerprint [32]byte

// FingerprintOf returns the Keccak-256 hash of the canonical encoding of
// given ask.
func FingerprintOf(ask *Ask) (Fingerprint, error) {
	raw, err := Encode(ask)
	if err != nil {
		return Fingerprint{}, err
	}
	var fp Fingerprint
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(raw)
	h.Sum(fp[:0])
	return fp, nil
}

// String returns the 0x prefixed hex representation.
func (f Fingerprint) String() string {
	return "0x" + hex.EncodeToString(f[:])
}

// ParseFingerprint decodes a hex encoded fingerprint. The 0x prefix is
// optional.
func ParseFingerprint(s string) (Fingerprint, error) {
	var fp Fingerprint
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fp, errors.Wrapf(errors.ErrInput, "fingerprint: %s", err)
	}
	if len(raw) != len(fp) {
		return fp, errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes, got %d", len(fp), len(raw))
	}
	copy(fp[:], raw)
	return fp, nil
}

// MarshalJSON encodes the fingerprint as a 0x prefixed hex string.
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts a hex string, with or without the 0x prefix.
func (f *Fingerprint) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "fingerprint: %s", err)
	}
	fp, err := ParseFingerprint(s)
	if err != nil {
		return err
	}
	*f = fp
	return nil
}

// Encode returns the Solidity ABI encoding of the ask, as produced by
// abi.encode for the tuple
//
//	(address asker, address filler,
//	 (address[],uint256[]) askerERC20, (address[],uint256[]) askerERC721,
//	 (address[],uint256[]) fillerERC20, (address[],uint256[]) fillerERC721)
//
// Only a valid ask can be encoded.
func Encode(ask *Ask) ([]byte, error) {
	if err := ask.Validate(); err != nil {
		return nil, err
	}

	tails := [][]byte{
		encodeBundle(ask.AskerFungible.Tokens, ask.AskerFungible.Amounts),
		encodeBundle(ask.AskerNonFungible.Tokens, ask.AskerNonFungible.TokenIDs),
		encodeBundle(ask.FillerFungible.Tokens, ask.FillerFungible.Amounts),
		encodeBundle(ask.FillerNonFungible.Tokens, ask.FillerNonFungible.TokenIDs),
	}

	// The ask is a dynamic tuple, so the encoding starts with its offset.
	headSize := (2 + len(tails)) * wordSize
	size := wordSize + headSize
	for _, t := range tails {
		size += len(t)
	}
	out := make([]byte, 0, size)
	out = append(out, uintWord(wordSize)...)
	out = append(out, addressWord(ask.Asker)...)
	out = append(out, addressWord(ask.Filler)...)
	offset := headSize
	for _, t := range tails {
		out = append(out, uintWord(offset)...)
		offset += len(t)
	}
	for _, t := range tails {
		out = append(out, t...)
	}
	return out, nil
}

// encodeBundle encodes the (address[],uint256[]) tuple.
func encodeBundle(tokens []swapsies.Address, values []*uint256.Int) []byte {
	addrs := make([]byte, 0, (1+len(tokens))*wordSize)
	addrs = append(addrs, uintWord(len(tokens))...)
	for _, t := range tokens {
		addrs = append(addrs, addressWord(t)...)
	}
	nums := make([]byte, 0, (1+len(values))*wordSize)
	nums = append(nums, uintWord(len(values))...)
	for _, v := range values {
		w := v.Bytes32()
		nums = append(nums, w[:]...)
	}

	out := make([]byte, 0, 2*wordSize+len(addrs)+len(nums))
	out = append(out, uintWord(2*wordSize)...)
	out = append(out, uintWord(2*wordSize+len(addrs))...)
	out = append(out, addrs...)
	return append(out, nums...)
}

func uintWord(n int) []byte {
	w := uint256.NewInt(uint64(n)).Bytes32()
	return w[:]
}

func addressWord(a swapsies.Address) []byte {
	w := make([]byte, wordSize)
	copy(w[wordSize-len(a):], a)
	return w
}
