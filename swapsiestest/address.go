package swapsiestest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/swapsies/swapsies"
)

var addressSeq uint64

// NewAddress returns a new address that is unique within the test binary.
func NewAddress() swapsies.Address {
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], atomic.AddUint64(&addressSeq, 1))
	return swapsies.NewAddress(append([]byte("swapsiestest/"), seq[:]...))
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// swapsies.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) swapsies.Address {
	t.Helper()

	addr, err := swapsies.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
