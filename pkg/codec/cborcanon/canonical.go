// Package cborcanon provides the deterministic CBOR encoding used to compare network
// parameters between peers. Two peers encoding equal values get identical bytes.
package cborcanon

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"lukechampine.com/blake3"
)

// CanonicalMode encodes with sorted map keys and shortest integer forms
var CanonicalMode cbor.EncMode

// StrictMode rejects duplicate map keys and indefinite lengths when decoding
var StrictMode cbor.DecMode

func init() {
	var err error
	CanonicalMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create canonical CBOR mode: %v", err))
	}
	StrictMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create strict CBOR mode: %v", err))
	}
}

// Marshal encodes v into canonical CBOR
func Marshal(v interface{}) ([]byte, error) {
	return CanonicalMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v, rejecting non-deterministic constructs
func Unmarshal(data []byte, v interface{}) error {
	return StrictMode.Unmarshal(data, v)
}

// IsCanonical checks if the given CBOR bytes are in canonical form
func IsCanonical(data []byte) bool {
	var v interface{}
	if err := Unmarshal(data, &v); err != nil {
		return false
	}
	canonical, err := Marshal(v)
	if err != nil {
		return false
	}
	return bytes.Equal(data, canonical)
}

// Sum256 returns the BLAKE3-256 digest of the canonical encoding of v
func Sum256(v interface{}) ([32]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return [32]byte{}, fmt.Errorf("canonical CBOR marshal failed: %w", err)
	}
	return blake3.Sum256(data), nil
}
