// Package cardinal maps fixed-width base64 hashes to positions on the DHT ring.
//
// A hash is read as a sequence of 6-bit symbols, most significant first. The first
// constants.CardinalSymbols symbols fill 60 bits; three constant one-bits are appended so
// that every cardinal lies in [7, 2^63). The top bit of a 64-bit word is never set.
package cardinal

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

// MaxCardinal is the largest ring position, 2^63-1
const MaxCardinal = uint64(1)<<63 - 1

const lowBitsMask = uint64(1)<<constants.CardinalLowBits - 1

var (
	// ErrHashLength is carried by panics for hashes shorter than constants.HashLength
	ErrHashLength = errors.New("hash has wrong length")

	// ErrMalformedHash is carried by panics for hashes with symbols outside the alphabet
	ErrMalformedHash = errors.New("hash contains symbols outside the alphabet")

	// ErrAddressRange is carried by panics for positions with the sign bit set
	ErrAddressRange = errors.New("position outside the ring")
)

// Codec converts between hash symbols and ring positions for one alphabet.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	alpha string
	ahpla [128]int8
	enc   *base64.Encoding
}

// Enhanced is the codec for the filename-safe alphabet used by the DHT
var Enhanced = New(constants.AlphabetEnhanced)

// Standard is the codec for the RFC 1521 alphabet
var Standard = New(constants.AlphabetStandard)

// New creates a codec for a 64-symbol ASCII alphabet. It panics on a malformed alphabet.
func New(alphabet string) *Codec {
	if len(alphabet) != 64 {
		panic(fmt.Sprintf("cardinal: alphabet must have 64 symbols, got %d", len(alphabet)))
	}
	c := &Codec{alpha: alphabet}
	for i := range c.ahpla {
		c.ahpla[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		s := alphabet[i]
		if s >= 128 || c.ahpla[s] != -1 {
			panic(fmt.Sprintf("cardinal: invalid or duplicate symbol %q in alphabet", s))
		}
		c.ahpla[s] = int8(i)
	}
	c.enc = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)
	return c
}

// ByName returns the codec registered under a configuration name
func ByName(name string) (*Codec, error) {
	switch name {
	case constants.AlphabetNameEnhanced, "":
		return Enhanced, nil
	case constants.AlphabetNameStandard:
		return Standard, nil
	default:
		return nil, fmt.Errorf("unknown alphabet %q", name)
	}
}

// Alphabet returns the 64 symbols of the codec in value order
func (c *Codec) Alphabet() string {
	return c.alpha
}

// Name returns the configuration name of the codec, or the empty string for custom alphabets
func (c *Codec) Name() string {
	switch c.alpha {
	case constants.AlphabetEnhanced:
		return constants.AlphabetNameEnhanced
	case constants.AlphabetStandard:
		return constants.AlphabetNameStandard
	}
	return ""
}

// Wellformed reports whether every byte of h is a symbol of the alphabet
func (c *Codec) Wellformed(h []byte) bool {
	for _, b := range h {
		if b >= 128 || c.ahpla[b] < 0 {
			return false
		}
	}
	return true
}

// Symbol returns the value of one alphabet symbol, or -1
func (c *Codec) Symbol(b byte) int {
	if b >= 128 {
		return -1
	}
	return int(c.ahpla[b])
}

// ToAddress returns the ring position of a hash.
// It panics if h is shorter than constants.HashLength or a significant symbol is malformed.
func (c *Codec) ToAddress(h []byte) uint64 {
	if len(h) < constants.HashLength {
		panic(fmt.Errorf("%w: got %d symbols, want %d", ErrHashLength, len(h), constants.HashLength))
	}
	var v uint64
	for i := 0; i < constants.CardinalSymbols; i++ {
		s := c.Symbol(h[i])
		if s < 0 {
			panic(fmt.Errorf("%w: %q at offset %d", ErrMalformedHash, h[i], i))
		}
		v = v<<constants.SymbolBits | uint64(s)
	}
	return v<<constants.CardinalLowBits | lowBitsMask
}

// FromAddress returns a hash-shaped representative of a ring position.
// The first constants.CardinalSymbols symbols carry the position, the rest are padded with
// the last alphabet symbol. ToAddress(FromAddress(a)) == a for every a produced by ToAddress.
func (c *Codec) FromAddress(a uint64) []byte {
	if a > MaxCardinal {
		panic(fmt.Errorf("%w: %d", ErrAddressRange, a))
	}
	h := make([]byte, constants.HashLength)
	copy(h, c.EncodeUint(a>>constants.CardinalLowBits, constants.CardinalSymbols))
	for i := constants.CardinalSymbols; i < constants.HashLength; i++ {
		h[i] = c.alpha[63]
	}
	return h
}

// EncodeUint writes the low 6*n bits of v as n symbols, most significant first
func (c *Codec) EncodeUint(v uint64, n int) []byte {
	out := make([]byte, n)
	for n > 0 {
		n--
		out[n] = c.alpha[v&0x3f]
		v >>= constants.SymbolBits
	}
	return out
}

// EncodeToString encodes arbitrary bytes as unpadded base64 over the codec's alphabet
func (c *Codec) EncodeToString(b []byte) string {
	return c.enc.EncodeToString(b)
}

// DecodeString decodes unpadded base64 over the codec's alphabet
func (c *Codec) DecodeString(s string) ([]byte, error) {
	b, err := c.enc.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return b, nil
}
