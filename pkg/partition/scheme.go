// Package partition computes DHT ring positions for terms and their references.
//
// Horizontal partitioning spreads different terms over the ring, one position per term.
// Vertical partitioning additionally spreads the references of one term over 2^E equally
// spaced positions, where E is the partition exponent shared by every peer of a network.
// All functions are pure; schemes are immutable values and safe for concurrent use.
//
// Hashes passed to a scheme must be exactly constants.HashLength symbols long. Violations
// panic with an error wrapping ErrHashLength, ErrMalformedHash, ErrVerticalSlot or
// ErrAddressRange.
package partition

import (
	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
)

// Scheme is the addressing contract shared by horizontal and vertical partitioning
type Scheme interface {
	// Exponent returns E; PartitionCount is 2^E
	Exponent() int
	PartitionCount() int

	// Position is the horizontal position of a hash
	Position(hash []byte) Address

	// PositionForStorage is the position a reference of a term is stored at
	PositionForStorage(termHash, referenceHash []byte) Address

	// PositionForVerticalSlot is the position of one vertical slot of a term
	PositionForVerticalSlot(termHash []byte, slot int) Address

	// AllPositions lists every position a reference of the term may be stored at,
	// ascending, one per vertical slot
	AllPositions(termHash []byte) []Address

	// VerticalSlotOf returns the slot a reference lands in
	VerticalSlotOf(referenceHash []byte) int

	Codec() *cardinal.Codec
}

var (
	_ Scheme = Horizontal{}
	_ Scheme = Vertical{}
)

// NewScheme returns the horizontal scheme for exponent 0 and a vertical scheme otherwise
func NewScheme(exponent int, codec *cardinal.Codec) (Scheme, error) {
	if exponent == 0 {
		return NewHorizontal(codec), nil
	}
	return NewVerticalCodec(exponent, codec)
}
