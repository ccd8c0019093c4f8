package partition

import (
	"fmt"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
)

// Horizontal addresses a term by its own hash only: one partition per term.
// The zero value uses the enhanced alphabet.
type Horizontal struct {
	codec *cardinal.Codec
}

// NewHorizontal returns a horizontal scheme over codec; nil selects cardinal.Enhanced
func NewHorizontal(codec *cardinal.Codec) Horizontal {
	return Horizontal{codec: codec}
}

// Codec returns the codec used to read hashes
func (h Horizontal) Codec() *cardinal.Codec {
	if h.codec == nil {
		return cardinal.Enhanced
	}
	return h.codec
}

// Exponent is always 0
func (h Horizontal) Exponent() int { return 0 }

// PartitionCount is always 1
func (h Horizontal) PartitionCount() int { return 1 }

// Position returns the ring position of a hash
func (h Horizontal) Position(hash []byte) Address {
	checkHash(hash)
	return Address(h.Codec().ToAddress(hash))
}

// PositionForStorage returns the term position. The reference only has its width checked.
func (h Horizontal) PositionForStorage(termHash, referenceHash []byte) Address {
	checkHash(referenceHash)
	return h.Position(termHash)
}

// PositionForVerticalSlot accepts only slot 0
func (h Horizontal) PositionForVerticalSlot(termHash []byte, slot int) Address {
	if slot != 0 {
		panic(fmt.Errorf("%w: %d not in [0, 1)", ErrVerticalSlot, slot))
	}
	return h.Position(termHash)
}

// AllPositions returns the single term position
func (h Horizontal) AllPositions(termHash []byte) []Address {
	return []Address{h.Position(termHash)}
}

// VerticalSlotOf is always 0
func (h Horizontal) VerticalSlotOf(referenceHash []byte) int {
	checkHash(referenceHash)
	return 0
}

// Distance is the forward ring distance, see the package function Distance
func (h Horizontal) Distance(from, to Address) Address {
	return Distance(from, to)
}

// HashDistance is the forward ring distance between the positions of two hashes
func (h Horizontal) HashDistance(from, to []byte) Address {
	return Distance(h.Position(from), h.Position(to))
}
