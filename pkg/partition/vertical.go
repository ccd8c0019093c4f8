package partition

import (
	"fmt"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

// Vertical spreads the references of one term over 2^E ring positions.
//
// The low 63-E bits of a storage position come from the term hash, the high E bits (below
// the unused sign bit) from the reference hash. The 2^E candidate positions of a term are
// therefore equally spaced, 2^(63-E) apart, and the horizontal spread of terms is kept.
type Vertical struct {
	horizontal Horizontal
	exponent   int
	shift      uint   // 63 - E
	mask       uint64 // low shift bits, taken from the term
}

// NewVertical returns a vertical scheme over the enhanced alphabet
func NewVertical(exponent int) (Vertical, error) {
	return NewVerticalCodec(exponent, nil)
}

// NewVerticalCodec returns a vertical scheme for 2^exponent partitions over codec
func NewVerticalCodec(exponent int, codec *cardinal.Codec) (Vertical, error) {
	if exponent < 0 || exponent > constants.MaxPartitionExponent {
		return Vertical{}, fmt.Errorf("%w: %d not in [0, %d]", ErrPartitionExponent, exponent, constants.MaxPartitionExponent)
	}
	v := Vertical{
		horizontal: NewHorizontal(codec),
		exponent:   exponent,
		shift:      uint(63 - exponent),
	}
	if exponent == 0 {
		v.mask = uint64(MaxAddress)
	} else {
		v.mask = uint64(1)<<v.shift - 1
	}
	return v, nil
}

// MustVertical is like NewVertical but panics on an invalid exponent
func MustVertical(exponent int) Vertical {
	v, err := NewVertical(exponent)
	if err != nil {
		panic(err)
	}
	return v
}

// Codec returns the codec used to read hashes
func (v Vertical) Codec() *cardinal.Codec {
	return v.horizontal.Codec()
}

// Exponent returns E
func (v Vertical) Exponent() int {
	return v.exponent
}

// PartitionCount returns 2^E
func (v Vertical) PartitionCount() int {
	return 1 << v.exponent
}

// PartitionSize is the distance between two neighbouring vertical positions, 2^(63-E)
func (v Vertical) PartitionSize() uint64 {
	return uint64(1) << v.shift
}

// Horizontal returns the underlying horizontal scheme
func (v Vertical) Horizontal() Horizontal {
	return v.horizontal
}

// Position returns the horizontal position of a hash
func (v Vertical) Position(hash []byte) Address {
	return v.horizontal.Position(hash)
}

// PositionForStorage returns the position a reference of a term must be stored at
func (v Vertical) PositionForStorage(termHash, referenceHash []byte) Address {
	if v.exponent == 0 {
		return v.horizontal.PositionForStorage(termHash, referenceHash)
	}
	term := uint64(v.horizontal.Position(termHash))
	ref := uint64(v.horizontal.Position(referenceHash))
	return Address(term&v.mask | ref&^v.mask&uint64(MaxAddress))
}

// PositionForVerticalSlot returns the position of slot in [0, 2^E) for a term
func (v Vertical) PositionForVerticalSlot(termHash []byte, slot int) Address {
	v.checkSlot(slot)
	if v.exponent == 0 {
		return v.horizontal.Position(termHash)
	}
	term := uint64(v.horizontal.Position(termHash))
	return Address(term&v.mask | uint64(slot)<<v.shift)
}

// AllPositions returns the 2^E candidate positions of a term in ascending order.
// Element i is the position of vertical slot i.
func (v Vertical) AllPositions(termHash []byte) []Address {
	if v.exponent == 0 {
		return []Address{v.horizontal.Position(termHash)}
	}
	size := v.PartitionSize()
	positions := make([]Address, v.PartitionCount())
	positions[0] = Address(uint64(v.horizontal.Position(termHash)) & (size - 1))
	for i := 1; i < len(positions); i++ {
		// the last sum is below 2^63 because positions[0] < size
		positions[i] = positions[i-1] + Address(size)
	}
	return positions
}

// VerticalSlotOf returns the slot in [0, 2^E) a reference is stored in
func (v Vertical) VerticalSlotOf(referenceHash []byte) int {
	if v.exponent == 0 {
		checkHash(referenceHash)
		return 0
	}
	ref := uint64(v.horizontal.Position(referenceHash))
	return int(ref>>v.shift) & (v.PartitionCount() - 1)
}

func (v Vertical) checkSlot(slot int) {
	if slot < 0 || slot >= v.PartitionCount() {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrVerticalSlot, slot, v.PartitionCount()))
	}
}
