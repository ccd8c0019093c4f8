package partition

import (
	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
)

// Distribution offers the call shapes used by peer selection and index dispatch.
// Every method delegates to one Vertical.
type Distribution struct {
	scheme Vertical
}

// NewDistribution returns a distribution for 2^exponent vertical partitions
func NewDistribution(exponent int, codec *cardinal.Codec) (*Distribution, error) {
	v, err := NewVerticalCodec(exponent, codec)
	if err != nil {
		return nil, err
	}
	return &Distribution{scheme: v}, nil
}

// Scheme returns the vertical scheme behind the distribution
func (d *Distribution) Scheme() Vertical {
	return d.scheme
}

// VerticalPartitions returns 2^E
func (d *Distribution) VerticalPartitions() int {
	return d.scheme.PartitionCount()
}

// HorizontalDHTPosition returns the horizontal position of a hash
func (d *Distribution) HorizontalDHTPosition(hash []byte) Address {
	return d.scheme.Position(hash)
}

// HorizontalDHTDistance returns the forward distance between two positions
func (d *Distribution) HorizontalDHTDistance(from, to Address) Address {
	return Distance(from, to)
}

// HorizontalHashDistance returns the forward distance between the positions of two hashes
func (d *Distribution) HorizontalHashDistance(from, to []byte) Address {
	return d.scheme.horizontal.HashDistance(from, to)
}

// DHTPosition returns the storage position of a reference of a term
func (d *Distribution) DHTPosition(termHash, referenceHash []byte) Address {
	return d.scheme.PositionForStorage(termHash, referenceHash)
}

// VerticalDHTPosition returns the position of one vertical slot of a term
func (d *Distribution) VerticalDHTPosition(termHash []byte, slot int) Address {
	return d.scheme.PositionForVerticalSlot(termHash, slot)
}

// VerticalDHTPositions returns the positions of all vertical slots of a term
func (d *Distribution) VerticalDHTPositions(termHash []byte) []Address {
	return d.scheme.AllPositions(termHash)
}

// VerticalSlot returns the vertical slot of a reference
func (d *Distribution) VerticalSlot(referenceHash []byte) int {
	return d.scheme.VerticalSlotOf(referenceHash)
}

// PositionToHash returns a hash-shaped representative of a position
func (d *Distribution) PositionToHash(a Address) []byte {
	return a.Hash(d.scheme.Codec())
}
