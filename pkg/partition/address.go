package partition

import (
	"strconv"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
)

// Address is a position on the DHT ring [0, 2^63). The top bit is always zero.
type Address uint64

// MaxAddress is the last position on the ring
const MaxAddress = Address(cardinal.MaxCardinal)

// RingSize is the number of positions on the ring, 2^63
const RingSize = uint64(1) << 63

// Valid reports whether a lies on the ring
func (a Address) Valid() bool {
	return a <= MaxAddress
}

// String returns the decimal form of the address
func (a Address) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// Hash returns a hash-shaped representative of the address
func (a Address) Hash(c *cardinal.Codec) []byte {
	return c.FromAddress(uint64(a))
}

// Normalized maps the address to [0, 1], e.g. for drawing the ring
func (a Address) Normalized() float64 {
	return float64(a) / float64(MaxAddress)
}

// Add walks d positions forward, wrapping around the ring
func (a Address) Add(d uint64) Address {
	checkAddress(a)
	// 2^63 divides 2^64, so the overflow of the uint64 sum does not disturb the modulus
	return Address((uint64(a) + d) & uint64(MaxAddress))
}

// Distance returns how far one must walk forward from one address to reach another.
// The result is in [0, 2^63); Distance(a, b) + Distance(b, a) == 2^63 for a != b.
func Distance(from, to Address) Address {
	checkAddress(from)
	checkAddress(to)
	if to >= from {
		return to - from
	}
	return (MaxAddress - from) + to + 1
}
