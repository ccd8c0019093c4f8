package partition

import (
	"errors"
	"fmt"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

// Contract violations are reported by panics carrying one of these errors (wrapped).
// A wrong address is never returned instead.
var (
	ErrHashLength        = cardinal.ErrHashLength
	ErrMalformedHash     = cardinal.ErrMalformedHash
	ErrAddressRange      = cardinal.ErrAddressRange
	ErrVerticalSlot      = errors.New("vertical slot out of range")
	ErrPartitionExponent = errors.New("partition exponent out of range")
)

func checkHash(h []byte) {
	if len(h) != constants.HashLength {
		panic(fmt.Errorf("%w: got %d symbols, want %d", ErrHashLength, len(h), constants.HashLength))
	}
}

func checkAddress(a Address) {
	if !a.Valid() {
		panic(fmt.Errorf("%w: %d", ErrAddressRange, uint64(a)))
	}
}
