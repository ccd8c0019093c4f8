package netparams

import (
	"errors"
	"fmt"

	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

// Error is a configuration error with a numeric code that can be reported to a remote peer
type Error struct {
	Code   uint16 `cbor:"code"`
	Reason string `cbor:"reason"`
}

// NewError creates a new configuration error
func NewError(code uint16, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("dht parameter error %d (%s): %s", e.Code, ErrorCodeName(e.Code), e.Reason)
}

// IsMismatch reports whether the error describes a disagreement with a remote peer
func (e *Error) IsMismatch() bool {
	switch e.Code {
	case constants.ErrorPartitionMismatch, constants.ErrorHashLengthMismatch, constants.ErrorAlphabetMismatch:
		return true
	}
	return false
}

// ErrorCodeName returns the human-readable name for an error code
func ErrorCodeName(code uint16) string {
	switch code {
	case constants.ErrorInvalidParams:
		return "INVALID_PARAMS"
	case constants.ErrorPartitionMismatch:
		return "PARTITION_MISMATCH"
	case constants.ErrorHashLengthMismatch:
		return "HASH_LENGTH_MISMATCH"
	case constants.ErrorAlphabetMismatch:
		return "ALPHABET_MISMATCH"
	default:
		return fmt.Sprintf("UNKNOWN_%d", code)
	}
}

// IsMismatch reports whether err wraps a mismatch *Error
func IsMismatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.IsMismatch()
}

func errInvalid(format string, args ...interface{}) *Error {
	return NewError(constants.ErrorInvalidParams, fmt.Sprintf(format, args...))
}
