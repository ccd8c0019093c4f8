// Package constants defines the network-wide constants of the DHT addressing scheme.
// Every peer of one network must agree on these values bit for bit.
package constants

// Hash Configuration
const (
	// HashLength is the width of term and reference hashes in symbols
	HashLength = 12

	// CardinalSymbols is the number of leading hash symbols that form a ring address.
	// 10 symbols of 6 bits fill 60 bits, the remaining 3 bits are set to 1.
	CardinalSymbols = 10

	// CardinalLowBits is the number of constant low bits appended to a cardinal
	CardinalLowBits = 3

	// SymbolBits is the number of bits carried by one alphabet symbol
	SymbolBits = 6
)

// Alphabets
const (
	// AlphabetEnhanced is the filename-safe alphabet used for all DHT hashes
	AlphabetEnhanced = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	// AlphabetStandard is the RFC 1521 alphabet
	AlphabetStandard = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	// Alphabet names as they appear in configuration files
	AlphabetNameEnhanced = "enhanced"
	AlphabetNameStandard = "standard"
)

// DHT Configuration
const (
	// DefaultPartitionExponent disables vertical partitioning (1 partition per term)
	DefaultPartitionExponent = 0

	// MaxPartitionExponent bounds the number of vertical partitions at 65536
	MaxPartitionExponent = 16

	// DefaultRedundancy is the number of peers asked per vertical position
	DefaultRedundancy = 3

	// DefaultNetwork is the name of the public network
	DefaultNetwork = "freeworld"
)

// Error Codes
const (
	ErrorInvalidParams      = 1
	ErrorPartitionMismatch  = 2
	ErrorHashLengthMismatch = 3
	ErrorAlphabetMismatch   = 4
)
