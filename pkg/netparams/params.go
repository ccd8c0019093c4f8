// Package netparams loads the DHT parameters of a network and checks that two peers agree
// on them. A peer that computes positions with a different partition exponent, hash width
// or alphabet silently misses index entries, so a join handshake compares Fingerprint
// values and refuses peers for which Compatible fails.
package netparams

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cborcanon"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
	"github.com/yacy/yacy-search-server-sub051/pkg/partition"
)

// Params are the addressing parameters of one network
type Params struct {
	Network           string
	PartitionExponent int
	HashLength        int
	Alphabet          string
}

// fingerprintFields is the part of Params every peer must agree on
type fingerprintFields struct {
	PartitionExponent int    `cbor:"e"`
	HashLength        int    `cbor:"w"`
	Alphabet          string `cbor:"a"`
}

type fileConfig struct {
	Network struct {
		Name string `yaml:"name"`
		DHT  struct {
			PartitionExponent *int   `yaml:"partition_exponent"`
			HashLength        *int   `yaml:"hash_length"`
			Alphabet          string `yaml:"alphabet"`
		} `yaml:"dht"`
	} `yaml:"network"`
}

// Default returns the parameters of the public network
func Default() Params {
	return Params{
		Network:           constants.DefaultNetwork,
		PartitionExponent: constants.DefaultPartitionExponent,
		HashLength:        constants.HashLength,
		Alphabet:          constants.AlphabetNameEnhanced,
	}
}

// Parse reads YAML parameters; missing keys keep their defaults.
// Unknown keys are rejected so a misspelt exponent does not fall back to 0.
func Parse(data []byte) (Params, error) {
	p := Default()

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("failed to parse network parameters: %w", err)
	}

	if fc.Network.Name != "" {
		p.Network = fc.Network.Name
	}
	if fc.Network.DHT.PartitionExponent != nil {
		p.PartitionExponent = *fc.Network.DHT.PartitionExponent
	}
	if fc.Network.DHT.HashLength != nil {
		p.HashLength = *fc.Network.DHT.HashLength
	}
	if fc.Network.DHT.Alphabet != "" {
		p.Alphabet = fc.Network.DHT.Alphabet
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Load reads parameters from a YAML file
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read network parameters: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the parameters can drive a partition scheme
func (p Params) Validate() error {
	if p.PartitionExponent < 0 || p.PartitionExponent > constants.MaxPartitionExponent {
		return errInvalid("partition exponent %d not in [0, %d]", p.PartitionExponent, constants.MaxPartitionExponent)
	}
	if p.HashLength != constants.HashLength {
		return errInvalid("hash length %d not supported, want %d", p.HashLength, constants.HashLength)
	}
	if _, err := cardinal.ByName(p.Alphabet); err != nil {
		return errInvalid("%v", err)
	}
	return nil
}

// Codec returns the codec for the configured alphabet
func (p Params) Codec() (*cardinal.Codec, error) {
	c, err := cardinal.ByName(p.Alphabet)
	if err != nil {
		return nil, errInvalid("%v", err)
	}
	return c, nil
}

// Scheme builds the partition scheme described by the parameters
func (p Params) Scheme() (partition.Scheme, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, err := p.Codec()
	if err != nil {
		return nil, err
	}
	return partition.NewScheme(p.PartitionExponent, c)
}

// Distribution builds the distribution described by the parameters
func (p Params) Distribution() (*partition.Distribution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, err := p.Codec()
	if err != nil {
		return nil, err
	}
	return partition.NewDistribution(p.PartitionExponent, c)
}

// Fingerprint returns a hex digest of the fields every peer must agree on.
// The network name is not part of it.
func (p Params) Fingerprint() (string, error) {
	sum, err := cborcanon.Sum256(fingerprintFields{
		PartitionExponent: p.PartitionExponent,
		HashLength:        p.HashLength,
		Alphabet:          canonicalAlphabet(p.Alphabet),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sum[:]), nil
}

// Compatible returns a mismatch *Error naming the first field on which remote disagrees
func (p Params) Compatible(remote Params) error {
	if p.PartitionExponent != remote.PartitionExponent {
		return NewError(constants.ErrorPartitionMismatch,
			fmt.Sprintf("local partition exponent %d, remote %d", p.PartitionExponent, remote.PartitionExponent))
	}
	if p.HashLength != remote.HashLength {
		return NewError(constants.ErrorHashLengthMismatch,
			fmt.Sprintf("local hash length %d, remote %d", p.HashLength, remote.HashLength))
	}
	if canonicalAlphabet(p.Alphabet) != canonicalAlphabet(remote.Alphabet) {
		return NewError(constants.ErrorAlphabetMismatch,
			fmt.Sprintf("local alphabet %q, remote %q", p.Alphabet, remote.Alphabet))
	}
	return nil
}

// Encode returns the canonical CBOR form of the fields every peer must agree on,
// as sent in a join handshake
func (p Params) Encode() ([]byte, error) {
	return cborcanon.Marshal(fingerprintFields{
		PartitionExponent: p.PartitionExponent,
		HashLength:        p.HashLength,
		Alphabet:          canonicalAlphabet(p.Alphabet),
	})
}

// Decode parses the output of Encode; the network name is left empty.
// Encodings that are not canonical are rejected, they would not reproduce the sender's fingerprint.
func Decode(data []byte) (Params, error) {
	if !cborcanon.IsCanonical(data) {
		return Params{}, errInvalid("network parameters are not canonical CBOR")
	}
	var f fingerprintFields
	if err := cborcanon.Unmarshal(data, &f); err != nil {
		return Params{}, fmt.Errorf("failed to decode network parameters: %w", err)
	}
	return Params{
		PartitionExponent: f.PartitionExponent,
		HashLength:        f.HashLength,
		Alphabet:          f.Alphabet,
	}, nil
}

func canonicalAlphabet(name string) string {
	if name == "" {
		return constants.AlphabetNameEnhanced
	}
	return name
}
