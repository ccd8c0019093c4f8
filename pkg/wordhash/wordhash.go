// Package wordhash derives term and reference hashes in the form the DHT expects.
//
// A hash is the BLAKE3-256 digest of the normalised input, written with the network's
// alphabet (enhanced unless stated otherwise) and cut to constants.HashLength symbols.
package wordhash

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
	"lukechampine.com/blake3"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

// NormalizeTerm applies NFKC and lower-cases the term
func NormalizeTerm(word string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(word)))
}

// Term returns the hash of a word
func Term(word string) []byte {
	return TermCodec(word, cardinal.Enhanced)
}

// TermCodec is like Term but writes the symbols of codec
func TermCodec(word string, codec *cardinal.Codec) []byte {
	return digest(NormalizeTerm(word), codec)
}

// Reference returns the hash of a document URL.
// Scheme and host are lower-cased, the rest is kept as given (NFC).
func Reference(rawURL string) []byte {
	return ReferenceCodec(rawURL, cardinal.Enhanced)
}

// ReferenceCodec is like Reference but writes the symbols of codec
func ReferenceCodec(rawURL string, codec *cardinal.Codec) []byte {
	return digest(NormalizeURL(rawURL), codec)
}

// NormalizeURL lower-cases scheme and host and drops the fragment.
// Unparseable input is only NFC-normalised.
func NormalizeURL(rawURL string) string {
	s := norm.NFC.String(strings.TrimSpace(rawURL))
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// Random returns a random hash-shaped identifier read from r; nil selects crypto/rand
func Random(r io.Reader) ([]byte, error) {
	return RandomCodec(r, cardinal.Enhanced)
}

// RandomCodec is like Random but writes the symbols of codec
func RandomCodec(r io.Reader, codec *cardinal.Codec) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	// 9 bytes encode to exactly 12 symbols
	buf := make([]byte, constants.HashLength*constants.SymbolBits/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read random hash: %w", err)
	}
	return []byte(codec.EncodeToString(buf)), nil
}

func digest(s string, codec *cardinal.Codec) []byte {
	sum := blake3.Sum256([]byte(s))
	return []byte(codec.EncodeToString(sum[:])[:constants.HashLength])
}
