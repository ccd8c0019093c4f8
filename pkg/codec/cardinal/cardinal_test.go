package cardinal

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

var cardinalVectors = []struct {
	name    string
	hash    string
	address uint64
	inverse string
}{
	{"term", "hHJBztzcFn76", 4771881458537990975, "hHJBztzcFn__"},
	{"reference", "M8hgtrHG6g12", 1865669314529686791, "M8hgtrHG6g__"},
	{"lowest", "AAAAAAAAAAAA", 7, "AAAAAAAAAA__"},
	{"highest", "____________", MaxCardinal, "____________"},
}

func TestToAddressVectors(t *testing.T) {
	for _, tv := range cardinalVectors {
		t.Run(tv.name, func(t *testing.T) {
			got := Enhanced.ToAddress([]byte(tv.hash))
			assert.Equal(t, tv.address, got)
			assert.Equal(t, tv.inverse, string(Enhanced.FromAddress(got)))
		})
	}
}

func TestToAddressIgnoresTrailingSymbols(t *testing.T) {
	a := Enhanced.ToAddress([]byte("hHJBztzcFnAA"))
	b := Enhanced.ToAddress([]byte("hHJBztzcFn__"))
	assert.Equal(t, a, b)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		h := randomHash(r, Enhanced)
		a := Enhanced.ToAddress(h)
		require.LessOrEqual(t, a, MaxCardinal)
		require.Equal(t, uint64(7), a&7, "low bits of %s", h)
		require.Equal(t, a, Enhanced.ToAddress(Enhanced.FromAddress(a)), "hash %s", h)
	}
}

func TestFromAddressSetsLowBits(t *testing.T) {
	// positions without the constant low bits map to the position with them set
	assert.Equal(t, uint64(15), Enhanced.ToAddress(Enhanced.FromAddress(8)))
	assert.Equal(t, uint64(7), Enhanced.ToAddress(Enhanced.FromAddress(0)))
}

func TestFromAddressWellformed(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		h := Standard.FromAddress(uint64(r.Int63()))
		require.Len(t, h, constants.HashLength)
		require.True(t, Standard.Wellformed(h))
	}
}

func TestShortHashPanics(t *testing.T) {
	err := recoverError(func() { Enhanced.ToAddress([]byte("hHJBztzcFn")) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHashLength))
}

func TestMalformedHashPanics(t *testing.T) {
	err := recoverError(func() { Enhanced.ToAddress([]byte("hHJB+tzcFn76")) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedHash))

	// the standard alphabet accepts '+'
	assert.NotPanics(t, func() { Standard.ToAddress([]byte("hHJB+tzcFn76")) })
}

func TestFromAddressRangePanics(t *testing.T) {
	err := recoverError(func() { Enhanced.FromAddress(MaxCardinal + 1) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAddressRange))
}

func TestWellformed(t *testing.T) {
	tests := []struct {
		name  string
		codec *Codec
		hash  string
		want  bool
	}{
		{"enhanced_ok", Enhanced, "hHJBztzcFn-_", true},
		{"enhanced_plus", Enhanced, "hHJBztzcFn+/", false},
		{"standard_ok", Standard, "hHJBztzcFn+/", true},
		{"standard_dash", Standard, "hHJBztzcFn-_", false},
		{"non_ascii", Enhanced, "hHJBztzcFn7\xc3", false},
		{"empty", Enhanced, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.codec.Wellformed([]byte(tt.hash)))
		})
	}
}

func TestEncodeUint(t *testing.T) {
	assert.Equal(t, "AAAB", string(Enhanced.EncodeUint(1, 4)))
	assert.Equal(t, "____", string(Enhanced.EncodeUint(1<<24-1, 4)))

	assert.Equal(t, "hHJBztzcFn", string(Enhanced.EncodeUint(uint64(4771881458537990975)>>3, 10)))
	// bits above 6*n are dropped
	assert.Equal(t, "AB", string(Enhanced.EncodeUint(1<<12|1, 2)))
}

func TestEncodeToStringMatchesAlphabet(t *testing.T) {
	s := Enhanced.EncodeToString([]byte{0xfb, 0xff})
	assert.Equal(t, "-_8", s)

	b, err := Enhanced.DecodeString(s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff}, b)

	_, err = Enhanced.DecodeString("+/8")
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	c, err := ByName("enhanced")
	require.NoError(t, err)
	assert.Same(t, Enhanced, c)

	c, err = ByName("")
	require.NoError(t, err)
	assert.Same(t, Enhanced, c)

	c, err = ByName("standard")
	require.NoError(t, err)
	assert.Same(t, Standard, c)
	assert.Equal(t, "standard", c.Name())

	_, err = ByName("base32")
	assert.Error(t, err)
}

func TestNewRejectsBadAlphabets(t *testing.T) {
	assert.Panics(t, func() { New("ABC") })
	assert.Panics(t, func() { New(constants.AlphabetEnhanced[:63] + "A") })
	assert.Empty(t, New(constants.AlphabetEnhanced[1:]+"!").Name())
}

func randomHash(r *rand.Rand, c *Codec) []byte {
	h := make([]byte, constants.HashLength)
	for i := range h {
		h[i] = c.Alphabet()[r.Intn(64)]
	}
	return h
}

func recoverError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}
