package cborcanon

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dhtParams struct {
	Exponent int    `cbor:"e"`
	Width    int    `cbor:"w"`
	Alphabet string `cbor:"a"`
}

func TestCanonicalEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"map_sorted", map[string]interface{}{"b": 2, "a": 1}, "a2616101616202"},
		{"array_order_kept", []interface{}{3, 1, 2}, "83030102"},
		{"empty_map", map[string]interface{}{}, "a0"},
		{"struct_keys_sorted", dhtParams{Exponent: 4, Width: 12, Alphabet: "enhanced"}, "a361616865" + "6e68616e636564" + "616504" + "6177" + "0c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hex.EncodeToString(encoded))
			assert.True(t, IsCanonical(encoded))
		})
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		canonical bool
	}{
		{"canonical_map", "a2616101616202", true},
		{"unsorted_map", "a2616202616101", false},
		{"duplicate_key", "a2616101616102", false},
		{"indefinite_array", "9f0102ff", false},
		{"garbage", "ff", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := hex.DecodeString(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, IsCanonical(data))
		})
	}
}

func TestUnmarshalRoundTrip(t *testing.T) {
	in := dhtParams{Exponent: 3, Width: 12, Alphabet: "standard"}
	data, err := Marshal(in)
	require.NoError(t, err)

	var out dhtParams
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestSum256Deterministic(t *testing.T) {
	a, err := Sum256(map[string]interface{}{"e": 4, "w": 12})
	require.NoError(t, err)
	b, err := Sum256(map[string]interface{}{"w": 12, "e": 4})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Sum256(map[string]interface{}{"e": 5, "w": 12})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = Sum256(make(chan int))
	assert.Error(t, err)
}
