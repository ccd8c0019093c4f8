package wordhash

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
)

func TestTermShape(t *testing.T) {
	for _, w := range []string{"yacy", "Zürich", "", "ﬁle", "distributed hash table"} {
		h := Term(w)
		require.Len(t, h, constants.HashLength, "word %q", w)
		require.True(t, cardinal.Enhanced.Wellformed(h), "word %q", w)
		assert.NotPanics(t, func() { cardinal.Enhanced.ToAddress(h) })
	}
}

func TestTermNormalisation(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"case", "YaCy", "yacy"},
		{"space", "  yacy\n", "yacy"},
		{"ligature", "ﬁle", "file"},
		{"decomposed", "Zürich", "zu\u0308rich"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Term(tt.a), Term(tt.b))
		})
	}
	assert.NotEqual(t, Term("yacy"), Term("yaci"))
}

func TestReference(t *testing.T) {
	a := Reference("HTTP://Example.ORG/Path?q=1#top")
	b := Reference("http://example.org/Path?q=1")
	assert.Equal(t, a, b)
	assert.NotEqual(t, b, Reference("http://example.org/path?q=1"))
	assert.Len(t, Reference("not a url"), constants.HashLength)
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://yacy.net/En/", NormalizeURL(" HTTPS://YaCy.NET/En/#x "))
	assert.Equal(t, "relative/path", NormalizeURL("relative/path"))
}

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	a, err := Random(r)
	require.NoError(t, err)
	b, err := Random(r)
	require.NoError(t, err)

	assert.Len(t, a, constants.HashLength)
	assert.True(t, cardinal.Enhanced.Wellformed(a))
	assert.False(t, bytes.Equal(a, b))

	c, err := Random(nil)
	require.NoError(t, err)
	assert.Len(t, c, constants.HashLength)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestRandomReaderError(t *testing.T) {
	_, err := Random(failingReader{})
	assert.Error(t, err)
}

func TestRandomCodec(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		h, err := RandomCodec(r, cardinal.Standard)
		require.NoError(t, err)
		require.True(t, cardinal.Standard.Wellformed(h))
	}
}

func TestCodecVariants(t *testing.T) {
	// the two alphabets differ only in their last two symbols
	toStandard := strings.NewReplacer("-", "+", "_", "/")
	for _, w := range []string{"alpha", "beta", "gamma", "foo", "yacy", "Zürich", "検索"} {
		enhanced := Term(w)
		standard := TermCodec(w, cardinal.Standard)
		require.True(t, cardinal.Standard.Wellformed(standard), "word %q", w)
		assert.Equal(t, toStandard.Replace(string(enhanced)), string(standard), "word %q", w)
		assert.Equal(t, enhanced, TermCodec(w, cardinal.Enhanced))
	}

	u := "http://example.org/Path?q=1"
	ref := ReferenceCodec(u, cardinal.Standard)
	require.True(t, cardinal.Standard.Wellformed(ref))
	assert.Equal(t, toStandard.Replace(string(Reference(u))), string(ref))
}
