package partition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
)

func TestDistributionMatchesVertical(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for _, e := range []int{0, 1, 4, 7} {
		d, err := NewDistribution(e, nil)
		require.NoError(t, err)
		v := MustVertical(e)

		assert.Equal(t, v.PartitionCount(), d.VerticalPartitions())
		assert.Equal(t, v, d.Scheme())
		for i := 0; i < 200; i++ {
			term, ref := randomHash(r), randomHash(r)
			slot := d.VerticalSlot(ref)
			require.Equal(t, v.PositionForStorage(term, ref), d.DHTPosition(term, ref))
			require.Equal(t, v.AllPositions(term), d.VerticalDHTPositions(term))
			require.Equal(t, d.DHTPosition(term, ref), d.VerticalDHTPosition(term, slot))
			require.Equal(t, v.Position(term), d.HorizontalDHTPosition(term))
		}
	}
}

func TestDistributionPositionToHash(t *testing.T) {
	d, err := NewDistribution(3, cardinal.Enhanced)
	require.NoError(t, err)

	for slot := 0; slot < d.VerticalPartitions(); slot++ {
		pos := d.VerticalDHTPosition(termHash, slot)
		h := d.PositionToHash(pos)
		assert.Equal(t, pos, d.HorizontalDHTPosition(h), "slot %d", slot)
	}
}

func TestDistributionDistances(t *testing.T) {
	d, err := NewDistribution(2, nil)
	require.NoError(t, err)

	a := d.HorizontalDHTPosition(termHash)
	b := d.HorizontalDHTPosition(referenceHash)
	assert.Equal(t, Distance(a, b), d.HorizontalDHTDistance(a, b))
	assert.Equal(t, Distance(a, b), d.HorizontalHashDistance(termHash, referenceHash))
	assert.Equal(t, RingSize, uint64(d.HorizontalHashDistance(termHash, referenceHash))+uint64(d.HorizontalHashDistance(referenceHash, termHash)))
}

func TestNewDistributionRejectsExponent(t *testing.T) {
	_, err := NewDistribution(17, nil)
	assert.ErrorIs(t, err, ErrPartitionExponent)
}
