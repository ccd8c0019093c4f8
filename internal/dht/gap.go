package dht

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/yacy/yacy-search-server-sub051/pkg/partition"
	"github.com/yacy/yacy-search-server-sub051/pkg/wordhash"
)

// prefixSymbols is how many symbols of a gap position a new peer hash keeps.
// The remaining symbols stay random.
const prefixSymbols = 2

// maxHashAttempts bounds the search for an unused peer hash
const maxHashAttempts = 100

// Gap is the stretch of ring between two neighbouring peers
type Gap struct {
	From *Peer
	To   *Peer
	Size partition.Address
}

// Gaps returns the gaps between neighbouring peers, largest first.
// A single peer has one gap spanning the whole ring.
func (r *Ring) Gaps() []Gap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.peers)
	switch n {
	case 0:
		return nil
	case 1:
		p := r.peers[0].Copy()
		return []Gap{{From: p, To: p, Size: partition.MaxAddress}}
	}

	gaps := make([]Gap, n)
	for i, from := range r.peers {
		to := r.peers[(i+1)%n]
		gaps[i] = Gap{
			From: from.Copy(),
			To:   to.Copy(),
			Size: partition.Distance(from.position, to.position),
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].Size > gaps[j].Size })
	return gaps
}

// BestGap returns a hash for a new peer placed inside one of the largest gaps.
// The largest gap is taken with probability 1/2, the next one with 1/4 and so on. Inside
// the gap the position lies between 1/8 and 7/8 of its width. rng must not be nil.
func (r *Ring) BestGap(rng *rand.Rand) ([]byte, error) {
	random, err := wordhash.RandomCodec(rng, r.codec)
	if err != nil {
		return nil, err
	}
	gaps := r.Gaps()
	if len(gaps) == 0 {
		return random, nil
	}

	gap := gaps[len(gaps)-1]
	for _, g := range gaps {
		if rng.Intn(2) == 0 {
			gap = g
			break
		}
	}

	gap8 := uint64(gap.Size) >> 3
	offset := gap8
	if gap8 > 0 {
		offset += uint64(rng.Int63n(int64(6 * gap8)))
	}
	pos := gap.From.Position().Add(offset)

	hash := make([]byte, len(random))
	copy(hash, random)
	copy(hash[:prefixSymbols], pos.Hash(r.codec)[:prefixSymbols])

	for attempt := 0; r.Has(string(hash)); attempt++ {
		if attempt >= maxHashAttempts {
			return nil, fmt.Errorf("no unused peer hash after %d attempts", maxHashAttempts)
		}
		if hash, err = wordhash.RandomCodec(rng, r.codec); err != nil {
			return nil, err
		}
	}
	return hash, nil
}
