// Package dispatch plans where the references of a term are sent and which peers a search
// for a term must ask.
package dispatch

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yacy/yacy-search-server-sub051/internal/dht"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
	"github.com/yacy/yacy-search-server-sub051/pkg/partition"
)

// Batch is the part of a term's references that goes to one vertical position
type Batch struct {
	Slot       int
	Position   partition.Address
	References [][]byte
	Peers      []*dht.Peer
}

// Dispatcher combines a partition scheme with a snapshot of the peer ring
type Dispatcher struct {
	scheme        partition.Scheme
	ring          *dht.Ring
	redundancy    int
	maxRedundancy int
	logger        *zap.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Config configures a Dispatcher
type Config struct {
	Scheme     partition.Scheme
	Ring       *dht.Ring
	Redundancy int         // peers per vertical position, defaults to constants.DefaultRedundancy
	Logger     *zap.Logger // defaults to a no-op logger

	// MaxRedundancy is how many successors of a vertical position a search draws its
	// Redundancy targets from, so popular terms do not always hit the same peers.
	// Values below Redundancy disable the draw.
	MaxRedundancy int
	Rand          *rand.Rand // source for the draw, defaults to a time-seeded source
}

// New creates a dispatcher
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		scheme:     config.Scheme,
		ring:       config.Ring,
		redundancy:    config.Redundancy,
		maxRedundancy: config.MaxRedundancy,
		logger:        config.Logger,
		rng:           config.Rand,
	}
	if d.scheme == nil {
		d.scheme = partition.Horizontal{}
	}
	if d.ring == nil {
		d.ring = dht.NewRing(d.scheme.Codec())
	}
	if d.redundancy <= 0 {
		d.redundancy = constants.DefaultRedundancy
	}
	if d.maxRedundancy < d.redundancy {
		d.maxRedundancy = d.redundancy
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return d
}

// Split sorts references into one bucket per vertical slot. Nil references are skipped.
func Split(scheme partition.Scheme, references [][]byte) [][][]byte {
	buckets := make([][][]byte, scheme.PartitionCount())
	for _, ref := range references {
		if ref == nil {
			continue
		}
		slot := scheme.VerticalSlotOf(ref)
		buckets[slot] = append(buckets[slot], ref)
	}
	return buckets
}

// Targets returns, for every vertical slot of the term, the peers responsible for it
func (d *Dispatcher) Targets(termHash []byte) [][]*dht.Peer {
	targets := make([][]*dht.Peer, d.scheme.PartitionCount())
	for slot := range targets {
		pos := d.scheme.PositionForVerticalSlot(termHash, slot)
		targets[slot] = d.ring.Successors(pos, d.redundancy)
	}
	return targets
}

// Plan splits the references of a term and attaches the target peers of each slot.
// Slots without references are left out.
func (d *Dispatcher) Plan(termHash []byte, references [][]byte) []Batch {
	buckets := Split(d.scheme, references)
	batches := make([]Batch, 0, len(buckets))
	unrouted := 0
	for slot, refs := range buckets {
		if len(refs) == 0 {
			continue
		}
		pos := d.scheme.PositionForVerticalSlot(termHash, slot)
		peers := d.ring.Successors(pos, d.redundancy)
		if len(peers) == 0 {
			unrouted += len(refs)
		}
		batches = append(batches, Batch{
			Slot:       slot,
			Position:   pos,
			References: refs,
			Peers:      peers,
		})
	}

	d.logger.Debug("planned index distribution",
		zap.ByteString("term", termHash),
		zap.Int("references", len(references)),
		zap.Int("batches", len(batches)),
		zap.Int("partitions", d.scheme.PartitionCount()))
	if unrouted > 0 {
		d.logger.Warn("no peer accepts index entries for some positions",
			zap.ByteString("term", termHash),
			zap.Int("references", unrouted))
	}
	return batches
}

// SearchTargets returns the peers to ask for the terms: for every term every vertical
// position, without duplicates, in the order first reached. When MaxRedundancy exceeds
// Redundancy, the peers of a position are a random pick among its first MaxRedundancy
// successors.
func (d *Dispatcher) SearchTargets(termHashes [][]byte) []*dht.Peer {
	seen := make(map[string]bool)
	var result []*dht.Peer
	for _, term := range termHashes {
		for slot := 0; slot < d.scheme.PartitionCount(); slot++ {
			pos := d.scheme.PositionForVerticalSlot(term, slot)
			peers := d.pick(d.ring.Successors(pos, d.maxRedundancy))
			for _, p := range peers {
				if seen[p.Hash] {
					continue
				}
				seen[p.Hash] = true
				result = append(result, p)
			}
		}
	}
	d.logger.Debug("selected search targets",
		zap.Int("terms", len(termHashes)),
		zap.Int("peers", len(result)))
	return result
}

// pick draws redundancy peers from candidates, keeping them all when there are no more
func (d *Dispatcher) pick(candidates []*dht.Peer) []*dht.Peer {
	if len(candidates) <= d.redundancy {
		return candidates
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	picked := make([]*dht.Peer, 0, d.redundancy)
	for len(picked) < d.redundancy {
		i := d.rng.Intn(len(candidates))
		picked = append(picked, candidates[i])
		candidates = append(candidates[:i], candidates[i+1:]...)
	}
	return picked
}

// Scheme returns the partition scheme of the dispatcher
func (d *Dispatcher) Scheme() partition.Scheme {
	return d.scheme
}
