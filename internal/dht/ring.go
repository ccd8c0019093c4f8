package dht

import (
	"sort"
	"sync"
	"time"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/partition"
)

// Ring holds the known peers sorted by position
type Ring struct {
	mu     sync.RWMutex
	codec  *cardinal.Codec
	peers  []*Peer // sorted by position, then hash
	byHash map[string]*Peer
}

// NewRing creates an empty ring reading peer hashes with codec; nil selects cardinal.Enhanced
func NewRing(codec *cardinal.Codec) *Ring {
	if codec == nil {
		codec = cardinal.Enhanced
	}
	return &Ring{
		codec:  codec,
		byHash: make(map[string]*Peer),
	}
}

// Add inserts a peer or replaces the peer with the same hash
func (r *Ring) Add(peer *Peer) error {
	p := peer.Copy()
	if err := p.place(r.codec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byHash[p.Hash]; exists {
		r.removeLocked(p.Hash)
	}
	i := sort.Search(len(r.peers), func(i int) bool { return !r.peers[i].before(p) })
	r.peers = append(r.peers, nil)
	copy(r.peers[i+1:], r.peers[i:])
	r.peers[i] = p
	r.byHash[p.Hash] = p
	return nil
}

// Remove removes a peer from the ring
func (r *Ring) Remove(hash string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(hash)
}

func (r *Ring) removeLocked(hash string) bool {
	p, exists := r.byHash[hash]
	if !exists {
		return false
	}
	delete(r.byHash, hash)
	i := sort.Search(len(r.peers), func(i int) bool { return !r.peers[i].before(p) })
	r.peers = append(r.peers[:i], r.peers[i+1:]...)
	return true
}

// Get retrieves a peer by hash
func (r *Ring) Get(hash string) *Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, exists := r.byHash[hash]; exists {
		return p.Copy()
	}
	return nil
}

// Has reports whether a peer with the hash is known
func (r *Ring) Has(hash string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.byHash[hash]
	return exists
}

// Touch marks the peer with the hash as seen now. Peers returned by Get and All are copies,
// so their UpdateLastSeen does not reach the ring.
func (r *Ring) Touch(hash string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.byHash[hash]
	if !exists {
		return false
	}
	p.UpdateLastSeen()
	return true
}

// Size returns the number of peers in the ring
func (r *Ring) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}

// All returns all peers in ring order
func (r *Ring) All() []*Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Peer, len(r.peers))
	for i, p := range r.peers {
		result[i] = p.Copy()
	}
	return result
}

// Successors returns up to n peers accepting index entries, in the order they are reached
// walking forward from pos. The first one is responsible for pos.
func (r *Ring) Successors(pos partition.Address, n int) []*Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || len(r.peers) == 0 {
		return nil
	}
	start := sort.Search(len(r.peers), func(i int) bool { return r.peers[i].position >= pos })

	result := make([]*Peer, 0, n)
	for step := 0; step < len(r.peers) && len(result) < n; step++ {
		p := r.peers[(start+step)%len(r.peers)]
		if !p.AcceptsIndex {
			continue
		}
		result = append(result, p.Copy())
	}
	return result
}

// Responsible returns the peer responsible for pos, or nil for an empty ring
func (r *Ring) Responsible(pos partition.Address) *Peer {
	if s := r.Successors(pos, 1); len(s) > 0 {
		return s[0]
	}
	return nil
}

// RemoveStale removes peers not seen within timeout and returns how many were removed
func (r *Ring) RemoveStale(timeout time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.peers[:0]
	removed := 0
	for _, p := range r.peers {
		if p.IsStale(timeout) {
			delete(r.byHash, p.Hash)
			removed++
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(r.peers); i++ {
		r.peers[i] = nil
	}
	r.peers = kept
	return removed
}

func (p *Peer) before(other *Peer) bool {
	if p.position != other.position {
		return p.position < other.position
	}
	return p.Hash < other.Hash
}
