// Package dht resolves ring positions to the peers responsible for them.
//
// A Ring is a snapshot of known peers ordered by their horizontal position. Responsibility
// for a position belongs to the first peer reached walking forward from it.
package dht

import (
	"errors"
	"fmt"
	"time"

	"github.com/yacy/yacy-search-server-sub051/pkg/codec/cardinal"
	"github.com/yacy/yacy-search-server-sub051/pkg/constants"
	"github.com/yacy/yacy-search-server-sub051/pkg/partition"
)

// ErrInvalidPeer is returned for peers whose hash cannot be placed on the ring
var ErrInvalidPeer = errors.New("invalid peer")

// Peer is a participant of the DHT, identified by a hash of the same shape as term hashes
type Peer struct {
	Hash         string    // hash-shaped peer identifier
	Name         string    // human-readable name
	Addrs        []string  // addresses the transport can dial
	AcceptsIndex bool      // false for peers that refuse remote index entries
	LastSeen     time.Time // last time we heard from this peer

	position partition.Address
}

// NewPeer creates a peer that accepts remote index entries
func NewPeer(hash, name string, addrs []string) *Peer {
	return &Peer{
		Hash:         hash,
		Name:         name,
		Addrs:        addrs,
		AcceptsIndex: true,
		LastSeen:     time.Now(),
	}
}

// Position returns the horizontal position of the peer; valid once added to a Ring
func (p *Peer) Position() partition.Address {
	return p.position
}

func (p *Peer) place(codec *cardinal.Codec) error {
	h := []byte(p.Hash)
	if len(h) != constants.HashLength {
		return fmt.Errorf("%w: hash %q has %d symbols, want %d", ErrInvalidPeer, p.Hash, len(h), constants.HashLength)
	}
	if !codec.Wellformed(h) {
		return fmt.Errorf("%w: hash %q is not well-formed", ErrInvalidPeer, p.Hash)
	}
	p.position = partition.NewHorizontal(codec).Position(h)
	return nil
}

// UpdateLastSeen updates the last seen timestamp
func (p *Peer) UpdateLastSeen() {
	p.LastSeen = time.Now()
}

// IsStale returns true if the peer hasn't been seen recently
func (p *Peer) IsStale(timeout time.Duration) bool {
	return time.Since(p.LastSeen) > timeout
}

// Copy creates a deep copy of the peer
func (p *Peer) Copy() *Peer {
	addrs := make([]string, len(p.Addrs))
	copy(addrs, p.Addrs)

	return &Peer{
		Hash:         p.Hash,
		Name:         p.Name,
		Addrs:        addrs,
		AcceptsIndex: p.AcceptsIndex,
		LastSeen:     p.LastSeen,
		position:     p.position,
	}
}

// String returns a string representation of the peer
func (p *Peer) String() string {
	return fmt.Sprintf("Peer{Hash: %s, Name: %s, Position: %s, Addrs: %v}",
		p.Hash, p.Name, p.position, p.Addrs)
}
