// Package simulator drives the routing computation: it owns the current
// topology, applies the single-router failure policy and produces the
// link-state packets, routing tables and optimal path for one topology
// version at a time.
package simulator

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

// State is the simulation state of a snapshot.
type State int

const (
	// Normal: no failed router, full graph.
	Normal State = iota
	// RouterDown: one router isolated and excluded from every relaxation.
	RouterDown
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case RouterDown:
		return "router-down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TopologySnapshot is an immutable topology version: router count, the
// pristine link list and the failed router, if any.
type TopologySnapshot struct {
	routers int
	links   []graph.Link
	failed  graph.RouterID
}

// NewSnapshot validates a topology and returns it in the Normal state.
func NewSnapshot(routers int, links []graph.Link) (TopologySnapshot, error) {
	if err := ValidateTopology(routers, links); err != nil {
		return TopologySnapshot{}, err
	}
	owned := make([]graph.Link, len(links))
	copy(owned, links)
	return TopologySnapshot{routers: routers, links: owned}, nil
}

// ValidateTopology checks the router count and every link's endpoints and
// cost. Costs are bounded by graph.MaxLinkCost so no path cost can
// overflow. Self-loops and parallel links are accepted.
func ValidateTopology(routers int, links []graph.Link) error {
	if routers <= 0 {
		return util.NewInputError("router count", routers, "must be positive")
	}
	maxCost := graph.MaxLinkCost(routers)
	v := &util.ValidationBuilder{}
	for i, l := range links {
		v.Add(l.A.Valid(routers), fmt.Sprintf("link %d: start router %d outside [1, %d]", i+1, l.A, routers))
		v.Add(l.B.Valid(routers), fmt.Sprintf("link %d: end router %d outside [1, %d]", i+1, l.B, routers))
		v.Add(l.Cost > 0, fmt.Sprintf("link %d: cost %d must be positive", i+1, l.Cost))
		v.Add(l.Cost <= maxCost, fmt.Sprintf("link %d: cost %d exceeds %d", i+1, l.Cost, maxCost))
	}
	return v.Build()
}

// Routers returns N.
func (s TopologySnapshot) Routers() int { return s.routers }

// Links returns a copy of the pristine link list.
func (s TopologySnapshot) Links() []graph.Link {
	out := make([]graph.Link, len(s.links))
	copy(out, s.links)
	return out
}

// Failed returns the failed router, or graph.NoRouter.
func (s TopologySnapshot) Failed() graph.RouterID { return s.failed }

// State reports Normal or RouterDown.
func (s TopologySnapshot) State() State {
	if s.failed == graph.NoRouter {
		return Normal
	}
	return RouterDown
}

// Defined reports whether the snapshot holds a topology.
func (s TopologySnapshot) Defined() bool { return s.routers > 0 }

// WithFailure returns a copy with r as the failed router, replacing any
// earlier failure. r must be in [1, N].
func (s TopologySnapshot) WithFailure(r graph.RouterID) (TopologySnapshot, error) {
	if err := s.checkRouter("failed router", r); err != nil {
		return TopologySnapshot{}, err
	}
	s.failed = r
	return s, nil
}

// WithoutFailure returns a copy in the Normal state.
func (s TopologySnapshot) WithoutFailure() TopologySnapshot {
	s.failed = graph.NoRouter
	return s
}

func (s TopologySnapshot) checkRouter(field string, r graph.RouterID) error {
	if !r.Valid(s.routers) {
		return util.NewInputError(field, int(r), fmt.Sprintf("must be within [1, %d]", s.routers))
	}
	return nil
}

// Fingerprint identifies the topology version: equal snapshots share a
// fingerprint. It is the hex BLAKE2b-256 digest of N, the ordered links and
// the failed router.
func (s TopologySnapshot) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	put := func(v int64) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	put(int64(s.routers))
	put(int64(len(s.links)))
	for _, l := range s.links {
		put(int64(l.A))
		put(int64(l.B))
		put(l.Cost)
	}
	put(int64(s.failed))
	return hex.EncodeToString(h.Sum(nil))
}
