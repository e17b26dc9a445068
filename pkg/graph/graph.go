// Package graph holds the router topology: a fixed set of routers numbered
// 1..N joined by undirected, weighted links.
//
// The adjacency lists behave as a multigraph. Parallel links between the same
// pair of routers are kept as distinct entries and a link from a router to
// itself is stored as-is; neither is rejected here. Bounds and cost checks
// belong to the caller that builds the link list (see pkg/topology).
package graph

import (
	"fmt"
	"math"
)

// RouterID identifies a router. Valid ids are 1..N.
type RouterID int

// NoRouter is the "no id" sentinel: no predecessor, no next hop, no failed
// router. It is never a valid router id.
const NoRouter RouterID = 0

// Valid reports whether r is a usable id in a network of n routers.
func (r RouterID) Valid(n int) bool {
	return r >= 1 && int(r) <= n
}

func (r RouterID) String() string {
	if r == NoRouter {
		return "-"
	}
	return fmt.Sprintf("%d", int(r))
}

// MaxLinkCost is the largest link cost accepted in a network of n routers.
// A simple path has fewer than n links, so any path cost stays below
// math.MaxInt64.
func MaxLinkCost(n int) int64 {
	if n <= 1 {
		return math.MaxInt64
	}
	return math.MaxInt64 / int64(n)
}

// Link is an undirected weighted edge between routers A and B.
type Link struct {
	A    RouterID `json:"from" yaml:"from"`
	B    RouterID `json:"to" yaml:"to"`
	Cost int64    `json:"cost" yaml:"cost"`
}

// Touches reports whether r is one of the link's endpoints.
func (l Link) Touches(r RouterID) bool {
	return l.A == r || l.B == r
}

// Neighbor is one adjacency entry: the router on the far side and the cost
// of getting there.
type Neighbor struct {
	ID   RouterID `json:"neighbor"`
	Cost int64    `json:"cost"`
}

// Graph owns the adjacency lists. It is sized once by New and never resized.
type Graph struct {
	n   int
	adj [][]Neighbor // index 0 unused
}

// New creates a graph of n routers with no links. A negative n is treated
// as zero.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{
		n:   n,
		adj: make([][]Neighbor, n+1),
	}
}

// Build creates a fresh graph of n routers and inserts every link in order.
func Build(n int, links []Link) *Graph {
	g := New(n)
	for _, l := range links {
		g.AddEdge(l.A, l.B, l.Cost)
	}
	return g
}

// Size returns the router count N.
func (g *Graph) Size() int {
	return g.n
}

// Contains reports whether r is a router of this graph.
func (g *Graph) Contains(r RouterID) bool {
	return r.Valid(g.n)
}

// AddEdge appends (b, cost) to a's list and (a, cost) to b's list.
// Endpoints outside [1, N] are ignored.
func (g *Graph) AddEdge(a, b RouterID, cost int64) {
	if !g.Contains(a) || !g.Contains(b) {
		return
	}
	g.adj[a] = append(g.adj[a], Neighbor{ID: b, Cost: cost})
	g.adj[b] = append(g.adj[b], Neighbor{ID: a, Cost: cost})
}

// RemoveConnections isolates r: its own list is cleared and every entry that
// targets r is dropped from the other lists. Calling it again is harmless.
// NoRouter and ids outside [1, N] are a no-op.
func (g *Graph) RemoveConnections(r RouterID) {
	if !g.Contains(r) {
		return
	}
	g.adj[r] = nil
	for id := 1; id <= g.n; id++ {
		g.adj[id] = dropTarget(g.adj[id], r)
	}
}

// dropTarget filters in place; the backing array is owned by the graph.
func dropTarget(list []Neighbor, r RouterID) []Neighbor {
	kept := list[:0]
	for _, nb := range list {
		if nb.ID != r {
			kept = append(kept, nb)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// Neighbors returns a copy of r's adjacency list in insertion order.
func (g *Graph) Neighbors(r RouterID) []Neighbor {
	if !g.Contains(r) || len(g.adj[r]) == 0 {
		return nil
	}
	out := make([]Neighbor, len(g.adj[r]))
	copy(out, g.adj[r])
	return out
}

// Isolated reports whether r has no adjacency entries.
func (g *Graph) Isolated(r RouterID) bool {
	return !g.Contains(r) || len(g.adj[r]) == 0
}

// EachNeighbor calls fn for every adjacency entry of r without copying.
// fn must not modify the graph.
func (g *Graph) EachNeighbor(r RouterID, fn func(Neighbor)) {
	if !g.Contains(r) {
		return
	}
	for _, nb := range g.adj[r] {
		fn(nb)
	}
}

// EdgeCost returns the cheapest cost among the entries from a to b.
func (g *Graph) EdgeCost(a, b RouterID) (int64, bool) {
	if !g.Contains(a) {
		return 0, false
	}
	var best int64
	found := false
	for _, nb := range g.adj[a] {
		if nb.ID == b && (!found || nb.Cost < best) {
			best = nb.Cost
			found = true
		}
	}
	return best, found
}
