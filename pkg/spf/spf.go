package spf

import (
	"container/heap"
	"math"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
)

// DistanceTable maps router id to distance from one source. Index 0 is unused.
type DistanceTable []Distance

// At returns the distance to r, or Unreachable for ids outside the table.
func (t DistanceTable) At(r graph.RouterID) Distance {
	if r < 1 || int(r) >= len(t) {
		return Unreachable
	}
	return t[r]
}

// PredecessorTable maps router id to the router before it on the shortest
// path from the source. NoRouter marks the source and unreached routers.
// Index 0 is unused.
type PredecessorTable []graph.RouterID

// At returns the predecessor of r, or NoRouter for ids outside the table.
func (t PredecessorTable) At(r graph.RouterID) graph.RouterID {
	if r < 1 || int(r) >= len(t) {
		return graph.NoRouter
	}
	return t[r]
}

// Tree is the output of one single-source run.
type Tree struct {
	Source       graph.RouterID
	Distances    DistanceTable
	Predecessors PredecessorTable
}

// Run computes shortest distances and predecessors from source over g.
// Edges into or out of excluded are never relaxed; pass graph.NoRouter to
// exclude nothing. A source outside [1, N] yields tables in which every
// router is unreachable.
//
// Negative link costs are outside the engine's domain and are skipped, as is
// any link whose cost would overflow the running distance.
func Run(g *graph.Graph, source, excluded graph.RouterID) (DistanceTable, PredecessorTable) {
	n := g.Size()
	dist := make(DistanceTable, n+1)
	pred := make(PredecessorTable, n+1)
	if !g.Contains(source) {
		return dist, pred
	}

	dist[source] = Finite(0)
	wl := worklist{{router: source, cost: 0}}
	heap.Init(&wl)

	for wl.Len() > 0 {
		e := heap.Pop(&wl).(entry)
		u := e.router
		if best, _ := dist[u].Cost(); e.cost > best {
			continue // stale
		}
		if u == excluded {
			continue
		}
		g.EachNeighbor(u, func(nb graph.Neighbor) {
			if nb.ID == excluded || nb.Cost < 0 || nb.Cost > math.MaxInt64-e.cost {
				return
			}
			cost := e.cost + nb.Cost
			if Finite(cost).Less(dist[nb.ID]) {
				dist[nb.ID] = Finite(cost)
				pred[nb.ID] = u
				heap.Push(&wl, entry{router: nb.ID, cost: cost})
			}
		})
	}

	return dist, pred
}

// RunTree is Run packaged as a Tree.
func RunTree(g *graph.Graph, source, excluded graph.RouterID) *Tree {
	dist, pred := Run(g, source, excluded)
	return &Tree{Source: source, Distances: dist, Predecessors: pred}
}

// RunAll performs one independent run per router and returns the trees
// indexed by source id. Index 0 and the excluded router's slot are nil.
func RunAll(g *graph.Graph, excluded graph.RouterID) []*Tree {
	trees := make([]*Tree, g.Size()+1)
	for id := 1; id <= g.Size(); id++ {
		src := graph.RouterID(id)
		if src == excluded {
			continue
		}
		trees[id] = RunTree(g, src, excluded)
	}
	return trees
}
