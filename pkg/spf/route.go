package spf

import (
	"math"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
)

// NextHop returns the first router on the shortest path from source toward
// destination. It walks predecessor pointers back from destination until
// the predecessor is source. The result is NoRouter when destination equals
// source, when destination was not reached, or when the chain ends without
// meeting source.
func NextHop(pred PredecessorTable, source, destination graph.RouterID) graph.RouterID {
	if destination == source {
		return graph.NoRouter
	}
	cur := destination
	for steps := 0; steps < len(pred); steps++ {
		p := pred.At(cur)
		if p == source {
			return cur
		}
		if p == graph.NoRouter {
			return graph.NoRouter
		}
		cur = p
	}
	return graph.NoRouter
}

// ConstructPath returns the routers on the shortest path from source to
// destination, both included. It collects ids backwards until a router with
// no predecessor and reverses them; the path is returned only if it starts
// at source, otherwise nil. A path from a router to itself is [source].
func ConstructPath(pred PredecessorTable, source, destination graph.RouterID) []graph.RouterID {
	if destination < 1 || int(destination) >= len(pred) {
		return nil
	}

	var path []graph.RouterID
	for at := destination; at != graph.NoRouter; at = pred.At(at) {
		if len(path) >= len(pred) {
			return nil // cycle in a malformed table
		}
		path = append(path, at)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	if path[0] != source {
		return nil
	}
	return path
}

// PathCost sums the cheapest link between each consecutive pair of routers
// on path. It reports false if some pair is not adjacent in g or the sum
// overflows.
func PathCost(g *graph.Graph, path []graph.RouterID) (int64, bool) {
	if len(path) == 0 {
		return 0, false
	}
	var total int64
	for i := 1; i < len(path); i++ {
		c, ok := g.EdgeCost(path[i-1], path[i])
		if !ok || c > math.MaxInt64-total {
			return 0, false
		}
		total += c
	}
	return total, true
}
