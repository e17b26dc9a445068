package spf

import "github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"

// entry is a (router, tentative cost) pair waiting in the worklist.
type entry struct {
	router graph.RouterID
	cost   int64
}

// worklist is a binary min-heap for container/heap, ordered by cost and then
// by router id so runs are deterministic.
type worklist []entry

func (w worklist) Len() int { return len(w) }

func (w worklist) Less(i, j int) bool {
	if w[i].cost != w[j].cost {
		return w[i].cost < w[j].cost
	}
	return w[i].router < w[j].router
}

func (w worklist) Swap(i, j int) { w[i], w[j] = w[j], w[i] }

func (w *worklist) Push(x any) { *w = append(*w, x.(entry)) }

func (w *worklist) Pop() any {
	old := *w
	n := len(old)
	e := old[n-1]
	*w = old[:n-1]
	return e
}
