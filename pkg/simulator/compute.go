package simulator

import (
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/spf"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

// Query selects the source/destination pair of the optimal path. A zero
// Query computes only the per-router tables.
type Query struct {
	Source      graph.RouterID
	Destination graph.RouterID
}

func (q Query) wantsPath() bool {
	return q.Source != graph.NoRouter || q.Destination != graph.NoRouter
}

// Compute rebuilds the graph for s, runs one shortest-path computation per
// surviving router and derives every packet, table and the queried path.
// The whole pass reads only s, so all tables describe the same topology.
func Compute(s TopologySnapshot, q Query) (*Result, error) {
	if !s.Defined() {
		return nil, util.ErrNoTopology
	}
	if q.wantsPath() {
		v := &util.ValidationBuilder{}
		if err := s.checkRouter("source", q.Source); err != nil {
			v.AddErrorf("%v", err)
		}
		if err := s.checkRouter("destination", q.Destination); err != nil {
			v.AddErrorf("%v", err)
		}
		if err := v.Build(); err != nil {
			return nil, err
		}
	}

	g, err := BuildGraph(s)
	if err != nil {
		return nil, err
	}

	fp := s.Fingerprint()
	log := util.WithTopology(fp)
	failed := s.Failed()
	trees := spf.RunAll(g, failed)

	res := &Result{
		Fingerprint: fp,
		Routers:     s.Routers(),
		State:       s.State().String(),
		Failed:      failed,
	}

	for id := 1; id <= s.Routers(); id++ {
		router := graph.RouterID(id)
		if router == failed {
			continue
		}
		res.Packets = append(res.Packets, linkStatePacket(g, router, failed))
		res.Tables = append(res.Tables, routingTable(trees[id], s.Routers(), failed))
	}
	log.Debugf("computed %d routing tables (state %s)", len(res.Tables), res.State)

	if q.wantsPath() {
		res.Path = optimalPath(trees, q, failed)
		if res.Path.Found() {
			log.Debugf("optimal path %d->%d: %v", q.Source, q.Destination, res.Path.Path)
		} else {
			log.Debugf("no path %d->%d", q.Source, q.Destination)
		}
	}

	return res, nil
}

func linkStatePacket(g *graph.Graph, router, failed graph.RouterID) LinkStatePacket {
	pkt := LinkStatePacket{Router: router, Entries: []LinkStateEntry{}}
	g.EachNeighbor(router, func(nb graph.Neighbor) {
		pkt.Entries = append(pkt.Entries, LinkStateEntry{
			Neighbor:    nb.ID,
			Cost:        nb.Cost,
			Unreachable: nb.ID == failed,
		})
	})
	return pkt
}

func routingTable(tree *spf.Tree, n int, failed graph.RouterID) RoutingTable {
	rt := RoutingTable{Router: tree.Source, Routes: make([]Route, 0, n)}
	for id := 1; id <= n; id++ {
		dst := graph.RouterID(id)
		route := Route{
			Destination: dst,
			NextHop:     spf.NextHop(tree.Predecessors, tree.Source, dst),
			Distance:    tree.Distances.At(dst),
		}
		if dst == failed {
			route.Distance = spf.Unreachable
		}
		rt.Routes = append(rt.Routes, route)
	}
	return rt
}

func optimalPath(trees []*spf.Tree, q Query, failed graph.RouterID) *OptimalPath {
	p := &OptimalPath{Source: q.Source, Destination: q.Destination, Distance: spf.Unreachable}
	if q.Source == failed || q.Destination == failed {
		return p
	}
	tree := trees[q.Source]
	p.Path = spf.ConstructPath(tree.Predecessors, q.Source, q.Destination)
	if p.Path != nil {
		p.Distance = tree.Distances.At(q.Destination)
	}
	return p
}
