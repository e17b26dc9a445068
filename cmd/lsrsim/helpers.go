package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/simulator"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/topology"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

// loadTopology resolves the topology from: --link triples > -t flag >
// LSRSIM_TOPOLOGY env > settings > error.
func (a *app) loadTopology() (*topology.Topology, error) {
	opts := topology.Options{Lenient: a.lenient}

	var topo *topology.Topology
	if len(a.linkSpecs) > 0 {
		topo = &topology.Topology{Name: "inline", Routers: a.routers}
		for _, spec := range a.linkSpecs {
			link, err := topology.ParseLinkSpec(spec)
			if err != nil {
				return nil, err
			}
			topo.Links = append(topo.Links, link)
		}
		if err := topology.Validate(topo, opts); err != nil {
			return nil, fmt.Errorf("validating inline topology: %w", err)
		}
	} else {
		path, err := a.topologyFile()
		if err != nil {
			return nil, err
		}
		topo, err = topology.LoadTopology(path, opts)
		if err != nil {
			return nil, err
		}
	}

	return topo, nil
}

func (a *app) topologyFile() (string, error) {
	if a.topologyPath != "" {
		return a.topologyPath, nil
	}
	if v := os.Getenv("LSRSIM_TOPOLOGY"); v != "" {
		return v, nil
	}
	if a.settings != nil && a.settings.DefaultTopology != "" {
		return a.settings.DefaultTopology, nil
	}
	return "", fmt.Errorf("topology required: use -t <file>, --link with --routers, set LSRSIM_TOPOLOGY, or run 'lsrsim settings set topology <file>'")
}

// newSimulator loads the topology and applies its failure designation.
// --fail then moves the simulator to another failed router, or back to
// the normal state with "none".
func (a *app) newSimulator() (*simulator.Simulator, *topology.Topology, error) {
	topo, err := a.loadTopology()
	if err != nil {
		return nil, nil, err
	}

	// One Compute per invocation; a cache would never be hit.
	sim := simulator.New(simulator.WithCacheTTL(0))
	if err := sim.SetTopology(topo.Routers, topo.GraphLinks()); err != nil {
		return nil, nil, err
	}
	if topo.FailedRouter() != graph.NoRouter {
		if err := sim.SetFailure(topo.FailedRouter()); err != nil {
			return nil, nil, err
		}
	}

	switch strings.ToLower(a.failSpec) {
	case "":
	case "none":
		if err := sim.ClearFailure(); err != nil {
			return nil, nil, err
		}
	default:
		id, err := topology.ParseRouterID("failed router", a.failSpec)
		if err != nil {
			return nil, nil, err
		}
		if err := sim.SetFailure(graph.RouterID(id)); err != nil {
			return nil, nil, err
		}
	}
	snap, _ := sim.Snapshot()
	topo.Failed = int(snap.Failed())
	return sim, topo, nil
}

// query builds the source/destination pair from flags, falling back to the
// topology file. When required is false and neither is known, the zero
// Query is returned and no path is computed.
func (a *app) query(topo *topology.Topology, required bool) (simulator.Query, error) {
	src, err := routerFlag("source", a.source, topo.Source)
	if err != nil {
		return simulator.Query{}, err
	}
	dst, err := routerFlag("destination", a.dest, topo.Destination)
	if err != nil {
		return simulator.Query{}, err
	}

	if src == 0 && dst == 0 && !required {
		return simulator.Query{}, nil
	}
	if src == 0 || dst == 0 {
		return simulator.Query{}, fmt.Errorf("source and destination required: use -s <router> -d <router>")
	}
	return simulator.Query{Source: graph.RouterID(src), Destination: graph.RouterID(dst)}, nil
}

func routerFlag(field, flag string, fallback int) (int, error) {
	if flag == "" {
		return fallback, nil
	}
	return topology.ParseRouterID(field, flag)
}

// compute runs the full simulation for the current flags.
func (a *app) compute(pathRequired bool) (*simulator.Result, *simulator.Simulator, *topology.Topology, error) {
	sim, topo, err := a.newSimulator()
	if err != nil {
		return nil, nil, nil, err
	}
	q, err := a.query(topo, pathRequired)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := sim.Compute(q)
	if err != nil {
		return nil, nil, nil, err
	}
	util.WithTopology(res.Fingerprint).Debugf("topology %q: %d routers, %d links", topo.Name, topo.Routers, len(topo.Links))
	return res, sim, topo, nil
}

// selectRouters narrows res to the routers named by a range spec such as
// "1-3,5". An empty spec returns res unchanged.
func selectRouters(res *simulator.Result, spec string) (*simulator.Result, error) {
	if spec == "" {
		return res, nil
	}
	ids, err := util.ExpandRange(spec)
	if err != nil {
		return nil, err
	}
	want := make(map[graph.RouterID]bool, len(ids))
	for _, id := range ids {
		if !graph.RouterID(id).Valid(res.Routers) {
			return nil, util.NewInputError("router", id, fmt.Sprintf("outside [1, %d]", res.Routers))
		}
		want[graph.RouterID(id)] = true
	}

	sel := *res
	sel.Packets = nil
	sel.Tables = nil
	for _, p := range res.Packets {
		if want[p.Router] {
			sel.Packets = append(sel.Packets, p)
		}
	}
	for _, t := range res.Tables {
		if want[t.Router] {
			sel.Tables = append(sel.Tables, t)
		}
	}
	return &sel, nil
}
