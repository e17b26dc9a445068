package simulator

import (
	"fmt"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

// ApplyFailure rebuilds a graph from the pristine link list and isolates
// failed. The graph is always built fresh, so failures never accumulate.
// failed must be in [1, n]; otherwise an input error is returned and no
// graph is built.
func ApplyFailure(n int, links []graph.Link, failed graph.RouterID) (*graph.Graph, error) {
	if !failed.Valid(n) {
		return nil, util.NewInputError("failed router", int(failed), fmt.Sprintf("must be within [1, %d]", n))
	}
	g := graph.Build(n, links)
	g.RemoveConnections(failed)
	return g, nil
}

// BuildGraph returns the graph a snapshot describes: the full topology in
// the Normal state, or the topology with the failed router isolated.
func BuildGraph(s TopologySnapshot) (*graph.Graph, error) {
	if s.State() == Normal {
		return graph.Build(s.routers, s.links), nil
	}
	return ApplyFailure(s.routers, s.links, s.failed)
}
