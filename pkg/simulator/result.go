package simulator

import (
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/spf"
)

// LinkStateEntry is one neighbor in a router's link-state packet.
type LinkStateEntry struct {
	Neighbor    graph.RouterID `json:"neighbor"`
	Cost        int64          `json:"cost"`
	Unreachable bool           `json:"unreachable,omitempty"`
}

// LinkStatePacket is a router's direct-neighbor view.
type LinkStatePacket struct {
	Router  graph.RouterID   `json:"router"`
	Entries []LinkStateEntry `json:"entries"`
}

// Route is one routing-table row.
type Route struct {
	Destination graph.RouterID `json:"destination"`
	NextHop     graph.RouterID `json:"next_hop,omitempty"`
	Distance    spf.Distance   `json:"cost"`
}

// RoutingTable lists a route to every router 1..N from one router's point
// of view, including itself.
type RoutingTable struct {
	Router graph.RouterID `json:"router"`
	Routes []Route        `json:"routes"`
}

// Route returns the row for destination, if present.
func (t *RoutingTable) Route(destination graph.RouterID) (Route, bool) {
	for _, r := range t.Routes {
		if r.Destination == destination {
			return r, true
		}
	}
	return Route{}, false
}

// OptimalPath is the shortest path between the queried source and
// destination. Path is nil when no path exists.
type OptimalPath struct {
	Source      graph.RouterID   `json:"source"`
	Destination graph.RouterID   `json:"destination"`
	Path        []graph.RouterID `json:"path"`
	Distance    spf.Distance     `json:"cost"`
}

// Found reports whether a path exists.
func (p *OptimalPath) Found() bool {
	return p != nil && p.Path != nil
}

// Result is the full output of one computation over one snapshot. The
// failed router has neither a packet nor a table. Results may be shared
// between callers and must not be modified.
type Result struct {
	Fingerprint string            `json:"topology"`
	Routers     int               `json:"routers"`
	State       string            `json:"state"`
	Failed      graph.RouterID    `json:"failed,omitempty"`
	Packets     []LinkStatePacket `json:"link_state"`
	Tables      []RoutingTable    `json:"routing_tables"`
	Path        *OptimalPath      `json:"path,omitempty"`
}

// Table returns the routing table computed for router, if any.
func (r *Result) Table(router graph.RouterID) (*RoutingTable, bool) {
	for i := range r.Tables {
		if r.Tables[i].Router == router {
			return &r.Tables[i], true
		}
	}
	return nil, false
}

// Packet returns the link-state packet of router, if any.
func (r *Result) Packet(router graph.RouterID) (*LinkStatePacket, bool) {
	for i := range r.Packets {
		if r.Packets[i].Router == router {
			return &r.Packets[i], true
		}
	}
	return nil, false
}
