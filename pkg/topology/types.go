// Package topology loads router network definitions from YAML and validates
// them at the input boundary before they reach the simulator.
package topology

import "github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"

// Topology is the top-level structure of a topology file.
type Topology struct {
	Name        string    `yaml:"name,omitempty"`
	Routers     int       `yaml:"routers"`
	Links       []LinkDef `yaml:"links"`
	Source      int       `yaml:"source,omitempty"`
	Destination int       `yaml:"destination,omitempty"`
	Failed      int       `yaml:"failed,omitempty"` // 0 means no failed router
}

// LinkDef defines one undirected link.
type LinkDef struct {
	From int   `yaml:"from"`
	To   int   `yaml:"to"`
	Cost int64 `yaml:"cost"`
}

// GraphLinks converts the link definitions for the simulator.
func (t *Topology) GraphLinks() []graph.Link {
	links := make([]graph.Link, 0, len(t.Links))
	for _, l := range t.Links {
		links = append(links, graph.Link{A: graph.RouterID(l.From), B: graph.RouterID(l.To), Cost: l.Cost})
	}
	return links
}

// FailedRouter returns the failed router, or graph.NoRouter.
func (t *Topology) FailedRouter() graph.RouterID {
	return graph.RouterID(t.Failed)
}
