package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/simulator"
)

// DOT writes the topology as a Graphviz undirected graph. The failed router
// and its links are drawn red and dashed; links on path are drawn bold.
func DOT(w io.Writer, name string, snap simulator.TopologySnapshot, path *simulator.OptimalPath) error {
	if name == "" {
		name = "topology"
	}
	failed := snap.Failed()
	links := snap.Links()
	onPath := pathLinks(links, path)

	var b strings.Builder
	fmt.Fprintf(&b, "graph %q {\n", name)
	b.WriteString("  node [shape=circle];\n")
	for id := 1; id <= snap.Routers(); id++ {
		if graph.RouterID(id) == failed {
			fmt.Fprintf(&b, "  %d [color=red, fontcolor=red, style=dashed];\n", id)
			continue
		}
		fmt.Fprintf(&b, "  %d;\n", id)
	}
	for i, l := range links {
		var attrs []string
		attrs = append(attrs, fmt.Sprintf("label=%q", fmt.Sprint(l.Cost)))
		switch {
		case failed != graph.NoRouter && l.Touches(failed):
			attrs = append(attrs, "color=red", "style=dashed")
		case onPath[i]:
			attrs = append(attrs, "color=blue", "penwidth=2")
		}
		fmt.Fprintf(&b, "  %d -- %d [%s];\n", l.A, l.B, strings.Join(attrs, ", "))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// pathLinks marks, for each consecutive hop pair, the cheapest link that
// carries it.
func pathLinks(links []graph.Link, path *simulator.OptimalPath) map[int]bool {
	marked := make(map[int]bool)
	if !path.Found() {
		return marked
	}
	for i := 0; i+1 < len(path.Path); i++ {
		a, b := path.Path[i], path.Path[i+1]
		best := -1
		for j, l := range links {
			if !(l.A == a && l.B == b) && !(l.A == b && l.B == a) {
				continue
			}
			if best < 0 || l.Cost < links[best].Cost {
				best = j
			}
		}
		if best >= 0 {
			marked[best] = true
		}
	}
	return marked
}
