// Package render formats simulator results for people and for other tools:
// aligned text tables, a JSON document and a Graphviz drawing.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/cli"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/simulator"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/spf"
)

const indent = "  "

// LinkStatePackets writes each router's direct neighbors and link costs.
// The failed router is listed as down; routers without a packet in res are
// skipped.
func LinkStatePackets(w io.Writer, res *simulator.Result) error {
	fmt.Fprintln(w, cli.Bold("Link-state packets"))
	for id := 1; id <= res.Routers; id++ {
		router := graph.RouterID(id)
		if router == res.Failed {
			fmt.Fprintf(w, "Router %d: %s\n", id, cli.Red("down"))
			continue
		}
		pkt, ok := res.Packet(router)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "Router %d\n", id)
		if len(pkt.Entries) == 0 {
			fmt.Fprintln(w, indent+cli.Dim("(no neighbors)"))
			continue
		}
		t := cli.NewTable(w, "NEIGHBOR", "COST").Indent(indent)
		for _, e := range pkt.Entries {
			cost := spf.Finite(e.Cost)
			if e.Unreachable {
				cost = spf.Unreachable
			}
			t.Row(e.Neighbor, cost)
		}
		if err := t.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// RoutingTables writes every surviving router's table: destination, next
// hop ("-" when there is none) and cost ("Unreachable" when infinite).
func RoutingTables(w io.Writer, res *simulator.Result) error {
	fmt.Fprintln(w, cli.Bold("Routing tables"))
	for id := 1; id <= res.Routers; id++ {
		router := graph.RouterID(id)
		if router == res.Failed {
			fmt.Fprintf(w, "Router %d: %s\n", id, cli.Red("down"))
			continue
		}
		rt, ok := res.Table(router)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "Router %d\n", id)
		if err := routingTable(w, rt); err != nil {
			return err
		}
	}
	return nil
}

func routingTable(w io.Writer, rt *simulator.RoutingTable) error {
	t := cli.NewTable(w, "DESTINATION", "NEXT HOP", "COST").Indent(indent)
	for _, r := range rt.Routes {
		t.Row(r.Destination, r.NextHop, r.Distance)
	}
	return t.Flush()
}

// Path writes the optimal path line, or a no-path notice.
func Path(w io.Writer, p *simulator.OptimalPath) error {
	if p == nil {
		return nil
	}
	if !p.Found() {
		_, err := fmt.Fprintf(w, "No path from %d to %d\n", p.Source, p.Destination)
		return err
	}
	_, err := fmt.Fprintf(w, "Optimal path %d -> %d: %s (cost %s)\n",
		p.Source, p.Destination, FormatPath(p.Path), p.Distance)
	return err
}

// FormatPath joins router ids with arrows, e.g. "1 -> 2 -> 4".
func FormatPath(path []graph.RouterID) string {
	parts := make([]string, len(path))
	for i, r := range path {
		parts[i] = r.String()
	}
	return strings.Join(parts, " -> ")
}

// Summary writes the heading line naming the topology state.
func Summary(w io.Writer, res *simulator.Result) {
	state := cli.Green(res.State)
	if res.Failed != graph.NoRouter {
		state = cli.Red(fmt.Sprintf("%s (router %d)", res.State, res.Failed))
	}
	fp := res.Fingerprint
	if len(fp) > 12 {
		fp = fp[:12]
	}
	fmt.Fprintf(w, "%s %s, %d routers, %s\n", cli.Bold("Topology"), fp, res.Routers, state)
}

// All writes the summary, packets, tables and path, separated by blank lines.
func All(w io.Writer, res *simulator.Result) error {
	Summary(w, res)
	fmt.Fprintln(w)
	if err := LinkStatePackets(w, res); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := RoutingTables(w, res); err != nil {
		return err
	}
	if res.Path != nil {
		fmt.Fprintln(w)
		return Path(w, res.Path)
	}
	return nil
}
