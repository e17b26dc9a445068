package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/render"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/simulator"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

func newShowCmd(a *app) *cobra.Command {
	var only string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show link-state packets, routing tables and the optimal path",
		Long: `Run the simulation and print everything it computed.

The optimal path is included when a source and destination are known,
either from -s/-d or from the topology file.

  lsrsim show -t lab.yaml
  lsrsim show -t lab.yaml --fail 3 --only 1-2
  lsrsim show -n 3 -l 1-2:1 -l 2-3:1 -s 1 -d 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := a.compute(false)
			if err != nil {
				return err
			}
			res, err = selectRouters(res, only)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return render.JSON(out(cmd), res)
			}
			return render.All(out(cmd), res)
		},
	}
	addQueryFlags(a, cmd)
	addOutputFlags(a, cmd)
	cmd.Flags().StringVar(&only, "only", "", "limit output to routers, e.g. 1-3,5")
	return cmd
}

func newTablesCmd(a *app) *cobra.Command {
	var only string
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show every router's routing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := a.compute(false)
			if err != nil {
				return err
			}
			res, err = selectRouters(res, only)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return render.WriteJSON(out(cmd), res.Tables)
			}
			return render.RoutingTables(out(cmd), res)
		},
	}
	addOutputFlags(a, cmd)
	cmd.Flags().StringVar(&only, "only", "", "limit output to routers, e.g. 1-3,5")
	return cmd
}

func newLSPCmd(a *app) *cobra.Command {
	var only string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Show every router's link-state packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := a.compute(false)
			if err != nil {
				return err
			}
			res, err = selectRouters(res, only)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return render.WriteJSON(out(cmd), res.Packets)
			}
			return render.LinkStatePackets(out(cmd), res)
		},
	}
	addOutputFlags(a, cmd)
	cmd.Flags().StringVar(&only, "only", "", "limit output to routers, e.g. 1-3,5")
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show the optimal path between two routers",
		Long: `Show the shortest path from source to destination and its cost.

When no path exists, the routers still reachable from the source are listed.

  lsrsim path -t lab.yaml -s 1 -d 4
  lsrsim path -t lab.yaml -s 1 -d 4 --fail 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := a.compute(true)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return render.WriteJSON(out(cmd), res.Path)
			}
			if err := render.Path(out(cmd), res.Path); err != nil {
				return err
			}
			if !res.Path.Found() {
				if reach := reachableFrom(res, res.Path.Source); reach != "" {
					fmt.Fprintf(out(cmd), "Reachable from %d: %s\n", res.Path.Source, reach)
				}
			}
			return nil
		},
	}
	addQueryFlags(a, cmd)
	addOutputFlags(a, cmd)
	return cmd
}

// reachableFrom lists, in range notation, the routers with a finite cost in
// source's routing table.
func reachableFrom(res *simulator.Result, source graph.RouterID) string {
	rt, ok := res.Table(source)
	if !ok {
		return ""
	}
	var ids []int
	for _, r := range rt.Routes {
		if r.Distance.Reachable() {
			ids = append(ids, int(r.Destination))
		}
	}
	return util.CompactRange(ids)
}
