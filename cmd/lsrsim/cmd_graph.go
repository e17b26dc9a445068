package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/render"
)

func newGraphCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the topology as a Graphviz graph",
		Long: `Write the topology in Graphviz DOT format. The failed router and its
links are drawn red and dashed; the optimal path, when known, is drawn bold.

  lsrsim graph -t lab.yaml --fail 3 | dot -Tsvg > lab.svg
  lsrsim graph -t lab.yaml -s 1 -d 4 -o lab.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, sim, topo, err := a.compute(false)
			if err != nil {
				return err
			}
			snap, _ := sim.Snapshot()

			if output == "" {
				return render.DOT(out(cmd), topo.Name, snap, res.Path)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := render.DOT(f, topo.Name, snap, res.Path); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Wrote %s\n", output)
			return nil
		},
	}
	addQueryFlags(a, cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
