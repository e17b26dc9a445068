package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/topology"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write a sample topology file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := topology.Save(topology.Sample(), path); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Wrote sample topology to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
