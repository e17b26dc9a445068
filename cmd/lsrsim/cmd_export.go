package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		redisAddr string
		redisDB   int
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish routing tables into Redis",
		Long: `Compute every routing table and write it into Redis as
ROUTE_TABLE:<router>:<destination> hashes (fields nexthop, cost, reachable).
Existing routes of each router are replaced; the failed router's routes are
removed. TOPOLOGY_STATE records the topology fingerprint and state.

  lsrsim export -t lab.yaml --redis localhost:6379
  lsrsim export -t lab.yaml --fail 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := a.compute(false)
			if err != nil {
				return err
			}

			addr := redisAddr
			if addr == "" {
				addr = a.settings.GetRedisAddr()
			}
			db := redisDB
			if !cmd.Flags().Changed("db") {
				db = a.settings.RedisDB
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			exp := export.NewRouteExporter(addr, db)
			defer exp.Close()
			if err := exp.Connect(ctx); err != nil {
				return err
			}
			n, err := exp.Export(ctx, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Exported %d routes from %d routers to %s (db %d)\n", n, len(res.Tables), addr, db)
			return nil
		},
	}
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address host:port (default from settings)")
	cmd.Flags().IntVar(&redisDB, "db", 0, "Redis database (default from settings)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "export timeout")
	return cmd
}
