package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/audit"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/cli"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/render"
)

func newAuditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View the simulation audit log",
		Long: `View the journal of topology and failure transitions.

Every run records:
  - topology.set   a topology was loaded
  - failure.set    a router was marked failed
  - failure.clear  the failure was cleared
  - compute        routing tables were computed

Examples:
  lsrsim audit list --last 24h
  lsrsim audit list --operation failure.set
  lsrsim audit list --failures`,
	}
	cmd.AddCommand(newAuditListCmd(a))
	return cmd
}

func newAuditListCmd(a *app) *cobra.Command {
	var (
		operation string
		topo      string
		last      string
		failed    int
		limit     int
		failures  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := audit.Filter{
				Operation:   operation,
				Topology:    topo,
				Failed:      failed,
				Limit:       limit,
				FailureOnly: failures,
			}

			// Parse --last duration
			if last != "" {
				duration, err := time.ParseDuration(last)
				if err != nil {
					return fmt.Errorf("invalid duration: %s", last)
				}
				filter.StartTime = time.Now().Add(-duration)
			}

			events, err := audit.Query(filter)
			if err != nil {
				return fmt.Errorf("querying audit log: %w", err)
			}

			if a.jsonOutput {
				return render.WriteJSON(out(cmd), events)
			}

			if len(events) == 0 {
				fmt.Fprintln(out(cmd), "No audit events found")
				return nil
			}

			t := cli.NewTable(out(cmd), "TIMESTAMP", "OPERATION", "TOPOLOGY", "FAILED", "STATUS")
			for _, event := range events {
				status := cli.Green("ok")
				if !event.Success {
					status = cli.Red("failed: " + event.Error)
				}
				fp := event.Topology
				if len(fp) > 12 {
					fp = fp[:12]
				}
				var down any
				if event.Failed != 0 {
					down = event.Failed
				}
				t.Row(
					event.Timestamp.Format("2006-01-02 15:04:05"),
					event.Operation,
					fp,
					down,
					status,
				)
			}
			return t.Flush()
		},
	}
	cmd.Flags().StringVar(&operation, "operation", "", "Filter by operation")
	cmd.Flags().StringVar(&topo, "topology-id", "", "Filter by topology fingerprint")
	cmd.Flags().IntVar(&failed, "failed", 0, "Filter by failed router")
	cmd.Flags().StringVar(&last, "last", "", "Show events from last duration (e.g., 24h)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum events to show")
	cmd.Flags().BoolVar(&failures, "failures", false, "Show only failed operations")
	addOutputFlags(a, cmd)
	return cmd
}
