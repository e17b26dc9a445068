package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/cli"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/settings"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persistent settings",
		Long: `Manage persistent settings stored in ~/.lsrsim/settings.json.

Settings provide defaults for flags:
  - default_topology: Used when -t is not specified
  - redis_addr:       Export target (--redis)
  - redis_db:         Export database (--db)
  - audit_log:        Audit log path (--audit-log)

Examples:
  lsrsim settings show
  lsrsim settings set topology topologies/ring.yaml
  lsrsim settings set redis_addr 10.0.0.5:6379
  lsrsim settings clear`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(out(cmd), "Settings file: %s\n\n", settings.DefaultSettingsPath())

			t := cli.NewTable(out(cmd), "SETTING", "VALUE")
			for _, key := range settings.Keys {
				value, _ := a.settings.Get(key)
				if value == "" {
					value = "(not set)"
				}
				t.Row(key, value)
			}
			return t.Flush()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Set a setting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.settings.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.settings.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			fmt.Fprintf(out(cmd), "%s set to: %s\n", args[0], args[1])
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <setting>",
		Short: "Get a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.settings.Get(args[0])
			if err != nil {
				return err
			}
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintln(out(cmd), value)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.settings.Clear()
			if err := a.settings.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			fmt.Fprintln(out(cmd), "All settings cleared.")
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show settings file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out(cmd), settings.DefaultSettingsPath())
		},
	}

	cmd.AddCommand(showCmd, setCmd, getCmd, clearCmd, pathCmd)
	return cmd
}
