// lsrsim — link-state routing simulator
//
// lsrsim reads a router topology (a YAML file or inline --link triples),
// floods link-state packets, runs one shortest-path computation per router
// and prints the resulting routing tables. One router may be marked failed;
// its links are excised and every table is recomputed without it.
//
// Usage:
//
//	lsrsim show -t <file>                     Packets, tables and optimal path
//	lsrsim tables -t <file> --fail 3          Routing tables with router 3 down
//	lsrsim path -t <file> -s 1 -d 4           Optimal path between two routers
//	lsrsim lsp -t <file>                      Link-state packets only
//	lsrsim graph -t <file> -o lab.dot         Graphviz drawing
//	lsrsim export -t <file> --redis host:port Publish tables into Redis
//	lsrsim init <file>                        Write a sample topology
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/audit"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/cli"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/settings"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/version"
)

// app carries flag values and per-invocation state shared by all commands.
type app struct {
	// Topology selection
	topologyPath string
	linkSpecs    []string
	routers      int
	lenient      bool

	// Failure and query
	failSpec string
	source   string
	dest     string

	// Output
	verbose    bool
	jsonOutput bool
	noColor    bool
	auditPath  string
	logFile    string

	settings    *settings.Settings
	auditLogger *audit.FileLogger
	logCloser   io.Closer
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "lsrsim",
		Short:             "Link-state routing simulator",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		Long: `lsrsim computes link-state packets and shortest-path routing tables for
every router in a network, and shows how they change when one router fails.

  lsrsim show -t lab.yaml --fail 3`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Set log level: quiet by default, verbose on -v
			if a.verbose {
				util.SetLogLevel("debug")
			} else {
				util.SetLogLevel("warn")
			}
			if a.noColor {
				cli.SetColor(false)
			}
			if a.logFile != "" {
				a.logCloser = util.SetLogFile(a.logFile)
			}

			var err error
			a.settings, err = settings.Load()
			if err != nil {
				util.Warnf("Could not load settings: %v", err)
				a.settings = &settings.Settings{}
			}

			if isSettingsOrHelp(cmd) {
				return nil
			}
			a.openAuditLog()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.topologyPath, "topology", "t", "", "topology YAML file")
	flags.StringSliceVarP(&a.linkSpecs, "link", "l", nil, "inline link from-to:cost (repeatable, needs --routers)")
	flags.IntVarP(&a.routers, "routers", "n", 0, "router count for inline links")
	flags.BoolVar(&a.lenient, "lenient", false, "drop links with non-positive endpoints or cost instead of failing")
	flags.StringVar(&a.failSpec, "fail", "", "router to fail (overrides the topology file; \"none\" clears it)")
	flags.StringVar(&a.auditPath, "audit-log", "", "audit log path (default from settings)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&a.logFile, "log-file", "", "also write logs to this file (rotated)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colour output")

	root.AddGroup(
		&cobra.Group{ID: "sim", Title: "Simulation:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{
		newShowCmd(a),
		newTablesCmd(a),
		newLSPCmd(a),
		newPathCmd(a),
		newGraphCmd(a),
		newExportCmd(a),
	} {
		cmd.GroupID = "sim"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newInitCmd(),
		newAuditCmd(a),
		newSettingsCmd(a),
		newVersionCmd(),
	} {
		cmd.GroupID = "meta"
		root.AddCommand(cmd)
	}
	return root
}

func (a *app) openAuditLog() {
	path := a.auditPath
	if path == "" {
		path = a.settings.GetAuditLog()
	}
	logger, err := audit.NewFileLogger(path, audit.RotationConfig{
		MaxSize:    10, // MB
		MaxBackups: 10,
	})
	if err != nil {
		util.Warnf("Could not initialize audit logging: %v", err)
		return
	}
	a.auditLogger = logger
	audit.SetDefaultLogger(logger)
}

// close releases the audit log and log file opened for this invocation.
func (a *app) close() {
	if a.auditLogger != nil {
		audit.SetDefaultLogger(nil)
		a.auditLogger.Close()
		a.auditLogger = nil
	}
	if a.logCloser != nil {
		util.SetLogOutput(os.Stderr)
		a.logCloser.Close()
		a.logCloser = nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Line("lsrsim"))
		},
	}
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings, help, or version command.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings", "init":
			return true
		}
	}
	return false
}

// addOutputFlags registers --json as a local flag.
func addOutputFlags(a *app, cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.jsonOutput, "json", false, "JSON output")
}

// addQueryFlags registers -s/--source and -d/--destination.
func addQueryFlags(a *app, cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.source, "source", "s", "", "source router (default from topology file)")
	cmd.Flags().StringVarP(&a.dest, "destination", "d", "", "destination router (default from topology file)")
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
