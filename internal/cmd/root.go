// Package cmd implements the CLI commands for connectproxy.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/connectproxy/internal/clog"
	"github.com/xdg/connectproxy/internal/term"
	"github.com/xdg/connectproxy/internal/version"
)

var (
	debugFlag  bool
	silentFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "connectproxy",
	Short: "HTTP CONNECT tunneling proxy",
	Long: `connectproxy accepts TCP connections, decodes HTTP/1.1 CONNECT requests,
checks the requested target against an optional allow/deny policy, dials the
target, and relays bytes bidirectionally between client and target until
either side closes or the tunnel TTL elapses.

It emits one structured result record per connection describing the outcome,
byte counts, and timing.`,
	Version: version.Version,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := clog.Configure(clog.DefaultLogPath(), debugFlag, false); err != nil {
			term.Warn("failed to configure logging: %v", err)
		}

		term.SetSilent(silentFlag)

		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = clog.Close() //nolint:errcheck // clog's own close
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "suppress non-essential output")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command and returns any error.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}
