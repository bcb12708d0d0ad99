package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it serves HTTP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "herdsos",
		Short: "Livestock emergency reports routed to the nearest vet hospital",
		Long: `herdsos accepts emergency reports about cows, assigns each one to the
nearest veterinary hospital and lets hospitals accept or reject them.
A rejected report cascades to the next nearest hospital that has not tried it.

Configuration is read from .env and the environment (PORT, DB_PATH, MAX_BODY,
SEED_HOSPITALS, SEED_COWS, REPORT_BASE_URL).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServeCmd,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewLinksCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
