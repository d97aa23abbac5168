package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hl",
		Short: "Habitline — weekday habit tracking",
		Long:  "Habitline schedules trackers across weekdays and keeps a ledger of completed days.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newTrackerCmd())
	cmd.AddCommand(newDoneCmd())
	cmd.AddCommand(newUndoCmd())
	cmd.AddCommand(newPinCmd())
	cmd.AddCommand(newUnpinCmd())
	cmd.AddCommand(newDayCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newRemindCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
