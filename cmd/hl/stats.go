package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/habitline/internal/stats"
)

func newStatsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Long:  "Shows overall completion totals, perfect days, the best streak, and per-tracker counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	return cmd
}

func runStats(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	report, err := stats.Compute(gormDB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completed:    %d\n", report.TotalCompleted)
	fmt.Fprintf(out, "Perfect days: %d\n", report.PerfectDays)
	fmt.Fprintf(out, "Best streak:  %d\n", report.BestStreak)
	fmt.Fprintf(out, "Avg per day:  %.1f\n", report.AverageDaily)

	if len(report.PerTracker) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMPLETED")
	for _, tc := range report.PerTracker {
		fmt.Fprintf(w, "%s\t%d\n", truncate(tc.Name, 40), tc.Count)
	}
	w.Flush()
	return nil
}
