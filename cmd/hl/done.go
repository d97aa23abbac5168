package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/habitline/internal/ledger"
	"github.com/zulandar/habitline/internal/schedule"
)

func newDoneCmd() *cobra.Command {
	var (
		configPath string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "done <tracker>",
		Short: "Toggle a tracker's completion for a day",
		Long:  "Marks the tracker completed for the given day, or clears the mark if it was already completed. Future days are rejected.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDone(cmd, configPath, args[0], date)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to toggle (YYYY-MM-DD, default today)")
	return cmd
}

func runDone(cmd *cobra.Command, configPath, ref, date string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	tr, err := resolveTracker(gormDB, ref)
	if err != nil {
		return err
	}

	day, err := parseDateFlag(date)
	if err != nil {
		return err
	}

	completed, err := ledger.Toggle(gormDB, tr.ID, day, time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if completed {
		fmt.Fprintf(out, "%s completed for %s\n", tr.Name, day.Format(dateLayout))
	} else {
		fmt.Fprintf(out, "%s cleared for %s\n", tr.Name, day.Format(dateLayout))
	}
	return nil
}

func newUndoCmd() *cobra.Command {
	var (
		configPath string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "undo <tracker>",
		Short: "Clear a tracker's completion for a day",
		Long:  "Removes the completion mark for the given day. Does nothing if the day was not completed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndo(cmd, configPath, args[0], date)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to clear (YYYY-MM-DD, default today)")
	return cmd
}

func runUndo(cmd *cobra.Command, configPath, ref, date string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	tr, err := resolveTracker(gormDB, ref)
	if err != nil {
		return err
	}

	day, err := parseDateFlag(date)
	if err != nil {
		return err
	}

	if err := ledger.Remove(gormDB, tr.ID, schedule.DayOf(day)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s cleared for %s\n", tr.Name, day.Format(dateLayout))
	return nil
}
