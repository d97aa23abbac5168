package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zulandar/habitline/internal/pin"
)

func newPinCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pin <tracker>",
		Short: "Pin a tracker",
		Long:  "Adds the tracker to the pinned set, surfacing it in the leading section of the day view.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPin(cmd, configPath, args[0], true)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	return cmd
}

func newUnpinCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "unpin <tracker>",
		Short: "Unpin a tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPin(cmd, configPath, args[0], false)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	return cmd
}

func runPin(cmd *cobra.Command, configPath, ref string, pinned bool) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	tr, err := resolveTracker(gormDB, ref)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pinned {
		if err := pin.Pin(gormDB, tr.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Pinned %q\n", tr.Name)
		return nil
	}

	if err := pin.Unpin(gormDB, tr.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Unpinned %q\n", tr.Name)
	return nil
}
