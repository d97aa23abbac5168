package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/habitline/internal/notify"
	"github.com/zulandar/habitline/internal/reminder"
)

func newRemindCmd() *cobra.Command {
	var (
		configPath string
		once       bool
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder daemon",
		Long: `Runs the reminder daemon: at each cron fire time it looks up the trackers
due today, and sends a digest of the still-uncompleted ones through every
configured notifier (shell command, Slack, Discord).

With --once, sends a single digest immediately and exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemind(cmd, configPath, once)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	cmd.Flags().BoolVar(&once, "once", false, "send one digest now and exit")
	return cmd
}

func runRemind(cmd *cobra.Command, configPath string, once bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	notifiers := notify.FromConfig(&cfg.Reminder)
	if len(notifiers) == 0 {
		return fmt.Errorf("no notifiers configured — set reminder.command, reminder.slack, or reminder.discord")
	}

	out := cmd.OutOrStdout()

	if once {
		if err := reminder.Fire(cmd.Context(), gormDB, notifiers, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Digest sent to %d notifier(s)\n", len(notifiers))
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	fmt.Fprintf(out, "Reminder daemon running (cron %q, %d notifier(s))\n", cfg.Reminder.Cron, len(notifiers))

	err = reminder.Run(ctx, reminder.Opts{
		DB:        gormDB,
		Cron:      cfg.Reminder.Cron,
		Notifiers: notifiers,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
