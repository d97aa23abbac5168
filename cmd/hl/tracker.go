package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/zulandar/habitline/internal/config"
	"github.com/zulandar/habitline/internal/db"
	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/tracker"
)

func newTrackerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Tracker management commands",
	}

	cmd.AddCommand(newTrackerAddCmd())
	cmd.AddCommand(newTrackerEditCmd())
	cmd.AddCommand(newTrackerRmCmd())
	cmd.AddCommand(newTrackerListCmd())
	return cmd
}

func newTrackerAddCmd() *cobra.Command {
	var (
		configPath string
		name       string
		emoji      string
		color      string
		days       string
		category   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new tracker",
		Long:  "Creates a tracker scheduled on the given weekdays, creating its category on first use.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerAdd(cmd, configPath, name, emoji, color, days, category)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	cmd.Flags().StringVar(&name, "name", "", "tracker name (required)")
	cmd.Flags().StringVar(&emoji, "emoji", "", "display emoji")
	cmd.Flags().StringVar(&color, "color", "", "display color, RGB hex")
	cmd.Flags().StringVar(&days, "days", "", "scheduled weekdays, comma separated (e.g. mon,wed,fri) (required)")
	cmd.Flags().StringVar(&category, "category", "", "category title (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("days")
	cmd.MarkFlagRequired("category")
	return cmd
}

func runTrackerAdd(cmd *cobra.Command, configPath, name, emoji, color, days, category string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	sched, err := schedule.ParseDays(days)
	if err != nil {
		return err
	}

	tr, err := tracker.Create(gormDB, tracker.Opts{
		Name:     name,
		Emoji:    emoji,
		Color:    color,
		Schedule: sched,
		Category: category,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created tracker %s\n", tr.ID)
	fmt.Fprintf(out, "Schedule: %s\n", dayList(tr.Schedule))
	return nil
}

func newTrackerEditCmd() *cobra.Command {
	var (
		configPath string
		name       string
		emoji      string
		color      string
		days       string
		category   string
	)

	cmd := &cobra.Command{
		Use:   "edit <tracker>",
		Short: "Edit a tracker",
		Long:  "Replaces a tracker's name, schedule, and category. All fields are written; pass current values to keep them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerEdit(cmd, configPath, args[0], name, emoji, color, days, category)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	cmd.Flags().StringVar(&name, "name", "", "tracker name (required)")
	cmd.Flags().StringVar(&emoji, "emoji", "", "display emoji")
	cmd.Flags().StringVar(&color, "color", "", "display color, RGB hex")
	cmd.Flags().StringVar(&days, "days", "", "scheduled weekdays, comma separated (required)")
	cmd.Flags().StringVar(&category, "category", "", "category title (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("days")
	cmd.MarkFlagRequired("category")
	return cmd
}

func runTrackerEdit(cmd *cobra.Command, configPath, ref, name, emoji, color, days, category string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	tr, err := resolveTracker(gormDB, ref)
	if err != nil {
		return err
	}

	sched, err := schedule.ParseDays(days)
	if err != nil {
		return err
	}

	updated, err := tracker.Update(gormDB, tr.ID, tracker.Opts{
		Name:     name,
		Emoji:    emoji,
		Color:    color,
		Schedule: sched,
		Category: category,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Updated tracker %s\n", updated.ID)
	fmt.Fprintf(out, "Schedule: %s\n", dayList(updated.Schedule))
	return nil
}

func newTrackerRmCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rm <tracker>",
		Short: "Delete a tracker",
		Long:  "Deletes a tracker along with its completion records and pin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerRm(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	return cmd
}

func runTrackerRm(cmd *cobra.Command, configPath, ref string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	tr, err := resolveTracker(gormDB, ref)
	if err != nil {
		return err
	}

	if err := tracker.Delete(gormDB, tr.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted tracker %q\n", tr.Name)
	return nil
}

func newTrackerListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all trackers",
		Long:  "Lists every tracker grouped by category. Output is formatted as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	return cmd
}

func runTrackerList(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	cats, err := tracker.List(gormDB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, cat := range cats {
		total += len(cat.Trackers)
	}
	if total == 0 {
		fmt.Fprintln(out, "No trackers found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDAYS\tCATEGORY")
	for _, cat := range cats {
		for _, tr := range cat.Trackers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				tr.ID, truncate(tr.Name, 40), dayList(tr.Schedule), cat.Title)
		}
	}
	w.Flush()
	return nil
}

func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Open(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	return cfg, gormDB, nil
}

// resolveTracker looks up a tracker by id first, then by exact name.
func resolveTracker(gormDB *gorm.DB, ref string) (*models.Tracker, error) {
	tr, err := tracker.Get(gormDB, ref)
	if err == nil {
		return tr, nil
	}

	cats, listErr := tracker.List(gormDB)
	if listErr != nil {
		return nil, listErr
	}
	var matches []models.Tracker
	for _, cat := range cats {
		for _, t := range cat.Trackers {
			if t.Name == ref {
				matches = append(matches, t)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, err
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("tracker name %q is ambiguous (%d matches) — use the id", ref, len(matches))
	}
}
