package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/visibility"
)

func newDayCmd() *cobra.Command {
	var (
		configPath string
		date       string
		search     string
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the trackers visible on a day",
		Long:  "Shows the day view: trackers scheduled on the day's weekday, grouped by category, with pinned trackers in a leading section.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDay(cmd, configPath, date, search, filter)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "habitline.yaml", "path to Habitline config file")
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to show (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name substring")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, today, completed, or not_completed")
	return cmd
}

func runDay(cmd *cobra.Command, configPath, date, search, filterRaw string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	day, err := parseDateFlag(date)
	if err != nil {
		return err
	}
	filter, err := visibility.ParseFilter(filterRaw)
	if err != nil {
		return err
	}
	// Selecting the Today filter resets the date to the clock's current day;
	// each invocation is a fresh selection.
	if filter == visibility.FilterToday {
		day = schedule.DayOf(time.Now())
	}

	snap, err := visibility.Load(gormDB, day)
	if err != nil {
		return err
	}

	sections := visibility.Visible(snap, visibility.Options{
		Date:        day,
		Search:      search,
		Filter:      filter,
		PinnedTitle: cfg.PinnedTitle,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", day.Format(dateLayout), day.Weekday())

	if len(sections) == 0 {
		fmt.Fprintln(out, "Nothing to show.")
		return nil
	}

	for _, section := range sections {
		fmt.Fprintf(out, "\n%s\n", section.Title)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, tr := range section.Trackers {
			name := tr.Name
			if tr.Emoji != "" {
				name = tr.Emoji + " " + name
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n",
				checkmark(snap.Completed[tr.ID]), truncate(name, 42), dayList(tr.Schedule))
		}
		w.Flush()
	}
	return nil
}
