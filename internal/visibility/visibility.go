// Package visibility computes which trackers to display for a selected day.
package visibility

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/zulandar/habitline/internal/ledger"
	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/pin"
	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/tracker"
)

// Filter narrows the day view beyond the schedule match.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterToday        Filter = "today"
	FilterCompleted    Filter = "completed"
	FilterNotCompleted Filter = "not_completed"
)

// ParseFilter maps user input to a Filter. Empty input means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "today":
		return FilterToday, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "not_completed", "not-completed", "todo":
		return FilterNotCompleted, nil
	default:
		return "", fmt.Errorf("visibility: unknown filter %q", s)
	}
}

// Snapshot is the dataset one filter invocation runs over: every category
// with its trackers in stored order, the pinned set, and the ids completed
// on the snapshot day.
type Snapshot struct {
	Categories []models.Category
	Pinned     map[string]bool
	Completed  map[string]bool
}

// Options select what is visible.
//
// Selecting FilterToday is expected to reset Date to the caller's current
// day once, at selection time; the filter itself treats Today exactly like
// All. Subsequent explicit date changes are respected until the filter is
// selected again.
type Options struct {
	Date        time.Time
	Search      string
	Filter      Filter
	PinnedTitle string // title of the synthetic pinned section; "Pinned" if empty
}

// Section is one display group of the day view.
type Section struct {
	Title    string
	Pinned   bool
	Trackers []models.Tracker
}

// Load gathers a Snapshot for the given day.
func Load(db *gorm.DB, day time.Time) (*Snapshot, error) {
	cats, err := tracker.List(db)
	if err != nil {
		return nil, err
	}
	pinned, err := pin.IDs(db)
	if err != nil {
		return nil, err
	}
	completed, err := ledger.CompletedOn(db, day)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Categories: cats, Pinned: pinned, Completed: completed}, nil
}

// Visible computes the ordered display sections for the snapshot:
// a tracker is shown iff its schedule includes the date's weekday, its name
// contains the search text (case-insensitive substring), and the filter
// predicate holds. Pinned matches form one leading synthetic section, shown
// only when non-empty; the rest group by category in stored order. Sections
// are never emitted empty, and a pinned tracker never repeats in its
// original category.
func Visible(snap *Snapshot, opts Options) []Section {
	weekday := schedule.FromTime(opts.Date)
	search := strings.ToLower(opts.Search)

	var pinnedTrackers []models.Tracker
	var regular []Section

	for _, cat := range snap.Categories {
		var kept []models.Tracker
		for _, tr := range cat.Trackers {
			if !matches(tr, weekday, search, opts.Filter, snap.Completed) {
				continue
			}
			if snap.Pinned[tr.ID] {
				pinnedTrackers = append(pinnedTrackers, tr)
			} else {
				kept = append(kept, tr)
			}
		}
		if len(kept) > 0 {
			regular = append(regular, Section{Title: cat.Title, Trackers: kept})
		}
	}

	var out []Section
	if len(pinnedTrackers) > 0 {
		title := opts.PinnedTitle
		if title == "" {
			title = "Pinned"
		}
		out = append(out, Section{Title: title, Pinned: true, Trackers: pinnedTrackers})
	}
	return append(out, regular...)
}

func matches(tr models.Tracker, weekday schedule.Weekday, search string, filter Filter, completed map[string]bool) bool {
	if !schedule.Contains(schedule.Decode(tr.Schedule), weekday) {
		return false
	}
	if search != "" && !strings.Contains(strings.ToLower(tr.Name), search) {
		return false
	}
	switch filter {
	case FilterCompleted:
		return completed[tr.ID]
	case FilterNotCompleted:
		return !completed[tr.ID]
	default:
		return true
	}
}
