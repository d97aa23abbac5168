package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/habitline/internal/schedule"
)

const dateLayout = "2006-01-02"

// truncate shortens s to max characters, appending "..." when cut. Counts
// runes, not bytes, so emoji-bearing names never split mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// dayList renders a CSV schedule as short weekday names in canonical
// Monday-first order ("Mon, Wed, Fri").
func dayList(csv string) string {
	days := schedule.Sorted(schedule.Decode(csv))
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Short()
	}
	return strings.Join(names, ", ")
}

// checkmark renders a completion state for list output.
func checkmark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// parseDateFlag resolves a --date flag value, defaulting to today.
func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		return schedule.DayOf(time.Now()), nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", raw)
	}
	return day, nil
}
