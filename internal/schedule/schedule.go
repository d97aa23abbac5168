// Package schedule provides weekday recurrence primitives for trackers.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day of the week in calendar numbering: Sunday=1 .. Saturday=7.
// This matches the numbering used in the stored schedule encoding. Display
// ordering is separate — see WeekOrder.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekOrder is the canonical display ordering, starting with Monday.
var WeekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = map[Weekday]string{
	Sunday:    "Sunday",
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

// String returns the full English day name, or "Weekday(n)" if out of range.
func (d Weekday) String() string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// Short returns the three-letter abbreviation (e.g. "Mon").
func (d Weekday) Short() string {
	if name, ok := dayNames[d]; ok {
		return name[:3]
	}
	return "???"
}

// Valid reports whether d is one of the seven defined weekdays.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// FromTime resolves a point in time to its Weekday in calendar numbering.
func FromTime(t time.Time) Weekday {
	return Weekday(int(t.Weekday()) + 1)
}

// DayOf truncates a point in time to its calendar day. Two timestamps on the
// same calendar day normalize to the same value regardless of time component.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Encode serializes a weekday set to its stored form: comma-separated
// calendar numbers in ascending order, e.g. "2,4,6" for Mon/Wed/Fri.
func Encode(days []Weekday) string {
	seen := [8]bool{}
	for _, d := range days {
		if d.Valid() {
			seen[d] = true
		}
	}
	var parts []string
	for n := int(Sunday); n <= int(Saturday); n++ {
		if seen[n] {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	return strings.Join(parts, ",")
}

// Decode parses the stored form back into a weekday set. Components that are
// not valid weekday numbers are dropped rather than failing the whole value,
// so a damaged schedule degrades instead of wedging every read.
func Decode(s string) []Weekday {
	if s == "" {
		return nil
	}
	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		d := Weekday(n)
		if d.Valid() && !Contains(days, d) {
			days = append(days, d)
		}
	}
	return days
}

// Contains reports whether the set includes d.
func Contains(days []Weekday, d Weekday) bool {
	for _, have := range days {
		if have == d {
			return true
		}
	}
	return false
}

// Sorted returns the set in canonical Monday-first display order.
func Sorted(days []Weekday) []Weekday {
	var out []Weekday
	for _, d := range WeekOrder {
		if Contains(days, d) {
			out = append(out, d)
		}
	}
	return out
}

// ParseDays parses a human-entered weekday list such as "mon,wed,fri",
// "Monday,Tuesday" or raw calendar numbers "2,4,6". Used by the CLI.
func ParseDays(s string) ([]Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("schedule: empty weekday list")
	}
	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := parseDay(part)
		if err != nil {
			return nil, err
		}
		if !Contains(days, d) {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("schedule: empty weekday list")
	}
	return Sorted(days), nil
}

func parseDay(s string) (Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		d := Weekday(n)
		if !d.Valid() {
			return 0, fmt.Errorf("schedule: weekday number out of range: %d", n)
		}
		return d, nil
	}
	lower := strings.ToLower(s)
	for d, name := range dayNames {
		full := strings.ToLower(name)
		if lower == full || lower == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("schedule: unknown weekday: %q", s)
}
