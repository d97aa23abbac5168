// Package stats computes completion statistics across the whole ledger.
package stats

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/schedule"
)

// Report holds computed metrics over all trackers and completion records.
type Report struct {
	TotalCompleted int     // completion records across all trackers and days
	PerfectDays    int     // days where every due tracker was completed
	BestStreak     int     // longest run of consecutive perfect days
	AverageDaily   float64 // completions per day, over days with at least one completion
	PerTracker     []TrackerCount
}

// TrackerCount is one tracker's total completion count.
type TrackerCount struct {
	ID    string
	Name  string
	Count int
}

// Compute builds a Report from the current store contents. A day counts as
// perfect when at least one tracker was due and every due tracker has a
// completion record for it; due-ness is judged against current schedules.
func Compute(db *gorm.DB) (*Report, error) {
	var trackers []models.Tracker
	if err := db.Order("created_at ASC, id ASC").Find(&trackers).Error; err != nil {
		return nil, fmt.Errorf("stats: load trackers: %w", err)
	}
	var records []models.TrackerRecord
	if err := db.Order("day ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("stats: load records: %w", err)
	}

	report := &Report{TotalCompleted: len(records)}

	counts := make(map[string]int)
	byDay := make(map[time.Time]map[string]bool)
	for _, rec := range records {
		counts[rec.TrackerID]++
		day := schedule.DayOf(rec.Day)
		if byDay[day] == nil {
			byDay[day] = make(map[string]bool)
		}
		byDay[day][rec.TrackerID] = true
	}

	for _, tr := range trackers {
		report.PerTracker = append(report.PerTracker, TrackerCount{
			ID:    tr.ID,
			Name:  tr.Name,
			Count: counts[tr.ID],
		})
	}

	if len(byDay) > 0 {
		report.AverageDaily = float64(len(records)) / float64(len(byDay))
	}

	perfect := perfectDays(trackers, byDay)
	report.PerfectDays = len(perfect)
	report.BestStreak = bestStreak(perfect)
	return report, nil
}

// perfectDays returns the sorted days on which every due tracker completed.
func perfectDays(trackers []models.Tracker, byDay map[time.Time]map[string]bool) []time.Time {
	var days []time.Time
	for day, completed := range byDay {
		weekday := schedule.FromTime(day)
		due := 0
		missed := false
		for _, tr := range trackers {
			if !schedule.Contains(schedule.Decode(tr.Schedule), weekday) {
				continue
			}
			due++
			if !completed[tr.ID] {
				missed = true
				break
			}
		}
		if due > 0 && !missed {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// bestStreak returns the longest run of consecutive calendar days.
func bestStreak(days []time.Time) int {
	best, run := 0, 0
	for i, day := range days {
		if i > 0 && day.Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
