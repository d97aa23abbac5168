// Package ledger maintains completion records and the per-day toggle.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/tracker"
)

// ErrFutureDate is returned when a toggle targets a day after today.
var ErrFutureDate = errors.New("ledger: cannot complete a future date")

// Add marks a tracker completed on the given day. Days are normalized before
// storage; adding an already-present pair is a no-op, never a duplicate row.
func Add(db *gorm.DB, trackerID string, day time.Time) error {
	record := models.TrackerRecord{
		TrackerID: trackerID,
		Day:       schedule.DayOf(day),
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("ledger: add %s on %s: %w", trackerID, record.Day.Format("2006-01-02"), err)
	}
	return nil
}

// Remove clears a tracker's completion mark for the given day. Removing an
// absent pair is a no-op.
func Remove(db *gorm.DB, trackerID string, day time.Time) error {
	err := db.Where("tracker_id = ? AND day = ?", trackerID, schedule.DayOf(day)).
		Delete(&models.TrackerRecord{}).Error
	if err != nil {
		return fmt.Errorf("ledger: remove %s on %s: %w", trackerID, schedule.DayOf(day).Format("2006-01-02"), err)
	}
	return nil
}

// IsCompleted reports whether the tracker is marked completed on the given day.
func IsCompleted(db *gorm.DB, trackerID string, day time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.TrackerRecord{}).
		Where("tracker_id = ? AND day = ?", trackerID, schedule.DayOf(day)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("ledger: check %s: %w", trackerID, err)
	}
	return count > 0, nil
}

// CompletedCount returns the number of days the tracker has been completed.
func CompletedCount(db *gorm.DB, trackerID string) (int, error) {
	var count int64
	err := db.Model(&models.TrackerRecord{}).
		Where("tracker_id = ?", trackerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("ledger: count %s: %w", trackerID, err)
	}
	return int(count), nil
}

// CompletedOn returns the set of tracker ids completed on the given day.
func CompletedOn(db *gorm.DB, day time.Time) (map[string]bool, error) {
	var ids []string
	err := db.Model(&models.TrackerRecord{}).
		Where("day = ?", schedule.DayOf(day)).
		Pluck("tracker_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("ledger: completed on %s: %w", schedule.DayOf(day).Format("2006-01-02"), err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// FetchAll returns every completion record.
func FetchAll(db *gorm.DB) ([]models.TrackerRecord, error) {
	var records []models.TrackerRecord
	if err := db.Order("day ASC, tracker_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("ledger: fetch all: %w", err)
	}
	return records, nil
}

// Toggle flips the tracker's completion state for one day and returns the new
// state. The day and "now" are normalized first; a day after today fails with
// ErrFutureDate and leaves the ledger untouched. Unknown tracker ids fail with
// tracker.ErrNotFound. Each day toggles independently of every other day.
func Toggle(db *gorm.DB, trackerID string, day, now time.Time) (bool, error) {
	if schedule.DayOf(day).After(schedule.DayOf(now)) {
		return false, fmt.Errorf("%w: %s", ErrFutureDate, schedule.DayOf(day).Format("2006-01-02"))
	}

	var completed bool
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := tracker.Get(tx, trackerID); err != nil {
			return err
		}

		done, err := IsCompleted(tx, trackerID, day)
		if err != nil {
			return err
		}
		if done {
			if err := Remove(tx, trackerID, day); err != nil {
				return err
			}
			completed = false
			return nil
		}
		if err := Add(tx, trackerID, day); err != nil {
			return err
		}
		completed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}
