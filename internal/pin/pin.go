// Package pin manages the user's pinned-tracker set.
package pin

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/tracker"
)

// Pin adds a tracker to the pinned set. Pinning an already-pinned tracker is
// a no-op; pinning an unknown id fails with tracker.ErrNotFound.
func Pin(db *gorm.DB, trackerID string) error {
	if _, err := tracker.Get(db, trackerID); err != nil {
		return err
	}
	entry := models.PinnedTracker{TrackerID: trackerID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("pin: %s: %w", trackerID, err)
	}
	return nil
}

// Unpin removes a tracker from the pinned set. Unpinning an id that is not
// pinned is a no-op.
func Unpin(db *gorm.DB, trackerID string) error {
	if err := db.Where("tracker_id = ?", trackerID).Delete(&models.PinnedTracker{}).Error; err != nil {
		return fmt.Errorf("pin: unpin %s: %w", trackerID, err)
	}
	return nil
}

// Toggle flips a tracker's pin state and returns the new state.
func Toggle(db *gorm.DB, trackerID string) (bool, error) {
	pinned, err := IsPinned(db, trackerID)
	if err != nil {
		return false, err
	}
	if pinned {
		return false, Unpin(db, trackerID)
	}
	return true, Pin(db, trackerID)
}

// IsPinned reports whether the tracker is in the pinned set.
func IsPinned(db *gorm.DB, trackerID string) (bool, error) {
	var count int64
	err := db.Model(&models.PinnedTracker{}).Where("tracker_id = ?", trackerID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("pin: check %s: %w", trackerID, err)
	}
	return count > 0, nil
}

// IDs returns the pinned set as id lookups.
func IDs(db *gorm.DB) (map[string]bool, error) {
	var ids []string
	if err := db.Model(&models.PinnedTracker{}).Pluck("tracker_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("pin: list: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
