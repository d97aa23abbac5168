package models

import "time"

// PinnedTracker is one entry in the user's pinned set. Pinned trackers are
// promoted into a synthetic leading section of the day view; the entry is
// removed when its tracker is deleted.
type PinnedTracker struct {
	TrackerID string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time

	Tracker Tracker `gorm:"foreignKey:TrackerID;constraint:OnDelete:CASCADE"`
}
