package models

import "time"

// TrackerRecord marks a tracker as completed on one calendar day. Day always
// holds a midnight-truncated value (schedule.DayOf); the composite primary
// key gives the ledger set semantics — a pair is either present or absent,
// and duplicate inserts collapse to one row.
type TrackerRecord struct {
	TrackerID string    `gorm:"primaryKey;size:36"`
	Day       time.Time `gorm:"primaryKey"`

	Tracker Tracker `gorm:"foreignKey:TrackerID;constraint:OnDelete:CASCADE"`
}
