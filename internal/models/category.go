package models

import "time"

// Category is a title-keyed grouping of trackers. Rows are created implicitly
// the first time a tracker names a new title; the title is unique and acts as
// the find-or-create key. The "pinned" group shown at the top of the day view
// is synthetic and never stored here.
type Category struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:128;uniqueIndex;not null"`
	CreatedAt time.Time

	Trackers []Tracker `gorm:"foreignKey:CategoryID"`
}
