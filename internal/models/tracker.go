package models

import "time"

// Tracker is a user-defined recurring habit. The id is assigned at creation
// and never changes; every other field is replaced wholesale by an edit.
type Tracker struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"size:38;not null"`
	Emoji      string `gorm:"size:16"`
	Color      string `gorm:"size:7"` // RGB hex, e.g. "#FD4C49"
	Schedule   string `gorm:"size:32;not null"` // comma-separated weekday numbers, Sunday=1
	CategoryID uint   `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category Category `gorm:"foreignKey:CategoryID"`
}
