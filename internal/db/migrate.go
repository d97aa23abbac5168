package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zulandar/habitline/internal/models"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Tracker{},
		&models.TrackerRecord{},
		&models.PinnedTracker{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedCategories upserts starter category rows from configuration. Existing
// rows with the same title are left untouched, so re-running init is safe.
func SeedCategories(db *gorm.DB, titles []string) error {
	for _, title := range titles {
		if title == "" {
			continue
		}
		cat := models.Category{Title: title}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).Create(&cat)
		if result.Error != nil {
			return fmt.Errorf("db: seed category %q: %w", title, result.Error)
		}
	}
	return nil
}
