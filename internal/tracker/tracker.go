// Package tracker provides tracker lifecycle operations.
package tracker

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/schedule"
)

// MaxNameLength is the longest allowed tracker name, in characters.
const MaxNameLength = 38

var (
	// ErrNotFound is returned when an operation references an unknown tracker id.
	ErrNotFound = errors.New("tracker: not found")

	// ErrNameRequired is returned when a tracker name is empty.
	ErrNameRequired = errors.New("tracker: name is required")

	// ErrNameTooLong is returned when a tracker name exceeds MaxNameLength characters.
	ErrNameTooLong = errors.New("tracker: name exceeds 38 characters")

	// ErrEmptySchedule is returned when a tracker has no scheduled weekdays.
	ErrEmptySchedule = errors.New("tracker: schedule must include at least one weekday")

	// ErrCategoryRequired is returned when no category title is given.
	ErrCategoryRequired = errors.New("tracker: category is required")
)

// Opts holds the mutable fields of a tracker, used for both create and edit.
type Opts struct {
	Name     string
	Emoji    string
	Color    string // RGB hex, e.g. "#FD4C49"
	Schedule []schedule.Weekday
	Category string // category title, find-or-create key
}

// validate enforces the form-level rules before anything reaches the store.
func validate(opts Opts) error {
	if opts.Name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(opts.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(opts.Schedule) == 0 {
		return ErrEmptySchedule
	}
	if opts.Category == "" {
		return ErrCategoryRequired
	}
	return nil
}

// Create validates opts and inserts a new tracker with a generated id,
// creating the category on first use of its title.
func Create(db *gorm.DB, opts Opts) (*models.Tracker, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	var created models.Tracker
	err := db.Transaction(func(tx *gorm.DB) error {
		cat, err := FindOrCreateCategory(tx, opts.Category)
		if err != nil {
			return err
		}

		created = models.Tracker{
			ID:         uuid.NewString(),
			Name:       opts.Name,
			Emoji:      opts.Emoji,
			Color:      opts.Color,
			Schedule:   schedule.Encode(opts.Schedule),
			CategoryID: cat.ID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("tracker: create %q: %w", opts.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces all mutable fields of the tracker with the given id,
// preserving the id. Returns ErrNotFound if the id is unknown.
func Update(db *gorm.DB, id string, opts Opts) (*models.Tracker, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	var updated models.Tracker
	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := Get(tx, id)
		if err != nil {
			return err
		}

		cat, err := FindOrCreateCategory(tx, opts.Category)
		if err != nil {
			return err
		}

		existing.Name = opts.Name
		existing.Emoji = opts.Emoji
		existing.Color = opts.Color
		existing.Schedule = schedule.Encode(opts.Schedule)
		existing.CategoryID = cat.ID
		existing.Category = *cat
		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("tracker: update %s: %w", id, err)
		}
		updated = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a tracker along with its completion records and pin entry.
// Deleting an id that does not exist is not an error.
func Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tracker_id = ?", id).Delete(&models.TrackerRecord{}).Error; err != nil {
			return fmt.Errorf("tracker: delete records for %s: %w", id, err)
		}
		if err := tx.Where("tracker_id = ?", id).Delete(&models.PinnedTracker{}).Error; err != nil {
			return fmt.Errorf("tracker: delete pin for %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Tracker{}).Error; err != nil {
			return fmt.Errorf("tracker: delete %s: %w", id, err)
		}
		return nil
	})
}

// Get fetches one tracker with its category. Returns ErrNotFound for an
// unknown id.
func Get(db *gorm.DB, id string) (*models.Tracker, error) {
	var t models.Tracker
	if err := db.Preload("Category").Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("tracker: get %s: %w", id, err)
	}
	return &t, nil
}

// List returns all categories with their trackers, categories in creation
// order and trackers in creation order within each category. Categories
// without trackers are included; display layers drop them.
func List(db *gorm.DB) ([]models.Category, error) {
	var cats []models.Category
	err := db.
		Preload("Trackers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("id ASC").
		Find(&cats).Error
	if err != nil {
		return nil, fmt.Errorf("tracker: list categories: %w", err)
	}
	return cats, nil
}

// FindOrCreateCategory resolves a category by exact title match, creating it
// on first use. The returned row carries the stable id callers should keep.
func FindOrCreateCategory(db *gorm.DB, title string) (*models.Category, error) {
	if title == "" {
		return nil, ErrCategoryRequired
	}
	var cat models.Category
	err := db.Where("title = ?", title).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("tracker: find category %q: %w", title, err)
	}

	cat = models.Category{Title: title}
	if err := db.Create(&cat).Error; err != nil {
		return nil, fmt.Errorf("tracker: create category %q: %w", title, err)
	}
	return &cat, nil
}
