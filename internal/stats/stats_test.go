package stats

import (
	"math"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/habitline/internal/ledger"
	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/tracker"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Tracker{},
		&models.TrackerRecord{},
		&models.PinnedTracker{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, name string, days ...schedule.Weekday) *models.Tracker {
	t.Helper()
	tr, err := tracker.Create(db, tracker.Opts{Name: name, Schedule: days, Category: "Health"})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return tr
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 10, 0, 0, 0, time.UTC)
}

func TestCompute_Empty(t *testing.T) {
	db := testDB(t)

	report, err := Compute(db)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if report.TotalCompleted != 0 || report.PerfectDays != 0 || report.BestStreak != 0 || report.AverageDaily != 0 {
		t.Errorf("empty store report = %+v, want zeros", report)
	}
}

func TestCompute_TotalsAndPerTracker(t *testing.T) {
	db := testDB(t)
	daily := []schedule.Weekday{
		schedule.Sunday, schedule.Monday, schedule.Tuesday, schedule.Wednesday,
		schedule.Thursday, schedule.Friday, schedule.Saturday,
	}
	run := seed(t, db, "Run", daily...)
	swim := seed(t, db, "Swim", daily...)

	now := day(2025, 6, 5)
	for _, d := range []time.Time{day(2025, 6, 2), day(2025, 6, 3), day(2025, 6, 4)} {
		if err := ledger.Add(db, run.ID, d); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := ledger.Add(db, swim.ID, day(2025, 6, 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = now

	report, err := Compute(db)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if report.TotalCompleted != 4 {
		t.Errorf("TotalCompleted = %d, want 4", report.TotalCompleted)
	}
	if len(report.PerTracker) != 2 {
		t.Fatalf("PerTracker = %+v, want 2 entries", report.PerTracker)
	}
	if report.PerTracker[0].Name != "Run" || report.PerTracker[0].Count != 3 {
		t.Errorf("PerTracker[0] = %+v, want Run with 3", report.PerTracker[0])
	}
	if report.PerTracker[1].Name != "Swim" || report.PerTracker[1].Count != 1 {
		t.Errorf("PerTracker[1] = %+v, want Swim with 1", report.PerTracker[1])
	}

	// 4 completions over 3 distinct days.
	if math.Abs(report.AverageDaily-4.0/3.0) > 1e-9 {
		t.Errorf("AverageDaily = %f, want %f", report.AverageDaily, 4.0/3.0)
	}
}

func TestCompute_PerfectDaysAndStreak(t *testing.T) {
	db := testDB(t)
	daily := []schedule.Weekday{
		schedule.Sunday, schedule.Monday, schedule.Tuesday, schedule.Wednesday,
		schedule.Thursday, schedule.Friday, schedule.Saturday,
	}
	run := seed(t, db, "Run", daily...)
	swim := seed(t, db, "Swim", daily...)

	// Mon+Tue both trackers complete (perfect, consecutive); Wed only Run;
	// Fri both complete (perfect, but not adjacent to the Mon-Tue run).
	for _, d := range []time.Time{day(2025, 6, 2), day(2025, 6, 3), day(2025, 6, 6)} {
		if err := ledger.Add(db, run.ID, d); err != nil {
			t.Fatalf("add run: %v", err)
		}
		if err := ledger.Add(db, swim.ID, d); err != nil {
			t.Fatalf("add swim: %v", err)
		}
	}
	if err := ledger.Add(db, run.ID, day(2025, 6, 4)); err != nil {
		t.Fatalf("add run wed: %v", err)
	}

	report, err := Compute(db)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if report.PerfectDays != 3 {
		t.Errorf("PerfectDays = %d, want 3", report.PerfectDays)
	}
	if report.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2 (Mon-Tue)", report.BestStreak)
	}
}

func TestCompute_DuenessFollowsSchedule(t *testing.T) {
	db := testDB(t)
	run := seed(t, db, "Run", schedule.Monday)
	swim := seed(t, db, "Swim", schedule.Friday)

	// Monday 2025-06-02: only Run is due; completing Run alone is perfect.
	if err := ledger.Add(db, run.ID, day(2025, 6, 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = swim

	report, err := Compute(db)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if report.PerfectDays != 1 {
		t.Errorf("PerfectDays = %d, want 1 (Swim was not due on Monday)", report.PerfectDays)
	}
}
