package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/habitline/internal/db"
	"github.com/zulandar/habitline/internal/ledger"
	"github.com/zulandar/habitline/internal/models"
	"github.com/zulandar/habitline/internal/notify"
	"github.com/zulandar/habitline/internal/schedule"
	"github.com/zulandar/habitline/internal/tracker"
)

var wednesday = time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func mustCreate(t *testing.T, gdb *gorm.DB, name string, days ...schedule.Weekday) *models.Tracker {
	t.Helper()
	tr, err := tracker.Create(gdb, tracker.Opts{Name: name, Schedule: days, Category: "Test"})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return tr
}

func TestBuildDigest(t *testing.T) {
	gdb := testDB(t)

	water := mustCreate(t, gdb, "Water", schedule.Wednesday)
	mustCreate(t, gdb, "Run", schedule.Wednesday)
	mustCreate(t, gdb, "Piano", schedule.Thursday)

	if _, err := ledger.Toggle(gdb, water.ID, wednesday, wednesday); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	d, err := BuildDigest(gdb, wednesday)
	if err != nil {
		t.Fatalf("BuildDigest: %v", err)
	}
	if len(d.Due) != 2 {
		t.Fatalf("Due = %v, want 2 entries", d.Due)
	}
	if len(d.Remaining) != 1 || d.Remaining[0] != "Run" {
		t.Fatalf("Remaining = %v, want [Run]", d.Remaining)
	}
}

func TestBuildDigestEmpty(t *testing.T) {
	gdb := testDB(t)

	d, err := BuildDigest(gdb, wednesday)
	if err != nil {
		t.Fatalf("BuildDigest: %v", err)
	}
	if len(d.Due) != 0 || len(d.Remaining) != 0 {
		t.Fatalf("digest = %+v, want empty", d)
	}
}

type recordingNotifier struct {
	name   string
	digest notify.Digest
	sent   int
	err    error
}

func (r *recordingNotifier) Send(_ context.Context, d notify.Digest) error {
	r.sent++
	r.digest = d
	return r.err
}

func (r *recordingNotifier) Name() string { return r.name }

func TestFireDeliversToAllNotifiers(t *testing.T) {
	gdb := testDB(t)
	mustCreate(t, gdb, "Water", schedule.Wednesday)

	broken := &recordingNotifier{name: "broken", err: errors.New("boom")}
	ok := &recordingNotifier{name: "ok"}

	if err := Fire(context.Background(), gdb, []notify.Notifier{broken, ok}, wednesday); err != nil {
		t.Fatalf("Fire: %v", err)
	}
	if broken.sent != 1 || ok.sent != 1 {
		t.Fatalf("sent = %d/%d, want 1/1", broken.sent, ok.sent)
	}
	if len(ok.digest.Due) != 1 || ok.digest.Due[0] != "Water" {
		t.Fatalf("digest.Due = %v, want [Water]", ok.digest.Due)
	}
}

func TestRunRejectsInvalidCron(t *testing.T) {
	gdb := testDB(t)
	err := Run(context.Background(), Opts{DB: gdb, Cron: "not a cron"})
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	gdb := testDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, Opts{DB: gdb, Cron: "0 9 * * *"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
