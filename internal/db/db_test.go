package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/habitline/internal/config"
	"github.com/zulandar/habitline/internal/models"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "default local",
			cfg:  config.DatabaseConfig{User: "root", Host: "127.0.0.1", Port: 3306, Name: "habitline"},
			want: "root@tcp(127.0.0.1:3306)/habitline?parseTime=true",
		},
		{
			name: "custom host and user",
			cfg:  config.DatabaseConfig{User: "alice", Host: "10.0.0.5", Port: 3307, Name: "habitline_alice"},
			want: "alice@tcp(10.0.0.5:3307)/habitline_alice?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(&tt.cfg); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSN_ParseTimeFlag(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{User: "root", Host: "localhost", Port: 3306, Name: "test"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN missing parseTime=true: %s", dsn)
	}
}

func TestOpen_SqliteMemoryAndMigrate(t *testing.T) {
	gdb, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}

	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	for _, table := range []string{"categories", "trackers", "tracker_records", "pinned_trackers"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("expected table %q after migrate", table)
		}
	}
}

func TestOpen_SqliteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitline.db")
	gdb, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("open sqlite file: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
}

func TestSeedCategories(t *testing.T) {
	gdb, err := Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := SeedCategories(gdb, []string{"Health", "Work", ""}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Repeat seeding must not duplicate or error.
	if err := SeedCategories(gdb, []string{"Health", "Home"}); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	var count int64
	if err := gdb.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("category count = %d, want 3 (Health, Work, Home)", count)
	}
}
