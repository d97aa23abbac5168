package models

import (
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestTracker_Fields(t *testing.T) {
	typ := reflect.TypeOf(Tracker{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "Name", "size:38")
	assertGormTag(t, typ, "Name", "not null")
	assertGormTag(t, typ, "Emoji", "size:16")
	assertGormTag(t, typ, "Color", "size:7")
	assertGormTag(t, typ, "Schedule", "not null")
	assertGormTag(t, typ, "CategoryID", "index")
	assertGormTag(t, typ, "CategoryID", "not null")

	assertFieldType(t, typ, "ID", "string")
	assertFieldType(t, typ, "CategoryID", "uint")
	assertFieldType(t, typ, "CreatedAt", "time.Time")
	assertFieldType(t, typ, "UpdatedAt", "time.Time")
}

func TestCategory_Fields(t *testing.T) {
	typ := reflect.TypeOf(Category{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Title", "uniqueIndex")
	assertGormTag(t, typ, "Title", "not null")

	assertFieldType(t, typ, "ID", "uint")
	assertFieldType(t, typ, "Title", "string")
	assertFieldType(t, typ, "Trackers", "[]models.Tracker")
}

func TestTrackerRecord_Fields(t *testing.T) {
	typ := reflect.TypeOf(TrackerRecord{})

	// Composite primary key carries the set semantics.
	assertGormTag(t, typ, "TrackerID", "primaryKey")
	assertGormTag(t, typ, "Day", "primaryKey")
	assertGormTag(t, typ, "Tracker", "OnDelete:CASCADE")

	assertFieldType(t, typ, "TrackerID", "string")
	assertFieldType(t, typ, "Day", "time.Time")
}

func TestPinnedTracker_Fields(t *testing.T) {
	typ := reflect.TypeOf(PinnedTracker{})

	assertGormTag(t, typ, "TrackerID", "primaryKey")
	assertGormTag(t, typ, "Tracker", "OnDelete:CASCADE")

	assertFieldType(t, typ, "TrackerID", "string")
	assertFieldType(t, typ, "CreatedAt", "time.Time")
}
