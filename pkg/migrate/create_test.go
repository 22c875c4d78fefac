package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSQLMigration_WritesTemplate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	path, err := createSQLMigrationAt(dir, "Add Chemical  Locations!", now)
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Base(path) != "20260304050607_add_chemical_locations.sql" {
		t.Fatalf("unexpected filename %q", filepath.Base(path))
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := validateBody(string(body)); err != nil {
		t.Fatalf("template invalid: %v", err)
	}

	if _, err := createSQLMigrationAt(dir, "add chemical locations", now); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestCreateSQLMigration_RejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatalf("expected error for unusable name")
	}
}

func TestValidateDir_RejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"bad_name.sql":                    "-- +goose Up\n-- +goose Down\n",
		"20260101000000_missing_down.sql": "-- +goose Up\nSELECT 1;\n",
		"20260101000000_swapped.sql":      "-- +goose Down\n-- +goose Up\n",
		"20260101000000_unbalanced.sql":   "-- +goose Up\n-- +goose StatementBegin\n-- +goose Down\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := ValidateDir(dir); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateDir_DuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\n-- +goose Down\n"
	for _, name := range []string{"20260101000000_a.sql", "20260101000000_b.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	if _, err := parseVersion(""); err == nil {
		t.Fatalf("expected error for empty version")
	}
	if _, err := parseVersion("2026"); err == nil {
		t.Fatalf("expected error for short version")
	}
	v, err := parseVersion("20260105090000")
	if err != nil || v != 20260105090000 {
		t.Fatalf("unexpected parse result %d %v", v, err)
	}
}
