package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/delanoso/safetyhub/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestCompaniesUsersMigration(t *testing.T) {
	assertContains(t, readMigration(t, "create_companies_users"), []string{
		"CREATE TABLE IF NOT EXISTS companies",
		"CREATE TABLE IF NOT EXISTS users",
		"CHECK (role IN ('user', 'admin', 'super'))",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email))",
		"DROP TABLE IF EXISTS companies",
	})
}

func TestPPEMigrationGuardsStock(t *testing.T) {
	assertContains(t, readMigration(t, "create_ppe"), []string{
		"CREATE TABLE IF NOT EXISTS ppe_stock",
		"CHECK (quantity >= 0)",
		"FOREIGN KEY (person_id) REFERENCES ppe_persons(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ppe_issues_sign_token",
		"DROP TABLE IF EXISTS ppe_issues",
	})
}

func TestAppointmentTokensAreUnique(t *testing.T) {
	assertContains(t, readMigration(t, "create_appointments_medicals"), []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_appointer_token",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_appointee_token",
		"'pending_appointer', 'pending_appointee'",
	})
}

func TestCommitteeMigrationBallotConstraints(t *testing.T) {
	assertContains(t, readMigration(t, "create_committee_ncr_documents"), []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_she_voters_token ON she_voters (token)",
		"CHECK ((candidate_id IS NULL) = (voted_at IS NULL))",
		"FOREIGN KEY (item_id) REFERENCES ncr_items(id) ON DELETE CASCADE",
		"folder_id BIGINT REFERENCES library_folders(id) ON DELETE CASCADE",
	})
}

func TestRegistersMigrationCascades(t *testing.T) {
	assertContains(t, readMigration(t, "create_registers"), []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_contractors_upload_token",
		"FOREIGN KEY (schedule_id) REFERENCES maintenance_schedules(id) ON DELETE CASCADE",
		"FOREIGN KEY (item_id) REFERENCES maintenance_items(id) ON DELETE CASCADE",
		"quantity NUMERIC(14,3)",
	})
}

func TestPPEStockUniqueMigration(t *testing.T) {
	assertContains(t, readMigration(t, "unique_ppe_stock"), []string{
		"GROUP BY item_type_id, size",
		"DROP INDEX IF EXISTS idx_ppe_stock_match",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ppe_stock_item_size ON ppe_stock (item_type_id, size)",
		"DROP INDEX IF EXISTS idx_ppe_stock_item_size",
	})
}
