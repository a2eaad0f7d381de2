package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestInvoiceMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_invoices.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS invoices",
		"FOREIGN KEY (party_id) REFERENCES parties(id)",
		"CHECK (type IN ('sale', 'purchase'))",
		"CHECK (status IN ('unpaid', 'partial', 'paid'))",
		"FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE",
		"CREATE TABLE IF NOT EXISTS invoice_sequence",
		"INSERT INTO invoice_sequence (id, value) VALUES (1, 0)",
		"DROP TABLE IF EXISTS invoices",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestPaymentMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_payments.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS payments",
		"CHECK (type IN ('in', 'out'))",
		"CHECK (amount > 0)",
		"FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS payments",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "not_versioned.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected error for unversioned filename")
	}
}
