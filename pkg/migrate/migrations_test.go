package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/orderview-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestOrderMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_order_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no order migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_details",
		"CREATE TABLE IF NOT EXISTS order_invoices",
		"CREATE TABLE IF NOT EXISTS customizations",
		"CREATE TABLE IF NOT EXISTS customized_data",
		"product_quantity_refunded INTEGER NOT NULL DEFAULT 0",
		"unit_price_tax_incl NUMERIC(20,6) NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_orders_updated_at",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_catalog_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS currencies",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS product_attributes",
		"CREATE TABLE IF NOT EXISTS stock_available",
		"CREATE TABLE IF NOT EXISTS pack_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_available_product_attribute",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Refund Reason!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_refund_reason.sql") {
		t.Fatalf("unexpected filename %q", filepath.Base(path))
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "refunds.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestCreateSQLMigrationSkipsTakenVersion(t *testing.T) {
	dir := t.TempDir()

	first, err := migrate.CreateSQLMigration(dir, "add refund reason")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := migrate.CreateSQLMigration(dir, "add refund reason")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct files, both %q", first)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migrations should validate: %v", err)
	}

	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "-- orderview migration ") {
		t.Fatalf("missing header in %q", string(data))
	}
}

func TestCreateSQLMigrationRejectsUnusableNames(t *testing.T) {
	for _, name := range []string{"", "!!!", "2026 backfill", strings.Repeat("x", 65)} {
		if _, err := migrate.CreateSQLMigration(t.TempDir(), name); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"refunds.sql":                           "-- +goose Up\n-- +goose Down\n",
		"20260101000000_swap_sections.sql":      "-- +goose Down\n-- +goose Up\n",
		"20260101000001_missing_down.sql":       "-- +goose Up\n",
		"20260101000002_ok.sql":                 "-- +goose Up\n-- +goose Down\n",
		"20260101000002_same_version_again.sql": "-- +goose Up\n-- +goose Down\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	err := migrate.ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"refunds.sql", "Down section before Up", "missing \"-- +goose Down\"", "duplicate migration version"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err.Error(), want)
		}
	}
}

func TestDialect(t *testing.T) {
	cases := map[string]string{"postgres": "postgres", "": "postgres", "SQLite": "sqlite3", "sqlite3": "sqlite3"}
	for in, want := range cases {
		if got := migrate.Dialect(in); got != want {
			t.Fatalf("Dialect(%q) = %q want %q", in, got, want)
		}
	}
}
