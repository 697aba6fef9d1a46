package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/julianstephens/weekgrid/migrations"
)

// setupPostgresTestDB opens the database named by POSTGRES_TEST_URL.
// Example: POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	dropAll := func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS intervals")
		db.Exec("DROP TABLE IF EXISTS settings")
	}
	dropAll()
	t.Cleanup(func() {
		dropAll()
		db.Close()
	})
	return db
}

func TestPostgresEmbeddedMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)

	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatal(err)
	}
	runner, err := NewRunner(db, subFS, DriverPostgres)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatal(err)
	}
	if count != latest {
		t.Errorf("applied %d migrations, want %d", count, latest)
	}

	var exists bool
	err = db.QueryRow(`SELECT EXISTS (SELECT FROM information_schema.columns
		WHERE table_name = 'intervals' AND column_name = 'start_ms')`).Scan(&exists)
	if err != nil {
		t.Fatalf("failed to inspect intervals: %v", err)
	}
	if !exists {
		t.Error("intervals.start_ms was not created")
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v; want 0, nil", count, err)
	}
}

func TestPostgresMigrationRollbackOnError(t *testing.T) {
	db := setupPostgresTestDB(t)

	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_bad.sql": `
			CREATE TABLE settings (key TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), DriverPostgres)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
}
