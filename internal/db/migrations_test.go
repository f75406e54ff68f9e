package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saadjs/biolink/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "biolink.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 2 {
		t.Fatalf("expected 2 migration versions, got %d", migrationCount)
	}

	var stateTableCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'app_state'`).Scan(&stateTableCount); err != nil {
		t.Fatalf("check app_state table: %v", err)
	}
	if stateTableCount != 1 {
		t.Fatalf("expected app_state table to exist")
	}

	var checksumColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('app_state') WHERE name = 'checksum'`).Scan(&checksumColCount); err != nil {
		t.Fatalf("check app_state checksum column: %v", err)
	}
	if checksumColCount != 1 {
		t.Fatalf("expected checksum column in app_state table")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}
