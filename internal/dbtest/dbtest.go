// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"focusboard/backend/internal/db"
)

func Open(t testing.TB) *sql.DB {
	t.Helper()
	return OpenWithDriver(t, db.DriverCGO)
}

func OpenWithDriver(t testing.TB, driver string) *sql.DB {
	t.Helper()

	database, err := db.Open(driver, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := db.RunMigrations(database, db.MigrationsFS("")); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}
