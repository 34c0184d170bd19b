package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a migrated write/read pool pair in t.TempDir() and
// closes both when the test ends.
func OpenTestSQLite(t testing.TB) (writeDB, readDB *sql.DB) {
	t.Helper()
	ctx := context.Background()

	writeDB, readDB, err := OpenSQLitePair(ctx, filepath.Join(t.TempDir(), "history.sqlite"), 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})

	if _, err := RunMigrations(ctx, writeDB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return writeDB, readDB
}
