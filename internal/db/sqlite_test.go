package db

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		mode   Mode
		txlock bool
	}{
		{ModeWrite, true},
		{ModeRead, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			dsn := buildDSN("/tmp/h.sqlite", tc.mode)
			assert.True(t, strings.HasPrefix(dsn, "/tmp/h.sqlite?"))
			assert.Contains(t, dsn, "_journal_mode=WAL")
			assert.Contains(t, dsn, "_busy_timeout=5000")
			assert.Contains(t, dsn, "_synchronous=NORMAL")
			assert.Contains(t, dsn, "_foreign_keys=on")
			assert.Equal(t, tc.txlock, strings.Contains(dsn, "_txlock=immediate"))
		})
	}
}

func TestOpenSQLite_InvalidMode(t *testing.T) {
	_, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "h.db"), "append", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SQLite mode")
}

func TestOpenSQLite_WritePool(t *testing.T) {
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "h.db"), ModeWrite, 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", strings.ToLower(journalMode))

	var busyTimeout, fk int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 5000, busyTimeout)
	assert.Equal(t, 1, fk)

	// maxOpen is ignored for the write pool.
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpenSQLite_ReadPoolDefault(t *testing.T) {
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "h.db"), ModeRead, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.Equal(t, 4, db.Stats().MaxOpenConnections)
}

func TestOpenSQLite_InvalidPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "/nonexistent/dir/h.db", ModeWrite, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping sqlite")

	_, _, err = OpenSQLitePair(context.Background(), "/nonexistent/dir/h.db", 4)
	require.Error(t, err)
}

func TestOpenSQLitePair_ConcurrentReads(t *testing.T) {
	writeDB, readDB, err := OpenSQLitePair(context.Background(), filepath.Join(t.TempDir(), "h.db"), 4)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writeDB.Close()
		_ = readDB.Close()
	})

	_, err = writeDB.Exec("CREATE TABLE nums (n INTEGER)")
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err = writeDB.Exec("INSERT INTO nums (n) VALUES (?)", i)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	counts := make([]int, 8)
	errs := make([]error, 8)
	for i := range counts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = readDB.QueryRow("SELECT count(*) FROM nums").Scan(&counts[idx])
		}(i)
	}
	wg.Wait()
	for i := range counts {
		assert.NoError(t, errs[i], "reader %d", i)
		assert.Equal(t, 50, counts[i], "reader %d", i)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	writeDB, _ := OpenTestSQLite(t)

	var name string
	require.NoError(t, writeDB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'history'").Scan(&name))
	assert.Equal(t, "history", name)

	applied, err := RunMigrations(context.Background(), writeDB)
	require.NoError(t, err)
	assert.Zero(t, applied)
}
