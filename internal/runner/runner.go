// Package runner executes a single extracted statement against the
// configured database and materializes its rows.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/rowset"
	"sqlsplit/internal/sqlparse"
)

// Config configures Open.
type Config struct {
	URL          string
	MaxOpenConns int
	QueryTimeout time.Duration
	MaxRows      int
}

// Runner owns a connection pool to the target database.
type Runner struct {
	db      *sql.DB
	dialect sqlparse.Dialect
	timeout time.Duration
	maxRows int
	logger  *slog.Logger
}

// Open creates the pool. No connection is made until the first query or
// Ping.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Runner, error) {
	t, err := resolve(cfg.URL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(t.driver, t.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", t.driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	logger = logger.With("component", "runner", "driver", t.driver)
	logger.InfoContext(ctx, "database configured", "url", redact(cfg.URL), "dialect", t.dialect.String())
	return &Runner{
		db:      db,
		dialect: t.dialect,
		timeout: cfg.QueryTimeout,
		maxRows: cfg.MaxRows,
		logger:  logger,
	}, nil
}

// Dialect returns the SQL dialect of the target database.
func (r *Runner) Dialect() sqlparse.Dialect {
	return r.dialect
}

// Ping checks that the database is reachable.
func (r *Runner) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the pool.
func (r *Runner) Close() error {
	return r.db.Close()
}

// Query runs one statement and materializes its rows. Failures reported by
// the database are returned as *domain.ExecutionError.
func (r *Runner) Query(ctx context.Context, statement string) (*domain.QueryResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, &domain.ExecutionError{Statement: statement, Err: err}
	}
	defer rows.Close() //nolint:errcheck

	res, err := rowset.Collect(rows, r.dialect,
		rowset.WithMaxRows(r.maxRows),
		rowset.WithLogger(r.logger))
	if err != nil {
		return nil, &domain.ExecutionError{Statement: statement, Err: err}
	}
	r.logger.DebugContext(ctx, "statement executed",
		"rows", res.RowCount,
		"truncated", res.Truncated,
		"duration_ms", time.Since(start).Milliseconds())
	return res, nil
}
