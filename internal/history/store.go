// Package history records decompositions and statement executions in the
// SQLite metastore.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sqlsplit/internal/domain"
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements domain.HistoryRepository. Writes go through a
// single-connection pool; reads use a separate pool.
type Store struct {
	writeDB *sql.DB
	readDB  *sql.DB
	now     func() time.Time
}

// NewStore creates a store over an already migrated metastore. readDB may be
// nil, in which case writeDB serves reads too.
func NewStore(writeDB, readDB *sql.DB) *Store {
	if readDB == nil {
		readDB = writeDB
	}
	return &Store{writeDB: writeDB, readDB: readDB, now: time.Now}
}

var _ domain.HistoryRepository = (*Store)(nil)

// Insert stores e, filling in ID and CreatedAt when they are unset.
func (s *Store) Insert(ctx context.Context, e *domain.HistoryEntry) error {
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()
	_, err := s.writeDB.ExecContext(ctx, `
		INSERT INTO history (id, created_at, kind, dialect, sql_text, statement_count, status, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.Format(timeLayout), string(e.Kind), e.Dialect, e.SQL,
		e.StatementCount, string(e.Status), e.Error, e.DurationMs)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

const selectColumns = `id, created_at, kind, dialect, sql_text, statement_count, status, error_message, duration_ms`

// Get returns one entry or a NotFoundError.
func (s *Store) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	row := s.readDB.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM history WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("history entry %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return e, nil
}

// List returns one page of entries, newest first, and the total number of
// entries matching the filter.
func (s *Store) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, int64, error) {
	where, args := filterClause(filter)

	var total int64
	if err := s.readDB.QueryRowContext(ctx, `SELECT count(*) FROM history`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	pageArgs := append(args, filter.Page.Limit(), filter.Page.Offset())
	rows, err := s.readDB.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM history`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	return entries, total, nil
}

// Prune deletes entries created before olderThan.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.writeDB.ExecContext(ctx, `DELETE FROM history WHERE created_at < ?`,
		olderThan.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return n, nil
}

func filterClause(f domain.HistoryFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.Kind != nil {
		conds = append(conds, "kind = ?")
		args = append(args, string(*f.Kind))
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.From.UTC().Format(timeLayout))
	}
	if f.To != nil {
		conds = append(conds, "created_at < ?")
		args = append(args, f.To.UTC().Format(timeLayout))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(sc scanner) (*domain.HistoryEntry, error) {
	var (
		e            domain.HistoryEntry
		createdAt    string
		kind, status string
	)
	if err := sc.Scan(&e.ID, &createdAt, &kind, &e.Dialect, &e.SQL,
		&e.StatementCount, &status, &e.Error, &e.DurationMs); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = t
	e.Kind = domain.HistoryKind(kind)
	e.Status = domain.HistoryStatus(status)
	return &e, nil
}
