package service

import (
	"context"
	"sync"
	"time"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/sqlparse"
)

// === History Repository Mock ===

type mockHistoryRepo struct {
	mu       sync.Mutex
	inserted []domain.HistoryEntry

	insertFn func(ctx context.Context, e *domain.HistoryEntry) error
	getFn    func(ctx context.Context, id string) (*domain.HistoryEntry, error)
	listFn   func(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, int64, error)
}

func (m *mockHistoryRepo) Insert(ctx context.Context, e *domain.HistoryEntry) error {
	m.mu.Lock()
	m.inserted = append(m.inserted, *e)
	m.mu.Unlock()
	if m.insertFn != nil {
		return m.insertFn(ctx, e)
	}
	return nil
}

func (m *mockHistoryRepo) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	panic("unexpected call to mockHistoryRepo.Get")
}

func (m *mockHistoryRepo) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	panic("unexpected call to mockHistoryRepo.List")
}

func (m *mockHistoryRepo) Prune(_ context.Context, _ time.Time) (int64, error) {
	panic("unexpected call to mockHistoryRepo.Prune")
}

func (m *mockHistoryRepo) entries() []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.HistoryEntry(nil), m.inserted...)
}

// === Statement Runner Mock ===

type mockRunner struct {
	queryFn  func(ctx context.Context, statement string) (*domain.QueryResult, error)
	executed []string
}

func (m *mockRunner) Dialect() sqlparse.Dialect { return sqlparse.Postgres }

func (m *mockRunner) Query(ctx context.Context, statement string) (*domain.QueryResult, error) {
	m.executed = append(m.executed, statement)
	if m.queryFn != nil {
		return m.queryFn(ctx, statement)
	}
	panic("unexpected call to mockRunner.Query")
}
