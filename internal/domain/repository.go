package domain

import (
	"context"
	"time"
)

// HistoryRepository persists decomposition and query history.
type HistoryRepository interface {
	Insert(ctx context.Context, e *HistoryEntry) error
	Get(ctx context.Context, id string) (*HistoryEntry, error)
	List(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, int64, error)
	// Prune deletes entries created before olderThan and returns how many
	// were removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
