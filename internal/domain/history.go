package domain

import "time"

// HistoryKind says which operation produced a history entry.
type HistoryKind string

const (
	HistoryDecompose HistoryKind = "decompose"
	HistoryQuery     HistoryKind = "query"
)

// HistoryStatus is the outcome of a recorded operation.
type HistoryStatus string

const (
	StatusOK    HistoryStatus = "ok"
	StatusError HistoryStatus = "error"
)

// HistoryEntry records one decomposition or one statement execution.
// StatementCount is the number of extracted statements for a decomposition
// and the number of materialized rows for a query.
type HistoryEntry struct {
	ID             string
	CreatedAt      time.Time
	Kind           HistoryKind
	Dialect        string
	SQL            string
	StatementCount int
	Status         HistoryStatus
	Error          string
	DurationMs     int64
}

// HistoryFilter narrows a history listing. Nil fields do not filter.
type HistoryFilter struct {
	Kind   *HistoryKind
	Status *HistoryStatus
	From   *time.Time
	To     *time.Time
	Page   PageRequest
}
