package service

import (
	"context"
	"log/slog"
	"time"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/params"
	"sqlsplit/internal/sqlparse"
)

// StatementRunner executes one statement against the target database.
type StatementRunner interface {
	Dialect() sqlparse.Dialect
	Query(ctx context.Context, statement string) (*domain.QueryResult, error)
}

// QueryResult is the outcome of running one statement.
type QueryResult struct {
	SQL string `json:"sql"` // statement as executed, after parameter substitution
	*domain.QueryResult
}

// QueryService substitutes parameters into an extracted statement, runs it
// and records the execution in the history.
type QueryService struct {
	runner  StatementRunner
	history domain.HistoryRepository
	pattern domain.ParameterPattern
	logger  *slog.Logger
}

// NewQueryService creates a QueryService. runner may be nil when no target
// database is configured; Run then fails with *domain.UnavailableError.
func NewQueryService(runner StatementRunner, history domain.HistoryRepository, pattern domain.ParameterPattern, logger *slog.Logger) *QueryService {
	return &QueryService{
		runner:  runner,
		history: history,
		pattern: pattern,
		logger:  logger.With("component", "query"),
	}
}

// Enabled reports whether statements can be executed.
func (s *QueryService) Enabled() bool {
	return s.runner != nil
}

// Dialect is the target database's dialect, or Generic when execution is
// disabled.
func (s *QueryService) Dialect() sqlparse.Dialect {
	if s.runner == nil {
		return sqlparse.Generic
	}
	return s.runner.Dialect()
}

// DefaultPattern returns the parameter pattern used when a request names none.
func (s *QueryService) DefaultPattern() domain.ParameterPattern {
	return s.pattern
}

// Run executes req.SQL after substituting its parameters.
func (s *QueryService) Run(ctx context.Context, req domain.QueryRequest) (*QueryResult, error) {
	if s.runner == nil {
		return nil, domain.ErrUnavailable("statement execution is disabled: no database configured")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pattern := req.Pattern
	if pattern == "" {
		pattern = s.pattern
	}
	statement := params.Replace(req.SQL, pattern, req.Parameters)

	start := time.Now()
	res, err := s.runner.Query(ctx, statement)
	duration := time.Since(start)

	entry := &domain.HistoryEntry{
		Kind:       domain.HistoryQuery,
		Dialect:    s.runner.Dialect().String(),
		SQL:        statement,
		Status:     domain.StatusOK,
		DurationMs: duration.Milliseconds(),
	}
	if err != nil {
		entry.Status = domain.StatusError
		entry.Error = err.Error()
		recordHistory(ctx, s.history, s.logger, entry)
		s.logger.InfoContext(ctx, "statement failed",
			"error", err, "request_id", domain.RequestIDFromContext(ctx))
		return nil, err
	}
	entry.StatementCount = res.RowCount
	recordHistory(ctx, s.history, s.logger, entry)

	s.logger.DebugContext(ctx, "statement executed",
		"rows", res.RowCount,
		"truncated", res.Truncated,
		"duration", duration)
	return &QueryResult{SQL: statement, QueryResult: res}, nil
}
