// Package service implements the application operations shared by the HTTP
// API, the UI and the CLI.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"sqlsplit/internal/decompose"
	"sqlsplit/internal/domain"
	"sqlsplit/internal/sqlparse"
)

// MaxBatchSize bounds the number of scripts in one batch request.
const MaxBatchSize = 100

// batchParallelism bounds concurrent decompositions within a batch.
const batchParallelism = 8

// DecomposedStatement is one extracted SELECT.
type DecomposedStatement struct {
	SQL       string `json:"sql"`
	WithIndex int    `json:"with_index"`
	Runnable  string `json:"runnable"`
}

// DecomposeResult is the outcome of decomposing one script.
type DecomposeResult struct {
	Dialect    string                `json:"dialect"`
	Withs      []string              `json:"withs"`
	Selects    []string              `json:"selects"`
	Statements []DecomposedStatement `json:"statements"`
}

// BatchItem is the outcome of one script of a batch. Exactly one of Result
// and Err is set.
type BatchItem struct {
	Result *DecomposeResult
	Err    error
}

// DecomposeService decomposes scripts and records them in the history.
type DecomposeService struct {
	history  domain.HistoryRepository
	dialect  sqlparse.Dialect
	maxDepth int
	logger   *slog.Logger
}

// NewDecomposeService creates a DecomposeService. history may be nil, in
// which case nothing is recorded.
func NewDecomposeService(history domain.HistoryRepository, dialect sqlparse.Dialect, maxDepth int, logger *slog.Logger) *DecomposeService {
	return &DecomposeService{
		history:  history,
		dialect:  dialect,
		maxDepth: maxDepth,
		logger:   logger.With("component", "decompose"),
	}
}

// DefaultDialect returns the dialect used for requests that name none.
func (s *DecomposeService) DefaultDialect() sqlparse.Dialect {
	return s.dialect
}

// Decompose parses one script and extracts its SELECT statements.
// Malformed SQL returns *domain.ParseError.
func (s *DecomposeService) Decompose(ctx context.Context, req domain.DecomposeRequest) (*DecomposeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	d, err := s.resolveDialect(req.Dialect)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := decompose.Run(req.SQL, d,
		decompose.WithMaxDepth(s.maxDepth),
		decompose.WithLogger(s.logger))
	duration := time.Since(start)

	entry := &domain.HistoryEntry{
		Kind:       domain.HistoryDecompose,
		Dialect:    d.String(),
		SQL:        req.SQL,
		Status:     domain.StatusOK,
		DurationMs: duration.Milliseconds(),
	}
	if err != nil {
		entry.Status = domain.StatusError
		entry.Error = err.Error()
		s.record(ctx, entry)
		s.logger.InfoContext(ctx, "decomposition failed",
			"dialect", d.String(), "error", err, "request_id", domain.RequestIDFromContext(ctx))
		return nil, err
	}
	entry.StatementCount = len(res.Statements)
	s.record(ctx, entry)

	s.logger.DebugContext(ctx, "script decomposed",
		"dialect", d.String(),
		"withs", len(res.Withs),
		"statements", len(res.Statements),
		"duration", duration)
	return newDecomposeResult(d, res), nil
}

// DecomposeBatch decomposes independent scripts concurrently. Items are
// returned in input order; a script that fails to parse fails only its own
// item. The returned error is non-nil only for an invalid batch or a
// cancelled context.
func (s *DecomposeService) DecomposeBatch(ctx context.Context, reqs []domain.DecomposeRequest) ([]BatchItem, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrValidation("batch is empty")
	}
	if len(reqs) > MaxBatchSize {
		return nil, domain.ErrValidation("batch exceeds %d scripts", MaxBatchSize)
	}

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchParallelism)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.Decompose(gctx, req)
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *DecomposeService) resolveDialect(name string) (sqlparse.Dialect, error) {
	if name == "" {
		return s.dialect, nil
	}
	d, err := sqlparse.ParseDialect(name)
	if err != nil {
		return d, domain.ErrValidation("%v", err)
	}
	return d, nil
}

// record stores a history entry. History is best effort: a failure is
// logged and never returned to the caller.
func (s *DecomposeService) record(ctx context.Context, entry *domain.HistoryEntry) {
	recordHistory(ctx, s.history, s.logger, entry)
}

func recordHistory(ctx context.Context, repo domain.HistoryRepository, logger *slog.Logger, entry *domain.HistoryEntry) {
	if repo == nil {
		return
	}
	// Record even when the request was cancelled after the work finished.
	ctx = context.WithoutCancel(ctx)
	if err := repo.Insert(ctx, entry); err != nil {
		logger.WarnContext(ctx, "failed to record history", "kind", string(entry.Kind), "error", err)
	}
}

func newDecomposeResult(d sqlparse.Dialect, res *decompose.Result) *DecomposeResult {
	out := &DecomposeResult{
		Dialect:    d.String(),
		Withs:      res.Withs,
		Selects:    res.Selects(),
		Statements: make([]DecomposedStatement, len(res.Statements)),
	}
	if out.Withs == nil {
		out.Withs = []string{}
	}
	if out.Selects == nil {
		out.Selects = []string{}
	}
	for i, st := range res.Statements {
		out.Statements[i] = DecomposedStatement{
			SQL:       st.SQL,
			WithIndex: st.With,
			Runnable:  st.Runnable(res),
		}
	}
	return out
}

// IsParseError reports whether err is a SQL syntax error.
func IsParseError(err error) bool {
	var pe *domain.ParseError
	return errors.As(err, &pe)
}
