// Package decompose extracts every SELECT block of a SQL script as a
// standalone statement.
//
// Each SELECT found anywhere in a query tree (CTE bodies, derived tables,
// set operation branches, scalar, IN, EXISTS and ANY/ALL subqueries, join
// predicates, function arguments, window specifications) is re-serialized
// with the canonical formatter. A SELECT whose nearest enclosing query has a
// WITH clause records that clause as its owner, so it can be prefixed with
// the WITH text and run on its own.
package decompose

import (
	"log/slog"

	"sqlsplit/internal/sqlparse"
)

// DefaultMaxDepth bounds the combined query and expression nesting the
// walker descends into.
const DefaultMaxDepth = 256

// Statement is one extracted SELECT.
type Statement struct {
	SQL  string // canonical text of the SELECT, without any WITH prefix
	With int    // index into Result.Withs of the owning WITH clause, or -1
}

// Runnable returns the statement prefixed with its owning WITH clause.
func (s Statement) Runnable(r *Result) string {
	if s.With < 0 || s.With >= len(r.Withs) {
		return s.SQL
	}
	return r.Withs[s.With] + " " + s.SQL
}

// Result is the outcome of decomposing a script. Withs and Statements are
// in traversal order.
type Result struct {
	Withs      []string
	Statements []Statement
}

// Selects returns every statement in runnable form, or nil when there are
// none.
func (r *Result) Selects() []string {
	if len(r.Statements) == 0 {
		return nil
	}
	selects := make([]string, len(r.Statements))
	for i, s := range r.Statements {
		selects[i] = s.Runnable(r)
	}
	return selects
}

// Option configures a decomposition.
type Option func(*options)

type options struct {
	maxDepth int
	logger   *slog.Logger
}

// WithMaxDepth sets the nesting limit. Values below one keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for per-statement debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decompose parses sql and returns the WITH clause texts and the runnable
// SELECT texts it contains. Malformed SQL yields a *domain.ParseError.
func Decompose(sql string, d sqlparse.Dialect) (withs []string, selects []string, err error) {
	res, err := Run(sql, d)
	if err != nil {
		return nil, nil, err
	}
	return res.Withs, res.Selects(), nil
}

// Run parses sql and walks every statement.
func Run(sql string, d sqlparse.Dialect, opts ...Option) (*Result, error) {
	stmts, err := sqlparse.Parse(sql, d)
	if err != nil {
		return nil, err
	}
	return Walk(stmts, d, opts...)
}

// Walk decomposes already parsed statements. Statements other than queries
// contribute nothing.
func Walk(stmts []sqlparse.Stmt, d sqlparse.Dialect, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	w := &walker{
		dialect:  d,
		maxDepth: o.maxDepth,
		res:      &Result{},
	}
	for i, stmt := range stmts {
		before := len(w.res.Statements)
		w.walkStmt(stmt)
		if w.err != nil {
			return nil, w.err
		}
		o.logger.Debug("statement decomposed",
			"index", i,
			"kind", stmtKind(stmt),
			"selects", len(w.res.Statements)-before)
	}
	return w.res, nil
}

func stmtKind(stmt sqlparse.Stmt) string {
	if other, ok := stmt.(*sqlparse.OtherStmt); ok {
		return other.Keyword
	}
	return "QUERY"
}
