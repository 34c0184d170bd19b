// Package rowset materializes database rows into text row maps using the
// column type names the driver reports.
package rowset

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/sqlparse"
)

// Null is the text rendered for SQL NULL and for values that cannot be read
// as their column's type.
const Null = "NULL"

// DefaultMaxRows bounds how many rows are materialized when no limit is set.
const DefaultMaxRows = 10000

type options struct {
	maxRows int
	logger  *slog.Logger
}

// Option configures Materialize.
type Option func(*options)

// WithMaxRows caps the number of materialized rows. n <= 0 keeps the default.
func WithMaxRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRows = n
		}
	}
}

// WithLogger sets the logger that reports omitted columns.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Materialize reads every remaining row (up to the row cap) into row maps
// keyed by column name. Columns whose type name the dialect does not know
// are listed in the returned columns but omitted from every row map. The
// caller still owns rows and must close it.
func Materialize(rows *sql.Rows, d sqlparse.Dialect, opts ...Option) ([]domain.Column, []domain.RowMap, error) {
	res, err := Collect(rows, d, opts...)
	if err != nil {
		return nil, nil, err
	}
	return res.Columns, res.Rows, nil
}

// Collect is Materialize returning a QueryResult that also records whether
// the row cap cut the result short.
func Collect(rows *sql.Rows, d sqlparse.Dialect, opts ...Option) (*domain.QueryResult, error) {
	o := options{maxRows: DefaultMaxRows, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}
	columns := make([]domain.Column, len(types))
	kinds := make([]kind, len(types))
	for i, ct := range types {
		columns[i] = domain.Column{Ordinal: i, Name: ct.Name()}
		kinds[i] = lookup(d, ct.DatabaseTypeName())
		if kinds[i] == kindUnknown {
			o.logger.Debug("unsupported column type, omitting column",
				"column", ct.Name(), "type", ct.DatabaseTypeName(), "dialect", d.String())
		}
	}

	res := &domain.QueryResult{Columns: columns, Rows: []domain.RowMap{}}
	values := make([]interface{}, len(types))
	ptrs := make([]interface{}, len(types))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if len(res.Rows) == o.maxRows {
			res.Truncated = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(res.Rows), err)
		}
		row := make(domain.RowMap, len(types))
		for i, k := range kinds {
			if k == kindUnknown {
				continue
			}
			row[columns[i].Name] = render(k, values[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	res.RowCount = len(res.Rows)
	return res, nil
}

// render formats v as kind k, or returns Null when v is NULL or not readable
// as k.
func render(k kind, v interface{}) string {
	if v == nil {
		return Null
	}
	var (
		s  string
		ok bool
	)
	switch k {
	case kindInt:
		s, ok = renderInt(v)
	case kindFloat:
		s, ok = renderFloat(v)
	case kindDecimal:
		s, ok = renderDecimal(v)
	case kindBool:
		s, ok = renderBool(v)
	case kindText:
		s, ok = renderText(v)
	case kindDate:
		s, ok = renderDate(v)
	}
	if !ok {
		return Null
	}
	return s
}

func renderInt(v interface{}) (string, bool) {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int:
		return strconv.Itoa(x), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case *big.Int:
		return x.String(), true
	case []byte:
		return parseInt(string(x))
	case string:
		return parseInt(x)
	}
	return "", false
}

func parseInt(s string) (string, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", false
	}
	return n.String(), true
}

func renderFloat(v interface{}) (string, bool) {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	}
	return "", false
}

func parseFloat(s string) (string, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'g', -1, 64), true
}

// renderDecimal keeps the driver's exact text where it has one.
func renderDecimal(v interface{}) (string, bool) {
	switch x := v.(type) {
	case []byte:
		return string(x), true
	case string:
		return x, true
	case int64, int32, int, *big.Int:
		return renderInt(x)
	case float64, float32:
		return renderFloat(x)
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

func renderBool(v interface{}) (string, bool) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), true
	case int64:
		return strconv.FormatBool(x != 0), true
	case []byte:
		return parseBool(string(x))
	case string:
		return parseBool(x)
	}
	return "", false
}

func parseBool(s string) (string, bool) {
	switch s {
	case "t", "T", "TRUE", "true", "True", "1":
		return "true", true
	case "f", "F", "FALSE", "false", "False", "0":
		return "false", true
	}
	return "", false
}

func renderText(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

const dateLayout = "2006-01-02"

func renderDate(v interface{}) (string, bool) {
	switch x := v.(type) {
	case time.Time:
		return x.Format(dateLayout), true
	case []byte:
		return parseDate(string(x))
	case string:
		return parseDate(x)
	}
	return "", false
}

func parseDate(s string) (string, bool) {
	if len(s) < len(dateLayout) {
		return "", false
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}
