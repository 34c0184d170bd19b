package rowset

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"math/big"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/sqlparse"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "rows.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE sample (
		i INTEGER, r REAL, s TEXT, n NUMERIC, d DATE, flag BOOLEAN, payload BLOB
	)`)
	require.NoError(t, err)
	return db
}

func query(t *testing.T, db *sql.DB, q string) *sql.Rows {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), q)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rows.Close() })
	return rows
}

// === Materialize tests ===

func TestMaterialize_SQLite(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO sample VALUES (1, 2.5, 'x', 10, '2024-03-05', 1, x'00')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sample VALUES (NULL, NULL, NULL, NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)

	cols, rows, err := Materialize(query(t, db, "SELECT * FROM sample ORDER BY i IS NULL"), sqlparse.Generic)
	require.NoError(t, err)

	require.Len(t, cols, 7)
	for i, c := range cols {
		assert.Equal(t, i, c.Ordinal)
	}
	assert.Equal(t, "payload", cols[6].Name)

	require.Len(t, rows, 2)
	assert.Equal(t, domain.RowMap{
		"i": "1", "r": "2.5", "s": "x", "n": "10", "d": "2024-03-05", "flag": "true",
	}, rows[0])
	assert.Equal(t, domain.RowMap{
		"i": Null, "r": Null, "s": Null, "n": Null, "d": Null, "flag": Null,
	}, rows[1])
}

func TestMaterialize_EmptyResultKeepsColumns(t *testing.T) {
	db := openTestDB(t)
	cols, rows, err := Materialize(query(t, db, "SELECT i, s FROM sample"), sqlparse.Generic)
	require.NoError(t, err)
	assert.Equal(t, []domain.Column{{Ordinal: 0, Name: "i"}, {Ordinal: 1, Name: "s"}}, cols)
	assert.Empty(t, rows)
}

func TestCollect_MaxRows(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		_, err := db.Exec(`INSERT INTO sample (i) VALUES (?)`, i)
		require.NoError(t, err)
	}

	res, err := Collect(query(t, db, "SELECT i FROM sample ORDER BY i"), sqlparse.Generic, WithMaxRows(3))
	require.NoError(t, err)
	assert.Equal(t, 3, res.RowCount)
	assert.True(t, res.Truncated)
	assert.Equal(t, "2", res.Rows[2]["i"])

	res, err = Collect(query(t, db, "SELECT i FROM sample"), sqlparse.Generic, WithMaxRows(5))
	require.NoError(t, err)
	assert.Equal(t, 5, res.RowCount)
	assert.False(t, res.Truncated)
}

func TestCollect_LogsOmittedColumnOnce(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		_, err := db.Exec(`INSERT INTO sample (i, payload) VALUES (?, x'01')`, i)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	res, err := Collect(query(t, db, "SELECT i, payload FROM sample"), sqlparse.Generic, WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	for _, row := range res.Rows {
		assert.NotContains(t, row, "payload")
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "omitting column"))
	assert.Contains(t, buf.String(), "type=BLOB")
}

// === Type table tests ===

func TestLookup(t *testing.T) {
	tests := []struct {
		dialect  sqlparse.Dialect
		typeName string
		want     kind
	}{
		{sqlparse.Postgres, "INT4", kindInt},
		{sqlparse.Postgres, "FLOAT8", kindFloat},
		{sqlparse.Postgres, "NUMERIC", kindDecimal},
		{sqlparse.Postgres, "BPCHAR", kindText},
		{sqlparse.Postgres, "NAME", kindText},
		{sqlparse.Postgres, "BOOL", kindBool},
		{sqlparse.Postgres, "JSONB", kindUnknown},
		{sqlparse.Postgres, "HUGEINT", kindUnknown},
		{sqlparse.MySQL, "UNSIGNED BIGINT", kindInt},
		{sqlparse.MySQL, "MEDIUMINT", kindInt},
		{sqlparse.MySQL, "decimal(10,2)", kindDecimal},
		{sqlparse.MySQL, "BPCHAR", kindUnknown},
		{sqlparse.DuckDB, "DECIMAL(18,3)", kindDecimal},
		{sqlparse.DuckDB, "HUGEINT", kindInt},
		{sqlparse.DuckDB, "BOOLEAN", kindBool},
		{sqlparse.DuckDB, "TEXT", kindUnknown},
		{sqlparse.Generic, "REAL", kindFloat},
		{sqlparse.Generic, "INT8", kindInt},
		{sqlparse.Generic, "BLOB", kindUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.dialect.String()+"/"+tc.typeName, func(t *testing.T) {
			assert.Equal(t, tc.want, lookup(tc.dialect, tc.typeName))
		})
	}
}

type decimalText struct{ s string }

func (d decimalText) String() string { return d.s }

func TestRender(t *testing.T) {
	huge, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	tests := []struct {
		name string
		kind kind
		in   interface{}
		want string
	}{
		{"int64", kindInt, int64(-7), "-7"},
		{"uint8", kindInt, uint8(200), "200"},
		{"hugeint", kindInt, huge, "170141183460469231731687303715884105727"},
		{"int_bytes", kindInt, []byte("42"), "42"},
		{"int_garbage", kindInt, []byte("4x2"), Null},
		{"float64_shortest", kindFloat, 0.1, "0.1"},
		{"float32_shortest", kindFloat, float32(0.1), "0.1"},
		{"float_exponent", kindFloat, 1e21, "1e+21"},
		{"float_bytes", kindFloat, []byte("2.50"), "2.5"},
		{"decimal_exact_text", kindDecimal, []byte("10.50"), "10.50"},
		{"decimal_stringer", kindDecimal, decimalText{"3.140"}, "3.140"},
		{"bool", kindBool, true, "true"},
		{"bool_postgres_text", kindBool, []byte("f"), "false"},
		{"bool_mysql_tinyint", kindBool, int64(1), "true"},
		{"text_bytes", kindText, []byte("héllo"), "héllo"},
		{"text_wrong_type", kindText, int64(1), Null},
		{"date_time", kindDate, time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC), "2024-03-05"},
		{"date_text", kindDate, []byte("2024-03-05"), "2024-03-05"},
		{"date_garbage", kindDate, "yesterday", Null},
		{"null", kindInt, nil, Null},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render(tc.kind, tc.in))
		})
	}
}
