package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatOne(t *testing.T, sql string, d Dialect) string {
	t.Helper()
	stmts, err := Parse(sql, d)
	require.NoError(t, err, sql)
	require.Len(t, stmts, 1, sql)
	return Format(stmts[0], d)
}

// === Canonical output tests ===

func TestFormat_Canonical(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		sql     string
		want    string
	}{
		{"keywords_uppercased", Postgres, "select a,b from t where x=1", "SELECT a, b FROM t WHERE x = 1"},
		{"whitespace_collapsed", Postgres, "SELECT\n\ta\n  FROM   t", "SELECT a FROM t"},
		{"comments_dropped", Postgres, "SELECT a /* note */ FROM t -- trailing", "SELECT a FROM t"},
		{"table_alias_gets_as", Postgres, "select a from t x", "SELECT a FROM t AS x"},
		{"column_alias_gets_as", Postgres, "select a b from t", "SELECT a AS b FROM t"},
		{"join", Postgres, "select * from t1 inner join t2 on t1.id=t2.id", "SELECT * FROM t1 JOIN t2 ON t1.id = t2.id"},
		{"left_outer_join", Postgres, "select * from a left outer join b using (id)", "SELECT * FROM a LEFT JOIN b USING (id)"},
		{"aggregate_tail", Postgres,
			"select count(*) from t group by a having count(*)>1 order by a desc limit 10 offset 5",
			"SELECT count(*) FROM t GROUP BY a HAVING count(*) > 1 ORDER BY a DESC LIMIT 10 OFFSET 5"},
		{"with", Postgres, "with c as (select 1) select * from c", "WITH c AS (SELECT 1) SELECT * FROM c"},
		{"union_all", Postgres, "select a from t1 union all select a from t2", "SELECT a FROM t1 UNION ALL SELECT a FROM t2"},
		{"case", Postgres, "select case when a then 1 else 2 end", "SELECT CASE WHEN a THEN 1 ELSE 2 END"},
		{"in_and_between", Postgres,
			"select a from t where a in (1,2) and b between 1 and 2",
			"SELECT a FROM t WHERE a IN (1, 2) AND b BETWEEN 1 AND 2"},
		{"subqueries", Postgres,
			"select (select 1), exists(select 2) from t where a in (select b from u)",
			"SELECT (SELECT 1), EXISTS (SELECT 2) FROM t WHERE a IN (SELECT b FROM u)"},
		{"literals", Postgres, "select true, null, 'it''s'", "SELECT TRUE, NULL, 'it''s'"},
		{"type_names_uppercased", Postgres, "select a::int, cast(b as varchar(10))", "SELECT a::INT, CAST(b AS VARCHAR(10))"},
		{"placeholder_kept", Postgres, "select * from t where id = $1", "SELECT * FROM t WHERE id = $1"},
		{"quoted_identifier_kept", Postgres, `select "Weird Col" from t`, `SELECT "Weird Col" FROM t`},
		{"derived_table", Postgres, "select * from (select 1) d", "SELECT * FROM (SELECT 1) AS d"},
		{"not", Postgres, "select not a, -b", "SELECT NOT a, -b"},
		{"window", Postgres,
			"select sum(a) over (partition by b order by c rows between unbounded preceding and current row) from t",
			"SELECT sum(a) OVER (PARTITION BY b ORDER BY c ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t"},
		{"mysql_backticks", MySQL, "select `a` from `t`", "SELECT `a` FROM `t`"},
		{"mysql_backslash_string", MySQL, `select 'a\\b'`, `SELECT 'a\\b'`},
		{"mysql_limit_comma", MySQL, "select a from t limit 5, 10", "SELECT a FROM t LIMIT 10 OFFSET 5"},
		{"duckdb_from_first", DuckDB, "from t select a", "FROM t SELECT a"},
		{"duckdb_exclude", DuckDB, "select * exclude (a) from t", "SELECT * EXCLUDE (a) FROM t"},
		{"duckdb_group_by_all", DuckDB, "select a, count(*) from t group by all", "SELECT a, count(*) FROM t GROUP BY ALL"},
		{"other_statement_verbatim", Postgres, "update t set a = 1", "update t set a = 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatOne(t, tc.sql, tc.dialect))
		})
	}
}

func TestFormatExpr(t *testing.T) {
	expr, err := ParseExpr("a+b*(c-1)", Postgres)
	require.NoError(t, err)
	assert.Equal(t, "a + b * (c - 1)", FormatExpr(expr, Postgres))
}

func TestFormat_NilNode(t *testing.T) {
	assert.Equal(t, "", Format(nil, Postgres))
}

// === Fixed point tests ===

// Formatting a parsed statement and reparsing the output must produce the
// same text again.
func TestFormat_FixedPoint(t *testing.T) {
	tests := []struct {
		dialect Dialect
		sql     string
	}{
		{Postgres, "WITH RECURSIVE r (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM r WHERE n < 5) SELECT n FROM r"},
		{Postgres, "WITH m AS MATERIALIZED (SELECT 1) SELECT * FROM m"},
		{Postgres, "SELECT DISTINCT ON (a) a, b FROM t ORDER BY a, b DESC NULLS FIRST"},
		{Postgres, "SELECT a FROM t GROUP BY GROUPING SETS ((a, b), a, ()) HAVING count(*) > 1"},
		{Postgres, "SELECT a FROM t WINDOW w AS (PARTITION BY a) ORDER BY a"},
		{Postgres, "SELECT string_agg(DISTINCT a, ',' ORDER BY a) FILTER (WHERE b > 0) FROM t"},
		{Postgres, "SELECT percentile_cont(0.5) WITHIN GROUP (ORDER BY x) FROM t"},
		{Postgres, "SELECT * FROM a LEFT JOIN LATERAL (SELECT * FROM b WHERE b.id = a.id) AS s ON true"},
		{Postgres, "SELECT * FROM generate_series(1, 3) WITH ORDINALITY AS g (n, i)"},
		{Postgres, "SELECT * FROM UNNEST(ARRAY[1, 2]) AS u (x)"},
		{Postgres, "SELECT * FROM t TABLESAMPLE BERNOULLI (10) REPEATABLE (42)"},
		{Postgres, "SELECT a FROM t ORDER BY a OFFSET 2 ROWS FETCH FIRST 3 ROWS ONLY"},
		{Postgres, "SELECT a FROM t FOR UPDATE OF t SKIP LOCKED"},
		{Postgres, "SELECT EXTRACT(YEAR FROM d), SUBSTRING(s FROM 1 FOR 2), TRIM(LEADING 'x' FROM s) FROM t"},
		{Postgres, "SELECT POSITION('a' IN s), OVERLAY(s PLACING 'x' FROM 2 FOR 1) FROM t"},
		{Postgres, "SELECT ts AT TIME ZONE 'UTC', a IS NOT DISTINCT FROM b, c IS NOT NULL FROM t"},
		{Postgres, "SELECT a = ANY (SELECT b FROM u), a[1], a[1:2], INTERVAL '1' DAY FROM t"},
		{Postgres, "SELECT a ILIKE 'x%', a NOT SIMILAR TO 'y' ESCAPE '!' FROM t"},
		{Postgres, "SELECT - -a, +(-b) FROM t"},
		{Postgres, "VALUES (1, 'a'), (2, 'b')"},
		{Postgres, "(SELECT 1) UNION (SELECT 2) ORDER BY 1"},
		{Postgres, "SELECT $fn$it's$fn$, E'tab\there'"},
		{Postgres, "SELECT * FROM a NATURAL JOIN b CROSS JOIN c FULL JOIN d ON true"},
		{MySQL, "SELECT `a` FROM `t` USE INDEX (i1, i2) WHERE a = 1 LIMIT 5, 10"},
		{MySQL, "SELECT group_concat(a ORDER BY a SEPARATOR ';') FROM t GROUP BY b WITH ROLLUP"},
		{MySQL, "SELECT CONVERT(a USING utf8mb4), MATCH (a, b) AGAINST ('x' IN BOOLEAN MODE) FROM t"},
		{MySQL, `SELECT "double", 'back\\slash' FROM t STRAIGHT_JOIN u ON t.id = u.id`},
		{DuckDB, "FROM t SELECT a"},
		{DuckDB, "FROM t"},
		{DuckDB, "SELECT * EXCLUDE (a) FROM t GROUP BY ALL QUALIFY row_number() OVER () = 1"},
		{DuckDB, "SELECT * FROM t PIVOT (sum(v) FOR k IN ('a', 'b'))"},
		{DuckDB, "SELECT [1, 2, 3], {'a': 1}, MAP {'k': 2}, list_transform(l, x -> x + 1) FROM 'data.csv'"},
		{DuckDB, "SELECT TRY_CAST(a AS INTEGER) FROM a ASOF JOIN b ON a.t >= b.t POSITIONAL JOIN c"},
		{DuckDB, "SELECT a FROM t1 UNION ALL BY NAME SELECT a FROM t2"},
		{Generic, "SELECT TOP 5 a FROM t START WITH a = 1 CONNECT BY PRIOR a = b"},
		{Generic, "SELECT a FROM t LATERAL VIEW explode(arr) e AS x PREWHERE a > 1"},
		{Generic, "SELECT * FROM a CROSS APPLY f(a.x) AS g OUTER APPLY h(a.y)"},
		{Generic, "SELECT * FROM t FOR SYSTEM_TIME AS OF TIMESTAMP '2024-01-01'"},
		{Generic, "SELECT * FROM UNNEST([1, 2]) AS x WITH OFFSET AS pos WHERE a IN UNNEST(arr)"},
		{Generic, "SELECT * FROM t MATCH_RECOGNIZE (PARTITION BY a ORDER BY b MEASURES FIRST(b) AS fb ONE ROW PER MATCH PATTERN (x y+) DEFINE y AS y.b > PREV(y.b)) AS m"},
		{Generic, "SELECT a FROM t WHERE a(+) = b"},
	}
	for _, tc := range tests {
		t.Run(tc.dialect.String()+"/"+tc.sql, func(t *testing.T) {
			first := formatOne(t, tc.sql, tc.dialect)
			second := formatOne(t, first, tc.dialect)
			assert.Equal(t, first, second)
		})
	}
}

// A statement formatted in one dialect keeps its shape when reparsed in
// that dialect, even when the source used another dialect's quoting.
func TestFormat_QuotesForTargetDialect(t *testing.T) {
	stmts, err := Parse(`SELECT "a""b" FROM t`, Postgres)
	require.NoError(t, err)
	assert.Equal(t, "SELECT `a\"b` FROM t", Format(stmts[0], MySQL))
}
