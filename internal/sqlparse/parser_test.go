package sqlparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlsplit/internal/domain"
)

// === Parse entry point tests ===

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", ";;", "-- only a comment\n"} {
		stmts, err := Parse(in, Postgres)
		require.NoError(t, err, in)
		assert.Empty(t, stmts, in)
	}
}

func TestParse_MultiStatement(t *testing.T) {
	stmts, err := Parse("SELECT 1; UPDATE t SET a = (1); SELECT 2;", Postgres)
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	assert.IsType(t, &Query{}, stmts[0])
	other, ok := stmts[1].(*OtherStmt)
	require.True(t, ok)
	assert.Equal(t, "UPDATE", other.Keyword)
	assert.Equal(t, "UPDATE t SET a = (1)", other.Raw)
	assert.IsType(t, &Query{}, stmts[2])
}

func TestParse_WithPrefixedNonQuery(t *testing.T) {
	stmts, err := Parse("WITH x AS (SELECT 1) DELETE FROM t WHERE id IN (SELECT * FROM x)", Postgres)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	other, ok := stmts[0].(*OtherStmt)
	require.True(t, ok)
	assert.Equal(t, "WITH", other.Keyword)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		line   int
		column int
		msg    string
	}{
		{"select_from_where", "SELECT FROM WHERE", 1, 8, "unexpected keyword FROM"},
		{"trailing_where", "SELECT a\nFROM t\nWHERE", 3, 6, "unexpected end of input"},
		{"garbage_after_statement", "SELECT a FROM t garbage more", 1, 25, "expected end of statement"},
		{"unterminated_string", "SELECT 'abc", 1, 8, "unterminated string literal"},
		{"missing_paren", "SELECT (1 + 2", 1, 14, "expected )"},
		{"unknown_statement", "FROBNICATE t", 1, 1, "expected a statement"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.sql, Postgres)
			require.Error(t, err)
			var pe *domain.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.line, pe.Line)
			assert.Equal(t, tc.column, pe.Column)
			assert.Contains(t, pe.Message, tc.msg)
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 2000) + "1" + strings.Repeat(")", 2000)
	_, err := Parse("SELECT "+deep, Postgres)
	require.Error(t, err)
	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "statement nesting exceeds maximum depth of 1000", pe.Message)

	shallow := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	_, err = Parse("SELECT "+shallow, Postgres)
	require.NoError(t, err)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("SELECT 1", Postgres)
	require.NoError(t, err)
	assert.IsType(t, &Select{}, q.Body)

	_, err = ParseQuery("SELECT 1; SELECT 2", Postgres)
	require.Error(t, err)

	_, err = ParseQuery("DROP TABLE t", Postgres)
	require.Error(t, err)
}

// === ParseExpr tests ===

func TestParseExpr_Precedence(t *testing.T) {
	expr, err := ParseExpr("a + b * c = d AND NOT e OR f", Postgres)
	require.NoError(t, err)

	or, ok := expr.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TOKEN_OR, or.Op)

	and, ok := or.Left.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TOKEN_AND, and.Op)
	assert.IsType(t, &UnaryExpr{}, and.Right)

	eq, ok := and.Left.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TOKEN_EQ, eq.Op)

	plus, ok := eq.Left.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TOKEN_PLUS, plus.Op)
	assert.IsType(t, &BinaryExpr{}, plus.Right)
}

func TestParseExpr_TrailingGarbage(t *testing.T) {
	_, err := ParseExpr("1 + 2 )", Postgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after expression")
}

func TestParseExpr_Empty(t *testing.T) {
	_, err := ParseExpr("  ", Postgres)
	require.Error(t, err)
}

func TestParseExpr_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		sql     string
		want    Expr
	}{
		{"in_subquery", Postgres, "a IN (SELECT b FROM t)", &InSubqueryExpr{}},
		{"not_in_list", Postgres, "a NOT IN (1, 2)", &InListExpr{}},
		{"exists", Postgres, "EXISTS (SELECT 1)", &ExistsExpr{}},
		{"not_exists", Postgres, "NOT EXISTS (SELECT 1)", &ExistsExpr{}},
		{"scalar_subquery", Postgres, "(SELECT 1)", &SubqueryExpr{}},
		{"tuple", Postgres, "(1, 2)", &TupleExpr{}},
		{"paren", Postgres, "(1)", &ParenExpr{}},
		{"between", Postgres, "a BETWEEN 1 AND 2", &BetweenExpr{}},
		{"ilike", Postgres, "a ILIKE 'x%'", &LikeExpr{}},
		{"similar_to", Postgres, "a SIMILAR TO 'x' ESCAPE '!'", &LikeExpr{}},
		{"any", Postgres, "a = ANY (SELECT b FROM t)", &AnyAllExpr{}},
		{"double_colon_cast", Postgres, "a::int", &CastExpr{}},
		{"at_time_zone", Postgres, "ts AT TIME ZONE 'UTC'", &AtTimeZoneExpr{}},
		{"is_distinct", Postgres, "a IS NOT DISTINCT FROM b", &IsDistinctExpr{}},
		{"is_null", Postgres, "a IS NULL", &IsExpr{}},
		{"extract", Postgres, "EXTRACT(YEAR FROM d)", &ExtractExpr{}},
		{"substring", Postgres, "SUBSTRING(s FROM 1 FOR 2)", &SubstringExpr{}},
		{"trim", Postgres, "TRIM(LEADING 'x' FROM s)", &TrimExpr{}},
		{"position", Postgres, "POSITION('a' IN s)", &PositionExpr{}},
		{"overlay", Postgres, "OVERLAY(s PLACING 'x' FROM 2)", &OverlayExpr{}},
		{"case", Postgres, "CASE WHEN a THEN 1 ELSE 2 END", &CaseExpr{}},
		{"interval", Postgres, "INTERVAL '1' DAY", &IntervalExpr{}},
		{"typed_string", Postgres, "DATE '2024-01-01'", &TypedString{}},
		{"array", Postgres, "ARRAY[1, 2]", &ArrayExpr{}},
		{"index", Postgres, "a[1]", &IndexExpr{}},
		{"collate", Postgres, `a COLLATE "C"`, &CollateExpr{}},
		{"placeholder", Postgres, "$1", &Placeholder{}},
		{"window_func", Postgres, "sum(a) OVER (PARTITION BY b ORDER BY c)", &FuncCall{}},
		{"named_arg", Postgres, "f(x => 1)", &FuncCall{}},
		{"mysql_convert", MySQL, "CONVERT(a USING utf8mb4)", &ConvertExpr{}},
		{"mysql_match_against", MySQL, "MATCH (a, b) AGAINST ('x' IN BOOLEAN MODE)", &MatchAgainstExpr{}},
		{"duckdb_list", DuckDB, "[1, 2, 3]", &ArrayExpr{}},
		{"duckdb_struct", DuckDB, "{'a': 1, 'b': 2}", &StructExpr{}},
		{"duckdb_map", DuckDB, "MAP {'a': 1}", &MapExpr{}},
		{"duckdb_lambda_in_call", DuckDB, "list_transform(l, x -> x + 1)", &FuncCall{}},
		{"duckdb_try_cast", DuckDB, "TRY_CAST(a AS INTEGER)", &CastExpr{}},
		{"generic_prior", Generic, "PRIOR a", &PriorExpr{}},
		{"generic_outer_join_marker", Generic, "a(+)", &OuterJoinMarker{}},
		{"generic_in_unnest", Generic, "a IN UNNEST(arr)", &InUnnestExpr{}},
		{"row_constructor", Postgres, "ROW(1, 2)", &TupleExpr{}},
		{"grouping_function", Postgres, "GROUPING(a)", &FuncCall{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := ParseExpr(tc.sql, tc.dialect)
			require.NoError(t, err)
			assert.IsType(t, tc.want, expr)
		})
	}
}

func TestParseExpr_FuncCallClauses(t *testing.T) {
	expr, err := ParseExpr("string_agg(DISTINCT a, ',' ORDER BY a) FILTER (WHERE b > 0) OVER w", Postgres)
	require.NoError(t, err)
	fn, ok := expr.(*FuncCall)
	require.True(t, ok)
	assert.True(t, fn.Distinct)
	assert.Len(t, fn.Args, 2)
	assert.Len(t, fn.OrderBy, 1)
	assert.NotNil(t, fn.Filter)
	require.NotNil(t, fn.Over)
	assert.True(t, fn.Over.Bare)
	assert.Equal(t, "w", fn.Over.Ref.Name)

	expr, err = ParseExpr("percentile_cont(0.5) WITHIN GROUP (ORDER BY x)", Postgres)
	require.NoError(t, err)
	fn = expr.(*FuncCall)
	assert.Len(t, fn.WithinGroup, 1)

	expr, err = ParseExpr("group_concat(a ORDER BY a SEPARATOR ';')", MySQL)
	require.NoError(t, err)
	fn = expr.(*FuncCall)
	assert.NotNil(t, fn.Separator)

	expr, err = ParseExpr("count(*) OVER (ORDER BY a ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)", Postgres)
	require.NoError(t, err)
	fn = expr.(*FuncCall)
	require.NotNil(t, fn.Over)
	require.NotNil(t, fn.Over.Frame)
	assert.Equal(t, FrameRows, fn.Over.Frame.Type)
	assert.Equal(t, FrameExprPreceding, fn.Over.Frame.Start.Type)
	assert.Equal(t, FrameCurrentRow, fn.Over.Frame.End.Type)
}

// === Query shape tests ===

func mustQuery(t *testing.T, sql string, d Dialect) *Query {
	t.Helper()
	q, err := ParseQuery(sql, d)
	require.NoError(t, err)
	return q
}

func TestParse_WithClause(t *testing.T) {
	q := mustQuery(t, "WITH RECURSIVE r (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM r), s AS MATERIALIZED (SELECT 2) SELECT * FROM r", Postgres)
	require.NotNil(t, q.With)
	assert.True(t, q.With.Recursive)
	require.Len(t, q.With.CTEs, 2)
	assert.Equal(t, "r", q.With.CTEs[0].Name.Name)
	assert.Equal(t, []Ident{{Name: "n"}}, q.With.CTEs[0].Columns)
	assert.IsType(t, &SetOperation{}, q.With.CTEs[0].Query.Body)
	assert.Equal(t, "MATERIALIZED", q.With.CTEs[1].Materialized)
}

func TestParse_SetOperationPrecedence(t *testing.T) {
	q := mustQuery(t, "SELECT 1 UNION SELECT 2 INTERSECT SELECT 3", Postgres)
	union, ok := q.Body.(*SetOperation)
	require.True(t, ok)
	assert.Equal(t, SetUnion, union.Op)
	assert.IsType(t, &Select{}, union.Left)
	right, ok := union.Right.(*SetOperation)
	require.True(t, ok)
	assert.Equal(t, SetIntersect, right.Op)

	q = mustQuery(t, "SELECT 1 UNION ALL SELECT 2 EXCEPT SELECT 3", Postgres)
	top, ok := q.Body.(*SetOperation)
	require.True(t, ok)
	assert.Equal(t, SetExcept, top.Op)
	left, ok := top.Left.(*SetOperation)
	require.True(t, ok)
	assert.Equal(t, QuantifierAll, left.Quantifier)
}

func TestParse_QueryTail(t *testing.T) {
	q := mustQuery(t, "SELECT a FROM t ORDER BY a DESC NULLS LAST LIMIT 10 OFFSET 5 FOR UPDATE SKIP LOCKED", Postgres)
	require.NotNil(t, q.OrderBy)
	require.Len(t, q.OrderBy.Items, 1)
	assert.True(t, q.OrderBy.Items[0].Desc)
	require.NotNil(t, q.OrderBy.Items[0].NullsFirst)
	assert.False(t, *q.OrderBy.Items[0].NullsFirst)
	assert.NotNil(t, q.Limit)
	require.NotNil(t, q.Offset)
	require.Len(t, q.Locks, 1)
	assert.Equal(t, "UPDATE", q.Locks[0].Strength)
	assert.Equal(t, "SKIP LOCKED", q.Locks[0].Wait)

	q = mustQuery(t, "SELECT a FROM t LIMIT 5, 10", MySQL)
	require.NotNil(t, q.Offset)
	assert.Equal(t, &Literal{Type: LiteralNumber, Value: "5"}, q.Offset.Value)
	assert.Equal(t, &Literal{Type: LiteralNumber, Value: "10"}, q.Limit)

	q = mustQuery(t, "SELECT a FROM t OFFSET 2 ROWS FETCH FIRST 3 ROWS ONLY", Postgres)
	require.NotNil(t, q.Fetch)
	assert.Equal(t, "ROWS", q.Offset.Rows)
	assert.Equal(t, "ROWS", q.Fetch.Rows)
}

func TestParse_SelectClauses(t *testing.T) {
	q := mustQuery(t, `SELECT DISTINCT ON (a) a, b AS bee, c cee
		FROM t
		WHERE a > 1
		GROUP BY a, ROLLUP (b, c)
		HAVING count(*) > 1
		WINDOW w AS (PARTITION BY a)`, Postgres)
	sel, ok := q.Body.(*Select)
	require.True(t, ok)
	require.NotNil(t, sel.Distinct)
	assert.Len(t, sel.Distinct.On, 1)
	require.Len(t, sel.Projection, 3)
	assert.Nil(t, sel.Projection[0].Alias)
	assert.Equal(t, "bee", sel.Projection[1].Alias.Name)
	assert.Equal(t, "cee", sel.Projection[2].Alias.Name)
	assert.NotNil(t, sel.Where)
	require.Len(t, sel.GroupBy, 2)
	assert.IsType(t, &GroupingExpr{}, sel.GroupBy[1])
	assert.NotNil(t, sel.Having)
	require.Len(t, sel.Windows, 1)
	assert.Equal(t, "w", sel.Windows[0].Name.Name)
}

func TestParse_DuckDBExtensions(t *testing.T) {
	q := mustQuery(t, "FROM t SELECT a", DuckDB)
	sel := q.Body.(*Select)
	assert.True(t, sel.FromFirst)

	q = mustQuery(t, "FROM t", DuckDB)
	sel = q.Body.(*Select)
	assert.True(t, sel.FromFirst)
	assert.Empty(t, sel.Projection)

	q = mustQuery(t, "SELECT * EXCLUDE (a) FROM t GROUP BY ALL QUALIFY row_number() OVER () = 1", DuckDB)
	sel = q.Body.(*Select)
	star, ok := sel.Projection[0].Expr.(*Star)
	require.True(t, ok)
	assert.Equal(t, []Ident{{Name: "a"}}, star.Exclude)
	assert.True(t, sel.GroupByAll)
	assert.NotNil(t, sel.Qualify)

	q = mustQuery(t, "SELECT * FROM t PIVOT (sum(v) FOR k IN ('a', 'b'))", DuckDB)
	sel = q.Body.(*Select)
	assert.IsType(t, &PivotTable{}, sel.From[0].Relation)

	q = mustQuery(t, "SELECT * FROM 'data.csv'", DuckDB)
	sel = q.Body.(*Select)
	tn, ok := sel.From[0].Relation.(*TableName)
	require.True(t, ok)
	assert.Equal(t, byte('\''), tn.Name[0].Quote)
}

func TestParse_DialectGates(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		dialect Dialect
		ok      bool
	}{
		{"ilike_postgres", "SELECT a ILIKE 'x' FROM t", Postgres, true},
		{"double_colon_mysql", "SELECT a::int FROM t", MySQL, false},
		{"backtick_mysql", "SELECT `a` FROM `t`", MySQL, true},
		{"backtick_postgres", "SELECT `a` FROM t", Postgres, false},
		{"qualify_postgres", "SELECT a FROM t QUALIFY a = 1", Postgres, false},
		{"qualify_duckdb", "SELECT a FROM t QUALIFY a = 1", DuckDB, true},
		{"straight_join_mysql", "SELECT * FROM a STRAIGHT_JOIN b ON a.id = b.id", MySQL, true},
		{"distinct_on_mysql", "SELECT DISTINCT ON (a) a FROM t", MySQL, false},
		{"limit_comma_postgres", "SELECT a FROM t LIMIT 1, 2", Postgres, false},
		{"connect_by_generic", "SELECT a FROM t START WITH a = 1 CONNECT BY PRIOR a = b", Generic, true},
		{"top_generic", "SELECT TOP 5 a FROM t", Generic, true},
		{"cross_apply_generic", "SELECT * FROM a CROSS APPLY f(a.x) AS g", Generic, true},
		{"lateral_view_generic", "SELECT a FROM t LATERAL VIEW explode(arr) e AS x", Generic, true},
		{"prewhere_generic", "SELECT a FROM t PREWHERE a > 1", Generic, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.sql, tc.dialect)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// === FROM clause tests ===

func TestParse_Joins(t *testing.T) {
	tests := []struct {
		sql  string
		op   JoinOp
		kind ConstraintKind
	}{
		{"SELECT * FROM a JOIN b ON a.id = b.id", JoinInner, ConstraintOn},
		{"SELECT * FROM a INNER JOIN b USING (id)", JoinInner, ConstraintUsing},
		{"SELECT * FROM a LEFT OUTER JOIN b ON true", JoinLeftOuter, ConstraintOn},
		{"SELECT * FROM a RIGHT JOIN b ON true", JoinRightOuter, ConstraintOn},
		{"SELECT * FROM a FULL JOIN b ON true", JoinFullOuter, ConstraintOn},
		{"SELECT * FROM a NATURAL JOIN b", JoinInner, ConstraintNatural},
		{"SELECT * FROM a CROSS JOIN b", JoinCross, ConstraintNone},
		{"SELECT * FROM a SEMI JOIN b ON true", JoinSemi, ConstraintOn},
		{"SELECT * FROM a ANTI JOIN b ON true", JoinAnti, ConstraintOn},
		{"SELECT * FROM a ASOF JOIN b ON a.t >= b.t", JoinAsOf, ConstraintOn},
		{"SELECT * FROM a POSITIONAL JOIN b", JoinPositional, ConstraintNone},
		{"SELECT * FROM a OUTER APPLY f(a.x)", JoinOuterApply, ConstraintNone},
		{"SELECT * FROM a LEFT SEMI JOIN b ON true", JoinLeftSemi, ConstraintOn},
		{"SELECT * FROM a LEFT ANTI JOIN b ON true", JoinLeftAnti, ConstraintOn},
	}
	for _, tc := range tests {
		t.Run(tc.op.String(), func(t *testing.T) {
			q := mustQuery(t, tc.sql, Generic)
			sel := q.Body.(*Select)
			require.Len(t, sel.From, 1)
			require.Len(t, sel.From[0].Joins, 1)
			join := sel.From[0].Joins[0]
			assert.Equal(t, tc.op, join.Op)
			assert.Equal(t, tc.kind, join.Constraint.Kind)
		})
	}
}

func TestParse_CommaJoinsAreSeparateItems(t *testing.T) {
	q := mustQuery(t, "SELECT * FROM a, b JOIN c ON true, d", Postgres)
	sel := q.Body.(*Select)
	require.Len(t, sel.From, 3)
	assert.Len(t, sel.From[1].Joins, 1)
}

func TestParse_TableFactors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want TableRef
	}{
		{"named", "SELECT * FROM s.t AS x", &TableName{}},
		{"derived", "SELECT * FROM (SELECT 1) AS d", &DerivedTable{}},
		{"derived_union", "SELECT * FROM ((SELECT 1) UNION (SELECT 2)) AS d", &DerivedTable{}},
		{"lateral_derived", "SELECT * FROM LATERAL (SELECT 1) AS d", &DerivedTable{}},
		{"function", "SELECT * FROM generate_series(1, 3) WITH ORDINALITY AS g (n, i)", &FuncTable{}},
		{"unnest", "SELECT * FROM UNNEST(ARRAY[1, 2]) AS u (x)", &UnnestTable{}},
		{"nested_join", "SELECT * FROM (a JOIN b ON true)", &NestedJoin{}},
		{"tablesample", "SELECT * FROM t TABLESAMPLE BERNOULLI (10) REPEATABLE (42)", &TableName{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := mustQuery(t, tc.sql, Postgres)
			sel := q.Body.(*Select)
			require.NotEmpty(t, sel.From)
			assert.IsType(t, tc.want, sel.From[0].Relation)
		})
	}
}

func TestParse_OracleAndBigQueryFactors(t *testing.T) {
	q := mustQuery(t, `SELECT * FROM t MATCH_RECOGNIZE (
		PARTITION BY a ORDER BY b
		MEASURES FIRST(b) AS fb
		ONE ROW PER MATCH
		PATTERN (x y+)
		DEFINE y AS y.b > PREV(y.b)
	) AS m`, Generic)
	sel := q.Body.(*Select)
	mr, ok := sel.From[0].Relation.(*MatchRecognize)
	require.True(t, ok)
	assert.Len(t, mr.PartitionBy, 1)
	assert.Len(t, mr.Measures, 1)
	require.Len(t, mr.Symbols, 1)
	assert.Equal(t, "y", mr.Symbols[0].Name.Name)

	q = mustQuery(t, "SELECT * FROM t FOR SYSTEM_TIME AS OF TIMESTAMP '2024-01-01'", Generic)
	sel = q.Body.(*Select)
	tn := sel.From[0].Relation.(*TableName)
	assert.NotNil(t, tn.Version)

	q = mustQuery(t, "SELECT * FROM UNNEST([1, 2]) AS x WITH OFFSET AS pos", Generic)
	sel = q.Body.(*Select)
	un := sel.From[0].Relation.(*UnnestTable)
	assert.True(t, un.WithOffset)
	require.NotNil(t, un.OffsetAlias)
	assert.Equal(t, "pos", un.OffsetAlias.Name)
}

func TestParse_UnnestWithOffset(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		alias string
	}{
		{"aliased", "SELECT * FROM UNNEST([1, 2]) AS x WITH OFFSET AS pos", "pos"},
		{"implicit_alias", "SELECT * FROM UNNEST([1, 2]) x WITH OFFSET pos WHERE pos > 0", "pos"},
		{"no_alias", "SELECT * FROM UNNEST([1, 2]) WITH OFFSET WHERE a = 1", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := mustQuery(t, tc.sql, Generic)
			un, ok := q.Body.(*Select).From[0].Relation.(*UnnestTable)
			require.True(t, ok)
			assert.True(t, un.WithOffset)
			if tc.alias == "" {
				assert.Nil(t, un.OffsetAlias)
				return
			}
			require.NotNil(t, un.OffsetAlias)
			assert.Equal(t, tc.alias, un.OffsetAlias.Name)
			assert.Contains(t, Format(q, Generic), "WITH OFFSET AS "+tc.alias)
		})
	}
}

func TestParse_MySQLIndexHints(t *testing.T) {
	q := mustQuery(t, "SELECT * FROM t USE INDEX (i1, i2) WHERE a = 1", MySQL)
	sel := q.Body.(*Select)
	tn := sel.From[0].Relation.(*TableName)
	require.Len(t, tn.IndexHints, 1)
	assert.Equal(t, "USE", tn.IndexHints[0].Action)
	assert.Len(t, tn.IndexHints[0].Names, 2)
}
