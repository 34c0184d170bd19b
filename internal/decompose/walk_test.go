package decompose

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlsplit/internal/sqlparse"
)

// slots hands out a distinct subquery for every child position of a node
// under construction and remembers the SELECT each one should yield.
type slots struct {
	t    *testing.T
	n    int
	want []string
}

func newSlots(t *testing.T) *slots {
	return &slots{t: t, want: []string{}}
}

func (s *slots) query() *sqlparse.Query {
	s.n++
	sql := fmt.Sprintf("SELECT %d", s.n)
	q, err := sqlparse.ParseQuery(sql, sqlparse.Postgres)
	require.NoError(s.t, err)
	s.want = append(s.want, sql)
	return q
}

func (s *slots) expr() sqlparse.Expr {
	return &sqlparse.SubqueryExpr{Query: s.query()}
}

func (s *slots) exprs() []sqlparse.Expr {
	return []sqlparse.Expr{s.expr(), s.expr()}
}

func (s *slots) orderBy() []sqlparse.OrderByItem {
	return []sqlparse.OrderByItem{{
		Expr:     s.expr(),
		WithFill: &sqlparse.WithFill{From: s.expr(), To: s.expr(), Step: s.expr()},
	}}
}

func (s *slots) items() []sqlparse.SelectItem {
	return []sqlparse.SelectItem{{Expr: s.expr()}, {Expr: s.expr()}}
}

func (s *slots) window() *sqlparse.WindowSpec {
	return &sqlparse.WindowSpec{
		PartitionBy: s.exprs(),
		OrderBy:     s.orderBy(),
		Frame: &sqlparse.FrameSpec{
			Type:  sqlparse.FrameRows,
			Start: &sqlparse.FrameBound{Type: sqlparse.FrameExprPreceding, Offset: s.expr()},
			End:   &sqlparse.FrameBound{Type: sqlparse.FrameExprFollowing, Offset: s.expr()},
		},
	}
}

func (s *slots) funcCall() *sqlparse.FuncCall {
	return &sqlparse.FuncCall{
		Name:        []sqlparse.Ident{{Name: "f"}},
		Args:        s.exprs(),
		Subquery:    s.query(),
		HavingBound: &sqlparse.HavingBound{Max: true, Expr: s.expr()},
		OrderBy:     s.orderBy(),
		Limit:       s.expr(),
		Separator:   s.expr(),
		OnOverflow:  &sqlparse.ListAggOverflow{Truncate: true, Filler: s.expr()},
		Filter:      s.expr(),
		Over:        s.window(),
		WithinGroup: s.orderBy(),
	}
}

func (s *slots) table() sqlparse.TableRef {
	return &sqlparse.DerivedTable{Query: s.query()}
}

func newWalker() *walker {
	return &walker{dialect: sqlparse.Postgres, maxDepth: DefaultMaxDepth, res: &Result{}}
}

func extracted(w *walker) []string {
	got := []string{}
	for _, st := range w.res.Statements {
		got = append(got, st.SQL)
	}
	return got
}

func TestWalkExpr_ReachesEveryChild(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *slots) sqlparse.Expr
	}{
		{"identifier", func(*slots) sqlparse.Expr { return &sqlparse.Identifier{} }},
		{"literal", func(*slots) sqlparse.Expr { return &sqlparse.Literal{} }},
		{"typed_string", func(*slots) sqlparse.Expr { return &sqlparse.TypedString{} }},
		{"placeholder", func(*slots) sqlparse.Expr { return &sqlparse.Placeholder{} }},
		{"star", func(s *slots) sqlparse.Expr {
			return &sqlparse.Star{Replace: []sqlparse.StarReplace{{Expr: s.expr()}, {Expr: s.expr()}}}
		}},
		{"binary", func(s *slots) sqlparse.Expr { return &sqlparse.BinaryExpr{Left: s.expr(), Right: s.expr()} }},
		{"unary", func(s *slots) sqlparse.Expr { return &sqlparse.UnaryExpr{Expr: s.expr()} }},
		{"paren", func(s *slots) sqlparse.Expr { return &sqlparse.ParenExpr{Expr: s.expr()} }},
		{"tuple", func(s *slots) sqlparse.Expr { return &sqlparse.TupleExpr{Items: s.exprs()} }},
		{"is", func(s *slots) sqlparse.Expr { return &sqlparse.IsExpr{Expr: s.expr()} }},
		{"is_distinct", func(s *slots) sqlparse.Expr {
			return &sqlparse.IsDistinctExpr{Left: s.expr(), Right: s.expr()}
		}},
		{"in_list", func(s *slots) sqlparse.Expr { return &sqlparse.InListExpr{Expr: s.expr(), List: s.exprs()} }},
		{"in_subquery", func(s *slots) sqlparse.Expr {
			return &sqlparse.InSubqueryExpr{Expr: s.expr(), Query: s.query()}
		}},
		{"in_unnest", func(s *slots) sqlparse.Expr { return &sqlparse.InUnnestExpr{Expr: s.expr(), Array: s.expr()} }},
		{"between", func(s *slots) sqlparse.Expr {
			return &sqlparse.BetweenExpr{Expr: s.expr(), Low: s.expr(), High: s.expr()}
		}},
		{"like", func(s *slots) sqlparse.Expr {
			return &sqlparse.LikeExpr{Expr: s.expr(), Pattern: s.expr(), Escape: s.expr()}
		}},
		{"any_all", func(s *slots) sqlparse.Expr {
			return &sqlparse.AnyAllExpr{Left: s.expr(), Query: s.query(), Right: s.expr()}
		}},
		{"cast", func(s *slots) sqlparse.Expr { return &sqlparse.CastExpr{Expr: s.expr(), TypeName: "INT"} }},
		{"convert", func(s *slots) sqlparse.Expr { return &sqlparse.ConvertExpr{Expr: s.expr(), TypeName: "CHAR"} }},
		{"at_time_zone", func(s *slots) sqlparse.Expr {
			return &sqlparse.AtTimeZoneExpr{Expr: s.expr(), Zone: s.expr()}
		}},
		{"collate", func(s *slots) sqlparse.Expr { return &sqlparse.CollateExpr{Expr: s.expr()} }},
		{"extract", func(s *slots) sqlparse.Expr { return &sqlparse.ExtractExpr{Field: "YEAR", Expr: s.expr()} }},
		{"position", func(s *slots) sqlparse.Expr {
			return &sqlparse.PositionExpr{Needle: s.expr(), Haystack: s.expr()}
		}},
		{"substring", func(s *slots) sqlparse.Expr {
			return &sqlparse.SubstringExpr{Expr: s.expr(), From: s.expr(), For: s.expr()}
		}},
		{"trim", func(s *slots) sqlparse.Expr { return &sqlparse.TrimExpr{Chars: s.expr(), Expr: s.expr()} }},
		{"overlay", func(s *slots) sqlparse.Expr {
			return &sqlparse.OverlayExpr{Expr: s.expr(), Placing: s.expr(), From: s.expr(), For: s.expr()}
		}},
		{"index", func(s *slots) sqlparse.Expr {
			return &sqlparse.IndexExpr{Expr: s.expr(), Index: s.expr(), Start: s.expr(), Stop: s.expr()}
		}},
		{"func_call", func(s *slots) sqlparse.Expr { return s.funcCall() }},
		{"named_arg", func(s *slots) sqlparse.Expr { return &sqlparse.NamedArg{Value: s.expr()} }},
		{"case", func(s *slots) sqlparse.Expr {
			return &sqlparse.CaseExpr{
				Operand: s.expr(),
				Whens: []sqlparse.WhenClause{
					{Condition: s.expr(), Result: s.expr()},
					{Condition: s.expr(), Result: s.expr()},
				},
				Else: s.expr(),
			}
		}},
		{"exists", func(s *slots) sqlparse.Expr { return &sqlparse.ExistsExpr{Query: s.query()} }},
		{"subquery", func(s *slots) sqlparse.Expr { return s.expr() }},
		{"grouping", func(s *slots) sqlparse.Expr {
			return &sqlparse.GroupingExpr{Sets: [][]sqlparse.Expr{s.exprs(), s.exprs()}}
		}},
		{"array", func(s *slots) sqlparse.Expr { return &sqlparse.ArrayExpr{Elems: s.exprs()} }},
		{"struct", func(s *slots) sqlparse.Expr {
			return &sqlparse.StructExpr{Fields: []sqlparse.StructField{{Key: "a", Value: s.expr()}, {Key: "b", Value: s.expr()}}}
		}},
		{"map", func(s *slots) sqlparse.Expr {
			return &sqlparse.MapExpr{Entries: []sqlparse.MapEntry{{Key: s.expr(), Value: s.expr()}}}
		}},
		{"interval", func(s *slots) sqlparse.Expr { return &sqlparse.IntervalExpr{Value: s.expr(), Unit: "DAY"} }},
		{"lambda", func(s *slots) sqlparse.Expr { return &sqlparse.LambdaExpr{Body: s.expr()} }},
		{"prior", func(s *slots) sqlparse.Expr { return &sqlparse.PriorExpr{Expr: s.expr()} }},
		{"outer_join_marker", func(s *slots) sqlparse.Expr { return &sqlparse.OuterJoinMarker{Expr: s.expr()} }},
		{"match_against", func(s *slots) sqlparse.Expr {
			return &sqlparse.MatchAgainstExpr{Columns: s.exprs(), Against: s.expr()}
		}},
	}

	covered := map[string]bool{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSlots(t)
			e := tc.build(s)
			covered[fmt.Sprintf("%T", e)] = true

			w := newWalker()
			w.walkExpr(e, -1)
			require.NoError(t, w.err)
			assert.ElementsMatch(t, s.want, extracted(w))
		})
	}

	for _, e := range sqlparse.ExprKinds() {
		assert.True(t, covered[fmt.Sprintf("%T", e)], "no populated case for %T", e)
	}
}

func TestWalkTableRef_ReachesEveryChild(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *slots) sqlparse.TableRef
	}{
		{"table_name", func(s *slots) sqlparse.TableRef {
			return &sqlparse.TableName{
				Name:    []sqlparse.Ident{{Name: "t"}},
				Version: s.expr(),
				Sample:  &sqlparse.TableSample{Method: "BERNOULLI", Args: s.exprs(), Seed: s.expr()},
			}
		}},
		{"derived", func(s *slots) sqlparse.TableRef { return s.table() }},
		{"function", func(s *slots) sqlparse.TableRef { return &sqlparse.FuncTable{Func: s.funcCall()} }},
		{"unnest", func(s *slots) sqlparse.TableRef { return &sqlparse.UnnestTable{Exprs: s.exprs()} }},
		{"nested_join", func(s *slots) sqlparse.TableRef {
			return &sqlparse.NestedJoin{Join: &sqlparse.TableWithJoins{
				Relation: s.table(),
				Joins: []*sqlparse.Join{{
					Op:         sqlparse.JoinLeftOuter,
					Relation:   s.table(),
					Constraint: sqlparse.JoinConstraint{Kind: sqlparse.ConstraintOn, On: s.expr()},
				}},
			}}
		}},
		{"pivot", func(s *slots) sqlparse.TableRef {
			return &sqlparse.PivotTable{
				Source:     s.table(),
				Aggregates: s.items(),
				Values: sqlparse.PivotValues{
					List:       s.items(),
					AnyOrderBy: s.orderBy(),
					Subquery:   s.query(),
				},
				DefaultOnNull: s.expr(),
			}
		}},
		{"unpivot", func(s *slots) sqlparse.TableRef { return &sqlparse.UnpivotTable{Source: s.table()} }},
		{"match_recognize", func(s *slots) sqlparse.TableRef {
			return &sqlparse.MatchRecognize{
				Source:      s.table(),
				PartitionBy: s.exprs(),
				OrderBy:     s.orderBy(),
				Measures:    s.items(),
				Symbols: []sqlparse.SymbolDef{
					{Name: sqlparse.Ident{Name: "a"}, Expr: s.expr()},
					{Name: sqlparse.Ident{Name: "b"}, Expr: s.expr()},
				},
			}
		}},
	}

	covered := map[string]bool{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSlots(t)
			ref := tc.build(s)
			covered[fmt.Sprintf("%T", ref)] = true

			w := newWalker()
			w.walkTableRef(ref, -1)
			require.NoError(t, w.err)
			assert.ElementsMatch(t, s.want, extracted(w))
		})
	}

	for _, ref := range sqlparse.TableRefKinds() {
		assert.True(t, covered[fmt.Sprintf("%T", ref)], "no populated case for %T", ref)
	}
}

func TestWalkJoin_ConstraintPerOperator(t *testing.T) {
	for _, op := range sqlparse.JoinOps() {
		t.Run(op.String(), func(t *testing.T) {
			s := newSlots(t)
			relation := s.table()
			want := append([]string{}, s.want...)
			on := s.expr()
			onSQL := s.want[len(s.want)-1]
			match := s.expr()
			matchSQL := s.want[len(s.want)-1]

			switch op {
			case sqlparse.JoinCross, sqlparse.JoinCrossApply, sqlparse.JoinOuterApply, sqlparse.JoinPositional:
			case sqlparse.JoinAsOf:
				want = append(want, matchSQL, onSQL)
			default:
				want = append(want, onSQL)
			}

			w := newWalker()
			w.walkJoin(&sqlparse.Join{
				Op:             op,
				Relation:       relation,
				Constraint:     sqlparse.JoinConstraint{Kind: sqlparse.ConstraintOn, On: on},
				MatchCondition: match,
			}, -1)
			require.NoError(t, w.err)
			assert.Equal(t, want, extracted(w))
		})
	}
}

func TestWalkSelect_ReachesEveryClause(t *testing.T) {
	s := newSlots(t)
	sel := &sqlparse.Select{
		Distinct:     &sqlparse.Distinct{On: s.exprs()},
		Top:          &sqlparse.Top{Quantity: s.expr()},
		Projection:   s.items(),
		From:         []*sqlparse.TableWithJoins{{Relation: s.table()}, {Relation: s.table()}},
		LateralViews: []sqlparse.LateralView{{Expr: s.expr()}},
		Prewhere:     s.expr(),
		Where:        s.expr(),
		GroupBy:      s.exprs(),
		ClusterBy:    s.exprs(),
		DistributeBy: s.exprs(),
		SortBy:       s.orderBy(),
		Having:       s.expr(),
		Windows:      []sqlparse.NamedWindow{{Name: sqlparse.Ident{Name: "w"}, Spec: s.window()}},
		Qualify:      s.expr(),
		ConnectBy:    &sqlparse.ConnectBy{StartWith: s.expr(), Relationships: s.exprs()},
	}

	w := newWalker()
	w.walkSelect(sel, -1)
	require.NoError(t, w.err)
	assert.Equal(t, s.want, extracted(w))
}

func TestWalkQuery_ReachesEveryTailClause(t *testing.T) {
	s := newSlots(t)
	q := &sqlparse.Query{
		Body: &sqlparse.SetOperation{
			Left:  &sqlparse.ParenQuery{Query: s.query()},
			Right: &sqlparse.Values{Rows: [][]sqlparse.Expr{s.exprs(), s.exprs()}},
		},
		OrderBy: &sqlparse.OrderBy{
			Items: s.orderBy(),
			Interpolate: &sqlparse.Interpolate{Items: []sqlparse.InterpolateItem{
				{Column: sqlparse.Ident{Name: "a"}, Expr: s.expr()},
			}},
		},
		Limit:   s.expr(),
		LimitBy: s.exprs(),
		Offset:  &sqlparse.Offset{Value: s.expr()},
		Fetch:   &sqlparse.Fetch{Quantity: s.expr(), Rows: "ROWS"},
	}

	w := newWalker()
	w.walkQuery(q, -1)
	require.NoError(t, w.err)
	assert.Equal(t, s.want, extracted(w))
}
