package decompose

import "sqlsplit/internal/sqlparse"

func (w *walker) walkExprs(exprs []sqlparse.Expr, owner int) {
	for _, e := range exprs {
		w.walkExpr(e, owner)
	}
}

// walkExpr finds the queries nested in an expression, left to right.
func (w *walker) walkExpr(e sqlparse.Expr, owner int) {
	if e == nil || !w.enter() {
		return
	}
	defer w.leave()

	switch x := e.(type) {
	case *sqlparse.Identifier, *sqlparse.Literal, *sqlparse.TypedString, *sqlparse.Placeholder:
	case *sqlparse.Star:
		for _, r := range x.Replace {
			w.walkExpr(r.Expr, owner)
		}
	case *sqlparse.BinaryExpr:
		w.walkExpr(x.Left, owner)
		w.walkExpr(x.Right, owner)
	case *sqlparse.UnaryExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.ParenExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.TupleExpr:
		w.walkExprs(x.Items, owner)
	case *sqlparse.IsExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.IsDistinctExpr:
		w.walkExpr(x.Left, owner)
		w.walkExpr(x.Right, owner)
	case *sqlparse.InListExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExprs(x.List, owner)
	case *sqlparse.InSubqueryExpr:
		w.walkExpr(x.Expr, owner)
		w.walkQuery(x.Query, owner)
	case *sqlparse.InUnnestExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.Array, owner)
	case *sqlparse.BetweenExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.Low, owner)
		w.walkExpr(x.High, owner)
	case *sqlparse.LikeExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.Pattern, owner)
		w.walkExpr(x.Escape, owner)
	case *sqlparse.AnyAllExpr:
		w.walkExpr(x.Left, owner)
		w.walkQuery(x.Query, owner)
		w.walkExpr(x.Right, owner)
	case *sqlparse.CastExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.ConvertExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.AtTimeZoneExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.Zone, owner)
	case *sqlparse.CollateExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.ExtractExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.PositionExpr:
		w.walkExpr(x.Needle, owner)
		w.walkExpr(x.Haystack, owner)
	case *sqlparse.SubstringExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.From, owner)
		w.walkExpr(x.For, owner)
	case *sqlparse.TrimExpr:
		w.walkExpr(x.Chars, owner)
		w.walkExpr(x.Expr, owner)
	case *sqlparse.OverlayExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.Placing, owner)
		w.walkExpr(x.From, owner)
		w.walkExpr(x.For, owner)
	case *sqlparse.IndexExpr:
		w.walkExpr(x.Expr, owner)
		w.walkExpr(x.Index, owner)
		w.walkExpr(x.Start, owner)
		w.walkExpr(x.Stop, owner)
	case *sqlparse.FuncCall:
		w.walkFuncCall(x, owner)
	case *sqlparse.NamedArg:
		w.walkExpr(x.Value, owner)
	case *sqlparse.CaseExpr:
		w.walkExpr(x.Operand, owner)
		for _, when := range x.Whens {
			w.walkExpr(when.Condition, owner)
			w.walkExpr(when.Result, owner)
		}
		w.walkExpr(x.Else, owner)
	case *sqlparse.ExistsExpr:
		w.walkQuery(x.Query, owner)
	case *sqlparse.SubqueryExpr:
		w.walkQuery(x.Query, owner)
	case *sqlparse.GroupingExpr:
		for _, set := range x.Sets {
			w.walkExprs(set, owner)
		}
	case *sqlparse.ArrayExpr:
		w.walkExprs(x.Elems, owner)
	case *sqlparse.StructExpr:
		for _, field := range x.Fields {
			w.walkExpr(field.Value, owner)
		}
	case *sqlparse.MapExpr:
		for _, entry := range x.Entries {
			w.walkExpr(entry.Key, owner)
			w.walkExpr(entry.Value, owner)
		}
	case *sqlparse.IntervalExpr:
		w.walkExpr(x.Value, owner)
	case *sqlparse.LambdaExpr:
		w.walkExpr(x.Body, owner)
	case *sqlparse.PriorExpr:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.OuterJoinMarker:
		w.walkExpr(x.Expr, owner)
	case *sqlparse.MatchAgainstExpr:
		w.walkExprs(x.Columns, owner)
		w.walkExpr(x.Against, owner)
	default:
		w.unhandled(x)
	}
}

// walkFuncCall walks arguments, then argument clauses, then FILTER, OVER and
// WITHIN GROUP.
func (w *walker) walkFuncCall(fn *sqlparse.FuncCall, owner int) {
	if fn == nil {
		return
	}
	w.walkExprs(fn.Args, owner)
	w.walkQuery(fn.Subquery, owner)
	if fn.HavingBound != nil {
		w.walkExpr(fn.HavingBound.Expr, owner)
	}
	w.walkOrderBy(fn.OrderBy, owner)
	w.walkExpr(fn.Limit, owner)
	w.walkExpr(fn.Separator, owner)
	if fn.OnOverflow != nil {
		w.walkExpr(fn.OnOverflow.Filler, owner)
	}
	w.walkExpr(fn.Filter, owner)
	w.walkWindowSpec(fn.Over, owner)
	w.walkOrderBy(fn.WithinGroup, owner)
}

func (w *walker) walkWindowSpec(spec *sqlparse.WindowSpec, owner int) {
	if spec == nil || spec.Bare {
		return
	}
	w.walkExprs(spec.PartitionBy, owner)
	w.walkOrderBy(spec.OrderBy, owner)
	if spec.Frame != nil {
		for _, bound := range []*sqlparse.FrameBound{spec.Frame.Start, spec.Frame.End} {
			if bound != nil {
				w.walkExpr(bound.Offset, owner)
			}
		}
	}
}
