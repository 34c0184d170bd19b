package decompose

import (
	"fmt"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/sqlparse"
)

// walker accumulates extracted statements. Every type switch below lists
// each AST variant explicitly; the default branches only fire for a variant
// added to sqlparse without a matching case here.
type walker struct {
	dialect  sqlparse.Dialect
	maxDepth int
	depth    int
	res      *Result
	err      error
}

func (w *walker) enter() bool {
	if w.err != nil {
		return false
	}
	w.depth++
	if w.depth > w.maxDepth {
		w.depth--
		w.err = &domain.DepthError{Limit: w.maxDepth}
		return false
	}
	return true
}

func (w *walker) leave() {
	w.depth--
}

func (w *walker) unhandled(n interface{}) {
	if w.err == nil {
		w.err = fmt.Errorf("decompose: unhandled node %T", n)
	}
}

func (w *walker) emit(sql string, owner int) {
	w.res.Statements = append(w.res.Statements, Statement{SQL: sql, With: owner})
}

// === Statements and queries ===

func (w *walker) walkStmt(stmt sqlparse.Stmt) {
	switch s := stmt.(type) {
	case *sqlparse.Query:
		w.walkQuery(s, -1)
	case *sqlparse.OtherStmt:
	default:
		w.unhandled(s)
	}
}

// walkQuery records the query's WITH clause, then walks every CTE body, the
// body and the tail under the WITH just recorded. A CTE body may name sibling
// or recursive CTEs, so it needs the whole clause in scope to run.
func (w *walker) walkQuery(q *sqlparse.Query, owner int) {
	if q == nil || !w.enter() {
		return
	}
	defer w.leave()

	if q.With != nil {
		idx := len(w.res.Withs)
		w.res.Withs = append(w.res.Withs, sqlparse.Format(q.With, w.dialect))
		for _, cte := range q.With.CTEs {
			w.walkQuery(cte.Query, idx)
		}
		owner = idx
	}

	w.walkSetExpr(q.Body, owner, q)

	if q.OrderBy != nil {
		w.walkOrderBy(q.OrderBy.Items, owner)
		if q.OrderBy.Interpolate != nil {
			for _, item := range q.OrderBy.Interpolate.Items {
				w.walkExpr(item.Expr, owner)
			}
		}
	}
	w.walkExpr(q.Limit, owner)
	w.walkExprs(q.LimitBy, owner)
	if q.Offset != nil {
		w.walkExpr(q.Offset.Value, owner)
	}
	if q.Fetch != nil {
		w.walkExpr(q.Fetch.Quantity, owner)
	}
}

// walkSetExpr walks a query body. parent is the query whose direct body this
// is, or nil inside a set operation; a SELECT that is a direct body carries
// the parent's ORDER BY, LIMIT, OFFSET, FETCH and locking clauses.
func (w *walker) walkSetExpr(body sqlparse.SetExpr, owner int, parent *sqlparse.Query) {
	switch b := body.(type) {
	case nil:
	case *sqlparse.Select:
		if parent != nil {
			w.emit(sqlparse.Format(selectQuery(b, parent), w.dialect), owner)
		} else {
			w.emit(sqlparse.Format(b, w.dialect), owner)
		}
		w.walkSelect(b, owner)
	case *sqlparse.SetOperation:
		w.walkSetExpr(b.Left, owner, nil)
		w.walkSetExpr(b.Right, owner, nil)
	case *sqlparse.ParenQuery:
		w.walkQuery(b.Query, owner)
	case *sqlparse.Values:
		for _, row := range b.Rows {
			w.walkExprs(row, owner)
		}
	default:
		w.unhandled(b)
	}
}

// selectQuery wraps sel in a copy of parent's tail clauses, without the
// WITH clause.
func selectQuery(sel *sqlparse.Select, parent *sqlparse.Query) *sqlparse.Query {
	return &sqlparse.Query{
		Body:     sel,
		OrderBy:  parent.OrderBy,
		Limit:    parent.Limit,
		LimitAll: parent.LimitAll,
		LimitBy:  parent.LimitBy,
		Offset:   parent.Offset,
		Fetch:    parent.Fetch,
		Locks:    parent.Locks,
	}
}

func (w *walker) walkSelect(sel *sqlparse.Select, owner int) {
	if sel.Distinct != nil {
		w.walkExprs(sel.Distinct.On, owner)
	}
	if sel.Top != nil {
		w.walkExpr(sel.Top.Quantity, owner)
	}
	for _, item := range sel.Projection {
		w.walkExpr(item.Expr, owner)
	}
	for _, twj := range sel.From {
		w.walkTableWithJoins(twj, owner)
	}
	for _, lv := range sel.LateralViews {
		w.walkExpr(lv.Expr, owner)
	}
	w.walkExpr(sel.Prewhere, owner)
	w.walkExpr(sel.Where, owner)
	w.walkExprs(sel.GroupBy, owner)
	w.walkExprs(sel.ClusterBy, owner)
	w.walkExprs(sel.DistributeBy, owner)
	w.walkOrderBy(sel.SortBy, owner)
	w.walkExpr(sel.Having, owner)
	for _, nw := range sel.Windows {
		w.walkWindowSpec(nw.Spec, owner)
	}
	w.walkExpr(sel.Qualify, owner)
	if sel.ConnectBy != nil {
		w.walkExpr(sel.ConnectBy.StartWith, owner)
		w.walkExprs(sel.ConnectBy.Relationships, owner)
	}
}

func (w *walker) walkOrderBy(items []sqlparse.OrderByItem, owner int) {
	for _, item := range items {
		w.walkExpr(item.Expr, owner)
		if item.WithFill != nil {
			w.walkExpr(item.WithFill.From, owner)
			w.walkExpr(item.WithFill.To, owner)
			w.walkExpr(item.WithFill.Step, owner)
		}
	}
}

// === FROM ===

func (w *walker) walkTableWithJoins(twj *sqlparse.TableWithJoins, owner int) {
	if twj == nil {
		return
	}
	w.walkTableRef(twj.Relation, owner)
	for _, join := range twj.Joins {
		w.walkJoin(join, owner)
	}
}

func (w *walker) walkJoin(join *sqlparse.Join, owner int) {
	w.walkTableRef(join.Relation, owner)
	switch join.Op {
	case sqlparse.JoinInner, sqlparse.JoinLeftOuter, sqlparse.JoinRightOuter, sqlparse.JoinFullOuter,
		sqlparse.JoinLeftSemi, sqlparse.JoinRightSemi, sqlparse.JoinLeftAnti, sqlparse.JoinRightAnti,
		sqlparse.JoinSemi, sqlparse.JoinAnti, sqlparse.JoinStraight:
		w.walkConstraint(join.Constraint, owner)
	case sqlparse.JoinAsOf:
		w.walkExpr(join.MatchCondition, owner)
		w.walkConstraint(join.Constraint, owner)
	case sqlparse.JoinCross, sqlparse.JoinCrossApply, sqlparse.JoinOuterApply, sqlparse.JoinPositional:
	default:
		w.unhandled(join.Op)
	}
}

// walkConstraint walks ON predicates; USING and NATURAL carry no expression.
func (w *walker) walkConstraint(c sqlparse.JoinConstraint, owner int) {
	if c.Kind == sqlparse.ConstraintOn {
		w.walkExpr(c.On, owner)
	}
}

func (w *walker) walkTableRef(ref sqlparse.TableRef, owner int) {
	switch t := ref.(type) {
	case nil:
	case *sqlparse.TableName:
		w.walkExpr(t.Version, owner)
		if t.Sample != nil {
			w.walkExprs(t.Sample.Args, owner)
			w.walkExpr(t.Sample.Seed, owner)
		}
	case *sqlparse.DerivedTable:
		w.walkQuery(t.Query, owner)
	case *sqlparse.FuncTable:
		w.walkFuncCall(t.Func, owner)
	case *sqlparse.UnnestTable:
		w.walkExprs(t.Exprs, owner)
	case *sqlparse.NestedJoin:
		w.walkTableWithJoins(t.Join, owner)
	case *sqlparse.PivotTable:
		w.walkTableRef(t.Source, owner)
		for _, agg := range t.Aggregates {
			w.walkExpr(agg.Expr, owner)
		}
		for _, v := range t.Values.List {
			w.walkExpr(v.Expr, owner)
		}
		w.walkOrderBy(t.Values.AnyOrderBy, owner)
		w.walkQuery(t.Values.Subquery, owner)
		w.walkExpr(t.DefaultOnNull, owner)
	case *sqlparse.UnpivotTable:
		w.walkTableRef(t.Source, owner)
	case *sqlparse.MatchRecognize:
		w.walkTableRef(t.Source, owner)
		w.walkExprs(t.PartitionBy, owner)
		w.walkOrderBy(t.OrderBy, owner)
		for _, m := range t.Measures {
			w.walkExpr(m.Expr, owner)
		}
		for _, sym := range t.Symbols {
			w.walkExpr(sym.Expr, owner)
		}
	default:
		w.unhandled(t)
	}
}
