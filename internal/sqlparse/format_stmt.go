package sqlparse

import "strings"

// === Queries ===

func (f *formatter) formatQuery(q *Query) {
	if q == nil {
		return
	}
	if q.With != nil {
		f.formatWith(q.With)
		f.space()
	}
	f.formatSetExpr(q.Body)

	if q.OrderBy != nil {
		f.write(" ORDER BY ")
		f.formatQueryOrderBy(q.OrderBy)
	}
	switch {
	case q.LimitAll:
		f.write(" LIMIT ALL")
	case q.Limit != nil:
		f.write(" LIMIT ")
		f.formatExpr(q.Limit)
		if len(q.LimitBy) > 0 {
			f.write(" BY ")
			f.exprList(q.LimitBy)
		}
	}
	if q.Offset != nil {
		f.write(" OFFSET ")
		f.formatExpr(q.Offset.Value)
		if q.Offset.Rows != "" {
			f.space()
			f.write(q.Offset.Rows)
		}
	}
	if q.Fetch != nil {
		f.formatFetch(q.Fetch)
	}
	for _, lock := range q.Locks {
		f.formatLock(lock)
	}
}

// formatWith writes the WITH clause without a trailing space.
func (f *formatter) formatWith(w *With) {
	f.write("WITH ")
	if w.Recursive {
		f.write("RECURSIVE ")
	}
	f.commaSep(len(w.CTEs), func(i int) {
		cte := w.CTEs[i]
		f.writeIdent(cte.Name)
		if len(cte.Columns) > 0 {
			f.write(" (")
			f.identList(cte.Columns)
			f.write(")")
		}
		f.write(" AS ")
		if cte.Materialized != "" {
			f.write(cte.Materialized)
			f.space()
		}
		f.write("(")
		f.formatQuery(cte.Query)
		f.write(")")
	})
}

func (f *formatter) formatQueryOrderBy(ob *OrderBy) {
	if ob.All {
		f.write("ALL")
		if ob.AllDesc {
			f.write(" DESC")
		}
	} else {
		f.orderByItems(ob.Items)
	}
	if ob.Interpolate != nil {
		f.write(" INTERPOLATE")
		if len(ob.Interpolate.Items) > 0 {
			f.write(" (")
			f.commaSep(len(ob.Interpolate.Items), func(i int) {
				item := ob.Interpolate.Items[i]
				f.writeIdent(item.Column)
				if item.Expr != nil {
					f.write(" AS ")
					f.formatExpr(item.Expr)
				}
			})
			f.write(")")
		}
	}
}

func (f *formatter) orderByItems(items []OrderByItem) {
	f.commaSep(len(items), func(i int) {
		item := items[i]
		f.formatExpr(item.Expr)
		if item.Desc {
			f.write(" DESC")
		}
		if item.NullsFirst != nil {
			if *item.NullsFirst {
				f.write(" NULLS FIRST")
			} else {
				f.write(" NULLS LAST")
			}
		}
		if fill := item.WithFill; fill != nil {
			f.write(" WITH FILL")
			if fill.From != nil {
				f.write(" FROM ")
				f.formatExpr(fill.From)
			}
			if fill.To != nil {
				f.write(" TO ")
				f.formatExpr(fill.To)
			}
			if fill.Step != nil {
				f.write(" STEP ")
				f.formatExpr(fill.Step)
			}
		}
	})
}

func (f *formatter) formatFetch(fetch *Fetch) {
	if fetch.Next {
		f.write(" FETCH NEXT")
	} else {
		f.write(" FETCH FIRST")
	}
	if fetch.Quantity != nil {
		f.space()
		f.formatExpr(fetch.Quantity)
		if fetch.Percent {
			f.write(" PERCENT")
		}
	}
	f.space()
	f.write(fetch.Rows)
	if fetch.WithTies {
		f.write(" WITH TIES")
	} else {
		f.write(" ONLY")
	}
}

func (f *formatter) formatLock(lock LockClause) {
	f.write(" FOR ")
	f.write(lock.Strength)
	if len(lock.Of) > 0 {
		f.write(" OF ")
		f.commaSep(len(lock.Of), func(i int) { f.writeName(lock.Of[i]) })
	}
	if lock.Wait != "" {
		f.space()
		f.write(lock.Wait)
	}
}

// === Query bodies ===

func (f *formatter) formatSetExpr(body SetExpr) {
	switch b := body.(type) {
	case *Select:
		f.formatSelect(b)
	case *SetOperation:
		f.formatSetOperation(b)
	case *ParenQuery:
		f.write("(")
		f.formatQuery(b.Query)
		f.write(")")
	case *Values:
		f.formatValues(b)
	}
}

var setOpNames = map[SetOpType]string{
	SetUnion:     "UNION",
	SetExcept:    "EXCEPT",
	SetIntersect: "INTERSECT",
}

var quantifierNames = map[SetQuantifier]string{
	QuantifierAll:            " ALL",
	QuantifierDistinct:       " DISTINCT",
	QuantifierByName:         " BY NAME",
	QuantifierAllByName:      " ALL BY NAME",
	QuantifierDistinctByName: " DISTINCT BY NAME",
}

func (f *formatter) formatSetOperation(op *SetOperation) {
	f.formatSetExpr(op.Left)
	f.space()
	f.write(setOpNames[op.Op])
	f.write(quantifierNames[op.Quantifier])
	if op.Corresponding {
		f.write(" CORRESPONDING")
		if len(op.CorrespondingBy) > 0 {
			f.write(" BY (")
			f.identList(op.CorrespondingBy)
			f.write(")")
		}
	}
	f.space()
	f.formatSetExpr(op.Right)
}

func (f *formatter) formatValues(v *Values) {
	f.write("VALUES ")
	f.commaSep(len(v.Rows), func(i int) {
		if v.ExplicitRow {
			f.write("ROW")
		}
		f.write("(")
		f.exprList(v.Rows[i])
		f.write(")")
	})
}

func (f *formatter) formatSelect(sel *Select) {
	if sel.FromFirst {
		f.write("FROM ")
		f.fromList(sel.From)
		if len(sel.Projection) > 0 {
			f.space()
			f.formatSelectHead(sel)
		}
	} else {
		f.formatSelectHead(sel)
		if len(sel.From) > 0 {
			f.write(" FROM ")
			f.fromList(sel.From)
		}
	}

	for _, lv := range sel.LateralViews {
		f.write(" LATERAL VIEW ")
		if lv.Outer {
			f.write("OUTER ")
		}
		f.formatExpr(lv.Expr)
		if len(lv.Name) > 0 {
			f.space()
			f.writeName(lv.Name)
		}
		if len(lv.Columns) > 0 {
			f.write(" AS ")
			f.identList(lv.Columns)
		}
	}
	if sel.Prewhere != nil {
		f.write(" PREWHERE ")
		f.formatExpr(sel.Prewhere)
	}
	if sel.Where != nil {
		f.write(" WHERE ")
		f.formatExpr(sel.Where)
	}
	if sel.ConnectBy != nil {
		f.formatConnectBy(sel.ConnectBy)
	}
	switch {
	case sel.GroupByAll:
		f.write(" GROUP BY ALL")
	case len(sel.GroupBy) > 0:
		f.write(" GROUP BY ")
		f.exprList(sel.GroupBy)
	}
	if sel.WithRollup {
		f.write(" WITH ROLLUP")
	}
	if sel.Having != nil {
		f.write(" HAVING ")
		f.formatExpr(sel.Having)
	}
	if len(sel.ClusterBy) > 0 {
		f.write(" CLUSTER BY ")
		f.exprList(sel.ClusterBy)
	}
	if len(sel.DistributeBy) > 0 {
		f.write(" DISTRIBUTE BY ")
		f.exprList(sel.DistributeBy)
	}
	if len(sel.SortBy) > 0 {
		f.write(" SORT BY ")
		f.orderByItems(sel.SortBy)
	}
	if len(sel.Windows) > 0 {
		f.write(" WINDOW ")
		f.commaSep(len(sel.Windows), func(i int) {
			w := sel.Windows[i]
			f.writeIdent(w.Name)
			f.write(" AS ")
			f.formatWindowSpec(w.Spec)
		})
	}
	if sel.Qualify != nil {
		f.write(" QUALIFY ")
		f.formatExpr(sel.Qualify)
	}
}

// formatSelectHead writes SELECT [DISTINCT] [TOP] projection.
func (f *formatter) formatSelectHead(sel *Select) {
	f.write("SELECT ")
	if sel.Distinct != nil {
		f.write("DISTINCT ")
		if len(sel.Distinct.On) > 0 {
			f.write("ON (")
			f.exprList(sel.Distinct.On)
			f.write(") ")
		}
	}
	if sel.Top != nil {
		f.write("TOP ")
		f.formatExpr(sel.Top.Quantity)
		if sel.Top.Percent {
			f.write(" PERCENT")
		}
		if sel.Top.WithTies {
			f.write(" WITH TIES")
		}
		f.space()
	}
	f.selectItems(sel.Projection)
}

func (f *formatter) selectItems(items []SelectItem) {
	f.commaSep(len(items), func(i int) {
		f.formatExpr(items[i].Expr)
		if items[i].Alias != nil {
			f.write(" AS ")
			f.writeIdent(*items[i].Alias)
		}
	})
}

func (f *formatter) formatConnectBy(cb *ConnectBy) {
	start := func() {
		if cb.StartWith != nil {
			f.write(" START WITH ")
			f.formatExpr(cb.StartWith)
		}
	}
	if cb.StartFirst {
		start()
	}
	f.write(" CONNECT BY ")
	if cb.NoCycle {
		f.write("NOCYCLE ")
	}
	f.exprList(cb.Relationships)
	if !cb.StartFirst {
		start()
	}
}

// === FROM ===

func (f *formatter) fromList(items []*TableWithJoins) {
	f.commaSep(len(items), func(i int) { f.formatTableWithJoins(items[i]) })
}

func (f *formatter) formatTableWithJoins(twj *TableWithJoins) {
	f.formatTableRef(twj.Relation)
	for _, join := range twj.Joins {
		f.formatJoin(join)
	}
}

var joinOpNames = map[JoinOp]string{
	JoinInner:      "JOIN",
	JoinLeftOuter:  "LEFT JOIN",
	JoinRightOuter: "RIGHT JOIN",
	JoinFullOuter:  "FULL JOIN",
	JoinLeftSemi:   "LEFT SEMI JOIN",
	JoinRightSemi:  "RIGHT SEMI JOIN",
	JoinLeftAnti:   "LEFT ANTI JOIN",
	JoinRightAnti:  "RIGHT ANTI JOIN",
	JoinSemi:       "SEMI JOIN",
	JoinAnti:       "ANTI JOIN",
	JoinAsOf:       "ASOF JOIN",
	JoinStraight:   "STRAIGHT_JOIN",
	JoinCross:      "CROSS JOIN",
	JoinCrossApply: "CROSS APPLY",
	JoinOuterApply: "OUTER APPLY",
	JoinPositional: "POSITIONAL JOIN",
}

// String returns the SQL keywords of the join operator.
func (op JoinOp) String() string {
	return joinOpNames[op]
}

func (f *formatter) formatJoin(join *Join) {
	f.space()
	if join.Constraint.Kind == ConstraintNatural {
		f.write("NATURAL ")
	}
	f.write(joinOpNames[join.Op])
	f.space()
	f.formatTableRef(join.Relation)
	if join.MatchCondition != nil {
		f.write(" MATCH_CONDITION (")
		f.formatExpr(join.MatchCondition)
		f.write(")")
	}
	switch join.Constraint.Kind {
	case ConstraintOn:
		f.write(" ON ")
		f.formatExpr(join.Constraint.On)
	case ConstraintUsing:
		f.write(" USING (")
		f.identList(join.Constraint.Using)
		f.write(")")
	}
}

func (f *formatter) formatTableAlias(alias *TableAlias) {
	if alias == nil {
		return
	}
	f.write(" AS ")
	f.writeIdent(alias.Name)
	if len(alias.Columns) > 0 {
		f.write(" (")
		f.identList(alias.Columns)
		f.write(")")
	}
}

func (f *formatter) formatTableRef(ref TableRef) {
	switch t := ref.(type) {
	case *TableName:
		f.formatTableName(t)
	case *DerivedTable:
		if t.Lateral {
			f.write("LATERAL ")
		}
		f.write("(")
		f.formatQuery(t.Query)
		f.write(")")
		f.formatTableAlias(t.Alias)
	case *FuncTable:
		if t.Lateral {
			f.write("LATERAL ")
		}
		f.formatFuncCall(t.Func)
		if t.WithOrdinality {
			f.write(" WITH ORDINALITY")
		}
		f.formatTableAlias(t.Alias)
	case *UnnestTable:
		f.write("UNNEST(")
		f.exprList(t.Exprs)
		f.write(")")
		if t.WithOrdinality {
			f.write(" WITH ORDINALITY")
		}
		f.formatTableAlias(t.Alias)
		if t.WithOffset {
			f.write(" WITH OFFSET")
			if t.OffsetAlias != nil {
				f.write(" AS ")
				f.writeIdent(*t.OffsetAlias)
			}
		}
	case *NestedJoin:
		f.write("(")
		f.formatTableWithJoins(t.Join)
		f.write(")")
		f.formatTableAlias(t.Alias)
	case *PivotTable:
		f.formatPivot(t)
	case *UnpivotTable:
		f.formatUnpivot(t)
	case *MatchRecognize:
		f.formatMatchRecognize(t)
	}
}

func (f *formatter) formatTableName(t *TableName) {
	f.writeName(t.Name)
	if t.Version != nil {
		f.write(" FOR SYSTEM_TIME AS OF ")
		f.formatExpr(t.Version)
	}
	f.formatTableAlias(t.Alias)
	for _, hint := range t.IndexHints {
		f.space()
		f.write(hint.Action)
		f.space()
		f.write(hint.Kind)
		if hint.For != "" {
			f.write(" FOR ")
			f.write(hint.For)
		}
		f.write(" (")
		f.identList(hint.Names)
		f.write(")")
	}
	if s := t.Sample; s != nil {
		f.write(" TABLESAMPLE ")
		f.write(s.Method)
		f.write("(")
		f.exprList(s.Args)
		f.write(")")
		if s.Seed != nil {
			f.write(" REPEATABLE (")
			f.formatExpr(s.Seed)
			f.write(")")
		}
	}
}

func (f *formatter) formatPivot(t *PivotTable) {
	f.formatTableRef(t.Source)
	f.write(" PIVOT (")
	f.selectItems(t.Aggregates)
	f.write(" FOR ")
	f.parenIdents(t.For)
	f.write(" IN (")
	switch {
	case t.Values.Any:
		f.write("ANY")
		if len(t.Values.AnyOrderBy) > 0 {
			f.write(" ORDER BY ")
			f.orderByItems(t.Values.AnyOrderBy)
		}
	case t.Values.Subquery != nil:
		f.formatQuery(t.Values.Subquery)
	default:
		f.selectItems(t.Values.List)
	}
	f.write(")")
	if t.DefaultOnNull != nil {
		f.write(" DEFAULT ON NULL (")
		f.formatExpr(t.DefaultOnNull)
		f.write(")")
	}
	f.write(")")
	f.formatTableAlias(t.Alias)
}

func (f *formatter) formatUnpivot(t *UnpivotTable) {
	f.formatTableRef(t.Source)
	f.write(" UNPIVOT")
	if t.IncludeNulls != nil {
		if *t.IncludeNulls {
			f.write(" INCLUDE NULLS")
		} else {
			f.write(" EXCLUDE NULLS")
		}
	}
	f.write(" (")
	f.parenIdents(t.Value)
	f.write(" FOR ")
	f.writeIdent(t.Name)
	f.write(" IN (")
	f.commaSep(len(t.Columns), func(i int) {
		col := t.Columns[i]
		f.parenIdents(col.Columns)
		if col.Alias != nil {
			f.write(" AS ")
			f.writeIdent(*col.Alias)
		}
	})
	f.write("))")
	f.formatTableAlias(t.Alias)
}

func (f *formatter) formatMatchRecognize(t *MatchRecognize) {
	f.formatTableRef(t.Source)
	f.write(" MATCH_RECOGNIZE (")
	var clauses []func()
	if len(t.PartitionBy) > 0 {
		clauses = append(clauses, func() {
			f.write("PARTITION BY ")
			f.exprList(t.PartitionBy)
		})
	}
	if len(t.OrderBy) > 0 {
		clauses = append(clauses, func() {
			f.write("ORDER BY ")
			f.orderByItems(t.OrderBy)
		})
	}
	if len(t.Measures) > 0 {
		clauses = append(clauses, func() {
			f.write("MEASURES ")
			f.selectItems(t.Measures)
		})
	}
	if len(t.RowsPerMatch) > 0 {
		clauses = append(clauses, func() { f.write(strings.Join(t.RowsPerMatch, " ")) })
	}
	if len(t.AfterMatchSkip) > 0 {
		clauses = append(clauses, func() { f.write(strings.Join(t.AfterMatchSkip, " ")) })
	}
	clauses = append(clauses, func() {
		f.write("PATTERN (")
		f.write(strings.Join(t.Pattern, " "))
		f.write(")")
	}, func() {
		f.write("DEFINE ")
		f.commaSep(len(t.Symbols), func(i int) {
			f.writeIdent(t.Symbols[i].Name)
			f.write(" AS ")
			f.formatExpr(t.Symbols[i].Expr)
		})
	})
	for i, clause := range clauses {
		if i > 0 {
			f.space()
		}
		clause()
	}
	f.write(")")
	f.formatTableAlias(t.Alias)
}
