package sqlparse

// === Query Parsing ===

// parseQuery parses [WITH ...] body [ORDER BY] [LIMIT] [OFFSET] [FETCH] [FOR ...].
func (p *Parser) parseQuery() *Query {
	if !p.enter() {
		return &Query{}
	}
	defer p.leave()

	var with *With
	if p.check(TOKEN_WITH) {
		with = p.parseWithClause()
		if p.failed() {
			return &Query{With: with}
		}
	}
	return p.parseQueryBody(with)
}

// parseQueryAfterWith parses the rest of a query whose WITH clause has
// already been consumed.
func (p *Parser) parseQueryAfterWith(with *With) *Query {
	if !p.enter() {
		return &Query{}
	}
	defer p.leave()
	return p.parseQueryBody(with)
}

func (p *Parser) parseQueryBody(with *With) *Query {
	q := &Query{With: with}
	q.Body = p.parseSetExpr(0)
	if p.failed() {
		return q
	}
	p.parseQueryTail(q)
	return q
}

// parseWithClause parses WITH [RECURSIVE] cte, cte, ...
func (p *Parser) parseWithClause() *With {
	p.expect(TOKEN_WITH)
	w := &With{}
	if p.matchSoftKeyword("RECURSIVE") {
		w.Recursive = true
	}
	for {
		w.CTEs = append(w.CTEs, p.parseCTE())
		if p.failed() || !p.match(TOKEN_COMMA) {
			return w
		}
	}
}

// parseCTE parses name [(cols)] AS [[NOT] MATERIALIZED] (query).
func (p *Parser) parseCTE() *CTE {
	cte := &CTE{Name: p.parseIdent(false)}
	if p.check(TOKEN_LPAREN) {
		cte.Columns = p.parseParenIdentList()
	}
	if !p.expect(TOKEN_AS) {
		return cte
	}
	switch {
	case p.check(TOKEN_NOT) && isSoft(p.peek, "MATERIALIZED"):
		p.nextToken()
		p.nextToken()
		cte.Materialized = "NOT MATERIALIZED"
	case p.matchSoftKeyword("MATERIALIZED"):
		cte.Materialized = "MATERIALIZED"
	}
	if !p.expect(TOKEN_LPAREN) {
		return cte
	}
	cte.Query = p.parseQuery()
	p.expect(TOKEN_RPAREN)
	return cte
}

// setOperator returns the set operator at the current token and its binding
// power. INTERSECT binds tighter than UNION and EXCEPT.
func (p *Parser) setOperator() (SetOpType, int, bool) {
	switch {
	case p.check(TOKEN_UNION):
		return SetUnion, 1, true
	case p.check(TOKEN_EXCEPT):
		return SetExcept, 1, true
	case p.check(TOKEN_INTERSECT):
		return SetIntersect, 2, true
	case p.dialect.supports(featOracle) && p.checkSoft("MINUS"):
		return SetExcept, 1, true
	}
	return 0, 0, false
}

// parseSetExpr parses query bodies joined by set operators, left-associative
// within one precedence level.
func (p *Parser) parseSetExpr(minPrec int) SetExpr {
	left := p.parseSetOperand()
	for !p.failed() {
		op, prec, ok := p.setOperator()
		if !ok || prec < minPrec {
			break
		}
		p.nextToken()
		setOp := &SetOperation{Op: op, Left: left}
		setOp.Quantifier = p.parseSetQuantifier()
		if p.matchSoftKeyword("CORRESPONDING") {
			setOp.Corresponding = true
			if p.match(TOKEN_BY) {
				setOp.CorrespondingBy = p.parseParenIdentList()
			}
		}
		setOp.Right = p.parseSetExpr(prec + 1)
		left = setOp
	}
	return left
}

func (p *Parser) parseSetQuantifier() SetQuantifier {
	byName := func() bool {
		if p.dialect.supports(featDuckDB) && p.check(TOKEN_BY) && isSoft(p.peek, "NAME") {
			p.nextToken()
			p.nextToken()
			return true
		}
		return false
	}
	switch {
	case p.match(TOKEN_ALL):
		if byName() {
			return QuantifierAllByName
		}
		return QuantifierAll
	case p.match(TOKEN_DISTINCT):
		if byName() {
			return QuantifierDistinctByName
		}
		return QuantifierDistinct
	case byName():
		return QuantifierByName
	}
	return QuantifierNone
}

// parseSetOperand parses one operand of a set operation.
func (p *Parser) parseSetOperand() SetExpr {
	switch {
	case p.check(TOKEN_SELECT):
		return p.parseSelect()
	case p.check(TOKEN_FROM) && p.dialect.supports(featDuckDB):
		return p.parseSelect()
	case p.check(TOKEN_VALUES):
		return p.parseValues()
	case p.check(TOKEN_LPAREN):
		p.nextToken()
		q := p.parseQuery()
		p.expect(TOKEN_RPAREN)
		return &ParenQuery{Query: q}
	default:
		p.addError("unexpected %s, expected SELECT, VALUES, or (", p.describe(p.token))
		return nil
	}
}

// parseValues parses VALUES (row), (row), ...
func (p *Parser) parseValues() *Values {
	p.expect(TOKEN_VALUES)
	v := &Values{}
	for {
		if p.dialect.supports(featMySQLExtra) && p.checkSoft("ROW") && p.checkPeek(TOKEN_LPAREN) {
			p.nextToken()
			v.ExplicitRow = true
		}
		if !p.expect(TOKEN_LPAREN) {
			return v
		}
		var row []Expr
		if !p.check(TOKEN_RPAREN) {
			row = p.parseExpressionList()
		}
		p.expect(TOKEN_RPAREN)
		v.Rows = append(v.Rows, row)
		if p.failed() || !p.match(TOKEN_COMMA) {
			return v
		}
	}
}

// parseQueryTail parses the clauses that follow a query body.
func (p *Parser) parseQueryTail(q *Query) {
	if p.check(TOKEN_ORDER) {
		q.OrderBy = p.parseQueryOrderBy()
	}
	for !p.failed() {
		switch {
		case p.check(TOKEN_LIMIT) && q.Limit == nil && !q.LimitAll:
			p.parseLimit(q)
		case p.check(TOKEN_OFFSET) && q.Offset == nil:
			p.nextToken()
			q.Offset = &Offset{Value: p.parseExpression()}
			switch {
			case p.matchSoftKeyword("ROWS"):
				q.Offset.Rows = "ROWS"
			case p.matchSoftKeyword("ROW"):
				q.Offset.Rows = "ROW"
			}
		case p.check(TOKEN_FETCH) && q.Fetch == nil:
			q.Fetch = p.parseFetch()
		case p.check(TOKEN_FOR) && p.dialect.supports(featLockClause) &&
			(isSoft(p.peek, "UPDATE") || isSoft(p.peek, "SHARE") || isSoft(p.peek, "NO") || isSoft(p.peek, "KEY")):
			q.Locks = append(q.Locks, p.parseLockClause())
		default:
			return
		}
	}
}

// parseLimit parses LIMIT ALL, LIMIT n, LIMIT offset, n, and LIMIT n BY exprs.
func (p *Parser) parseLimit(q *Query) {
	p.nextToken()
	if p.match(TOKEN_ALL) {
		q.LimitAll = true
		return
	}
	first := p.parseExpression()
	if p.check(TOKEN_COMMA) && p.dialect.supports(featLimitComma) && q.Offset == nil {
		p.nextToken()
		q.Offset = &Offset{Value: first}
		q.Limit = p.parseExpression()
		return
	}
	q.Limit = first
	if p.check(TOKEN_BY) && p.dialect.supports(featClickHouse) {
		p.nextToken()
		q.LimitBy = p.parseExpressionList()
	}
}

// parseFetch parses FETCH {FIRST|NEXT} [n [PERCENT]] {ROW|ROWS} {ONLY|WITH TIES}.
func (p *Parser) parseFetch() *Fetch {
	p.expect(TOKEN_FETCH)
	f := &Fetch{}
	if p.matchSoftKeyword("NEXT") {
		f.Next = true
	} else if !p.expectSoft("FIRST") {
		return f
	}
	if !p.checkSoft("ROW") && !p.checkSoft("ROWS") {
		f.Quantity = p.parseExpression()
		if p.matchSoftKeyword("PERCENT") {
			f.Percent = true
		}
	}
	switch {
	case p.matchSoftKeyword("ROWS"):
		f.Rows = "ROWS"
	case p.matchSoftKeyword("ROW"):
		f.Rows = "ROW"
	default:
		p.addError("unexpected %s, expected ROW or ROWS", p.describe(p.token))
		return f
	}
	if p.check(TOKEN_WITH) {
		p.nextToken()
		if p.expectSoft("TIES") {
			f.WithTies = true
		}
		return f
	}
	p.expectSoft("ONLY")
	return f
}

// parseLockClause parses FOR UPDATE|SHARE|NO KEY UPDATE|KEY SHARE [OF ...] [NOWAIT|SKIP LOCKED].
func (p *Parser) parseLockClause() LockClause {
	p.expect(TOKEN_FOR)
	var lc LockClause
	switch {
	case p.matchSoftKeyword("UPDATE"):
		lc.Strength = "UPDATE"
	case p.matchSoftKeyword("SHARE"):
		lc.Strength = "SHARE"
	case p.matchSoftKeyword("NO"):
		if p.expectSoft("KEY") && p.expectSoft("UPDATE") {
			lc.Strength = "NO KEY UPDATE"
		}
	case p.matchSoftKeyword("KEY"):
		if p.expectSoft("SHARE") {
			lc.Strength = "KEY SHARE"
		}
	}
	if p.matchSoftKeyword("OF") {
		for {
			lc.Of = append(lc.Of, p.parseObjectName())
			if p.failed() || !p.match(TOKEN_COMMA) {
				break
			}
		}
	}
	switch {
	case p.matchSoftKeyword("NOWAIT"):
		lc.Wait = "NOWAIT"
	case p.checkSoft("SKIP") && isSoft(p.peek, "LOCKED"):
		p.nextToken()
		p.nextToken()
		lc.Wait = "SKIP LOCKED"
	}
	return lc
}

// parseQueryOrderBy parses a query-level ORDER BY clause.
func (p *Parser) parseQueryOrderBy() *OrderBy {
	p.expect(TOKEN_ORDER)
	p.expect(TOKEN_BY)
	ob := &OrderBy{}
	if p.check(TOKEN_ALL) && p.dialect.supports(featDuckDB) {
		p.nextToken()
		ob.All = true
		if p.match(TOKEN_DESC) {
			ob.AllDesc = true
		} else {
			p.match(TOKEN_ASC)
		}
	} else {
		ob.Items = p.parseOrderByList()
	}
	if p.dialect.supports(featClickHouse) && p.matchSoftKeyword("INTERPOLATE") {
		ob.Interpolate = p.parseInterpolate()
	}
	return ob
}

// parseInterpolate parses INTERPOLATE [(col [AS expr], ...)].
func (p *Parser) parseInterpolate() *Interpolate {
	in := &Interpolate{}
	if !p.match(TOKEN_LPAREN) {
		return in
	}
	for !p.failed() && !p.check(TOKEN_RPAREN) {
		item := InterpolateItem{Column: p.parseIdent(false)}
		if p.match(TOKEN_AS) {
			item.Expr = p.parseExpression()
		}
		in.Items = append(in.Items, item)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return in
}

// parseOrderByList parses expr [ASC|DESC] [NULLS FIRST|LAST] [WITH FILL ...], ...
func (p *Parser) parseOrderByList() []OrderByItem {
	var items []OrderByItem
	for {
		items = append(items, p.parseOrderByItem())
		if p.failed() || !p.match(TOKEN_COMMA) {
			return items
		}
	}
}

func (p *Parser) parseOrderByItem() OrderByItem {
	item := OrderByItem{Expr: p.parseExpression()}
	if p.match(TOKEN_DESC) {
		item.Desc = true
	} else {
		p.match(TOKEN_ASC)
	}
	if p.matchSoftKeyword("NULLS") {
		first := true
		switch {
		case p.matchSoftKeyword("FIRST"):
		case p.expectSoft("LAST"):
			first = false
		}
		item.NullsFirst = &first
	}
	if p.dialect.supports(featClickHouse) && p.check(TOKEN_WITH) && isSoft(p.peek, "FILL") {
		p.nextToken()
		p.nextToken()
		fill := &WithFill{}
		if p.match(TOKEN_FROM) {
			fill.From = p.parseExpression()
		}
		if p.matchSoftKeyword("TO") {
			fill.To = p.parseExpression()
		}
		if p.matchSoftKeyword("STEP") {
			fill.Step = p.parseExpression()
		}
		item.WithFill = fill
	}
	return item
}

// === SELECT ===

// parseSelect parses a SELECT block (or DuckDB's FROM-first form).
func (p *Parser) parseSelect() *Select {
	sel := &Select{}
	if p.check(TOKEN_FROM) {
		p.nextToken()
		sel.FromFirst = true
		sel.From = p.parseFromList()
		if !p.match(TOKEN_SELECT) {
			p.parseSelectClauses(sel)
			return sel
		}
	} else {
		p.expect(TOKEN_SELECT)
	}

	if p.match(TOKEN_DISTINCT) {
		sel.Distinct = &Distinct{}
		if p.check(TOKEN_ON) && p.dialect.supports(featDistinctOn) {
			p.nextToken()
			p.expect(TOKEN_LPAREN)
			sel.Distinct.On = p.parseExpressionList()
			p.expect(TOKEN_RPAREN)
		}
	} else {
		p.match(TOKEN_ALL)
	}

	if p.dialect.supports(featMSSQL) && p.checkSoft("TOP") && (p.checkPeek(TOKEN_NUMBER) || p.checkPeek(TOKEN_LPAREN)) {
		p.nextToken()
		sel.Top = &Top{Quantity: p.parsePrimary()}
		if p.matchSoftKeyword("PERCENT") {
			sel.Top.Percent = true
		}
		if p.check(TOKEN_WITH) && isSoft(p.peek, "TIES") {
			p.nextToken()
			p.nextToken()
			sel.Top.WithTies = true
		}
	}

	sel.Projection = p.parseSelectList()
	if p.failed() {
		return sel
	}

	if !sel.FromFirst && p.match(TOKEN_FROM) {
		sel.From = p.parseFromList()
	}
	p.parseSelectClauses(sel)
	return sel
}

// parseSelectClauses parses everything after FROM up to the end of the block.
func (p *Parser) parseSelectClauses(sel *Select) {
	for p.dialect.supports(featHive) && p.check(TOKEN_LATERAL) && isSoft(p.peek, "VIEW") && !p.failed() {
		sel.LateralViews = append(sel.LateralViews, p.parseLateralView())
	}
	if p.dialect.supports(featClickHouse) && p.matchSoftKeyword("PREWHERE") {
		sel.Prewhere = p.parseExpression()
	}
	if p.match(TOKEN_WHERE) {
		sel.Where = p.parseExpression()
	}
	if p.startsConnectBy() {
		sel.ConnectBy = p.parseConnectBy()
	}
	if p.check(TOKEN_GROUP) {
		p.nextToken()
		p.expect(TOKEN_BY)
		if p.check(TOKEN_ALL) && p.dialect.supports(featDuckDB) {
			p.nextToken()
			sel.GroupByAll = true
		} else {
			sel.GroupBy = p.parseGroupByList()
		}
		if p.dialect.supports(featMySQLExtra) && p.check(TOKEN_WITH) && isSoft(p.peek, "ROLLUP") {
			p.nextToken()
			p.nextToken()
			sel.WithRollup = true
		}
	}
	p.parseHiveClauses(sel)
	if p.match(TOKEN_HAVING) {
		sel.Having = p.parseExpression()
	}
	p.parseHiveClauses(sel)
	for !p.failed() {
		switch {
		case p.check(TOKEN_WINDOW) && sel.Windows == nil:
			sel.Windows = p.parseWindowClause()
		case p.dialect.supports(featDuckDB) && sel.Qualify == nil && p.checkSoft("QUALIFY"):
			p.nextToken()
			sel.Qualify = p.parseExpression()
		case sel.ConnectBy == nil && p.startsConnectBy():
			sel.ConnectBy = p.parseConnectBy()
		default:
			return
		}
	}
}

// parseHiveClauses parses CLUSTER BY, DISTRIBUTE BY, and SORT BY.
func (p *Parser) parseHiveClauses(sel *Select) {
	if !p.dialect.supports(featHive) {
		return
	}
	if sel.ClusterBy == nil && p.checkSoft("CLUSTER") && p.checkPeek(TOKEN_BY) {
		p.nextToken()
		p.nextToken()
		sel.ClusterBy = p.parseExpressionList()
	}
	if sel.DistributeBy == nil && p.checkSoft("DISTRIBUTE") && p.checkPeek(TOKEN_BY) {
		p.nextToken()
		p.nextToken()
		sel.DistributeBy = p.parseExpressionList()
	}
	if sel.SortBy == nil && p.checkSoft("SORT") && p.checkPeek(TOKEN_BY) {
		p.nextToken()
		p.nextToken()
		sel.SortBy = p.parseOrderByList()
	}
}

func (p *Parser) startsConnectBy() bool {
	if !p.dialect.supports(featOracle) {
		return false
	}
	return p.checkSoft("START") && p.checkPeek(TOKEN_WITH) ||
		p.checkSoft("CONNECT") && p.checkPeek(TOKEN_BY)
}

// parseConnectBy parses START WITH cond CONNECT BY [NOCYCLE] rels, in
// either order.
func (p *Parser) parseConnectBy() *ConnectBy {
	cb := &ConnectBy{}
	parseStart := func() {
		p.nextToken()
		p.nextToken()
		cb.StartWith = p.parseExpression()
	}
	parseConnect := func() {
		if !p.expectSoft("CONNECT") || !p.expect(TOKEN_BY) {
			return
		}
		if p.matchSoftKeyword("NOCYCLE") {
			cb.NoCycle = true
		}
		cb.Relationships = p.parseExpressionList()
	}
	if p.checkSoft("START") {
		cb.StartFirst = true
		parseStart()
		parseConnect()
		return cb
	}
	parseConnect()
	if p.checkSoft("START") && p.checkPeek(TOKEN_WITH) {
		parseStart()
	}
	return cb
}

// parseLateralView parses LATERAL VIEW [OUTER] expr name [AS col, ...].
func (p *Parser) parseLateralView() LateralView {
	p.nextToken()
	p.nextToken()
	lv := LateralView{}
	if p.match(TOKEN_OUTER) {
		lv.Outer = true
	}
	lv.Expr = p.parseExpression()
	if p.check(TOKEN_IDENT) {
		lv.Name = p.parseObjectName()
	}
	if p.match(TOKEN_AS) {
		lv.Columns = p.parseIdentList()
	}
	return lv
}

// parseSelectList parses the projection.
func (p *Parser) parseSelectList() []SelectItem {
	var items []SelectItem
	for {
		items = append(items, p.parseSelectItem())
		if p.failed() || !p.match(TOKEN_COMMA) {
			return items
		}
	}
}

func (p *Parser) parseSelectItem() SelectItem {
	// DuckDB prefix alias: name: expr
	if p.dialect.supports(featDuckDB) && p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_COLON) {
		alias := p.parseIdent(false)
		p.nextToken()
		return SelectItem{Expr: p.parseExpression(), Alias: &alias}
	}

	item := SelectItem{Expr: p.parseExpression()}
	if _, ok := item.Expr.(*Star); ok {
		return item
	}
	if alias, ok := p.parseOptionalAlias(); ok {
		item.Alias = &alias
	}
	return item
}

// parseOptionalAlias parses [AS] alias. After AS, reserved words and (in
// dialects with double-quoted strings) string literals are accepted.
func (p *Parser) parseOptionalAlias() (Ident, bool) {
	if p.match(TOKEN_AS) {
		if p.check(TOKEN_STRING) && (p.dialect == MySQL || p.dialect == Generic) {
			name := p.token.Literal
			p.nextToken()
			return Ident{Name: name, Quote: p.dialect.QuoteChar()}, true
		}
		return p.parseIdent(true), true
	}
	if p.canBeAlias(p.token) {
		return p.parseIdent(false), true
	}
	return Ident{}, false
}

// parseGroupByList parses GROUP BY items including GROUPING SETS, CUBE, and
// ROLLUP.
func (p *Parser) parseGroupByList() []Expr {
	var exprs []Expr
	for {
		exprs = append(exprs, p.parseGroupByItem())
		if p.failed() || !p.match(TOKEN_COMMA) {
			return exprs
		}
	}
}

func (p *Parser) parseGroupByItem() Expr {
	switch {
	case p.checkSoft("GROUPING") && isSoft(p.peek, "SETS"):
		p.nextToken()
		p.nextToken()
		return &GroupingExpr{Kind: GroupingSets, Sets: p.parseGroupingSets()}
	case p.checkSoft("CUBE") && p.checkPeek(TOKEN_LPAREN):
		p.nextToken()
		return &GroupingExpr{Kind: GroupingCube, Sets: p.parseGroupingSets()}
	case p.checkSoft("ROLLUP") && p.checkPeek(TOKEN_LPAREN):
		p.nextToken()
		return &GroupingExpr{Kind: GroupingRollup, Sets: p.parseGroupingSets()}
	}
	return p.parseExpression()
}

// parseGroupingSets parses ( set, set, ... ) where each set is an
// expression or a parenthesized, possibly empty, expression list.
func (p *Parser) parseGroupingSets() [][]Expr {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	var sets [][]Expr
	for {
		if p.match(TOKEN_LPAREN) {
			var set []Expr
			if !p.check(TOKEN_RPAREN) {
				set = p.parseExpressionList()
			}
			p.expect(TOKEN_RPAREN)
			sets = append(sets, set)
		} else {
			sets = append(sets, []Expr{p.parseExpression()})
		}
		if p.failed() || !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return sets
}

// parseWindowClause parses WINDOW name AS (spec) | name, ...
func (p *Parser) parseWindowClause() []NamedWindow {
	p.expect(TOKEN_WINDOW)
	var windows []NamedWindow
	for {
		nw := NamedWindow{Name: p.parseIdent(false)}
		p.expect(TOKEN_AS)
		if p.check(TOKEN_LPAREN) {
			nw.Spec = p.parseWindowSpec()
		} else {
			nw.Spec = &WindowSpec{Ref: p.parseIdent(false), Bare: true}
		}
		windows = append(windows, nw)
		if p.failed() || !p.match(TOKEN_COMMA) {
			return windows
		}
	}
}
