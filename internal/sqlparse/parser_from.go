package sqlparse

import (
	"strings"
)

// FROM clause parsing: table factors, derived tables, table functions,
// UNNEST, joins of every flavour, and the PIVOT, UNPIVOT, and
// MATCH_RECOGNIZE postfix operators.

// parseFromList parses comma-separated FROM items.
func (p *Parser) parseFromList() []*TableWithJoins {
	var items []*TableWithJoins
	for {
		items = append(items, p.parseTableWithJoins())
		if p.failed() || !p.match(TOKEN_COMMA) {
			return items
		}
	}
}

// parseTableWithJoins parses one FROM item followed by its joins.
func (p *Parser) parseTableWithJoins() *TableWithJoins {
	twj := &TableWithJoins{Relation: p.parseTableFactor()}
	for !p.failed() {
		join := p.parseJoin()
		if join == nil {
			break
		}
		twj.Joins = append(twj.Joins, join)
	}
	return twj
}

// parseTableFactor parses a single relation and any postfix operators.
func (p *Parser) parseTableFactor() TableRef {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	var ref TableRef
	switch {
	case p.match(TOKEN_LATERAL):
		ref = p.parseLateralFactor()
	case p.check(TOKEN_LPAREN):
		ref = p.parseParenFactor()
	case p.check(TOKEN_STRING) && p.dialect.supports(featDuckDB):
		// DuckDB reads files named by a string: FROM 'data.parquet'.
		name := Ident{Name: p.token.Literal, Quote: '\''}
		p.nextToken()
		ref = &TableName{Name: []Ident{name}, Alias: p.parseTableAlias()}
	case p.checkSoft("UNNEST") && p.checkPeek(TOKEN_LPAREN) && p.dialect.supports(featUnnest):
		ref = p.parseUnnestFactor()
	case p.check(TOKEN_IDENT):
		ref = p.parseNamedFactor()
	default:
		p.addError("unexpected %s, expected table reference", p.describe(p.token))
		return nil
	}
	if p.failed() {
		return ref
	}
	return p.parseFactorPostfix(ref)
}

// parseLateralFactor parses what follows LATERAL: a subquery or a function.
func (p *Parser) parseLateralFactor() TableRef {
	if p.match(TOKEN_LPAREN) {
		q := p.parseQuery()
		p.expect(TOKEN_RPAREN)
		return &DerivedTable{Lateral: true, Query: q, Alias: p.parseTableAlias()}
	}
	name := p.parseObjectName()
	if p.failed() {
		return nil
	}
	ft := p.parseFuncTable(name)
	if ft != nil {
		ft.Lateral = true
	}
	return ft
}

// parseParenFactor distinguishes a derived table from a parenthesized join.
func (p *Parser) parseParenFactor() TableRef {
	isQuery := startsQuery(p.peek) ||
		(p.checkPeek(TOKEN_FROM) && p.dialect.supports(featDuckDB)) ||
		(p.checkPeek(TOKEN_LPAREN) && (startsQuery(p.peek2) || p.checkPeek2(TOKEN_LPAREN)))
	p.expect(TOKEN_LPAREN)

	if isQuery {
		q := p.parseQuery()
		p.expect(TOKEN_RPAREN)
		return &DerivedTable{Query: q, Alias: p.parseTableAlias()}
	}

	nested := p.parseTableWithJoins()
	p.expect(TOKEN_RPAREN)
	return &NestedJoin{Join: nested, Alias: p.parseTableAlias()}
}

// parseUnnestFactor parses UNNEST(expr, ...) [WITH ORDINALITY] [alias] [WITH OFFSET [alias]].
func (p *Parser) parseUnnestFactor() TableRef {
	p.nextToken()
	p.expect(TOKEN_LPAREN)
	u := &UnnestTable{Exprs: p.parseExpressionList()}
	p.expect(TOKEN_RPAREN)
	if p.check(TOKEN_WITH) && isSoft(p.peek, "ORDINALITY") {
		p.nextToken()
		p.nextToken()
		u.WithOrdinality = true
	}
	u.Alias = p.parseTableAlias()
	if p.dialect.supports(featBigQuery) && p.check(TOKEN_WITH) && p.peek.Type == TOKEN_OFFSET {
		p.nextToken()
		p.nextToken()
		u.WithOffset = true
		if alias, ok := p.parseOptionalAlias(); ok {
			u.OffsetAlias = &alias
		}
	}
	return u
}

// parseNamedFactor parses a table name or a table-valued function call.
func (p *Parser) parseNamedFactor() TableRef {
	name := p.parseObjectName()
	if p.failed() {
		return nil
	}
	if p.check(TOKEN_LPAREN) {
		return p.parseFuncTable(name)
	}

	t := &TableName{Name: name}
	if p.check(TOKEN_FOR) && isSoft(p.peek, "SYSTEM_TIME") && p.dialect.supports(featBigQuery) {
		p.nextToken()
		p.nextToken()
		p.expect(TOKEN_AS)
		p.expectSoft("OF")
		t.Version = p.parseExpression()
	}
	t.Alias = p.parseTableAlias()
	for p.dialect.supports(featMySQLExtra) && p.startsIndexHint() && !p.failed() {
		t.IndexHints = append(t.IndexHints, p.parseIndexHint())
	}
	if p.dialect.supports(featTableSample) && p.matchSoftKeyword("TABLESAMPLE") {
		t.Sample = p.parseTableSample()
	}
	return t
}

// parseFuncTable parses a table function call whose name has been consumed.
func (p *Parser) parseFuncTable(name []Ident) *FuncTable {
	call := p.parseFuncCall(name)
	fn, ok := call.(*FuncCall)
	if !ok || p.failed() {
		return nil
	}
	ft := &FuncTable{Func: fn}
	if p.check(TOKEN_WITH) && isSoft(p.peek, "ORDINALITY") {
		p.nextToken()
		p.nextToken()
		ft.WithOrdinality = true
	}
	ft.Alias = p.parseTableAlias()
	return ft
}

// parseTableAlias parses [AS] name [(col, ...)].
func (p *Parser) parseTableAlias() *TableAlias {
	name, ok := p.parseOptionalAlias()
	if !ok {
		return nil
	}
	alias := &TableAlias{Name: name}
	if p.check(TOKEN_LPAREN) {
		alias.Columns = p.parseParenIdentList()
	}
	return alias
}

func (p *Parser) startsIndexHint() bool {
	return (p.checkSoft("USE") || p.checkSoft("IGNORE") || p.checkSoft("FORCE")) &&
		(isSoft(p.peek, "INDEX") || isSoft(p.peek, "KEY"))
}

// parseIndexHint parses {USE|IGNORE|FORCE} {INDEX|KEY} [FOR target] (names).
func (p *Parser) parseIndexHint() IndexHint {
	hint := IndexHint{Action: strings.ToUpper(p.token.Literal)}
	p.nextToken()
	hint.Kind = strings.ToUpper(p.token.Literal)
	p.nextToken()
	if p.match(TOKEN_FOR) {
		switch {
		case p.match(TOKEN_JOIN):
			hint.For = "JOIN"
		case p.match(TOKEN_ORDER):
			p.expect(TOKEN_BY)
			hint.For = "ORDER BY"
		case p.match(TOKEN_GROUP):
			p.expect(TOKEN_BY)
			hint.For = "GROUP BY"
		default:
			p.addError("unexpected %s in index hint", p.describe(p.token))
			return hint
		}
	}
	p.expect(TOKEN_LPAREN)
	if !p.check(TOKEN_RPAREN) {
		hint.Names = p.parseIdentList()
	}
	p.expect(TOKEN_RPAREN)
	return hint
}

// parseTableSample parses method (args) [REPEATABLE (seed)] after TABLESAMPLE.
func (p *Parser) parseTableSample() *TableSample {
	ts := &TableSample{Method: strings.ToUpper(p.parseIdent(false).Name)}
	p.expect(TOKEN_LPAREN)
	if !p.check(TOKEN_RPAREN) {
		ts.Args = p.parseExpressionList()
	}
	p.expect(TOKEN_RPAREN)
	if p.matchSoftKeyword("REPEATABLE") {
		p.expect(TOKEN_LPAREN)
		ts.Seed = p.parseExpression()
		p.expect(TOKEN_RPAREN)
	}
	return ts
}

// parseFactorPostfix applies PIVOT, UNPIVOT, and MATCH_RECOGNIZE.
func (p *Parser) parseFactorPostfix(ref TableRef) TableRef {
	pivots := p.dialect.supports(featDuckDB) || p.dialect.supports(featOracle) ||
		p.dialect.supports(featMSSQL) || p.dialect.supports(featBigQuery)
	for !p.failed() {
		switch {
		case pivots && p.checkSoft("PIVOT") && p.checkPeek(TOKEN_LPAREN):
			p.nextToken()
			ref = p.parsePivot(ref)
		case pivots && p.checkSoft("UNPIVOT") && (p.checkPeek(TOKEN_LPAREN) || p.checkPeek(TOKEN_IDENT)):
			p.nextToken()
			ref = p.parseUnpivot(ref)
		case p.dialect.supports(featOracle) && p.checkSoft("MATCH_RECOGNIZE") && p.checkPeek(TOKEN_LPAREN):
			p.nextToken()
			ref = p.parseMatchRecognize(ref)
		default:
			return ref
		}
	}
	return ref
}

// parsePivot parses (aggregates FOR columns IN (values) [DEFAULT ON NULL (expr)]) [alias].
func (p *Parser) parsePivot(source TableRef) TableRef {
	pivot := &PivotTable{Source: source}
	p.expect(TOKEN_LPAREN)
	pivot.Aggregates = p.parseSelectList()
	p.expect(TOKEN_FOR)
	if p.check(TOKEN_LPAREN) {
		pivot.For = p.parseParenIdentList()
	} else {
		pivot.For = []Ident{p.parseIdent(false)}
	}
	p.expect(TOKEN_IN)
	p.expect(TOKEN_LPAREN)
	switch {
	case p.check(TOKEN_ANY):
		p.nextToken()
		pivot.Values.Any = true
		if p.match(TOKEN_ORDER) {
			p.expect(TOKEN_BY)
			pivot.Values.AnyOrderBy = p.parseOrderByList()
		}
	case p.check(TOKEN_SELECT) || p.check(TOKEN_WITH):
		pivot.Values.Subquery = p.parseQuery()
	default:
		pivot.Values.List = p.parseSelectList()
	}
	p.expect(TOKEN_RPAREN)
	if p.checkSoft("DEFAULT") && p.checkPeek(TOKEN_ON) && p.checkPeek2(TOKEN_NULL) {
		p.nextToken()
		p.nextToken()
		p.nextToken()
		p.expect(TOKEN_LPAREN)
		pivot.DefaultOnNull = p.parseExpression()
		p.expect(TOKEN_RPAREN)
	}
	p.expect(TOKEN_RPAREN)
	pivot.Alias = p.parseTableAlias()
	return pivot
}

// parseUnpivot parses [INCLUDE|EXCLUDE NULLS] (value FOR name IN (columns)) [alias].
func (p *Parser) parseUnpivot(source TableRef) TableRef {
	unpivot := &UnpivotTable{Source: source}
	if p.checkSoft("INCLUDE") || p.checkSoft("EXCLUDE") {
		include := p.checkSoft("INCLUDE")
		p.nextToken()
		p.expectSoft("NULLS")
		unpivot.IncludeNulls = &include
	}
	p.expect(TOKEN_LPAREN)
	if p.check(TOKEN_LPAREN) {
		unpivot.Value = p.parseParenIdentList()
	} else {
		unpivot.Value = []Ident{p.parseIdent(false)}
	}
	p.expect(TOKEN_FOR)
	unpivot.Name = p.parseIdent(false)
	p.expect(TOKEN_IN)
	p.expect(TOKEN_LPAREN)
	for !p.failed() {
		var col UnpivotColumn
		if p.check(TOKEN_LPAREN) {
			col.Columns = p.parseParenIdentList()
		} else {
			col.Columns = []Ident{p.parseIdent(false)}
		}
		if alias, ok := p.parseOptionalAlias(); ok {
			col.Alias = &alias
		}
		unpivot.Columns = append(unpivot.Columns, col)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	p.expect(TOKEN_RPAREN)
	unpivot.Alias = p.parseTableAlias()
	return unpivot
}

// parseMatchRecognize parses the body of MATCH_RECOGNIZE (...) [alias].
func (p *Parser) parseMatchRecognize(source TableRef) TableRef {
	mr := &MatchRecognize{Source: source}
	p.expect(TOKEN_LPAREN)
	if p.checkSoft("PARTITION") && p.checkPeek(TOKEN_BY) {
		p.nextToken()
		p.nextToken()
		mr.PartitionBy = p.parseExpressionList()
	}
	if p.match(TOKEN_ORDER) {
		p.expect(TOKEN_BY)
		mr.OrderBy = p.parseOrderByList()
	}
	if p.matchSoftKeyword("MEASURES") {
		mr.Measures = p.parseSelectList()
	}
	if p.checkSoft("ONE") || p.check(TOKEN_ALL) {
		mr.RowsPerMatch = p.consumeWords("AFTER", "PATTERN")
	}
	if p.checkSoft("AFTER") {
		mr.AfterMatchSkip = p.consumeWords("PATTERN")
	}
	p.expectSoft("PATTERN")
	mr.Pattern = p.parsePatternTokens()
	p.expectSoft("DEFINE")
	for !p.failed() {
		sym := SymbolDef{Name: p.parseIdent(false)}
		p.expect(TOKEN_AS)
		sym.Expr = p.parseExpression()
		mr.Symbols = append(mr.Symbols, sym)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	mr.Alias = p.parseTableAlias()
	return mr
}

// parsePatternTokens collects the row pattern between balanced parentheses
// as canonical token text.
func (p *Parser) parsePatternTokens() []string {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	var words []string
	depth := 1
	for !p.failed() {
		switch p.token.Type {
		case TOKEN_EOF, TOKEN_ILLEGAL:
			p.addError("unexpected %s in PATTERN", p.describe(p.token))
			return nil
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
			if depth == 0 {
				p.nextToken()
				return words
			}
		}
		switch p.token.Type {
		case TOKEN_IDENT, TOKEN_NUMBER, TOKEN_PLACEHOLDER:
			words = append(words, p.token.Literal)
		default:
			words = append(words, p.token.Type.String())
		}
		p.nextToken()
	}
	return words
}

// parseJoin parses one join, or returns nil when the next token does not
// start a join.
func (p *Parser) parseJoin() *Join {
	join := &Join{}
	natural := p.match(TOKEN_NATURAL)

	switch {
	case p.match(TOKEN_JOIN):
		join.Op = JoinInner
	case p.match(TOKEN_INNER):
		join.Op = JoinInner
		p.expect(TOKEN_JOIN)
	case p.check(TOKEN_LEFT) || p.check(TOKEN_RIGHT):
		left := p.check(TOKEN_LEFT)
		p.nextToken()
		switch {
		case p.matchSoftKeyword("SEMI"):
			join.Op = pick(left, JoinLeftSemi, JoinRightSemi)
		case p.matchSoftKeyword("ANTI"):
			join.Op = pick(left, JoinLeftAnti, JoinRightAnti)
		default:
			p.match(TOKEN_OUTER)
			join.Op = pick(left, JoinLeftOuter, JoinRightOuter)
		}
		p.expect(TOKEN_JOIN)
	case p.match(TOKEN_FULL):
		p.match(TOKEN_OUTER)
		join.Op = JoinFullOuter
		p.expect(TOKEN_JOIN)
	case !natural && p.check(TOKEN_CROSS):
		p.nextToken()
		if p.dialect.supports(featMSSQL) && p.matchSoftKeyword("APPLY") {
			join.Op = JoinCrossApply
		} else {
			join.Op = JoinCross
			p.expect(TOKEN_JOIN)
		}
	case !natural && p.check(TOKEN_OUTER) && isSoft(p.peek, "APPLY") && p.dialect.supports(featMSSQL):
		p.nextToken()
		p.nextToken()
		join.Op = JoinOuterApply
	case !natural && p.dialect.supports(featDuckDB) && p.checkSoft("SEMI") && p.checkPeek(TOKEN_JOIN):
		p.nextToken()
		p.nextToken()
		join.Op = JoinSemi
	case !natural && p.dialect.supports(featDuckDB) && p.checkSoft("ANTI") && p.checkPeek(TOKEN_JOIN):
		p.nextToken()
		p.nextToken()
		join.Op = JoinAnti
	case !natural && p.dialect.supports(featDuckDB) && p.checkSoft("ASOF") && p.checkPeek(TOKEN_JOIN):
		p.nextToken()
		p.nextToken()
		join.Op = JoinAsOf
	case !natural && p.dialect.supports(featDuckDB) && p.checkSoft("POSITIONAL") && p.checkPeek(TOKEN_JOIN):
		p.nextToken()
		p.nextToken()
		join.Op = JoinPositional
	case !natural && p.dialect.supports(featMySQLExtra) && p.checkSoft("STRAIGHT_JOIN"):
		p.nextToken()
		join.Op = JoinStraight
	default:
		if natural {
			p.addError("unexpected %s after NATURAL", p.describe(p.token))
		}
		return nil
	}
	if p.failed() {
		return nil
	}

	join.Relation = p.parseTableFactor()
	if p.failed() {
		return join
	}

	switch {
	case natural:
		join.Constraint.Kind = ConstraintNatural
	case join.Op == JoinCross || join.Op == JoinCrossApply || join.Op == JoinOuterApply || join.Op == JoinPositional:
	default:
		if join.Op == JoinAsOf && p.matchSoftKeyword("MATCH_CONDITION") {
			p.expect(TOKEN_LPAREN)
			join.MatchCondition = p.parseExpression()
			p.expect(TOKEN_RPAREN)
		}
		switch {
		case p.match(TOKEN_ON):
			join.Constraint = JoinConstraint{Kind: ConstraintOn, On: p.parseExpression()}
		case p.match(TOKEN_USING):
			join.Constraint = JoinConstraint{Kind: ConstraintUsing, Using: p.parseParenIdentList()}
		}
	}
	return join
}

func pick(cond bool, a, b JoinOp) JoinOp {
	if cond {
		return a
	}
	return b
}
