package sqlparse

import (
	"strings"
)

// parsePrimary parses primary expressions (literals, references, calls,
// special forms, and parenthesized expressions).
func (p *Parser) parsePrimary() Expr {
	tok := p.token
	switch tok.Type {
	case TOKEN_NUMBER:
		p.nextToken()
		return &Literal{Type: LiteralNumber, Value: tok.Literal}
	case TOKEN_STRING:
		p.nextToken()
		return &Literal{Type: LiteralString, Value: tok.Literal}
	case TOKEN_PLACEHOLDER:
		p.nextToken()
		return &Placeholder{Text: tok.Literal}
	case TOKEN_TRUE:
		p.nextToken()
		return &Literal{Type: LiteralBool, Value: "TRUE"}
	case TOKEN_FALSE:
		p.nextToken()
		return &Literal{Type: LiteralBool, Value: "FALSE"}
	case TOKEN_NULL:
		p.nextToken()
		return &Literal{Type: LiteralNull, Value: "NULL"}
	case TOKEN_STAR:
		p.nextToken()
		return p.parseStarModifiers(&Star{})
	case TOKEN_LPAREN:
		return p.parseParenExpr()
	case TOKEN_CASE:
		return p.parseCaseExpr()
	case TOKEN_CAST:
		p.nextToken()
		return p.parseCastBody(CastFunction)
	case TOKEN_EXISTS:
		return p.parseExistsExpr(false)
	case TOKEN_INTERVAL:
		return p.parseIntervalExpr()
	case TOKEN_ARRAY:
		return p.parseArrayKeyword()
	case TOKEN_LBRACKET:
		if p.dialect.supports(featDuckDB) {
			p.nextToken()
			return &ArrayExpr{Elems: p.parseBracketElems()}
		}
	case TOKEN_LBRACE:
		if p.dialect.supports(featDuckDB) {
			return p.parseStructLiteral()
		}
	case TOKEN_LEFT, TOKEN_RIGHT:
		// left(s, n) and right(s, n) string functions.
		if p.checkPeek(TOKEN_LPAREN) {
			p.nextToken()
			return p.parseFuncCall([]Ident{{Name: tok.Literal}})
		}
	case TOKEN_IDENT:
		return p.parseIdentifierExpr()
	}

	p.addError("unexpected %s", p.describe(tok))
	p.nextToken()
	return nil
}

// typedStringTypes are type names that may prefix a string literal.
var typedStringTypes = map[string]bool{
	"DATE": true, "TIME": true, "TIMESTAMP": true, "TIMESTAMPTZ": true, "DATETIME": true,
	"JSON": true, "JSONB": true, "UUID": true, "INET": true, "NUMERIC": true,
	"DECIMAL": true, "BYTEA": true, "BLOB": true, "X": true, "B": true,
}

// parseIdentifierExpr parses everything that starts with an identifier:
// special function forms, typed strings, references, and calls.
func (p *Parser) parseIdentifierExpr() Expr {
	tok := p.token
	if tok.Quote == 0 {
		upper := strings.ToUpper(tok.Literal)
		if p.checkPeek(TOKEN_STRING) && typedStringTypes[upper] {
			p.nextToken()
			value := p.token.Literal
			p.nextToken()
			return &TypedString{TypeName: upper, Value: value}
		}
		if p.checkPeek(TOKEN_LPAREN) {
			if expr, ok := p.parseSpecialForm(upper); ok {
				return expr
			}
		}
		if upper == "MAP" && p.checkPeek(TOKEN_LBRACE) && p.dialect.supports(featDuckDB) {
			p.nextToken()
			return p.parseMapLiteral()
		}
	}

	parts := []Ident{p.parseIdent(false)}
	for p.check(TOKEN_DOT) && !p.failed() {
		p.nextToken()
		if p.match(TOKEN_STAR) {
			return p.parseStarModifiers(&Star{Qualifier: parts})
		}
		parts = append(parts, p.parseIdent(true))
	}

	if p.check(TOKEN_LPAREN) {
		if p.dialect.supports(featOracle) && p.checkPeek(TOKEN_PLUS) && p.checkPeek2(TOKEN_RPAREN) {
			p.nextToken()
			p.nextToken()
			p.nextToken()
			return &OuterJoinMarker{Expr: &Identifier{Parts: parts}}
		}
		call := p.parseFuncCall(parts)
		if fn, ok := call.(*FuncCall); ok && p.dialect.supports(featMySQLExtra) && len(parts) == 1 &&
			strings.EqualFold(parts[0].Name, "MATCH") && p.checkSoft("AGAINST") {
			return p.parseMatchAgainst(fn)
		}
		return call
	}
	return &Identifier{Parts: parts}
}

// parseSpecialForm handles keywords whose argument list is not a plain
// expression list. The current token is the keyword and the next is "(".
func (p *Parser) parseSpecialForm(upper string) (Expr, bool) {
	switch upper {
	case "EXTRACT":
		p.nextToken()
		p.nextToken()
		var field string
		if p.check(TOKEN_STRING) {
			field = "'" + strings.ReplaceAll(p.token.Literal, "'", "''") + "'"
			p.nextToken()
		} else {
			field = strings.ToUpper(p.parseIdent(true).Name)
		}
		p.expect(TOKEN_FROM)
		expr := p.parseExpression()
		p.expect(TOKEN_RPAREN)
		return &ExtractExpr{Field: field, Expr: expr}, true

	case "POSITION":
		name := p.parseIdent(false)
		p.nextToken()
		needle := p.parseExpressionWithPrecedence(PrecedenceComparison + 1)
		if p.match(TOKEN_IN) {
			haystack := p.parseExpression()
			p.expect(TOKEN_RPAREN)
			return &PositionExpr{Needle: needle, Haystack: haystack}, true
		}
		return p.finishFuncCall([]Ident{name}, needle), true

	case "SUBSTRING":
		name := p.parseIdent(false)
		p.nextToken()
		expr := p.parseExpression()
		if p.check(TOKEN_FROM) || p.check(TOKEN_FOR) {
			sub := &SubstringExpr{Expr: expr}
			if p.match(TOKEN_FROM) {
				sub.From = p.parseExpression()
			}
			if p.match(TOKEN_FOR) {
				sub.For = p.parseExpression()
			}
			p.expect(TOKEN_RPAREN)
			return sub, true
		}
		return p.finishFuncCall([]Ident{name}, expr), true

	case "TRIM":
		name := p.parseIdent(false)
		p.nextToken()
		trim := &TrimExpr{}
		if p.checkSoft("BOTH") || p.checkSoft("LEADING") || p.checkSoft("TRAILING") {
			trim.Where = strings.ToUpper(p.token.Literal)
			p.nextToken()
		}
		if p.match(TOKEN_FROM) {
			trim.Expr = p.parseExpression()
			p.expect(TOKEN_RPAREN)
			return trim, true
		}
		first := p.parseExpression()
		if p.match(TOKEN_FROM) {
			trim.Chars = first
			trim.Expr = p.parseExpression()
			p.expect(TOKEN_RPAREN)
			return trim, true
		}
		if trim.Where != "" {
			trim.Expr = first
			p.expect(TOKEN_RPAREN)
			return trim, true
		}
		return p.finishFuncCall([]Ident{name}, first), true

	case "OVERLAY":
		p.nextToken()
		p.nextToken()
		ov := &OverlayExpr{Expr: p.parseExpression()}
		p.expectSoft("PLACING")
		ov.Placing = p.parseExpression()
		p.expect(TOKEN_FROM)
		ov.From = p.parseExpression()
		if p.match(TOKEN_FOR) {
			ov.For = p.parseExpression()
		}
		p.expect(TOKEN_RPAREN)
		return ov, true

	case "TRY_CAST":
		if !p.dialect.supports(featDuckDB) {
			return nil, false
		}
		p.nextToken()
		return p.parseCastBody(CastTry), true

	case "CONVERT":
		if !p.dialect.supports(featMySQLExtra) {
			return nil, false
		}
		p.nextToken()
		p.nextToken()
		conv := &ConvertExpr{Expr: p.parseExpression()}
		if p.match(TOKEN_USING) {
			conv.Charset = p.parseIdent(true).Name
		} else if p.expect(TOKEN_COMMA) {
			conv.TypeName = p.parseTypeName()
		}
		p.expect(TOKEN_RPAREN)
		return conv, true

	case "ROW":
		p.nextToken()
		p.nextToken()
		var items []Expr
		if !p.check(TOKEN_RPAREN) {
			items = p.parseExpressionList()
		}
		p.expect(TOKEN_RPAREN)
		return &TupleExpr{Items: items, Row: true}, true
	}
	return nil, false
}

// parseFuncCall parses a call whose name has been consumed; the current
// token is "(".
func (p *Parser) parseFuncCall(name []Ident) Expr {
	p.expect(TOKEN_LPAREN)
	fn := &FuncCall{Name: name}

	switch {
	case p.match(TOKEN_RPAREN):
		return p.parseFuncPostfix(fn)
	case p.check(TOKEN_SELECT) || p.check(TOKEN_WITH):
		fn.Subquery = p.parseQuery()
		p.expect(TOKEN_RPAREN)
		return p.parseFuncPostfix(fn)
	}

	if p.match(TOKEN_DISTINCT) {
		fn.Distinct = true
	} else {
		p.match(TOKEN_ALL)
	}
	fn.Args = []Expr{p.parseFuncArg()}
	return p.continueFuncCall(fn)
}

// finishFuncCall completes a plain call whose first argument has already
// been parsed by a special-form parser.
func (p *Parser) finishFuncCall(name []Ident, first Expr) Expr {
	return p.continueFuncCall(&FuncCall{Name: name, Args: []Expr{first}})
}

func (p *Parser) continueFuncCall(fn *FuncCall) Expr {
	for !p.failed() && p.match(TOKEN_COMMA) {
		fn.Args = append(fn.Args, p.parseFuncArg())
	}
	p.parseFuncArgClauses(fn)
	p.expect(TOKEN_RPAREN)
	return p.parseFuncPostfix(fn)
}

// parseFuncArg parses one argument, which may be named (name => value).
func (p *Parser) parseFuncArg() Expr {
	if p.check(TOKEN_IDENT) && (p.checkPeek(TOKEN_FATARROW) || p.checkPeek(TOKEN_COLONEQ)) {
		name := p.parseIdent(false)
		op := p.token.Type
		p.nextToken()
		return &NamedArg{Name: name, Op: op, Value: p.parseExpression()}
	}
	return p.parseExpression()
}

// parseFuncArgClauses parses the clauses allowed inside an aggregate's
// argument list.
func (p *Parser) parseFuncArgClauses(fn *FuncCall) {
	if p.dialect.supports(featBigQuery) && (p.checkSoft("IGNORE") || p.checkSoft("RESPECT")) && isSoft(p.peek, "NULLS") {
		fn.NullTreatment = strings.ToUpper(p.token.Literal) + " NULLS"
		fn.NullsInside = true
		p.nextToken()
		p.nextToken()
	}
	if p.dialect.supports(featBigQuery) && p.check(TOKEN_HAVING) {
		p.nextToken()
		hb := &HavingBound{}
		switch {
		case p.matchSoftKeyword("MAX"):
			hb.Max = true
		case p.expectSoft("MIN"):
		}
		hb.Expr = p.parseExpression()
		fn.HavingBound = hb
	}
	if p.check(TOKEN_ORDER) {
		p.nextToken()
		p.expect(TOKEN_BY)
		fn.OrderBy = p.parseOrderByList()
	}
	if p.dialect.supports(featBigQuery) && p.match(TOKEN_LIMIT) {
		fn.Limit = p.parseExpression()
	}
	if p.dialect.supports(featMySQLExtra) && p.matchSoftKeyword("SEPARATOR") {
		fn.Separator = p.parseExpression()
	}
	if p.dialect.supports(featOracle) && p.check(TOKEN_ON) && isSoft(p.peek, "OVERFLOW") {
		p.nextToken()
		p.nextToken()
		ov := &ListAggOverflow{}
		if !p.matchSoftKeyword("ERROR") {
			p.expectSoft("TRUNCATE")
			ov.Truncate = true
			if !p.check(TOKEN_WITH) && !p.checkSoft("WITHOUT") {
				ov.Filler = p.parseExpression()
			}
			if p.match(TOKEN_WITH) {
				ov.WithCount = true
			} else {
				p.expectSoft("WITHOUT")
			}
			p.expectSoft("COUNT")
		}
		fn.OnOverflow = ov
	}
}

// parseFuncPostfix parses WITHIN GROUP, FILTER, IGNORE/RESPECT NULLS, and OVER.
func (p *Parser) parseFuncPostfix(fn *FuncCall) Expr {
	if p.checkSoft("WITHIN") && p.checkPeek(TOKEN_GROUP) {
		p.nextToken()
		p.nextToken()
		p.expect(TOKEN_LPAREN)
		p.expect(TOKEN_ORDER)
		p.expect(TOKEN_BY)
		fn.WithinGroup = p.parseOrderByList()
		p.expect(TOKEN_RPAREN)
	}
	if p.checkSoft("FILTER") && p.checkPeek(TOKEN_LPAREN) {
		p.nextToken()
		p.nextToken()
		p.expect(TOKEN_WHERE)
		fn.Filter = p.parseExpression()
		p.expect(TOKEN_RPAREN)
	}
	if fn.NullTreatment == "" && (p.checkSoft("IGNORE") || p.checkSoft("RESPECT")) && isSoft(p.peek, "NULLS") {
		fn.NullTreatment = strings.ToUpper(p.token.Literal) + " NULLS"
		p.nextToken()
		p.nextToken()
	}
	if p.checkSoft("OVER") && (p.checkPeek(TOKEN_LPAREN) || p.checkPeek(TOKEN_IDENT)) {
		p.nextToken()
		if p.check(TOKEN_IDENT) {
			fn.Over = &WindowSpec{Ref: p.parseIdent(false), Bare: true}
		} else {
			fn.Over = p.parseWindowSpec()
		}
	}
	return fn
}

// parseWindowSpec parses ( [ref] [PARTITION BY ...] [ORDER BY ...] [frame] ).
func (p *Parser) parseWindowSpec() *WindowSpec {
	spec := &WindowSpec{}
	if !p.expect(TOKEN_LPAREN) {
		return spec
	}
	if p.check(TOKEN_IDENT) && !p.checkSoft("PARTITION") && !p.isFrameUnit() {
		spec.Ref = p.parseIdent(false)
	}
	if p.checkSoft("PARTITION") && p.checkPeek(TOKEN_BY) {
		p.nextToken()
		p.nextToken()
		spec.PartitionBy = p.parseExpressionList()
	}
	if p.match(TOKEN_ORDER) {
		p.expect(TOKEN_BY)
		spec.OrderBy = p.parseOrderByList()
	}
	if p.isFrameUnit() {
		spec.Frame = p.parseFrameSpec()
	}
	p.expect(TOKEN_RPAREN)
	return spec
}

func (p *Parser) isFrameUnit() bool {
	return p.checkSoft("ROWS") || p.checkSoft("RANGE") || p.checkSoft("GROUPS")
}

// parseFrameSpec parses {ROWS|RANGE|GROUPS} [BETWEEN] bound [AND bound] [EXCLUDE ...].
func (p *Parser) parseFrameSpec() *FrameSpec {
	frame := &FrameSpec{Type: FrameType(strings.ToUpper(p.token.Literal))}
	p.nextToken()
	if p.match(TOKEN_BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(TOKEN_AND)
		frame.End = p.parseFrameBound()
	} else {
		frame.Start = p.parseFrameBound()
	}
	if p.matchSoftKeyword("EXCLUDE") {
		switch {
		case p.checkSoft("CURRENT") && isSoft(p.peek, "ROW"):
			p.nextToken()
			p.nextToken()
			frame.Exclude = "CURRENT ROW"
		case p.match(TOKEN_GROUP):
			frame.Exclude = "GROUP"
		case p.matchSoftKeyword("TIES"):
			frame.Exclude = "TIES"
		case p.matchSoftKeyword("NO"):
			p.expectSoft("OTHERS")
			frame.Exclude = "NO OTHERS"
		default:
			p.addError("unexpected %s after EXCLUDE", p.describe(p.token))
		}
	}
	return frame
}

func (p *Parser) parseFrameBound() *FrameBound {
	switch {
	case p.matchSoftKeyword("UNBOUNDED"):
		if p.matchSoftKeyword("FOLLOWING") {
			return &FrameBound{Type: FrameUnboundedFollowing}
		}
		p.expectSoft("PRECEDING")
		return &FrameBound{Type: FrameUnboundedPreceding}
	case p.checkSoft("CURRENT") && isSoft(p.peek, "ROW"):
		p.nextToken()
		p.nextToken()
		return &FrameBound{Type: FrameCurrentRow}
	}
	offset := p.parseExpression()
	if p.matchSoftKeyword("FOLLOWING") {
		return &FrameBound{Type: FrameExprFollowing, Offset: offset}
	}
	p.expectSoft("PRECEDING")
	return &FrameBound{Type: FrameExprPreceding, Offset: offset}
}

// parseCaseExpr parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *Parser) parseCaseExpr() Expr {
	p.expect(TOKEN_CASE)
	c := &CaseExpr{}
	if !p.check(TOKEN_WHEN) {
		c.Operand = p.parseExpression()
	}
	for !p.failed() && p.match(TOKEN_WHEN) {
		cond := p.parseExpression()
		p.expect(TOKEN_THEN)
		c.Whens = append(c.Whens, WhenClause{Condition: cond, Result: p.parseExpression()})
	}
	if len(c.Whens) == 0 {
		p.addError("unexpected %s, expected WHEN", p.describe(p.token))
		return nil
	}
	if p.match(TOKEN_ELSE) {
		c.Else = p.parseExpression()
	}
	p.expect(TOKEN_END)
	return c
}

// parseCastBody parses (expr AS type) after CAST or TRY_CAST.
func (p *Parser) parseCastBody(style CastStyle) Expr {
	p.expect(TOKEN_LPAREN)
	expr := p.parseExpression()
	p.expect(TOKEN_AS)
	typeName := p.parseTypeName()
	p.expect(TOKEN_RPAREN)
	return &CastExpr{Expr: expr, TypeName: typeName, Style: style}
}

// typeContinuations are words that extend a multi-word type name.
var typeContinuations = map[string]bool{
	"PRECISION": true, "VARYING": true, "UNSIGNED": true, "SIGNED": true,
	"INTEGER": true, "INT": true,
}

// parseTypeName parses a type name into its canonical text: uppercased
// words, parameters, and array suffixes.
func (p *Parser) parseTypeName() string {
	var b strings.Builder
	switch {
	case p.check(TOKEN_IDENT) && p.token.Quote != 0:
		b.WriteString(quoteIdent(p.token.Literal, p.dialect.QuoteChar()))
	case p.check(TOKEN_IDENT), p.check(TOKEN_ARRAY), p.check(TOKEN_INTERVAL):
		b.WriteString(strings.ToUpper(p.token.Literal))
	default:
		p.addError("unexpected %s, expected type name", p.describe(p.token))
		return ""
	}
	p.nextToken()

words:
	for !p.failed() {
		switch {
		case p.check(TOKEN_DOT):
			p.nextToken()
			b.WriteString(".")
			b.WriteString(strings.ToUpper(p.parseIdent(true).Name))
		case p.check(TOKEN_IDENT) && p.token.Quote == 0 && typeContinuations[strings.ToUpper(p.token.Literal)]:
			b.WriteString(" " + strings.ToUpper(p.token.Literal))
			p.nextToken()
		case (p.check(TOKEN_WITH) || p.checkSoft("WITHOUT")) && isSoft(p.peek, "TIME") && isSoft(p.peek2, "ZONE"):
			b.WriteString(" " + strings.ToUpper(p.token.Literal) + " TIME ZONE")
			p.nextToken()
			p.nextToken()
			p.nextToken()
		default:
			break words
		}
	}

	if p.check(TOKEN_LPAREN) {
		b.WriteString(p.parseTypeParams())
	}
	for p.check(TOKEN_LBRACKET) && !p.failed() {
		p.nextToken()
		if p.check(TOKEN_NUMBER) {
			b.WriteString("[" + p.token.Literal + "]")
			p.nextToken()
		} else {
			b.WriteString("[]")
		}
		p.expect(TOKEN_RBRACKET)
	}
	return b.String()
}

// parseTypeParams renders a parenthesized type parameter list such as
// (10, 2) or (a INTEGER, b VARCHAR).
func (p *Parser) parseTypeParams() string {
	p.expect(TOKEN_LPAREN)
	var items []string
	for !p.failed() && !p.check(TOKEN_RPAREN) {
		var words []string
		for !p.failed() && !p.check(TOKEN_COMMA) && !p.check(TOKEN_RPAREN) {
			switch p.token.Type {
			case TOKEN_EOF, TOKEN_ILLEGAL:
				p.addError("unexpected %s in type parameters", p.describe(p.token))
				return ""
			case TOKEN_LPAREN:
				if len(words) == 0 {
					words = append(words, p.parseTypeParams())
				} else {
					words[len(words)-1] += p.parseTypeParams()
				}
				continue
			case TOKEN_STRING:
				words = append(words, quoteString(p.token.Literal, p.dialect))
			case TOKEN_NUMBER:
				words = append(words, p.token.Literal)
			case TOKEN_IDENT:
				if p.token.Quote != 0 {
					words = append(words, quoteIdent(p.token.Literal, p.dialect.QuoteChar()))
				} else {
					words = append(words, p.parseTypeName())
					continue
				}
			default:
				words = append(words, p.token.Type.String())
			}
			p.nextToken()
		}
		items = append(items, strings.Join(words, " "))
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RPAREN)
	return "(" + strings.Join(items, ", ") + ")"
}

// parseExistsExpr parses [NOT] EXISTS (subquery).
func (p *Parser) parseExistsExpr(not bool) Expr {
	p.expect(TOKEN_EXISTS)
	p.expect(TOKEN_LPAREN)
	exists := &ExistsExpr{Not: not, Query: p.parseQuery()}
	p.expect(TOKEN_RPAREN)
	return exists
}

// parseParenExpr parses a parenthesized expression, tuple, or subquery.
func (p *Parser) parseParenExpr() Expr {
	p.expect(TOKEN_LPAREN)

	if p.check(TOKEN_SELECT) || p.check(TOKEN_WITH) {
		subquery := &SubqueryExpr{Query: p.parseQuery()}
		p.expect(TOKEN_RPAREN)
		return subquery
	}

	expr := p.parseExpression()
	if p.check(TOKEN_COMMA) {
		tuple := &TupleExpr{Items: []Expr{expr}}
		for !p.failed() && p.match(TOKEN_COMMA) {
			tuple.Items = append(tuple.Items, p.parseExpression())
		}
		p.expect(TOKEN_RPAREN)
		return tuple
	}

	p.expect(TOKEN_RPAREN)
	return &ParenExpr{Expr: expr}
}

// parseArrayKeyword parses ARRAY[...] and ARRAY(subquery).
func (p *Parser) parseArrayKeyword() Expr {
	name := p.token.Literal
	p.nextToken()
	switch {
	case p.match(TOKEN_LBRACKET):
		return &ArrayExpr{Keyword: true, Elems: p.parseBracketElems()}
	case p.check(TOKEN_LPAREN) && (p.checkPeek(TOKEN_SELECT) || p.checkPeek(TOKEN_WITH)):
		p.nextToken()
		fn := &FuncCall{Name: []Ident{{Name: strings.ToUpper(name)}}, Subquery: p.parseQuery()}
		p.expect(TOKEN_RPAREN)
		return fn
	}
	p.addError("unexpected %s after ARRAY", p.describe(p.token))
	return nil
}

// parseBracketElems parses elements up to the closing "]"; the "[" has
// been consumed.
func (p *Parser) parseBracketElems() []Expr {
	var elems []Expr
	if !p.check(TOKEN_RBRACKET) {
		elems = p.parseExpressionList()
	}
	p.expect(TOKEN_RBRACKET)
	return elems
}

// parseStructLiteral parses {'key': value, ...}.
func (p *Parser) parseStructLiteral() Expr {
	p.expect(TOKEN_LBRACE)
	s := &StructExpr{}
	for !p.failed() && !p.check(TOKEN_RBRACE) {
		var key string
		switch {
		case p.check(TOKEN_STRING):
			key = p.token.Literal
			p.nextToken()
		default:
			key = p.parseIdent(true).Name
		}
		p.expect(TOKEN_COLON)
		s.Fields = append(s.Fields, StructField{Key: key, Value: p.parseExpression()})
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RBRACE)
	return s
}

// parseMapLiteral parses {key: value, ...} after MAP.
func (p *Parser) parseMapLiteral() Expr {
	p.expect(TOKEN_LBRACE)
	m := &MapExpr{}
	for !p.failed() && !p.check(TOKEN_RBRACE) {
		key := p.parseExpression()
		p.expect(TOKEN_COLON)
		m.Entries = append(m.Entries, MapEntry{Key: key, Value: p.parseExpression()})
		if !p.match(TOKEN_COMMA) {
			break
		}
	}
	p.expect(TOKEN_RBRACE)
	return m
}

// intervalUnits are the units accepted after an INTERVAL value.
var intervalUnits = map[string]bool{
	"YEAR": true, "YEARS": true, "QUARTER": true, "QUARTERS": true, "MONTH": true, "MONTHS": true,
	"WEEK": true, "WEEKS": true, "DAY": true, "DAYS": true, "HOUR": true, "HOURS": true,
	"MINUTE": true, "MINUTES": true, "SECOND": true, "SECONDS": true,
	"MILLISECOND": true, "MILLISECONDS": true, "MICROSECOND": true, "MICROSECONDS": true,
	"YEAR_MONTH": true, "DAY_HOUR": true, "DAY_MINUTE": true, "DAY_SECOND": true,
	"HOUR_MINUTE": true, "HOUR_SECOND": true, "MINUTE_SECOND": true, "DAY_MICROSECOND": true,
	"HOUR_MICROSECOND": true, "MINUTE_MICROSECOND": true, "SECOND_MICROSECOND": true,
}

// parseIntervalExpr parses INTERVAL value [unit [TO unit]].
func (p *Parser) parseIntervalExpr() Expr {
	p.expect(TOKEN_INTERVAL)
	iv := &IntervalExpr{Value: p.parseExpressionWithPrecedence(PrecedenceUnary)}
	if p.check(TOKEN_IDENT) && p.token.Quote == 0 && intervalUnits[strings.ToUpper(p.token.Literal)] {
		iv.Unit = strings.ToUpper(p.token.Literal)
		p.nextToken()
		if p.checkSoft("TO") && p.checkPeek(TOKEN_IDENT) && intervalUnits[strings.ToUpper(p.peek.Literal)] {
			p.nextToken()
			iv.ToUnit = strings.ToUpper(p.token.Literal)
			p.nextToken()
		}
	}
	return iv
}

// parseStarModifiers parses DuckDB EXCLUDE, REPLACE, and RENAME after *.
func (p *Parser) parseStarModifiers(star *Star) Expr {
	for p.dialect.supports(featDuckDB) && !p.failed() {
		switch {
		case p.checkSoft("EXCLUDE"):
			p.nextToken()
			if p.check(TOKEN_LPAREN) {
				star.Exclude = append(star.Exclude, p.parseParenIdentList()...)
			} else {
				star.Exclude = append(star.Exclude, p.parseIdent(false))
			}
		case p.checkSoft("REPLACE") && p.checkPeek(TOKEN_LPAREN):
			p.nextToken()
			p.nextToken()
			for {
				expr := p.parseExpression()
				p.expect(TOKEN_AS)
				star.Replace = append(star.Replace, StarReplace{Expr: expr, Column: p.parseIdent(false)})
				if p.failed() || !p.match(TOKEN_COMMA) {
					break
				}
			}
			p.expect(TOKEN_RPAREN)
		case p.checkSoft("RENAME") && p.checkPeek(TOKEN_LPAREN):
			p.nextToken()
			p.nextToken()
			for {
				col := p.parseIdent(false)
				p.expect(TOKEN_AS)
				star.Rename = append(star.Rename, StarRename{Column: col, Alias: p.parseIdent(false)})
				if p.failed() || !p.match(TOKEN_COMMA) {
					break
				}
			}
			p.expect(TOKEN_RPAREN)
		default:
			return star
		}
	}
	return star
}

// parseMatchAgainst converts MATCH (cols) into MATCH (cols) AGAINST (expr [modifier]).
func (p *Parser) parseMatchAgainst(fn *FuncCall) Expr {
	p.nextToken() // AGAINST
	p.expect(TOKEN_LPAREN)
	m := &MatchAgainstExpr{Columns: fn.Args, Against: p.parseExpressionWithPrecedence(PrecedenceComparison + 1)}
	var words []string
	for !p.failed() && !p.check(TOKEN_RPAREN) && !p.check(TOKEN_EOF) {
		switch p.token.Type {
		case TOKEN_IN, TOKEN_WITH, TOKEN_IDENT:
			words = append(words, strings.ToUpper(p.token.Literal))
			p.nextToken()
		default:
			p.addError("unexpected %s in AGAINST modifier", p.describe(p.token))
		}
	}
	m.Modifier = strings.Join(words, " ")
	p.expect(TOKEN_RPAREN)
	return m
}
