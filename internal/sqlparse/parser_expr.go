package sqlparse

import (
	"strings"
)

// Expression parsing using Pratt parser (precedence climbing).

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() Expr {
	return p.parseExpressionWithPrecedence(PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	left := p.parsePrefixExpr()
	if left == nil || p.failed() {
		return left
	}

	for !p.failed() {
		prec := p.getInfixPrecedence()
		if prec == PrecedenceNone || prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *Parser) parsePrefixExpr() Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		p.nextToken()
		if p.check(TOKEN_EXISTS) {
			return p.parseExistsExpr(true)
		}
		expr := p.parseExpressionWithPrecedence(PrecedenceNot)
		return &UnaryExpr{Op: TOKEN_NOT, Expr: expr}

	case TOKEN_MINUS, TOKEN_PLUS, TOKEN_TILDE:
		op := p.token.Type
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(PrecedenceUnary)
		return &UnaryExpr{Op: op, Expr: expr}

	case TOKEN_IDENT:
		if p.dialect.supports(featOracle) && p.checkSoft("PRIOR") &&
			(p.checkPeek(TOKEN_IDENT) || p.checkPeek(TOKEN_LPAREN)) {
			p.nextToken()
			return &PriorExpr{Expr: p.parseExpressionWithPrecedence(PrecedenceUnary)}
		}
	}
	return p.parsePrimary()
}

// getInfixPrecedence returns the precedence of the current token as an infix operator.
func (p *Parser) getInfixPrecedence() int {
	switch p.token.Type {
	case TOKEN_OR:
		return PrecedenceOr
	case TOKEN_AND:
		return PrecedenceAnd
	case TOKEN_IS:
		return PrecedenceIs
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE, TOKEN_DBLEQ, TOKEN_SPACESHIP:
		return PrecedenceComparison
	case TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE:
		return PrecedenceComparison
	case TOKEN_NOT:
		if p.isNegatablePredicate(p.peek) {
			return PrecedenceComparison
		}
		return PrecedenceNone
	case TOKEN_TILDE, TOKEN_TILDESTAR, TOKEN_NTILDE, TOKEN_NTILDESTR,
		TOKEN_ATGT, TOKEN_LTAT, TOKEN_ATAT, TOKEN_LONGARROW, TOKEN_HASHARROW, TOKEN_HASHLONG,
		TOKEN_AMP, TOKEN_PIPE, TOKEN_CARET, TOKEN_LSHIFT, TOKEN_RSHIFT:
		return PrecedenceOther
	case TOKEN_ARROW:
		if p.dialect.supports(featDuckDB) && p.dialect != Generic {
			return PrecedenceOr
		}
		return PrecedenceOther
	case TOKEN_PLUS, TOKEN_MINUS, TOKEN_DPIPE:
		return PrecedenceAddition
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_MOD, TOKEN_DSLASH:
		return PrecedenceMultiply
	case TOKEN_DCOLON:
		if p.dialect.supports(featDoubleColonCast) {
			return PrecedencePostfix
		}
		return PrecedenceNone
	case TOKEN_LBRACKET:
		return PrecedencePostfix
	case TOKEN_IDENT:
		if p.token.Quote != 0 {
			return PrecedenceNone
		}
		switch strings.ToUpper(p.token.Literal) {
		case "COLLATE":
			return PrecedencePostfix
		case "AT":
			if isSoft(p.peek, "TIME") {
				return PrecedencePostfix
			}
		case "ILIKE":
			if p.dialect.supports(featILike) {
				return PrecedenceComparison
			}
		case "SIMILAR":
			if isSoft(p.peek, "TO") {
				return PrecedenceComparison
			}
		case "GLOB":
			if p.dialect.supports(featDuckDB) {
				return PrecedenceComparison
			}
		case "REGEXP", "RLIKE":
			if p.dialect.supports(featMySQLExtra) {
				return PrecedenceComparison
			}
		case "DIV", "MOD":
			if p.dialect.supports(featMySQLExtra) {
				return PrecedenceMultiply
			}
		case "XOR":
			if p.dialect.supports(featMySQLExtra) {
				return PrecedenceOr
			}
		}
	}
	return PrecedenceNone
}

// isNegatablePredicate reports whether tok may follow an infix NOT.
func (p *Parser) isNegatablePredicate(tok Token) bool {
	switch tok.Type {
	case TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE:
		return true
	case TOKEN_IDENT:
		switch {
		case isSoft(tok, "ILIKE"):
			return p.dialect.supports(featILike)
		case isSoft(tok, "SIMILAR"):
			return true
		case isSoft(tok, "GLOB"):
			return p.dialect.supports(featDuckDB)
		case isSoft(tok, "REGEXP"), isSoft(tok, "RLIKE"):
			return p.dialect.supports(featMySQLExtra)
		}
	}
	return false
}

func isComparison(t TokenType) bool {
	switch t {
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE, TOKEN_DBLEQ, TOKEN_SPACESHIP:
		return true
	}
	return false
}

// parseInfixExpr parses an infix expression given the left operand.
func (p *Parser) parseInfixExpr(left Expr, prec int) Expr {
	switch p.token.Type {
	case TOKEN_NOT:
		p.nextToken()
		return p.parseNegatablePredicate(left, true)
	case TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE:
		return p.parseNegatablePredicate(left, false)
	case TOKEN_IS:
		return p.parseIsExpr(left)
	case TOKEN_DCOLON:
		p.nextToken()
		return &CastExpr{Expr: left, TypeName: p.parseTypeName(), Style: CastDoubleColon}
	case TOKEN_LBRACKET:
		return p.parseIndexOrSliceExpr(left)
	case TOKEN_ARROW:
		if prec == PrecedenceOr {
			return p.parseLambdaExpr(left)
		}
	case TOKEN_IDENT:
		switch strings.ToUpper(p.token.Literal) {
		case "COLLATE":
			return p.parseCollateExpr(left)
		case "AT":
			p.nextToken()
			p.nextToken()
			p.expectSoft("ZONE")
			zone := p.parseExpressionWithPrecedence(PrecedencePostfix + 1)
			return &AtTimeZoneExpr{Expr: left, Zone: zone}
		case "DIV", "MOD", "XOR":
			word := strings.ToUpper(p.token.Literal)
			p.nextToken()
			right := p.parseExpressionWithPrecedence(prec + 1)
			return &BinaryExpr{Left: left, Op: TOKEN_IDENT, OpWord: word, Right: right}
		default:
			return p.parseNegatablePredicate(left, false)
		}
	}

	op := p.token.Type
	p.nextToken()
	if isComparison(op) && (p.check(TOKEN_ANY) || p.check(TOKEN_SOME) || p.check(TOKEN_ALL)) && p.checkPeek(TOKEN_LPAREN) {
		return p.parseAnyAllExpr(left, op)
	}
	right := p.parseExpressionWithPrecedence(prec + 1)
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

// parseNegatablePredicate parses IN, BETWEEN, and the LIKE family after an
// optional NOT has been consumed.
func (p *Parser) parseNegatablePredicate(left Expr, not bool) Expr {
	switch {
	case p.match(TOKEN_IN):
		return p.parseInExpr(left, not)
	case p.match(TOKEN_BETWEEN):
		return p.parseBetweenExpr(left, not)
	case p.match(TOKEN_LIKE):
		return p.parseLikeExpr(left, not, LikeLike)
	case p.matchSoftKeyword("ILIKE"):
		return p.parseLikeExpr(left, not, LikeILike)
	case p.matchSoftKeyword("SIMILAR"):
		p.expectSoft("TO")
		return p.parseLikeExpr(left, not, LikeSimilarTo)
	case p.matchSoftKeyword("GLOB"):
		return p.parseLikeExpr(left, not, LikeGlob)
	case p.matchSoftKeyword("REGEXP"):
		return p.parseLikeExpr(left, not, LikeRegexp)
	case p.matchSoftKeyword("RLIKE"):
		return p.parseLikeExpr(left, not, LikeRLike)
	}
	p.addError("unexpected %s after NOT", p.describe(p.token))
	return nil
}

// parseIsExpr parses IS [NOT] NULL/TRUE/FALSE/UNKNOWN and IS [NOT] DISTINCT FROM.
func (p *Parser) parseIsExpr(left Expr) Expr {
	p.expect(TOKEN_IS)
	not := p.match(TOKEN_NOT)

	switch {
	case p.match(TOKEN_NULL):
		return &IsExpr{Expr: left, Not: not, Kind: IsNull}
	case p.match(TOKEN_TRUE):
		return &IsExpr{Expr: left, Not: not, Kind: IsTrue}
	case p.match(TOKEN_FALSE):
		return &IsExpr{Expr: left, Not: not, Kind: IsFalse}
	case p.matchSoftKeyword("UNKNOWN"):
		return &IsExpr{Expr: left, Not: not, Kind: IsUnknown}
	case p.match(TOKEN_DISTINCT):
		p.expect(TOKEN_FROM)
		right := p.parseExpressionWithPrecedence(PrecedenceIs + 1)
		return &IsDistinctExpr{Left: left, Not: not, Right: right}
	}
	p.addError("unexpected %s after IS", p.describe(p.token))
	return nil
}

// parseInExpr parses IN (list), IN (subquery), or IN UNNEST(array).
func (p *Parser) parseInExpr(left Expr, not bool) Expr {
	if p.dialect.supports(featBigQuery) && p.checkSoft("UNNEST") && p.checkPeek(TOKEN_LPAREN) {
		p.nextToken()
		p.nextToken()
		arr := p.parseExpression()
		p.expect(TOKEN_RPAREN)
		return &InUnnestExpr{Expr: left, Not: not, Array: arr}
	}
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	if p.check(TOKEN_SELECT) || p.check(TOKEN_WITH) {
		q := p.parseQuery()
		p.expect(TOKEN_RPAREN)
		return &InSubqueryExpr{Expr: left, Not: not, Query: q}
	}
	list := p.parseExpressionList()
	p.expect(TOKEN_RPAREN)
	return &InListExpr{Expr: left, Not: not, List: list}
}

// parseBetweenExpr parses BETWEEN low AND high.
func (p *Parser) parseBetweenExpr(left Expr, not bool) Expr {
	low := p.parseExpressionWithPrecedence(PrecedenceOther)
	p.expect(TOKEN_AND)
	high := p.parseExpressionWithPrecedence(PrecedenceOther)
	return &BetweenExpr{Expr: left, Not: not, Low: low, High: high}
}

// parseLikeExpr parses the pattern and optional ESCAPE of a LIKE-family
// predicate.
func (p *Parser) parseLikeExpr(left Expr, not bool, kind LikeKind) Expr {
	pattern := p.parseExpressionWithPrecedence(PrecedenceOther)
	like := &LikeExpr{Expr: left, Not: not, Kind: kind, Pattern: pattern}
	if p.matchSoftKeyword("ESCAPE") {
		like.Escape = p.parseExpressionWithPrecedence(PrecedenceOther)
	}
	return like
}

// parseAnyAllExpr parses op ANY|SOME|ALL (subquery) or (array expr).
func (p *Parser) parseAnyAllExpr(left Expr, op TokenType) Expr {
	quant := p.token.Type
	p.nextToken()
	p.expect(TOKEN_LPAREN)
	expr := &AnyAllExpr{Left: left, Op: op, Quantifier: quant}
	if p.check(TOKEN_SELECT) || p.check(TOKEN_WITH) {
		expr.Query = p.parseQuery()
	} else {
		expr.Right = p.parseExpression()
	}
	p.expect(TOKEN_RPAREN)
	return expr
}

// parseIndexOrSliceExpr parses x[i], x[a:b], x[:b], x[a:].
func (p *Parser) parseIndexOrSliceExpr(left Expr) Expr {
	p.expect(TOKEN_LBRACKET)
	idx := &IndexExpr{Expr: left}
	if p.match(TOKEN_COLON) {
		idx.IsSlice = true
		if !p.check(TOKEN_RBRACKET) {
			idx.Stop = p.parseExpression()
		}
		p.expect(TOKEN_RBRACKET)
		return idx
	}
	first := p.parseExpression()
	if p.match(TOKEN_COLON) {
		idx.IsSlice = true
		idx.Start = first
		if !p.check(TOKEN_RBRACKET) {
			idx.Stop = p.parseExpression()
		}
	} else {
		idx.Index = first
	}
	p.expect(TOKEN_RBRACKET)
	return idx
}

// parseLambdaExpr parses params -> body where params is an identifier or a
// parenthesized identifier list.
func (p *Parser) parseLambdaExpr(left Expr) Expr {
	params, ok := lambdaParams(left)
	if !ok {
		p.addError("invalid lambda parameters")
		return nil
	}
	p.expect(TOKEN_ARROW)
	body := p.parseExpression()
	return &LambdaExpr{Params: params, Body: body}
}

func lambdaParams(expr Expr) ([]Ident, bool) {
	single := func(e Expr) (Ident, bool) {
		id, ok := e.(*Identifier)
		if !ok || len(id.Parts) != 1 {
			return Ident{}, false
		}
		return id.Parts[0], true
	}
	switch e := expr.(type) {
	case *Identifier:
		id, ok := single(e)
		return []Ident{id}, ok
	case *ParenExpr:
		id, ok := single(e.Expr)
		return []Ident{id}, ok
	case *TupleExpr:
		if e.Row {
			return nil, false
		}
		params := make([]Ident, 0, len(e.Items))
		for _, item := range e.Items {
			id, ok := single(item)
			if !ok {
				return nil, false
			}
			params = append(params, id)
		}
		return params, true
	}
	return nil, false
}

// parseCollateExpr parses COLLATE name.
func (p *Parser) parseCollateExpr(left Expr) Expr {
	p.nextToken()
	if p.check(TOKEN_STRING) {
		name := p.token.Literal
		p.nextToken()
		return &CollateExpr{Expr: left, Collation: []Ident{{Name: name, Quote: p.dialect.QuoteChar()}}}
	}
	return &CollateExpr{Expr: left, Collation: p.parseObjectName()}
}
