package sqlparse

import (
	"fmt"
	"strings"

	"sqlsplit/internal/domain"
)

// DefaultMaxDepth bounds the nesting of queries and expressions the parser
// will descend into before rejecting the input.
const DefaultMaxDepth = 1000

// Parser parses SQL of one dialect into an AST.
type Parser struct {
	lexer    *Lexer
	dialect  Dialect
	input    string // original input for raw extraction
	token    Token  // current token
	peek     Token  // lookahead token
	peek2    Token  // second lookahead token
	prevEnd  int    // end offset of the last consumed token
	depth    int
	maxDepth int
	errors   []*domain.ParseError
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string, d Dialect) *Parser {
	p := &Parser{
		lexer:    NewLexer(sql, d),
		dialect:  d,
		input:    sql,
		maxDepth: DefaultMaxDepth,
	}
	// Initialize three-token lookahead
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses every statement of sql. Input containing only whitespace,
// comments, or semicolons yields no statements. The returned error is a
// *domain.ParseError.
func Parse(sql string, d Dialect) ([]Stmt, error) {
	p := NewParser(sql, d)
	stmts := p.parseStatements()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmts, nil
}

// ParseQuery parses sql as exactly one query.
func ParseQuery(sql string, d Dialect) (*Query, error) {
	stmts, err := Parse(sql, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, &domain.ParseError{Message: fmt.Sprintf("expected one statement, found %d", len(stmts))}
	}
	q, ok := stmts[0].(*Query)
	if !ok {
		return nil, &domain.ParseError{Message: "statement is not a query"}
	}
	return q, nil
}

// ParseExpr parses a standalone expression from SQL text.
func ParseExpr(sql string, d Dialect) (Expr, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, &domain.ParseError{Message: "empty expression"}
	}

	p := NewParser(sql, d)
	expr := p.parseExpression()
	if len(p.errors) == 0 && !p.check(TOKEN_EOF) {
		p.addError("unexpected %s after expression", p.describe(p.token))
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return expr, nil
}

// statementKeywords are the leading words of statements kept as raw text.
var statementKeywords = map[string]bool{
	"ALTER": true, "ANALYZE": true, "ATTACH": true, "BEGIN": true, "CALL": true,
	"CHECKPOINT": true, "COMMENT": true, "COMMIT": true, "COPY": true, "CREATE": true,
	"DEALLOCATE": true, "DECLARE": true, "DELETE": true, "DESCRIBE": true, "DETACH": true,
	"DO": true, "DROP": true, "END": true, "EXECUTE": true, "EXPLAIN": true,
	"EXPORT": true, "GRANT": true, "IMPORT": true, "INSERT": true, "INSTALL": true,
	"LOAD": true, "LOCK": true, "MERGE": true, "PRAGMA": true, "PREPARE": true,
	"REFRESH": true, "RELEASE": true, "RENAME": true, "REPLACE": true, "RESET": true,
	"REVOKE": true, "ROLLBACK": true, "SAVEPOINT": true, "SET": true, "SHOW": true,
	"START": true, "SUMMARIZE": true, "TRUNCATE": true, "UNLOCK": true, "UPDATE": true,
	"UPSERT": true, "USE": true, "VACUUM": true,
}

// parseStatements parses a semicolon-separated statement list.
func (p *Parser) parseStatements() []Stmt {
	var stmts []Stmt
	for !p.failed() {
		for p.match(TOKEN_SEMICOLON) {
		}
		if p.check(TOKEN_EOF) {
			break
		}
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		stmts = append(stmts, stmt)
		if !p.check(TOKEN_SEMICOLON) && !p.check(TOKEN_EOF) {
			p.addError("expected end of statement, found %s", p.describe(p.token))
		}
	}
	return stmts
}

// parseStatement dispatches on the first token of a statement.
func (p *Parser) parseStatement() Stmt {
	start := p.token.Pos
	switch {
	case p.check(TOKEN_WITH):
		with := p.parseWithClause()
		if p.check(TOKEN_IDENT) && statementKeywords[strings.ToUpper(p.token.Literal)] {
			return p.parseOtherStatement(start, "WITH")
		}
		q := p.parseQueryAfterWith(with)
		return q
	case p.check(TOKEN_SELECT), p.check(TOKEN_VALUES), p.check(TOKEN_LPAREN),
		p.check(TOKEN_FROM) && p.dialect.supports(featDuckDB):
		return p.parseQuery()
	case p.check(TOKEN_IDENT) && p.token.Quote == 0 && statementKeywords[strings.ToUpper(p.token.Literal)]:
		return p.parseOtherStatement(start, strings.ToUpper(p.token.Literal))
	case p.check(TOKEN_END):
		return p.parseOtherStatement(start, "END")
	default:
		p.addError("expected a statement, found %s", p.describe(p.token))
		return nil
	}
}

// parseOtherStatement consumes tokens up to the next top-level semicolon
// and keeps the source text.
func (p *Parser) parseOtherStatement(start int, keyword string) Stmt {
	depth := 0
	for !p.check(TOKEN_EOF) {
		switch p.token.Type {
		case TOKEN_ILLEGAL:
			p.addError("%s", p.token.Err)
			return nil
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		case TOKEN_SEMICOLON:
			if depth <= 0 {
				return &OtherStmt{Keyword: keyword, Raw: p.input[start:p.prevEnd]}
			}
		}
		p.nextToken()
	}
	return &OtherStmt{Keyword: keyword, Raw: p.input[start:p.prevEnd]}
}

// === Token Helpers ===

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prevEnd = p.token.End
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// checkPeek2 returns true if the peek2 token is of the given type.
func (p *Parser) checkPeek2(t TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// isSoft reports whether tok is the bare identifier keyword.
func isSoft(tok Token, keyword string) bool {
	return tok.Type == TOKEN_IDENT && tok.Quote == 0 && strings.EqualFold(tok.Literal, keyword)
}

// checkSoft reports whether the current token is the given soft keyword.
func (p *Parser) checkSoft(keyword string) bool {
	return isSoft(p.token, keyword)
}

// matchSoftKeyword consumes the current token if it's an identifier matching
// the given soft keyword (case-insensitive).
func (p *Parser) matchSoftKeyword(keyword string) bool {
	if p.checkSoft(keyword) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError("unexpected %s, expected %s", p.describe(p.token), t)
	return false
}

// expectSoft consumes the given soft keyword or adds an error.
func (p *Parser) expectSoft(keyword string) bool {
	if p.matchSoftKeyword(keyword) {
		return true
	}
	p.addError("unexpected %s, expected %s", p.describe(p.token), keyword)
	return false
}

// addError records a parse error at the current token. Lexer diagnostics
// take precedence when the current token is illegal.
func (p *Parser) addError(format string, args ...interface{}) {
	if p.check(TOKEN_ILLEGAL) && p.token.Err != "" {
		p.errors = append(p.errors, domain.NewParseError(p.input, p.token.Pos, "%s", p.token.Err))
		return
	}
	p.errors = append(p.errors, domain.NewParseError(p.input, p.token.Pos, format, args...))
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// describe renders a token for error messages.
func (p *Parser) describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENT:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case TOKEN_NUMBER:
		return "number " + tok.Literal
	case TOKEN_STRING:
		return "string literal"
	case TOKEN_PLACEHOLDER:
		return "placeholder " + tok.Literal
	case TOKEN_ILLEGAL:
		return fmt.Sprintf("%q", tok.Literal)
	}
	if tok.Type.IsKeyword() {
		return "keyword " + tok.Type.String()
	}
	return fmt.Sprintf("%q", tok.Type.String())
}

// enter increments the nesting depth and reports whether the limit still
// holds. Every successful enter must be paired with leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		if !p.failed() {
			p.addError("statement nesting exceeds maximum depth of %d", p.maxDepth)
		}
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// === Keyword Classification ===

// aliasStopWords are non-reserved words that end a FROM item or projection
// rather than naming an alias.
var aliasStopWords = map[string]bool{
	"QUALIFY": true, "PIVOT": true, "UNPIVOT": true, "SEMI": true, "ANTI": true,
	"ASOF": true, "POSITIONAL": true, "STRAIGHT_JOIN": true, "PREWHERE": true,
	"CLUSTER": true, "DISTRIBUTE": true, "SORT": true, "CONNECT": true, "START": true,
	"TABLESAMPLE": true, "MATCH_RECOGNIZE": true, "RETURNING": true, "INTO": true,
	"USE": true, "IGNORE": true, "FORCE": true, "APPLY": true, "MINUS": true,
	"INTERPOLATE": true, "MATCH_CONDITION": true, "SETTINGS": true, "FORMAT": true,
	"MEASURES": true, "ONE": true, "PATTERN": true, "DEFINE": true,
}

// canBeAlias reports whether tok may be used as a bare (AS-less) alias.
func (p *Parser) canBeAlias(tok Token) bool {
	if tok.Type != TOKEN_IDENT {
		return false
	}
	if tok.Quote != 0 {
		return true
	}
	return !aliasStopWords[strings.ToUpper(tok.Literal)]
}

// startsQuery reports whether tok begins a query expression.
func startsQuery(tok Token) bool {
	return tok.Type == TOKEN_SELECT || tok.Type == TOKEN_WITH || tok.Type == TOKEN_VALUES
}

// parseIdent consumes an identifier. Reserved words are accepted only when
// allowKeyword is set (after a dot, for example).
func (p *Parser) parseIdent(allowKeyword bool) Ident {
	tok := p.token
	switch {
	case tok.Type == TOKEN_IDENT:
		p.nextToken()
		return Ident{Name: tok.Literal, Quote: tok.Quote}
	case allowKeyword && tok.Type.IsKeyword():
		p.nextToken()
		return Ident{Name: tok.Literal}
	}
	p.addError("unexpected %s, expected identifier", p.describe(tok))
	return Ident{}
}

// parseIdentList parses ident, ident, ...
func (p *Parser) parseIdentList() []Ident {
	var ids []Ident
	for {
		ids = append(ids, p.parseIdent(false))
		if p.failed() || !p.match(TOKEN_COMMA) {
			return ids
		}
	}
}

// parseParenIdentList parses (ident, ident, ...).
func (p *Parser) parseParenIdentList() []Ident {
	if !p.expect(TOKEN_LPAREN) {
		return nil
	}
	ids := p.parseIdentList()
	p.expect(TOKEN_RPAREN)
	return ids
}

// parseObjectName parses a dotted name (a, s.t, c.s.t).
func (p *Parser) parseObjectName() []Ident {
	parts := []Ident{p.parseIdent(false)}
	for !p.failed() && p.check(TOKEN_DOT) {
		p.nextToken()
		parts = append(parts, p.parseIdent(true))
	}
	return parts
}

// parseExpressionList parses expr, expr, ...
func (p *Parser) parseExpressionList() []Expr {
	var exprs []Expr
	for {
		exprs = append(exprs, p.parseExpression())
		if p.failed() || !p.match(TOKEN_COMMA) {
			return exprs
		}
	}
}

// consumeWords collects uppercase words up to (not including) one of the
// stop words, for clauses kept as keyword sequences.
func (p *Parser) consumeWords(stop ...string) []string {
	var words []string
	for !p.failed() && !p.check(TOKEN_EOF) && !p.check(TOKEN_RPAREN) {
		for _, s := range stop {
			if p.checkSoft(s) {
				return words
			}
		}
		if p.check(TOKEN_ILLEGAL) {
			p.addError("%s", p.token.Err)
			return words
		}
		words = append(words, strings.ToUpper(p.token.Literal))
		p.nextToken()
	}
	return words
}
