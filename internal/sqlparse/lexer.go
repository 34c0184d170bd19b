package sqlparse

import (
	"strings"
)

// Lexer tokenizes SQL input for a given dialect.
type Lexer struct {
	input   string
	dialect Dialect
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string, d Dialect) *Lexer {
	l := &Lexer{input: input, dialect: d}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.readPos+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+n]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// advance consumes n characters.
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}

// emit builds a token spanning start..pos whose literal is the source text.
func (l *Lexer) emit(typ TokenType, start int) Token {
	return Token{Type: typ, Literal: l.input[start:l.pos], Pos: start, End: l.pos}
}

func (l *Lexer) illegal(start int, msg string) Token {
	if l.pos == start {
		l.readChar()
	}
	return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: start, End: l.pos, Err: msg}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	if start, ok := l.skipWhitespaceAndComments(); !ok {
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:], Pos: start, End: len(l.input), Err: "unterminated block comment"}
	}

	start := l.pos
	if l.eof() {
		return Token{Type: TOKEN_EOF, Pos: start, End: start}
	}

	switch l.ch {
	case '+':
		l.advance(1)
		return l.emit(TOKEN_PLUS, start)
	case '-':
		switch {
		case l.peekChar() == '>' && l.peekAt(1) == '>':
			l.advance(3)
			return l.emit(TOKEN_LONGARROW, start)
		case l.peekChar() == '>':
			l.advance(2)
			return l.emit(TOKEN_ARROW, start)
		}
		l.advance(1)
		return l.emit(TOKEN_MINUS, start)
	case '*':
		l.advance(1)
		return l.emit(TOKEN_STAR, start)
	case '/':
		if l.peekChar() == '/' {
			l.advance(2)
			return l.emit(TOKEN_DSLASH, start)
		}
		l.advance(1)
		return l.emit(TOKEN_SLASH, start)
	case '%':
		l.advance(1)
		return l.emit(TOKEN_MOD, start)
	case '=':
		switch l.peekChar() {
		case '=':
			l.advance(2)
			return l.emit(TOKEN_DBLEQ, start)
		case '>':
			l.advance(2)
			return l.emit(TOKEN_FATARROW, start)
		}
		l.advance(1)
		return l.emit(TOKEN_EQ, start)
	case '<':
		switch {
		case l.peekChar() == '=' && l.peekAt(1) == '>':
			l.advance(3)
			return l.emit(TOKEN_SPACESHIP, start)
		case l.peekChar() == '=':
			l.advance(2)
			return l.emit(TOKEN_LE, start)
		case l.peekChar() == '>':
			l.advance(2)
			return l.emit(TOKEN_NE, start)
		case l.peekChar() == '<':
			l.advance(2)
			return l.emit(TOKEN_LSHIFT, start)
		case l.peekChar() == '@':
			l.advance(2)
			return l.emit(TOKEN_LTAT, start)
		}
		l.advance(1)
		return l.emit(TOKEN_LT, start)
	case '>':
		switch l.peekChar() {
		case '=':
			l.advance(2)
			return l.emit(TOKEN_GE, start)
		case '>':
			l.advance(2)
			return l.emit(TOKEN_RSHIFT, start)
		}
		l.advance(1)
		return l.emit(TOKEN_GT, start)
	case '!':
		switch {
		case l.peekChar() == '=':
			l.advance(2)
			return l.emit(TOKEN_NE, start)
		case l.peekChar() == '~' && l.peekAt(1) == '*':
			l.advance(3)
			return l.emit(TOKEN_NTILDESTR, start)
		case l.peekChar() == '~':
			l.advance(2)
			return l.emit(TOKEN_NTILDE, start)
		}
		return l.illegal(start, "unexpected character '!'")
	case '~':
		if l.peekChar() == '*' {
			l.advance(2)
			return l.emit(TOKEN_TILDESTAR, start)
		}
		l.advance(1)
		return l.emit(TOKEN_TILDE, start)
	case '|':
		if l.peekChar() == '|' {
			l.advance(2)
			return l.emit(TOKEN_DPIPE, start)
		}
		l.advance(1)
		return l.emit(TOKEN_PIPE, start)
	case '&':
		l.advance(1)
		return l.emit(TOKEN_AMP, start)
	case '^':
		l.advance(1)
		return l.emit(TOKEN_CARET, start)
	case ',':
		l.advance(1)
		return l.emit(TOKEN_COMMA, start)
	case ';':
		l.advance(1)
		return l.emit(TOKEN_SEMICOLON, start)
	case '(':
		l.advance(1)
		return l.emit(TOKEN_LPAREN, start)
	case ')':
		l.advance(1)
		return l.emit(TOKEN_RPAREN, start)
	case '[':
		l.advance(1)
		return l.emit(TOKEN_LBRACKET, start)
	case ']':
		l.advance(1)
		return l.emit(TOKEN_RBRACKET, start)
	case '{':
		l.advance(1)
		return l.emit(TOKEN_LBRACE, start)
	case '}':
		l.advance(1)
		return l.emit(TOKEN_RBRACE, start)
	case '.':
		if isDigit(l.peekChar()) && !l.followsOperand(start) {
			return l.readNumber(start)
		}
		l.advance(1)
		return l.emit(TOKEN_DOT, start)
	case ':':
		switch {
		case l.peekChar() == ':':
			l.advance(2)
			return l.emit(TOKEN_DCOLON, start)
		case l.peekChar() == '=':
			l.advance(2)
			return l.emit(TOKEN_COLONEQ, start)
		case isIdentStart(l.peekChar()) && l.namedParamAllowed(start):
			l.advance(1)
			l.skipIdentChars()
			return l.emit(TOKEN_PLACEHOLDER, start)
		}
		l.advance(1)
		return l.emit(TOKEN_COLON, start)
	case '?':
		l.advance(1)
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.emit(TOKEN_PLACEHOLDER, start)
	case '@':
		switch {
		case l.peekChar() == '>':
			l.advance(2)
			return l.emit(TOKEN_ATGT, start)
		case isIdentStart(l.peekChar()):
			l.advance(1)
			l.skipIdentChars()
			return l.emit(TOKEN_PLACEHOLDER, start)
		case l.peekChar() == '@' && isIdentStart(l.peekAt(1)):
			l.advance(2)
			l.skipIdentChars()
			return l.emit(TOKEN_PLACEHOLDER, start)
		case l.peekChar() == '@':
			l.advance(2)
			return l.emit(TOKEN_ATAT, start)
		}
		return l.illegal(start, "unexpected character '@'")
	case '#':
		switch {
		case l.peekChar() == '{':
			return l.readBracedPlaceholder(start)
		case l.peekChar() == '>' && l.peekAt(1) == '>':
			l.advance(3)
			return l.emit(TOKEN_HASHLONG, start)
		case l.peekChar() == '>':
			l.advance(2)
			return l.emit(TOKEN_HASHARROW, start)
		}
		return l.illegal(start, "unexpected character '#'")
	case '$':
		return l.readDollar(start)
	case '\'':
		return l.readString(start, '\'', l.dialect.supports(featBackslashEscape))
	case '"':
		if l.dialect.supports(featDoubleQuotedString) {
			return l.readString(start, '"', true)
		}
		return l.readQuotedIdentifier(start, '"')
	case '`':
		if l.dialect.supports(featBacktickIdent) {
			return l.readQuotedIdentifier(start, '`')
		}
		return l.illegal(start, "unexpected character '`'")
	}

	if (l.ch == 'E' || l.ch == 'e') && l.peekChar() == '\'' && l.dialect.supports(featDollarQuote) {
		l.readChar()
		tok := l.readString(l.pos, '\'', true)
		tok.Pos = start
		return tok
	}
	if (l.ch == 'N' || l.ch == 'n') && l.peekChar() == '\'' {
		l.readChar()
		tok := l.readString(l.pos, '\'', l.dialect.supports(featBackslashEscape))
		tok.Pos = start
		return tok
	}
	if isIdentStart(l.ch) {
		l.skipIdentChars()
		tok := l.emit(TOKEN_IDENT, start)
		tok.Type = lookupKeyword(strings.ToLower(tok.Literal))
		return tok
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	return l.illegal(start, "unexpected character '"+string(l.ch)+"'")
}

// skipWhitespaceAndComments skips whitespace and SQL comments. It returns
// the start offset and false when a block comment is left open.
func (l *Lexer) skipWhitespaceAndComments() (int, bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
			l.readChar()
		}
		switch {
		case l.ch == '-' && l.peekChar() == '-':
			l.skipLine()
		case l.ch == '#' && l.peekChar() != '{' && l.dialect.supports(featHashComment):
			l.skipLine()
		case l.ch == '/' && l.peekChar() == '*':
			start := l.pos
			l.advance(2)
			depth := 1
			for depth > 0 {
				if l.eof() {
					return start, false
				}
				switch {
				case l.ch == '*' && l.peekChar() == '/':
					l.advance(2)
					depth--
				case l.ch == '/' && l.peekChar() == '*' && l.dialect == Postgres:
					l.advance(2)
					depth++
				default:
					l.readChar()
				}
			}
		default:
			return l.pos, true
		}
	}
}

func (l *Lexer) skipLine() {
	for !l.eof() && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipIdentChars() {
	for isIdentChar(l.ch) && !l.eof() {
		l.readChar()
	}
}

// followsOperand reports whether the byte before start ends an operand, in
// which case a '.' is member access rather than the start of a number.
func (l *Lexer) followsOperand(start int) bool {
	if start == 0 {
		return false
	}
	prev := l.input[start-1]
	return isIdentChar(prev) || prev == ')' || prev == ']' || prev == '"' || prev == '`'
}

// namedParamAllowed reports whether ':' at start begins a :name placeholder.
// Slices (a[1:n]) and struct keys ({'k':v}) keep the bare colon.
func (l *Lexer) namedParamAllowed(start int) bool {
	if start == 0 {
		return true
	}
	switch l.input[start-1] {
	case ' ', '\t', '\n', '\r', '(', ',', '=', '<', '>', '+', '-', '*', '/', '%', '|':
		return true
	}
	return false
}

// readString reads a quoted string literal. A doubled quote character
// embeds the quote; with escapes enabled a backslash escapes the next byte.
func (l *Lexer) readString(start int, quote byte, escapes bool) Token {
	l.readChar() // opening quote
	var result strings.Builder
	for {
		if l.eof() {
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:], Pos: start, End: len(l.input), Err: "unterminated string literal"}
		}
		switch {
		case l.ch == quote && l.peekChar() == quote:
			result.WriteByte(quote)
			l.advance(2)
		case l.ch == quote:
			l.readChar()
			return Token{Type: TOKEN_STRING, Literal: result.String(), Pos: start, End: l.pos}
		case l.ch == '\\' && escapes && l.readPos < len(l.input):
			l.readChar()
			result.WriteString(unescape(l.ch))
			l.readChar()
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func unescape(ch byte) string {
	switch ch {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case '0':
		return "\x00"
	case 'Z':
		return "\x1a"
	case '%', '_':
		return "\\" + string(ch)
	default:
		return string(ch)
	}
}

// readQuotedIdentifier reads a delimited identifier. A doubled delimiter
// embeds it.
func (l *Lexer) readQuotedIdentifier(start int, quote byte) Token {
	l.readChar() // opening quote
	var result strings.Builder
	for {
		if l.eof() {
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:], Pos: start, End: len(l.input), Err: "unterminated quoted identifier"}
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				result.WriteByte(quote)
				l.advance(2)
				continue
			}
			l.readChar()
			if result.Len() == 0 {
				return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: start, End: l.pos, Err: "empty quoted identifier"}
			}
			return Token{Type: TOKEN_IDENT, Literal: result.String(), Pos: start, End: l.pos, Quote: quote}
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
}

// readDollar reads $1 and $name placeholders, ${name} templates, and
// $tag$...$tag$ dollar-quoted strings.
func (l *Lexer) readDollar(start int) Token {
	next := l.peekChar()
	switch {
	case next == '{':
		return l.readBracedPlaceholder(start)
	case isDigit(next):
		l.advance(1)
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.emit(TOKEN_PLACEHOLDER, start)
	}

	if l.dialect.supports(featDollarQuote) {
		// Scan a possible tag.
		end := l.readPos
		for end < len(l.input) && isIdentChar(l.input[end]) && l.input[end] != '$' {
			end++
		}
		if end < len(l.input) && l.input[end] == '$' {
			delim := l.input[start : end+1]
			bodyStart := end + 1
			idx := strings.Index(l.input[bodyStart:], delim)
			if idx < 0 {
				l.advance(len(l.input) - l.pos)
				return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:], Pos: start, End: len(l.input), Err: "unterminated dollar-quoted string"}
			}
			body := l.input[bodyStart : bodyStart+idx]
			l.advance(bodyStart + idx + len(delim) - l.pos)
			return Token{Type: TOKEN_STRING, Literal: body, Pos: start, End: l.pos}
		}
	}

	if isIdentStart(next) {
		l.advance(1)
		l.skipIdentChars()
		return l.emit(TOKEN_PLACEHOLDER, start)
	}
	return l.illegal(start, "unexpected character '$'")
}

// readBracedPlaceholder reads #{name} or ${name}.
func (l *Lexer) readBracedPlaceholder(start int) Token {
	l.advance(2)
	for !l.eof() && l.ch != '}' {
		l.readChar()
	}
	if l.eof() {
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:], Pos: start, End: len(l.input), Err: "unterminated placeholder"}
	}
	l.readChar()
	return l.emit(TOKEN_PLACEHOLDER, start)
}

// readNumber reads a numeric literal (integer, decimal, hex, or scientific).
func (l *Lexer) readNumber(start int) Token {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') && isHexDigit(l.peekAt(1)) {
		l.advance(2)
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.emit(TOKEN_NUMBER, start)
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && l.peekChar() != '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || (l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekAt(1))) {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.emit(TOKEN_NUMBER, start)
}

// Tokenize returns every token of the input up to and including EOF or the
// first illegal token.
func Tokenize(input string, d Dialect) []Token {
	l := NewLexer(input, d)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TOKEN_EOF || tok.Type == TOKEN_ILLEGAL {
			return toks
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}
