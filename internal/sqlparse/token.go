// Package sqlparse provides a dialect-aware SQL lexer, parser, AST, and
// canonical formatter.
//
// It understands the query surface of PostgreSQL, MySQL, and DuckDB (plus a
// permissive generic dialect that accepts the union of all of them):
// CTEs, set operations, derived tables, table functions, UNNEST, PIVOT,
// UNPIVOT, MATCH_RECOGNIZE, every join flavour, window functions, and the
// dialect-specific expression forms. Statements other than queries are kept
// as raw text.
//
// The AST is a set of closed sum types expressed as Go interfaces with
// unexported marker methods. Consumers walk it with exhaustive type switches;
// ExprKinds, TableRefKinds, and SetExprKinds enumerate every variant so those
// switches can be checked in tests.
package sqlparse

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

// TOKEN_EOF and friends enumerate all token types produced by the lexer.
// Only reserved words get their own token type; every other keyword is lexed
// as TOKEN_IDENT and recognised by the parser in context.
const (
	TOKEN_EOF     TokenType = iota // end of input
	TOKEN_ILLEGAL                  // unexpected character or unterminated literal

	TOKEN_IDENT       // identifier or non-reserved keyword
	TOKEN_NUMBER      // 123, 45.67, 1e10
	TOKEN_STRING      // 'hello'
	TOKEN_PLACEHOLDER // ?, $1, :name, @name, #{name}, ${name}

	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_DSLASH    // // (integer division)
	TOKEN_MOD       // %
	TOKEN_DPIPE     // ||
	TOKEN_EQ        // =
	TOKEN_DBLEQ     // ==
	TOKEN_NE        // != or <>
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_SPACESHIP // <=> (MySQL null-safe equality)
	TOKEN_AMP       // &
	TOKEN_PIPE      // |
	TOKEN_CARET     // ^
	TOKEN_TILDE     // ~
	TOKEN_LSHIFT    // <<
	TOKEN_RSHIFT    // >>
	TOKEN_DOT       // .
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_COLON     // :
	TOKEN_DCOLON    // :: (cast)
	TOKEN_COLONEQ   // := (named argument)
	TOKEN_FATARROW  // => (named argument)
	TOKEN_ARROW     // -> (lambda or JSON access)
	TOKEN_LONGARROW // ->> (JSON access as text)
	TOKEN_HASHARROW // #> (JSON path)
	TOKEN_HASHLONG  // #>> (JSON path as text)
	TOKEN_ATGT      // @> (contains)
	TOKEN_LTAT      // <@ (contained by)
	TOKEN_ATAT      // @@ (text search match)
	TOKEN_TILDESTAR // ~* (case-insensitive regex match)
	TOKEN_NTILDE    // !~ (regex mismatch)
	TOKEN_NTILDESTR // !~* (case-insensitive regex mismatch)

	// TOKEN_ALL and below are reserved keywords (alphabetical).
	TOKEN_ALL
	TOKEN_AND
	TOKEN_ANY
	TOKEN_ARRAY
	TOKEN_AS
	TOKEN_ASC
	TOKEN_BETWEEN
	TOKEN_BY
	TOKEN_CASE
	TOKEN_CAST
	TOKEN_CROSS
	TOKEN_DESC
	TOKEN_DISTINCT
	TOKEN_ELSE
	TOKEN_END
	TOKEN_EXCEPT
	TOKEN_EXISTS
	TOKEN_FALSE
	TOKEN_FETCH
	TOKEN_FOR
	TOKEN_FROM
	TOKEN_FULL
	TOKEN_GROUP
	TOKEN_HAVING
	TOKEN_IN
	TOKEN_INNER
	TOKEN_INTERSECT
	TOKEN_INTERVAL
	TOKEN_IS
	TOKEN_JOIN
	TOKEN_LATERAL
	TOKEN_LEFT
	TOKEN_LIKE
	TOKEN_LIMIT
	TOKEN_NATURAL
	TOKEN_NOT
	TOKEN_NULL
	TOKEN_OFFSET
	TOKEN_ON
	TOKEN_OR
	TOKEN_ORDER
	TOKEN_OUTER
	TOKEN_RIGHT
	TOKEN_SELECT
	TOKEN_SOME
	TOKEN_THEN
	TOKEN_TRUE
	TOKEN_UNION
	TOKEN_USING
	TOKEN_VALUES
	TOKEN_WHEN
	TOKEN_WHERE
	TOKEN_WINDOW
	TOKEN_WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsKeyword reports whether the token type is a reserved keyword.
func (t TokenType) IsKeyword() bool {
	return t >= TOKEN_ALL && t <= TOKEN_WITH
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	TOKEN_EOF:         "EOF",
	TOKEN_ILLEGAL:     "ILLEGAL",
	TOKEN_IDENT:       "IDENT",
	TOKEN_NUMBER:      "NUMBER",
	TOKEN_STRING:      "STRING",
	TOKEN_PLACEHOLDER: "PLACEHOLDER",

	TOKEN_PLUS:      "+",
	TOKEN_MINUS:     "-",
	TOKEN_STAR:      "*",
	TOKEN_SLASH:     "/",
	TOKEN_DSLASH:    "//",
	TOKEN_MOD:       "%",
	TOKEN_DPIPE:     "||",
	TOKEN_EQ:        "=",
	TOKEN_DBLEQ:     "==",
	TOKEN_NE:        "<>",
	TOKEN_LT:        "<",
	TOKEN_GT:        ">",
	TOKEN_LE:        "<=",
	TOKEN_GE:        ">=",
	TOKEN_SPACESHIP: "<=>",
	TOKEN_AMP:       "&",
	TOKEN_PIPE:      "|",
	TOKEN_CARET:     "^",
	TOKEN_TILDE:     "~",
	TOKEN_LSHIFT:    "<<",
	TOKEN_RSHIFT:    ">>",
	TOKEN_DOT:       ".",
	TOKEN_COMMA:     ",",
	TOKEN_SEMICOLON: ";",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_LBRACKET:  "[",
	TOKEN_RBRACKET:  "]",
	TOKEN_LBRACE:    "{",
	TOKEN_RBRACE:    "}",
	TOKEN_COLON:     ":",
	TOKEN_DCOLON:    "::",
	TOKEN_COLONEQ:   ":=",
	TOKEN_FATARROW:  "=>",
	TOKEN_ARROW:     "->",
	TOKEN_LONGARROW: "->>",
	TOKEN_HASHARROW: "#>",
	TOKEN_HASHLONG:  "#>>",
	TOKEN_ATGT:      "@>",
	TOKEN_LTAT:      "<@",
	TOKEN_ATAT:      "@@",
	TOKEN_TILDESTAR: "~*",
	TOKEN_NTILDE:    "!~",
	TOKEN_NTILDESTR: "!~*",

	TOKEN_ALL:       "ALL",
	TOKEN_AND:       "AND",
	TOKEN_ANY:       "ANY",
	TOKEN_ARRAY:     "ARRAY",
	TOKEN_AS:        "AS",
	TOKEN_ASC:       "ASC",
	TOKEN_BETWEEN:   "BETWEEN",
	TOKEN_BY:        "BY",
	TOKEN_CASE:      "CASE",
	TOKEN_CAST:      "CAST",
	TOKEN_CROSS:     "CROSS",
	TOKEN_DESC:      "DESC",
	TOKEN_DISTINCT:  "DISTINCT",
	TOKEN_ELSE:      "ELSE",
	TOKEN_END:       "END",
	TOKEN_EXCEPT:    "EXCEPT",
	TOKEN_EXISTS:    "EXISTS",
	TOKEN_FALSE:     "FALSE",
	TOKEN_FETCH:     "FETCH",
	TOKEN_FOR:       "FOR",
	TOKEN_FROM:      "FROM",
	TOKEN_FULL:      "FULL",
	TOKEN_GROUP:     "GROUP",
	TOKEN_HAVING:    "HAVING",
	TOKEN_IN:        "IN",
	TOKEN_INNER:     "INNER",
	TOKEN_INTERSECT: "INTERSECT",
	TOKEN_INTERVAL:  "INTERVAL",
	TOKEN_IS:        "IS",
	TOKEN_JOIN:      "JOIN",
	TOKEN_LATERAL:   "LATERAL",
	TOKEN_LEFT:      "LEFT",
	TOKEN_LIKE:      "LIKE",
	TOKEN_LIMIT:     "LIMIT",
	TOKEN_NATURAL:   "NATURAL",
	TOKEN_NOT:       "NOT",
	TOKEN_NULL:      "NULL",
	TOKEN_OFFSET:    "OFFSET",
	TOKEN_ON:        "ON",
	TOKEN_OR:        "OR",
	TOKEN_ORDER:     "ORDER",
	TOKEN_OUTER:     "OUTER",
	TOKEN_RIGHT:     "RIGHT",
	TOKEN_SELECT:    "SELECT",
	TOKEN_SOME:      "SOME",
	TOKEN_THEN:      "THEN",
	TOKEN_TRUE:      "TRUE",
	TOKEN_UNION:     "UNION",
	TOKEN_USING:     "USING",
	TOKEN_VALUES:    "VALUES",
	TOKEN_WHEN:      "WHEN",
	TOKEN_WHERE:     "WHERE",
	TOKEN_WINDOW:    "WINDOW",
	TOKEN_WITH:      "WITH",
}

// keywords maps lowercase reserved words to their token types.
var keywords = map[string]TokenType{
	"all":       TOKEN_ALL,
	"and":       TOKEN_AND,
	"any":       TOKEN_ANY,
	"array":     TOKEN_ARRAY,
	"as":        TOKEN_AS,
	"asc":       TOKEN_ASC,
	"between":   TOKEN_BETWEEN,
	"by":        TOKEN_BY,
	"case":      TOKEN_CASE,
	"cast":      TOKEN_CAST,
	"cross":     TOKEN_CROSS,
	"desc":      TOKEN_DESC,
	"distinct":  TOKEN_DISTINCT,
	"else":      TOKEN_ELSE,
	"end":       TOKEN_END,
	"except":    TOKEN_EXCEPT,
	"exists":    TOKEN_EXISTS,
	"false":     TOKEN_FALSE,
	"fetch":     TOKEN_FETCH,
	"for":       TOKEN_FOR,
	"from":      TOKEN_FROM,
	"full":      TOKEN_FULL,
	"group":     TOKEN_GROUP,
	"having":    TOKEN_HAVING,
	"in":        TOKEN_IN,
	"inner":     TOKEN_INNER,
	"intersect": TOKEN_INTERSECT,
	"interval":  TOKEN_INTERVAL,
	"is":        TOKEN_IS,
	"join":      TOKEN_JOIN,
	"lateral":   TOKEN_LATERAL,
	"left":      TOKEN_LEFT,
	"like":      TOKEN_LIKE,
	"limit":     TOKEN_LIMIT,
	"natural":   TOKEN_NATURAL,
	"not":       TOKEN_NOT,
	"null":      TOKEN_NULL,
	"offset":    TOKEN_OFFSET,
	"on":        TOKEN_ON,
	"or":        TOKEN_OR,
	"order":     TOKEN_ORDER,
	"outer":     TOKEN_OUTER,
	"right":     TOKEN_RIGHT,
	"select":    TOKEN_SELECT,
	"some":      TOKEN_SOME,
	"then":      TOKEN_THEN,
	"true":      TOKEN_TRUE,
	"union":     TOKEN_UNION,
	"using":     TOKEN_USING,
	"values":    TOKEN_VALUES,
	"when":      TOKEN_WHEN,
	"where":     TOKEN_WHERE,
	"window":    TOKEN_WINDOW,
	"with":      TOKEN_WITH,
}

// lookupKeyword returns the token type for the given lowercase identifier.
// Returns TOKEN_IDENT if it's not a reserved word.
func lookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

// Token represents a lexical token with its literal value and source span.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int  // byte offset of the first character
	End     int  // byte offset just past the last character
	Quote   byte // quote character for delimited identifiers, 0 otherwise
	Err     string
}

// Precedence constants for operator precedence parsing (Pratt parser).
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1  // OR, XOR
	PrecedenceAnd        = 2  // AND
	PrecedenceNot        = 3  // NOT (prefix)
	PrecedenceIs         = 4  // IS, ISNULL
	PrecedenceComparison = 5  // =, <>, <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN, ANY/ALL
	PrecedenceOther      = 6  // JSON, regex, containment, bitwise and shift operators
	PrecedenceAddition   = 7  // +, -, ||
	PrecedenceMultiply   = 8  // *, /, %, //, DIV, MOD
	PrecedenceUnary      = 9  // -, +, ~ (prefix)
	PrecedencePostfix    = 10 // ::, [], COLLATE, AT TIME ZONE
)
