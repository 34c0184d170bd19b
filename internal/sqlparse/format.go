package sqlparse

import (
	"strings"
)

// Format renders a node back to SQL text in the given dialect.
//
// The output is a single line with uppercase keywords and single spaces
// between tokens. Identifiers are quoted only when they were quoted in the
// source, using the dialect's quote character. Formatting is a fixed point:
// parsing the output and formatting it again yields the same text.
func Format(n Node, d Dialect) string {
	f := &formatter{dialect: d}
	f.formatNode(n)
	return f.buf.String()
}

// FormatExpr formats an expression.
func FormatExpr(e Expr, d Dialect) string {
	f := &formatter{dialect: d}
	f.formatExpr(e)
	return f.buf.String()
}

// formatter is a flat SQL string builder.
type formatter struct {
	buf     strings.Builder
	dialect Dialect
}

func (f *formatter) formatNode(n Node) {
	switch node := n.(type) {
	case nil:
	case *Query:
		f.formatQuery(node)
	case *OtherStmt:
		f.write(node.Raw)
	case SetExpr:
		f.formatSetExpr(node)
	case TableRef:
		f.formatTableRef(node)
	case Expr:
		f.formatExpr(node)
	case *With:
		f.formatWith(node)
	}
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *formatter) space() {
	f.buf.WriteByte(' ')
}

// commaSep writes items separated by ", ".
func (f *formatter) commaSep(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		if i > 0 {
			f.write(", ")
		}
		fn(i)
	}
}

func (f *formatter) exprList(exprs []Expr) {
	f.commaSep(len(exprs), func(i int) { f.formatExpr(exprs[i]) })
}

// writeIdent writes one identifier, quoted when it was quoted in the source.
func (f *formatter) writeIdent(id Ident) {
	switch id.Quote {
	case 0:
		f.write(id.Name)
	case '\'':
		f.write(quoteString(id.Name, f.dialect))
	default:
		f.write(quoteIdent(id.Name, f.dialect.QuoteChar()))
	}
}

// writeName writes a dotted name.
func (f *formatter) writeName(parts []Ident) {
	for i, part := range parts {
		if i > 0 {
			f.write(".")
		}
		f.writeIdent(part)
	}
}

func (f *formatter) identList(ids []Ident) {
	f.commaSep(len(ids), func(i int) { f.writeIdent(ids[i]) })
}

// parenIdents writes a single identifier bare and several as (a, b).
func (f *formatter) parenIdents(ids []Ident) {
	if len(ids) == 1 {
		f.writeIdent(ids[0])
		return
	}
	f.write("(")
	f.identList(ids)
	f.write(")")
}

// quoteIdent delimits s with q, doubling any embedded q.
func quoteIdent(s string, q byte) string {
	quote := string(q)
	return quote + strings.ReplaceAll(s, quote, quote+quote) + quote
}

// quoteString renders s as a single-quoted literal. Dialects that treat
// backslash as an escape character get backslashes and NUL escaped too.
func quoteString(s string, d Dialect) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	escapes := d.supports(featBackslashEscape)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			b.WriteString("''")
		case escapes && c == '\\':
			b.WriteString(`\\`)
		case escapes && c == 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
