// Package params substitutes named parameter values into a statement before
// it is executed.
package params

import (
	"fmt"
	"strings"

	"sqlsplit/internal/domain"
)

// ParsePattern resolves a pattern name such as "jpa" or "MyBatis".
func ParsePattern(s string) (domain.ParameterPattern, error) {
	p := domain.ParameterPattern(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown parameter pattern %q (want one of %s)", s, patternList())
	}
	return p, nil
}

func patternList() string {
	names := make([]string, 0, 4)
	for _, p := range domain.ParameterPatterns() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// Placeholder returns the text pattern p uses to mark the parameter name.
func Placeholder(p domain.ParameterPattern, name string) string {
	switch p {
	case domain.PatternMyBatis:
		return "#{" + name + "}"
	case domain.PatternJPA:
		return ":" + name
	case domain.PatternDapper:
		return "@" + name
	case domain.PatternLog:
		return "$" + name
	}
	return ""
}

// Replace substitutes each parameter's value for its placeholder, applying
// parameters in order. Every occurrence is replaced, except under
// PatternLog which replaces only the first occurrence per parameter. An
// unknown pattern leaves sql unchanged.
//
// Values are inserted verbatim; callers quote string values themselves.
// A placeholder immediately followed by an identifier character is a
// different, longer name and is left alone, so :id never touches :ident.
// For PatternJPA a "::" cast is never taken for a placeholder.
func Replace(sql string, pattern domain.ParameterPattern, ps []domain.Parameter) string {
	if !pattern.Valid() {
		return sql
	}
	for _, p := range ps {
		if p.Name == "" {
			continue
		}
		sql = replaceOne(sql, pattern, Placeholder(pattern, p.Name), p.Value)
	}
	return sql
}

func replaceOne(sql string, pattern domain.ParameterPattern, ph, value string) string {
	var b strings.Builder
	rest := sql
	replaced := false
	for {
		i := strings.Index(rest, ph)
		if i < 0 || (replaced && pattern == domain.PatternLog) {
			b.WriteString(rest)
			return b.String()
		}
		end := i + len(ph)
		if !isPlaceholderAt(rest, i, end, pattern) {
			b.WriteString(rest[:end])
			rest = rest[end:]
			continue
		}
		b.WriteString(rest[:i])
		b.WriteString(value)
		rest = rest[end:]
		replaced = true
	}
}

// isPlaceholderAt reports whether s[i:end] is a whole placeholder rather than
// a prefix of a longer name or part of a cast.
func isPlaceholderAt(s string, i, end int, pattern domain.ParameterPattern) bool {
	if pattern == domain.PatternMyBatis {
		return true
	}
	if end < len(s) && isNameChar(s[end]) {
		return false
	}
	if pattern == domain.PatternJPA && i > 0 && s[i-1] == ':' {
		return false
	}
	return true
}

func isNameChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
