package sqlparse

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL grammar accepted by the lexer and parser and the
// identifier quoting used by the formatter.
type Dialect int

const (
	// Generic accepts the union of every supported extension.
	Generic Dialect = iota
	Postgres
	MySQL
	DuckDB
)

// feature is a grammar extension toggled per dialect.
type feature uint32

const (
	featDoubleColonCast feature = 1 << iota
	featILike
	featDistinctOn
	featBacktickIdent
	featDoubleQuotedString
	featHashComment
	featBackslashEscape
	featDollarQuote
	featLimitComma
	featArrayLiteral
	featRegexOps
	featLockClause
	featTableSample
	featUnnest
	featDuckDB     // QUALIFY, PIVOT, UNPIVOT, lambdas, struct and map literals, SEMI/ANTI/ASOF/POSITIONAL joins, GROUP BY ALL
	featMySQLExtra // STRAIGHT_JOIN, WITH ROLLUP, MATCH AGAINST, CONVERT USING, index hints, DIV/MOD/XOR, GROUP_CONCAT SEPARATOR
	featHive       // LATERAL VIEW, CLUSTER/DISTRIBUTE/SORT BY
	featClickHouse // PREWHERE, WITH FILL, INTERPOLATE, LIMIT BY
	featOracle     // CONNECT BY, PRIOR, (+), MATCH_RECOGNIZE, LISTAGG ON OVERFLOW
	featMSSQL      // TOP, CROSS/OUTER APPLY
	featBigQuery   // IN UNNEST, WITH OFFSET, HAVING MIN/MAX bound, FOR SYSTEM_TIME AS OF, ASOF MATCH_CONDITION
)

var dialectFeatures = map[Dialect]feature{
	Postgres: featDoubleColonCast | featILike | featDistinctOn | featDollarQuote |
		featArrayLiteral | featRegexOps | featLockClause | featTableSample | featUnnest,
	MySQL: featBacktickIdent | featDoubleQuotedString | featHashComment | featBackslashEscape |
		featLimitComma | featLockClause | featMySQLExtra,
	DuckDB: featDoubleColonCast | featILike | featDistinctOn | featArrayLiteral | featRegexOps |
		featTableSample | featUnnest | featDuckDB,
	Generic: featDoubleColonCast | featILike | featDistinctOn | featBacktickIdent | featDollarQuote |
		featLimitComma | featArrayLiteral | featRegexOps | featLockClause | featTableSample | featUnnest |
		featDuckDB | featMySQLExtra | featHive | featClickHouse | featOracle | featMSSQL | featBigQuery,
}

func (d Dialect) supports(f feature) bool {
	return dialectFeatures[d]&f != 0
}

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case DuckDB:
		return "duckdb"
	case Generic:
		return "generic"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// QuoteChar returns the character used to delimit identifiers.
func (d Dialect) QuoteChar() byte {
	if d == MySQL {
		return '`'
	}
	return '"'
}

// Dialects lists every supported dialect.
func Dialects() []Dialect {
	return []Dialect{Postgres, MySQL, DuckDB, Generic}
}

// ParseDialect resolves a dialect name. Matching is case-insensitive and
// accepts a few common aliases.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "duckdb", "duck":
		return DuckDB, nil
	case "generic", "ansi", "":
		return Generic, nil
	default:
		return Generic, fmt.Errorf("unknown SQL dialect %q", name)
	}
}
