package rowset

import (
	"strings"

	"sqlsplit/internal/sqlparse"
)

// kind is how a column's values are rendered as text.
type kind int

const (
	kindUnknown kind = iota
	kindInt
	kindFloat
	kindDecimal
	kindBool
	kindText
	kindDate
)

func (k kind) String() string {
	switch k {
	case kindInt:
		return "integer"
	case kindFloat:
		return "float"
	case kindDecimal:
		return "decimal"
	case kindBool:
		return "bool"
	case kindText:
		return "text"
	case kindDate:
		return "date"
	}
	return "unknown"
}

var postgresTypes = map[string]kind{
	"FLOAT4":  kindFloat,
	"FLOAT8":  kindFloat,
	"NUMERIC": kindDecimal,
	"BOOL":    kindBool,
	"INT2":    kindInt,
	"INT4":    kindInt,
	"INT8":    kindInt,
	"CHAR":    kindText,
	"BPCHAR":  kindText,
	"VARCHAR": kindText,
	"TEXT":    kindText,
	"NAME":    kindText,
	"DATE":    kindDate,
}

var mysqlTypes = map[string]kind{
	"FLOAT":     kindFloat,
	"DOUBLE":    kindFloat,
	"DECIMAL":   kindDecimal,
	"TINYINT":   kindInt,
	"SMALLINT":  kindInt,
	"MEDIUMINT": kindInt,
	"INT":       kindInt,
	"BIGINT":    kindInt,
	"BOOL":      kindBool,
	"CHAR":      kindText,
	"VARCHAR":   kindText,
	"TEXT":      kindText,
	"DATE":      kindDate,
}

var duckdbTypes = map[string]kind{
	"FLOAT":    kindFloat,
	"DOUBLE":   kindFloat,
	"DECIMAL":  kindDecimal,
	"BOOLEAN":  kindBool,
	"TINYINT":  kindInt,
	"SMALLINT": kindInt,
	"INTEGER":  kindInt,
	"BIGINT":   kindInt,
	"HUGEINT":  kindInt,
	"VARCHAR":  kindText,
	"DATE":     kindDate,
}

// sqliteTypes covers the SQLite affinity names plus the declared types the
// sqlite3 driver converts on its own.
var sqliteTypes = map[string]kind{
	"INTEGER": kindInt,
	"REAL":    kindFloat,
	"TEXT":    kindText,
	"NUMERIC": kindDecimal,
	"BOOLEAN": kindBool,
	"DATE":    kindDate,
}

// typeTables maps each dialect to its type table. Generic accepts the names
// of every other table; the tables agree wherever they overlap.
var typeTables = map[sqlparse.Dialect]map[string]kind{
	sqlparse.Postgres: postgresTypes,
	sqlparse.MySQL:    mysqlTypes,
	sqlparse.DuckDB:   duckdbTypes,
	sqlparse.Generic:  mergeTables(postgresTypes, mysqlTypes, duckdbTypes, sqliteTypes),
}

func mergeTables(tables ...map[string]kind) map[string]kind {
	merged := make(map[string]kind)
	for _, t := range tables {
		for name, k := range t {
			merged[name] = k
		}
	}
	return merged
}

// normalizeTypeName uppercases a driver type name and strips parameters
// such as (10,2) and an UNSIGNED prefix.
func normalizeTypeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	return strings.TrimPrefix(name, "UNSIGNED ")
}

// lookup returns the kind of a driver type name in dialect d.
func lookup(d sqlparse.Dialect, typeName string) kind {
	table, ok := typeTables[d]
	if !ok {
		table = typeTables[sqlparse.Generic]
	}
	return table[normalizeTypeName(typeName)]
}
