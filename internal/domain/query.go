package domain

// Column describes one result column. Ordinal is zero-based.
type Column struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
}

// RowMap is one materialized row keyed by column name. Every value is
// rendered as text; SQL NULL and unreadable values become "NULL".
type RowMap map[string]string

// QueryResult is the materialized output of one executed statement.
type QueryResult struct {
	Columns   []Column `json:"columns"`
	Rows      []RowMap `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated"`
}
