package sqlparse

// === FROM clause ===

// TableWithJoins is one comma-separated FROM item and its joins.
type TableWithJoins struct {
	Relation TableRef
	Joins    []*Join
}

// JoinOp enumerates join operators.
type JoinOp int

const (
	JoinInner JoinOp = iota
	JoinLeftOuter
	JoinRightOuter
	JoinFullOuter
	JoinLeftSemi
	JoinRightSemi
	JoinLeftAnti
	JoinRightAnti
	JoinSemi
	JoinAnti
	JoinAsOf
	JoinStraight
	JoinCross
	JoinCrossApply
	JoinOuterApply
	JoinPositional
)

// ConstraintKind is the join condition form.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintOn
	ConstraintUsing
	ConstraintNatural
)

// JoinConstraint is ON expr, USING (cols), NATURAL, or nothing.
type JoinConstraint struct {
	Kind  ConstraintKind
	On    Expr
	Using []Ident
}

// Join is one join applied to the preceding relation.
type Join struct {
	Op             JoinOp
	Relation       TableRef
	Constraint     JoinConstraint
	MatchCondition Expr // ASOF JOIN ... MATCH_CONDITION (expr)
}

// TableAlias is AS name [(col, ...)].
type TableAlias struct {
	Name    Ident
	Columns []Ident
}

// TableSample is TABLESAMPLE method (args) [REPEATABLE (seed)].
type TableSample struct {
	Method string
	Args   []Expr
	Seed   Expr
}

// IndexHint is a MySQL USE/IGNORE/FORCE INDEX hint.
type IndexHint struct {
	Action string // USE, IGNORE, FORCE
	Kind   string // INDEX or KEY
	For    string // "", "JOIN", "ORDER BY", "GROUP BY"
	Names  []Ident
}

// TableName is a named table or view.
type TableName struct {
	Name       []Ident
	Version    Expr // FOR SYSTEM_TIME AS OF expr
	Alias      *TableAlias
	IndexHints []IndexHint
	Sample     *TableSample
}

func (*TableName) node()         {}
func (*TableName) tableRefNode() {}

// DerivedTable is a subquery in FROM.
type DerivedTable struct {
	Lateral bool
	Query   *Query
	Alias   *TableAlias
}

func (*DerivedTable) node()         {}
func (*DerivedTable) tableRefNode() {}

// FuncTable is a table-valued function call in FROM.
type FuncTable struct {
	Lateral        bool
	Func           *FuncCall
	WithOrdinality bool
	Alias          *TableAlias
}

func (*FuncTable) node()         {}
func (*FuncTable) tableRefNode() {}

// UnnestTable is UNNEST(array, ...) in FROM.
type UnnestTable struct {
	Exprs          []Expr
	WithOrdinality bool
	Alias          *TableAlias
	WithOffset     bool
	OffsetAlias    *Ident
}

func (*UnnestTable) node()         {}
func (*UnnestTable) tableRefNode() {}

// NestedJoin is a parenthesized join tree.
type NestedJoin struct {
	Join  *TableWithJoins
	Alias *TableAlias
}

func (*NestedJoin) node()         {}
func (*NestedJoin) tableRefNode() {}

// PivotTable is source PIVOT (aggregates FOR columns IN (values)).
type PivotTable struct {
	Source        TableRef
	Aggregates    []SelectItem
	For           []Ident
	Values        PivotValues
	DefaultOnNull Expr
	Alias         *TableAlias
}

func (*PivotTable) node()         {}
func (*PivotTable) tableRefNode() {}

// PivotValues is the IN list of a PIVOT: explicit values, ANY [ORDER BY],
// or a subquery.
type PivotValues struct {
	List       []SelectItem
	Any        bool
	AnyOrderBy []OrderByItem
	Subquery   *Query
}

// UnpivotTable is source UNPIVOT (value FOR name IN (columns)).
type UnpivotTable struct {
	Source       TableRef
	IncludeNulls *bool
	Value        []Ident
	Name         Ident
	Columns      []UnpivotColumn
	Alias        *TableAlias
}

func (*UnpivotTable) node()         {}
func (*UnpivotTable) tableRefNode() {}

// UnpivotColumn is one IN entry of UNPIVOT: a column or column tuple with
// an optional alias.
type UnpivotColumn struct {
	Columns []Ident
	Alias   *Ident
}

// MatchRecognize is source MATCH_RECOGNIZE (...).
type MatchRecognize struct {
	Source         TableRef
	PartitionBy    []Expr
	OrderBy        []OrderByItem
	Measures       []SelectItem
	RowsPerMatch   []string
	AfterMatchSkip []string
	Pattern        []string
	Symbols        []SymbolDef
	Alias          *TableAlias
}

func (*MatchRecognize) node()         {}
func (*MatchRecognize) tableRefNode() {}

// SymbolDef is one DEFINE entry of MATCH_RECOGNIZE.
type SymbolDef struct {
	Name Ident
	Expr Expr
}
