package sqlparse

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()
}

// Stmt is a top-level statement.
type Stmt interface {
	Node
	stmtNode()
}

// SetExpr is the body of a query: a SELECT, a set operation, a
// parenthesized query, or a VALUES list.
type SetExpr interface {
	Node
	setExprNode()
}

// Expr is a scalar expression.
type Expr interface {
	Node
	exprNode()
}

// TableRef is a table factor in a FROM clause.
type TableRef interface {
	Node
	tableRefNode()
}

// Ident is a single identifier. Quote is the delimiter used in the source,
// zero when the identifier was bare.
type Ident struct {
	Name  string
	Quote byte
}

// Quoted reports whether the identifier was delimited in the source.
func (i Ident) Quoted() bool { return i.Quote != 0 }

// === Statements ===

// Query is a complete query expression: an optional WITH clause, a body,
// and the clauses that apply to the whole body.
type Query struct {
	With     *With
	Body     SetExpr
	OrderBy  *OrderBy
	Limit    Expr
	LimitAll bool
	LimitBy  []Expr
	Offset   *Offset
	Fetch    *Fetch
	Locks    []LockClause
}

func (*Query) node()     {}
func (*Query) stmtNode() {}

// OtherStmt is any statement that is not a query. Only its text is kept.
type OtherStmt struct {
	Keyword string // leading keyword, uppercased
	Raw     string // source text of the statement
}

func (*OtherStmt) node()     {}
func (*OtherStmt) stmtNode() {}

// With is a WITH clause.
type With struct {
	Recursive bool
	CTEs      []*CTE
}

func (*With) node() {}

// CTE is one common table expression of a WITH clause.
type CTE struct {
	Name         Ident
	Columns      []Ident
	Materialized string // "", "MATERIALIZED", or "NOT MATERIALIZED"
	Query        *Query
}

// OrderBy is a query-level ORDER BY clause.
type OrderBy struct {
	All         bool // ORDER BY ALL
	AllDesc     bool
	Items       []OrderByItem
	Interpolate *Interpolate
}

// OrderByItem is one ordering key.
type OrderByItem struct {
	Expr       Expr
	Desc       bool
	NullsFirst *bool
	WithFill   *WithFill
}

// WithFill is the ClickHouse WITH FILL modifier of an ordering key.
type WithFill struct {
	From Expr
	To   Expr
	Step Expr
}

// Interpolate is the ClickHouse INTERPOLATE clause.
type Interpolate struct {
	Items []InterpolateItem
}

// InterpolateItem is a column and its optional fill expression.
type InterpolateItem struct {
	Column Ident
	Expr   Expr
}

// Offset is an OFFSET clause. Rows is "", "ROW", or "ROWS".
type Offset struct {
	Value Expr
	Rows  string
}

// Fetch is a FETCH FIRST/NEXT clause.
type Fetch struct {
	Next     bool
	Quantity Expr
	Percent  bool
	Rows     string // "ROW" or "ROWS"
	WithTies bool
}

// LockClause is FOR UPDATE / FOR SHARE and friends.
type LockClause struct {
	Strength string // "UPDATE", "NO KEY UPDATE", "SHARE", "KEY SHARE"
	Of       [][]Ident
	Wait     string // "", "NOWAIT", "SKIP LOCKED"
}

// === Query bodies ===

// Select is a single SELECT block.
type Select struct {
	Distinct     *Distinct
	Top          *Top
	Projection   []SelectItem
	From         []*TableWithJoins
	LateralViews []LateralView
	Prewhere     Expr
	Where        Expr
	GroupBy      []Expr
	GroupByAll   bool
	WithRollup   bool
	ClusterBy    []Expr
	DistributeBy []Expr
	SortBy       []OrderByItem
	Having       Expr
	Windows      []NamedWindow
	Qualify      Expr
	ConnectBy    *ConnectBy
	FromFirst    bool // DuckDB "FROM t SELECT ..." form
}

func (*Select) node()        {}
func (*Select) setExprNode() {}

// Distinct is DISTINCT, or DISTINCT ON (...) when On is non-empty.
type Distinct struct {
	On []Expr
}

// Top is the TOP n [PERCENT] [WITH TIES] clause.
type Top struct {
	Quantity Expr
	Percent  bool
	WithTies bool
}

// SelectItem is one projection entry. Expr may be a *Star.
type SelectItem struct {
	Expr  Expr
	Alias *Ident
}

// LateralView is a Hive LATERAL VIEW clause.
type LateralView struct {
	Outer   bool
	Expr    Expr
	Name    []Ident
	Columns []Ident
}

// NamedWindow is a WINDOW clause entry.
type NamedWindow struct {
	Name Ident
	Spec *WindowSpec
}

// ConnectBy is the hierarchical START WITH / CONNECT BY clause.
type ConnectBy struct {
	StartWith     Expr
	NoCycle       bool
	Relationships []Expr
	StartFirst    bool // START WITH appeared before CONNECT BY
}

// SetOpType enumerates the set operators.
type SetOpType int

const (
	SetUnion SetOpType = iota
	SetExcept
	SetIntersect
)

// SetQuantifier is the ALL / DISTINCT / BY NAME modifier of a set operator.
type SetQuantifier int

const (
	QuantifierNone SetQuantifier = iota
	QuantifierAll
	QuantifierDistinct
	QuantifierByName
	QuantifierAllByName
	QuantifierDistinctByName
)

// SetOperation combines two query bodies.
type SetOperation struct {
	Op              SetOpType
	Quantifier      SetQuantifier
	Corresponding   bool
	CorrespondingBy []Ident
	Left            SetExpr
	Right           SetExpr
}

func (*SetOperation) node()        {}
func (*SetOperation) setExprNode() {}

// ParenQuery is a parenthesized query used as a body.
type ParenQuery struct {
	Query *Query
}

func (*ParenQuery) node()        {}
func (*ParenQuery) setExprNode() {}

// Values is a VALUES list.
type Values struct {
	ExplicitRow bool // MySQL VALUES ROW(...)
	Rows        [][]Expr
}

func (*Values) node()        {}
func (*Values) setExprNode() {}
