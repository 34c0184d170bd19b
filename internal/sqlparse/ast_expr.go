package sqlparse

// === Expression Nodes ===

// Identifier is a possibly qualified column or object reference (a, t.a,
// s.t.a).
type Identifier struct {
	Parts []Ident
}

func (*Identifier) node()     {}
func (*Identifier) exprNode() {}

// LiteralType represents the type of a literal.
type LiteralType int

const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal represents a literal value (number, string, bool, null).
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) node()     {}
func (*Literal) exprNode() {}

// TypedString is a type-prefixed string literal such as DATE '2024-01-01'.
type TypedString struct {
	TypeName string
	Value    string
}

func (*TypedString) node()     {}
func (*TypedString) exprNode() {}

// Placeholder is a bind parameter (?, $1, :name, @name, #{name}).
type Placeholder struct {
	Text string
}

func (*Placeholder) node()     {}
func (*Placeholder) exprNode() {}

// Star is * or qual.* with optional DuckDB modifiers.
type Star struct {
	Qualifier []Ident
	Exclude   []Ident
	Replace   []StarReplace
	Rename    []StarRename
}

func (*Star) node()     {}
func (*Star) exprNode() {}

// StarReplace is one "expr AS column" entry of * REPLACE (...).
type StarReplace struct {
	Expr   Expr
	Column Ident
}

// StarRename is one "column AS alias" entry of * RENAME (...).
type StarRename struct {
	Column Ident
	Alias  Ident
}

// BinaryExpr represents a binary expression (left op right). Op is either
// an operator token or a keyword token (AND, OR); word operators such as
// DIV, MOD, and XOR use OpWord.
type BinaryExpr struct {
	Left   Expr
	Op     TokenType
	OpWord string
	Right  Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression (NOT x, -x, +x, ~x).
type UnaryExpr struct {
	Op   TokenType
	Expr Expr
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) node()     {}
func (*ParenExpr) exprNode() {}

// TupleExpr is (a, b, ...) or ROW(a, b, ...).
type TupleExpr struct {
	Items []Expr
	Row   bool
}

func (*TupleExpr) node()     {}
func (*TupleExpr) exprNode() {}

// IsKind is the predicate tested by IS [NOT].
type IsKind int

const (
	IsNull IsKind = iota
	IsTrue
	IsFalse
	IsUnknown
)

// IsExpr represents IS [NOT] NULL/TRUE/FALSE/UNKNOWN.
type IsExpr struct {
	Expr Expr
	Not  bool
	Kind IsKind
}

func (*IsExpr) node()     {}
func (*IsExpr) exprNode() {}

// IsDistinctExpr represents IS [NOT] DISTINCT FROM.
type IsDistinctExpr struct {
	Left  Expr
	Not   bool
	Right Expr
}

func (*IsDistinctExpr) node()     {}
func (*IsDistinctExpr) exprNode() {}

// InListExpr represents x [NOT] IN (a, b, ...).
type InListExpr struct {
	Expr Expr
	Not  bool
	List []Expr
}

func (*InListExpr) node()     {}
func (*InListExpr) exprNode() {}

// InSubqueryExpr represents x [NOT] IN (SELECT ...).
type InSubqueryExpr struct {
	Expr  Expr
	Not   bool
	Query *Query
}

func (*InSubqueryExpr) node()     {}
func (*InSubqueryExpr) exprNode() {}

// InUnnestExpr represents x [NOT] IN UNNEST(array).
type InUnnestExpr struct {
	Expr  Expr
	Not   bool
	Array Expr
}

func (*InUnnestExpr) node()     {}
func (*InUnnestExpr) exprNode() {}

// BetweenExpr represents a BETWEEN expression.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) node()     {}
func (*BetweenExpr) exprNode() {}

// LikeKind is the pattern-matching operator of a LikeExpr.
type LikeKind int

const (
	LikeLike LikeKind = iota
	LikeILike
	LikeSimilarTo
	LikeGlob
	LikeRegexp
	LikeRLike
)

// LikeExpr represents LIKE, ILIKE, SIMILAR TO, GLOB, REGEXP, and RLIKE.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Kind    LikeKind
	Pattern Expr
	Escape  Expr
}

func (*LikeExpr) node()     {}
func (*LikeExpr) exprNode() {}

// AnyAllExpr represents x op ANY|SOME|ALL (subquery or array).
type AnyAllExpr struct {
	Left       Expr
	Op         TokenType
	Quantifier TokenType // TOKEN_ANY, TOKEN_SOME, or TOKEN_ALL
	Query      *Query
	Right      Expr
}

func (*AnyAllExpr) node()     {}
func (*AnyAllExpr) exprNode() {}

// CastStyle records which syntax produced a CastExpr.
type CastStyle int

const (
	CastFunction CastStyle = iota // CAST(x AS t)
	CastTry                       // TRY_CAST(x AS t)
	CastDoubleColon               // x::t
)

// CastExpr represents CAST, TRY_CAST, and :: casts.
type CastExpr struct {
	Expr     Expr
	TypeName string
	Style    CastStyle
}

func (*CastExpr) node()     {}
func (*CastExpr) exprNode() {}

// ConvertExpr represents MySQL CONVERT(x, type) and CONVERT(x USING charset).
type ConvertExpr struct {
	Expr     Expr
	TypeName string
	Charset  string
}

func (*ConvertExpr) node()     {}
func (*ConvertExpr) exprNode() {}

// AtTimeZoneExpr represents x AT TIME ZONE zone.
type AtTimeZoneExpr struct {
	Expr Expr
	Zone Expr
}

func (*AtTimeZoneExpr) node()     {}
func (*AtTimeZoneExpr) exprNode() {}

// CollateExpr represents x COLLATE collation.
type CollateExpr struct {
	Expr      Expr
	Collation []Ident
}

func (*CollateExpr) node()     {}
func (*CollateExpr) exprNode() {}

// ExtractExpr represents EXTRACT(field FROM x).
type ExtractExpr struct {
	Field string
	Expr  Expr
}

func (*ExtractExpr) node()     {}
func (*ExtractExpr) exprNode() {}

// PositionExpr represents POSITION(needle IN haystack).
type PositionExpr struct {
	Needle   Expr
	Haystack Expr
}

func (*PositionExpr) node()     {}
func (*PositionExpr) exprNode() {}

// SubstringExpr represents SUBSTRING(x FROM start FOR length).
type SubstringExpr struct {
	Expr Expr
	From Expr
	For  Expr
}

func (*SubstringExpr) node()     {}
func (*SubstringExpr) exprNode() {}

// TrimExpr represents TRIM([BOTH|LEADING|TRAILING] [chars] FROM x).
type TrimExpr struct {
	Where string
	Chars Expr
	Expr  Expr
}

func (*TrimExpr) node()     {}
func (*TrimExpr) exprNode() {}

// OverlayExpr represents OVERLAY(x PLACING y FROM start [FOR length]).
type OverlayExpr struct {
	Expr    Expr
	Placing Expr
	From    Expr
	For     Expr
}

func (*OverlayExpr) node()     {}
func (*OverlayExpr) exprNode() {}

// IndexExpr is a subscript x[i] or slice x[a:b].
type IndexExpr struct {
	Expr    Expr
	Index   Expr
	IsSlice bool
	Start   Expr
	Stop    Expr
}

func (*IndexExpr) node()     {}
func (*IndexExpr) exprNode() {}

// FuncCall represents a function call, including aggregate and window
// calls.
type FuncCall struct {
	Name          []Ident
	Distinct      bool
	Args          []Expr
	Subquery      *Query // f(SELECT ...) and ARRAY(SELECT ...)
	OrderBy       []OrderByItem
	Limit         Expr
	Separator     Expr
	OnOverflow    *ListAggOverflow
	HavingBound   *HavingBound
	NullTreatment string // "IGNORE NULLS" or "RESPECT NULLS"
	NullsInside   bool   // null treatment written inside the argument list
	WithinGroup   []OrderByItem
	Filter        Expr
	Over          *WindowSpec
}

func (*FuncCall) node()     {}
func (*FuncCall) exprNode() {}

// ListAggOverflow is LISTAGG's ON OVERFLOW clause.
type ListAggOverflow struct {
	Truncate  bool
	Filler    Expr
	WithCount bool
}

// HavingBound is the HAVING MIN|MAX bound of an aggregate argument list.
type HavingBound struct {
	Max  bool
	Expr Expr
}

// WindowSpec represents a window specification (OVER clause or WINDOW
// entry). Bare marks "OVER name" and "WINDOW w AS name", where only Ref is
// set.
type WindowSpec struct {
	Ref         Ident
	Bare        bool
	PartitionBy []Expr
	OrderBy     []OrderByItem
	Frame       *FrameSpec
}

// FrameType represents the type of window frame.
type FrameType string

const (
	FrameRows   FrameType = "ROWS"
	FrameRange  FrameType = "RANGE"
	FrameGroups FrameType = "GROUPS"
)

// FrameSpec represents a window frame specification.
type FrameSpec struct {
	Type    FrameType
	Start   *FrameBound
	End     *FrameBound
	Exclude string
}

// FrameBoundType represents the type of frame bound.
type FrameBoundType string

const (
	FrameUnboundedPreceding FrameBoundType = "UNBOUNDED PRECEDING"
	FrameUnboundedFollowing FrameBoundType = "UNBOUNDED FOLLOWING"
	FrameCurrentRow         FrameBoundType = "CURRENT ROW"
	FrameExprPreceding      FrameBoundType = "PRECEDING"
	FrameExprFollowing      FrameBoundType = "FOLLOWING"
)

// FrameBound represents a window frame bound.
type FrameBound struct {
	Type   FrameBoundType
	Offset Expr
}

// NamedArg is name => value or name := value.
type NamedArg struct {
	Name  Ident
	Op    TokenType
	Value Expr
}

func (*NamedArg) node()     {}
func (*NamedArg) exprNode() {}

// CaseExpr represents a CASE expression.
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
}

func (*CaseExpr) node()     {}
func (*CaseExpr) exprNode() {}

// WhenClause represents a WHEN clause in a CASE expression.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// ExistsExpr represents [NOT] EXISTS (subquery).
type ExistsExpr struct {
	Not   bool
	Query *Query
}

func (*ExistsExpr) node()     {}
func (*ExistsExpr) exprNode() {}

// SubqueryExpr represents a scalar subquery.
type SubqueryExpr struct {
	Query *Query
}

func (*SubqueryExpr) node()     {}
func (*SubqueryExpr) exprNode() {}

// GroupingKind distinguishes GROUPING SETS, CUBE, and ROLLUP.
type GroupingKind int

const (
	GroupingSets GroupingKind = iota
	GroupingCube
	GroupingRollup
)

// GroupingExpr is GROUPING SETS ((a), (b)), CUBE (a, b), or ROLLUP (a, b).
type GroupingExpr struct {
	Kind GroupingKind
	Sets [][]Expr
}

func (*GroupingExpr) node()     {}
func (*GroupingExpr) exprNode() {}

// ArrayExpr is ARRAY[a, b] or [a, b].
type ArrayExpr struct {
	Keyword bool
	Elems   []Expr
}

func (*ArrayExpr) node()     {}
func (*ArrayExpr) exprNode() {}

// StructExpr is a DuckDB struct literal {'k': v, ...}.
type StructExpr struct {
	Fields []StructField
}

func (*StructExpr) node()     {}
func (*StructExpr) exprNode() {}

// StructField is one key/value pair of a struct literal.
type StructField struct {
	Key   string
	Value Expr
}

// MapExpr is a DuckDB map literal MAP {k: v, ...}.
type MapExpr struct {
	Entries []MapEntry
}

func (*MapExpr) node()     {}
func (*MapExpr) exprNode() {}

// MapEntry is one key/value pair of a map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// IntervalExpr is INTERVAL value [unit [TO unit]].
type IntervalExpr struct {
	Value  Expr
	Unit   string
	ToUnit string
}

func (*IntervalExpr) node()     {}
func (*IntervalExpr) exprNode() {}

// LambdaExpr is a DuckDB lambda x -> body or (x, y) -> body.
type LambdaExpr struct {
	Params []Ident
	Body   Expr
}

func (*LambdaExpr) node()     {}
func (*LambdaExpr) exprNode() {}

// PriorExpr is the PRIOR operator of CONNECT BY.
type PriorExpr struct {
	Expr Expr
}

func (*PriorExpr) node()     {}
func (*PriorExpr) exprNode() {}

// OuterJoinMarker is the Oracle (+) suffix.
type OuterJoinMarker struct {
	Expr Expr
}

func (*OuterJoinMarker) node()     {}
func (*OuterJoinMarker) exprNode() {}

// MatchAgainstExpr is MySQL MATCH (cols) AGAINST (expr [modifier]).
type MatchAgainstExpr struct {
	Columns  []Expr
	Against  Expr
	Modifier string
}

func (*MatchAgainstExpr) node()     {}
func (*MatchAgainstExpr) exprNode() {}
