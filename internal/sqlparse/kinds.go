package sqlparse

// ExprKinds returns a zero value of every expression variant. Walkers use it
// to check that their type switches are exhaustive.
func ExprKinds() []Expr {
	return []Expr{
		&Identifier{},
		&Literal{},
		&TypedString{},
		&Placeholder{},
		&Star{},
		&BinaryExpr{},
		&UnaryExpr{},
		&ParenExpr{},
		&TupleExpr{},
		&IsExpr{},
		&IsDistinctExpr{},
		&InListExpr{},
		&InSubqueryExpr{},
		&InUnnestExpr{},
		&BetweenExpr{},
		&LikeExpr{},
		&AnyAllExpr{},
		&CastExpr{},
		&ConvertExpr{},
		&AtTimeZoneExpr{},
		&CollateExpr{},
		&ExtractExpr{},
		&PositionExpr{},
		&SubstringExpr{},
		&TrimExpr{},
		&OverlayExpr{},
		&IndexExpr{},
		&FuncCall{},
		&NamedArg{},
		&CaseExpr{},
		&ExistsExpr{},
		&SubqueryExpr{},
		&GroupingExpr{},
		&ArrayExpr{},
		&StructExpr{},
		&MapExpr{},
		&IntervalExpr{},
		&LambdaExpr{},
		&PriorExpr{},
		&OuterJoinMarker{},
		&MatchAgainstExpr{},
	}
}

// TableRefKinds returns a zero value of every table factor variant.
func TableRefKinds() []TableRef {
	return []TableRef{
		&TableName{},
		&DerivedTable{},
		&FuncTable{},
		&UnnestTable{},
		&NestedJoin{},
		&PivotTable{},
		&UnpivotTable{},
		&MatchRecognize{},
	}
}

// SetExprKinds returns a zero value of every query body variant.
func SetExprKinds() []SetExpr {
	return []SetExpr{
		&Select{},
		&SetOperation{},
		&ParenQuery{},
		&Values{},
	}
}

// JoinOps returns every join operator.
func JoinOps() []JoinOp {
	return []JoinOp{
		JoinInner, JoinLeftOuter, JoinRightOuter, JoinFullOuter,
		JoinLeftSemi, JoinRightSemi, JoinLeftAnti, JoinRightAnti,
		JoinSemi, JoinAnti, JoinAsOf, JoinStraight,
		JoinCross, JoinCrossApply, JoinOuterApply, JoinPositional,
	}
}
