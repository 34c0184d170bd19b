package sqlparse

import "strings"

// formatExpr dispatches expression formatting by type.
func (f *formatter) formatExpr(e Expr) {
	switch expr := e.(type) {
	case nil:
	case *Identifier:
		f.writeName(expr.Parts)
	case *Literal:
		f.formatLiteral(expr)
	case *TypedString:
		f.write(expr.TypeName)
		if expr.TypeName != "X" && expr.TypeName != "B" {
			f.space()
		}
		f.write(quoteString(expr.Value, f.dialect))
	case *Placeholder:
		f.write(expr.Text)
	case *Star:
		f.formatStar(expr)
	case *BinaryExpr:
		f.formatBinaryExpr(expr)
	case *UnaryExpr:
		f.formatUnaryExpr(expr)
	case *ParenExpr:
		f.write("(")
		f.formatExpr(expr.Expr)
		f.write(")")
	case *TupleExpr:
		if expr.Row {
			f.write("ROW")
		}
		f.write("(")
		f.exprList(expr.Items)
		f.write(")")
	case *IsExpr:
		f.formatIsExpr(expr)
	case *IsDistinctExpr:
		f.formatExpr(expr.Left)
		f.write(" IS ")
		f.not(expr.Not)
		f.write("DISTINCT FROM ")
		f.formatExpr(expr.Right)
	case *InListExpr:
		f.formatExpr(expr.Expr)
		f.space()
		f.not(expr.Not)
		f.write("IN (")
		f.exprList(expr.List)
		f.write(")")
	case *InSubqueryExpr:
		f.formatExpr(expr.Expr)
		f.space()
		f.not(expr.Not)
		f.write("IN (")
		f.formatQuery(expr.Query)
		f.write(")")
	case *InUnnestExpr:
		f.formatExpr(expr.Expr)
		f.space()
		f.not(expr.Not)
		f.write("IN UNNEST(")
		f.formatExpr(expr.Array)
		f.write(")")
	case *BetweenExpr:
		f.formatExpr(expr.Expr)
		f.space()
		f.not(expr.Not)
		f.write("BETWEEN ")
		f.formatExpr(expr.Low)
		f.write(" AND ")
		f.formatExpr(expr.High)
	case *LikeExpr:
		f.formatLikeExpr(expr)
	case *AnyAllExpr:
		f.formatAnyAllExpr(expr)
	case *CastExpr:
		f.formatCastExpr(expr)
	case *ConvertExpr:
		f.write("CONVERT(")
		f.formatExpr(expr.Expr)
		if expr.Charset != "" {
			f.write(" USING ")
			f.write(expr.Charset)
		} else {
			f.write(", ")
			f.write(expr.TypeName)
		}
		f.write(")")
	case *AtTimeZoneExpr:
		f.formatExpr(expr.Expr)
		f.write(" AT TIME ZONE ")
		f.formatExpr(expr.Zone)
	case *CollateExpr:
		f.formatExpr(expr.Expr)
		f.write(" COLLATE ")
		f.writeName(expr.Collation)
	case *ExtractExpr:
		f.write("EXTRACT(")
		f.write(expr.Field)
		f.write(" FROM ")
		f.formatExpr(expr.Expr)
		f.write(")")
	case *PositionExpr:
		f.write("POSITION(")
		f.formatExpr(expr.Needle)
		f.write(" IN ")
		f.formatExpr(expr.Haystack)
		f.write(")")
	case *SubstringExpr:
		f.write("SUBSTRING(")
		f.formatExpr(expr.Expr)
		if expr.From != nil {
			f.write(" FROM ")
			f.formatExpr(expr.From)
		}
		if expr.For != nil {
			f.write(" FOR ")
			f.formatExpr(expr.For)
		}
		f.write(")")
	case *TrimExpr:
		f.write("TRIM(")
		if expr.Where != "" {
			f.write(expr.Where)
			f.space()
		}
		if expr.Chars != nil {
			f.formatExpr(expr.Chars)
			f.space()
		}
		f.write("FROM ")
		f.formatExpr(expr.Expr)
		f.write(")")
	case *OverlayExpr:
		f.write("OVERLAY(")
		f.formatExpr(expr.Expr)
		f.write(" PLACING ")
		f.formatExpr(expr.Placing)
		f.write(" FROM ")
		f.formatExpr(expr.From)
		if expr.For != nil {
			f.write(" FOR ")
			f.formatExpr(expr.For)
		}
		f.write(")")
	case *IndexExpr:
		f.formatIndexExpr(expr)
	case *FuncCall:
		f.formatFuncCall(expr)
	case *NamedArg:
		f.writeIdent(expr.Name)
		f.space()
		f.write(expr.Op.String())
		f.space()
		f.formatExpr(expr.Value)
	case *CaseExpr:
		f.formatCaseExpr(expr)
	case *ExistsExpr:
		f.not(expr.Not)
		f.write("EXISTS (")
		f.formatQuery(expr.Query)
		f.write(")")
	case *SubqueryExpr:
		f.write("(")
		f.formatQuery(expr.Query)
		f.write(")")
	case *GroupingExpr:
		f.formatGroupingExpr(expr)
	case *ArrayExpr:
		if expr.Keyword {
			f.write("ARRAY")
		}
		f.write("[")
		f.exprList(expr.Elems)
		f.write("]")
	case *StructExpr:
		f.write("{")
		f.commaSep(len(expr.Fields), func(i int) {
			f.write(quoteString(expr.Fields[i].Key, f.dialect))
			f.write(": ")
			f.formatExpr(expr.Fields[i].Value)
		})
		f.write("}")
	case *MapExpr:
		f.write("MAP {")
		f.commaSep(len(expr.Entries), func(i int) {
			f.formatExpr(expr.Entries[i].Key)
			f.write(": ")
			f.formatExpr(expr.Entries[i].Value)
		})
		f.write("}")
	case *IntervalExpr:
		f.write("INTERVAL ")
		f.formatExpr(expr.Value)
		if expr.Unit != "" {
			f.space()
			f.write(expr.Unit)
			if expr.ToUnit != "" {
				f.write(" TO ")
				f.write(expr.ToUnit)
			}
		}
	case *LambdaExpr:
		f.parenIdents(expr.Params)
		f.write(" -> ")
		f.formatExpr(expr.Body)
	case *PriorExpr:
		f.write("PRIOR ")
		f.formatExpr(expr.Expr)
	case *OuterJoinMarker:
		f.formatExpr(expr.Expr)
		f.write("(+)")
	case *MatchAgainstExpr:
		f.write("MATCH (")
		f.exprList(expr.Columns)
		f.write(") AGAINST (")
		f.formatExpr(expr.Against)
		if expr.Modifier != "" {
			f.space()
			f.write(expr.Modifier)
		}
		f.write(")")
	}
}

func (f *formatter) not(not bool) {
	if not {
		f.write("NOT ")
	}
}

func (f *formatter) formatLiteral(lit *Literal) {
	if lit.Type == LiteralString {
		f.write(quoteString(lit.Value, f.dialect))
		return
	}
	f.write(lit.Value)
}

func (f *formatter) formatStar(star *Star) {
	if len(star.Qualifier) > 0 {
		f.writeName(star.Qualifier)
		f.write(".")
	}
	f.write("*")
	if len(star.Exclude) > 0 {
		f.write(" EXCLUDE (")
		f.identList(star.Exclude)
		f.write(")")
	}
	if len(star.Replace) > 0 {
		f.write(" REPLACE (")
		f.commaSep(len(star.Replace), func(i int) {
			f.formatExpr(star.Replace[i].Expr)
			f.write(" AS ")
			f.writeIdent(star.Replace[i].Column)
		})
		f.write(")")
	}
	if len(star.Rename) > 0 {
		f.write(" RENAME (")
		f.commaSep(len(star.Rename), func(i int) {
			f.writeIdent(star.Rename[i].Column)
			f.write(" AS ")
			f.writeIdent(star.Rename[i].Alias)
		})
		f.write(")")
	}
}

func (f *formatter) formatBinaryExpr(expr *BinaryExpr) {
	f.formatExpr(expr.Left)
	f.space()
	if expr.Op == TOKEN_IDENT {
		f.write(expr.OpWord)
	} else {
		f.write(expr.Op.String())
	}
	f.space()
	f.formatExpr(expr.Right)
}

func (f *formatter) formatUnaryExpr(expr *UnaryExpr) {
	if expr.Op == TOKEN_NOT {
		f.write("NOT ")
		f.formatExpr(expr.Expr)
		return
	}
	f.write(expr.Op.String())
	operand := FormatExpr(expr.Expr, f.dialect)
	// "- -x" must not collapse into a line comment.
	if strings.HasPrefix(operand, "-") || strings.HasPrefix(operand, "+") {
		f.space()
	}
	f.write(operand)
}

func (f *formatter) formatIsExpr(expr *IsExpr) {
	f.formatExpr(expr.Expr)
	f.write(" IS ")
	f.not(expr.Not)
	switch expr.Kind {
	case IsNull:
		f.write("NULL")
	case IsTrue:
		f.write("TRUE")
	case IsFalse:
		f.write("FALSE")
	case IsUnknown:
		f.write("UNKNOWN")
	}
}

var likeKeywords = map[LikeKind]string{
	LikeLike:      "LIKE",
	LikeILike:     "ILIKE",
	LikeSimilarTo: "SIMILAR TO",
	LikeGlob:      "GLOB",
	LikeRegexp:    "REGEXP",
	LikeRLike:     "RLIKE",
}

func (f *formatter) formatLikeExpr(expr *LikeExpr) {
	f.formatExpr(expr.Expr)
	f.space()
	f.not(expr.Not)
	f.write(likeKeywords[expr.Kind])
	f.space()
	f.formatExpr(expr.Pattern)
	if expr.Escape != nil {
		f.write(" ESCAPE ")
		f.formatExpr(expr.Escape)
	}
}

func (f *formatter) formatAnyAllExpr(expr *AnyAllExpr) {
	f.formatExpr(expr.Left)
	f.space()
	f.write(expr.Op.String())
	f.space()
	f.write(expr.Quantifier.String())
	if expr.Query != nil {
		f.write(" (")
		f.formatQuery(expr.Query)
	} else {
		f.write("(")
		f.formatExpr(expr.Right)
	}
	f.write(")")
}

func (f *formatter) formatCastExpr(expr *CastExpr) {
	switch expr.Style {
	case CastDoubleColon:
		f.formatExpr(expr.Expr)
		f.write("::")
		f.write(expr.TypeName)
		return
	case CastTry:
		f.write("TRY_CAST(")
	default:
		f.write("CAST(")
	}
	f.formatExpr(expr.Expr)
	f.write(" AS ")
	f.write(expr.TypeName)
	f.write(")")
}

func (f *formatter) formatIndexExpr(expr *IndexExpr) {
	f.formatExpr(expr.Expr)
	f.write("[")
	if expr.IsSlice {
		f.formatExpr(expr.Start)
		f.write(":")
		f.formatExpr(expr.Stop)
	} else {
		f.formatExpr(expr.Index)
	}
	f.write("]")
}

func (f *formatter) formatCaseExpr(expr *CaseExpr) {
	f.write("CASE")
	if expr.Operand != nil {
		f.space()
		f.formatExpr(expr.Operand)
	}
	for _, when := range expr.Whens {
		f.write(" WHEN ")
		f.formatExpr(when.Condition)
		f.write(" THEN ")
		f.formatExpr(when.Result)
	}
	if expr.Else != nil {
		f.write(" ELSE ")
		f.formatExpr(expr.Else)
	}
	f.write(" END")
}

func (f *formatter) formatGroupingExpr(expr *GroupingExpr) {
	switch expr.Kind {
	case GroupingSets:
		f.write("GROUPING SETS (")
	case GroupingCube:
		f.write("CUBE (")
	case GroupingRollup:
		f.write("ROLLUP (")
	}
	f.commaSep(len(expr.Sets), func(i int) {
		set := expr.Sets[i]
		if len(set) == 1 {
			f.formatExpr(set[0])
			return
		}
		f.write("(")
		f.exprList(set)
		f.write(")")
	})
	f.write(")")
}

func (f *formatter) formatFuncCall(fn *FuncCall) {
	if fn == nil {
		return
	}
	f.writeName(fn.Name)
	f.write("(")
	if fn.Subquery != nil {
		f.formatQuery(fn.Subquery)
	} else {
		if fn.Distinct {
			f.write("DISTINCT ")
		}
		f.exprList(fn.Args)
	}
	if fn.NullsInside && fn.NullTreatment != "" {
		f.space()
		f.write(fn.NullTreatment)
	}
	if hb := fn.HavingBound; hb != nil {
		if hb.Max {
			f.write(" HAVING MAX ")
		} else {
			f.write(" HAVING MIN ")
		}
		f.formatExpr(hb.Expr)
	}
	if len(fn.OrderBy) > 0 {
		f.write(" ORDER BY ")
		f.orderByItems(fn.OrderBy)
	}
	if fn.Limit != nil {
		f.write(" LIMIT ")
		f.formatExpr(fn.Limit)
	}
	if fn.Separator != nil {
		f.write(" SEPARATOR ")
		f.formatExpr(fn.Separator)
	}
	if ov := fn.OnOverflow; ov != nil {
		if !ov.Truncate {
			f.write(" ON OVERFLOW ERROR")
		} else {
			f.write(" ON OVERFLOW TRUNCATE")
			if ov.Filler != nil {
				f.space()
				f.formatExpr(ov.Filler)
			}
			if ov.WithCount {
				f.write(" WITH COUNT")
			} else {
				f.write(" WITHOUT COUNT")
			}
		}
	}
	f.write(")")

	if len(fn.WithinGroup) > 0 {
		f.write(" WITHIN GROUP (ORDER BY ")
		f.orderByItems(fn.WithinGroup)
		f.write(")")
	}
	if fn.Filter != nil {
		f.write(" FILTER (WHERE ")
		f.formatExpr(fn.Filter)
		f.write(")")
	}
	if !fn.NullsInside && fn.NullTreatment != "" {
		f.space()
		f.write(fn.NullTreatment)
	}
	if fn.Over != nil {
		f.write(" OVER ")
		f.formatWindowSpec(fn.Over)
	}
}

func (f *formatter) formatWindowSpec(spec *WindowSpec) {
	if spec.Bare {
		f.writeIdent(spec.Ref)
		return
	}
	f.write("(")
	var parts int
	sep := func() {
		if parts > 0 {
			f.space()
		}
		parts++
	}
	if spec.Ref.Name != "" {
		sep()
		f.writeIdent(spec.Ref)
	}
	if len(spec.PartitionBy) > 0 {
		sep()
		f.write("PARTITION BY ")
		f.exprList(spec.PartitionBy)
	}
	if len(spec.OrderBy) > 0 {
		sep()
		f.write("ORDER BY ")
		f.orderByItems(spec.OrderBy)
	}
	if frame := spec.Frame; frame != nil {
		sep()
		f.write(string(frame.Type))
		f.space()
		if frame.End != nil {
			f.write("BETWEEN ")
			f.formatFrameBound(frame.Start)
			f.write(" AND ")
			f.formatFrameBound(frame.End)
		} else {
			f.formatFrameBound(frame.Start)
		}
		if frame.Exclude != "" {
			f.write(" EXCLUDE ")
			f.write(frame.Exclude)
		}
	}
	f.write(")")
}

func (f *formatter) formatFrameBound(b *FrameBound) {
	if b.Offset != nil {
		f.formatExpr(b.Offset)
		f.space()
	}
	f.write(string(b.Type))
}
