package ansi

import (
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
)

func addSelect(b *dialect.Builder) {
	b.Segment(
		&grammar.SegmentDef{
			Name: "TableExpressionSegment",
			Type: "table_expression",
			MatchGrammar: grammar.Sequence(
				grammar.OneOf(
					ref("ObjectReferenceSegment"),
					grammar.Bracketed(ref("SelectStatementSegment")),
				),
				opt(grammar.OneOf(
					ref("AliasExpressionGrammar"),
					ref("SingleIdentifierGrammar"),
				)),
			),
		},
		&grammar.SegmentDef{
			Name:         "SelectTargetElementSegment",
			Type:         "select_target_element",
			MatchGrammar: grammar.GreedyUntil(ref("CommaSegment")),
			ParseGrammar: grammar.OneOf(
				ref("StarSegment"),
				// t.*
				grammar.Sequence(
					ref("SingleIdentifierGrammar"),
					ref("DotSegment"),
					ref("StarSegment"),
				).WithCodeOnly(false),
				grammar.Sequence(
					ref("ExpressionSegment"),
					opt(ref("AliasExpressionGrammar")),
				),
			),
		},
		&grammar.SegmentDef{
			Name: "SelectTargetGroupStatementSegment",
			Type: "select_target_group",
			MatchGrammar: grammar.GreedyUntil(
				kw("from"), kw("where"), kw("group"), kw("order"), kw("having"), kw("limit"),
			),
			ParseGrammar: grammar.Sequence(
				opt(grammar.OneOf(kw("distinct"), kw("all"))),
				grammar.Delimited(ref("SelectTargetElementSegment"), ref("CommaSegment")),
			),
		},
		&grammar.SegmentDef{
			Name: "JoinOnConditionSegment",
			Type: "join_on_condition",
			MatchGrammar: grammar.GreedyUntil(
				ref("CommaSegment"), kw("join"), kw("inner"), kw("left"),
				kw("right"), kw("full"), kw("cross"),
			),
			ParseGrammar: ref("ExpressionSegment"),
		},
		&grammar.SegmentDef{
			Name: "JoinClauseSegment",
			Type: "join_clause",
			MatchGrammar: grammar.OneOf(
				// Old style: FROM a, b
				grammar.Sequence(ref("CommaSegment"), ref("TableExpressionSegment")),
				grammar.Sequence(
					grammar.AnyNumberOf(
						kw("inner"),
						kw("cross"),
						grammar.Sequence(
							grammar.OneOf(kw("left"), kw("right"), kw("full")),
							opt(kw("outer")),
						),
					).WithMax(1),
					kw("join"),
					ref("TableExpressionSegment"),
					grammar.AnyNumberOf(
						grammar.Sequence(kw("on"), ref("JoinOnConditionSegment")),
						grammar.Sequence(
							kw("using"),
							grammar.Bracketed(grammar.Delimited(ref("SingleIdentifierGrammar"), ref("CommaSegment"))),
						),
					).WithMax(1),
				),
			),
		},
		&grammar.SegmentDef{
			Name: "FromClauseSegment",
			Type: "from_clause",
			MatchGrammar: grammar.StartsWith(kw("from")).WithTerminator(grammar.OneOf(
				kw("where"), kw("limit"), kw("group"), kw("order"), kw("having"),
			)),
			ParseGrammar: grammar.Sequence(
				kw("from"),
				ref("TableExpressionSegment"),
				grammar.AnyNumberOf(ref("JoinClauseSegment")),
			),
		},
		&grammar.SegmentDef{
			Name: "WhereClauseSegment",
			Type: "where_clause",
			MatchGrammar: grammar.StartsWith(kw("where")).WithTerminator(grammar.OneOf(
				kw("limit"), kw("group"), kw("order"), kw("having"),
			)),
			ParseGrammar: grammar.Sequence(kw("where"), ref("ExpressionSegment")),
		},
		&grammar.SegmentDef{
			Name: "GroupByClauseSegment",
			Type: "groupby_clause",
			MatchGrammar: grammar.StartsWith(kw("group")).WithTerminator(grammar.OneOf(
				kw("order"), kw("having"), kw("limit"),
			)),
			ParseGrammar: grammar.Sequence(
				kw("group"),
				kw("by"),
				grammar.Delimited(ref("ExpressionSegment"), ref("CommaSegment")),
			),
		},
		&grammar.SegmentDef{
			Name: "HavingClauseSegment",
			Type: "having_clause",
			MatchGrammar: grammar.StartsWith(kw("having")).WithTerminator(grammar.OneOf(
				kw("order"), kw("limit"),
			)),
			ParseGrammar: grammar.Sequence(kw("having"), ref("ExpressionSegment")),
		},
		&grammar.SegmentDef{
			Name: "OrderByClauseSegment",
			Type: "orderby_clause",
			MatchGrammar: grammar.StartsWith(kw("order")).WithTerminator(grammar.OneOf(
				kw("limit"), kw("having"),
			)),
			ParseGrammar: grammar.Sequence(
				kw("order"),
				kw("by"),
				grammar.Delimited(
					grammar.Sequence(
						ref("ObjectReferenceSegment"),
						opt(grammar.OneOf(kw("asc"), kw("desc"))),
					),
					ref("CommaSegment"),
				).WithTerminator(kw("limit")),
			),
		},
		&grammar.SegmentDef{
			Name:         "LimitClauseSegment",
			Type:         "limit_clause",
			MatchGrammar: grammar.StartsWith(kw("limit")),
			ParseGrammar: grammar.Sequence(kw("limit"), ref("NumericLiteralSegment")),
		},
		&grammar.SegmentDef{
			Name: "SelectStatementSegment",
			Type: "select_statement",
			// Match the whole span now and work out the clauses on expansion.
			MatchGrammar: grammar.StartsWith(kw("select")),
			ParseGrammar: grammar.Sequence(
				kw("select"),
				ref("SelectTargetGroupStatementSegment"),
				opt(ref("FromClauseSegment")),
				opt(ref("WhereClauseSegment")),
				opt(ref("GroupByClauseSegment")),
				opt(ref("HavingClauseSegment")),
				opt(ref("OrderByClauseSegment")),
				opt(ref("LimitClauseSegment")),
			),
		},
	)
}
