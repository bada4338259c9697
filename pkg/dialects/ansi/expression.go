package ansi

import (
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
)

// Expression levels, loosest first. Level A handles prefix and binary
// operators, D holds the atoms. B and C pass straight through so that
// extensions can slot in extra levels without touching A or D.
const (
	ExpressionA = "Expression_A_Grammar"
	ExpressionB = "Expression_B_Grammar"
	ExpressionC = "Expression_C_Grammar"
	ExpressionD = "Expression_D_Grammar"
)

func addExpressions(b *dialect.Builder) {
	b.
		Add(ExpressionA, grammar.Sequence(
			grammar.OneOf(
				ref(ExpressionB),
				grammar.Sequence(
					grammar.OneOf(ref("PlusSegment"), ref("MinusSegment"), ref("TildeSegment"), kw("not")),
					ref(ExpressionA),
				),
			),
			grammar.AnyNumberOf(grammar.OneOf(
				grammar.Sequence(
					grammar.OneOf(
						ref("ArithmeticBinaryOperatorGrammar"),
						ref("ComparisonOperatorGrammar"),
						ref("BooleanBinaryOperatorGrammar"),
					),
					ref(ExpressionA),
				),
				grammar.Sequence(
					opt(kw("not")),
					kw("in"),
					grammar.Bracketed(grammar.OneOf(
						grammar.Delimited(ref("LiteralGrammar"), ref("CommaSegment")),
						ref("SelectStatementSegment"),
					)),
				),
				grammar.Sequence(
					kw("is"),
					opt(kw("not")),
					grammar.OneOf(ref("NullSegment"), ref("BooleanLiteralGrammar")),
				),
			)),
		)).
		Add(ExpressionB, ref(ExpressionC)).
		Add(ExpressionC, ref(ExpressionD)).
		Add(ExpressionD, grammar.OneOf(
			ref("LiteralGrammar"),
			ref("ObjectReferenceSegment"),
			ref("FunctionSegment"),
			// A bracketed expression, or a row of them: (a, b). One grammar
			// for both so that nested brackets are only parsed once.
			grammar.Bracketed(grammar.Delimited(ref(ExpressionA), ref("CommaSegment"))),
		)).
		Segment(
			&grammar.SegmentDef{
				Name:         "ExpressionSegment",
				Type:         "expression",
				MatchGrammar: grammar.GreedyUntil(ref("CommaSegment"), kw("as")),
				ParseGrammar: ref(ExpressionA),
			},
			&grammar.SegmentDef{
				Name: "FunctionSegment",
				Type: "function",
				// Only the bracket boundaries are located on the first pass.
				MatchGrammar: grammar.Sequence(
					ref("FunctionNameSegment"),
					grammar.Bracketed(grammar.Anything()),
				).WithCodeOnly(false),
				ParseGrammar: grammar.Sequence(
					ref("FunctionNameSegment"),
					grammar.Bracketed(opt(grammar.OneOf(
						ref("StarSegment"),
						grammar.Sequence(
							opt(kw("distinct")),
							grammar.Delimited(ref("ExpressionSegment"), ref("CommaSegment")),
						),
					))),
				).WithCodeOnly(false),
			},
		)
}
