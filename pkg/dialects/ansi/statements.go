package ansi

import (
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func addStatements(b *dialect.Builder) {
	b.Segment(
		&grammar.SegmentDef{
			Name: "ValuesClauseSegment",
			Type: "values_clause",
			MatchGrammar: grammar.Sequence(
				grammar.OneOf(kw("value"), kw("values")),
				grammar.Delimited(
					grammar.Bracketed(grammar.Delimited(ref("LiteralGrammar"), ref("CommaSegment"))),
					ref("CommaSegment"),
				),
			),
		},
		&grammar.SegmentDef{
			Name:         "InsertStatementSegment",
			Type:         "insert_statement",
			MatchGrammar: grammar.StartsWith(kw("insert")),
			ParseGrammar: grammar.Sequence(
				kw("insert"),
				opt(kw("overwrite")),
				opt(kw("into")),
				ref("ObjectReferenceSegment"),
				opt(grammar.Bracketed(grammar.Delimited(ref("ObjectReferenceSegment"), ref("CommaSegment")))),
				grammar.OneOf(
					ref("SelectStatementSegment"),
					ref("ValuesClauseSegment"),
					ref("WithCompoundStatementSegment"),
				),
			),
		},
		&grammar.SegmentDef{
			Name:         "WithCompoundStatementSegment",
			Type:         "with_compound_statement",
			MatchGrammar: grammar.StartsWith(kw("with")),
			ParseGrammar: grammar.Sequence(
				kw("with"),
				grammar.Delimited(
					grammar.Sequence(
						ref("ObjectReferenceSegment"),
						kw("as"),
						grammar.Bracketed(ref("SelectStatementSegment")),
					),
					ref("CommaSegment"),
				).WithTerminator(kw("select")),
				ref("SelectStatementSegment"),
			),
		},
		&grammar.SegmentDef{
			Name:         "EmptyStatementSegment",
			Type:         "empty_statement",
			MatchGrammar: grammar.ContainsOnly(token.Comment, token.Newline, token.Whitespace),
		},
		&grammar.SegmentDef{
			Name:         "StatementSegment",
			Type:         "statement",
			MatchGrammar: grammar.GreedyUntil(ref("SemicolonSegment")),
			ParseGrammar: grammar.OneOf(
				ref("SelectStatementSegment"),
				ref("InsertStatementSegment"),
				ref("EmptyStatementSegment"),
				ref("WithCompoundStatementSegment"),
			),
		},
	)
}
