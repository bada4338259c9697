// Package postgres provides the PostgreSQL dialect as an extension of ANSI.
//
// It adds the ILIKE comparison, dollar-quoted strings, and the :: cast,
// which binds tighter than any binary operator and so lives at expression
// level C.
package postgres

import (
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords are reserved on top of the ANSI set. Words that
// commonly name columns, such as user or current_date, are left out.
var postgresReservedWords = []string{
	"analyse", "analyze", "any", "array", "both", "case", "cast", "check",
	"collate", "column", "constraint", "create", "default", "do", "else",
	"end", "except", "fetch", "for", "foreign", "grant", "ilike",
	"intersect", "lateral", "leading", "offset", "only", "placing",
	"primary", "references", "returning", "some", "table", "then", "to",
	"trailing", "union", "unique", "when", "window",
}

var ref = grammar.Ref

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.Extend(ansi.ANSI, "postgres").
	Add(ansi.KeywordName("ilike"), ansi.Keyword("ilike", "comparison_operator")).
	WithLexRules(dollarQuoteRule).
	Replace("QuotedLiteralSegment", grammar.OneOf(
		grammar.Named(token.SingleQuote, "quoted_literal", "literal"),
		grammar.Named(DollarQuoted, "quoted_literal", "literal"),
	)).
	Add("CastOperatorSegment", grammar.Keyword("::", "casting_operator", "casting_operator")).
	Replace("ComparisonOperatorGrammar", grammar.OneOf(
		ref("EqualsSegment"), ref("GreaterThanSegment"), ref("LessThanSegment"),
		ref("GreaterThanOrEqualToSegment"), ref("LessThanOrEqualToSegment"),
		ref("NotEqualToSegment"), ref(ansi.KeywordName("like")), ref(ansi.KeywordName("ilike")),
	)).
	Replace("ObjectReferenceTerminatorGrammar", grammar.OneOf(
		ref("NonCodeSegment"),
		ref("CommaSegment"),
		ref("ArithmeticBinaryOperatorGrammar"),
		ref("ComparisonOperatorGrammar"),
		ref("CastOperatorSegment"),
	)).
	// a::int::text
	Replace(ansi.ExpressionC, grammar.Sequence(
		ref(ansi.ExpressionD),
		grammar.AnyNumberOf(grammar.Sequence(
			ref("CastOperatorSegment"),
			ref("DatatypeSegment"),
		).WithCodeOnly(false)),
	).WithCodeOnly(false)).
	Segment(&grammar.SegmentDef{
		Name: "DatatypeSegment",
		Type: "data_type",
		MatchGrammar: grammar.Sequence(
			ref("SingleIdentifierGrammar"),
			grammar.Optional(grammar.Bracketed(
				grammar.Delimited(ref("NumericLiteralSegment"), ref("CommaSegment")),
			)),
		).WithCodeOnly(false),
	}).
	WithReservedWords(postgresReservedWords...).
	MustBuild()
