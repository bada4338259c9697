package ansi

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

var (
	ref = grammar.Ref
	opt = grammar.Optional
)

// keywords are registered as <Word>KeywordSegment.
var keywords = []string{
	"all", "and", "as", "asc", "by", "cross", "desc", "distinct", "from",
	"full", "group", "having", "in", "inner", "insert", "into", "is",
	"join", "left", "like", "limit", "not", "on", "or", "order", "outer",
	"overwrite", "right", "select", "using", "value", "values", "where",
	"with",
}

// keywordTypes overrides the segment type of keywords that act as operators.
var keywordTypes = map[string]string{
	"and":  "binary_operator",
	"or":   "binary_operator",
	"like": "comparison_operator",
}

// KeywordName returns the registry name of a keyword, e.g. "SelectKeywordSegment".
func KeywordName(word string) string {
	return cases.Title(language.Und).String(word) + "KeywordSegment"
}

// Keyword returns a matcher for word with the given segment type.
func Keyword(word, typ string) *grammar.KeywordMatch {
	return grammar.Keyword(word, typ, word)
}

func kw(word string) *grammar.RefGrammar {
	return ref(KeywordName(word))
}

func addKeywords(b *dialect.Builder) {
	for _, w := range keywords {
		typ, ok := keywordTypes[w]
		if !ok {
			typ = "keyword"
		}
		b.Add(KeywordName(w), Keyword(w, typ))
	}
}

func addLexical(b *dialect.Builder) {
	b.
		// Used as a terminator rather than for structure.
		Add("NonCodeSegment", grammar.Predicate(grammar.NonCode, "non_code", "non_code")).
		Add("SemicolonSegment", grammar.Keyword(";", "statement_terminator", "semicolon")).
		Add(grammar.StartBracketName, grammar.Keyword("(", "start_bracket", "start_bracket")).
		Add(grammar.EndBracketName, grammar.Keyword(")", "end_bracket", "end_bracket")).
		Add("CommaSegment", grammar.Keyword(",", "comma", "comma")).
		Add("DotSegment", grammar.Keyword(".", "dot", "dot")).
		Add("StarSegment", grammar.Keyword("*", "star", "star")).
		Add("TildeSegment", grammar.Keyword("~", "tilde", "tilde")).
		Add("PlusSegment", grammar.Keyword("+", "binary_operator", "plus")).
		Add("MinusSegment", grammar.Keyword("-", "binary_operator", "minus")).
		Add("DivideSegment", grammar.Keyword("/", "binary_operator", "divide")).
		Add("MultiplySegment", grammar.Keyword("*", "binary_operator", "multiply")).
		Add("ModuloSegment", grammar.Keyword("%", "binary_operator", "modulo")).
		Add("ConcatSegment", grammar.Keyword("||", "binary_operator", "concat")).
		Add("EqualsSegment", grammar.Keyword("=", "comparison_operator", "equals")).
		Add("GreaterThanSegment", grammar.Keyword(">", "comparison_operator", "greater_than")).
		Add("LessThanSegment", grammar.Keyword("<", "comparison_operator", "less_than")).
		Add("GreaterThanOrEqualToSegment", grammar.Keyword(">=", "comparison_operator", "greater_than_equal_to")).
		Add("LessThanOrEqualToSegment", grammar.Keyword("<=", "comparison_operator", "less_than_equal_to")).
		Add("NotEqualToSegment", grammar.OneOf(
			grammar.Keyword("!=", "comparison_operator", "not_equal_to"),
			grammar.Keyword("<>", "comparison_operator", "not_equal_to"),
		)).
		// A sign is only fused with a number inside a literal.
		Add("PositiveSignSegment", grammar.Keyword("+", "sign_indicator", "positive")).
		Add("NegativeSignSegment", grammar.Keyword("-", "sign_indicator", "negative")).
		// The pattern requires a letter so numbers never read as identifiers.
		Add("NakedIdentifierSegment",
			grammar.Regex(`[A-Z0-9_]*[A-Z][A-Z0-9_]*`, "naked_identifier", "identifier").ExcludeReserved()).
		Add("FunctionNameSegment",
			grammar.Regex(`[A-Z][A-Z0-9_]*`, "function_name", "function_name").
				Excluding(`AND|OR|NOT|IN|IS|LIKE|AS|ON|USING|SELECT|FROM|WHERE|JOIN|WITH|VALUE|VALUES`)).
		Add("QuotedIdentifierSegment", grammar.Named(token.DoubleQuote, "quoted_identifier", "identifier")).
		Add("SingleIdentifierGrammar", grammar.OneOf(
			ref("NakedIdentifierSegment"),
			ref("QuotedIdentifierSegment"),
		)).
		Add("ArithmeticBinaryOperatorGrammar", grammar.OneOf(
			ref("PlusSegment"), ref("MinusSegment"), ref("DivideSegment"),
			ref("MultiplySegment"), ref("ModuloSegment"), ref("ConcatSegment"),
		)).
		Add("BooleanBinaryOperatorGrammar", grammar.OneOf(kw("and"), kw("or"))).
		Add("ComparisonOperatorGrammar", grammar.OneOf(
			ref("EqualsSegment"), ref("GreaterThanSegment"), ref("LessThanSegment"),
			ref("GreaterThanOrEqualToSegment"), ref("LessThanOrEqualToSegment"),
			ref("NotEqualToSegment"), kw("like"),
		)).
		Add("AliasExpressionGrammar", grammar.Sequence(kw("as"), ref("SingleIdentifierGrammar"))).
		// Anything that may directly follow an object reference.
		Add("ObjectReferenceTerminatorGrammar", grammar.OneOf(
			ref("NonCodeSegment"),
			ref("CommaSegment"),
			ref("ArithmeticBinaryOperatorGrammar"),
			ref("ComparisonOperatorGrammar"),
		))
}

func addLiterals(b *dialect.Builder) {
	b.
		Add("QuotedLiteralSegment", grammar.Named(token.SingleQuote, "quoted_literal", "literal")).
		Add("NumericLiteralSegment", grammar.Named(token.NumericLiteral, "numeric_literal", "literal")).
		Add("TrueSegment", grammar.Keyword("true", "boolean_literal", "true")).
		Add("FalseSegment", grammar.Keyword("false", "boolean_literal", "false")).
		Add("NullSegment", grammar.Keyword("null", "null_literal", "null")).
		Add("BooleanLiteralGrammar", grammar.OneOf(ref("TrueSegment"), ref("FalseSegment"))).
		Add("LiteralGrammar", grammar.OneOf(
			ref("QuotedLiteralSegment"),
			ref("NumericLiteralSegment"),
			ref("BooleanLiteralGrammar"),
			ref("QualifiedNumericLiteralSegment"),
			ref("NullSegment"),
		)).
		Segment(
			&grammar.SegmentDef{
				Name: "QualifiedNumericLiteralSegment",
				Type: "numeric_literal",
				// The lexer leaves "-1" as two leaves; they are joined here.
				MatchGrammar: grammar.Sequence(
					grammar.OneOf(ref("PositiveSignSegment"), ref("NegativeSignSegment")),
					ref("NumericLiteralSegment"),
				).WithCodeOnly(false),
			},
			&grammar.SegmentDef{
				Name:         "ColumnExpressionSegment",
				Type:         "column_expression",
				MatchGrammar: grammar.OneOf(ref("SingleIdentifierGrammar")),
			},
			&grammar.SegmentDef{
				Name: "ObjectReferenceSegment",
				Type: "object_reference",
				// No whitespace inside a reference.
				MatchGrammar: grammar.Delimited(ref("SingleIdentifierGrammar"), ref("DotSegment")).
					WithTerminator(ref("ObjectReferenceTerminatorGrammar")).
					WithCodeOnly(false),
			},
			&grammar.SegmentDef{
				Name:         "AliasedObjectReferenceSegment",
				Type:         "object_reference",
				MatchGrammar: grammar.Sequence(ref("ObjectReferenceSegment"), ref("AliasExpressionGrammar")),
			},
		)
}
