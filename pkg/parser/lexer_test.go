package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

type lexed struct {
	text string
	cat  token.Category
}

func lexAll(t *testing.T, input string) []lexed {
	t.Helper()
	var out []lexed
	for _, l := range Tokenize(input) {
		out = append(out, lexed{l.Text, l.Category})
	}
	return out
}

func TestLexerCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []lexed
	}{
		{
			name:  "select",
			input: "SELECT a",
			want:  []lexed{{"SELECT", token.Code}, {" ", token.Whitespace}, {"a", token.Code}},
		},
		{
			name:  "newline is its own leaf",
			input: "a\n\tb",
			want:  []lexed{{"a", token.Code}, {"\n", token.Newline}, {"\t", token.Whitespace}, {"b", token.Code}},
		},
		{
			name:  "line comment stops before newline",
			input: "-- hi\nx",
			want:  []lexed{{"-- hi", token.Comment}, {"\n", token.Newline}, {"x", token.Code}},
		},
		{
			name:  "block comment",
			input: "/* a\nb */x",
			want:  []lexed{{"/* a\nb */", token.Comment}, {"x", token.Code}},
		},
		{
			name:  "quotes keep delimiters and escapes",
			input: `'it''s' "a""b"`,
			want:  []lexed{{`'it''s'`, token.SingleQuote}, {" ", token.Whitespace}, {`"a""b"`, token.DoubleQuote}},
		},
		{
			name:  "numbers",
			input: "1 2.5 .5 1e10 3E-2",
			want: []lexed{
				{"1", token.NumericLiteral}, {" ", token.Whitespace},
				{"2.5", token.NumericLiteral}, {" ", token.Whitespace},
				{".5", token.NumericLiteral}, {" ", token.Whitespace},
				{"1e10", token.NumericLiteral}, {" ", token.Whitespace},
				{"3E-2", token.NumericLiteral},
			},
		},
		{
			name:  "minus is not part of a number",
			input: "-1",
			want:  []lexed{{"-", token.Code}, {"1", token.NumericLiteral}},
		},
		{
			name:  "two character operators",
			input: "a<=b<>c!=d||e::f",
			want: []lexed{
				{"a", token.Code}, {"<=", token.Code}, {"b", token.Code}, {"<>", token.Code},
				{"c", token.Code}, {"!=", token.Code}, {"d", token.Code}, {"||", token.Code},
				{"e", token.Code}, {"::", token.Code}, {"f", token.Code},
			},
		},
		{
			name:  "identifier with digits and dollar",
			input: "t1.col_$2",
			want:  []lexed{{"t1", token.Code}, {".", token.Code}, {"col_$2", token.Code}},
		},
		{
			name:  "unicode identifier",
			input: "café",
			want:  []lexed{{"café", token.Code}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexAll(t, tt.input))
		})
	}
}

func TestLexerPositions(t *testing.T) {
	leaves := Tokenize("SELECT\n  a")
	require.Len(t, leaves, 4)

	a := leaves[3]
	assert.Equal(t, "a", a.Text)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 9}, a.Span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 4, Offset: 10}, a.Span.End)
}

func TestLexerColumnsCountRunes(t *testing.T) {
	leaves := Tokenize("SELECT 'héllo', ünï FROM t")
	var from token.Leaf
	for _, l := range leaves {
		if l.Text == "FROM" {
			from = l
		}
	}
	require.Equal(t, "FROM", from.Text)
	assert.Equal(t, token.Position{Line: 1, Column: 21, Offset: 23}, from.Span.Start)
}

func TestLexerRules(t *testing.T) {
	at := token.Register("at_variable")
	rule := token.LexRule{Category: at, Scan: func(src string) int {
		if len(src) < 2 || src[0] != '@' {
			return 0
		}
		n := 1
		for n < len(src) && isDigit(src[n]) {
			n++
		}
		if n == 1 {
			return 0
		}
		return n
	}}

	leaves := Tokenize("@12 @x", rule)
	require.Len(t, leaves, 4)
	assert.Equal(t, "@12", leaves[0].Text)
	assert.Equal(t, at, leaves[0].Category)
	assert.True(t, leaves[0].IsCode())
	assert.Equal(t, token.Position{Line: 1, Column: 4, Offset: 3}, leaves[0].Span.End)
	assert.Equal(t, "@", leaves[2].Text)
	assert.Equal(t, token.Code, leaves[2].Category)
}

func TestLexerLossless(t *testing.T) {
	inputs := []string{
		"",
		"SELECT * FROM t;",
		"select 'unterminated",
		"/* open",
		"a @ b # c",
		"ünïcödé -- trailing",
		"\r\n\r\n",
	}
	for _, in := range inputs {
		var b strings.Builder
		offset := 0
		for _, l := range Tokenize(in) {
			assert.Equal(t, offset, l.Span.Start.Offset, "input %q", in)
			offset = l.Span.End.Offset
			b.WriteString(l.Text)
		}
		assert.Equal(t, in, b.String())
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"'abc", ErrUnterminatedString},
		{`"abc`, ErrUnterminatedIdentifier},
		{"/* abc", ErrUnterminatedComment},
	}
	for _, tt := range tests {
		_, errs := TokenizeWithErrors(tt.input)
		require.Len(t, errs, 1, tt.input)
		assert.Equal(t, tt.want, errs[0].Message)
		assert.Equal(t, 1, errs[0].Pos.Column)
		assert.Contains(t, errs[0].Error(), "line 1, column 1")
	}
}
