package format_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlseg/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlseg/pkg/format"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
	"github.com/leapstack-labs/sqlseg/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func pos(col int) token.Position {
	return token.Position{Line: 1, Column: col, Offset: col - 1}
}

func leaf(text string, cat token.Category, col int) *token.Leaf {
	l := token.NewLeaf(text, cat, pos(col), pos(col+len(text)))
	return &l
}

// selectOne builds the tree for "SELECT 1" by hand.
func selectOne() *grammar.Segment {
	return grammar.NewSegment("file", "",
		grammar.NewSegment("statement", "StatementSegment",
			grammar.NewSegment("keyword", "SelectKeywordSegment", leaf("SELECT", token.Code, 1)),
			leaf(" ", token.Whitespace, 7),
			grammar.NewSegment("numeric_literal", "NumericLiteralSegment", leaf("1", token.NumericLiteral, 8)),
		),
	)
}

func TestString(t *testing.T) {
	want := "[L:  1, P:  1] |file:\n" +
		"[L:  1, P:  1] |    statement:\n" +
		"[L:  1, P:  1] |        keyword:" + strings.Repeat(" ", 24) + `"SELECT"` + "\n" +
		"[L:  1, P:  7] |        whitespace:" + strings.Repeat(" ", 21) + `" "` + "\n" +
		"[L:  1, P:  8] |        numeric_literal:" + strings.Repeat(" ", 16) + `"1"` + "\n"

	assert.Equal(t, want, format.String(selectOne()))
}

func TestStringCodeOnly(t *testing.T) {
	out := format.String(selectOne(), format.WithCodeOnly())
	assert.NotContains(t, out, "whitespace")
	assert.Contains(t, out, "numeric_literal")
}

func TestStringQuotesNewlines(t *testing.T) {
	tree := grammar.NewSegment("file", "", leaf("\n", token.Newline, 1))
	want := "[L:  1, P:  1] |file:\n" +
		"[L:  1, P:  1] |    newline:" + strings.Repeat(" ", 28) + `"\n"` + "\n"
	assert.Equal(t, want, format.String(tree))
}

func TestStringNestedSingleLeafCollapses(t *testing.T) {
	tree := grammar.NewSegment("file", "",
		grammar.NewSegment("numeric_literal", "NumericLiteralSegment", leaf("1", token.NumericLiteral, 1)),
	)
	out := format.String(tree)
	assert.Contains(t, out, "numeric_literal:")
	assert.NotContains(t, out, "    numeric_literal:\n")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestToNode(t *testing.T) {
	n := format.ToNode(selectOne())
	require.Len(t, n.Children, 1)

	stmt := n.Children[0]
	assert.Equal(t, "statement", stmt.Type)
	assert.Equal(t, "StatementSegment", stmt.Name)
	require.Len(t, stmt.Children, 3)
	assert.Equal(t, "SELECT", stmt.Children[0].Raw)
	assert.Empty(t, stmt.Children[0].Children)
	assert.Equal(t, "whitespace", stmt.Children[1].Type)
	assert.Equal(t, "1:8", stmt.Children[2].Pos)

	codeOnly := format.ToNode(selectOne(), format.WithCodeOnly())
	assert.Len(t, codeOnly.Children[0].Children, 2)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.Write(&buf, selectOne(), format.JSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "file", got["type"])
	assert.Len(t, got["children"], 1)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.Write(&buf, selectOne(), format.YAML))
	assert.True(t, strings.HasPrefix(buf.String(), "type: file\n"), buf.String())

	var got format.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "statement", got.Children[0].Type)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := format.Write(&bytes.Buffer{}, selectOne(), format.Format("xml"))
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    format.Format
		wantErr bool
	}{
		{"", format.Text, false},
		{"text", format.Text, false},
		{"YAML", format.YAML, false},
		{" json ", format.JSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := format.ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, format.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringParsedTree(t *testing.T) {
	res, err := parser.ParseString(context.Background(), "SELECT a FROM t;\n", ansi.ANSI)
	require.NoError(t, err)
	require.True(t, res.OK())

	out := format.String(res.Tree)
	for _, want := range []string{
		"|file:",
		"|    statement:",
		"select_statement:",
		"from_clause:",
		`"SELECT"`,
		"newline:",
	} {
		assert.Contains(t, out, want)
	}
}
