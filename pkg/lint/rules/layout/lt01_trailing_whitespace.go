package layout

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func init() {
	// Assigned here: checkTrailingWhitespace refers back to TrailingWhitespace.
	TrailingWhitespace.Check = checkTrailingWhitespace
	lint.Register(TrailingWhitespace)
}

// TrailingWhitespace flags whitespace at the end of a line or of the file.
// Whitespace inside comments and string literals is part of those leaves
// and is never flagged.
var TrailingWhitespace = lint.RuleDef{
	ID:          "LT01",
	Name:        "layout.spacing",
	Group:       "layout",
	Description: "Unnecessary trailing whitespace.",
	Severity:    lint.SeverityWarning,
}

func checkTrailingWhitespace(in *lint.Input, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	ast.WalkLeaves(in.Tree(), func(leaf, next *token.Leaf) {
		if leaf.Category != token.Whitespace {
			return
		}
		if next != nil && next.Category != token.Newline {
			return
		}
		// A lone carriage return belongs to a CRLF line ending.
		if strings.TrimRight(leaf.Text, "\r") == "" {
			return
		}
		diagnostics = append(diagnostics, lint.At(TrailingWhitespace, leaf.Span,
			"Unnecessary trailing whitespace."))
	})
	return diagnostics
}
