package layout

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func init() {
	// Assigned here: checkMixedIndentation refers back to MixedIndentation.
	MixedIndentation.Check = checkMixedIndentation
	lint.Register(MixedIndentation)
}

// MixedIndentation flags indents that contain both tabs and spaces.
// With indent_unit set to "space" or "tab", any indent using the other
// character is flagged as well.
var MixedIndentation = lint.RuleDef{
	ID:          "LT02",
	Name:        "layout.indent",
	Group:       "layout",
	Description: "Indentation should not mix tabs and spaces.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"indent_unit"},
}

func checkMixedIndentation(in *lint.Input, opts map[string]any) []lint.Diagnostic {
	unit := lint.GetStringOption(opts, "indent_unit", "")

	var diagnostics []lint.Diagnostic
	ast.WalkLeaves(in.Tree(), func(leaf, next *token.Leaf) {
		if leaf.Category != token.Whitespace || leaf.Span.Start.Column != 1 {
			return
		}
		// Blank lines are trailing whitespace, not indentation.
		if next == nil || next.Category == token.Newline {
			return
		}

		tabs := strings.Contains(leaf.Text, "\t")
		spaces := strings.Contains(leaf.Text, " ")
		var msg string
		switch {
		case tabs && spaces:
			msg = "Indentation mixes tabs and spaces."
		case unit == "space" && tabs:
			msg = "Expected only spaces in indentation, found tabs."
		case unit == "tab" && spaces:
			msg = "Expected only tabs in indentation, found spaces."
		default:
			return
		}
		diagnostics = append(diagnostics, lint.At(MixedIndentation, leaf.Span, msg))
	})
	return diagnostics
}
