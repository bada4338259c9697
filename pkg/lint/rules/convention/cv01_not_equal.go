package convention

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/lint/internal/ast"
)

func init() {
	// Assigned here: checkNotEqualOperator refers back to NotEqualOperator.
	NotEqualOperator.Check = checkNotEqualOperator
	lint.Register(NotEqualOperator)
}

// Not-equal styles accepted by preferred_not_equal_style.
const (
	StyleConsistent = "consistent"
	StyleCStyle     = "c_style" // !=
	StyleANSI       = "ansi"    // <>
)

// NotEqualOperator flags not-equal operators written differently from the
// configured style. Under the consistent style the first operator in the
// file decides.
var NotEqualOperator = lint.RuleDef{
	ID:          "CV01",
	Name:        "convention.not_equal",
	Group:       "convention",
	Description: "Use a consistent not equal operator.",
	Severity:    lint.SeverityHint,
	ConfigKeys:  []string{"preferred_not_equal_style"},
}

func checkNotEqualOperator(in *lint.Input, opts map[string]any) []lint.Diagnostic {
	want := operatorFor(lint.GetStringOption(opts, "preferred_not_equal_style", StyleConsistent))

	var diagnostics []lint.Diagnostic
	for _, op := range ast.CollectNamed(in.Tree(), "not_equal_to") {
		raw := op.Raw()
		if want == "" {
			want = raw
			continue
		}
		if raw != want {
			diagnostics = append(diagnostics, lint.At(NotEqualOperator, op.Span(),
				fmt.Sprintf("Use %q instead of %q for not equal.", want, raw)))
		}
	}
	return diagnostics
}

func operatorFor(style string) string {
	switch style {
	case StyleCStyle:
		return "!="
	case StyleANSI:
		return "<>"
	default:
		return ""
	}
}
