package convention

import (
	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/lint/internal/ast"
)

func init() {
	// Assigned here: checkPreferLeftJoin refers back to PreferLeftJoin.
	PreferLeftJoin.Check = checkPreferLeftJoin
	lint.Register(PreferLeftJoin)
}

// PreferLeftJoin recommends LEFT JOIN over RIGHT JOIN.
var PreferLeftJoin = lint.RuleDef{
	ID:          "CV08",
	Name:        "convention.left_join",
	Group:       "convention",
	Description: "Prefer LEFT JOIN over RIGHT JOIN for consistency.",
	Severity:    lint.SeverityHint,
}

func checkPreferLeftJoin(in *lint.Input, _ map[string]any) []lint.Diagnostic {
	tree := in.Tree()
	if tree == nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, join := range tree.FindAll("join_clause") {
		if right, ok := ast.HasKeyword(join, "right"); ok {
			diagnostics = append(diagnostics, lint.At(PreferLeftJoin, right.Span(),
				"Consider using LEFT JOIN instead of RIGHT JOIN for better readability."))
		}
	}
	return diagnostics
}
