package capitalisation

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/lint/internal/ast"
)

func init() {
	// Assigned here: checkKeywordCapitalisation refers back to KeywordCapitalisation.
	KeywordCapitalisation.Check = checkKeywordCapitalisation
	lint.Register(KeywordCapitalisation)
}

// Capitalisation policies accepted by capitalisation_policy.
const (
	PolicyConsistent = "consistent"
	PolicyUpper      = "upper"
	PolicyLower      = "lower"
	PolicyCapitalise = "capitalise"
)

// keywordTypes are the segment types keyword matchers produce.
var keywordTypes = []string{"keyword", "binary_operator", "comparison_operator"}

// KeywordCapitalisation flags keywords whose case differs from the policy.
// Under the consistent policy the first keyword that is not mixed case
// sets the case for the whole file.
var KeywordCapitalisation = lint.RuleDef{
	ID:          "CP01",
	Name:        "capitalisation.keywords",
	Group:       "capitalisation",
	Description: "Inconsistent capitalisation of keywords.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"capitalisation_policy"},
}

func checkKeywordCapitalisation(in *lint.Input, opts map[string]any) []lint.Diagnostic {
	policy := lint.GetStringOption(opts, "capitalisation_policy", PolicyConsistent)
	words := ast.CollectWords(in.Tree(), keywordTypes...)

	if policy == PolicyConsistent {
		policy = ""
		for _, w := range words {
			if style := styleOf(w.Raw()); style != "" {
				policy = style
				break
			}
		}
		if policy == "" {
			return nil
		}
	}

	var diagnostics []lint.Diagnostic
	for _, w := range words {
		raw := w.Raw()
		if styleOf(raw) == policy {
			continue
		}
		diagnostics = append(diagnostics, lint.At(KeywordCapitalisation, w.Span(),
			fmt.Sprintf("Keywords must be %s: found %q.", describe(policy), raw)))
	}
	return diagnostics
}

// styleOf classifies raw as upper, lower or capitalised, or "" when mixed.
func styleOf(raw string) string {
	switch raw {
	case cases.Upper(language.Und).String(raw):
		return PolicyUpper
	case cases.Lower(language.Und).String(raw):
		return PolicyLower
	case cases.Title(language.Und).String(raw):
		return PolicyCapitalise
	default:
		return ""
	}
}

func describe(policy string) string {
	switch policy {
	case PolicyUpper:
		return "upper case"
	case PolicyLower:
		return "lower case"
	case PolicyCapitalise:
		return "capitalised"
	default:
		return policy
	}
}
