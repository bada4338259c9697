package parse

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func init() {
	// Assigned here: checkUnparsable refers back to Unparsable.
	Unparsable.Check = checkUnparsable
	lint.Register(Unparsable)
}

// maxQuoted bounds the source excerpt quoted in a message.
const maxQuoted = 40

// Unparsable reports every section the parser kept as unparsable.
var Unparsable = lint.RuleDef{
	ID:          "PRS",
	Name:        "parse.unparsable",
	Group:       "parse",
	Description: "SQL could not be parsed by the selected dialect.",
	Severity:    lint.SeverityError,
}

func checkUnparsable(in *lint.Input, _ map[string]any) []lint.Diagnostic {
	if in.Result == nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, e := range in.Result.LexErrors {
		diagnostics = append(diagnostics, lint.At(Unparsable,
			token.Span{Start: e.Pos, End: e.Pos},
			capitalize(e.Message)))
	}

	for _, p := range in.Result.Problems {
		var msg string
		switch p.Kind {
		case grammar.KindMaxDepth:
			msg = fmt.Sprintf("Recursion limit reached while parsing %s.", p.SegmentType)
		case grammar.KindCancelled:
			msg = "Parsing was cancelled before this point."
		default:
			msg = fmt.Sprintf("Found unparsable section: %q", excerpt(p.Raw))
		}
		diagnostics = append(diagnostics, lint.At(Unparsable, p.Span, msg))
	}
	return diagnostics
}

func excerpt(raw string) string {
	r := []rune(raw)
	if len(r) <= maxQuoted {
		return raw
	}
	return string(r[:maxQuoted-3]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
