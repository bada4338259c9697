package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

func init() {
	// Assigned here: checkLineTooLong refers back to LineTooLong.
	LineTooLong.Check = checkLineTooLong
	lint.Register(LineTooLong)
}

const defaultMaxLineLength = 80

// LineTooLong flags lines longer than max_line_length characters.
var LineTooLong = lint.RuleDef{
	ID:          "LT05",
	Name:        "layout.long_lines",
	Group:       "layout",
	Description: "Line is too long.",
	Severity:    lint.SeverityHint,
	ConfigKeys:  []string{"max_line_length", "ignore_comment_lines"},
}

type lineLengthOptions struct {
	MaxLineLength      int  `mapstructure:"max_line_length"`
	IgnoreCommentLines bool `mapstructure:"ignore_comment_lines"`
}

func checkLineTooLong(in *lint.Input, opts map[string]any) []lint.Diagnostic {
	o := lineLengthOptions{MaxLineLength: defaultMaxLineLength}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		o = lineLengthOptions{MaxLineLength: defaultMaxLineLength}
	}
	limit := o.MaxLineLength
	if limit <= 0 {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for i, line := range in.Lines() {
		n := utf8.RuneCountInString(line)
		if n <= limit {
			continue
		}
		if o.IgnoreCommentLines && strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		start := token.Position{Line: i + 1, Column: limit + 1}
		end := token.Position{Line: i + 1, Column: n + 1}
		diagnostics = append(diagnostics, lint.At(LineTooLong, token.Span{Start: start, End: end},
			fmt.Sprintf("Line is too long (%d > %d).", n, limit)))
	}
	return diagnostics
}
