package lint

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Input is everything a rule may inspect for one file.
type Input struct {
	Path    string
	Source  string
	Dialect *dialect.Dialect
	Result  *parser.Result
}

// Tree returns the parse tree, or nil when the file was not parsed.
func (in *Input) Tree() *grammar.Segment {
	if in == nil || in.Result == nil {
		return nil
	}
	return in.Result.Tree
}

// Lines splits the source into lines without their terminators.
func (in *Input) Lines() []string {
	return strings.Split(strings.ReplaceAll(in.Source, "\r\n", "\n"), "\n")
}

// RuleDef is a data-driven rule definition.
// Rules are stateless: all context comes through the Check parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g. "LT01"
	Name        string    // Human-readable name, e.g. "layout.spacing"
	Group       string    // Category, e.g. "layout", "capitalisation"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts
	Dialects    []string  // Restrict to specific dialects; nil/empty means all dialects
}

// CheckFunc analyzes one file. opts holds the rule's options from configuration.
type CheckFunc func(in *Input, opts map[string]any) []Diagnostic

// AppliesTo reports whether the rule runs for the named dialect.
func (r RuleDef) AppliesTo(dialectName string) bool {
	if len(r.Dialects) == 0 || dialectName == "" {
		return true
	}
	for _, d := range r.Dialects {
		if d == dialectName {
			return true
		}
	}
	return false
}

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      token.Position
	EndPos   token.Position // Optional: end of the problematic range
}

// At builds a diagnostic for rule spanning the given range.
func At(rule RuleDef, span token.Span, msg string) Diagnostic {
	return Diagnostic{
		RuleID:   rule.ID,
		Severity: rule.Severity,
		Message:  msg,
		Pos:      span.Start,
		EndPos:   span.End,
	}
}
