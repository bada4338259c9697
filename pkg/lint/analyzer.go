package lint

import "sort"

// Analyzer runs lint rules against parsed SQL.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// Analyze runs every registered rule that applies to the input's dialect.
// Diagnostics are ordered by position, then rule ID.
func (a *Analyzer) Analyze(in *Input) []Diagnostic {
	if in == nil || in.Result == nil {
		return nil
	}

	dialectName := ""
	if in.Dialect != nil {
		dialectName = in.Dialect.Name
	}

	var diagnostics []Diagnostic
	for _, rule := range GetByDialect(dialectName) {
		if a.config.IsDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(in, a.config.GetRuleOptions(rule.ID))

		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
		}

		diagnostics = append(diagnostics, diags...)
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		pi, pj := diagnostics[i].Pos, diagnostics[j].Pos
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		if pi.Column != pj.Column {
			return pi.Column < pj.Column
		}
		return diagnostics[i].RuleID < diagnostics[j].RuleID
	})
	return diagnostics
}
