// Package lint runs rules over lossless parse trees.
//
// # Rule Registration
//
// Rules register themselves via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/sqlseg/pkg/lint/rules"
//
// # Rule Categories
//
//   - PRS (Parse): sections the dialect could not structure
//   - LT (Layout): whitespace and line shape, read from non-code leaves
//   - CP (Capitalisation): keyword casing
//   - CV (Convention): operator and join style
//
// # Configuration
//
// Rules can be disabled or have their severity changed:
//
//	cfg := lint.NewConfig().
//		Disable("LT05").
//		SetSeverity("CP01", lint.SeverityError)
//	diags := lint.NewAnalyzer(cfg).Analyze(input)
//
// Rule options are keyed by rule ID:
//
//	cfg.SetOptions("LT05", map[string]any{"max_line_length": 120})
package lint
