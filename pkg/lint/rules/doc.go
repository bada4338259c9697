// Package rules provides SQLFluff-style lint rule implementations.
//
// Rules are organized by category following SQLFluff's naming conventions:
//   - parse: sections the dialect could not structure (PRS)
//   - layout: whitespace and line shape (LT01-LT05)
//   - capitalisation: keyword casing (CP01)
//   - convention: operator and join style (CV01-CV08)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/sqlseg/pkg/lint/rules"
package rules
