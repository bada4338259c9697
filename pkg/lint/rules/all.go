package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/leapstack-labs/sqlseg/pkg/lint/rules/capitalisation"
	_ "github.com/leapstack-labs/sqlseg/pkg/lint/rules/convention"
	_ "github.com/leapstack-labs/sqlseg/pkg/lint/rules/layout"
	_ "github.com/leapstack-labs/sqlseg/pkg/lint/rules/parse"
)
