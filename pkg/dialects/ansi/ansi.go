// Package ansi provides the base ANSI SQL grammar.
//
// Every other dialect starts from ANSI with dialect.Extend and overrides the
// named entries it needs. Entry names are part of the package API: an
// extension replaces "ComparisonOperatorGrammar" to add an operator, or
// "Expression_C_Grammar" to add a postfix precedence level.
package ansi

import (
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ReservedWords may not be used as bare identifiers.
var ReservedWords = []string{
	"ALL", "AND", "AS", "ASC", "BY", "CROSS", "DESC", "DISTINCT",
	"FALSE", "FROM", "FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT",
	"INTO", "IS", "JOIN", "LEFT", "LIKE", "LIMIT", "NOT", "NULL", "ON",
	"OR", "ORDER", "OUTER", "OVERWRITE", "RIGHT", "SELECT", "TRUE",
	"USING", "VALUES", "WHERE", "WITH",
}

// ANSI is the base ANSI SQL dialect.
var ANSI = newBuilder().MustBuild()

func newBuilder() *dialect.Builder {
	b := dialect.NewDialect("ansi").WithReservedWords(ReservedWords...)
	addLexical(b)
	addKeywords(b)
	addLiterals(b)
	addExpressions(b)
	addSelect(b)
	addStatements(b)
	return b
}
