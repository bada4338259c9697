package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// NewParseError describes an unparsed span.
func NewParseError(p grammar.Problem) *ParseError {
	msg := fmt.Sprintf("unparsable %s", p.SegmentType)
	switch p.Kind {
	case grammar.KindMaxDepth:
		msg = fmt.Sprintf("%s: recursion limit reached", msg)
	case grammar.KindCancelled:
		msg = "parsing cancelled"
	}
	return &ParseError{Pos: p.Span.Start, Message: msg}
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString     = "unterminated string literal"
	ErrUnterminatedIdentifier = "unterminated quoted identifier"
	ErrUnterminatedComment    = "unterminated block comment"
)
