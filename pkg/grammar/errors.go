package grammar

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

var (
	// ErrMaxDepth is returned when Ref nesting exceeds the context's depth limit.
	ErrMaxDepth = errors.New("maximum recursion depth exceeded")

	// ErrUnknownGrammar is returned when a Ref names nothing in the registry.
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// ProblemKind classifies why a span was left unparsed.
type ProblemKind int

const (
	// KindUnparsable marks a span no grammar could structure.
	KindUnparsable ProblemKind = iota
	// KindMaxDepth marks a span abandoned at the recursion depth limit.
	KindMaxDepth
	// KindCancelled marks input left unparsed after the context was cancelled.
	KindCancelled
)

func (k ProblemKind) String() string {
	switch k {
	case KindUnparsable:
		return "unparsable"
	case KindMaxDepth:
		return "max_depth"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Problem reports a span that was kept in the tree as an unparsable segment.
type Problem struct {
	Kind ProblemKind
	// SegmentType is the type of the segment whose parse failed, or "statement"
	// for spans the statement dispatcher could not place.
	SegmentType string
	Span        token.Span
	Raw         string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s at %s: %q", p.SegmentType, p.Kind, p.Span.Start, p.Raw)
}
