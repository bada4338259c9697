package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
)

var (
	// ErrNotLossless is returned when a tree's text differs from its source.
	ErrNotLossless = errors.New("tree does not reproduce source")

	// ErrLeafOrder is returned when leaves overlap or leave gaps.
	ErrLeafOrder = errors.New("leaves are not contiguous")
)

// Verify checks that tree reproduces src exactly and that its leaves tile
// the source without gaps or overlaps.
func Verify(tree *grammar.Segment, src string) error {
	if raw := tree.Raw(); raw != src {
		at := 0
		for at < len(raw) && at < len(src) && raw[at] == src[at] {
			at++
		}
		return fmt.Errorf("%w: first difference at offset %d", ErrNotLossless, at)
	}
	offset := 0
	for _, l := range tree.Leaves() {
		if l.Span.Start.Offset != offset {
			return fmt.Errorf("%w: leaf %q at %s starts at offset %d, want %d",
				ErrLeafOrder, l.Text, l.Span.Start, l.Span.Start.Offset, offset)
		}
		offset = l.Span.End.Offset
	}
	if offset != len(src) {
		return fmt.Errorf("%w: leaves end at offset %d, source has %d bytes", ErrLeafOrder, offset, len(src))
	}
	return nil
}
