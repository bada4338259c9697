package grammar

import (
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// UnparsableType is the type of segments holding spans no grammar could structure.
const UnparsableType = "unparsable"

// Segment is a typed node of the parse tree. It owns its children, and its
// raw text is always the concatenation of theirs.
type Segment struct {
	Type     string
	Name     string
	Children []Element

	def     *SegmentDef
	pending bool
}

// Raw returns the source text covered by the segment.
func (s *Segment) Raw() string {
	var b strings.Builder
	s.writeRaw(&b)
	return b.String()
}

func (s *Segment) writeRaw(b *strings.Builder) {
	for _, c := range s.Children {
		if cs, ok := c.(*Segment); ok {
			cs.writeRaw(b)
			continue
		}
		b.WriteString(c.Raw())
	}
}

// IsCode reports whether any child is code.
func (s *Segment) IsCode() bool {
	return hasCode(s.Children)
}

// Start returns the position of the first leaf, or the zero Position.
func (s *Segment) Start() token.Position {
	if len(s.Children) == 0 {
		return token.Position{}
	}
	return s.Children[0].Start()
}

// End returns the position past the last leaf, or the zero Position.
func (s *Segment) End() token.Position {
	if len(s.Children) == 0 {
		return token.Position{}
	}
	return s.Children[len(s.Children)-1].End()
}

// Span returns the source range covered by the segment.
func (s *Segment) Span() token.Span {
	return token.Span{Start: s.Start(), End: s.End()}
}

// Is reports whether the segment has the given type.
func (s *Segment) Is(typ string) bool {
	return s.Type == typ
}

// Expanded reports whether the segment's parse phase has run, or it has none.
func (s *Segment) Expanded() bool {
	return !s.pending
}

// Segments returns the direct children that are segments.
func (s *Segment) Segments() []*Segment {
	var out []*Segment
	for _, c := range s.Children {
		if cs, ok := c.(*Segment); ok {
			out = append(out, cs)
		}
	}
	return out
}

// CodeSegments returns the direct children that are segments containing code.
func (s *Segment) CodeSegments() []*Segment {
	var out []*Segment
	for _, cs := range s.Segments() {
		if cs.IsCode() {
			out = append(out, cs)
		}
	}
	return out
}

// Leaves returns every leaf under the segment in source order.
func (s *Segment) Leaves() []*token.Leaf {
	var out []*token.Leaf
	s.collectLeaves(&out)
	return out
}

func (s *Segment) collectLeaves(out *[]*token.Leaf) {
	for _, c := range s.Children {
		switch n := c.(type) {
		case *Segment:
			n.collectLeaves(out)
		case *token.Leaf:
			*out = append(*out, n)
		}
	}
}

// Walk visits s and its descendant segments in pre-order. Returning false
// from fn skips the children of the segment just visited.
func (s *Segment) Walk(fn func(seg *Segment, depth int) bool) {
	s.walk(fn, 0)
}

func (s *Segment) walk(fn func(*Segment, int) bool, depth int) {
	if !fn(s, depth) {
		return
	}
	for _, c := range s.Children {
		if cs, ok := c.(*Segment); ok {
			cs.walk(fn, depth+1)
		}
	}
}

// FindAll returns every segment of the given type at or below s, in pre-order.
func (s *Segment) FindAll(typ string) []*Segment {
	var out []*Segment
	s.Walk(func(seg *Segment, _ int) bool {
		if seg.Type == typ {
			out = append(out, seg)
		}
		return true
	})
	return out
}

// Find returns the first segment of the given type at or below s.
func (s *Segment) Find(typ string) *Segment {
	var found *Segment
	s.Walk(func(seg *Segment, _ int) bool {
		if found != nil {
			return false
		}
		if seg.Type == typ {
			found = seg
			return false
		}
		return true
	})
	return found
}

// Child returns the first direct child segment of the given type.
func (s *Segment) Child(typ string) *Segment {
	for _, cs := range s.Segments() {
		if cs.Type == typ {
			return cs
		}
	}
	return nil
}

// flattenLeaves replaces every segment in elems by its leaves.
func flattenLeaves(elems []Element) []Element {
	out := make([]Element, 0, len(elems))
	for _, e := range elems {
		if s, ok := e.(*Segment); ok {
			for _, l := range s.Leaves() {
				out = append(out, l)
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// SegmentDef declares a segment type bound to a match grammar and an
// optional parse grammar.
type SegmentDef struct {
	Name string
	Type string

	// MatchGrammar fixes the segment's boundary.
	MatchGrammar Grammar
	// ParseGrammar, when set, structures the bounded span during Expand.
	ParseGrammar Grammar
}

// Match implements Grammar. The segment must cover at least one element.
func (d *SegmentDef) Match(pc *ParseContext, elems []Element) (Match, error) {
	m, ok, err := matchesAt(pc, d.MatchGrammar, elems)
	if err != nil || !ok || m.Consumed == 0 {
		return NoMatch, err
	}
	seg := &Segment{Type: d.Type, Name: d.Name, Children: m.Elements, def: d}
	if d.ParseGrammar != nil {
		seg.Children = flattenLeaves(m.Elements)
		seg.pending = true
	}
	return matched([]Element{seg}, m.Consumed), nil
}

func (d *SegmentDef) subGrammars() []Grammar {
	return []Grammar{d.MatchGrammar, d.ParseGrammar}
}

// NewSegment builds a segment outside of any grammar, as the parse driver
// does for the file root.
func NewSegment(typ, name string, children ...Element) *Segment {
	return &Segment{Type: typ, Name: name, Children: children}
}

// NewUnparsable wraps elems in an unparsable segment.
func NewUnparsable(elems []Element) *Segment {
	return &Segment{Type: UnparsableType, Name: "Unparsable", Children: clone(elems)}
}
