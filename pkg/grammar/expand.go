package grammar

import "errors"

// Expand runs the parse phase of s and of every segment below it. A failed
// parse degrades only the segment it belongs to; the returned error is
// reserved for cancellation and grammar bugs.
func Expand(pc *ParseContext, s *Segment) error {
	if s.pending {
		s.pending = false
		if err := expandSelf(pc, s); err != nil {
			return err
		}
	}
	for _, c := range s.Children {
		if cs, ok := c.(*Segment); ok {
			if err := Expand(pc, cs); err != nil {
				return err
			}
		}
	}
	return nil
}

func expandSelf(pc *ParseContext, s *Segment) error {
	children := s.Children
	lead, trail := nonCodeEdges(children)
	if lead == len(children) {
		// Nothing but non-code: offer the whole span, as an empty statement needs.
		lead = 0
	}
	core := children[lead : len(children)-trail]

	m, err := s.def.ParseGrammar.Match(pc, core)
	if errors.Is(err, ErrMaxDepth) {
		degrade(pc, s, lead, trail, KindMaxDepth)
		return nil
	}
	if err != nil {
		return err
	}
	if !m.ok || hasCode(core[m.Consumed:]) {
		degrade(pc, s, lead, trail, KindUnparsable)
		return nil
	}

	s.Children = concat(children[:lead], m.Elements, core[m.Consumed:], children[len(children)-trail:])
	return nil
}

// degrade keeps the core of s as a single unparsable child.
func degrade(pc *ParseContext, s *Segment, lead, trail int, kind ProblemKind) {
	children := s.Children
	u := NewUnparsable(children[lead : len(children)-trail])
	s.Children = concat(children[:lead], []Element{u}, children[len(children)-trail:])
	pc.Report(Problem{
		Kind:        kind,
		SegmentType: s.Type,
		Span:        u.Span(),
		Raw:         u.Raw(),
	})
}
