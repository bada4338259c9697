package grammar

// SequenceGrammar matches its items in order.
type SequenceGrammar struct {
	items    []Grammar
	codeOnly bool
}

// Sequence matches items in order. Non-code elements before an item are
// skipped and kept in the output; they are only consumed when the item
// after them matches something.
func Sequence(items ...Grammar) *SequenceGrammar {
	return &SequenceGrammar{items: items, codeOnly: true}
}

// WithCodeOnly controls whether non-code elements may sit between items.
func (s *SequenceGrammar) WithCodeOnly(codeOnly bool) *SequenceGrammar {
	c := *s
	c.codeOnly = codeOnly
	return &c
}

// Match implements Grammar.
func (s *SequenceGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	var out []Element
	pos := 0
	for _, item := range s.items {
		next := pos
		if s.codeOnly {
			next += leadingNonCode(elems[pos:])
		}
		m, ok, err := matchesAt(pc, item, elems[next:])
		if err != nil || !ok {
			return NoMatch, err
		}
		if m.Consumed == 0 {
			continue
		}
		out = append(out, elems[pos:next]...)
		out = append(out, m.Elements...)
		pos = next + m.Consumed
	}
	return matched(out, pos), nil
}

func (s *SequenceGrammar) subGrammars() []Grammar { return s.items }

// OneOfGrammar matches the first alternative that matches.
type OneOfGrammar struct {
	alternatives []Grammar
}

// OneOf tries alternatives in order and keeps the first match. Later
// alternatives are never consulted once one matches, even if they would
// consume more.
func OneOf(alternatives ...Grammar) *OneOfGrammar {
	return &OneOfGrammar{alternatives: alternatives}
}

// Match implements Grammar.
func (o *OneOfGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	for _, alt := range o.alternatives {
		m, ok, err := matchesAt(pc, alt, elems)
		if err != nil {
			return NoMatch, err
		}
		if ok {
			return m, nil
		}
	}
	return NoMatch, nil
}

func (o *OneOfGrammar) subGrammars() []Grammar { return o.alternatives }

// AnyNumberOfGrammar repeats a choice between items.
type AnyNumberOfGrammar struct {
	items    []Grammar
	min      int
	max      int
	codeOnly bool
}

// AnyNumberOf matches any of items repeatedly, first match wins on each
// round. Zero rounds is a match unless WithMin says otherwise.
func AnyNumberOf(items ...Grammar) *AnyNumberOfGrammar {
	return &AnyNumberOfGrammar{items: items, codeOnly: true}
}

// WithMin sets the minimum number of rounds.
func (a *AnyNumberOfGrammar) WithMin(n int) *AnyNumberOfGrammar {
	c := *a
	c.min = n
	return &c
}

// WithMax caps the number of rounds. Zero means unbounded.
func (a *AnyNumberOfGrammar) WithMax(n int) *AnyNumberOfGrammar {
	c := *a
	c.max = n
	return &c
}

// Match implements Grammar.
func (a *AnyNumberOfGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	var out []Element
	pos, rounds := 0, 0
	for a.max == 0 || rounds < a.max {
		next := pos
		if a.codeOnly {
			next += leadingNonCode(elems[pos:])
		}
		m, ok, err := a.matchRound(pc, elems[next:])
		if err != nil {
			return NoMatch, err
		}
		if !ok || m.Consumed == 0 {
			break
		}
		out = append(out, elems[pos:next]...)
		out = append(out, m.Elements...)
		pos = next + m.Consumed
		rounds++
	}
	if rounds < a.min {
		return NoMatch, nil
	}
	return matched(out, pos), nil
}

func (a *AnyNumberOfGrammar) matchRound(pc *ParseContext, elems []Element) (Match, bool, error) {
	for _, item := range a.items {
		m, ok, err := matchesAt(pc, item, elems)
		if err != nil || ok {
			return m, ok, err
		}
	}
	return NoMatch, false, nil
}

func (a *AnyNumberOfGrammar) subGrammars() []Grammar { return a.items }
