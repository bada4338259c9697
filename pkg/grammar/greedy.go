package grammar

import "github.com/leapstack-labs/sqlseg/pkg/token"

// trimTrailing returns end moved back over non-code elements, provided the
// span elems[:end] contains code.
func trimTrailing(elems []Element, end int) int {
	for i := end - 1; i >= 0; i-- {
		if elems[i].IsCode() {
			return i + 1
		}
	}
	return end
}

// firstTerminator returns the index of the first depth-zero code element
// where any of terminators matches, or len(elems).
func firstTerminator(pc *ParseContext, elems []Element, terminators []Grammar) (int, error) {
	if len(terminators) == 0 {
		return len(elems), nil
	}
	return scanDepthZero(pc, elems, true, func(i int) (bool, error) {
		for _, t := range terminators {
			_, ok, err := matchesAt(pc, t, elems[i:])
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	})
}

// StartsWithGrammar is a coarse matcher keyed on the first code element.
type StartsWithGrammar struct {
	target     Grammar
	terminator Grammar
}

// StartsWith matches when the first code element matches target, then takes
// everything up to a depth-zero terminator, or to the end of the span, as
// one opaque run.
func StartsWith(target Grammar) *StartsWithGrammar {
	return &StartsWithGrammar{target: target}
}

// WithTerminator sets the grammar that ends the run.
func (s *StartsWithGrammar) WithTerminator(t Grammar) *StartsWithGrammar {
	c := *s
	c.terminator = t
	return &c
}

// Match implements Grammar.
func (s *StartsWithGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	first := leadingNonCode(elems)
	if first == len(elems) {
		return NoMatch, nil
	}
	m, ok, err := matchesAt(pc, s.target, elems[first:])
	if err != nil || !ok || m.Consumed == 0 {
		return NoMatch, err
	}

	from := first + m.Consumed
	end := len(elems)
	if s.terminator != nil {
		idx, err := firstTerminator(pc, elems[from:], []Grammar{s.terminator})
		if err != nil {
			return NoMatch, err
		}
		end = from + idx
	}
	end = trimTrailing(elems, end)
	return matched(clone(elems[:end]), end), nil
}

func (s *StartsWithGrammar) subGrammars() []Grammar {
	return []Grammar{s.target, s.terminator}
}

// GreedyUntilGrammar consumes everything up to a terminator.
type GreedyUntilGrammar struct {
	terminators []Grammar
}

// GreedyUntil consumes up to the first depth-zero terminator, or the whole
// span if none occurs. Trailing non-code elements are left unconsumed unless
// the span holds no code at all. Consuming nothing is a failure.
func GreedyUntil(terminators ...Grammar) *GreedyUntilGrammar {
	return &GreedyUntilGrammar{terminators: terminators}
}

// Match implements Grammar.
func (g *GreedyUntilGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	end, err := firstTerminator(pc, elems, g.terminators)
	if err != nil {
		return NoMatch, err
	}
	end = trimTrailing(elems, end)
	if end == 0 {
		return NoMatch, nil
	}
	return matched(clone(elems[:end]), end), nil
}

func (g *GreedyUntilGrammar) subGrammars() []Grammar { return g.terminators }

// ContainsOnlyGrammar matches a span made only of leaves of given categories.
type ContainsOnlyGrammar struct {
	categories []token.Category
}

// ContainsOnly matches the whole span when every element is a leaf of one
// of the categories. An empty span does not match.
func ContainsOnly(categories ...token.Category) *ContainsOnlyGrammar {
	return &ContainsOnlyGrammar{categories: categories}
}

// Match implements Grammar.
func (c *ContainsOnlyGrammar) Match(_ *ParseContext, elems []Element) (Match, error) {
	if len(elems) == 0 {
		return NoMatch, nil
	}
	for _, e := range elems {
		leaf, ok := e.(*token.Leaf)
		if !ok || !c.allows(leaf.Category) {
			return NoMatch, nil
		}
	}
	return matched(clone(elems), len(elems)), nil
}

func (c *ContainsOnlyGrammar) allows(cat token.Category) bool {
	for _, allowed := range c.categories {
		if cat == allowed {
			return true
		}
	}
	return false
}

// AnythingGrammar matches the whole remaining span.
type AnythingGrammar struct{}

// Anything matches every remaining element, including none.
func Anything() AnythingGrammar {
	return AnythingGrammar{}
}

// Match implements Grammar.
func (AnythingGrammar) Match(_ *ParseContext, elems []Element) (Match, error) {
	return matched(clone(elems), len(elems)), nil
}
