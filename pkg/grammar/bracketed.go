package grammar

// Registry names of the bracket grammars. Bracketed requires both; the
// depth-aware scans of Delimited, StartsWith and GreedyUntil fall back to
// flat scanning when they are not registered.
const (
	StartBracketName = "StartBracketSegment"
	EndBracketName   = "EndBracketSegment"
)

type bracketPair struct {
	start, end Grammar
}

func (pc *ParseContext) bracketGrammars() *bracketPair {
	if pc.brackets == nil {
		bp := &bracketPair{}
		bp.start, _ = pc.resolver.Lookup(StartBracketName)
		bp.end, _ = pc.resolver.Lookup(EndBracketName)
		pc.brackets = bp
	}
	return pc.brackets
}

// bracketDelta returns +1 for a start bracket, -1 for an end bracket and 0 otherwise.
func (pc *ParseContext) bracketDelta(e Element) (int, error) {
	if !e.IsCode() {
		return 0, nil
	}
	bp := pc.bracketGrammars()
	one := []Element{e}
	if bp.start != nil {
		if _, ok, err := matchesAt(pc, bp.start, one); err != nil || ok {
			return 1, err
		}
	}
	if bp.end != nil {
		if _, ok, err := matchesAt(pc, bp.end, one); err != nil || ok {
			return -1, err
		}
	}
	return 0, nil
}

// scanDepthZero walks elems and returns the index of the first element at
// bracket depth zero for which stop returns true, or len(elems). When
// codeOnly is set non-code elements are never offered to stop.
func scanDepthZero(pc *ParseContext, elems []Element, codeOnly bool, stop func(i int) (bool, error)) (int, error) {
	depth := 0
	for i, e := range elems {
		if depth == 0 && (!codeOnly || e.IsCode()) {
			hit, err := stop(i)
			if err != nil {
				return 0, err
			}
			if hit {
				return i, nil
			}
		}
		d, err := pc.bracketDelta(e)
		if err != nil {
			return 0, err
		}
		depth += d
		if depth < 0 {
			depth = 0
		}
	}
	return len(elems), nil
}

// BracketedGrammar matches content between a start bracket and the end
// bracket at the same nesting depth.
type BracketedGrammar struct {
	content Grammar
}

// Bracketed requires content to fill the brackets, apart from non-code
// elements next to either bracket.
func Bracketed(content Grammar) *BracketedGrammar {
	return &BracketedGrammar{content: content}
}

// Match implements Grammar.
func (b *BracketedGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	if len(elems) == 0 {
		return NoMatch, nil
	}
	start, err := pc.lookup(StartBracketName)
	if err != nil {
		return NoMatch, err
	}
	end, err := pc.lookup(EndBracketName)
	if err != nil {
		return NoMatch, err
	}

	open, ok, err := matchesAt(pc, start, elems)
	if err != nil || !ok || open.Consumed != 1 {
		return NoMatch, err
	}

	closeIdx := -1
	depth := 1
	for i := 1; i < len(elems); i++ {
		d, err := pc.bracketDelta(elems[i])
		if err != nil {
			return NoMatch, err
		}
		depth += d
		if depth == 0 {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return NoMatch, nil
	}

	closing, ok, err := matchesAt(pc, end, elems[closeIdx:])
	if err != nil || !ok {
		return NoMatch, err
	}

	inner := elems[1:closeIdx]
	lead, trail := nonCodeEdges(inner)
	core := inner[lead : len(inner)-trail]
	m, ok, err := matchWhole(pc, b.content, core)
	if err != nil || !ok {
		return NoMatch, err
	}

	out := concat(open.Elements, inner[:lead], m.Elements, inner[len(inner)-trail:], closing.Elements)
	return matched(out, closeIdx+1), nil
}

func (b *BracketedGrammar) subGrammars() []Grammar { return []Grammar{b.content} }
