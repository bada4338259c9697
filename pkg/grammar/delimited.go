package grammar

// DelimitedGrammar matches items separated by a delimiter.
type DelimitedGrammar struct {
	item       Grammar
	delimiter  Grammar
	terminator Grammar
	codeOnly   bool
}

// Delimited matches one or more item separated by delimiter. The span is
// cut at depth-zero delimiters first, and item must match each piece
// completely. Matching stops before a depth-zero terminator or at the end
// of the span.
func Delimited(item, delimiter Grammar) *DelimitedGrammar {
	return &DelimitedGrammar{item: item, delimiter: delimiter, codeOnly: true}
}

// WithTerminator sets the grammar that ends the list without being consumed.
func (d *DelimitedGrammar) WithTerminator(t Grammar) *DelimitedGrammar {
	c := *d
	c.terminator = t
	return &c
}

// WithCodeOnly controls whether non-code elements around items are ignored.
// Without it non-code elements are offered to the terminator and belong to
// the pieces.
func (d *DelimitedGrammar) WithCodeOnly(codeOnly bool) *DelimitedGrammar {
	c := *d
	c.codeOnly = codeOnly
	return &c
}

// Match implements Grammar.
func (d *DelimitedGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	var out []Element
	start := 0
	for {
		var delim Match
		atDelimiter := false
		idx, err := scanDepthZero(pc, elems[start:], d.codeOnly, func(i int) (bool, error) {
			rest := elems[start+i:]
			if d.terminator != nil {
				_, ok, err := matchesAt(pc, d.terminator, rest)
				if err != nil || ok {
					return ok, err
				}
			}
			m, ok, err := matchesAt(pc, d.delimiter, rest)
			if err != nil {
				return false, err
			}
			if ok && m.Consumed > 0 {
				delim, atDelimiter = m, true
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return NoMatch, err
		}

		end := start + idx
		piece := elems[start:end]
		lead, trail := 0, 0
		if d.codeOnly {
			lead, trail = nonCodeEdges(piece)
		}
		core := piece[lead : len(piece)-trail]
		if len(core) == 0 {
			return NoMatch, nil
		}
		m, ok, err := matchWhole(pc, d.item, core)
		if err != nil || !ok {
			return NoMatch, err
		}

		out = append(out, piece[:lead]...)
		out = append(out, m.Elements...)
		if !atDelimiter {
			return matched(out, start+lead+len(core)), nil
		}
		out = append(out, piece[len(piece)-trail:]...)
		out = append(out, delim.Elements...)
		start = end + delim.Consumed
	}
}

func (d *DelimitedGrammar) subGrammars() []Grammar {
	return []Grammar{d.item, d.delimiter, d.terminator}
}
