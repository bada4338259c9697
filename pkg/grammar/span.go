package grammar

// Helpers over spans of elements. None of them modify their input.

func clone(elems []Element) []Element {
	if len(elems) == 0 {
		return nil
	}
	return append([]Element(nil), elems...)
}

func hasCode(elems []Element) bool {
	for _, e := range elems {
		if e.IsCode() {
			return true
		}
	}
	return false
}

// leadingNonCode returns the number of non-code elements before the first code element.
func leadingNonCode(elems []Element) int {
	for i, e := range elems {
		if e.IsCode() {
			return i
		}
	}
	return len(elems)
}

// nonCodeEdges returns the number of non-code elements at each end of elems.
// A span without code is reported as all leading.
func nonCodeEdges(elems []Element) (lead, trail int) {
	lead = leadingNonCode(elems)
	if lead == len(elems) {
		return lead, 0
	}
	for i := len(elems) - 1; i >= 0; i-- {
		if elems[i].IsCode() {
			break
		}
		trail++
	}
	return lead, trail
}

// concat joins spans into a fresh slice.
func concat(parts ...[]Element) []Element {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	if n == 0 {
		return nil
	}
	out := make([]Element, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// matchesAt reports whether g matches at the start of elems.
func matchesAt(pc *ParseContext, g Grammar, elems []Element) (Match, bool, error) {
	m, err := g.Match(pc, elems)
	if err != nil {
		return NoMatch, false, err
	}
	return m, m.ok, nil
}

// matchWhole matches g against elems and requires every element be consumed.
func matchWhole(pc *ParseContext, g Grammar, elems []Element) (Match, bool, error) {
	m, ok, err := matchesAt(pc, g, elems)
	if err != nil || !ok {
		return NoMatch, false, err
	}
	if m.Consumed != len(elems) {
		return NoMatch, false, nil
	}
	return m, true, nil
}
