package grammar

// RefGrammar defers to whatever the active registry holds under a name.
type RefGrammar struct {
	name string
}

// Ref returns a reference to the grammar registered as name. The name is
// resolved on every match, so it may be registered after the Ref is built.
func Ref(name string) *RefGrammar {
	return &RefGrammar{name: name}
}

// Name returns the referenced name.
func (r *RefGrammar) Name() string { return r.name }

func (r *RefGrammar) String() string { return "Ref(" + r.name + ")" }

// Match implements Grammar.
func (r *RefGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	if err := pc.enter(); err != nil {
		return NoMatch, err
	}
	defer pc.leave()

	g, err := pc.lookup(r.name)
	if err != nil {
		return NoMatch, err
	}
	return g.Match(pc, elems)
}
