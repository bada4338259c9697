// Package grammar implements the combinator engine that turns a flat run of
// classified leaves into a lossless segment tree.
//
// A Grammar matches a prefix of the span it is given and reports how many
// elements it consumed. Failure is an ordinary Match value; the error return
// only carries limits imposed from outside (depth, cancellation) and grammar
// bugs such as an unknown Ref name.
//
// Segments are produced in two phases. A SegmentDef's match grammar fixes the
// segment's boundary inside its parent. If the definition also declares a
// parse grammar, the bounded span is kept as an opaque run of leaves until
// Expand re-parses it into structure. A parse failure degrades only that
// segment: its span is kept under an "unparsable" child and reported.
package grammar

import (
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Element is a node of the parse tree: either a *token.Leaf or a *Segment.
type Element interface {
	Raw() string
	IsCode() bool
	Start() token.Position
	End() token.Position
}

// Grammar is a composable matching rule.
type Grammar interface {
	// Match matches a prefix of elems. Implementations never modify elems.
	Match(pc *ParseContext, elems []Element) (Match, error)
}

// Resolver is the read-only registry a ParseContext resolves names against.
type Resolver interface {
	// Lookup returns the grammar registered under name.
	Lookup(name string) (Grammar, bool)
	// IsReserved reports whether the upper-cased word is a reserved keyword.
	IsReserved(word string) bool
}

// Match is the result of a Grammar match. A successful match may consume
// zero elements (an absent optional item, zero repetitions).
type Match struct {
	Elements []Element
	Consumed int
	ok       bool
}

// OK reports whether the grammar matched.
func (m Match) OK() bool { return m.ok }

// NoMatch is the failed match.
var NoMatch = Match{}

func matched(elems []Element, consumed int) Match {
	return Match{Elements: elems, Consumed: consumed, ok: true}
}

// composite is implemented by grammars that hold sub-grammars.
type composite interface {
	subGrammars() []Grammar
}

// OptionalGrammar matches its inner grammar or, failing that, nothing.
type OptionalGrammar struct {
	inner Grammar
}

// Optional marks g as optional.
func Optional(g Grammar) *OptionalGrammar {
	return &OptionalGrammar{inner: g}
}

// Match implements Grammar.
func (o *OptionalGrammar) Match(pc *ParseContext, elems []Element) (Match, error) {
	m, err := o.inner.Match(pc, elems)
	if err != nil {
		return NoMatch, err
	}
	if !m.ok {
		return matched(nil, 0), nil
	}
	return m, nil
}

func (o *OptionalGrammar) subGrammars() []Grammar { return []Grammar{o.inner} }

// References returns the names of every Ref reachable from g without
// crossing a Ref, in first-seen order.
func References(g Grammar) []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Grammar)
	walk = func(g Grammar) {
		if g == nil {
			return
		}
		if r, ok := g.(*RefGrammar); ok {
			if !seen[r.name] {
				seen[r.name] = true
				names = append(names, r.name)
			}
			return
		}
		if b, ok := g.(*BracketedGrammar); ok {
			for _, n := range []string{StartBracketName, EndBracketName} {
				if !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
			walk(b.content)
			return
		}
		if c, ok := g.(composite); ok {
			for _, sub := range c.subGrammars() {
				walk(sub)
			}
		}
	}
	walk(g)
	return names
}
