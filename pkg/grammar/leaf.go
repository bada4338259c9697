package grammar

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// wrap makes a single element the only child of a new segment.
func wrap(typ, name string, e Element) Match {
	return matched([]Element{&Segment{Type: typ, Name: name, Children: []Element{e}}}, 1)
}

// KeywordMatch matches one code element whose text equals Literal, ignoring case.
type KeywordMatch struct {
	Literal string
	Type    string
	Name    string
}

// Keyword returns a matcher for literal producing segments of the given type and name.
func Keyword(literal, typ, name string) *KeywordMatch {
	return &KeywordMatch{Literal: literal, Type: typ, Name: name}
}

// Match implements Grammar.
func (k *KeywordMatch) Match(_ *ParseContext, elems []Element) (Match, error) {
	if len(elems) == 0 || !elems[0].IsCode() {
		return NoMatch, nil
	}
	if !strings.EqualFold(elems[0].Raw(), k.Literal) {
		return NoMatch, nil
	}
	return wrap(k.Type, k.Name, elems[0]), nil
}

// RegexMatch matches one code element whose upper-cased text fully matches a pattern.
type RegexMatch struct {
	Type string
	Name string

	pattern         *regexp.Regexp
	anti            *regexp.Regexp
	excludeReserved bool
}

// Regex compiles pattern anchored at both ends. It panics on an invalid
// pattern, like regexp.MustCompile, since grammars are built at init.
func Regex(pattern, typ, name string) *RegexMatch {
	return &RegexMatch{
		Type:    typ,
		Name:    name,
		pattern: regexp.MustCompile(`^(?:` + pattern + `)$`),
	}
}

// Excluding rejects text that fully matches pattern even if the main pattern matches.
func (r *RegexMatch) Excluding(pattern string) *RegexMatch {
	c := *r
	c.anti = regexp.MustCompile(`^(?:` + pattern + `)$`)
	return &c
}

// ExcludeReserved rejects the active dialect's reserved words.
func (r *RegexMatch) ExcludeReserved() *RegexMatch {
	c := *r
	c.excludeReserved = true
	return &c
}

// Match implements Grammar.
func (r *RegexMatch) Match(pc *ParseContext, elems []Element) (Match, error) {
	if len(elems) == 0 || !elems[0].IsCode() {
		return NoMatch, nil
	}
	upper := strings.ToUpper(elems[0].Raw())
	if !r.pattern.MatchString(upper) {
		return NoMatch, nil
	}
	if r.anti != nil && r.anti.MatchString(upper) {
		return NoMatch, nil
	}
	if r.excludeReserved && pc.resolver.IsReserved(upper) {
		return NoMatch, nil
	}
	return wrap(r.Type, r.Name, elems[0]), nil
}

// NamedMatch matches one leaf by the category the lexer assigned it.
type NamedMatch struct {
	Category token.Category
	Type     string
	Name     string
}

// Named returns a matcher for leaves of category cat.
func Named(cat token.Category, typ, name string) *NamedMatch {
	return &NamedMatch{Category: cat, Type: typ, Name: name}
}

// Match implements Grammar.
func (n *NamedMatch) Match(_ *ParseContext, elems []Element) (Match, error) {
	if len(elems) == 0 {
		return NoMatch, nil
	}
	leaf, ok := elems[0].(*token.Leaf)
	if !ok || leaf.Category != n.Category {
		return NoMatch, nil
	}
	return wrap(n.Type, n.Name, leaf), nil
}

// PredicateMatch matches one element accepted by Pred.
type PredicateMatch struct {
	Pred func(Element) bool
	Type string
	Name string
}

// Predicate returns a matcher for elements accepted by pred.
func Predicate(pred func(Element) bool, typ, name string) *PredicateMatch {
	return &PredicateMatch{Pred: pred, Type: typ, Name: name}
}

// Match implements Grammar.
func (p *PredicateMatch) Match(_ *ParseContext, elems []Element) (Match, error) {
	if len(elems) == 0 || !p.Pred(elems[0]) {
		return NoMatch, nil
	}
	return wrap(p.Type, p.Name, elems[0]), nil
}

// NonCode accepts whitespace, newlines and comments.
func NonCode(e Element) bool {
	return !e.IsCode()
}
