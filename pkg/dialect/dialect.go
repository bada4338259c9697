// Package dialect provides the grammar registry a parse resolves names against.
//
// A Dialect is an immutable table from name to grammar. Dialects are built
// once with a Builder, usually at init, and shared read-only by every parse.
// Extend starts a new table from an existing one; the base is never changed.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

var (
	// ErrDuplicateGrammar is returned when a name is added twice.
	ErrDuplicateGrammar = errors.New("grammar already registered")

	// ErrMissingGrammar is returned when replacing a name that was never added.
	ErrMissingGrammar = errors.New("grammar not registered")
)

// Dialect is the named, read-only grammar table for one SQL variant.
type Dialect struct {
	Name string
	// Base is the name of the dialect this one extends, if any.
	Base string

	entries       map[string]grammar.Grammar
	reservedWords map[string]struct{}
	lexRules      []token.LexRule
}

var _ grammar.Resolver = (*Dialect)(nil)

// Lookup returns the grammar registered under name.
func (d *Dialect) Lookup(name string) (grammar.Grammar, bool) {
	g, ok := d.entries[name]
	return g, ok
}

// IsReserved reports whether word is a reserved keyword, ignoring case.
func (d *Dialect) IsReserved(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// ReservedWords returns the reserved keywords, sorted.
func (d *Dialect) ReservedWords() []string {
	return sortedKeys(d.reservedWords)
}

// Names returns every registered name, sorted.
func (d *Dialect) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Segment returns the segment definition registered under name.
func (d *Dialect) Segment(name string) (*grammar.SegmentDef, bool) {
	def, ok := d.entries[name].(*grammar.SegmentDef)
	return def, ok
}

// SegmentTypes returns the distinct types of all registered segments, sorted.
func (d *Dialect) SegmentTypes() []string {
	types := make(map[string]struct{})
	for _, g := range d.entries {
		if def, ok := g.(*grammar.SegmentDef); ok {
			types[def.Type] = struct{}{}
		}
	}
	return sortedKeys(types)
}

// LexRules returns the dialect's extra lexical classes, in match order.
func (d *Dialect) LexRules() []token.LexRule {
	return append([]token.LexRule(nil), d.lexRules...)
}

// Validate checks that every Ref reachable from the table names a registered grammar.
func (d *Dialect) Validate() error {
	var errs []error
	for _, name := range d.Names() {
		for _, ref := range grammar.References(d.entries[name]) {
			if _, ok := d.entries[ref]; !ok {
				errs = append(errs, fmt.Errorf("%s: %w: %s", name, grammar.ErrUnknownGrammar, ref))
			}
		}
	}
	return errors.Join(errs...)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	name          string
	base          string
	entries       map[string]grammar.Grammar
	reservedWords map[string]struct{}
	lexRules      []token.LexRule
	errs          []error
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		name:          name,
		entries:       make(map[string]grammar.Grammar),
		reservedWords: make(map[string]struct{}),
	}
}

// Extend creates a builder seeded with a copy of base's table. Use Replace
// to override inherited entries and Add for new ones.
func Extend(base *Dialect, name string) *Builder {
	b := NewDialect(name)
	b.base = base.Name
	for k, v := range base.entries {
		b.entries[k] = v
	}
	for w := range base.reservedWords {
		b.reservedWords[w] = struct{}{}
	}
	b.lexRules = append(b.lexRules, base.lexRules...)
	return b
}

// Add registers g under name. Adding a name twice is a build error.
func (b *Builder) Add(name string, g grammar.Grammar) *Builder {
	if _, exists := b.entries[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateGrammar, name))
		return b
	}
	b.entries[name] = g
	return b
}

// Replace overrides the grammar registered under name.
func (b *Builder) Replace(name string, g grammar.Grammar) *Builder {
	if _, exists := b.entries[name]; !exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrMissingGrammar, name))
		return b
	}
	b.entries[name] = g
	return b
}

// Segment registers a segment definition under its own name.
func (b *Builder) Segment(defs ...*grammar.SegmentDef) *Builder {
	for _, def := range defs {
		b.Add(def.Name, def)
	}
	return b
}

// ReplaceSegment overrides a segment definition registered under the same name.
func (b *Builder) ReplaceSegment(def *grammar.SegmentDef) *Builder {
	return b.Replace(def.Name, def)
}

// WithReservedWords registers words that may not be used as bare identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// WithoutReservedWords releases words reserved by a base dialect.
func (b *Builder) WithoutReservedWords(words ...string) *Builder {
	for _, w := range words {
		delete(b.reservedWords, strings.ToUpper(w))
	}
	return b
}

// WithLexRules adds lexical classes the built-in lexer does not know,
// such as dollar-quoted strings. Rules added later are tried later.
func (b *Builder) WithLexRules(rules ...token.LexRule) *Builder {
	for _, r := range rules {
		if r.Scan == nil {
			b.errs = append(b.errs, fmt.Errorf("lex rule %s has no scanner", r.Category))
			continue
		}
		b.lexRules = append(b.lexRules, r)
	}
	return b
}

// Build returns the constructed dialect. It fails on registration errors and
// on references to unregistered names. The builder may keep being used; the
// returned dialect does not see later changes.
func (b *Builder) Build() (*Dialect, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("dialect %s: %w", b.name, err)
	}
	d := &Dialect{
		Name:          b.name,
		Base:          b.base,
		entries:       make(map[string]grammar.Grammar, len(b.entries)),
		reservedWords: make(map[string]struct{}, len(b.reservedWords)),
		lexRules:      append([]token.LexRule(nil), b.lexRules...),
	}
	for k, v := range b.entries {
		d.entries[k] = v
	}
	for w := range b.reservedWords {
		d.reservedWords[w] = struct{}{}
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dialect %s: %w", b.name, err)
	}
	return d, nil
}

// MustBuild is like Build but panics on error. It is meant for
// package-level dialect variables.
func (b *Builder) MustBuild() *Dialect {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
