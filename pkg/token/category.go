// Package token defines the leaf values produced by the lexer and consumed by the grammar engine.
package token

// Category classifies a leaf. The lexer assigns it; the grammar only reads it.
type Category int32

// Built-in categories.
const (
	Code Category = iota
	Whitespace
	Newline
	Comment
	SingleQuote
	DoubleQuote
	NumericLiteral

	// maxBuiltin separates built-in categories from registered ones.
	maxBuiltin Category = 99
)

var categoryNames = map[Category]string{
	Code:           "code",
	Whitespace:     "whitespace",
	Newline:        "newline",
	Comment:        "comment",
	SingleQuote:    "single_quote",
	DoubleQuote:    "double_quote",
	NumericLiteral: "numeric_literal",
}

var builtinCategories = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		m[name] = c
	}
	return m
}()

// String returns the snake_case name of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	if name, ok := registeredName(c); ok {
		return name
	}
	return "unknown"
}

// IsCode reports whether leaves of this category take part in matching.
// Whitespace, newlines and comments are non-code.
func (c Category) IsCode() bool {
	switch c {
	case Whitespace, Newline, Comment:
		return false
	default:
		return true
	}
}

// LookupCategory resolves a category by name, built-in or registered.
func LookupCategory(name string) (Category, bool) {
	if c, ok := builtinCategories[name]; ok {
		return c, true
	}
	return lookupRegistered(name)
}
