package token

// Leaf is the smallest classified unit of source text. Leaves are created
// by the lexer and never mutated afterwards.
type Leaf struct {
	Text     string
	Category Category
	Code     bool
	Span     Span
}

// NewLeaf builds a leaf whose code flag follows its category.
func NewLeaf(text string, cat Category, start, end Position) Leaf {
	return Leaf{
		Text:     text,
		Category: cat,
		Code:     cat.IsCode(),
		Span:     Span{Start: start, End: end},
	}
}

// Raw returns the exact source text of the leaf.
func (l *Leaf) Raw() string { return l.Text }

// IsCode reports whether the leaf takes part in matching.
func (l *Leaf) IsCode() bool { return l.Code }

// Start returns the position of the first byte.
func (l *Leaf) Start() Position { return l.Span.Start }

// End returns the position just past the last byte.
func (l *Leaf) End() Position { return l.Span.End }
