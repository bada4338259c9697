// Package ast provides parse tree traversal utilities for lint rules.
package ast

import (
	"unicode"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// WalkLeaves calls fn for every leaf in source order, along with the leaf
// that follows it. next is nil for the last leaf.
func WalkLeaves(tree *grammar.Segment, fn func(leaf, next *token.Leaf)) {
	if tree == nil {
		return
	}
	leaves := tree.Leaves()
	for i, l := range leaves {
		var next *token.Leaf
		if i+1 < len(leaves) {
			next = leaves[i+1]
		}
		fn(l, next)
	}
}

// Leaf returns the leaf of a segment that wraps exactly one.
func Leaf(s *grammar.Segment) (*token.Leaf, bool) {
	if s == nil || len(s.Children) != 1 {
		return nil, false
	}
	l, ok := s.Children[0].(*token.Leaf)
	return l, ok
}

// CollectWords returns single-leaf segments of the given types whose text
// contains a letter, in source order. Symbols such as "=" are skipped.
func CollectWords(tree *grammar.Segment, types ...string) []*grammar.Segment {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	var out []*grammar.Segment
	walk(tree, func(s *grammar.Segment) {
		if !want[s.Type] {
			return
		}
		if l, ok := Leaf(s); ok && hasLetter(l.Text) {
			out = append(out, s)
		}
	})
	return out
}

// CollectNamed returns segments with the given name, in source order.
func CollectNamed(tree *grammar.Segment, name string) []*grammar.Segment {
	var out []*grammar.Segment
	walk(tree, func(s *grammar.Segment) {
		if s.Name == name {
			out = append(out, s)
		}
	})
	return out
}

// HasKeyword reports whether a direct child of s is the keyword word.
func HasKeyword(s *grammar.Segment, word string) (*grammar.Segment, bool) {
	for _, c := range s.Segments() {
		if c.Type == "keyword" && c.Name == word {
			return c, true
		}
	}
	return nil, false
}

func walk(tree *grammar.Segment, fn func(*grammar.Segment)) {
	if tree == nil {
		return
	}
	tree.Walk(func(s *grammar.Segment, _ int) bool {
		fn(s)
		return true
	})
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
