// Package format renders parse trees for people and tools.
//
// Text output is an indented outline with one line per segment or leaf,
// prefixed by its line and column. YAML and JSON encode the same tree as
// nested Node values.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	Text Format = "text"
	YAML Format = "yaml"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a case-insensitive format name. The empty string
// means Text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", Text:
		return Text, nil
	case YAML, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Option configures rendering.
type Option func(*options)

type options struct {
	codeOnly bool
}

// WithCodeOnly omits whitespace, newlines and comments, along with
// segments made only of them.
func WithCodeOnly() Option {
	return func(o *options) { o.codeOnly = true }
}

// Node is the serialisable view of a segment or a leaf.
type Node struct {
	Type     string  `json:"type" yaml:"type"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Pos      string  `json:"pos" yaml:"pos"`
	Raw      string  `json:"raw,omitempty" yaml:"raw,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToNode converts a tree. Segments wrapping a single leaf become one Node
// carrying the leaf's text.
func ToNode(s *grammar.Segment, opts ...Option) *Node {
	o := buildOptions(opts)
	return toNode(s, o)
}

func toNode(s *grammar.Segment, o options) *Node {
	n := &Node{Type: s.Type, Name: s.Name, Pos: s.Start().String()}
	if leaf, ok := singleLeaf(s); ok {
		n.Raw = leaf.Raw()
		return n
	}
	for _, c := range s.Children {
		switch e := c.(type) {
		case *grammar.Segment:
			if o.codeOnly && !e.IsCode() {
				continue
			}
			n.Children = append(n.Children, toNode(e, o))
		case *token.Leaf:
			if o.codeOnly && !e.IsCode() {
				continue
			}
			n.Children = append(n.Children, &Node{
				Type: e.Category.String(),
				Pos:  e.Start().String(),
				Raw:  e.Raw(),
			})
		}
	}
	return n
}

// Write renders tree to w in the given format.
func Write(w io.Writer, tree *grammar.Segment, f Format, opts ...Option) error {
	o := buildOptions(opts)
	switch f {
	case Text, "":
		p := newPrinter(o.codeOnly)
		p.segment(tree)
		_, err := io.WriteString(w, p.String())
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toNode(tree, o)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toNode(tree, o)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// String renders tree as text.
func String(tree *grammar.Segment, opts ...Option) string {
	p := newPrinter(buildOptions(opts).codeOnly)
	p.segment(tree)
	return p.String()
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
