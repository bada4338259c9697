package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

const (
	indentSize = 4
	// rawColumn is where quoted leaf text starts, counted from the bar.
	rawColumn = 40
)

// printer renders a segment tree one element per line, indented by depth.
type printer struct {
	output   *bytes.Buffer
	depth    int
	codeOnly bool
}

func newPrinter(codeOnly bool) *printer {
	return &printer{
		output:   &bytes.Buffer{},
		codeOnly: codeOnly,
	}
}

// String returns the rendered tree.
func (p *printer) String() string {
	return p.output.String()
}

func (p *printer) write(s string) {
	p.output.WriteString(s)
}

func (p *printer) writeln() {
	p.output.WriteByte('\n')
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// line writes "[L:  1, P:  1] |    label:" followed by the quoted raw text
// when raw is non-empty.
func (p *printer) line(pos token.Position, label, raw string) {
	prefix := fmt.Sprintf("[L:%3d, P:%3d] |", pos.Line, pos.Column)
	head := strings.Repeat(" ", p.depth*indentSize) + label + ":"
	p.write(prefix)
	p.write(head)
	if raw != "" {
		if pad := rawColumn - len(head); pad > 0 {
			p.write(strings.Repeat(" ", pad))
		} else {
			p.write(" ")
		}
		p.write(fmt.Sprintf("%q", raw))
	}
	p.writeln()
}

func (p *printer) segment(s *grammar.Segment) {
	// The root always lists its children, even a lone leaf.
	if p.depth > 0 {
		if leaf, ok := singleLeaf(s); ok {
			p.line(s.Start(), s.Type, leaf.Raw())
			return
		}
	}
	p.line(s.Start(), s.Type, "")
	p.indent()
	for _, c := range s.Children {
		switch n := c.(type) {
		case *grammar.Segment:
			if p.codeOnly && !n.IsCode() {
				continue
			}
			p.segment(n)
		case *token.Leaf:
			p.leaf(n)
		}
	}
	p.dedent()
}

func (p *printer) leaf(l *token.Leaf) {
	if p.codeOnly && !l.IsCode() {
		return
	}
	p.line(l.Start(), l.Category.String(), l.Raw())
}

// singleLeaf reports whether s wraps exactly one leaf, as keyword and
// symbol segments do.
func singleLeaf(s *grammar.Segment) (*token.Leaf, bool) {
	if len(s.Children) != 1 {
		return nil, false
	}
	l, ok := s.Children[0].(*token.Leaf)
	return l, ok
}
