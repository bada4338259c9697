// Package parser turns SQL text into a lossless segment tree.
//
// # Usage
//
//	d, ok := dialect.Get("ansi")
//	res, err := parser.ParseString(ctx, "SELECT a FROM t;", d)
//	if err != nil {
//	    // cancelled, or the dialect is broken
//	}
//	for _, p := range res.Problems {
//	    // spans kept as unparsable segments
//	}
//
// The input is split into statements at separator leaves. Each statement is
// bounded by the dialect's "StatementSegment" match grammar and then
// expanded recursively. A statement that cannot be structured is kept
// verbatim under an unparsable segment and the next statement is parsed as
// usual, so the tree always reproduces the input exactly.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/grammar"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Registry names and types the driver depends on.
const (
	StatementName = "StatementSegment"
	SeparatorName = "SemicolonSegment"
	FileType      = "file"
)

type config struct {
	maxDepth int
	logger   *slog.Logger
}

// Option configures a parse.
type Option func(*config)

// WithMaxDepth limits grammar recursion. Zero or less disables the limit.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Result is the outcome of a parse. Tree is never nil.
type Result struct {
	Tree      *grammar.Segment
	Problems  []grammar.Problem
	LexErrors []*LexError
}

// OK reports whether the input parsed without problems.
func (r *Result) OK() bool {
	return len(r.Problems) == 0 && len(r.LexErrors) == 0
}

// Errors returns lexical errors followed by one ParseError per problem.
func (r *Result) Errors() []error {
	errs := make([]error, 0, len(r.LexErrors)+len(r.Problems))
	for _, e := range r.LexErrors {
		errs = append(errs, e)
	}
	for _, p := range r.Problems {
		errs = append(errs, NewParseError(p))
	}
	return errs
}

// ParseString lexes sql and parses it with dialect d.
func ParseString(ctx context.Context, sql string, d *dialect.Dialect, opts ...Option) (*Result, error) {
	var rules []token.LexRule
	if d != nil {
		rules = d.LexRules()
	}
	leaves, lexErrs := TokenizeWithErrors(sql, rules...)
	res, err := Parse(ctx, leaves, d, opts...)
	if res != nil {
		res.LexErrors = lexErrs
	}
	return res, err
}

// Parse builds the segment tree for leaves. The tree references the leaves
// in place.
//
// Unparsable statements are not errors; they are listed in Result.Problems.
// The error return is reserved for a missing or broken dialect and for
// cancellation. On cancellation the partial tree is still returned, with
// the unparsed remainder kept under an unparsable segment.
func Parse(ctx context.Context, leaves []token.Leaf, d *dialect.Dialect, opts ...Option) (*Result, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config{maxDepth: grammar.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	stmt, ok := d.Lookup(StatementName)
	if !ok {
		return nil, fmt.Errorf("dialect %s: %w: %s", d.Name, grammar.ErrUnknownGrammar, StatementName)
	}
	sep, ok := d.Lookup(SeparatorName)
	if !ok {
		return nil, fmt.Errorf("dialect %s: %w: %s", d.Name, grammar.ErrUnknownGrammar, SeparatorName)
	}

	ctxOpts := []grammar.ContextOption{grammar.WithMaxDepth(cfg.maxDepth)}
	if cfg.logger != nil {
		ctxOpts = append(ctxOpts, grammar.WithLogger(cfg.logger))
	}
	pc := grammar.NewParseContext(ctx, d, ctxOpts...)

	elems := make([]grammar.Element, len(leaves))
	for i := range leaves {
		elems[i] = &leaves[i]
	}

	p := &fileParser{pc: pc, stmt: stmt, sep: sep, root: grammar.NewSegment(FileType, "FileSegment")}
	err := p.run(elems)

	res := &Result{Tree: p.root, Problems: pc.Problems()}
	pc.Logger().Debug("parsed",
		slog.String("dialect", d.Name),
		slog.Int("leaves", len(leaves)),
		slog.Int("statements", p.statements),
		slog.Int("problems", len(res.Problems)))
	if err != nil && ctx.Err() == nil {
		return nil, err
	}
	return res, err
}

type fileParser struct {
	pc         *grammar.ParseContext
	stmt, sep  grammar.Grammar
	root       *grammar.Segment
	statements int
}

func (p *fileParser) run(elems []grammar.Element) error {
	fileHasCode := false
	for _, e := range elems {
		if e.IsCode() {
			fileHasCode = true
			break
		}
	}

	pos := 0
	for pos < len(elems) {
		rest := elems[pos:]
		if err := p.pc.Context().Err(); err != nil {
			p.cancel(rest)
			return err
		}

		m, err := p.sep.Match(p.pc, rest)
		if err != nil {
			return p.fail(rest, err)
		}
		if m.OK() && m.Consumed > 0 {
			p.append(m.Elements...)
			pos += m.Consumed
			continue
		}

		// Non-code before a statement belongs to the file, unless the
		// file is nothing but non-code.
		if fileHasCode && !rest[0].IsCode() {
			n := 1
			for n < len(rest) && !rest[n].IsCode() {
				n++
			}
			p.append(rest[:n]...)
			pos += n
			continue
		}

		n, err := p.statement(rest)
		if err != nil {
			return err
		}
		pos += n
	}
	return nil
}

// statement parses one statement at the start of elems and returns the
// number of elements it covers.
func (p *fileParser) statement(elems []grammar.Element) (int, error) {
	m, err := p.stmt.Match(p.pc, elems)
	if errors.Is(err, grammar.ErrMaxDepth) {
		n, serr := p.untilSeparator(elems)
		if serr != nil {
			return 0, p.fail(elems, serr)
		}
		p.unparsable(elems[:n], grammar.KindMaxDepth, "statement")
		return n, nil
	}
	if err != nil {
		return 0, p.fail(elems, err)
	}
	if !m.OK() || m.Consumed == 0 {
		n, serr := p.untilSeparator(elems)
		if serr != nil {
			return 0, p.fail(elems, serr)
		}
		p.unparsable(elems[:n], grammar.KindUnparsable, "statement")
		return n, nil
	}

	p.append(m.Elements...)
	p.statements++
	for _, e := range m.Elements {
		if s, ok := e.(*grammar.Segment); ok {
			if err := grammar.Expand(p.pc, s); err != nil {
				// The statement stays in the tree, partly expanded.
				return 0, p.fail(elems[m.Consumed:], err)
			}
		}
	}
	return m.Consumed, nil
}

// untilSeparator returns the length of the run before the next separator,
// never less than one.
func (p *fileParser) untilSeparator(elems []grammar.Element) (int, error) {
	for i := range elems {
		if i == 0 {
			continue
		}
		m, err := p.sep.Match(p.pc, elems[i:])
		if err != nil {
			return 0, err
		}
		if m.OK() && m.Consumed > 0 {
			return i, nil
		}
	}
	return len(elems), nil
}

func (p *fileParser) append(elems ...grammar.Element) {
	p.root.Children = append(p.root.Children, elems...)
}

func (p *fileParser) unparsable(elems []grammar.Element, kind grammar.ProblemKind, segType string) {
	if len(elems) == 0 {
		return
	}
	u := grammar.NewUnparsable(elems)
	p.append(u)
	p.pc.Report(grammar.Problem{Kind: kind, SegmentType: segType, Span: u.Span(), Raw: u.Raw()})
}

// fail keeps rest in the tree when err is a cancellation and passes err on.
func (p *fileParser) fail(rest []grammar.Element, err error) error {
	if p.pc.Context().Err() != nil {
		p.cancel(rest)
		return p.pc.Context().Err()
	}
	return err
}

func (p *fileParser) cancel(rest []grammar.Element) {
	p.unparsable(rest, grammar.KindCancelled, FileType)
}
