package grammar

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMaxDepth bounds Ref nesting when no limit is configured.
const DefaultMaxDepth = 255

// ParseContext carries the state shared by every match of one parse: the
// registry, the depth limit and the problems found while expanding.
// A ParseContext is not safe for concurrent use; the Resolver it wraps is.
type ParseContext struct {
	ctx      context.Context
	resolver Resolver
	logger   *slog.Logger
	maxDepth int
	depth    int
	problems []Problem

	brackets *bracketPair
}

// ContextOption configures a ParseContext.
type ContextOption func(*ParseContext)

// WithMaxDepth sets the Ref nesting limit. Zero or less disables it.
func WithMaxDepth(n int) ContextOption {
	return func(pc *ParseContext) {
		pc.maxDepth = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) ContextOption {
	return func(pc *ParseContext) {
		if l != nil {
			pc.logger = l
		}
	}
}

// NewParseContext returns a context resolving names through r.
func NewParseContext(ctx context.Context, r Resolver, opts ...ContextOption) *ParseContext {
	if ctx == nil {
		ctx = context.Background()
	}
	pc := &ParseContext{
		ctx:      ctx,
		resolver: r,
		logger:   slog.New(slog.DiscardHandler),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(pc)
	}
	return pc
}

// Context returns the context.Context the parse runs under.
func (pc *ParseContext) Context() context.Context { return pc.ctx }

// Resolver returns the registry names are resolved against.
func (pc *ParseContext) Resolver() Resolver { return pc.resolver }

// Logger returns the parse logger.
func (pc *ParseContext) Logger() *slog.Logger { return pc.logger }

// Problems returns the problems reported so far.
func (pc *ParseContext) Problems() []Problem { return pc.problems }

// Report records a problem.
func (pc *ParseContext) Report(p Problem) {
	pc.problems = append(pc.problems, p)
	pc.logger.Debug("unparsed span",
		slog.String("segment", p.SegmentType),
		slog.String("kind", p.Kind.String()),
		slog.String("at", p.Span.Start.String()))
}

func (pc *ParseContext) enter() error {
	if err := pc.ctx.Err(); err != nil {
		return err
	}
	pc.depth++
	if pc.maxDepth > 0 && pc.depth > pc.maxDepth {
		pc.depth--
		return fmt.Errorf("%w (%d)", ErrMaxDepth, pc.maxDepth)
	}
	return nil
}

func (pc *ParseContext) leave() {
	pc.depth--
}

func (pc *ParseContext) lookup(name string) (Grammar, error) {
	g, ok := pc.resolver.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGrammar, name)
	}
	return g, nil
}
