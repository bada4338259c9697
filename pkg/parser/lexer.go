package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// Lexer splits SQL input into classified leaves. It never drops input:
// whitespace, newlines and comments become non-code leaves, and bytes it
// does not recognise become single code leaves.
type Lexer struct {
	input string
	pos   int // offset of the current byte
	line  int // line of the current byte (1-based)
	col   int // column of the current rune (1-based)

	rules  []token.LexRule
	errors []*LexError
}

// NewLexer creates a new Lexer for the given input. Dialect lex rules are
// tried before the built-in classes.
func NewLexer(input string, rules ...token.LexRule) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
		rules: rules,
	}
}

// Errors returns problems found so far, such as unterminated strings.
// The offending text is still emitted as a leaf.
func (l *Lexer) Errors() []*LexError {
	return l.errors
}

func (l *Lexer) ch() byte {
	return l.peek(0)
}

// peek returns the byte n positions ahead without advancing.
func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// advance moves past the current byte. Columns count runes, so only the
// first byte of a multi-byte rune moves the column.
func (l *Lexer) advance() {
	if l.atEOF() {
		return
	}
	switch b := l.input[l.pos]; {
	case b == '\n':
		l.line++
		l.col = 1
	case utf8.RuneStart(b):
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// Next returns the next leaf, or false at end of input.
func (l *Lexer) Next() (token.Leaf, bool) {
	if l.atEOF() {
		return token.Leaf{}, false
	}

	start := l.currentPos()
	if cat, ok := l.scanRules(); ok {
		return token.NewLeaf(l.input[start.Offset:l.pos], cat, start, l.currentPos()), true
	}
	cat := token.Code

	switch c := l.ch(); {
	case c == '\n':
		l.advance()
		cat = token.Newline
	case isSpace(c):
		for !l.atEOF() && isSpace(l.ch()) {
			l.advance()
		}
		cat = token.Whitespace
	case c == '-' && l.peek(1) == '-':
		l.readLineComment()
		cat = token.Comment
	case c == '/' && l.peek(1) == '*':
		l.readBlockComment(start)
		cat = token.Comment
	case c == '\'':
		l.readQuoted('\'', start, ErrUnterminatedString)
		cat = token.SingleQuote
	case c == '"':
		l.readQuoted('"', start, ErrUnterminatedIdentifier)
		cat = token.DoubleQuote
	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		l.readNumber()
		cat = token.NumericLiteral
	case isIdentStart(l.input[l.pos:]):
		l.readIdentifier()
	default:
		l.readSymbol()
	}

	return token.NewLeaf(l.input[start.Offset:l.pos], cat, start, l.currentPos()), true
}

// scanRules advances over the first dialect rule that matches here.
func (l *Lexer) scanRules() (token.Category, bool) {
	rest := l.input[l.pos:]
	for _, r := range l.rules {
		if n := r.Scan(rest); n > 0 {
			l.advanceN(min(n, len(rest)))
			return r.Category, true
		}
	}
	return 0, false
}

// readLineComment reads up to, not including, the end of line.
func (l *Lexer) readLineComment() {
	for !l.atEOF() && l.ch() != '\n' {
		l.advance()
	}
}

func (l *Lexer) readBlockComment(start token.Position) {
	l.advanceN(2) // skip '/*'
	for !l.atEOF() {
		if l.ch() == '*' && l.peek(1) == '/' {
			l.advanceN(2)
			return
		}
		l.advance()
	}
	l.errors = append(l.errors, &LexError{Pos: start, Message: ErrUnterminatedComment})
}

// readQuoted reads a quoted run including both quotes. A doubled quote is
// an escaped quote.
func (l *Lexer) readQuoted(quote byte, start token.Position, unterminated string) {
	l.advance() // skip opening quote
	for !l.atEOF() {
		if l.ch() == quote {
			if l.peek(1) == quote {
				l.advanceN(2)
				continue
			}
			l.advance() // skip closing quote
			return
		}
		l.advance()
	}
	l.errors = append(l.errors, &LexError{Pos: start, Message: unterminated})
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
// Signs are left to the grammar.
func (l *Lexer) readNumber() {
	for isDigit(l.ch()) {
		l.advance()
	}

	if l.ch() == '.' {
		l.advance()
		for isDigit(l.ch()) {
			l.advance()
		}
	}

	// Exponent only when digits follow, so "1e" stays a number and a word.
	if l.ch() == 'e' || l.ch() == 'E' {
		n := 1
		if l.peek(1) == '+' || l.peek(1) == '-' {
			n = 2
		}
		if isDigit(l.peek(n)) {
			l.advanceN(n)
			for isDigit(l.ch()) {
				l.advance()
			}
		}
	}
}

// readIdentifier reads a bare word: letters, digits, underscores and dollars.
func (l *Lexer) readIdentifier() {
	for !l.atEOF() {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.advanceN(size)
	}
}

// symbols are the multi-byte operators kept as one leaf, longest first.
var symbols = []string{"<=", ">=", "<>", "!=", "||", "::"}

// readSymbol reads an operator or punctuation mark. Anything else is taken
// one rune at a time.
func (l *Lexer) readSymbol() {
	rest := l.input[l.pos:]
	for _, sym := range symbols {
		if len(rest) >= len(sym) && rest[:len(sym)] == sym {
			l.advanceN(len(sym))
			return
		}
	}
	_, size := utf8.DecodeRuneInString(rest)
	l.advanceN(size)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

// Tokenize returns all leaves of the input. Concatenating their text
// reproduces the input exactly.
func Tokenize(input string, rules ...token.LexRule) []token.Leaf {
	leaves, _ := TokenizeWithErrors(input, rules...)
	return leaves
}

// TokenizeWithErrors is Tokenize that also returns lexical problems.
func TokenizeWithErrors(input string, rules ...token.LexRule) ([]token.Leaf, []*LexError) {
	l := NewLexer(input, rules...)
	var leaves []token.Leaf
	for {
		leaf, ok := l.Next()
		if !ok {
			break
		}
		leaves = append(leaves, leaf)
	}
	return leaves, l.Errors()
}
