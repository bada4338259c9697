package postgres

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlseg/pkg/token"
)

// DollarQuoted is the leaf category of $$...$$ and $tag$...$tag$ strings.
var DollarQuoted = token.Register("dollar_quoted")

// dollarQuoteRule teaches the lexer dollar quoting. Without it "$$" would
// lex as symbols and the body as ordinary SQL.
var dollarQuoteRule = token.LexRule{Category: DollarQuoted, Scan: scanDollarQuoted}

// scanDollarQuoted returns the length of a dollar-quoted string at the
// start of src. The tag follows identifier rules, so "$1" is not a quote.
// An unterminated quote is left to the built-in lexer.
func scanDollarQuoted(src string) int {
	if !strings.HasPrefix(src, "$") {
		return 0
	}
	end := strings.IndexByte(src[1:], '$')
	if end < 0 {
		return 0
	}
	tag := src[1 : end+1]
	if !validTag(tag) {
		return 0
	}
	delim := src[:end+2]
	body := strings.Index(src[len(delim):], delim)
	if body < 0 {
		return 0
	}
	return 2*len(delim) + body
}

func validTag(tag string) bool {
	for i, r := range tag {
		if r == utf8.RuneError {
			return false
		}
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
