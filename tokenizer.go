package minisql

import (
	"fmt"
	"strings"
)

// TokenKind classifies a lexical token.
type TokenKind string

const (
	TEnd     TokenKind = "end"
	TPunct   TokenKind = "punct"
	TKeyword TokenKind = "keyword"
	TIdent   TokenKind = "identifier"
	TNumber  TokenKind = "number"
	TString  TokenKind = "string"
	TOp      TokenKind = "operator"
)

// Token is one lexical unit of a query.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("[%s %s]", t.Kind, t.Text)
}

// BY is deliberately missing here: the lexer leaves it a plain identifier
// and the parser treats it as optional filler after GROUP and ORDER.
var keywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "ON",
	"GROUP", "ORDER", "LIMIT",
	"AND", "OR", "ASC", "DESC",
}

const (
	punct      = ",*()"
	opChars    = "=<>!"
	digitChars = "0123456789"
	alphaChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	wordChars  = alphaChars + digitChars + "."
)

// Tokenize scans query text into a flat token sequence. The whole input is
// upper-cased before scanning, quoted string literals included, so every
// token comes out case-folded. Characters that match no rule are dropped;
// tokenization never fails.
func Tokenize(query string) []Token {
	b := newParsebuf(strings.ToUpper(query))
	var tokens []Token
	for {
		b.space()
		if !b.more() {
			break
		}
		c := b.peek()
		switch {
		case strings.Contains(punct, c):
			tokens = append(tokens, Token{TPunct, b.get()})
		case c == "'":
			// No escape handling: the literal ends at the next quote.
			b.get()
			s := b.readUntil("'")
			b.get()
			tokens = append(tokens, Token{TString, s})
		case strings.Contains(digitChars, c):
			tokens = append(tokens, Token{TNumber, b.set(digitChars + ".")})
		case strings.Contains(alphaChars, c):
			word := b.set(wordChars)
			kind := TIdent
			for _, kw := range keywords {
				if word == kw {
					kind = TKeyword
					break
				}
			}
			tokens = append(tokens, Token{kind, word})
		case strings.Contains(opChars, c):
			tokens = append(tokens, Token{TOp, b.set(opChars)})
		default:
			b.get()
		}
	}
	return tokens
}

// readUntil consumes characters up to, not including, the stop character.
func (b *parsebuf) readUntil(stop string) string {
	s := strings.Builder{}
	for b.more() && b.peek() != stop {
		s.WriteString(b.get())
	}
	return s.String()
}
