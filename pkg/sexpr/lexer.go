// Package sexpr is the optional textual front end spec.md §1/§6 permits
// but does not require: a small reader for a parenthesized surface syntax
// that produces the core term.Term algebra. It is not part of the
// evaluator's contract.
//
// Grounded on the reference evaluator's lexer (TokenType enum + keyword
// table) and parser (recursive descent over tokens), both cut down
// drastically: this surface syntax only needs to produce spec.md §3's
// term variants, not a full statement/expression/header language.
package sexpr

import (
	"fmt"
	"strconv"

	"github.com/tcore-lang/tcore/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	TokLParen TokenType = iota
	TokRParen
	TokInt
	TokBool
	TokIdent
	TokEOF
)

// Token is a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

type lexer struct {
	src   string
	pos   int
	diags []*diagnostics.Diagnostic
}

// Tokenize scans src into a flat token list terminated by TokEOF.
func Tokenize(src string) ([]Token, []*diagnostics.Diagnostic) {
	l := &lexer{src: src}
	var toks []Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Type == TokEOF {
			break
		}
	}
	return toks, l.diags
}

func (l *lexer) next() Token {
	l.skipAtmosphere()
	if l.pos >= len(l.src) {
		return Token{Type: TokEOF, Pos: l.pos}
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return Token{Type: TokLParen, Value: "(", Pos: start}
	case c == ')':
		l.pos++
		return Token{Type: TokRParen, Value: ")", Pos: start}
	case c == '#':
		return l.readBool(start)
	case isDigit(c) || ((c == '-' || c == '+') && l.hasDigitNext()):
		return l.readInt(start)
	default:
		return l.readIdent(start)
	}
}

func (l *lexer) hasDigitNext() bool {
	return l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])
}

func (l *lexer) skipAtmosphere() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) readBool(start int) Token {
	if l.pos+1 < len(l.src) && (l.src[l.pos+1] == 't' || l.src[l.pos+1] == 'f') {
		val := l.src[l.pos : l.pos+2]
		l.pos += 2
		return Token{Type: TokBool, Value: val, Pos: start}
	}
	l.pos++
	l.diags = append(l.diags, diagnostics.New(diagnostics.Lex,
		fmt.Sprintf("unexpected '#' at position %d, want #t or #f", start), nil))
	return l.next()
}

func (l *lexer) readInt(start int) Token {
	l.pos++
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Type: TokInt, Value: l.src[start:l.pos], Pos: start}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDelim(c byte) bool {
	return c == '(' || c == ')' || c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ';'
}

func (l *lexer) readIdent(start int) Token {
	for l.pos < len(l.src) && !isDelim(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		l.diags = append(l.diags, diagnostics.New(diagnostics.Lex,
			fmt.Sprintf("unexpected character %q at position %d", l.src[start], start), nil))
		l.pos++
	}
	return Token{Type: TokIdent, Value: l.src[start:l.pos], Pos: start}
}

// parseInt is a small wrapper so the parser need not import strconv
// itself; kept here because it is purely a lexical concern (digit-only
// tokens never overflow the lexer's own rules, only int64's range).
func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
