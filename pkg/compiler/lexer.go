package compiler

import (
	"strings"
	"unicode"
)

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line

	current strings.Builder // lexeme under construction
	start   int             // line the current lexeme began on
	tokens  []Token
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1}
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	return r
}

// flush closes the lexeme under construction, if any.
func (l *Lexer) flush() {
	if l.current.Len() == 0 {
		return
	}
	l.tokens = append(l.tokens, Token{Lexeme: l.current.String(), Line: l.start})
	l.current.Reset()
}

// Lex splits src into whitespace-delimited tokens in source order.
// It never fails: whether a lexeme is legal is decided when the parser
// classifies it.
func Lex(src string) []Token {
	l := newLexer(src)
	for l.pos < len(l.src) {
		r := l.advance()
		if unicode.IsSpace(r) {
			l.flush()
			// bumped after the flush so the closed token keeps its own line
			if r == '\n' {
				l.line++
			}
			continue
		}
		if l.current.Len() == 0 {
			l.start = l.line
		}
		l.current.WriteRune(r)
	}
	l.flush()
	return l.tokens
}
