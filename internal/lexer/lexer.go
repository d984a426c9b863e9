// Package lexer tokenises a mangled symbol string one character at a time.
//
// The tokeniser performs no multi-character recognition of its own:
// identifiers, integers, and keyword-like codes are all assembled by the
// parser from the classified characters this package hands back. Its job
// is solely to classify bytes, track the 1-based position, and provide a
// one-character lookahead.
package lexer

import (
	"github.com/cwbudde/symdecode/internal/synerr"
	"github.com/cwbudde/symdecode/internal/token"
)

// Lexer presents a mangled symbol string as a sequence of classified
// one-character tokens.
type Lexer struct {
	input     string
	pos       int // 0-based byte index of the current token
	current   token.Token
	exhausted bool // true once the cursor has moved past the final byte
}

// New creates a Lexer over a non-empty mangled symbol string, priming the
// current token to the first character.
func New(input string) (*Lexer, error) {
	if input == "" {
		return nil, synerr.New(synerr.BadSymbolStart, "empty symbol", 0, token.Position{Index: 0}, input)
	}
	l := &Lexer{input: input}
	l.current = l.classify(0)
	return l, nil
}

func (l *Lexer) classify(pos int) token.Token {
	if pos >= len(l.input) {
		return token.Token{Class: token.Invalid, Pos: token.Position{Index: pos + 1}}
	}
	b := l.input[pos]
	return token.Token{Ch: b, Class: token.ClassOf(b), Pos: token.Position{Index: pos + 1}}
}

// Current returns the token at the current cursor position.
func (l *Lexer) Current() token.Token {
	return l.current
}

// Peek returns the token one position ahead without consuming it. At the
// end of the input it returns an EOF-classed token rather than raising an
// error — only Advance past the end is fatal.
func (l *Lexer) Peek() token.Token {
	next := l.pos + 1
	if next >= len(l.input) {
		return token.Token{Class: token.EOF, Pos: token.Position{Index: next + 1}}
	}
	return l.classify(next)
}

// Advance moves the cursor to the next character and returns it as the new
// Current(). Advancing past the end of the input is a fatal "premature end
// of symbol" error; encountering a byte outside the classification table is
// a fatal "invalid character" error.
func (l *Lexer) Advance() (token.Token, error) {
	l.pos++
	if l.pos >= len(l.input) {
		return token.Token{}, synerr.New(synerr.PrematureEndOfSymbol, "premature end of symbol",
			0, token.Position{Index: l.pos + 1}, l.input)
	}
	tok := l.classify(l.pos)
	if tok.Class == token.Invalid {
		return token.Token{}, synerr.New(synerr.InvalidCharacter, "invalid character",
			tok.Ch, tok.Pos, l.input)
	}
	l.current = tok
	return tok, nil
}

// AtEnd reports whether the cursor is on the last character of the input
// or past it. It stays true once the lexer becomes Exhausted, when the
// cursor sits at len(input) — callers that need to
// tell "sitting on the last byte, still unread" apart from "that byte has
// already been consumed, nothing left" must use Exhausted instead.
func (l *Lexer) AtEnd() bool {
	return l.pos >= len(l.input)-1
}

// AdvanceOptional moves the cursor past the current character, the way
// Advance does, except running off the end of the input marks the lexer
// Exhausted instead of raising a "premature end of symbol" error: many
// productions consume their own trailing terminator as the final byte of
// the whole mangled string, and that is not an error.
func (l *Lexer) AdvanceOptional() error {
	if l.AtEnd() {
		l.pos = len(l.input)
		l.current = token.Token{Class: token.EOF, Pos: token.Position{Index: l.pos + 1}}
		l.exhausted = true
		return nil
	}
	_, err := l.Advance()
	return err
}

// Exhausted reports whether the cursor has moved past the final byte of
// the input. Unlike AtEnd, which is also true while that final byte is
// still sitting there unconsumed, Exhausted only becomes true once an
// AdvanceOptional has actually consumed it.
func (l *Lexer) Exhausted() bool {
	return l.exhausted
}

// Symbol returns the full mangled string being tokenised, for error
// reporting.
func (l *Lexer) Symbol() string {
	return l.input
}

// Pos returns the position of the current token.
func (l *Lexer) Pos() token.Position {
	return l.current.Pos
}
