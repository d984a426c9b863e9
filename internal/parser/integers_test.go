package parser

import (
	"testing"

	"github.com/cwbudde/symdecode/internal/lexer"
)

func newTestParser(t *testing.T, input string) *parser {
	t.Helper()
	lex, err := lexer.New(input)
	if err != nil {
		t.Fatalf("lexer.New(%q): %v", input, err)
	}
	p := &parser{lex: lex, mangled: input}
	p.pushScope()
	return p
}

// TestUnsignedIntegerCanonicalZero checks spec's canonical-zero invariant:
// 'A@', 'AA@', 'AAA@' must all decode to zero regardless of run length.
func TestUnsignedIntegerCanonicalZero(t *testing.T) {
	for _, input := range []string{"A@", "AA@", "AAA@"} {
		t.Run(input, func(t *testing.T) {
			p := newTestParser(t, input)
			v, err := p.parseUnsignedInteger()
			if err != nil {
				t.Fatalf("parseUnsignedInteger(%q): %v", input, err)
			}
			if v != 0 {
				t.Errorf("parseUnsignedInteger(%q) = %d, want 0", input, v)
			}
		})
	}
}

func TestUnsignedIntegerSingleDigit(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 1},
		{"5", 6},
		{"9", 10},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(t, tt.input)
			v, err := p.parseUnsignedInteger()
			if err != nil {
				t.Fatalf("parseUnsignedInteger(%q): %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("parseUnsignedInteger(%q) = %d, want %d", tt.input, v, tt.want)
			}
		})
	}
}

func TestUnsignedIntegerAlphaMagnitude(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"B@", 1},
		{"P@", 15},
		{"BA@", 16},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(t, tt.input)
			v, err := p.parseUnsignedInteger()
			if err != nil {
				t.Fatalf("parseUnsignedInteger(%q): %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("parseUnsignedInteger(%q) = %d, want %d", tt.input, v, tt.want)
			}
		})
	}
}

func TestSignedIntegerNegation(t *testing.T) {
	p := newTestParser(t, "?0")
	v, err := p.parseSignedInteger()
	if err != nil {
		t.Fatalf("parseSignedInteger: %v", err)
	}
	if v != -1 {
		t.Errorf("parseSignedInteger(%q) = %d, want -1", "?0", v)
	}
}

func TestUnsignedIntegerMalformed(t *testing.T) {
	p := newTestParser(t, "Z@")
	if _, err := p.parseUnsignedInteger(); err == nil {
		t.Error("parseUnsignedInteger(\"Z@\") succeeded, want error on out-of-range nibble")
	}
}
