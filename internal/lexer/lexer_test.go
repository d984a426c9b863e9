package lexer

import "testing"

func TestAdvanceOptionalConsumesFinalByte(t *testing.T) {
	l, err := New("ab")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := l.Advance(); err != nil { // cursor now on 'b', the last byte
		t.Fatalf("Advance: %v", err)
	}
	if !l.AtEnd() {
		t.Fatal("AtEnd() = false on the last byte")
	}
	if l.Exhausted() {
		t.Fatal("Exhausted() = true before the last byte is consumed")
	}
	if err := l.AdvanceOptional(); err != nil {
		t.Fatalf("AdvanceOptional: %v", err)
	}
	if !l.Exhausted() {
		t.Error("Exhausted() = false after AdvanceOptional consumed the final byte")
	}
}

func TestAdvancePastEndIsFatal(t *testing.T) {
	l, err := New("a")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.AtEnd() {
		t.Fatal("AtEnd() = false on a single-byte input")
	}
	if _, err := l.Advance(); err == nil {
		t.Error("Advance() past the end succeeded, want an error")
	}
}

func TestAtEndStaysTrueOnceExhausted(t *testing.T) {
	l, err := New("a")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.AdvanceOptional(); err != nil {
		t.Fatalf("AdvanceOptional: %v", err)
	}
	if !l.AtEnd() || !l.Exhausted() {
		t.Error("expected both AtEnd() and Exhausted() true once the single byte is consumed")
	}
}
