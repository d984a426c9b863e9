package parser

import (
	"testing"

	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/token"
)

// TestBackReferenceCap checks the ten-entry back-reference table cap: the
// eleventh registration is silently dropped rather than growing the table,
// and resolving an index at or beyond the table's size is a parse error.
func TestBackReferenceCap(t *testing.T) {
	p := newTestParser(t, "x")
	for i := 0; i < backrefCap+5; i++ {
		p.registerName(ast.NewIdentifier(token.Position{}, "n"))
	}
	if got := len(p.top().names); got != backrefCap {
		t.Fatalf("names table has %d entries, want cap %d", got, backrefCap)
	}
	if _, err := p.resolveName(backrefCap - 1); err != nil {
		t.Errorf("resolveName(%d) failed within cap: %v", backrefCap-1, err)
	}
	if _, err := p.resolveName(backrefCap); err == nil {
		t.Errorf("resolveName(%d) succeeded, want out-of-range error", backrefCap)
	}
	if _, err := p.resolveName(-1); err == nil {
		t.Error("resolveName(-1) succeeded, want out-of-range error")
	}
}
