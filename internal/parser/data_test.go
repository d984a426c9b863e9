package parser

import (
	"testing"

	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/token"
)

// TestDataSymbolVTableTargetKind6 checks spec §4.3.1's kind-6 vtable data
// symbol: an ordinary type/storage-class body followed by the optional
// qualified-name target it is "for".
func TestDataSymbolVTableTargetKind6(t *testing.T) {
	p := newTestParser(t, "6HAXyz@@")
	sym := ast.NewSymbol(token.Position{}, p.mangled, &ast.QualifiedName{Terminal: ast.NewIdentifier(token.Position{}, "var")})

	got, err := p.parseDataSymbol(sym, '6')
	if err != nil {
		t.Fatalf("parseDataSymbol: %v", err)
	}
	if got.Variable == nil {
		t.Fatal("Variable = nil, want an ordinary variable body")
	}
	if got.VTableTarget == nil {
		t.Fatal("VTableTarget = nil, want the trailing qualified name")
	}
	if got.VTableTarget.Terminal.(*ast.Identifier).Value != "Xyz" {
		t.Errorf("VTableTarget terminal = %q, want %q", got.VTableTarget.Terminal.(*ast.Identifier).Value, "Xyz")
	}
	if !p.lex.Exhausted() {
		t.Error("lexer not Exhausted() after consuming the trailing target")
	}
}

// TestDataSymbolKind6NoTarget checks that a kind-6 symbol with nothing
// following its storage class parses as an ordinary variable, with no
// target attached.
func TestDataSymbolKind6NoTarget(t *testing.T) {
	p := newTestParser(t, "6HA")
	sym := ast.NewSymbol(token.Position{}, p.mangled, &ast.QualifiedName{Terminal: ast.NewIdentifier(token.Position{}, "var")})

	got, err := p.parseDataSymbol(sym, '6')
	if err != nil {
		t.Fatalf("parseDataSymbol: %v", err)
	}
	if got.VTableTarget != nil {
		t.Errorf("VTableTarget = %v, want nil", got.VTableTarget)
	}
	if !p.lex.Exhausted() {
		t.Error("lexer not Exhausted() after the storage-class byte closed the input")
	}
}
