package printer_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/printer"
	"github.com/cwbudde/symdecode/internal/token"
)

var zeroPos = token.Position{}

func variableSymbol() *ast.Symbol {
	name := &ast.QualifiedName{Terminal: ast.NewIdentifier(zeroPos, "var")}
	sym := ast.NewSymbol(zeroPos, `?var@@3NA`, name)
	sym.Kind = ast.SymbolVariable
	sym.Variable = &ast.VariableInfo{Type: &ast.PrimitiveType{Code: ast.PrimDouble}}
	return sym
}

func TestPrintVariableSnapshot(t *testing.T) {
	out := printer.Print(variableSymbol())
	snaps.MatchSnapshot(t, "variable_symbol", out)
}

func TestPrintSuppressesNothingByDefault(t *testing.T) {
	if got, want := printer.Print(variableSymbol()), "double var"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}

func TestBuilderDecodesHighAnsi(t *testing.T) {
	b := printer.New(printer.NewOptions())
	name := &ast.QualifiedName{Terminal: ast.NewIdentifier(zeroPos, "\x80bc")}
	sym := ast.NewSymbol(zeroPos, "", name)
	sym.NameOnly = true
	if got, want := b.Print(sym), "€bc"; got != want {
		t.Errorf("Print() = %q, want %q (cp1252 0x80 decodes to the euro sign)", got, want)
	}
}

func TestBuilderPassesThroughASCII(t *testing.T) {
	b := printer.New(printer.NewOptions())
	name := &ast.QualifiedName{Terminal: ast.NewIdentifier(zeroPos, "Abc")}
	sym := ast.NewSymbol(zeroPos, "", name)
	sym.NameOnly = true
	if got, want := b.Print(sym), "Abc"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
