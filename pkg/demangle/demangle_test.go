package demangle

import (
	"os"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/printer"
)

// TestCorpusFixture decodes the on-disk symbol/display fixture and checks
// every entry, read with gjson rather than encoding/json; each failure
// message names the offending entry's array index.
func TestCorpusFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/corpus.json")
	if err != nil {
		t.Fatalf("reading corpus fixture: %v", err)
	}
	entries := gjson.ParseBytes(data).Array()
	if len(entries) == 0 {
		t.Fatal("corpus fixture has no entries")
	}
	for i, entry := range entries {
		mangled := entry.Get("mangled").String()
		want := entry.Get("display").String()
		t.Run(mangled, func(t *testing.T) {
			sym, err := Parse(mangled)
			if err != nil {
				t.Fatalf("corpus[%d] Parse(%q): %v", i, mangled, err)
			}
			if got := sym.Display(); got != want {
				t.Errorf("corpus[%d] Parse(%q).Display() = %q, want %q", i, mangled, got, want)
			}
		})
	}
}

// TestScenarios exercises the literal scenarios enumerated for the decoder:
// input mangled symbol, display() with emulation off.
func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
		want    string
	}{
		{"global variable", `?var@@3NA`, "double var"},
		{"member constructor", `??0Abc@@QAE@H@Z`, "public: __thiscall Abc::Abc(int)"},
		{"global function", `?wibble@@YAHH@Z`, "int __cdecl wibble(int)"},
		{"template class variable", `?X@@3V?$TClass@D$0?0@@A`, "class TClass<char,-1> X"},
		{"nullptr_t function", `?f1@@YA$$T$$T@Z`, "std::nullptr_t __cdecl f1(std::nullptr_t)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := Parse(tt.mangled)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.mangled, err)
			}
			if got := sym.Display(); got != tt.want {
				t.Errorf("Parse(%q).Display() = %q, want %q", tt.mangled, got, tt.want)
			}
		})
	}
}

func TestScenarioCompoundTypeClassSuppression(t *testing.T) {
	const mangled = `?a@@3VAbc@Ns@@A`
	sym, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse(%q): %v", mangled, err)
	}
	if got, want := sym.Display(), "class Ns::Abc a"; got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
	if got, want := sym.Display(printer.WithSuppressCompoundTypeClass(true)), "Ns::Abc a"; got != want {
		t.Errorf("Display(suppressed) = %q, want %q", got, want)
	}
}

func TestScenarioNonsenseAtEnd(t *testing.T) {
	if _, err := Parse(`?var@@3NAX`); err == nil {
		t.Error("Parse succeeded, want nonsense-at-end error")
	}
}

func TestScenarioBadSymbolStart(t *testing.T) {
	if _, err := Parse("x"); err == nil {
		t.Error("Parse(\"x\") succeeded, want BadSymbolStart error")
	}
}

func TestScenarioRTTIDescriptor(t *testing.T) {
	const mangled = `??_R0?AUAbc@@@8`
	sym, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse(%q): %v", mangled, err)
	}
	if !sym.IsRTTI() {
		t.Errorf("IsRTTI() = false, want true")
	}
}

func TestScenarioConstructorIsNotOperator(t *testing.T) {
	const mangled = `??0Abc@@QAE@H@Z`
	sym, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse(%q): %v", mangled, err)
	}
	if !sym.IsFunction() {
		t.Fatalf("IsFunction() = false, want true")
	}
	if _, ok := sym.sym.Name.Terminal.(*ast.Constructor); !ok {
		t.Errorf("terminal name is %T, want *ast.Constructor", sym.sym.Name.Terminal)
	}
	if conv, ok := sym.CallingConvention(); !ok {
		t.Error("CallingConvention() missing for member function")
	} else if conv.String() != "__thiscall" {
		t.Errorf("CallingConvention() = %q, want __thiscall", conv.String())
	}
	if _, ok := sym.ReturnType(); ok {
		t.Error("ReturnType() present for a constructor, want none")
	}
}

func TestScenarioGlobalFunctionParameters(t *testing.T) {
	const mangled = `?wibble@@YAHH@Z`
	sym, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse(%q): %v", mangled, err)
	}
	params := sym.Parameters()
	if len(params) != 1 {
		t.Fatalf("Parameters() has %d entries, want 1", len(params))
	}
	ret, ok := sym.ReturnType()
	if !ok {
		t.Fatal("ReturnType() missing for a global function")
	}
	if printer.Print(ret) != "int" {
		t.Errorf("ReturnType display = %q, want %q", printer.Print(ret), "int")
	}
}

func TestScenarioNameAndScope(t *testing.T) {
	const mangled = `?id0@id1@@YA?AUid2@1@U21@Vid3@1@V3id4@@V01@Vid5@4@PAVid6@4@AAU21@Vid9@id8@id7@@AAPAV789@W4id10@89@PAW4id10@89@Tid11@89@PATid11@89@V64@4@Z`
	sym, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse(%q): %v", mangled, err)
	}
	if got, want := sym.Name(), "id0"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if got, want := sym.Scope(), "id1"; got != want {
		t.Errorf("Scope() = %q, want %q", got, want)
	}
	if !sym.IsFunction() {
		t.Error("IsFunction() = false, want true")
	}
	if n := len(sym.Parameters()); n < 11 {
		t.Errorf("Parameters() has %d entries, want at least 11", n)
	}
}

// TestDeepCopyRendersIdentically is the universal "deep_copy(node).display
// (opts) == node.display(opts)" invariant, exercised at the Symbol level.
func TestDeepCopyRendersIdentically(t *testing.T) {
	mangled := []string{
		`?var@@3NA`,
		`??0Abc@@QAE@H@Z`,
		`?wibble@@YAHH@Z`,
		`?X@@3V?$TClass@D$0?0@@A`,
		`?f1@@YA$$T$$T@Z`,
	}
	for _, m := range mangled {
		t.Run(m, func(t *testing.T) {
			sym, err := Parse(m)
			if err != nil {
				t.Fatalf("Parse(%q): %v", m, err)
			}
			copy := sym.DeepCopy()
			if got, want := copy.Display(), sym.Display(); got != want {
				t.Errorf("DeepCopy().Display() = %q, want %q", got, want)
			}
		})
	}
}

// TestParseIsDeterministic exercises "parse(s) is deterministic and
// idempotent with respect to repeated calls".
func TestParseIsDeterministic(t *testing.T) {
	const mangled = `??0Abc@@QAE@H@Z`
	first, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse(mangled)
	if err != nil {
		t.Fatalf("Parse (second call): %v", err)
	}
	if first.Display() != second.Display() {
		t.Errorf("Parse(%q) not idempotent: %q != %q", mangled, first.Display(), second.Display())
	}
	if first.Mangled() != mangled {
		t.Errorf("Mangled() = %q, want %q", first.Mangled(), mangled)
	}
}

func TestReferenceToolEmulationOptedOutByDefault(t *testing.T) {
	// A 'Q' in the magnitude position of a "$0" template integer literal is
	// only ever reinterpreted as a placeholder when emulation is requested;
	// absent that flag it is not a valid magnitude nibble and is rejected.
	// With the flag explicitly off, an ordinary literal decodes as usual.
	const mangled = `?X@@3V?$TClass@D$0?0@@A`
	sym, err := Parse(mangled, WithReferenceToolEmulation(false))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := sym.Display(), "class TClass<char,-1> X"; got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}
