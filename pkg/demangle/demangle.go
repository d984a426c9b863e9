// Package demangle is the public façade over the internal tokeniser,
// parser, and printer: parse a mangled symbol once, then query or render
// it as many times and in as many ways as a caller needs.
package demangle

import (
	"strings"

	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/parser"
	"github.com/cwbudde/symdecode/internal/printer"
)

// ParseOption configures how Parse interprets its input, in the same
// functional-option style as printer.DisplayOption.
type ParseOption func(*parser.Options)

// WithAllowNameFragments permits a bare qualified name with no following
// kind code or type information, returning a name-only Symbol instead of
// an error.
func WithAllowNameFragments(on bool) ParseOption {
	return func(o *parser.Options) { o.AllowNameFragments = on }
}

// WithReferenceToolEmulation turns on emulation of a documented reference
// -toolchain quirk in template integer-literal parsing.
func WithReferenceToolEmulation(on bool) ParseOption {
	return func(o *parser.Options) { o.EmulateReferenceBugs = on }
}

// Symbol wraps a parsed mangled name along with its original text.
type Symbol struct {
	sym *ast.Symbol
}

// Parse decodes a mangled symbol into a Symbol, or returns a *synerr.Error
// describing why it could not be decoded.
func Parse(mangled string, opts ...ParseOption) (*Symbol, error) {
	var o parser.Options
	for _, opt := range opts {
		opt(&o)
	}
	sym, err := parser.Parse(mangled, o)
	if err != nil {
		return nil, err
	}
	return &Symbol{sym: sym}, nil
}

// Mangled returns the original mangled text this Symbol was parsed from.
func (s *Symbol) Mangled() string { return s.sym.Mangled }

// QualifiedName returns the symbol's full printed name, scopes joined
// with "::".
func (s *Symbol) QualifiedName() string { return ast.ShortName(s.sym.Name) }

// Name returns the printed form of just the innermost name component.
func (s *Symbol) Name() string { return ast.ShortName(s.sym.Name.Terminal) }

// Scope returns the printed form of the enclosing scope, or "" for a
// symbol with no enclosing qualifier.
func (s *Symbol) Scope() string {
	qualifiers := s.sym.Name.Qualifiers
	if len(qualifiers) == 0 {
		return ""
	}
	parts := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		parts[len(qualifiers)-1-i] = ast.ShortName(q)
	}
	return strings.Join(parts, "::")
}

// IsNameOnly reports whether this Symbol was parsed under
// WithAllowNameFragments with no trailing kind code or type information.
func (s *Symbol) IsNameOnly() bool { return s.sym.NameOnly }

// Kind reports which symbol variant this is.
func (s *Symbol) Kind() ast.SymbolKind { return s.sym.Kind }

// IsFunction reports whether this Symbol decodes a function.
func (s *Symbol) IsFunction() bool { return s.sym.Kind == ast.SymbolFunction }

// ReturnType returns the function's return type, or (nil, false) for
// constructors, destructors, and non-function symbols.
func (s *Symbol) ReturnType() (ast.Type, bool) {
	if s.sym.Function == nil || s.sym.Function.ReturnType == nil {
		return nil, false
	}
	return s.sym.Function.ReturnType, true
}

// Parameters returns the function's parameter types in declaration order.
func (s *Symbol) Parameters() []ast.Type {
	if s.sym.Function == nil {
		return nil
	}
	return s.sym.Function.Params
}

// IsVarArgs reports whether the function's parameter list ends in "...".
func (s *Symbol) IsVarArgs() bool {
	return s.sym.Function != nil && s.sym.Function.IsVarArgs
}

// CallingConvention returns the function's calling convention.
func (s *Symbol) CallingConvention() (ast.CallingConvention, bool) {
	if s.sym.Function == nil {
		return 0, false
	}
	return s.sym.Function.Convention, true
}

// Protection returns the member-function's protection level.
func (s *Symbol) Protection() (ast.Protection, bool) {
	if s.sym.Function == nil {
		return 0, false
	}
	return s.sym.Function.Protection, true
}

// FunctionStorage returns the member-function's storage classification
// (instance/static/virtual/virtual-adjustor).
func (s *Symbol) FunctionStorage() (ast.FunctionStorage, bool) {
	if s.sym.Function == nil {
		return 0, false
	}
	return s.sym.Function.Storage, true
}

// IsVariable reports whether this Symbol decodes a data symbol.
func (s *Symbol) IsVariable() bool { return s.sym.Kind == ast.SymbolVariable }

// VariableType returns a data symbol's declared type.
func (s *Symbol) VariableType() (ast.Type, bool) {
	if s.sym.Variable == nil {
		return nil, false
	}
	return s.sym.Variable.Type, true
}

// IsRTTI reports whether this Symbol decodes one of the "_R0".."_R4" RTTI
// descriptor productions.
func (s *Symbol) IsRTTI() bool { return s.sym.Kind == ast.SymbolRTTI }

// Display renders the symbol as a C++ declaration under the given display
// options (every option defaults to off, matching spec §6).
func (s *Symbol) Display(opts ...printer.DisplayOption) string {
	return printer.New(printer.NewOptions(opts...)).Print(s.sym)
}

// DeepCopy returns an independent copy of this Symbol, sharing no AST
// node with the original.
func (s *Symbol) DeepCopy() *Symbol {
	return &Symbol{sym: ast.CloneSymbol(s.sym)}
}
