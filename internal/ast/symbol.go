package ast

import "github.com/cwbudde/symdecode/internal/token"

// SymbolKind distinguishes what a decoded Symbol represents.
type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolVariable
	SymbolRTTI
	SymbolNameFragment // AllowNameFragments: a bare qualified name, no type info
)

// FunctionSignature carries everything a function symbol encodes beyond its
// qualified name: calling convention, storage binding, parameter types, and
// the this-qualifiers of a member function.
type FunctionSignature struct {
	Convention    CallingConvention
	SaveRegisters bool
	IsMember      bool // false for Y/Z-coded global functions
	Storage       FunctionStorage
	Protection    Protection
	IsStatic      bool
	ThisModifiers StorageModifier // const/volatile/__ptr64 on the implicit this
	ReturnType    Type            // nil for constructors/destructors
	Params        []Type
	IsVarArgs     bool
	VBTableOffset int // not set by the parser; stays zero
}

// VariableInfo carries everything a data symbol encodes beyond its
// qualified name.
type VariableInfo struct {
	Type    Type
	Storage DataStorageClass
}

// RTTIInfo distinguishes which of the five RTTI descriptor productions
// (_R0 type descriptor through _R4 complete object locator) produced this
// symbol, along with the Base Class Descriptor fields the _R1 production
// carries.
type RTTIInfo struct {
	Code            int // 0-4
	MDisp           int
	PDisp           int
	VDisp           int
	Attributes      int
}

// Symbol is the root decoded node: the mangled string's qualified name
// plus whichever of Function, Variable, or RTTI applies to its Kind.
type Symbol struct {
	base
	Mangled      string
	Name         *QualifiedName
	Kind         SymbolKind
	Function     *FunctionSignature
	Variable     *VariableInfo
	RTTI         *RTTIInfo
	VTableTarget *QualifiedName // set on a kind-6 vtable data symbol's optional target
	NameOnly     bool           // true when parsed under AllowNameFragments with no trailing type info
}

func NewSymbol(pos token.Position, mangled string, name *QualifiedName) *Symbol {
	return &Symbol{base: base{pos}, Mangled: mangled, Name: name}
}

func (s *Symbol) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	if s.NameOnly || p.Flag(FlagNameOnly) {
		s.Name.DisplayOn(p, SpacingNone)
		return true
	}
	switch s.Kind {
	case SymbolFunction:
		s.displayFunction(p)
	case SymbolVariable:
		s.displayVariable(p)
	case SymbolRTTI:
		s.Name.DisplayOn(p, SpacingNone)
	default:
		s.Name.DisplayOn(p, SpacingNone)
	}
	return true
}

func (s *Symbol) displayFunction(p Printer) {
	fn := s.Function
	if fn == nil {
		s.Name.DisplayOn(p, SpacingNone)
		return
	}
	if fn.IsMember {
		if !p.Flag(FlagSuppressMemberAccess) {
			p.WriteString(fn.Protection.String())
			p.WriteString(": ")
		}
		if fn.Storage == FunctionStatic && !p.Flag(FlagSuppressMemberStorageClass) {
			p.WriteString("static ")
		}
		if fn.Storage == FunctionVirtual || fn.Storage == FunctionVirtualAdjustor {
			if !p.Flag(FlagSuppressMemberStorageClass) {
				p.WriteString("virtual ")
			}
		}
	}
	if fn.ReturnType != nil && !p.Flag(FlagSuppressReturnType) {
		fn.ReturnType.DisplayOn(p, SpacingNone)
		p.WriteString(" ")
	}
	if !p.Flag(FlagSuppressCallingConvention) {
		p.WriteString(callingConventionText[fn.Convention])
		p.WriteString(" ")
	}
	s.Name.DisplayOn(p, SpacingNone)
	p.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.WriteString(",")
		}
		param.DisplayOn(p, SpacingNone)
	}
	if fn.IsVarArgs {
		if len(fn.Params) > 0 {
			p.WriteString(",")
		}
		p.WriteString("...")
	}
	if len(fn.Params) == 0 && !fn.IsVarArgs {
		p.WriteString("void")
	}
	p.WriteString(")")
	if fn.ThisModifiers.Has(ModConst) {
		p.WriteString("const")
	}
	if fn.ThisModifiers.Has(ModVolatile) {
		p.WriteString("volatile")
	}
}

func (s *Symbol) displayVariable(p Printer) {
	v := s.Variable
	if v == nil {
		s.Name.DisplayOn(p, SpacingNone)
		return
	}
	if v.Storage.IsMember && !p.Flag(FlagSuppressMemberAccess) {
		p.WriteString(v.Storage.Protection.String())
		p.WriteString(": ")
	}
	if v.Storage.IsStatic && !p.Flag(FlagSuppressMemberStorageClass) {
		p.WriteString("static ")
	}
	if v.Type != nil {
		v.Type.DisplayOn(p, SpacingNone)
	}
	p.WriteString(" ")
	s.Name.DisplayOn(p, SpacingNone)
	if v.Storage.BasedOn != "" {
		p.WriteString(" __based(")
		p.WriteString(v.Storage.BasedOn)
		p.WriteString(")")
	}
	if s.VTableTarget != nil {
		p.WriteString("{for `")
		s.VTableTarget.DisplayOn(p, SpacingNone)
		p.WriteString("'}")
	}
}
