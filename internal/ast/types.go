package ast

import (
	"strings"
)

// Type is any node that can appear as a parameter type, return type,
// pointee type, or template type argument.
type Type interface {
	Node
	typeNode()
}

// PrimitiveCode enumerates the built-in scalar types.
type PrimitiveCode int

const (
	PrimVoid PrimitiveCode = iota
	PrimSChar
	PrimChar
	PrimUChar
	PrimShort
	PrimUShort
	PrimInt
	PrimUInt
	PrimLong
	PrimULong
	PrimFloat
	PrimDouble
	PrimLongDouble
	PrimBool
	PrimWCharT
	PrimLongLong
	PrimULongLong
	PrimInt8
	PrimUInt8
	PrimInt16
	PrimUInt16
	PrimInt32
	PrimUInt32
	PrimInt64
	PrimUInt64
	PrimInt128
	PrimUInt128
	PrimEllipsis
)

var primitiveText = map[PrimitiveCode]string{
	PrimVoid: "void", PrimSChar: "signed char", PrimChar: "char", PrimUChar: "unsigned char",
	PrimShort: "short", PrimUShort: "unsigned short", PrimInt: "int", PrimUInt: "unsigned int",
	PrimLong: "long", PrimULong: "unsigned long", PrimFloat: "float", PrimDouble: "double",
	PrimLongDouble: "long double", PrimBool: "bool", PrimWCharT: "wchar_t",
	PrimLongLong: "__int64", PrimULongLong: "unsigned __int64",
	PrimInt8: "__int8", PrimUInt8: "unsigned __int8", PrimInt16: "__int16", PrimUInt16: "unsigned __int16",
	PrimInt32: "__int32", PrimUInt32: "unsigned __int32", PrimInt64: "__int64", PrimUInt64: "unsigned __int64",
	PrimInt128: "__int128", PrimUInt128: "unsigned __int128", PrimEllipsis: "...",
}

// PrimitiveType is a built-in scalar or the variadic ellipsis marker.
type PrimitiveType struct {
	base
	Code PrimitiveCode
}

func (*PrimitiveType) typeNode() {}
func (n *PrimitiveType) DisplayOn(p Printer, spacing Spacing) bool {
	text, ok := primitiveText[n.Code]
	if !ok {
		text = "int"
	}
	p.WriteSpace(spacing)
	p.WriteString(text)
	return true
}

// CompoundClass enumerates class/struct/union/coclass.
type CompoundClass int

const (
	ClassClass CompoundClass = iota
	ClassStruct
	ClassUnion
	ClassCoClass
	ClassCLRInterface
)

var compoundPrefix = map[CompoundClass]string{
	ClassClass: "class", ClassStruct: "struct", ClassUnion: "union",
	ClassCoClass: "coclass", ClassCLRInterface: "__interface",
}

// CompoundType is a named class/struct/union/coclass/interface type.
type CompoundType struct {
	base
	Class CompoundClass
	Name  *QualifiedName
}

func (*CompoundType) typeNode() {}
func (n *CompoundType) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	if !p.Flag(FlagSuppressCompoundTypeClass) {
		p.WriteString(compoundPrefix[n.Class])
		p.WriteString(" ")
	}
	n.Name.DisplayOn(p, SpacingNone)
	return true
}

// EnumType is a named enumeration, optionally qualified by its underlying
// type (the "enum X::Y" vs bare "enum X" distinction).
type EnumType struct {
	base
	Underlying PrimitiveCode
	HasUnderlying bool
	Name       *QualifiedName
}

func (*EnumType) typeNode() {}
func (n *EnumType) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("enum ")
	if n.HasUnderlying {
		p.WriteString(primitiveText[n.Underlying])
		p.WriteString(" ")
	}
	n.Name.DisplayOn(p, SpacingNone)
	return true
}

// PointerKind distinguishes ordinary, __based, and member pointers.
type PointerKind int

const (
	PointerPlain PointerKind = iota
	PointerBased
	PointerToMember
)

// PointerType is a "T*" declarator wrapper, including __based(x) and
// pointer-to-member forms. It implements Wrapper: printing composes with
// an inner Declarator so nested pointers-to-function read correctly.
type PointerType struct {
	base
	Kind       PointerKind
	Pointee    Type
	Modifiers  StorageModifier
	BasedOn    string     // PointerBased only
	MemberOf   *QualifiedName // PointerToMember only
}

func (*PointerType) typeNode() {}
func (n *PointerType) DisplayOn(p Printer, spacing Spacing) bool {
	return n.DisplayAround(p, spacing, func(Printer) bool { return false })
}

func (n *PointerType) DisplayAround(p Printer, spacing Spacing, inner Declarator) bool {
	var sb strings.Builder
	sb.WriteString("*")
	switch n.Kind {
	case PointerBased:
		sb.Reset()
		sb.WriteString("__based(")
		sb.WriteString(n.BasedOn)
		sb.WriteString(")*")
	case PointerToMember:
		sb.Reset()
		sb.WriteString(ShortName(n.MemberOf))
		sb.WriteString("::*")
	}
	if n.Modifiers.Has(ModPtr64) && !p.Flag(FlagSuppressPtr64) {
		sb.WriteString(" __ptr64")
	}
	if n.Modifiers.Has(ModUnaligned) {
		sb.WriteString(" __unaligned")
	}
	if n.Modifiers.Has(ModRestrict) {
		sb.WriteString(" __restrict")
	}
	decl := func(pr Printer) bool {
		pr.WriteString(sb.String())
		return inner(pr)
	}
	if wrapper, ok := n.Pointee.(Wrapper); ok {
		p.WriteSpace(spacing)
		return wrapper.DisplayAround(p, SpacingNone, decl)
	}
	p.WriteSpace(spacing)
	n.Pointee.DisplayOn(p, SpacingTrailing)
	return decl(p)
}

// ReferenceType is a "T&" declarator wrapper.
type ReferenceType struct {
	base
	Referent Type
	Modifiers StorageModifier
}

func (*ReferenceType) typeNode() {}
func (n *ReferenceType) DisplayOn(p Printer, spacing Spacing) bool {
	return n.DisplayAround(p, spacing, func(Printer) bool { return false })
}
func (n *ReferenceType) DisplayAround(p Printer, spacing Spacing, inner Declarator) bool {
	decl := func(pr Printer) bool {
		pr.WriteString("&")
		if n.Modifiers.Has(ModPtr64) && !pr.Flag(FlagSuppressPtr64) {
			pr.WriteString(" __ptr64")
		}
		return inner(pr)
	}
	if wrapper, ok := n.Referent.(Wrapper); ok {
		p.WriteSpace(spacing)
		return wrapper.DisplayAround(p, SpacingNone, decl)
	}
	p.WriteSpace(spacing)
	n.Referent.DisplayOn(p, SpacingTrailing)
	return decl(p)
}

// RValueReferenceType is a "T&&" declarator wrapper.
type RValueReferenceType struct {
	base
	Referent Type
	Modifiers StorageModifier
}

func (*RValueReferenceType) typeNode() {}
func (n *RValueReferenceType) DisplayOn(p Printer, spacing Spacing) bool {
	return n.DisplayAround(p, spacing, func(Printer) bool { return false })
}
func (n *RValueReferenceType) DisplayAround(p Printer, spacing Spacing, inner Declarator) bool {
	decl := func(pr Printer) bool {
		pr.WriteString("&&")
		return inner(pr)
	}
	if wrapper, ok := n.Referent.(Wrapper); ok {
		p.WriteSpace(spacing)
		return wrapper.DisplayAround(p, SpacingNone, decl)
	}
	p.WriteSpace(spacing)
	n.Referent.DisplayOn(p, SpacingTrailing)
	return decl(p)
}

// CallingConvention enumerates the function calling-convention codes.
type CallingConvention int

const (
	CallCdecl CallingConvention = iota
	CallPascal
	CallThiscall
	CallStdcall
	CallFastcall
	CallClrcall
	CallEabi
	CallVectorcall
	CallSwift
	CallSwiftAsync
)

var callingConventionText = map[CallingConvention]string{
	CallCdecl: "__cdecl", CallPascal: "__pascal", CallThiscall: "__thiscall",
	CallStdcall: "__stdcall", CallFastcall: "__fastcall", CallClrcall: "__clrcall",
	CallEabi: "__eabi", CallVectorcall: "__vectorcall", CallSwift: "__swift",
	CallSwiftAsync: "__swiftasync",
}

func (c CallingConvention) String() string { return callingConventionText[c] }

// FunctionType is a function signature appearing either as a symbol's own
// type or as a function-pointer pointee.
type FunctionType struct {
	base
	Convention   CallingConvention
	SaveRegisters bool
	ReturnType   Type
	Params       []Type
	IsVarArgs    bool
	Qualifiers   StorageModifier // const/volatile on member functions
}

func (*FunctionType) typeNode() {}
func (n *FunctionType) DisplayOn(p Printer, spacing Spacing) bool {
	return n.DisplayAround(p, spacing, func(Printer) bool { return false })
}

func (n *FunctionType) DisplayAround(p Printer, spacing Spacing, inner Declarator) bool {
	p.WriteSpace(spacing)
	if !p.Flag(FlagSuppressReturnType) && n.ReturnType != nil {
		n.ReturnType.DisplayOn(p, SpacingNone)
		p.WriteString(" ")
	}
	if !p.Flag(FlagSuppressCallingConvention) {
		p.WriteString(callingConventionText[n.Convention])
		p.WriteString(" ")
	}
	inner(p)
	p.WriteString("(")
	for i, param := range n.Params {
		if i > 0 {
			p.WriteString(",")
		}
		param.DisplayOn(p, SpacingNone)
	}
	if n.IsVarArgs {
		if len(n.Params) > 0 {
			p.WriteString(",")
		}
		p.WriteString("...")
	}
	if len(n.Params) == 0 && !n.IsVarArgs {
		p.WriteString("void")
	}
	p.WriteString(")")
	if n.Qualifiers.Has(ModConst) {
		p.WriteString("const")
	}
	if n.Qualifiers.Has(ModVolatile) {
		p.WriteString("volatile")
	}
	return true
}

// NullPtrType is the decltype(nullptr) primitive.
type NullPtrType struct{ base }

func (*NullPtrType) typeNode() {}
func (n *NullPtrType) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("std::nullptr_t")
	return true
}

// ArrayType is a fixed-extent array declarator ("T[N]"). No type code in
// the parser produces it.
type ArrayType struct {
	base
	Element Type
	Extents []int
}

func (*ArrayType) typeNode() {}
func (n *ArrayType) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	n.Element.DisplayOn(p, SpacingNone)
	for _, e := range n.Extents {
		p.WriteString("[")
		if e > 0 {
			var sb strings.Builder
			writeInt(&sb, e)
			p.WriteString(sb.String())
		}
		p.WriteString("]")
	}
	return true
}

func writeInt(sb *strings.Builder, v int) {
	if v == 0 {
		sb.WriteString("0")
		return
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	if neg {
		sb.WriteString("-")
	}
	sb.Write(digits)
}

// BackReferenceType is an unresolved digit back-reference; the parser
// replaces it with a deep copy of the referenced node before the type ever
// reaches the printer (see clone.go), so this type never appears in a
// finished AST. It exists only to give the parser something to patch
// in-place while back-reference tables are still being populated.
type BackReferenceType struct {
	base
	Index int
}

func (*BackReferenceType) typeNode() {}
func (n *BackReferenceType) DisplayOn(Printer, Spacing) bool {
	return false
}
