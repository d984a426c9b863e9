package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/symdecode/internal/token"
)

// Name is any node that can appear as a qualified-name terminal or
// qualifier: plain identifiers, anonymous namespaces, lexical frames,
// templated identifiers, operator names, constructors/destructors,
// compiler-generated special names, RTTI descriptor names, nested-symbol
// scope qualifiers, and template-parameter placeholders.
type Name interface {
	Node
	nameNode()
}

// base carries the one field every name shares: its originating position.
type base struct {
	pos token.Position
}

func (b base) Pos() token.Position { return b.pos }

// SetPos backfills the position on a node built before its start position
// was known (the parser constructs a few nodes, such as Constructor and
// Operator, before it has read their leading position).
func (b *base) SetPos(pos token.Position) { b.pos = pos }

// Identifier is a literal name fragment.
type Identifier struct {
	base
	Value string
}

func NewIdentifier(pos token.Position, value string) *Identifier {
	return &Identifier{base: base{pos}, Value: value}
}

func (*Identifier) nameNode() {}
func (n *Identifier) DisplayOn(p Printer, spacing Spacing) bool {
	if n.Value == "" {
		return false
	}
	p.WriteSpace(spacing)
	p.WriteString(n.Value)
	return true
}

// AnonymousNamespace is a generated identifier flagged for special
// printing, e.g. `anonymous namespace'{...}.
type AnonymousNamespace struct {
	base
	Generated string
}

func (*AnonymousNamespace) nameNode() {}
func (n *AnonymousNamespace) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("`anonymous namespace'{" + n.Generated + "}")
	return true
}

// LexicalFrame is an integer-indexed scope introduced by a nested block
// (the "?n" qualifier production).
type LexicalFrame struct {
	base
	Index int
}

func (*LexicalFrame) nameNode() {}
func (n *LexicalFrame) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	fmt.Fprintf(&stringsWriter{p}, "`%d'", n.Index)
	return true
}

// stringsWriter adapts fmt.Fprintf onto a Printer.
type stringsWriter struct{ p Printer }

func (w *stringsWriter) Write(b []byte) (int, error) {
	w.p.WriteString(string(b))
	return len(b), nil
}

// Template is an identifier plus an ordered argument list.
type Template struct {
	base
	Name Name
	Args []TemplateArg
}

func (*Template) nameNode() {}
func (n *Template) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	n.Name.DisplayOn(p, SpacingNone)
	p.WriteString("<")
	for i, a := range n.Args {
		if i > 0 {
			p.WriteString(",")
		}
		a.DisplayOn(p, SpacingNone)
	}
	p.WriteString(">")
	return true
}

// OperatorCode enumerates the operator-name encoding.
type OperatorCode int

const (
	OpNew OperatorCode = iota
	OpDelete
	OpAssign
	OpRShift
	OpLShift
	OpNot
	OpEq
	OpNotEq
	OpIndex
	OpArrow
	OpDeref
	OpInc
	OpDec
	OpNeg
	OpPos
	OpAddrOf
	OpArrowStar
	OpDiv
	OpMod
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpComma
	OpCall
	OpComplement
	OpXor
	OpOr
	OpLAnd
	OpLOr
	OpMulAssign
	OpAddAssign
	OpSubAssign
	OpDivAssign
	OpModAssign
	OpRShiftAssign
	OpLShiftAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
)

var operatorText = map[OperatorCode]string{
	OpNew: "operator new", OpDelete: "operator delete", OpAssign: "operator=",
	OpRShift: "operator>>", OpLShift: "operator<<", OpNot: "operator!",
	OpEq: "operator==", OpNotEq: "operator!=", OpIndex: "operator[]",
	OpArrow: "operator->", OpDeref: "operator*", OpInc: "operator++",
	OpDec: "operator--", OpNeg: "operator-", OpPos: "operator+",
	OpAddrOf: "operator&", OpArrowStar: "operator->*", OpDiv: "operator/",
	OpMod: "operator%", OpLt: "operator<", OpLtEq: "operator<=",
	OpGt: "operator>", OpGtEq: "operator>=", OpComma: "operator,",
	OpCall: "operator()", OpComplement: "operator~", OpXor: "operator^",
	OpOr: "operator|", OpLAnd: "operator&&", OpLOr: "operator||",
	OpMulAssign: "operator*=", OpAddAssign: "operator+=", OpSubAssign: "operator-=",
	OpDivAssign: "operator/=", OpModAssign: "operator%=", OpRShiftAssign: "operator>>=",
	OpLShiftAssign: "operator<<=", OpAndAssign: "operator&=", OpOrAssign: "operator|=",
	OpXorAssign: "operator^=",
}

// Operator is an enumerated operator-name node.
type Operator struct {
	base
	Code OperatorCode
}

func (*Operator) nameNode() {}
func (n *Operator) DisplayOn(p Printer, spacing Spacing) bool {
	text, ok := operatorText[n.Code]
	if !ok {
		text = "operator?"
	}
	p.WriteSpace(spacing)
	p.WriteString(text)
	return true
}

// CastOperator is the "operator TargetType" conversion-operator name. Its
// TargetType is filled in by the parser once the enclosing function's
// return type has been parsed — the grammar visits the operator-name
// position before the return-type position, so this field starts nil and
// is patched in place rather than resolved via a parent pointer.
type CastOperator struct {
	base
	TargetType Type
}

func (*CastOperator) nameNode() {}
func (n *CastOperator) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("operator ")
	if n.TargetType != nil {
		n.TargetType.DisplayOn(p, SpacingNone)
	} else {
		p.WriteString("?")
	}
	return true
}

// Constructor draws its visible text from the class name of the
// immediately enclosing qualifier, filled in by the parser at the point
// the qualifier was already known (no parent-pointer lookup needed).
type Constructor struct {
	base
	ClassName string
}

func (*Constructor) nameNode() {}
func (n *Constructor) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString(n.ClassName)
	return true
}

// Destructor is the constructor's complement.
type Destructor struct {
	base
	ClassName string
}

func (*Destructor) nameNode() {}
func (n *Destructor) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("~" + n.ClassName)
	return true
}

// SpecialKind enumerates the compiler-generated name catalogue.
type SpecialKind int

const (
	SpecialVFTable SpecialKind = iota
	SpecialVBTable
	SpecialVCall
	SpecialTypeof
	SpecialLocalStaticGuard
	SpecialStringLiteral
	SpecialVBaseDtor
	SpecialVectorDeletingDtor
	SpecialDefaultCtorClosure
	SpecialScalarDeletingDtor
	SpecialVectorCtorIterator
	SpecialVectorDtorIterator
	SpecialVectorVbaseCtorIterator
	SpecialVirtualDisplacementMap
	SpecialEHVectorCtorIterator
	SpecialEHVectorDtorIterator
	SpecialEHVectorVbaseCtorIterator
	SpecialCopyCtorClosure
	SpecialLocalVFTable
	SpecialLocalVFTableCtorClosure
	SpecialDynamicInitializer
	SpecialDynamicAtexitDestructor
	SpecialManagedVectorCtorIterator
	SpecialManagedVectorDtorIterator
	SpecialEHVectorVbaseCtorIterator2
	SpecialLocalStaticThreadGuard
)

var specialText = map[SpecialKind]string{
	SpecialVFTable:                   "`vftable'",
	SpecialVBTable:                   "`vbtable'",
	SpecialVCall:                     "`vcall'",
	SpecialTypeof:                    "`typeof'",
	SpecialLocalStaticGuard:          "`local static guard'",
	SpecialStringLiteral:             "`string'",
	SpecialVBaseDtor:                 "`vbase destructor'",
	SpecialVectorDeletingDtor:        "`vector deleting destructor'",
	SpecialDefaultCtorClosure:        "`default constructor closure'",
	SpecialScalarDeletingDtor:        "`scalar deleting destructor'",
	SpecialVectorCtorIterator:        "`vector constructor iterator'",
	SpecialVectorDtorIterator:        "`vector destructor iterator'",
	SpecialVectorVbaseCtorIterator:   "`vector vbase constructor iterator'",
	SpecialVirtualDisplacementMap:    "`virtual displacement map'",
	SpecialEHVectorCtorIterator:      "`eh vector constructor iterator'",
	SpecialEHVectorDtorIterator:      "`eh vector destructor iterator'",
	SpecialEHVectorVbaseCtorIterator: "`eh vector vbase constructor iterator'",
	SpecialCopyCtorClosure:           "`copy constructor closure'",
	SpecialLocalVFTable:              "`local vftable'",
	SpecialLocalVFTableCtorClosure:   "`local vftable constructor closure'",
	SpecialDynamicInitializer:        "`dynamic initializer'",
	SpecialDynamicAtexitDestructor:   "`dynamic atexit destructor'",
	SpecialManagedVectorCtorIterator: "`managed vector constructor iterator'",
	SpecialManagedVectorDtorIterator: "`managed vector destructor iterator'",
	SpecialLocalStaticThreadGuard:    "`local static thread guard'",
}

// Special is a compiler-generated data item name (vftable, vcall thunk,
// deleting destructor, local static guard, dynamic initializer, ...). The
// vftable and vbtable kinds ("?_7" / "?_8") may additionally carry a Target
// qualified name rendered as "{for 'Target'}".
type Special struct {
	base
	Kind   SpecialKind
	Target *QualifiedName
}

func (*Special) nameNode() {}
func (n *Special) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	text, ok := specialText[n.Kind]
	if !ok {
		text = "`unknown'"
	}
	p.WriteString(text)
	if n.Target != nil {
		p.WriteString("{for `")
		n.Target.DisplayOn(p, SpacingNone)
		p.WriteString("'}")
	}
	return true
}

// SpecialQualifier wraps a nested Symbol used as a scope qualifier (the
// "local to function" case, and the "?? nested body" production).
type SpecialQualifier struct {
	base
	Inner *Symbol
}

func (*SpecialQualifier) nameNode() {}
func (n *SpecialQualifier) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("`")
	n.Inner.DisplayOn(p, SpacingNone)
	p.WriteString("'")
	return true
}

// TemplateParameterName is a placeholder for an uninstantiated template
// parameter: indexed, or numbered-and-named; type or non-type.
type TemplateParameterName struct {
	base
	Index   int
	Label   string // empty when unnamed
	NonType bool
}

func (*TemplateParameterName) nameNode() {}
func (n *TemplateParameterName) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	if n.Label != "" {
		p.WriteString(n.Label)
		return true
	}
	kind := "T"
	if n.NonType {
		kind = "N"
	}
	fmt.Fprintf(&stringsWriter{p}, "`template-parameter-%s%d'", kind, n.Index)
	return true
}

// QualifiedName is a terminal identifier plus an ordered sequence of
// enclosing qualifiers, innermost first.
type QualifiedName struct {
	base
	Terminal   Name
	Qualifiers []Name // innermost first, outermost last
}

func (n *QualifiedName) Pos() token.Position { return n.base.pos }
func (n *QualifiedName) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	var parts []string
	capture := func(nm Name) string { return ShortName(nm) }
	parts = append(parts, capture(n.Terminal))
	for _, q := range n.Qualifiers {
		parts = append(parts, capture(q))
	}
	// Outermost qualifier prints first, terminal last: reverse parts.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	p.WriteString(strings.Join(parts, "::"))
	return true
}

// InnermostClassName returns the printed name of the innermost qualifier,
// the class a constructor/destructor/cast-operator belongs to. Returns ""
// when there is no enclosing qualifier (a global-scope special name).
func (n *QualifiedName) InnermostClassName() string {
	if len(n.Qualifiers) == 0 {
		return ""
	}
	return ShortName(n.Qualifiers[0])
}
