package ast

// TemplateArg is any node that may appear in a template argument list: a
// Type, an IntegerLiteral, a FloatLiteral, an AddressOfSymbol, a
// TemplateParameterName placeholder, or a CurlyValue. No marker method is
// required beyond Node: the parser is the sole place that decides which
// concrete node to build for a given argument-code byte, so there is
// nothing for the type system to police here beyond what Node already
// guarantees.
type TemplateArg = Node

// CurlyKind enumerates the pointer-to-member-in-template-argument
// encodings, the "$F"/"$G"/"$H"/"$I"/"$J" curly-brace productions.
type CurlyKind int

const (
	CurlyGptmd CurlyKind = iota // generic pointer to member data
	CurlyMptmf                  // multiple-inheritance pointer to member function
	CurlyVptmf                  // virtual-inheritance pointer to member function
	CurlyGptmf                  // generic pointer to member function
	CurlyVptmd                  // virtual-inheritance pointer to member data
)

// CurlyValue is the "{...}" compound template argument used to encode
// pointer-to-member constants: an ordered list of integer displacement
// components wrapped in braces.
type CurlyValue struct {
	base
	Kind     CurlyKind
	Children []Node
}

func (*CurlyValue) templateArgNode() {}
func (n *CurlyValue) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("{")
	for i, c := range n.Children {
		if i > 0 {
			p.WriteString(", ")
		}
		c.DisplayOn(p, SpacingNone)
	}
	p.WriteString("}")
	return true
}
