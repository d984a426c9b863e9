package ast

// RTTICode enumerates the five RTTI descriptor productions.
type RTTICode int

const (
	RTTITypeDescriptor RTTICode = iota
	RTTIBaseClassDescriptor
	RTTIBaseClassArray
	RTTIClassHierarchyDescriptor
	RTTICompleteObjectLocator
)

var rttiText = map[RTTICode]string{
	RTTITypeDescriptor:           "`RTTI Type Descriptor'",
	RTTIBaseClassDescriptor:      "`RTTI Base Class Descriptor'",
	RTTIBaseClassArray:           "`RTTI Base Class Array'",
	RTTIClassHierarchyDescriptor: "`RTTI Class Hierarchy Descriptor'",
	RTTICompleteObjectLocator:    "`RTTI Complete Object Locator'",
}

// RTTIDescriptor is the terminal name produced by the "_R0".."_R4"
// productions. Only the Type Descriptor variant (code 0) carries a
// described Type; only the Base Class Descriptor variant (code 1) carries
// the four displacement integers.
type RTTIDescriptor struct {
	base
	Code          RTTICode
	DescribedType Type // RTTITypeDescriptor only
	MDisp         int  // RTTIBaseClassDescriptor only
	PDisp         int
	VDisp         int
	Attributes    int
}

func (*RTTIDescriptor) nameNode() {}
func (n *RTTIDescriptor) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	if n.Code == RTTITypeDescriptor && n.DescribedType != nil {
		n.DescribedType.DisplayOn(p, SpacingNone)
		p.WriteString(" ")
	}
	text, ok := rttiText[n.Code]
	if !ok {
		text = "`RTTI descriptor'"
	}
	p.WriteString(text)
	return true
}
