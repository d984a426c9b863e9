package ast

import "strings"

// IntegerLiteral is a signed integer template argument, decoded from either
// the single-digit-plus-one form or the alphanumeric magnitude encoding.
type IntegerLiteral struct {
	base
	Value int64
}

func (*IntegerLiteral) typeNode()         {}
func (*IntegerLiteral) templateArgNode()  {}
func (n *IntegerLiteral) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	var sb strings.Builder
	v := n.Value
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		sb.WriteString("0")
	} else {
		var digits []byte
		for v > 0 {
			digits = append([]byte{byte('0' + v%10)}, digits...)
			v /= 10
		}
		sb.Write(digits)
	}
	if neg {
		p.WriteString("-")
	}
	p.WriteString(sb.String())
	return true
}

// FloatLiteral is a floating-point template argument, decoded as a
// mantissa/exponent pair from the hex-nibble encoding.
type FloatLiteral struct {
	base
	Mantissa float64
	Exponent int
	IsDouble bool
}

func (*FloatLiteral) typeNode()        {}
func (*FloatLiteral) templateArgNode() {}
func (n *FloatLiteral) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString(formatFloat(n.Mantissa, n.Exponent))
	return true
}

func formatFloat(mantissa float64, exponent int) string {
	// Printed as mantissa*10^exponent collapsed to a plain decimal (spec
	// §4.3.7: the $2 encoding scales its mantissa by a power of ten, not
	// two); precision beyond what the mangled encoding carries is not
	// meaningful, so this stays a simple, not round-trip-exact, rendering.
	value := mantissa
	for i := 0; i < exponent; i++ {
		value *= 10
	}
	for i := 0; i > exponent; i-- {
		value /= 10
	}
	return trimFloat(value)
}

func trimFloat(v float64) string {
	s := formatG(v)
	return s
}

func formatG(v float64) string {
	// Minimal dependency-free float formatting, without strconv; its result
	// is also the text a float template argument displays as.
	if v == float64(int64(v)) {
		var sb strings.Builder
		writeInt(&sb, int(int64(v)))
		return sb.String()
	}
	return "~" + strings.TrimRight(strings.TrimRight(sprintFixed(v), "0"), ".")
}

func sprintFixed(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v)
	frac := v - float64(whole)
	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	writeInt(&sb, int(whole))
	sb.WriteString(".")
	for i := 0; i < 6; i++ {
		frac *= 10
		d := int(frac)
		sb.WriteByte(byte('0' + d))
		frac -= float64(d)
	}
	return sb.String()
}

// AddressOfSymbol is the "&symbol" template-argument form: a pointer to a
// named symbol taken as a compile-time constant. Target is nil when the
// address-of operand could not itself be resolved to a full symbol (the
// grammar still accepts a bare qualified name in that position).
type AddressOfSymbol struct {
	base
	Target *Symbol
	Name   *QualifiedName
}

func (*AddressOfSymbol) typeNode()        {}
func (*AddressOfSymbol) templateArgNode() {}
func (n *AddressOfSymbol) DisplayOn(p Printer, spacing Spacing) bool {
	p.WriteSpace(spacing)
	p.WriteString("&")
	if n.Target != nil {
		n.Target.DisplayOn(p, SpacingNone)
		return true
	}
	n.Name.DisplayOn(p, SpacingNone)
	return true
}
