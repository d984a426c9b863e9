// Package ast defines the discriminated AST node model the parser builds
// and the printer walks: names, types, storage attributes, literals, and
// symbols. Nodes are constructed once during a single parser pass and never
// mutated afterwards (deep-copy during back-reference resolution aside).
package ast

import (
	"strings"

	"github.com/cwbudde/symdecode/internal/token"
)

// Spacing expresses the whitespace permission at a node's printed boundary.
type Spacing int

const (
	SpacingNone Spacing = iota
	SpacingLeading
	SpacingTrailing
	SpacingBoth
)

// HasLeading reports whether space is permitted before the node's text.
func (s Spacing) HasLeading() bool { return s == SpacingLeading || s == SpacingBoth }

// HasTrailing reports whether space is permitted after the node's text.
func (s Spacing) HasTrailing() bool { return s == SpacingTrailing || s == SpacingBoth }

// DisplayFlag is one bit of the printer's option set. The AST package only
// defines the flags nodes themselves must consult to decide what to print;
// the printer package owns the bitset storage and stack discipline.
type DisplayFlag int

const (
	FlagSuppressLeadingUnderscores DisplayFlag = iota
	FlagSuppressToolchainExtensions
	FlagSuppressReturnType
	FlagSuppressCallingConvention
	FlagSuppressMemberStorageClass
	FlagSuppressMemberAccess
	FlagSuppressMemberType
	FlagSuppressCompoundTypeClass
	FlagSuppressPtr64
	FlagNameOnly
	FlagTypeOnly
	FlagSuppressReferenceToolEmulation
)

// Printer is the contract a node's display methods are written against.
// It is implemented by internal/printer.Builder; the AST package itself
// never formats output beyond the plain-text projection used for node
// identity (see ShortName).
type Printer interface {
	WriteString(s string)
	WriteSpace(spacing Spacing)
	Flag(f DisplayFlag) bool
}

// Declarator is the callback a wrapping node (pointer, reference, function
// type) invokes to emit the content it wraps at the syntactically correct
// position. This inversion is how complex declarators such as
// "int (*f)(char)" are composed from the inside out.
type Declarator func(p Printer) bool

// Node is the base type every AST node satisfies.
type Node interface {
	Pos() token.Position
	// DisplayOn writes the node's textual projection to p and reports
	// whether anything was written.
	DisplayOn(p Printer, spacing Spacing) bool
}

// Wrapper is implemented by nodes whose printed form wraps a child
// declarator rather than simply emitting their own text (pointers,
// references, function types acting as a declarator around a name).
type Wrapper interface {
	Node
	DisplayAround(p Printer, spacing Spacing, inner Declarator) bool
}

// plainPrinter is the minimal Printer used internally to compute a node's
// identity text (see ShortName): every flag reads false and spacing
// collapses to a single ASCII space.
type plainPrinter struct{ b strings.Builder }

func (p *plainPrinter) WriteString(s string) { p.b.WriteString(s) }
func (p *plainPrinter) WriteSpace(s Spacing) {
	if s.HasLeading() || s.HasTrailing() {
		p.b.WriteString(" ")
	}
}
func (p *plainPrinter) Flag(DisplayFlag) bool { return false }

// ShortName renders a node with every display flag off. Name identity
// comparisons (for back-reference deduplication and equality) use this
// printed form as their key, per the AST model's equals/hash contract.
func ShortName(n Node) string {
	p := &plainPrinter{}
	n.DisplayOn(p, SpacingNone)
	return p.b.String()
}
