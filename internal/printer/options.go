// Package printer renders a parsed mangled-symbol AST back out as a
// human-readable C++ declaration, the way a disassembler's demangler
// column does.
package printer

import "github.com/cwbudde/symdecode/internal/ast"

// Options is the display bitset spec §6 calls for, built up with
// DisplayOption functions.
type Options struct {
	flags map[ast.DisplayFlag]bool
}

// DisplayOption configures an Options value.
type DisplayOption func(*Options)

// NewOptions builds an Options value from zero or more DisplayOption
// settings; every flag defaults to off.
func NewOptions(opts ...DisplayOption) Options {
	o := Options{flags: make(map[ast.DisplayFlag]bool)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func withFlag(f ast.DisplayFlag, on bool) DisplayOption {
	return func(o *Options) { o.flags[f] = on }
}

func WithSuppressLeadingUnderscores(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressLeadingUnderscores, on)
}
func WithSuppressToolchainExtensions(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressToolchainExtensions, on)
}
func WithSuppressReturnType(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressReturnType, on)
}
func WithSuppressCallingConvention(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressCallingConvention, on)
}
func WithSuppressMemberStorageClass(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressMemberStorageClass, on)
}
func WithSuppressMemberAccess(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressMemberAccess, on)
}
func WithSuppressMemberType(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressMemberType, on)
}
func WithSuppressCompoundTypeClass(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressCompoundTypeClass, on)
}
func WithSuppressPtr64(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressPtr64, on)
}
func WithNameOnly(on bool) DisplayOption {
	return withFlag(ast.FlagNameOnly, on)
}
func WithTypeOnly(on bool) DisplayOption {
	return withFlag(ast.FlagTypeOnly, on)
}
func WithSuppressReferenceToolEmulation(on bool) DisplayOption {
	return withFlag(ast.FlagSuppressReferenceToolEmulation, on)
}

func (o Options) has(f ast.DisplayFlag) bool { return o.flags[f] }
