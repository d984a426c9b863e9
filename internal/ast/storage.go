package ast

// StorageModifier is a bitset of the trailing declarator modifiers that can
// stack on a pointer, reference, or member-function type: const, volatile,
// __ptr64, __unaligned, __restrict.
type StorageModifier int

const (
	ModConst StorageModifier = 1 << iota
	ModVolatile
	ModPtr64
	ModUnaligned
	ModRestrict
)

// Has reports whether m includes bit.
func (m StorageModifier) Has(bit StorageModifier) bool {
	return m&bit != 0
}

// Protection enumerates member access levels as encoded in function and
// data storage-class codes.
type Protection int

const (
	ProtectionPrivate Protection = iota
	ProtectionProtected
	ProtectionPublic
)

func (p Protection) String() string {
	switch p {
	case ProtectionPrivate:
		return "private"
	case ProtectionProtected:
		return "protected"
	default:
		return "public"
	}
}

// FunctionStorage enumerates how a member function is bound: an instance
// method (with const/volatile qualifiers carried on
// FunctionSignature.ThisModifiers instead),
// a static member, a virtual member, or a virtual-with-adjustor thunk.
type FunctionStorage int

const (
	FunctionInstance FunctionStorage = iota
	FunctionStatic
	FunctionVirtual
	FunctionVirtualAdjustor
)

// DataStorageClass describes how a non-function symbol is stored: a plain
// static/global, a member (with its Protection and whether it is static),
// or one of the based/register-relative forms.
type DataStorageClass struct {
	Protection Protection
	IsStatic   bool
	IsMember   bool
	BasedOn    string // non-empty for __based(x) storage
	Modifiers  StorageModifier
}
