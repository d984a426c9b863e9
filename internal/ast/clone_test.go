package ast

import (
	"testing"

	"github.com/cwbudde/symdecode/internal/token"
)

var pos = token.Position{}

func TestCloneQualifiedNameIsIndependent(t *testing.T) {
	original := &QualifiedName{
		Terminal:   NewIdentifier(pos, "Abc"),
		Qualifiers: []Name{NewIdentifier(pos, "Ns")},
	}
	clone := CloneQualifiedName(original)

	clone.Terminal.(*Identifier).Value = "Mutated"
	clone.Qualifiers[0].(*Identifier).Value = "Mutated"

	if got := original.Terminal.(*Identifier).Value; got != "Abc" {
		t.Errorf("original terminal mutated via clone: got %q, want %q", got, "Abc")
	}
	if got := original.Qualifiers[0].(*Identifier).Value; got != "Ns" {
		t.Errorf("original qualifier mutated via clone: got %q, want %q", got, "Ns")
	}
}

func TestCloneTemplateIsIndependent(t *testing.T) {
	original := &Template{
		Name: NewIdentifier(pos, "TClass"),
		Args: []TemplateArg{&PrimitiveType{Code: PrimChar}, &IntegerLiteral{Value: -1}},
	}
	clone := CloneName(original).(*Template)

	clone.Args[1].(*IntegerLiteral).Value = 99

	if got := original.Args[1].(*IntegerLiteral).Value; got != -1 {
		t.Errorf("original template argument mutated via clone: got %d, want -1", got)
	}
}

func TestCloneSymbolIsIndependent(t *testing.T) {
	original := NewSymbol(pos, `?var@@3NA`, &QualifiedName{Terminal: NewIdentifier(pos, "var")})
	original.Kind = SymbolVariable
	original.Variable = &VariableInfo{Type: &PrimitiveType{Code: PrimDouble}}

	clone := CloneSymbol(original)
	clone.Variable.Type.(*PrimitiveType).Code = PrimInt

	if got := original.Variable.Type.(*PrimitiveType).Code; got != PrimDouble {
		t.Errorf("original variable type mutated via clone: got %v, want PrimDouble", got)
	}
}

func TestCloneRTTIDescriptorIsIndependent(t *testing.T) {
	original := &RTTIDescriptor{
		Code:          0,
		DescribedType: &CompoundType{Class: ClassStruct, Name: &QualifiedName{Terminal: NewIdentifier(pos, "Abc")}},
	}
	clone := CloneName(original).(*RTTIDescriptor)

	clone.DescribedType.(*CompoundType).Name.Terminal.(*Identifier).Value = "Mutated"

	if got := original.DescribedType.(*CompoundType).Name.Terminal.(*Identifier).Value; got != "Abc" {
		t.Errorf("original RTTI described type mutated via clone: got %q, want %q", got, "Abc")
	}
}
