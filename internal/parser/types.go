package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/synerr"
	"github.com/cwbudde/symdecode/internal/token"
)

var primitiveLetters = map[byte]ast.PrimitiveCode{
	'C': ast.PrimSChar, 'D': ast.PrimChar, 'E': ast.PrimUChar,
	'F': ast.PrimShort, 'G': ast.PrimUShort, 'H': ast.PrimInt,
	'I': ast.PrimUInt, 'J': ast.PrimLong, 'K': ast.PrimULong,
	'M': ast.PrimFloat, 'N': ast.PrimDouble, 'O': ast.PrimLongDouble,
	'X': ast.PrimVoid, 'Z': ast.PrimEllipsis,
}

var extendedPrimitiveLetters = map[byte]ast.PrimitiveCode{
	'D': ast.PrimInt8, 'E': ast.PrimUInt8, 'F': ast.PrimInt16, 'G': ast.PrimUInt16,
	'H': ast.PrimInt32, 'I': ast.PrimUInt32, 'J': ast.PrimInt64, 'K': ast.PrimUInt64,
	'L': ast.PrimInt128, 'M': ast.PrimUInt128, 'N': ast.PrimBool, 'W': ast.PrimWCharT,
}

var enumUnderlying = map[byte]ast.PrimitiveCode{
	'0': ast.PrimChar, '1': ast.PrimUChar, '2': ast.PrimShort, '3': ast.PrimUShort,
	'4': ast.PrimInt, '5': ast.PrimUInt, '6': ast.PrimLong, '7': ast.PrimULong,
}

// parseType dispatches on the first character of a type production
// (spec §4.3.5).
func (p *parser) parseType() (ast.Type, error) {
	startPos := p.pos()
	tok := p.cur()

	switch {
	case tok.Class == token.Digit:
		idx, _ := tok.DigitValue()
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return p.resolveParam(idx)

	case tok.Ch == 'A' || tok.Ch == 'B':
		return p.parseReferenceType(startPos, tok.Ch == 'B')

	case tok.Ch == '$':
		return p.parseExtendedType(startPos)

	case tok.Ch == 'P' || tok.Ch == 'Q' || tok.Ch == 'R' || tok.Ch == 'S':
		return p.parsePointerType(startPos, tok.Ch)

	case tok.Ch == 'T' || tok.Ch == 'U' || tok.Ch == 'V':
		return p.parseCompoundType(startPos, tok.Ch)

	case tok.Ch == 'W':
		return p.parseEnumType(startPos)

	case tok.Ch == '_':
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		letter := p.cur().Ch
		code, ok := extendedPrimitiveLetters[letter]
		if !ok {
			return nil, p.errf(synerr.UnusedTypeCode, "unused extended primitive code")
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.PrimitiveType{Code: code}, nil

	case tok.Class == token.UppercaseLetter:
		code, ok := primitiveLetters[tok.Ch]
		if !ok {
			return nil, p.errf(synerr.UnusedTypeCode, "unused primitive type code")
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		t := &ast.PrimitiveType{Code: code}
		return t, nil

	default:
		return nil, p.errf(synerr.InvalidSymbolTypeCode, "invalid type code")
	}
}

// parseTypeAndRegister parses a type and, if its encoding
// occupied more than one input character, appends it to the current
// scope's parameter-type back-ref table (spec §4.3.4).
func (p *parser) parseTypeAndRegister() (ast.Type, error) {
	before := p.pos().Index
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos().Index-before > 1 {
		p.registerParam(t)
	}
	return t, nil
}

func (p *parser) parseReferenceType(pos token.Position, volatile bool) (ast.Type, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	mods, err := p.parseStorageModifiers()
	if err != nil {
		return nil, err
	}
	_, err = p.parseStorageClass()
	if err != nil {
		return nil, err
	}
	inner, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if isReferenceType(inner) {
		return nil, p.errAt(synerr.DoubleReference, "reference to reference is not allowed", pos, 0)
	}
	if volatile {
		mods |= ast.ModVolatile
	}
	rt := &ast.ReferenceType{Referent: inner, Modifiers: mods}
	return rt, nil
}

func isReferenceType(t ast.Type) bool {
	switch t.(type) {
	case *ast.ReferenceType, *ast.RValueReferenceType:
		return true
	default:
		return false
	}
}

// parseExtendedType handles the "$$X" special-type sub-grammar: nullptr_t,
// rvalue references, and function-as-type.
func (p *parser) parseExtendedType(pos token.Position) (ast.Type, error) {
	if _, err := p.advance(); err != nil { // consume '$'
		return nil, err
	}
	if p.cur().Ch != '$' {
		return nil, p.errf(synerr.UnusedTypeCode, "reserved extended type code")
	}
	if _, err := p.advance(); err != nil { // consume second '$'
		return nil, err
	}
	sub := p.cur().Ch
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	switch sub {
	case 'T':
		return &ast.NullPtrType{}, nil
	case 'Q', 'R':
		mods, err := p.parseStorageModifiers()
		if err != nil {
			return nil, err
		}
		sc, err := p.parseStorageClass()
		if err != nil {
			return nil, err
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if sub == 'R' {
			mods |= ast.ModVolatile
		}
		_ = sc
		return &ast.RValueReferenceType{Referent: inner, Modifiers: mods}, nil
	case 'A':
		sc, err := p.parseStorageClass()
		if err != nil {
			return nil, err
		}
		if !sc.Function {
			return nil, p.errAt(synerr.InvalidFunctionStorage, "invalid function storage", pos, 0)
		}
		return p.parseFunctionTypeBody(sc)
	default:
		return nil, p.errAt(synerr.UnusedTypeCode, "reserved extended type code", pos, sub)
	}
}

func (p *parser) parsePointerType(pos token.Position, letter byte) (ast.Type, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	bits := int(letter - 'P')
	ptr := &ast.PointerType{Kind: ast.PointerPlain}

	mods, err := p.parseStorageModifiers()
	if err != nil {
		return nil, err
	}
	ptr.Modifiers = mods

	sc, err := p.parseStorageClass()
	if err != nil {
		return nil, err
	}
	if bits&1 != 0 {
		ptr.Modifiers |= ast.ModConst
	}
	if bits&2 != 0 {
		ptr.Modifiers |= ast.ModVolatile
	}

	if sc.Based {
		ptr.Kind = ast.PointerBased
		ptr.BasedOn = sc.BasedName
	} else if sc.Member {
		ptr.Kind = ast.PointerToMember
		ptr.MemberOf = sc.MemberOf
	}

	var inner ast.Type
	if sc.Function {
		inner, err = p.parseFunctionTypeBody(sc.Nested)
	} else {
		inner, err = p.parseType()
	}
	if err != nil {
		return nil, err
	}
	ptr.Pointee = inner
	return ptr, nil
}

func (p *parser) parseCompoundType(pos token.Position, letter byte) (ast.Type, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	var class ast.CompoundClass
	switch letter {
	case 'T':
		class = ast.ClassUnion
	case 'U':
		class = ast.ClassStruct
	case 'V':
		class = ast.ClassClass
	}
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	return &ast.CompoundType{Class: class, Name: qn}, nil
}

func (p *parser) parseEnumType(pos token.Position) (ast.Type, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	digit := p.cur().Ch
	underlying, ok := enumUnderlying[digit]
	if !ok {
		return nil, p.errAt(synerr.InvalidEnumType, "invalid enum base type", pos, digit)
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	return &ast.EnumType{Underlying: underlying, HasUnderlying: true, Name: qn}, nil
}
