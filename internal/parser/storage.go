package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/synerr"
)

// storageClass is the parser's internal decoding of a single storage-class
// byte (spec §4.3.6): cv-qualification bits, the Based/Member/Function
// discriminators, and whichever extra payload each carries. It is
// flattened onto the concrete AST field each call site actually needs
// (ast.StorageModifier for cv bits, ast.DataStorageClass for data symbols)
// rather than living on in the tree itself.
type storageClass struct {
	Const, Volatile bool
	Based           bool
	BasedName       string
	Member          bool
	MemberOf        *ast.QualifiedName
	Function        bool
	Nested          *storageClass // member-function storage nests another storage class
}

// parseStorageModifiers reads the greedy maximal sequence of trailing
// declarator modifiers {Ptr64='E', Unaligned='F', Restrict='I'}.
func (p *parser) parseStorageModifiers() (ast.StorageModifier, error) {
	var mods ast.StorageModifier
	for {
		switch p.cur().Ch {
		case 'E':
			mods |= ast.ModPtr64
		case 'F':
			mods |= ast.ModUnaligned
		case 'I':
			mods |= ast.ModRestrict
		default:
			return mods, nil
		}
		if _, err := p.advance(); err != nil {
			return mods, err
		}
	}
}

// parseStorageClass decodes one storage-class byte per spec §4.3.6.
func (p *parser) parseStorageClass() (*storageClass, error) {
	ch := p.cur().Ch
	if err := p.advanceOrEnd(); err != nil {
		return nil, err
	}
	switch {
	case ch >= 'A' && ch <= 'D':
		bits := int(ch - 'A')
		return &storageClass{Const: bits&1 != 0, Volatile: bits&2 != 0}, nil
	case ch >= 'E' && ch <= 'L':
		return nil, p.errAt(synerr.InvalidStorageClass, "reserved storage-class code", p.cur().Pos, ch)
	case ch >= 'M' && ch <= 'P':
		sc := &storageClass{Based: true}
		name, err := p.parseBaseName()
		if err != nil {
			return nil, err
		}
		sc.BasedName = name
		return sc, nil
	case ch >= 'Q' && ch <= 'T':
		sc := &storageClass{Member: true}
		qn, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		sc.MemberOf = qn
		// A further storage-class byte follows the declaring class; if it
		// carries the Function bit this is a member-function pointer (with
		// its own nested cv storage class), otherwise it is just the
		// member's cv-qualification.
		nested, err := p.parseStorageClass()
		if err != nil {
			return nil, err
		}
		if nested.Function {
			sc.Function = true
			sc.Nested = nested
		} else {
			sc.Const = nested.Const
			sc.Volatile = nested.Volatile
		}
		return sc, nil
	case ch >= '2' && ch <= '5':
		sc := &storageClass{Based: true, Member: true}
		name, err := p.parseBaseName()
		if err != nil {
			return nil, err
		}
		sc.BasedName = name
		return sc, nil
	case ch == '6' || ch == '7':
		return &storageClass{Function: true}, nil
	case ch == '8' || ch == '9':
		sc := &storageClass{Function: true, Member: true}
		nested, err := p.parseStorageClass()
		if err != nil {
			return nil, err
		}
		sc.Nested = nested
		return sc, nil
	case ch == '_':
		sub := p.cur().Ch
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		switch sub {
		case 'A', 'B': // function / far-function (far-ness discarded)
			return &storageClass{Function: true}, nil
		case 'C', 'D': // member-function / far-member-function (far-ness discarded)
			sc := &storageClass{Function: true, Member: true}
			nested, err := p.parseStorageClass()
			if err != nil {
				return nil, err
			}
			sc.Nested = nested
			return sc, nil
		default:
			return nil, p.errAt(synerr.InvalidBasedPointerType, "invalid based-pointer type", p.cur().Pos, sub)
		}
	default:
		return nil, p.errAt(synerr.InvalidStorageClass, "invalid storage class", p.cur().Pos, ch)
	}
}

// parseBaseName decodes the __based(x) base-name sub-production: '0' for
// void, '2' followed by a qualified name for an ordinary base pointer.
func (p *parser) parseBaseName() (string, error) {
	ch := p.cur().Ch
	switch ch {
	case '0':
		if _, err := p.advance(); err != nil {
			return "", err
		}
		return "void", nil
	case '2':
		if _, err := p.advance(); err != nil {
			return "", err
		}
		qn, err := p.parseQualifiedName()
		if err != nil {
			return "", err
		}
		return ast.ShortName(qn), nil
	default:
		return "", p.errAt(synerr.InvalidBasedPointerType, "invalid based-pointer type", p.cur().Pos, ch)
	}
}
