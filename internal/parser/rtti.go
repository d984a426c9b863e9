package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/synerr"
	"github.com/cwbudde/symdecode/internal/token"
)

// parseRTTIName implements spec §4.3.10. The cursor is positioned on the
// 'R' of the "_R" sub-code when this is called; it has not yet been
// consumed.
func (p *parser) parseRTTIName(startPos token.Position) (ast.Name, error) {
	if _, err := p.advance(); err != nil { // consume 'R'
		return nil, err
	}
	sub := p.cur().Ch
	if _, err := p.advance(); err != nil { // consume the sub-code digit
		return nil, err
	}
	switch sub {
	case '0':
		if p.cur().Ch == '?' {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.parseStorageClass(); err != nil {
				return nil, err
			}
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		n := &ast.RTTIDescriptor{Code: ast.RTTITypeDescriptor, DescribedType: typ}
		n.SetPos(startPos)
		return n, nil
	case '1':
		mDisp, err := p.parseSignedInteger()
		if err != nil {
			return nil, err
		}
		pDisp, err := p.parseSignedInteger()
		if err != nil {
			return nil, err
		}
		vDisp, err := p.parseSignedInteger()
		if err != nil {
			return nil, err
		}
		attrs, err := p.parseUnsignedInteger()
		if err != nil {
			return nil, err
		}
		n := &ast.RTTIDescriptor{
			Code: ast.RTTIBaseClassDescriptor,
			MDisp: int(mDisp), PDisp: int(pDisp), VDisp: int(vDisp), Attributes: attrs,
		}
		n.SetPos(startPos)
		return n, nil
	case '2':
		n := &ast.RTTIDescriptor{Code: ast.RTTIBaseClassArray}
		n.SetPos(startPos)
		return n, nil
	case '3':
		n := &ast.RTTIDescriptor{Code: ast.RTTIClassHierarchyDescriptor}
		n.SetPos(startPos)
		return n, nil
	case '4':
		n := &ast.RTTIDescriptor{Code: ast.RTTICompleteObjectLocator}
		n.SetPos(startPos)
		return n, nil
	default:
		return nil, p.errAt(synerr.InvalidRTTICode, "invalid RTTI code", startPos, sub)
	}
}
