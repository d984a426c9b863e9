package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/synerr"
)

// parseDataSymbol implements spec §4.3.1's digit-kind dispatch and §4.3.9's
// data-symbol body: the variable's type, its storage modifiers, then its
// storage class, in that order.
func (p *parser) parseDataSymbol(sym *ast.Symbol, kindCh byte) (*ast.Symbol, error) {
	if err := p.advanceOrEnd(); err != nil {
		return nil, err
	}
	switch {
	case kindCh >= '0' && kindCh <= '2':
		sym.Kind = ast.SymbolVariable
		return p.parseVariableBody(sym, ast.Protection(int(kindCh-'0')), true)
	case kindCh == '3':
		sym.Kind = ast.SymbolVariable
		return p.parseVariableBody(sym, ast.ProtectionPublic, false)
	case kindCh == '6':
		// Vtable-like special data: the ordinary type/storage-class body,
		// optionally followed by the qualified name of the class the vtable
		// is "for" (rendered "{for `Target'}", mirroring the _7/_8
		// vftable/vbtable special names' own target suffix).
		sym.Kind = ast.SymbolVariable
		if _, err := p.parseVariableBody(sym, ast.ProtectionPublic, false); err != nil {
			return nil, err
		}
		return p.maybeDataVTableTarget(sym)
	case kindCh == '4' || kindCh == '5' || kindCh == '7':
		// Reserved data kinds (guard / local / vbtable-like): parsed the
		// same way as an ordinary global for fidelity, since the grammar
		// gives no further structure for them beyond the type and storage
		// class every data symbol carries.
		sym.Kind = ast.SymbolVariable
		return p.parseVariableBody(sym, ast.ProtectionPublic, false)
	case kindCh == '8':
		sym.Kind = ast.SymbolRTTI
		return sym, nil
	case kindCh == '9':
		return nil, p.errf(synerr.InvalidSymbolTypeCode, "reserved symbol-type code")
	default:
		return nil, p.errf(synerr.InvalidSymbolTypeCode, "invalid symbol-type code")
	}
}

// parseVariableBody parses a data symbol's type, storage modifiers, and
// storage class. The source compiler is observed to write the referent's
// storage class at this position for pointer variables rather than the
// pointer's own; that quirk is preserved as-received here rather than
// corrected, matching spec §4.3.9's fidelity note.
func (p *parser) parseVariableBody(sym *ast.Symbol, prot ast.Protection, isMember bool) (*ast.Symbol, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	mods, err := p.parseStorageModifiers()
	if err != nil {
		return nil, err
	}
	sc, err := p.parseStorageClass()
	if err != nil {
		return nil, err
	}
	vi := &ast.VariableInfo{
		Type: typ,
		Storage: ast.DataStorageClass{
			Protection: prot,
			IsMember:   isMember,
			IsStatic:   isMember,
			Modifiers:  mods,
		},
	}
	if sc.Based {
		vi.Storage.BasedOn = sc.BasedName
	}
	sym.Variable = vi
	return sym, nil
}

// maybeDataVTableTarget consumes the optional qualified-name target that
// may follow a kind-6 vtable data symbol's ordinary body. Exhausted, not
// AtEnd, is the right check here: a single trailing byte is still a valid
// start of a target name, not proof that nothing follows.
func (p *parser) maybeDataVTableTarget(sym *ast.Symbol) (*ast.Symbol, error) {
	if p.lex.Exhausted() {
		return sym, nil
	}
	target, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	sym.VTableTarget = target
	return sym, nil
}
