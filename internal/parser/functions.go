package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/synerr"
)

var callingConventionPairs = []ast.CallingConvention{
	ast.CallCdecl, ast.CallCdecl,
	ast.CallPascal, ast.CallPascal,
	ast.CallThiscall, ast.CallThiscall,
	ast.CallStdcall, ast.CallStdcall,
	ast.CallFastcall, ast.CallFastcall,
	ast.CallClrcall, ast.CallClrcall,
	ast.CallEabi, ast.CallEabi,
	ast.CallVectorcall, ast.CallVectorcall,
}

// parseCallingConvention reads one uppercase letter, mapped in pairs to a
// calling convention plus a save-registers bit (the pair's second member).
func (p *parser) parseCallingConvention() (ast.CallingConvention, bool, error) {
	ch := p.cur().Ch
	idx := int(ch - 'A')
	if ch < 'A' || idx >= len(callingConventionPairs) {
		return 0, false, p.errf(synerr.InvalidCallingConvention, "invalid calling convention")
	}
	if _, err := p.advance(); err != nil {
		return 0, false, err
	}
	return callingConventionPairs[idx], idx%2 == 1, nil
}

// parseFunctionSymbol dispatches on the function kind-code letter: Y/Z are
// non-member functions, and every letter A-X (none is rejected as reserved)
// encodes {protection × instance/static/virtual/virtual-adjustor} for
// member functions in contiguous blocks of 8 letters per protection level.
func (p *parser) parseFunctionSymbol(sym *ast.Symbol, letter byte) (*ast.Symbol, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	sym.Kind = ast.SymbolFunction

	if letter == 'Y' || letter == 'Z' {
		return p.parseGlobalFunction(sym)
	}
	if letter < 'A' || letter > 'X' {
		return nil, p.errf(synerr.InvalidSymbolTypeCode, "invalid function-kind code")
	}

	idx := int(letter - 'A')
	protIdx := idx / 8
	rem := idx % 8
	virtualBlock := rem >= 4
	withinBlock := rem % 4
	isAlt := withinBlock >= 2

	fn := &ast.FunctionSignature{IsMember: true, Protection: ast.Protection(protIdx)}
	switch {
	case !virtualBlock && !isAlt:
		fn.Storage = ast.FunctionInstance
	case !virtualBlock && isAlt:
		fn.Storage = ast.FunctionStatic
		fn.IsStatic = true
	case virtualBlock && !isAlt:
		fn.Storage = ast.FunctionVirtual
	default:
		fn.Storage = ast.FunctionVirtualAdjustor
	}

	if fn.Storage != ast.FunctionStatic {
		mods, err := p.parseStorageModifiers()
		if err != nil {
			return nil, err
		}
		fn.ThisModifiers = mods
		sc, err := p.parseStorageClass()
		if err != nil {
			return nil, err
		}
		if sc.Const {
			fn.ThisModifiers |= ast.ModConst
		}
		if sc.Volatile {
			fn.ThisModifiers |= ast.ModVolatile
		}
	}

	conv, saveRegs, err := p.parseCallingConvention()
	if err != nil {
		return nil, err
	}
	fn.Convention = conv
	fn.SaveRegisters = saveRegs

	if err := p.parseFunctionTail(sym, fn); err != nil {
		return nil, err
	}
	sym.Function = fn
	return sym, nil
}

func (p *parser) parseGlobalFunction(sym *ast.Symbol) (*ast.Symbol, error) {
	fn := &ast.FunctionSignature{Protection: ast.ProtectionPublic, Storage: ast.FunctionStatic}
	conv, saveRegs, err := p.parseCallingConvention()
	if err != nil {
		return nil, err
	}
	fn.Convention = conv
	fn.SaveRegisters = saveRegs
	if err := p.parseFunctionTail(sym, fn); err != nil {
		return nil, err
	}
	sym.Function = fn
	return sym, nil
}

// parseFunctionTail parses the return type (absent for constructors and
// destructors; for a cast operator it is parsed and also becomes the
// operator's target type), the parameter list, and the closing
// 'Z' terminator shared by every function production.
func (p *parser) parseFunctionTail(sym *ast.Symbol, fn *ast.FunctionSignature) error {
	switch sym.Name.Terminal.(type) {
	case *ast.Constructor, *ast.Destructor:
		if p.cur().Ch != '@' {
			return p.errf(synerr.ExpectedReturnType, "constructors and destructors have no return type")
		}
		if _, err := p.advance(); err != nil {
			return err
		}
	default:
		if p.cur().Ch == '?' {
			if _, err := p.advance(); err != nil {
				return err
			}
			if _, err := p.parseStorageClass(); err != nil {
				return err
			}
		}
		ret, err := p.parseType()
		if err != nil {
			return err
		}
		fn.ReturnType = ret
		if cast, ok := sym.Name.Terminal.(*ast.CastOperator); ok {
			cast.TargetType = ast.CloneType(ret)
		}
	}

	params, varArgs, err := p.parseParameterList()
	if err != nil {
		return err
	}
	fn.Params = params
	fn.IsVarArgs = varArgs

	if p.cur().Ch != 'Z' {
		return p.errf(synerr.UnterminatedFunction, "unterminated function")
	}
	return p.advanceOrEnd()
}

// parseParameterList implements the termination rules of spec §4.3.4: a
// lone 'X' is the empty (void) list, 'Z' at any point marks var-args and
// ends the list, '@' ends a non-empty list normally, and a digit invokes
// the parameter-type back-ref table.
func (p *parser) parseParameterList() ([]ast.Type, bool, error) {
	if p.cur().Ch == 'X' {
		if _, err := p.advance(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	var params []ast.Type
	for {
		switch p.cur().Ch {
		case 'Z':
			if _, err := p.advance(); err != nil {
				return nil, false, err
			}
			return params, true, nil
		case '@':
			if len(params) == 0 {
				return nil, false, p.errf(synerr.EmptyParameterList, "empty parameter list")
			}
			if err := p.advanceOrEnd(); err != nil {
				return nil, false, err
			}
			return params, false, nil
		default:
			t, err := p.parseTypeAndRegister()
			if err != nil {
				return nil, false, err
			}
			params = append(params, t)
		}
	}
}

// parseFunctionTypeBody parses a bare function type appearing as a
// declarator target (a function pointer's pointee, or the "$$A" function
// -as-type production): calling convention, return type, parameters, and
// the closing 'Z', with no kind code or enclosing symbol of its own.
func (p *parser) parseFunctionTypeBody(nested *storageClass) (*ast.FunctionType, error) {
	ft := &ast.FunctionType{}
	if nested != nil {
		if nested.Const {
			ft.Qualifiers |= ast.ModConst
		}
		if nested.Volatile {
			ft.Qualifiers |= ast.ModVolatile
		}
	}
	conv, saveRegs, err := p.parseCallingConvention()
	if err != nil {
		return nil, err
	}
	ft.Convention = conv
	ft.SaveRegisters = saveRegs

	if p.cur().Ch == '@' {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ft.ReturnType = ret
	}

	params, varArgs, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	ft.Params = params
	ft.IsVarArgs = varArgs

	if p.cur().Ch != 'Z' {
		return nil, p.errf(synerr.UnterminatedFunction, "unterminated function type")
	}
	if err := p.advanceOrEnd(); err != nil {
		return nil, err
	}
	return ft, nil
}
