package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/synerr"
	"github.com/cwbudde/symdecode/internal/token"
)

// parseSymbol is the grammar's top-level entry: symbol := '?' body.
func (p *parser) parseSymbol() (*ast.Symbol, error) {
	startPos := p.pos()
	if p.cur().Ch != '?' {
		return nil, p.errf(synerr.BadSymbolStart, "mangled symbols must begin with '?'")
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	// Code-view-reserved ('?@ body') and double-encoded ('??? body')
	// variants both recurse into the ordinary qualified-name-plus-kind-code
	// body. Per the grammar's own open question on the double-encoded form,
	// this parses as far as the nested body goes and does not invent an
	// extraction rule for any trailing suffix beyond it.
	switch {
	case p.cur().Ch == '@':
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	case p.cur().Ch == '?' && p.lex.Peek().Ch == '?':
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}

	return p.parseSymbolBody(startPos)
}

func (p *parser) parseSymbolBody(startPos token.Position) (*ast.Symbol, error) {
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	backfillClassName(name)

	// Exhausted, not AtEnd: the kind code after the qualified name's closing
	// '@' may itself be the mangled string's last byte (e.g. RTTI's trailing
	// '8'), in which case the cursor is still sitting on it, unread, and
	// AtEnd is already true although something is left to read.
	if p.lex.Exhausted() && p.opts.AllowNameFragments {
		sym := ast.NewSymbol(startPos, p.mangled, name)
		sym.Kind = ast.SymbolNameFragment
		sym.NameOnly = true
		return sym, nil
	}
	if p.lex.Exhausted() {
		return nil, p.errf(synerr.PrematureEndOfSymbol, "premature end of symbol")
	}

	kind := p.cur()
	sym := ast.NewSymbol(startPos, p.mangled, name)

	switch {
	case kind.Class == token.Digit:
		return p.parseDataSymbol(sym, kind.Ch)
	case kind.Class == token.UppercaseLetter:
		return p.parseFunctionSymbol(sym, kind.Ch)
	default:
		return nil, p.errf(synerr.InvalidSymbolTypeCode, "invalid symbol-type code")
	}
}

// parseQualifiedName parses: terminal identifier, then qualifiers
// innermost-first, terminated by '@'.
func (p *parser) parseQualifiedName() (*ast.QualifiedName, error) {
	startPos := p.pos()
	terminal, err := p.parseTerminalName()
	if err != nil {
		return nil, err
	}
	qn := &ast.QualifiedName{Terminal: terminal}
	qn.SetPos(startPos)

	for {
		if p.cur().Ch == '@' {
			if err := p.advanceOrEnd(); err != nil {
				return nil, err
			}
			break
		}
		if p.lex.AtEnd() {
			return nil, p.errf(synerr.UnterminatedQualifiedName, "unterminated qualified name")
		}
		q, err := p.parseQualifier()
		if err != nil {
			return nil, err
		}
		qn.Qualifiers = append(qn.Qualifiers, q)
	}
	return qn, nil
}

func (p *parser) parseQualifier() (ast.Name, error) {
	tok := p.cur()
	switch {
	case tok.Class == token.Digit:
		idx, _ := tok.DigitValue()
		if err := p.advanceOrEnd(); err != nil {
			return nil, err
		}
		return p.resolveName(idx)
	case tok.Ch == '?':
		return p.parseSpecialQualifier()
	default:
		return p.parsePlainIdentifier()
	}
}

// parsePlainIdentifier accumulates identifier characters up to '@'.
func (p *parser) parsePlainIdentifier() (*ast.Identifier, error) {
	startPos := p.pos()
	var buf []byte
	for p.cur().Ch != '@' {
		if !p.cur().IsIdentifierChar() {
			return nil, p.errf(synerr.InvalidIdentifierCharacter, "invalid identifier character")
		}
		buf = append(buf, p.cur().Ch)
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.advanceOrEnd(); err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(startPos, string(buf))
	p.registerName(id)
	return id, nil
}

// parseTerminalName parses the symbol's innermost name: a plain identifier,
// a digit back reference into the name table, or one of the special forms
// opened by '?' (operators, constructors, destructors, compiler-generated
// special names, templates, RTTI).
func (p *parser) parseTerminalName() (ast.Name, error) {
	if p.cur().Class == token.Digit {
		return p.parseQualifier()
	}
	if p.cur().Ch != '?' {
		return p.parsePlainIdentifier()
	}
	return p.parseSpecialName()
}

// parseSpecialName handles the '?'-introduced name productions that may
// appear as a symbol's terminal name.
func (p *parser) parseSpecialName() (ast.Name, error) {
	startPos := p.pos()
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	tok := p.cur()
	switch {
	case tok.Ch == '$':
		return p.parseTemplateName(startPos)
	case tok.Ch == '_':
		return p.parseUnderscoreSpecialName(startPos)
	case tok.Class == token.Digit:
		code, _ := tok.DigitValue()
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return p.operatorOrCtorDtor(startPos, code)
	case tok.Class == token.UppercaseLetter:
		return p.operatorLetterName(startPos, tok.Ch)
	default:
		return nil, p.errf(synerr.InvalidSpecialNameCode, "invalid special-name code")
	}
}

// operatorOrCtorDtor maps the '?0'..'?9' codes: 0 is the constructor, 1 the
// destructor, the rest enumerated C++ operators.
func (p *parser) operatorOrCtorDtor(pos token.Position, code int) (ast.Name, error) {
	switch code {
	case 0:
		c := &ast.Constructor{}
		c.SetPos(pos)
		return c, nil
	case 1:
		d := &ast.Destructor{}
		d.SetPos(pos)
		return d, nil
	default:
		opMap := map[int]ast.OperatorCode{
			2: ast.OpNew, 3: ast.OpDelete, 4: ast.OpAssign, 5: ast.OpRShift,
			6: ast.OpLShift, 7: ast.OpNot, 8: ast.OpEq, 9: ast.OpNotEq,
		}
		op, ok := opMap[code]
		if !ok {
			return nil, p.errAt(synerr.InvalidSpecialNameCode, "invalid special-name code", pos, 0)
		}
		o := &ast.Operator{Code: op}
		o.SetPos(pos)
		return o, nil
	}
}

var letterOperatorCodes = map[byte]ast.OperatorCode{
	'A': ast.OpIndex, 'B': ast.OpArrow, 'C': ast.OpDeref, 'D': ast.OpInc,
	'E': ast.OpDec, 'F': ast.OpNeg, 'G': ast.OpPos, 'H': ast.OpAddrOf,
	'I': ast.OpArrowStar, 'J': ast.OpDiv, 'K': ast.OpMod, 'L': ast.OpLt,
	'M': ast.OpLtEq, 'N': ast.OpGt, 'O': ast.OpGtEq, 'P': ast.OpComma,
	'Q': ast.OpCall, 'R': ast.OpComplement, 'S': ast.OpXor, 'T': ast.OpOr,
	'U': ast.OpLAnd, 'V': ast.OpLOr, 'W': ast.OpMulAssign, 'X': ast.OpAddAssign,
	'Y': ast.OpSubAssign, 'Z': ast.OpDivAssign,
}

// operatorLetterName maps the '?A'..'?Z' letter codes: '?B' opens a cast
// operator, every other letter is looked up in letterOperatorCodes.
// operator new[] / delete[] ("?_U" / "?_V") are rejected by
// parseUnderscoreSpecialName instead.
func (p *parser) operatorLetterName(pos token.Position, ch byte) (ast.Name, error) {
	if ch == 'B' {
		// "operator TargetType" cast operator: return type resolved later.
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		c := &ast.CastOperator{}
		c.SetPos(pos)
		return c, nil
	}
	op, ok := letterOperatorCodes[ch]
	if !ok {
		return nil, p.errAt(synerr.InvalidSpecialNameCode, "invalid special-name code", pos, ch)
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	o := &ast.Operator{Code: op}
	o.SetPos(pos)
	return o, nil
}

var underscoreSpecialCodes = map[byte]ast.SpecialKind{
	'0': ast.SpecialDynamicInitializer,
	'1': ast.SpecialDynamicAtexitDestructor,
	'2': ast.SpecialManagedVectorCtorIterator,
	'3': ast.SpecialManagedVectorDtorIterator,
	'4': ast.SpecialEHVectorCtorIterator,
	'5': ast.SpecialEHVectorDtorIterator,
	'6': ast.SpecialEHVectorVbaseCtorIterator,
	'7': ast.SpecialCopyCtorClosure,
	'8': ast.SpecialLocalVFTable,
	'9': ast.SpecialLocalVFTableCtorClosure,
	'A': ast.SpecialTypeof,
	'D': ast.SpecialLocalStaticGuard,
	'E': ast.SpecialVectorDeletingDtor,
	'F': ast.SpecialDefaultCtorClosure,
	'G': ast.SpecialScalarDeletingDtor,
	'H': ast.SpecialVBaseDtor,
	'S': ast.SpecialLocalStaticThreadGuard,
	'W': ast.SpecialVectorVbaseCtorIterator,
	'X': ast.SpecialVirtualDisplacementMap,
}

// parseUnderscoreSpecialName handles the "?_X" catalogue (vftable, vbtable,
// vcall, guard, vbase/scalar/vector deleting destructors, ctor closures,
// ...) and the "?_R" RTTI sub-grammar. "?_U" (operator new[]) and "?_V"
// (operator delete[]) are rejected with an InvalidSpecialNameCode error.
func (p *parser) parseUnderscoreSpecialName(startPos token.Position) (ast.Name, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	ch := p.cur().Ch
	if ch == 'R' {
		return p.parseRTTIName(startPos)
	}
	if ch == '7' {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		s := &ast.Special{Kind: ast.SpecialVFTable}
		s.SetPos(startPos)
		return p.maybeVTableTarget(s)
	}
	if ch == '8' {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		s := &ast.Special{Kind: ast.SpecialVBTable}
		s.SetPos(startPos)
		return p.maybeVTableTarget(s)
	}
	if ch == '9' {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		s := &ast.Special{Kind: ast.SpecialVCall}
		s.SetPos(startPos)
		return s, nil
	}
	if ch == 'U' || ch == 'V' {
		return nil, p.errf(synerr.InvalidSpecialNameCode, "operator new[] / delete[] (?_U / ?_V) is not supported")
	}
	kind, ok := underscoreSpecialCodes[ch]
	if !ok {
		return nil, p.errf(synerr.InvalidSpecialNameCode, "invalid special-name code")
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	s := &ast.Special{Kind: kind}
	s.SetPos(startPos)
	return s, nil
}

// maybeVTableTarget consumes an optional "{for 'Target'}" qualified-name
// suffix that may follow a vftable/vbtable special name.
func (p *parser) maybeVTableTarget(s *ast.Special) (ast.Name, error) {
	if p.lex.AtEnd() || p.cur().Ch == '@' {
		return s, nil
	}
	target, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	s.Target = target
	return s, nil
}

// parseSpecialQualifier handles a '?'-introduced qualifier: anonymous
// namespace, lexical frame, template, or nested symbol.
func (p *parser) parseSpecialQualifier() (ast.Name, error) {
	startPos := p.pos()
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	tok := p.cur()
	switch {
	case tok.Ch == '%' || tok.Ch == 'A':
		return p.parseAnonymousNamespace(startPos)
	case tok.Class == token.Digit:
		return p.parseLexicalFrame(startPos)
	case tok.Ch == '$':
		return p.parseTemplateName(startPos)
	case tok.Ch == '?':
		return p.parseNestedSymbolQualifier(startPos)
	default:
		return nil, p.errf(synerr.InvalidSpecialNameCode, "invalid special-name code")
	}
}

func (p *parser) parseAnonymousNamespace(pos token.Position) (ast.Name, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	var buf []byte
	for p.cur().Ch != '@' {
		buf = append(buf, p.cur().Ch)
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.advanceOrEnd(); err != nil {
		return nil, err
	}
	n := &ast.AnonymousNamespace{Generated: string(buf)}
	n.SetPos(pos)
	p.registerName(n)
	return n, nil
}

func (p *parser) parseLexicalFrame(pos token.Position) (ast.Name, error) {
	idx, err := p.parseUnsignedInteger()
	if err != nil {
		return nil, err
	}
	n := &ast.LexicalFrame{Index: idx}
	n.SetPos(pos)
	p.registerName(n)
	return n, nil
}

func (p *parser) parseNestedSymbolQualifier(pos token.Position) (ast.Name, error) {
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	inner, err := p.parseSymbolBody(pos)
	if err != nil {
		return nil, err
	}
	n := &ast.SpecialQualifier{Inner: inner}
	n.SetPos(pos)
	p.registerName(n)
	return n, nil
}

// backfillClassName gives a constructor or destructor terminal the name of
// its enclosing class, eliminating the need for a parent pointer on the AST
// node itself (the name is already fully known once the qualified name has
// been parsed).
func backfillClassName(name *ast.QualifiedName) {
	switch t := name.Terminal.(type) {
	case *ast.Constructor:
		t.ClassName = name.InnermostClassName()
	case *ast.Destructor:
		t.ClassName = name.InnermostClassName()
	}
}
