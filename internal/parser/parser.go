// Package parser implements the recursive-descent grammar over mangled
// symbol strings: qualified names, back-reference compression, function and
// data signatures, storage classes, templates, and RTTI descriptors. It
// builds the internal/ast tree bottom-up in a single pass and never exposes
// a partial tree on error.
package parser

import (
	"github.com/cwbudde/symdecode/internal/ast"
	"github.com/cwbudde/symdecode/internal/lexer"
	"github.com/cwbudde/symdecode/internal/synerr"
	"github.com/cwbudde/symdecode/internal/token"
)

// Options controls policy decisions the grammar itself leaves open.
type Options struct {
	// AllowNameFragments lets a caller successfully decode just a qualified
	// name with no trailing kind code, demoting what would otherwise be a
	// premature-end-of-symbol error into a NameOnly symbol.
	AllowNameFragments bool
	// EmulateReferenceBugs reproduces a handful of documented quirks of the
	// reference toolchain's own demangler. Off by default: the decoder
	// produces the semantically faithful form unless a caller opts in.
	EmulateReferenceBugs bool
}

const backrefCap = 10

// scope is one frame of the three back-reference tables. A fresh scope is
// pushed for every template argument list so nested templates cannot
// pollute an outer scope's tables.
type scope struct {
	names  []ast.Name
	params []ast.Type
	args   []ast.TemplateArg
}

func newScope() *scope {
	return &scope{
		names:  make([]ast.Name, 0, backrefCap),
		params: make([]ast.Type, 0, backrefCap),
		args:   make([]ast.TemplateArg, 0, backrefCap),
	}
}

// parser holds the single-pass parse state: the lexer, the back-reference
// scope stack (innermost scope last), and the options the caller supplied.
type parser struct {
	lex     *lexer.Lexer
	scopes  []*scope
	mangled string
	opts    Options
}

// Parse decodes a mangled symbol string into its AST. No Go toolchain
// keyword or grammar subset is skipped: every production in the grammar is
// attempted, and the first failure aborts with a *synerr.Error.
func Parse(mangled string, opts Options) (*ast.Symbol, error) {
	lex, err := lexer.New(mangled)
	if err != nil {
		return nil, err
	}
	p := &parser{lex: lex, mangled: mangled, opts: opts}
	p.pushScope()
	sym, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	if !p.lex.Exhausted() {
		return nil, p.errf(synerr.NonsenseAtEndOfSymbol, "nonsense at end of symbol")
	}
	return sym, nil
}

func (p *parser) pushScope() { p.scopes = append(p.scopes, newScope()) }
func (p *parser) popScope()  { p.scopes = p.scopes[:len(p.scopes)-1] }
func (p *parser) top() *scope { return p.scopes[len(p.scopes)-1] }

func (p *parser) cur() token.Token  { return p.lex.Current() }
func (p *parser) pos() token.Position { return p.lex.Pos() }

func (p *parser) advance() (token.Token, error) {
	return p.lex.Advance()
}

func (p *parser) errf(code synerr.Code, message string) *synerr.Error {
	return synerr.New(code, message, p.cur().Ch, p.cur().Pos, p.mangled)
}

func (p *parser) errAt(code synerr.Code, message string, pos token.Position, ch byte) *synerr.Error {
	return synerr.New(code, message, ch, pos, p.mangled)
}

// expect asserts the current token's byte and advances past it.
func (p *parser) expect(ch byte, code synerr.Code, message string) error {
	if p.cur().Ch != ch {
		return p.errf(code, message)
	}
	return p.advanceOrEnd()
}

// advanceOrEnd advances the cursor, treating running off the end of the
// input as success rather than a "premature end of symbol" error: many
// productions consume their own trailing terminator as the last character
// of the whole mangled string.
func (p *parser) advanceOrEnd() error {
	return p.lex.AdvanceOptional()
}

func (p *parser) registerName(n ast.Name) {
	s := p.top()
	if len(s.names) >= backrefCap {
		return
	}
	s.names = append(s.names, n)
}

func (p *parser) registerParam(t ast.Type) {
	s := p.top()
	if len(s.params) >= backrefCap {
		return
	}
	s.params = append(s.params, t)
}

func (p *parser) registerArg(a ast.TemplateArg) {
	s := p.top()
	if len(s.args) >= backrefCap {
		return
	}
	s.args = append(s.args, a)
}

func (p *parser) resolveName(idx int) (ast.Name, error) {
	s := p.top()
	if idx < 0 || idx >= len(s.names) {
		return nil, p.errf(synerr.InvalidBackReference, "back reference out of range")
	}
	return ast.CloneName(s.names[idx]), nil
}

func (p *parser) resolveParam(idx int) (ast.Type, error) {
	s := p.top()
	if idx < 0 || idx >= len(s.params) {
		return nil, p.errf(synerr.InvalidBackReference, "back reference out of range")
	}
	return ast.CloneType(s.params[idx]), nil
}

func (p *parser) resolveArg(idx int) (ast.TemplateArg, error) {
	s := p.top()
	if idx < 0 || idx >= len(s.args) {
		return nil, p.errf(synerr.InvalidBackReference, "back reference out of range")
	}
	return ast.CloneTemplateArg(s.args[idx]), nil
}
