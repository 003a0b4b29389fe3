// Package parser implements a recursive-descent parser for the C subset,
// using bounded lookahead exposed via state-restoring speculative probes.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/cerrors"
	"github.com/cwbudde/go-cint/internal/lexer"
	"github.com/cwbudde/go-cint/internal/token"
)

// Error is a SyntaxError: a token mismatch or exhausted input mid-production.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Error() string { return fmt.Sprintf("%s (line %d)", e.Message, e.Line) }

// mark is the snapshot a speculative probe saves and restores: the current
// and lookahead tokens plus the lexer's own cursor position. This is the
// only backtracking mechanism in the parser.
type mark struct {
	cur, peek  token.Token
	lexerState lexer.State
}

// Parser builds a Program AST from a token stream with one token of
// lookahead preloaded.
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token
	// lexerStateAfterPeek is the lexer cursor exactly as it was right after
	// producing peek — the state a mark() snapshot restores the lexer to.
	lexerStateAfterPeek lexer.State
}

// New constructs a Parser over l, preloading the current and lookahead
// tokens.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{l: l}
	cur, err := l.NextToken()
	if err != nil {
		return nil, err
	}
	p.cur = cur
	if err := p.fillPeek(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) fillPeek() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	p.lexerStateAfterPeek = p.l.SaveState()
	return nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	return p.fillPeek()
}

func (p *Parser) mark() mark {
	return mark{cur: p.cur, peek: p.peek, lexerState: p.lexerStateAfterPeek}
}

func (p *Parser) reset(m mark) {
	p.cur = m.cur
	p.peek = m.peek
	p.lexerStateAfterPeek = m.lexerState
	p.l.RestoreState(m.lexerState)
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: p.cur.Position.Line}
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, p.errorf("expected %s, found %s %q", k, p.cur.Kind, p.cur.Literal)
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return t, nil
}

func (p *Parser) pos() token.Position { return p.cur.Position }

// ParseProgram parses the entire input as a Program and asserts EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	prog.Pos = p.pos()
	for p.cur.Kind != token.EOF {
		decls, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, decls...)
	}
	return prog, nil
}

// parseDeclaration parses one top-level declaration. A variable
// declarator list (`int x=1, y=2;`) expands to more than one node
// (declarations, then assignments, in that order), so this returns a
// slice.
func (p *Parser) parseDeclaration() ([]ast.Node, error) {
	if p.cur.Kind == token.HASH {
		n, err := p.parseInclude()
		if err != nil {
			return nil, err
		}
		return []ast.Node{n}, nil
	}
	if !p.cur.Kind.IsTypeKeyword() {
		return nil, p.errorf("expected declaration, found %s %q", p.cur.Kind, p.cur.Literal)
	}

	isFunc, err := p.probeIsFunctionDecl()
	if err != nil {
		return nil, err
	}
	if isFunc {
		n, err := p.parseFunctionDeclaration()
		if err != nil {
			return nil, err
		}
		return []ast.Node{n}, nil
	}
	return p.parseVarDecls()
}

// probeIsFunctionDecl distinguishes `type ID (` (function) from `type ID`
// followed by `;`, `,`, or `=` (variable declaration), using a single
// speculative probe that is restored unconditionally.
func (p *Parser) probeIsFunctionDecl() (bool, error) {
	m := p.mark()
	defer p.reset(m)

	if err := p.advance(); err != nil { // consume type keyword
		return false, err
	}
	if p.cur.Kind != token.ID {
		return false, nil
	}
	if err := p.advance(); err != nil { // consume identifier
		return false, err
	}
	return p.cur.Kind == token.LPAREN, nil
}

func (p *Parser) parseInclude() (*ast.IncludeLibrary, error) {
	pos := p.pos()
	if _, err := p.expect(token.HASH); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.INCLUDE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DOT); err != nil {
		return nil, err
	}
	extTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if extTok.Literal != "h" {
		return nil, cerrors.New(cerrors.Semantic, extTok.Position.Line, fmt.Sprintf("include extension must be 'h', found %q", extTok.Literal))
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	return &ast.IncludeLibrary{
		BaseNode:    ast.NewBase(pos),
		LibraryName: nameTok.Literal,
	}, nil
}

func (p *Parser) parseTypeNode() (*ast.TypeNode, error) {
	tok := p.cur
	if !tok.Kind.IsTypeKeyword() {
		return nil, p.errorf("expected type keyword, found %s %q", tok.Kind, tok.Literal)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.TypeNode{BaseNode: ast.NewBase(tok.Position), Token: tok, Name: tok.Literal}, nil
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	pos := p.pos()
	retType, err := p.parseTypeNode()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if p.cur.Kind != token.RPAREN {
		for {
			pt, err := p.parseTypeNode()
			if err != nil {
				return nil, err
			}
			pn, err := p.expect(token.ID)
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Param{
				BaseNode: ast.NewBase(pt.Pos),
				Type:     pt,
				Name:     &ast.Var{BaseNode: ast.NewBase(pn.Position), Name: pn.Literal},
			})
			if p.cur.Kind != token.COMMA {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseCompoundStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{
		BaseNode:   ast.NewBase(pos),
		ReturnType: retType,
		Name:       nameTok.Literal,
		Params:     params,
		Body:       body,
	}, nil
}

// parseVarDecls parses `type init_decl (',' init_decl)* ';'`. It returns
// every VarDeclaration first, in declarator order, followed by every
// Assign produced by an initializer — "declare first, then assign", per
// the declarator-list ordering rule.
func (p *Parser) parseVarDecls() ([]ast.Node, error) {
	typ, err := p.parseTypeNode()
	if err != nil {
		return nil, err
	}
	var decls, assigns []ast.Node
	for {
		nameTok, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		v := &ast.Var{BaseNode: ast.NewBase(nameTok.Position), Name: nameTok.Literal}
		decls = append(decls, &ast.VarDeclaration{BaseNode: ast.NewBase(nameTok.Position), Type: typ, Name: v})
		if p.cur.Kind == token.ASSIGN {
			assignPos := p.pos()
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			assigns = append(assigns, &ast.Assign{BaseNode: ast.NewBase(assignPos), Left: v, Operator: "=", Right: rhs})
		}
		if p.cur.Kind != token.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return append(decls, assigns...), nil
}
