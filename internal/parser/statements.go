package parser

import (
	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/token"
)

func (p *Parser) parseCompoundStatement() (*ast.CompoundStatement, error) {
	pos := p.pos()
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var children []ast.Node
	for p.cur.Kind != token.RBRACE {
		if p.cur.Kind == token.EOF {
			return nil, p.errorf("unexpected EOF, expected %s", token.RBRACE)
		}
		if p.cur.Kind.IsTypeKeyword() {
			decls, err := p.parseVarDecls()
			if err != nil {
				return nil, err
			}
			children = append(children, decls...)
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.CompoundStatement{BaseNode: ast.NewBase(pos), Children: children}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.LBRACE:
		return p.parseCompoundStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{BaseNode: ast.NewBase(pos)}, nil
	case token.CONTINUE:
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{BaseNode: ast.NewBase(pos)}, nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'if'
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var alt ast.Statement
	if p.cur.Kind == token.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		alt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStatement{BaseNode: ast.NewBase(pos), Condition: cond, Consequence: then, Alternative: alt}, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'while'
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{BaseNode: ast.NewBase(pos), Condition: cond, Body: body}, nil
}

func (p *Parser) parseDoWhileStatement() (*ast.DoWhileStatement, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'do'
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WHILE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{BaseNode: ast.NewBase(pos), Condition: cond, Body: body}, nil
}

func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'for'
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	setup, err := p.parseExpressionStatement()
	if err != nil {
		return nil, err
	}
	var cond ast.Expression
	if p.cur.Kind != token.SEMI {
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	var inc ast.Expression
	if p.cur.Kind != token.RPAREN {
		inc, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var setupNode ast.Node = setup
	if setup.Expr == nil {
		setupNode = &ast.NoOp{BaseNode: ast.NewBase(setup.Pos)}
	}
	return &ast.ForStatement{BaseNode: ast.NewBase(pos), Setup: setupNode, Condition: cond, Increment: inc, Body: body}, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStmt, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'return'
		return nil, err
	}
	var val ast.Expression
	if p.cur.Kind != token.SEMI {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		val = v
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{BaseNode: ast.NewBase(pos), Value: val}, nil
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	pos := p.pos()
	if p.cur.Kind == token.SEMI {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{BaseNode: ast.NewBase(pos)}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{BaseNode: ast.NewBase(pos), Expr: expr}, nil
}
