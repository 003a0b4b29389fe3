package parser

import (
	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/token"
)

var assignOps = map[token.Kind]string{
	token.ASSIGN:       "=",
	token.PLUS_ASSIGN:  "+=",
	token.MINUS_ASSIGN: "-=",
	token.STAR_ASSIGN:  "*=",
	token.SLASH_ASSIGN: "/=",
}

// parseExpression parses the comma-operator level: assignment (',' assignment)*.
func (p *Parser) parseExpression() (ast.Expression, error) {
	pos := p.pos()
	first, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.COMMA {
		return first, nil
	}
	children := []ast.Expression{first}
	for p.cur.Kind == token.COMMA {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return &ast.CommaExpression{BaseNode: ast.NewBase(pos), Children: children}, nil
}

// parseAssignment implements `variable asg_op assignment | conditional`.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	pos := p.pos()
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	op, isAssign := assignOps[p.cur.Kind]
	if !isAssign {
		return left, nil
	}
	v, ok := left.(*ast.Var)
	if !ok {
		return nil, p.errorf("left-hand side of assignment must be a variable")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{BaseNode: ast.NewBase(pos), Left: v, Operator: op, Right: rhs}, nil
}

// parseConditional implements `logical_or ('?' expression ':' conditional)?`.
func (p *Parser) parseConditional() (ast.Expression, error) {
	pos := p.pos()
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.QUESTION {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryOperator{BaseNode: ast.NewBase(pos), Condition: cond, Then: thenExpr, Else: elseExpr}, nil
}

// binaryLevel builds one left-associative precedence level over next,
// consuming any token whose kind is in ops.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops map[token.Kind]string) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur.Kind]
		if !ok {
			return left, nil
		}
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperator{BaseNode: ast.NewBase(pos), Left: left, Operator: op, Right: right}
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseLogicalAnd, map[token.Kind]string{token.LOGICAL_OR: "||"})
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitOr, map[token.Kind]string{token.LOGICAL_AND: "&&"})
}

func (p *Parser) parseBitOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitXor, map[token.Kind]string{token.BIT_OR: "|"})
}

func (p *Parser) parseBitXor() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitAnd, map[token.Kind]string{token.BIT_XOR: "^"})
}

func (p *Parser) parseBitAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseEquality, map[token.Kind]string{token.BIT_AND: "&"})
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.binaryLevel(p.parseRelational, map[token.Kind]string{token.EQ: "==", token.NOT_EQ: "!="})
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.binaryLevel(p.parseShift, map[token.Kind]string{
		token.LT: "<", token.GT: ">", token.LE: "<=", token.GE: ">=",
	})
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.binaryLevel(p.parseAdditive, map[token.Kind]string{token.SHL: "<<", token.SHR: ">>"})
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.binaryLevel(p.parseMultiplicative, map[token.Kind]string{token.PLUS: "+", token.MINUS: "-"})
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.parseCast, map[token.Kind]string{
		token.STAR: "*", token.SLASH: "/", token.PERCENT: "%",
	})
}

// parseCast handles a leading `(Type)` prefix via a speculative probe, since
// `(` also introduces a parenthesized expression.
func (p *Parser) parseCast() (ast.Expression, error) {
	if p.cur.Kind == token.LPAREN {
		isCast, err := p.probeCast()
		if err != nil {
			return nil, err
		}
		if isCast {
			pos := p.pos()
			if err := p.advance(); err != nil { // '('
				return nil, err
			}
			typ, err := p.parseTypeNode()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			inner, err := p.parseCast()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperator{BaseNode: ast.NewBase(pos), Operator: typ.Name, Expr: inner, Prefix: true, CastType: typ}, nil
		}
	}
	return p.parseUnary()
}

// probeCast reports whether the upcoming `(` begins a cast `(type)`, using
// a speculative probe that is always restored.
func (p *Parser) probeCast() (bool, error) {
	m := p.mark()
	defer p.reset(m)

	if err := p.advance(); err != nil { // '('
		return false, err
	}
	if !p.cur.Kind.IsTypeKeyword() {
		return false, nil
	}
	if err := p.advance(); err != nil { // type keyword
		return false, err
	}
	return p.cur.Kind == token.RPAREN, nil
}

var unaryPrefixOps = map[token.Kind]string{
	token.INC:   "++",
	token.DEC:   "--",
	token.NOT:   "!",
	token.PLUS:  "+",
	token.MINUS: "-",
	token.BIT_AND: "&",
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := unaryPrefixOps[p.cur.Kind]; ok {
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseCast()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperator{BaseNode: ast.NewBase(pos), Operator: op, Expr: operand, Prefix: true}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case token.INC, token.DEC:
			pos := p.pos()
			op := p.cur.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr = &ast.UnaryOperator{BaseNode: ast.NewBase(pos), Operator: op, Expr: expr, Prefix: false}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	pos := p.pos()
	switch p.cur.Kind {
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil // parenthesized expression returns the contained node directly

	case token.INTEGER_CONST:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Num{BaseNode: ast.NewBase(pos), Token: tok, IsReal: false}, nil

	case token.REAL_CONST:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Num{BaseNode: ast.NewBase(pos), Token: tok, IsReal: true}, nil

	case token.CHAR_CONST:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.CharLit{BaseNode: ast.NewBase(pos), Token: tok}, nil

	case token.STRING:
		val := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLit{BaseNode: ast.NewBase(pos), Value: val}, nil

	case token.ID:
		name := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == token.LPAREN {
			return p.parseCallArgs(pos, name)
		}
		return &ast.Var{BaseNode: ast.NewBase(pos), Name: name}, nil

	default:
		return nil, p.errorf("unexpected token %s %q in expression", p.cur.Kind, p.cur.Literal)
	}
}

func (p *Parser) parseCallArgs(pos token.Position, name string) (ast.Expression, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if p.cur.Kind != token.RPAREN {
		for {
			arg, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
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
	return &ast.FunctionCall{BaseNode: ast.NewBase(pos), Name: name, Args: args}, nil
}
