package interp

import (
	"strconv"

	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func (e *Evaluator) evalExpr(expr ast.Expression) (memory.Value, error) {
	switch n := expr.(type) {
	case *ast.Num:
		return e.evalNum(n)
	case *ast.CharLit:
		return number.NewChar(n.Token.Literal[0]), nil
	case *ast.StringLit:
		return memory.Str(n.Value), nil
	case *ast.Var:
		v, err := e.mem.Get(n.Name)
		return v, wrapMemErr(n.Line(), err)
	case *ast.Assign:
		return e.evalAssign(n)
	case *ast.CommaExpression:
		var last memory.Value
		for _, c := range n.Children {
			v, err := e.evalExpr(c)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	case *ast.BinaryOperator:
		return e.evalBinary(n)
	case *ast.UnaryOperator:
		return e.evalUnary(n)
	case *ast.TernaryOperator:
		return e.evalTernary(n)
	case *ast.FunctionCall:
		return e.evalCall(n)
	case *ast.NoOp:
		return nil, nil
	default:
		return nil, runtimeErr(expr.Line(), "unexpected expression node %T", expr)
	}
}

func (e *Evaluator) evalNum(n *ast.Num) (memory.Value, error) {
	if n.IsReal {
		f, err := strconv.ParseFloat(n.Token.Literal, 64)
		if err != nil {
			return nil, runtimeErr(n.Line(), "malformed numeric literal %q", n.Token.Literal)
		}
		return number.NewDouble(f), nil
	}
	i, err := strconv.ParseInt(n.Token.Literal, 10, 64)
	if err != nil {
		return nil, runtimeErr(n.Line(), "malformed numeric literal %q", n.Token.Literal)
	}
	return number.NewInt(i), nil
}

func (e *Evaluator) evalAssign(a *ast.Assign) (memory.Value, error) {
	v, ok := a.Left.(*ast.Var)
	if !ok {
		return nil, runtimeErr(a.Line(), "assignment target must be a variable")
	}
	rhs, err := e.evalExpr(a.Right)
	if err != nil {
		return nil, err
	}
	rn, ok := rhs.(number.Number)
	if !ok {
		return nil, typeErr(a.Line(), "assignment requires a numeric value")
	}

	result := rn
	if a.Operator != "=" {
		cur, err := e.mem.Get(v.Name)
		if err != nil {
			return nil, wrapMemErr(a.Line(), err)
		}
		cn, ok := cur.(number.Number)
		if !ok {
			return nil, typeErr(a.Line(), "'%s' is not numeric", v.Name)
		}
		switch a.Operator {
		case "+=":
			result = number.Add(cn, rn)
		case "-=":
			result = number.Sub(cn, rn)
		case "*=":
			result = number.Mul(cn, rn)
		case "/=":
			result, err = number.Div(cn, rn)
			if err != nil {
				return nil, runtimeErr(a.Line(), "%s", err.Error())
			}
		default:
			return nil, runtimeErr(a.Line(), "unknown assignment operator '%s'", a.Operator)
		}
	}

	if err := e.mem.Set(v.Name, result); err != nil {
		return nil, wrapMemErr(a.Line(), err)
	}
	return result, nil
}

func (e *Evaluator) evalTernary(t *ast.TernaryOperator) (memory.Value, error) {
	cond, err := e.truthy(t.Condition)
	if err != nil {
		return nil, err
	}
	if cond {
		return e.evalExpr(t.Then)
	}
	return e.evalExpr(t.Else)
}
