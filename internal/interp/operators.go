package interp

import (
	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func (e *Evaluator) evalBinary(b *ast.BinaryOperator) (memory.Value, error) {
	if b.Operator == "&&" || b.Operator == "||" {
		return e.evalShortCircuit(b)
	}

	leftVal, err := e.evalExpr(b.Left)
	if err != nil {
		return nil, err
	}
	rightVal, err := e.evalExpr(b.Right)
	if err != nil {
		return nil, err
	}
	left, ok := leftVal.(number.Number)
	if !ok {
		return nil, typeErr(b.Line(), "operator '%s' requires numeric operands", b.Operator)
	}
	right, ok := rightVal.(number.Number)
	if !ok {
		return nil, typeErr(b.Line(), "operator '%s' requires numeric operands", b.Operator)
	}

	switch b.Operator {
	case "+":
		return number.Add(left, right), nil
	case "-":
		return number.Sub(left, right), nil
	case "*":
		return number.Mul(left, right), nil
	case "/":
		v, err := number.Div(left, right)
		if err != nil {
			return nil, runtimeErr(b.Line(), "%s", err.Error())
		}
		return v, nil
	case "%":
		if left.IsFloating() || right.IsFloating() {
			return nil, typeErr(b.Line(), "'%%' requires integer operands, got %s and %s", left.Type, right.Type)
		}
		v, err := number.Mod(left, right)
		if err != nil {
			return nil, runtimeErr(b.Line(), "%s", err.Error())
		}
		return v, nil
	case "|", "^", "&", "<<", ">>":
		return e.evalBitwise(b, left, right)
	case "<":
		return number.Lt(left, right), nil
	case ">":
		return number.Gt(left, right), nil
	case "<=":
		return number.Le(left, right), nil
	case ">=":
		return number.Ge(left, right), nil
	case "==":
		return number.Eq(left, right), nil
	case "!=":
		return number.Ne(left, right), nil
	default:
		return nil, runtimeErr(b.Line(), "unknown binary operator '%s'", b.Operator)
	}
}

func (e *Evaluator) evalBitwise(b *ast.BinaryOperator, left, right number.Number) (memory.Value, error) {
	if left.IsFloating() || right.IsFloating() {
		return nil, typeErr(b.Line(), "'%s' requires integer operands, got %s and %s", b.Operator, left.Type, right.Type)
	}
	switch b.Operator {
	case "|":
		v, _ := number.BitOr(left, right)
		return v, nil
	case "^":
		v, _ := number.BitXor(left, right)
		return v, nil
	case "&":
		v, _ := number.BitAnd(left, right)
		return v, nil
	case "<<":
		v, _ := number.Shl(left, right)
		return v, nil
	default: // ">>"
		v, _ := number.Shr(left, right)
		return v, nil
	}
}

// evalShortCircuit implements && and ||, evaluating the right operand only
// when the left doesn't already determine the result.
func (e *Evaluator) evalShortCircuit(b *ast.BinaryOperator) (memory.Value, error) {
	leftTruthy, err := e.truthy(b.Left)
	if err != nil {
		return nil, err
	}
	if b.Operator == "&&" && !leftTruthy {
		return number.NewInt(0), nil
	}
	if b.Operator == "||" && leftTruthy {
		return number.NewInt(1), nil
	}
	rightTruthy, err := e.truthy(b.Right)
	if err != nil {
		return nil, err
	}
	if rightTruthy {
		return number.NewInt(1), nil
	}
	return number.NewInt(0), nil
}

func (e *Evaluator) evalUnary(u *ast.UnaryOperator) (memory.Value, error) {
	if u.CastType != nil {
		return e.evalCast(u)
	}

	switch u.Operator {
	case "++", "--":
		return e.evalIncDec(u)
	case "!":
		n, err := e.evalNumericOperand(u.Expr)
		if err != nil {
			return nil, err
		}
		return number.Not(n), nil
	case "+":
		n, err := e.evalNumericOperand(u.Expr)
		if err != nil {
			return nil, err
		}
		return n, nil
	case "-":
		n, err := e.evalNumericOperand(u.Expr)
		if err != nil {
			return nil, err
		}
		return number.Neg(n), nil
	case "&":
		// Reachable only if the semantic analyzer was bypassed: '&' has no
		// runtime value outside a scanf argument, which evalCall handles
		// without ever calling evalExpr on the UnaryOperator itself.
		return nil, runtimeErr(u.Line(), "'&' is only valid as a scanf argument")
	default:
		return nil, runtimeErr(u.Line(), "unknown unary operator '%s'", u.Operator)
	}
}

func (e *Evaluator) evalNumericOperand(expr ast.Expression) (number.Number, error) {
	v, err := e.evalExpr(expr)
	if err != nil {
		return number.Number{}, err
	}
	n, ok := v.(number.Number)
	if !ok {
		return number.Number{}, typeErr(expr.Line(), "operator requires a numeric operand")
	}
	return n, nil
}

func (e *Evaluator) evalCast(u *ast.UnaryOperator) (memory.Value, error) {
	n, err := e.evalNumericOperand(u.Expr)
	if err != nil {
		return nil, err
	}
	target, ok := number.TypeFromName(u.CastType.Name)
	if !ok {
		return nil, typeErr(u.Line(), "cannot cast to '%s'", u.CastType.Name)
	}
	return number.Cast(target, n), nil
}

func (e *Evaluator) evalIncDec(u *ast.UnaryOperator) (memory.Value, error) {
	v, ok := u.Expr.(*ast.Var)
	if !ok {
		return nil, runtimeErr(u.Line(), "'%s' requires a variable operand", u.Operator)
	}
	cur, err := e.mem.Get(v.Name)
	if err != nil {
		return nil, wrapMemErr(u.Line(), err)
	}
	n, ok := cur.(number.Number)
	if !ok {
		return nil, typeErr(u.Line(), "'%s' is not numeric", v.Name)
	}
	var next number.Number
	if u.Operator == "++" {
		next = number.Inc(n)
	} else {
		next = number.Dec(n)
	}
	if err := e.mem.Set(v.Name, next); err != nil {
		return nil, wrapMemErr(u.Line(), err)
	}
	if u.Prefix {
		return next, nil
	}
	return n, nil
}
