package interp

import "github.com/cwbudde/go-cint/internal/ast"

// execNode executes a statement (or a declaration appearing where a
// statement may, such as VarDeclaration inside a CompoundStatement),
// returning the control signal it produced.
func (e *Evaluator) execNode(n ast.Node) (signal, error) {
	switch s := n.(type) {
	case *ast.VarDeclaration:
		e.mem.Declare(s.Name.Name)
		return noSignal, nil
	case *ast.Assign:
		_, err := e.evalAssign(s)
		return noSignal, err
	case *ast.ExpressionStatement:
		if s.Expr == nil {
			return noSignal, nil
		}
		_, err := e.evalExpr(s.Expr)
		return noSignal, err
	case *ast.IfStatement:
		return e.execIf(s)
	case *ast.WhileStatement:
		return e.execWhile(s)
	case *ast.DoWhileStatement:
		return e.execDoWhile(s)
	case *ast.ForStatement:
		return e.execFor(s)
	case *ast.CompoundStatement:
		e.mem.PushScope()
		sig, err := e.execChildren(s.Children)
		e.mem.PopScope()
		return sig, err
	case *ast.ReturnStmt:
		if s.Value == nil {
			return signal{kind: sigReturn}, nil
		}
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: sigReturn, value: v}, nil
	case *ast.BreakStatement:
		return signal{kind: sigBreak}, nil
	case *ast.ContinueStatement:
		return signal{kind: sigContinue}, nil
	case *ast.NoOp:
		return noSignal, nil
	default:
		return noSignal, runtimeErr(n.Line(), "unexpected statement node %T", n)
	}
}

// execChildren runs each child in order, stopping early (without popping
// any scope itself — that is the caller's job) the moment one yields a
// non-none signal.
func (e *Evaluator) execChildren(children []ast.Node) (signal, error) {
	for _, c := range children {
		sig, err := e.execNode(c)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (e *Evaluator) execIf(s *ast.IfStatement) (signal, error) {
	cond, err := e.truthy(s.Condition)
	if err != nil {
		return noSignal, err
	}
	if cond {
		return e.execNode(s.Consequence)
	}
	if s.Alternative != nil {
		return e.execNode(s.Alternative)
	}
	return noSignal, nil
}
