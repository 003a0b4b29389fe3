package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func (e *Evaluator) evalCall(call *ast.FunctionCall) (memory.Value, error) {
	if call.Name == "scanf" {
		return e.evalScanf(call)
	}

	cell, ok := e.mem.Resolve(call.Name)
	if !ok {
		return nil, runtimeErr(call.Line(), "call to undefined function '%s'", call.Name)
	}

	args := make([]memory.Value, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch cell.Kind {
	case memory.CellNative:
		v, err := cell.Native(e.mem, args)
		if err != nil {
			return nil, runtimeErr(call.Line(), "%s", err.Error())
		}
		return v, nil
	case memory.CellFunction:
		return e.callFunction(cell.Func, args, call.Line())
	default:
		return nil, runtimeErr(call.Line(), "'%s' is not callable", call.Name)
	}
}

// evalScanf handles `scanf(fmt, &a, &b, ...)` specially: the `&x`
// arguments never produce a runtime value, so their variable names are
// extracted directly from the AST instead of being evaluated.
func (e *Evaluator) evalScanf(call *ast.FunctionCall) (memory.Value, error) {
	if len(call.Args) == 0 {
		return nil, runtimeErr(call.Line(), "scanf requires a format string")
	}
	formatVal, err := e.evalExpr(call.Args[0])
	if err != nil {
		return nil, err
	}
	format, ok := formatVal.(memory.Str)
	if !ok {
		return nil, runtimeErr(call.Line(), "scanf's first argument must be a string")
	}

	names := make([]string, 0, len(call.Args)-1)
	for _, a := range call.Args[1:] {
		u, ok := a.(*ast.UnaryOperator)
		if !ok || u.Operator != "&" {
			return nil, runtimeErr(a.Line(), "scanf arguments after the format must be '&variable'")
		}
		v, ok := u.Expr.(*ast.Var)
		if !ok {
			return nil, runtimeErr(a.Line(), "'&' may only be applied to a variable")
		}
		names = append(names, v.Name)
	}

	result, err := e.registry.Scanf(e.mem, string(format), names)
	if err != nil {
		return nil, runtimeErr(call.Line(), "%s", err.Error())
	}
	return result, nil
}

// callFunction pushes a new frame, binds arguments to parameter names in
// its root scope (shared with the body's top-level declarations, matching
// the semantic analyzer's single-scope function contract), executes the
// body, and yields its return value (or the declared return type's zero
// value if execution falls off the end).
func (e *Evaluator) callFunction(decl *ast.FunctionDeclaration, args []memory.Value, callLine int) (memory.Value, error) {
	if len(args) != len(decl.Params) {
		return nil, runtimeErr(callLine, "'%s' expects %d argument(s), got %d", decl.Name, len(decl.Params), len(args))
	}

	e.mem.PushFrame(decl.Name)
	defer e.mem.PopFrame()

	if e.trace != nil {
		indent := strings.Repeat("  ", e.mem.Depth()-1)
		fmt.Fprintf(e.trace, "%s-> %s(%s) line %d\n", indent, decl.Name, formatArgs(args), callLine)
	}

	for i, p := range decl.Params {
		e.mem.Declare(p.Name.Name)
		if err := e.mem.Set(p.Name.Name, args[i]); err != nil {
			return nil, wrapMemErr(decl.Line(), err)
		}
	}

	sig, err := e.execChildren(decl.Body.Children)
	if err != nil {
		return nil, err
	}

	result, resultErr := e.functionResult(decl, sig)
	if e.trace != nil {
		indent := strings.Repeat("  ", e.mem.Depth()-1)
		fmt.Fprintf(e.trace, "%s<- %s returns %v\n", indent, decl.Name, result)
	}
	return result, resultErr
}

// functionResult picks the value callFunction returns: the signal's value
// for an explicit return, or the declared return type's zero value when
// the body falls off its closing brace without one.
func (e *Evaluator) functionResult(decl *ast.FunctionDeclaration, sig signal) (memory.Value, error) {
	if sig.kind == sigReturn && sig.value != nil {
		return sig.value, nil
	}
	t, ok := number.TypeFromName(decl.ReturnType.Name)
	if !ok {
		return nil, nil // void
	}
	return number.ZeroValue(t), nil
}

func formatArgs(args []memory.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
