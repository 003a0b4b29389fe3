// Package interp walks the parsed AST and executes it against a memory
// model and a loaded built-in library registry.
package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/builtins"
	"github.com/cwbudde/go-cint/internal/cerrors"
	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

// sigKind tags how a statement's execution wants its enclosing control
// structures to react: fall through normally, or unwind for break,
// continue, or return.
type sigKind int

const (
	sigNone sigKind = iota
	sigBreak
	sigContinue
	sigReturn
)

// signal is what executing a statement yields in addition to an error: a
// break/continue unwinds to the nearest loop, a return unwinds through
// every enclosing compound statement of the current frame and carries the
// function's result.
type signal struct {
	kind  sigKind
	value memory.Value
}

var noSignal = signal{kind: sigNone}

// Evaluator walks a Program against mem, dispatching FunctionCall nodes to
// either a user function or a native callable bound by registry.
type Evaluator struct {
	mem      *memory.Memory
	registry *builtins.Registry
	trace    io.Writer
}

// New builds an Evaluator over mem, using registry to resolve #include
// directives and native callables.
func New(mem *memory.Memory, registry *builtins.Registry) *Evaluator {
	return &Evaluator{mem: mem, registry: registry}
}

// SetTrace turns on a line of call-entry/call-exit logging to w for every
// user function invocation, matching the depth of mem's frame stack. A nil
// w (the default) disables tracing entirely with no overhead.
func (e *Evaluator) SetTrace(w io.Writer) {
	e.trace = w
}

func runtimeErr(line int, format string, args ...any) error {
	return cerrors.New(cerrors.Runtime, line, fmt.Sprintf(format, args...))
}

func typeErr(line int, format string, args ...any) error {
	return cerrors.New(cerrors.TypeErr, line, fmt.Sprintf(format, args...))
}

// wrapMemErr lifts a *memory.Error into the RuntimeError taxonomy, passing
// any other error through unchanged.
func wrapMemErr(line int, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*memory.Error); ok {
		return runtimeErr(line, "%s", err.Error())
	}
	return err
}

// Run pre-loads every #include and function declaration into the global
// frame, executes the remaining top-level declarations in source order,
// then pushes a `main` frame and invokes it. The returned int is the
// process's exit status.
func (e *Evaluator) Run(prog *ast.Program) (int, error) {
	for _, d := range prog.Declarations {
		switch n := d.(type) {
		case *ast.IncludeLibrary:
			e.registry.Load(n.LibraryName, e.mem)
		case *ast.FunctionDeclaration:
			e.mem.BindFunction(n.Name, n)
		}
	}

	for _, d := range prog.Declarations {
		switch d.(type) {
		case *ast.IncludeLibrary, *ast.FunctionDeclaration:
			continue
		}
		if _, err := e.execNode(d); err != nil {
			return -1, err
		}
	}

	cell, ok := e.mem.Resolve("main")
	if !ok || cell.Kind != memory.CellFunction {
		return -1, cerrors.New(cerrors.Runtime, 0, "undefined reference to 'main'")
	}

	result, err := e.callFunction(cell.Func, nil, 0)
	if err != nil {
		return -1, err
	}
	if result == nil {
		return 0, nil
	}
	n, ok := result.(number.Number)
	if !ok {
		return -1, runtimeErr(cell.Func.Line(), "'main' did not return a number")
	}
	return int(n.AsInt64()), nil
}

// truthy evaluates expr and requires it to be numeric, per the C rule that
// any scalar condition is compared against zero.
func (e *Evaluator) truthy(expr ast.Expression) (bool, error) {
	v, err := e.evalExpr(expr)
	if err != nil {
		return false, err
	}
	n, ok := v.(number.Number)
	if !ok {
		return false, typeErr(expr.Line(), "condition must be numeric")
	}
	return n.Truthy(), nil
}
