// Package semantic performs scoped name resolution over the parsed AST:
// declaring names, rejecting duplicates and undeclared references, and
// checking that every #include names a library. The ".h" extension of an
// #include is checked by the parser, which reports a wrong extension as a
// SemanticError.
package semantic

import (
	"fmt"

	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/cerrors"
)

// BuiltinResolver reports whether name is a function provided by library
// (the stem of an included ".h" file). The evaluator's builtins registry
// implements this.
type BuiltinResolver interface {
	IsBuiltin(library, name string) bool
}

// Analyzer walks a Program, maintaining a stack of symbol tables mirroring
// the evaluator's own scope policy (function body and every
// CompoundStatement each open a new scope).
type Analyzer struct {
	symbols   *SymbolTable
	libraries []string
	resolver  BuiltinResolver
}

// NewAnalyzer creates an Analyzer. resolver may be nil, in which case any
// FunctionCall not bound to a declared function is rejected regardless of
// included libraries (useful for tests that don't need a builtins
// registry).
func NewAnalyzer(resolver BuiltinResolver) *Analyzer {
	return &Analyzer{symbols: NewSymbolTable(), resolver: resolver}
}

func semErr(line int, format string, args ...any) *cerrors.Error {
	return cerrors.New(cerrors.Semantic, line, fmt.Sprintf(format, args...))
}

// Analyze runs the two-pass global binding (includes, then function
// signatures) and then walks every remaining top-level declaration.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	for _, d := range prog.Declarations {
		if inc, ok := d.(*ast.IncludeLibrary); ok {
			a.libraries = append(a.libraries, inc.LibraryName)
		}
	}
	for _, d := range prog.Declarations {
		if fn, ok := d.(*ast.FunctionDeclaration); ok {
			if !a.symbols.DefineLocal(fn.Name, FuncSymbol) {
				return semErr(fn.Line(), "duplicate function declaration '%s'", fn.Name)
			}
		}
	}
	for _, d := range prog.Declarations {
		switch n := d.(type) {
		case *ast.IncludeLibrary:
			if n.LibraryName == "" {
				return semErr(n.Line(), "include must name a library")
			}
		case *ast.FunctionDeclaration:
			if err := a.analyzeFunction(n); err != nil {
				return err
			}
		case *ast.VarDeclaration:
			if !a.symbols.DefineLocal(n.Name.Name, VarSymbol) {
				return semErr(n.Line(), "duplicate declaration '%s'", n.Name.Name)
			}
		case *ast.Assign:
			if err := a.checkExpr(n); err != nil {
				return err
			}
		default:
			return semErr(d.Line(), "unexpected top-level node %T", d)
		}
	}
	return nil
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDeclaration) error {
	outer := a.symbols
	a.symbols = NewEnclosedSymbolTable(outer)
	defer func() { a.symbols = outer }()

	for _, p := range fn.Params {
		if !a.symbols.DefineLocal(p.Name.Name, VarSymbol) {
			return semErr(p.Line(), "duplicate parameter '%s'", p.Name.Name)
		}
	}
	return a.checkCompound(fn.Body, false)
}

// checkCompound opens a new scope (unless pushScope is false, used only
// for the function-body scope which analyzeFunction already opened so the
// parameters and body share one scope, matching the evaluator's argument-
// binding contract).
func (a *Analyzer) checkCompound(block *ast.CompoundStatement, pushScope bool) error {
	if pushScope {
		outer := a.symbols
		a.symbols = NewEnclosedSymbolTable(outer)
		defer func() { a.symbols = outer }()
	}
	for _, child := range block.Children {
		if err := a.checkNode(child); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkNode(n ast.Node) error {
	switch s := n.(type) {
	case *ast.VarDeclaration:
		if !a.symbols.DefineLocal(s.Name.Name, VarSymbol) {
			return semErr(s.Line(), "duplicate declaration '%s'", s.Name.Name)
		}
		return nil
	case *ast.Assign:
		return a.checkExpr(s)
	case *ast.ExpressionStatement:
		if s.Expr != nil {
			return a.checkExpr(s.Expr)
		}
		return nil
	case *ast.IfStatement:
		if err := a.checkExpr(s.Condition); err != nil {
			return err
		}
		if err := a.checkNode(s.Consequence); err != nil {
			return err
		}
		if s.Alternative != nil {
			return a.checkNode(s.Alternative)
		}
		return nil
	case *ast.WhileStatement:
		if err := a.checkExpr(s.Condition); err != nil {
			return err
		}
		return a.checkNode(s.Body)
	case *ast.DoWhileStatement:
		if err := a.checkNode(s.Body); err != nil {
			return err
		}
		return a.checkExpr(s.Condition)
	case *ast.ForStatement:
		if err := a.checkNode(s.Setup); err != nil {
			return err
		}
		if s.Condition != nil {
			if err := a.checkExpr(s.Condition); err != nil {
				return err
			}
		}
		if s.Increment != nil {
			if err := a.checkExpr(s.Increment); err != nil {
				return err
			}
		}
		return a.checkNode(s.Body)
	case *ast.CompoundStatement:
		return a.checkCompound(s, true)
	case *ast.ReturnStmt:
		if s.Value != nil {
			return a.checkExpr(s.Value)
		}
		return nil
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.NoOp:
		return nil
	default:
		return semErr(n.Line(), "unexpected statement node %T", n)
	}
}

func (a *Analyzer) checkExpr(e ast.Node) error {
	switch expr := e.(type) {
	case *ast.Num, *ast.CharLit, *ast.StringLit, *ast.NoOp:
		return nil
	case *ast.Var:
		if _, ok := a.symbols.Resolve(expr.Name); !ok {
			return semErr(expr.Line(), "undeclared variable '%s'", expr.Name)
		}
		return nil
	case *ast.Assign:
		if v, ok := expr.Left.(*ast.Var); ok {
			if _, ok := a.symbols.Resolve(v.Name); !ok {
				return semErr(v.Line(), "undeclared variable '%s'", v.Name)
			}
		} else if err := a.checkExpr(expr.Left); err != nil {
			return err
		}
		return a.checkExpr(expr.Right)
	case *ast.CommaExpression:
		for _, c := range expr.Children {
			if err := a.checkExpr(c); err != nil {
				return err
			}
		}
		return nil
	case *ast.BinaryOperator:
		if err := a.checkExpr(expr.Left); err != nil {
			return err
		}
		return a.checkExpr(expr.Right)
	case *ast.UnaryOperator:
		if expr.Operator == "&" {
			return semErr(expr.Line(), "'&' is only valid as a scanf argument")
		}
		return a.checkExpr(expr.Expr)
	case *ast.TernaryOperator:
		if err := a.checkExpr(expr.Condition); err != nil {
			return err
		}
		if err := a.checkExpr(expr.Then); err != nil {
			return err
		}
		return a.checkExpr(expr.Else)
	case *ast.FunctionCall:
		return a.checkCall(expr)
	default:
		return semErr(e.Line(), "unexpected expression node %T", e)
	}
}

func (a *Analyzer) checkCall(call *ast.FunctionCall) error {
	if sym, ok := a.symbols.Resolve(call.Name); ok {
		if sym.Kind != FuncSymbol {
			return semErr(call.Line(), "'%s' is not a function", call.Name)
		}
	} else if !a.isKnownBuiltin(call.Name) {
		return semErr(call.Line(), "call to unknown function '%s'", call.Name)
	}
	for i, arg := range call.Args {
		if call.Name == "scanf" && i > 0 {
			if unary, ok := arg.(*ast.UnaryOperator); ok && unary.Operator == "&" {
				v, ok := unary.Expr.(*ast.Var)
				if !ok {
					return semErr(unary.Line(), "'&' may only be applied to a variable")
				}
				if _, ok := a.symbols.Resolve(v.Name); !ok {
					return semErr(v.Line(), "undeclared variable '%s'", v.Name)
				}
				continue // '&var' is valid only here; the generic '&' rejection doesn't apply
			}
		}
		if err := a.checkExpr(arg); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) isKnownBuiltin(name string) bool {
	if a.resolver == nil {
		return false
	}
	for _, lib := range a.libraries {
		if a.resolver.IsBuiltin(lib, name) {
			return true
		}
	}
	return false
}
