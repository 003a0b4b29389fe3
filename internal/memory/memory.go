// Package memory implements the interpreter's storage model: a call stack
// of frames, each a stack of lexical scopes, each a name → cell mapping.
package memory

import (
	"fmt"

	"github.com/cwbudde/go-cint/internal/ast"
)

// CellKind tags what a Cell holds.
type CellKind int

const (
	CellValue CellKind = iota
	CellFunction
	CellNative
)

// BuiltinFunc is the shape of a native callable bound into the global
// frame by an included library.
type BuiltinFunc func(m *Memory, args []Value) (Value, error)

// Value is implemented by internal/number.Number and Str; kept as an
// interface here so this package does not import number and create a
// cycle with packages that need both.
type Value interface {
	String() string
}

// Str is a string literal's runtime value. The language has no string
// variable type — string literals only ever appear as a printf format
// argument or an already-literal %s argument — so this wrapper exists
// purely to let a Go string satisfy Value.
type Str string

func (s Str) String() string { return string(s) }

// Cell is the scope's sum type: a storage cell (possibly uninitialized),
// a function binding, or a native callable.
type Cell struct {
	Kind        CellKind
	Value       Value
	Initialized bool
	Func        *ast.FunctionDeclaration
	Native      BuiltinFunc
}

// Scope is an ordered name → cell mapping for one lexical block.
type Scope struct {
	cells map[string]*Cell
	order []string
}

func newScope() *Scope {
	return &Scope{cells: make(map[string]*Cell)}
}

func (s *Scope) declare(name string) *Cell {
	c := &Cell{Kind: CellValue}
	s.cells[name] = c
	s.order = append(s.order, name)
	return c
}

// Frame is a nonempty stack of scopes identified by name (the function
// name that activated it, or "global").
type Frame struct {
	Name   string
	scopes []*Scope
}

func newFrame(name string) *Frame {
	return &Frame{Name: name, scopes: []*Scope{newScope()}}
}

// Error is a RuntimeError: read of an uninitialized variable, write to an
// undeclared name, or lookup of an unknown name.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Memory is the stack of frames. Frame 0 is the global frame, created at
// construction and never popped.
type Memory struct {
	frames []*Frame
}

// New creates a Memory with the global frame (index 0) pushed.
func New() *Memory {
	return &Memory{frames: []*Frame{newFrame("global")}}
}

func (m *Memory) global() *Frame { return m.frames[0] }
func (m *Memory) current() *Frame { return m.frames[len(m.frames)-1] }

// Depth reports the current frame-stack depth (1 while only the global
// frame exists).
func (m *Memory) Depth() int { return len(m.frames) }

// PushFrame pushes a new call frame with a single root scope.
func (m *Memory) PushFrame(name string) {
	m.frames = append(m.frames, newFrame(name))
}

// PopFrame pops the current call frame. It panics if called on the global
// frame, which is a programming error in the evaluator, not a user-facing
// RuntimeError.
func (m *Memory) PopFrame() {
	if len(m.frames) <= 1 {
		panic("memory: cannot pop the global frame")
	}
	m.frames = m.frames[:len(m.frames)-1]
}

// PushScope pushes a new lexical scope onto the current frame.
func (m *Memory) PushScope() {
	f := m.current()
	f.scopes = append(f.scopes, newScope())
}

// PopScope pops the innermost scope of the current frame.
func (m *Memory) PopScope() {
	f := m.current()
	if len(f.scopes) <= 1 {
		panic("memory: cannot pop a frame's root scope")
	}
	f.scopes = f.scopes[:len(f.scopes)-1]
}

// ScopeDepth reports the current frame's scope-stack depth.
func (m *Memory) ScopeDepth() int { return len(m.current().scopes) }

// Declare creates an uninitialized value cell for name in the current
// (innermost) scope of the current frame.
func (m *Memory) Declare(name string) {
	f := m.current()
	f.scopes[len(f.scopes)-1].declare(name)
}

// DeclareGlobal declares name directly in the global frame's single scope
// — used for #include-bound natives and top-level function bindings.
func (m *Memory) DeclareGlobal(name string) *Cell {
	return m.global().scopes[0].declare(name)
}

// findInFrame searches f's scopes innermost → outermost.
func findInFrame(f *Frame, name string) *Cell {
	for i := len(f.scopes) - 1; i >= 0; i-- {
		if c, ok := f.scopes[i].cells[name]; ok {
			return c
		}
	}
	return nil
}

// lookup searches the current frame's scopes inner→outer; if not found,
// it falls through to frame 0 (globals) only.
func (m *Memory) lookup(name string) *Cell {
	if c := findInFrame(m.current(), name); c != nil {
		return c
	}
	if len(m.frames) > 1 {
		if c := findInFrame(m.global(), name); c != nil {
			return c
		}
	}
	return nil
}

// Get reads a value cell. Reading an uninitialized or undeclared cell is a
// RuntimeError.
func (m *Memory) Get(name string) (Value, error) {
	c := m.lookup(name)
	if c == nil {
		return nil, &Error{Message: fmt.Sprintf("undeclared variable '%s'", name)}
	}
	if c.Kind != CellValue {
		return nil, &Error{Message: fmt.Sprintf("'%s' is not a variable", name)}
	}
	if !c.Initialized {
		return nil, &Error{Message: fmt.Sprintf("use of uninitialized variable '%s'", name)}
	}
	return c.Value, nil
}

// Set writes a value to an already-declared name, affecting the innermost
// scope that declares it. Writing an undeclared name is a RuntimeError.
func (m *Memory) Set(name string, v Value) error {
	c := m.lookup(name)
	if c == nil {
		return &Error{Message: fmt.Sprintf("assignment to undeclared variable '%s'", name)}
	}
	if c.Kind != CellValue {
		return &Error{Message: fmt.Sprintf("'%s' is not a variable", name)}
	}
	c.Value = v
	c.Initialized = true
	return nil
}

// BindFunction registers a user function's AST under its name in the
// global frame.
func (m *Memory) BindFunction(name string, decl *ast.FunctionDeclaration) {
	c := m.DeclareGlobal(name)
	c.Kind = CellFunction
	c.Func = decl
	c.Initialized = true
}

// BindNative registers a built-in callable under its name in the global
// frame.
func (m *Memory) BindNative(name string, fn BuiltinFunc) {
	c := m.DeclareGlobal(name)
	c.Kind = CellNative
	c.Native = fn
	c.Initialized = true
}

// Resolve looks up a callable binding (function or native) by name for a
// FunctionCall, searching exactly like Get but accepting CellFunction and
// CellNative cells.
func (m *Memory) Resolve(name string) (*Cell, bool) {
	c := m.lookup(name)
	if c == nil || c.Kind == CellValue {
		return nil, false
	}
	return c, true
}

// HasAny reports whether any binding (of any kind) is visible for name.
func (m *Memory) HasAny(name string) bool {
	return m.lookup(name) != nil
}
