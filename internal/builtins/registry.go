// Package builtins implements the pluggable built-in library surface:
// stdio.h, math.h, and string.h native callables bound into the global
// frame when their library is #included.
package builtins

import (
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/cwbudde/go-cint/internal/memory"
)

// Category groups a built-in for listing/debugging purposes, mirroring the
// category tag an interpreter's registry commonly carries.
type Category string

const (
	CategoryIO     Category = "io"
	CategoryMath   Category = "math"
	CategoryString Category = "string"
)

type entry struct {
	Name     string
	Fn       memory.BuiltinFunc
	Category Category
}

// Registry is a name-keyed table of native callables, one per evaluator
// run, populated as IncludeLibrary nodes are processed.
type Registry struct {
	functions map[string]entry
	libraries map[string][]string // library stem -> function names it provides

	Out io.Writer
	In  *bufio.Reader
}

// NewRegistry creates a Registry writing to stdout and reading from stdin.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]entry),
		libraries: make(map[string][]string),
		Out:       os.Stdout,
		In:        bufio.NewReader(os.Stdin),
	}
}

func (r *Registry) register(library, name string, fn memory.BuiltinFunc, cat Category) {
	r.functions[name] = entry{Name: name, Fn: fn, Category: cat}
	r.libraries[library] = append(r.libraries[library], name)
}

// Load binds every function of the named library (the stem of an
// `#include <name.h>` directive) into mem's global frame. An unknown
// library name binds nothing and is not reported as an error; a call to one
// of its supposed functions is rejected by the semantic analyzer as a call
// to an unknown function.
func (r *Registry) Load(library string, mem *memory.Memory) {
	switch library {
	case "stdio":
		registerStdio(r)
	case "math":
		registerMath(r)
	case "string":
		registerString(r)
	}
	for _, name := range r.libraries[library] {
		e := r.functions[name]
		mem.BindNative(name, e.Fn)
	}
}

// IsBuiltin reports whether library provides a function named name,
// implementing semantic.BuiltinResolver without importing semantic (which
// would create a cycle).
func (r *Registry) IsBuiltin(library, name string) bool {
	switch library {
	case "stdio":
		return name == "printf" || name == "scanf"
	case "math":
		return name == "sqrt" || name == "pow" || name == "abs" || name == "fabs" || name == "floor" || name == "ceil"
	case "string":
		return name == "strlen"
	default:
		return false
	}
}

// Names returns every registered function name, sorted, for debugging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for n := range r.functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
