package builtins

import (
	"fmt"

	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func registerMath(r *Registry) {
	r.register("math", "sqrt", mathUnary(number.Sqrt), CategoryMath)
	r.register("math", "fabs", mathUnary(number.Abs), CategoryMath)
	r.register("math", "abs", mathUnary(number.Abs), CategoryMath)
	r.register("math", "floor", mathUnary(number.Floor), CategoryMath)
	r.register("math", "ceil", mathUnary(number.Ceil), CategoryMath)
	r.register("math", "pow", mathPow, CategoryMath)
}

func mathUnary(fn func(number.Number) number.Number) memory.BuiltinFunc {
	return func(m *memory.Memory, args []memory.Value) (memory.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expects exactly one argument")
		}
		n, ok := args[0].(number.Number)
		if !ok {
			return nil, fmt.Errorf("expects a numeric argument")
		}
		return fn(n), nil
	}
}

func mathPow(m *memory.Memory, args []memory.Value) (memory.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow expects exactly two arguments")
	}
	a, ok1 := args[0].(number.Number)
	b, ok2 := args[1].(number.Number)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("pow expects numeric arguments")
	}
	return number.Pow(a, b), nil
}
