package builtins

import (
	"fmt"

	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func registerString(r *Registry) {
	r.register("string", "strlen", strlen, CategoryString)
}

func strlen(m *memory.Memory, args []memory.Value) (memory.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("strlen expects exactly one argument")
	}
	s, ok := args[0].(memory.Str)
	if !ok {
		return nil, fmt.Errorf("strlen expects a string argument")
	}
	return number.NewInt(int64(len(s))), nil
}
