package builtins

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func registerStdio(r *Registry) {
	r.register("stdio", "printf", printf(r), CategoryIO)
	// scanf is deliberately not registered into the generic Fn table: it
	// needs the caller's variable names rather than evaluated values, so
	// the evaluator recognizes a call to "scanf" and invokes Registry.Scanf
	// directly. Registry.IsBuiltin still reports it for #include <stdio.h>.
}

// formatSpecs are the %-specifiers printf/scanf understand per the
// built-in library surface contract.
const formatSpecs = "dcfs"

func printf(r *Registry) memory.BuiltinFunc {
	return func(m *memory.Memory, args []memory.Value) (memory.Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("printf requires a format string")
		}
		format, ok := args[0].(memory.Str)
		if !ok {
			return nil, fmt.Errorf("printf's first argument must be a string")
		}
		rest := args[1:]
		out, n, err := renderFormat(string(format), rest)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(r.Out, out)
		return number.NewInt(int64(n)), nil
	}
}

// renderFormat expands %d/%c/%f/%s specifiers against args in order,
// returning the rendered text and the count of characters written.
func renderFormat(format string, args []memory.Value) (string, int, error) {
	var sb strings.Builder
	argi := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i == len(format)-1 {
			sb.WriteByte(ch)
			continue
		}
		spec := format[i+1]
		if spec == '%' {
			sb.WriteByte('%')
			i++
			continue
		}
		if !strings.ContainsRune(formatSpecs, rune(spec)) {
			sb.WriteByte(ch)
			continue
		}
		if argi >= len(args) {
			return "", 0, fmt.Errorf("printf: missing argument for %%%c", spec)
		}
		arg := args[argi]
		argi++
		switch spec {
		case 'd':
			n, ok := arg.(number.Number)
			if !ok {
				return "", 0, fmt.Errorf("printf: %%d requires a numeric argument")
			}
			fmt.Fprintf(&sb, "%d", n.AsInt64())
		case 'c':
			n, ok := arg.(number.Number)
			if !ok {
				return "", 0, fmt.Errorf("printf: %%c requires a numeric argument")
			}
			sb.WriteByte(byte(n.AsInt64()))
		case 'f':
			n, ok := arg.(number.Number)
			if !ok {
				return "", 0, fmt.Errorf("printf: %%f requires a numeric argument")
			}
			fmt.Fprintf(&sb, "%f", n.AsFloat64())
		case 's':
			s, ok := arg.(memory.Str)
			if !ok {
				return "", 0, fmt.Errorf("printf: %%s requires a string argument")
			}
			sb.WriteString(string(s))
		}
		i++
	}
	return sb.String(), sb.Len(), nil
}

// Scanf reads from r.In per format's %-specifiers and stores the results
// into varNames via mem.Set, returning the count of successful
// conversions. It is called directly by the evaluator (not through the
// generic Fn table) because it needs caller variable names, not values —
// the `&x` argument degrades to the identifier `x` and is meaningless
// anywhere else.
func (r *Registry) Scanf(mem *memory.Memory, format string, varNames []string) (memory.Value, error) {
	count := 0
	vi := 0
	for i := 0; i < len(format) && vi < len(varNames); i++ {
		if format[i] != '%' || i == len(format)-1 {
			continue
		}
		spec := format[i+1]
		i++
		if !strings.ContainsRune(formatSpecs, rune(spec)) {
			continue
		}
		name := varNames[vi]
		vi++
		switch spec {
		case 'd':
			var v int64
			if _, err := fmt.Fscan(r.In, &v); err != nil {
				return number.NewInt(int64(count)), nil
			}
			if err := mem.Set(name, number.NewInt(v)); err != nil {
				return nil, err
			}
		case 'f':
			var v float64
			if _, err := fmt.Fscan(r.In, &v); err != nil {
				return number.NewInt(int64(count)), nil
			}
			if err := mem.Set(name, number.NewDouble(v)); err != nil {
				return nil, err
			}
		case 'c':
			var v string
			if _, err := fmt.Fscan(r.In, &v); err != nil || len(v) == 0 {
				return number.NewInt(int64(count)), nil
			}
			if err := mem.Set(name, number.NewChar(v[0])); err != nil {
				return nil, err
			}
		case 's':
			var v string
			if _, err := fmt.Fscan(r.In, &v); err != nil {
				return number.NewInt(int64(count)), nil
			}
			if err := mem.Set(name, memory.Str(v)); err != nil {
				return nil, err
			}
		default:
			continue
		}
		count++
	}
	return number.NewInt(int64(count)), nil
}
