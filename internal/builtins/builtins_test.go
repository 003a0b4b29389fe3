package builtins_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-cint/internal/builtins"
	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/number"
)

func TestLoadStdioBindsPrintf(t *testing.T) {
	r := builtins.NewRegistry()
	mem := memory.New()
	r.Load("stdio", mem)

	if _, ok := mem.Resolve("printf"); !ok {
		t.Fatal("expected printf to be bound into the global frame after #include <stdio.h>")
	}
}

func TestPrintfRendersFormatSpecifiers(t *testing.T) {
	var out bytes.Buffer
	r := builtins.NewRegistry()
	r.Out = &out
	mem := memory.New()
	r.Load("stdio", mem)

	cell, _ := mem.Resolve("printf")
	_, err := cell.Native(mem, []memory.Value{
		memory.Str("x=%d y=%c pi=%f s=%s%%\n"),
		number.NewInt(42),
		number.NewChar('Q'),
		number.NewDouble(3.5),
		memory.Str("done"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "x=42 y=Q pi=3.500000 s=done%\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestPrintfMissingArgumentIsAnError(t *testing.T) {
	r := builtins.NewRegistry()
	mem := memory.New()
	r.Load("stdio", mem)

	cell, _ := mem.Resolve("printf")
	_, err := cell.Native(mem, []memory.Value{memory.Str("%d")})
	if err == nil {
		t.Fatal("expected an error for a format specifier with no matching argument")
	}
}

func TestScanfParsesEachSpecifierAndSetsVariables(t *testing.T) {
	r := builtins.NewRegistry()
	r.Load("stdio", memory.New()) // binds printf; Scanf itself only needs r.In, set directly below
	r.In = bufio.NewReader(strings.NewReader("7 3.5 Q hello"))

	mem := memory.New()
	mem.Declare("i")
	mem.Declare("f")
	mem.Declare("c")
	mem.Declare("s")

	n, err := r.Scanf(mem, "%d %f %c %s", []string{"i", "f", "c", "s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.(number.Number).AsInt64(); got != 4 {
		t.Fatalf("expected 4 successful conversions, got %d", got)
	}

	iv, _ := mem.Get("i")
	if iv.(number.Number).AsInt64() != 7 {
		t.Fatalf("expected i=7, got %v", iv)
	}
	sv, _ := mem.Get("s")
	if sv.(memory.Str) != "hello" {
		t.Fatalf("expected s=hello, got %v", sv)
	}
}

func TestMathBuiltins(t *testing.T) {
	r := builtins.NewRegistry()
	mem := memory.New()
	r.Load("math", mem)

	cell, ok := mem.Resolve("sqrt")
	if !ok {
		t.Fatal("expected sqrt to be bound after #include <math.h>")
	}
	got, err := cell.Native(mem, []memory.Value{number.NewDouble(9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(number.Number).AsFloat64() != 3 {
		t.Fatalf("sqrt(9) = %v, want 3", got)
	}
}

func TestStrlen(t *testing.T) {
	r := builtins.NewRegistry()
	mem := memory.New()
	r.Load("string", mem)

	cell, ok := mem.Resolve("strlen")
	if !ok {
		t.Fatal("expected strlen to be bound after #include <string.h>")
	}
	got, err := cell.Native(mem, []memory.Value{memory.Str("hello")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(number.Number).AsInt64() != 5 {
		t.Fatalf("strlen(\"hello\") = %v, want 5", got)
	}
}

func TestIsBuiltinReflectsLibraryMembership(t *testing.T) {
	r := builtins.NewRegistry()
	if !r.IsBuiltin("stdio", "printf") {
		t.Fatal("printf should be reported as a stdio builtin")
	}
	if r.IsBuiltin("stdio", "sqrt") {
		t.Fatal("sqrt should not be reported as a stdio builtin")
	}
	if r.IsBuiltin("unknown", "anything") {
		t.Fatal("an unknown library should report no builtins")
	}
}
