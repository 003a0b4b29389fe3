package semantic_test

import (
	"testing"

	"github.com/cwbudde/go-cint/internal/builtins"
	"github.com/cwbudde/go-cint/internal/lexer"
	"github.com/cwbudde/go-cint/internal/parser"
	"github.com/cwbudde/go-cint/internal/semantic"
)

func analyze(t *testing.T, source string) error {
	t.Helper()
	l := lexer.New(source)
	p, err := parser.New(l)
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return semantic.NewAnalyzer(builtins.NewRegistry()).Analyze(prog)
}

func TestValidProgramAnalyzesCleanly(t *testing.T) {
	source := `
int add(int a, int b) {
    return a + b;
}
int main() {
    int x = add(1, 2);
    return x;
}
`
	if err := analyze(t, source); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUndeclaredVariableIsRejected(t *testing.T) {
	source := `
int main() {
    return y;
}
`
	if err := analyze(t, source); err == nil {
		t.Fatal("expected an error referencing an undeclared variable")
	}
}

func TestDuplicateParameterIsRejected(t *testing.T) {
	source := `
int add(int a, int a) {
    return a;
}
`
	if err := analyze(t, source); err == nil {
		t.Fatal("expected an error for a duplicate parameter name")
	}
}

func TestDuplicateFunctionDeclarationIsRejected(t *testing.T) {
	source := `
int f() { return 0; }
int f() { return 1; }
`
	if err := analyze(t, source); err == nil {
		t.Fatal("expected an error for a duplicate function declaration")
	}
}

func TestDuplicateLocalDeclarationInSameScopeIsRejected(t *testing.T) {
	source := `
int main() {
    int x = 1;
    int x = 2;
    return x;
}
`
	if err := analyze(t, source); err == nil {
		t.Fatal("expected an error for redeclaring a name in the same scope")
	}
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	source := `
int main() {
    int x = 1;
    if (x) {
        int x = 2;
        x = x + 1;
    }
    return x;
}
`
	if err := analyze(t, source); err != nil {
		t.Fatalf("shadowing a name in a nested scope should be allowed: %v", err)
	}
}

func TestCallToUnknownFunctionIsRejected(t *testing.T) {
	source := `
int main() {
    return mystery();
}
`
	if err := analyze(t, source); err == nil {
		t.Fatal("expected an error calling an undeclared function")
	}
}

func TestCallToIncludedBuiltinIsAllowed(t *testing.T) {
	source := `
#include <stdio.h>
int main() {
    printf("%d\n", 1);
    return 0;
}
`
	if err := analyze(t, source); err != nil {
		t.Fatalf("calling a built-in from an included library should be allowed: %v", err)
	}
}

func TestBareAddressOfOutsideScanfIsRejected(t *testing.T) {
	source := `
int main() {
    int x = 1;
    int y = &x;
    return y;
}
`
	if err := analyze(t, source); err == nil {
		t.Fatal("expected '&x' outside a scanf call to be rejected")
	}
}

func TestAddressOfAsScanfArgumentIsAllowed(t *testing.T) {
	source := `
#include <stdio.h>
int main() {
    int x;
    scanf("%d", &x);
    return x;
}
`
	if err := analyze(t, source); err != nil {
		t.Fatalf("'&x' as a scanf argument should be allowed: %v", err)
	}
}
