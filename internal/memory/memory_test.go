package memory

import "testing"

type fakeValue string

func (f fakeValue) String() string { return string(f) }

func TestDeclareGetSetRoundTrip(t *testing.T) {
	m := New()
	m.Declare("x")
	if _, err := m.Get("x"); err == nil {
		t.Fatal("reading an uninitialized variable should be an error")
	}
	if err := m.Set("x", fakeValue("hi")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := m.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "hi" {
		t.Fatalf("got %q, want %q", v.String(), "hi")
	}
}

func TestGetUndeclaredIsAnError(t *testing.T) {
	m := New()
	if _, err := m.Get("nope"); err == nil {
		t.Fatal("expected an error reading an undeclared variable")
	}
}

func TestSetUndeclaredIsAnError(t *testing.T) {
	m := New()
	if err := m.Set("nope", fakeValue("x")); err == nil {
		t.Fatal("expected an error assigning to an undeclared variable")
	}
}

func TestScopesShadowInnerToOuter(t *testing.T) {
	m := New()
	m.Declare("x")
	_ = m.Set("x", fakeValue("outer"))

	m.PushScope()
	m.Declare("x")
	_ = m.Set("x", fakeValue("inner"))

	v, _ := m.Get("x")
	if v.String() != "inner" {
		t.Fatalf("innermost declaration should shadow, got %q", v.String())
	}

	m.PopScope()
	v, _ = m.Get("x")
	if v.String() != "outer" {
		t.Fatalf("after popping the inner scope, outer 'x' should be visible, got %q", v.String())
	}
}

func TestFramesOnlyFallThroughToGlobal(t *testing.T) {
	m := New()
	m.DeclareGlobal("g")
	_ = m.Set("g", fakeValue("global"))

	m.PushFrame("caller")
	m.Declare("local")
	_ = m.Set("local", fakeValue("in-caller"))

	m.PushFrame("callee")
	// "local" lives in the caller's frame, which is not the global frame —
	// a callee must not see it.
	if _, err := m.Get("local"); err == nil {
		t.Fatal("a callee frame should not see a non-global caller's locals")
	}
	// Globals remain visible from any depth.
	v, err := m.Get("g")
	if err != nil || v.String() != "global" {
		t.Fatalf("globals should be visible from any frame depth, got %v, err=%v", v, err)
	}
}

func TestPopGlobalFramePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("popping the global frame should panic")
		}
	}()
	m := New()
	m.PopFrame()
}

func TestPopRootScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("popping a frame's root scope should panic")
		}
	}()
	m := New()
	m.PopScope()
}

func TestBindFunctionAndResolve(t *testing.T) {
	m := New()
	m.BindFunction("add", nil)
	cell, ok := m.Resolve("add")
	if !ok || cell.Kind != CellFunction {
		t.Fatalf("expected a resolvable CellFunction, got %+v, %v", cell, ok)
	}
	if _, ok := m.Resolve("nonexistent"); ok {
		t.Fatal("Resolve should report false for an unbound name")
	}
}

func TestResolveExcludesPlainValues(t *testing.T) {
	m := New()
	m.Declare("x")
	if _, ok := m.Resolve("x"); ok {
		t.Fatal("Resolve should not treat a CellValue as callable")
	}
}

func TestHasAny(t *testing.T) {
	m := New()
	if m.HasAny("x") {
		t.Fatal("HasAny should report false before any declaration")
	}
	m.Declare("x")
	if !m.HasAny("x") {
		t.Fatal("HasAny should report true once declared")
	}
}
