package runner_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/go-cint/internal/runner"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures sweeps every *.c file under testdata/fixtures, running it
// through the full lex/parse/analyze/evaluate pipeline and snapshotting
// its status, its stdout (which ends with the status line on success), and
// its stderr as three separate snapshots.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("../../testdata/fixtures/*.c")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".c")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			var stdout, stderr bytes.Buffer
			result := runner.Run(string(source), runner.Options{
				Stdout: &stdout,
				Stderr: &stderr,
			})

			snaps.MatchSnapshot(t, name+"_status", result.Status)
			snaps.MatchSnapshot(t, name+"_stdout", stdout.String())
			snaps.MatchSnapshot(t, name+"_stderr", stderr.String())
		})
	}
}

// TestShortCircuitAnd verifies that && does not evaluate its right operand
// once the left is already false.
func TestShortCircuitAnd(t *testing.T) {
	source := `
#include <stdio.h>
int bumped;
int sideEffect() { bumped = bumped + 1; return 1; }
int main() {
    bumped = 0;
    int result = 0 && sideEffect();
    printf("%d\n", bumped);
    return 0;
}
`
	var stdout, stderr bytes.Buffer
	result := runner.Run(source, runner.Options{Stdout: &stdout, Stderr: &stderr})
	if result.Status != 0 {
		t.Fatalf("expected status 0, got %d (stderr: %s)", result.Status, stderr.String())
	}
	if got := stdout.String(); !strings.HasPrefix(got, "0\n") {
		t.Fatalf("sideEffect() should not have run, stdout was %q", got)
	}
}

// TestVerboseLogsPipelineStages verifies that Options.Verbose writes one
// progress line per pipeline stage to Stderr, and that Verbose being unset
// (the default) produces no such lines.
func TestVerboseLogsPipelineStages(t *testing.T) {
	source := `int main() { return 0; }`

	var stdout, stderr bytes.Buffer
	runner.Run(source, runner.Options{Stdout: &stdout, Stderr: &stderr, Verbose: true})
	for _, want := range []string{"parsing source", "running semantic analysis", "evaluating"} {
		if !strings.Contains(stderr.String(), want) {
			t.Fatalf("expected verbose output to mention %q, got %q", want, stderr.String())
		}
	}

	stderr.Reset()
	runner.Run(source, runner.Options{Stdout: &stdout, Stderr: &stderr})
	if stderr.Len() != 0 {
		t.Fatalf("expected no stderr output without Verbose, got %q", stderr.String())
	}
}

// TestTraceLogsFunctionCalls verifies that Options.Trace logs a call-entry
// line naming each user function invoked.
func TestTraceLogsFunctionCalls(t *testing.T) {
	source := `
int add(int a, int b) { return a + b; }
int main() { return add(1, 2); }
`
	var stdout, stderr bytes.Buffer
	result := runner.Run(source, runner.Options{Stdout: &stdout, Stderr: &stderr, Trace: true})
	if result.Status != 0 {
		t.Fatalf("expected status 0, got %d", result.Status)
	}
	if !strings.Contains(stderr.String(), "-> main(") {
		t.Fatalf("expected a trace line entering main, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "-> add(1, 2)") {
		t.Fatalf("expected a trace line entering add(1, 2), got %q", stderr.String())
	}
}

// TestShortCircuitOr verifies that || does not evaluate its right operand
// once the left is already true.
func TestShortCircuitOr(t *testing.T) {
	source := `
#include <stdio.h>
int bumped;
int sideEffect() { bumped = bumped + 1; return 1; }
int main() {
    bumped = 0;
    int result = 1 || sideEffect();
    printf("%d\n", bumped);
    return 0;
}
`
	var stdout, stderr bytes.Buffer
	result := runner.Run(source, runner.Options{Stdout: &stdout, Stderr: &stderr})
	if result.Status != 0 {
		t.Fatalf("expected status 0, got %d (stderr: %s)", result.Status, stderr.String())
	}
	if got := stdout.String(); !strings.HasPrefix(got, "0\n") {
		t.Fatalf("sideEffect() should not have run, stdout was %q", got)
	}
}
