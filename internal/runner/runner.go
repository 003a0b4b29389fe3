// Package runner orchestrates one interpreter pass — lex, parse, analyze,
// evaluate — and renders the exact diagnostic/status wording the CLI and
// the fixture tests both depend on.
package runner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cwbudde/go-cint/internal/ast"
	"github.com/cwbudde/go-cint/internal/builtins"
	"github.com/cwbudde/go-cint/internal/cerrors"
	"github.com/cwbudde/go-cint/internal/interp"
	"github.com/cwbudde/go-cint/internal/lexer"
	"github.com/cwbudde/go-cint/internal/memory"
	"github.com/cwbudde/go-cint/internal/parser"
	"github.com/cwbudde/go-cint/internal/semantic"
	"github.com/cwbudde/go-cint/internal/token"
)

// Options configures one Run: where program output and diagnostics go,
// whether diagnostics are ANSI-colored, and how much progress logging to
// emit to Stderr alongside the run itself.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Color  bool

	// Verbose prints one line per pipeline stage (parse, analyze, evaluate)
	// to Stderr as the run progresses.
	Verbose bool
	// Trace prints a call-entry/call-exit line to Stderr for every user
	// function invocation during evaluation.
	Trace bool
}

// Result carries the process-visible outcome of a run: the status printed
// to the user and the exit code a CLI should return.
type Result struct {
	Status   int
	ExitCode int
}

// Run lexes, parses, semantically checks, and evaluates source, writing
// program output to opts.Stdout and, on failure, a diagnostic plus the
// terminal status line to opts.Stderr. It never returns a Go error — every
// failure is folded into the printed diagnostic and Result, matching a
// whole-program interpreter's single exit path.
func Run(source string, opts Options) Result {
	logf(opts, "parsing source")
	prog, err := Parse(source)
	if err != nil {
		return fail(err, source, opts)
	}

	registry := builtins.NewRegistry()
	registry.Out = opts.Stdout
	if opts.Stdin != nil {
		registry.In = bufio.NewReader(opts.Stdin)
	}

	logf(opts, "running semantic analysis")
	analyzer := semantic.NewAnalyzer(registry)
	if err := analyzer.Analyze(prog); err != nil {
		return fail(err, source, opts)
	}

	logf(opts, "evaluating")
	mem := memory.New()
	eval := interp.New(mem, registry)
	if opts.Trace && opts.Stderr != nil {
		eval.SetTrace(opts.Stderr)
	}
	status, err := eval.Run(prog)
	if err != nil {
		return fail(err, source, opts)
	}

	fmt.Fprintln(opts.Stdout)
	fmt.Fprintf(opts.Stdout, "Process terminated with status %d\n", status)
	return Result{Status: status, ExitCode: 0}
}

// Parse lexes and parses source into a Program, without running semantic
// analysis or evaluation — used directly by the `tokens`/`ast` dev
// subcommands as well as Run.
func Parse(source string) (*ast.Program, error) {
	l := lexer.New(source)
	p, err := parser.New(l)
	if err != nil {
		return nil, toCerror(err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, toCerror(err)
	}
	return prog, nil
}

// Tokens lexes source into its full token stream, for the `tokens` dev
// subcommand.
func Tokens(source string) ([]token.Token, error) {
	l := lexer.New(source)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, toCerror(err)
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// logf writes a verbose progress line to opts.Stderr when opts.Verbose is
// set; otherwise it is a no-op.
func logf(opts Options, format string, args ...any) {
	if !opts.Verbose || opts.Stderr == nil {
		return
	}
	fmt.Fprintf(opts.Stderr, "[verbose] "+format+"\n", args...)
}

func fail(err error, source string, opts Options) Result {
	ce := toCerror(err)
	fmt.Fprintln(opts.Stderr, ce.Format(source, opts.Color))
	fmt.Fprintln(opts.Stderr)
	fmt.Fprintln(opts.Stderr, "Process terminated with status -1")
	return Result{Status: -1, ExitCode: -1}
}

// toCerror normalizes any error raised by the lexer, parser, semantic
// analyzer, or evaluator into a *cerrors.Error, in case one slipped
// through as a bare error (e.g. lexer.Error, which predates cerrors).
func toCerror(err error) *cerrors.Error {
	if ce, ok := err.(*cerrors.Error); ok {
		return ce
	}
	if le, ok := err.(*lexer.Error); ok {
		return cerrors.New(cerrors.Lexer, le.Line, le.Message)
	}
	if pe, ok := err.(*parser.Error); ok {
		return cerrors.New(cerrors.Syntax, pe.Line, pe.Message)
	}
	return cerrors.New(cerrors.Runtime, 0, err.Error())
}
