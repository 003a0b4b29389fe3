package lexer

import (
	"testing"

	"github.com/cwbudde/go-cint/internal/token"
)

func TestPunctuationAndOperators(t *testing.T) {
	input := `+ - * / % ++ -- += -= *= /= == != <= >= << >> && || | ^ & ! = < > ( ) { } ; , . ? :`

	tests := []struct {
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{token.PLUS, "+"}, {token.MINUS, "-"}, {token.STAR, "*"}, {token.SLASH, "/"},
		{token.PERCENT, "%"}, {token.INC, "++"}, {token.DEC, "--"},
		{token.PLUS_ASSIGN, "+="}, {token.MINUS_ASSIGN, "-="}, {token.STAR_ASSIGN, "*="}, {token.SLASH_ASSIGN, "/="},
		{token.EQ, "=="}, {token.NOT_EQ, "!="}, {token.LE, "<="}, {token.GE, ">="},
		{token.SHL, "<<"}, {token.SHR, ">>"}, {token.LOGICAL_AND, "&&"}, {token.LOGICAL_OR, "||"},
		{token.BIT_OR, "|"}, {token.BIT_XOR, "^"}, {token.BIT_AND, "&"}, {token.NOT, "!"},
		{token.ASSIGN, "="}, {token.LT, "<"}, {token.GT, ">"},
		{token.LPAREN, "("}, {token.RPAREN, ")"}, {token.LBRACE, "{"}, {token.RBRACE, "}"},
		{token.SEMI, ";"}, {token.COMMA, ","}, {token.DOT, "."}, {token.QUESTION, "?"}, {token.COLON, ":"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (literal=%q)", i, tt.expectedKind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := `int float double char void if else while do for return break continue foo _bar baz123`

	tests := []struct {
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{token.INT, "int"}, {token.FLOAT, "float"}, {token.DOUBLE, "double"}, {token.CHAR, "char"}, {token.VOID, "void"},
		{token.IF, "if"}, {token.ELSE, "else"}, {token.WHILE, "while"}, {token.DO, "do"}, {token.FOR, "for"},
		{token.RETURN, "return"}, {token.BREAK, "break"}, {token.CONTINUE, "continue"},
		{token.ID, "foo"}, {token.ID, "_bar"}, {token.ID, "baz123"},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if tok.Kind != tt.expectedKind || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected {%v %q}, got {%v %q}", i, tt.expectedKind, tt.expectedLiteral, tok.Kind, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{"integer", "123", token.INTEGER_CONST, "123"},
		{"zero", "0", token.INTEGER_CONST, "0"},
		{"real", "3.14", token.REAL_CONST, "3.14"},
		{"leading-zero real", "0.5", token.REAL_CONST, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			tok, err := l.NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok.Kind != tt.expectedKind || tok.Literal != tt.expectedLiteral {
				t.Fatalf("expected {%v %q}, got {%v %q}", tt.expectedKind, tt.expectedLiteral, tok.Kind, tok.Literal)
			}
		})
	}
}

func TestMalformedNumberErrors(t *testing.T) {
	for _, input := range []string{"1.", "1x"} {
		l := New(input)
		if _, err := l.NextToken(); err == nil {
			t.Fatalf("input %q: expected a lexer error, got none", input)
		}
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	l := New(`"hi\n" 'a' '\t'`)

	tok, err := l.NextToken()
	if err != nil || tok.Kind != token.STRING || tok.Literal != "hi\n" {
		t.Fatalf("string literal wrong: %+v err=%v", tok, err)
	}
	tok, err = l.NextToken()
	if err != nil || tok.Kind != token.CHAR_CONST || tok.Literal != "a" {
		t.Fatalf("char literal wrong: %+v err=%v", tok, err)
	}
	tok, err = l.NextToken()
	if err != nil || tok.Kind != token.CHAR_CONST || tok.Literal != "\t" {
		t.Fatalf("escaped char literal wrong: %+v err=%v", tok, err)
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	l := New(`"unterminated`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New("/* a block comment\nspanning lines */ int x;")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != token.INT {
		t.Fatalf("expected INT after comment, got %v", tok.Kind)
	}
	if l.Line() != 2 {
		t.Fatalf("expected line tracking to advance across the comment, got line %d", l.Line())
	}
}

func TestSaveAndRestoreState(t *testing.T) {
	l := New("int x = 1;")
	_, _ = l.NextToken() // int
	saved := l.SaveState()

	first, _ := l.NextToken() // x
	if first.Literal != "x" {
		t.Fatalf("expected 'x', got %q", first.Literal)
	}

	l.RestoreState(saved)
	replay, _ := l.NextToken()
	if replay.Literal != "x" {
		t.Fatalf("expected restored cursor to re-read 'x', got %q", replay.Literal)
	}
}

func TestHashAndIncludeTokens(t *testing.T) {
	l := New(`#include <stdio.h>`)
	tok, _ := l.NextToken()
	if tok.Kind != token.HASH {
		t.Fatalf("expected HASH, got %v", tok.Kind)
	}
	tok, _ = l.NextToken()
	if tok.Kind != token.INCLUDE {
		t.Fatalf("expected INCLUDE, got %v", tok.Kind)
	}
	tok, _ = l.NextToken()
	if tok.Kind != token.LT {
		t.Fatalf("expected LT, got %v", tok.Kind)
	}
}
