package lexer

import (
	"testing"

	"github.com/felipeyepez/patito/token"
)

// Trivial test of the parsing of numbers.
func TestParseNumbers(t *testing.T) {
	input := `3 43 17 3.5 0.1`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.CTE_INT, "3"},
		{token.CTE_INT, "43"},
		{token.CTE_INT, "17"},
		{token.CTE_FLOAT, "3.5"},
		{token.CTE_FLOAT, "0.1"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Trivial test of the parsing of operators and punctuation.
func TestParseOperators(t *testing.T) {
	input := `+ - * / > < != = ( ) { } : , ;`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.GT, ">"},
		{token.LT, "<"},
		{token.NEQ, "!="},
		{token.EQUAL, "="},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.COLON, ":"},
		{token.COMMA, ","},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Trivial test of keywords, identifiers and strings.
func TestParseProgram(t *testing.T) {
	input := `program p; var a: int; cout("hi");`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PROGRAM, "program"},
		{token.IDENT, "p"},
		{token.SEMICOLON, ";"},
		{token.VAR, "var"},
		{token.IDENT, "a"},
		{token.COLON, ":"},
		{token.INT, "int"},
		{token.SEMICOLON, ";"},
		{token.COUT, "cout"},
		{token.LPAREN, "("},
		{token.CTE_STRING, "hi"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Invalid characters surface as ERROR tokens, and scanning continues.
func TestParseBogus(t *testing.T) {
	input := `a $ 3`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.IDENT, "a"},
		{token.ERROR, "$"},
		{token.CTE_INT, "3"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Line tracking across newlines.
func TestLineTracking(t *testing.T) {
	input := "a\nb\n\nc"
	l := New(input)

	want := []int{1, 2, 4}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Line != w {
			t.Fatalf("token %d: expected line %d, got %d", i, w, tok.Line)
		}
	}
}
