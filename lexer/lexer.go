// Package lexer turns Patito source text into a stream of tokens.
//
// The lexer never aborts: an invalid character is reported via a
// token.ERROR token (carrying the offending rune) and scanning
// continues from the next rune, matching spec.md's "warn, skip, and
// continue" lexical error policy. Line and column are tracked on every
// token so later phases can report useful diagnostics.
package lexer

import (
	"strings"

	"github.com/felipeyepez/patito/token"
)

// Lexer holds our object-state.
type Lexer struct {
	position     int    // current character position
	readPosition int    // next character position
	ch           rune   // current character
	characters   []rune // rune slice of input string

	line   int
	column int
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input), line: 1, column: 0}
	l.readChar()
	return l
}

// read one forward character, tracking line/column as we go.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// NextToken reads and returns the next token, skipping whitespace.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token
	l.skipWhitespace()

	line, col := l.line, l.column

	switch l.ch {
	case rune('('):
		tok = newToken(token.LPAREN, l.ch, line, col)
	case rune(')'):
		tok = newToken(token.RPAREN, l.ch, line, col)
	case rune('{'):
		tok = newToken(token.LBRACE, l.ch, line, col)
	case rune('}'):
		tok = newToken(token.RBRACE, l.ch, line, col)
	case rune(':'):
		tok = newToken(token.COLON, l.ch, line, col)
	case rune(','):
		tok = newToken(token.COMMA, l.ch, line, col)
	case rune(';'):
		tok = newToken(token.SEMICOLON, l.ch, line, col)
	case rune('+'):
		tok = newToken(token.PLUS, l.ch, line, col)
	case rune('-'):
		tok = newToken(token.MINUS, l.ch, line, col)
	case rune('*'):
		tok = newToken(token.ASTERISK, l.ch, line, col)
	case rune('/'):
		tok = newToken(token.SLASH, l.ch, line, col)
	case rune('>'):
		tok = newToken(token.GT, l.ch, line, col)
	case rune('<'):
		tok = newToken(token.LT, l.ch, line, col)
	case rune('='):
		tok = newToken(token.EQUAL, l.ch, line, col)
	case rune('!'):
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NEQ, Literal: "!=", Line: line, Column: col}
		} else {
			tok = token.Token{Type: token.ERROR, Literal: "!", Line: line, Column: col}
		}
	case rune('"'):
		// readString already consumes past the closing quote, so
		// return directly instead of falling through to the trailing
		// readChar below.
		lit, ok := l.readString()
		if !ok {
			return token.Token{Type: token.ERROR, Literal: `"`, Line: line, Column: col}
		}
		return token.Token{Type: token.CTE_STRING, Literal: lit, Line: line, Column: col}
	case rune(0):
		tok.Type = token.EOF
		tok.Literal = ""
		tok.Line, tok.Column = line, col
		return tok
	default:
		if isDigit(l.ch) {
			t := l.readNumber()
			t.Line, t.Column = line, col
			return t
		}
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdentifier(lit), Literal: lit, Line: line, Column: col}
		}
		tok = token.Token{Type: token.ERROR, Literal: string(l.ch), Line: line, Column: col}
	}
	l.readChar()
	return tok
}

// newToken builds a single-rune token at the given position.
func newToken(tokenType token.Type, ch rune, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Line: line, Column: col}
}

// skipWhitespace advances past spaces, tabs, and newlines.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// readNumber reads an integer literal, or a float literal if a '.'
// followed by a digit is found.
func (l *Lexer) readNumber() token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		return token.Token{Type: token.CTE_FLOAT, Literal: string(l.characters[start:l.position])}
	}

	return token.Token{Type: token.CTE_INT, Literal: string(l.characters[start:l.position])}
}

// readString reads a "..." string literal, any characters except an
// embedded quote. Returns ok=false if EOF is hit before the closing
// quote.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != '"' {
		if l.ch == rune(0) {
			return string(l.characters[start:l.position]), false
		}
		l.readChar()
	}
	lit := string(l.characters[start:l.position])
	l.readChar() // consume closing quote
	return lit, true
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

// isWhitespace reports whether ch is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == rune(' ') || ch == rune('\t') || ch == rune('\n') || ch == rune('\r')
}

// isDigit reports whether ch is an ASCII digit.
func isDigit(ch rune) bool {
	return rune('0') <= ch && ch <= rune('9')
}

// isLetter reports whether ch may start or continue an identifier.
func isLetter(ch rune) bool {
	return rune('a') <= ch && ch <= rune('z') || rune('A') <= ch && ch <= rune('Z')
}

// readIdentifier reads `[A-Za-z][A-Za-z0-9]*`.
func (l *Lexer) readIdentifier() string {
	var b strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}
	return b.String()
}
