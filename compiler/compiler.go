// Package compiler is the core of our toolchain.
//
// It walks the grammar of spec.md §4 by recursive descent, the way the
// teacher's own compiler package walks its source grammar: each
// production is a method on a Parser, consuming tokens one at a time
// and driving semantic actions as it goes (see emitter.go for the
// expression-level productions and quadruple emission). There is no
// separate tokenize-then-parse pass -- the lexer is pulled from on
// demand, with one token of lookahead.
//
// A successful compilation hands back a Program: the quadruples, the
// variable table, and the constant table, ready for the vm package to
// execute.
package compiler

import (
	"github.com/felipeyepez/patito/lexer"
	"github.com/felipeyepez/patito/quad"
	"github.com/felipeyepez/patito/stack"
	"github.com/felipeyepez/patito/symtab"
	"github.com/felipeyepez/patito/token"
)

// Program is the triple of artifacts a successful compilation hands to
// the vm package.
type Program struct {
	Quads  quad.List
	Vars   *symtab.VarTable
	Consts *symtab.ConstTable

	// Warnings holds non-fatal diagnostics (currently only duplicate
	// declarations) collected during a successful compilation.
	Warnings []*Error
}

// operand is what the operand stack actually holds: an address paired
// with its type, so createQuad can consult the semantic cube without
// a second lookup.
type operand struct {
	addr symtab.Address
	typ  symtab.Type
}

// Parser holds all the state a single compilation owns. A fresh Parser
// is created per call to Compile; nothing here is ever shared across
// compilations.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token

	vars   *symtab.VarTable
	consts *symtab.ConstTable
	alloc  *symtab.Allocator
	quads  quad.List

	operands  *stack.Stack[operand]
	operators *stack.Stack[quad.Op]
	jumps     *stack.Stack[int]

	warnings []*Error
}

// Compile lexes and parses src, emitting quadruples as it goes, and
// returns the resulting Program. A fatal lexical, syntactic, or
// semantic error aborts compilation and returns a non-nil error; no
// partial Program is usable in that case.
func Compile(src string) (prog Program, err error) {
	p := &Parser{
		lex:       lexer.New(src),
		vars:      symtab.NewVarTable(),
		consts:    symtab.NewConstTable(),
		alloc:     symtab.NewAllocator(),
		operands:  stack.New[operand](),
		operators: stack.New[quad.Op](),
		jumps:     stack.New[int](),
	}

	defer func() {
		if r := recover(); r != nil {
			he, ok := r.(haltError)
			if !ok {
				panic(r)
			}
			err = he.err
		}
	}()

	p.advance()
	p.advance()
	p.parseProgram()

	return Program{
		Quads:    p.quads,
		Vars:     p.vars,
		Consts:   p.consts,
		Warnings: p.warnings,
	}, nil
}

// advance shifts the lookahead token into cur and reads a fresh
// lookahead from the lexer.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()

	if p.cur.Type == token.ERROR {
		p.halt(Lexical, "unrecognized character %q", p.cur.Literal)
	}
}

// expect checks that cur has type t, consumes it, and returns its
// literal; otherwise it halts with a syntactic error.
func (p *Parser) expect(t token.Type) string {
	if p.cur.Type != t {
		p.halt(Syntactic, "unexpected token %q (wanted %q)", p.cur.Literal, t)
	}
	lit := p.cur.Literal
	p.advance()
	return lit
}

// parseProgram: 'program' ID ';' (vars)? body 'end'
func (p *Parser) parseProgram() {
	p.expect(token.PROGRAM)
	p.expect(token.IDENT)
	p.expect(token.SEMICOLON)

	if p.cur.Type == token.VAR {
		p.parseVars()
	}

	p.parseBody()
	p.expect(token.END)

	if !p.operands.Empty() || !p.operators.Empty() || !p.jumps.Empty() {
		p.halt(Semantic, "pending quadruples at end of program")
	}
}

// parseVars: 'var' decl_group
func (p *Parser) parseVars() {
	p.expect(token.VAR)
	p.parseDeclGroup()
}

// parseDeclGroup: ID {',' ID} ':' type ';' (decl_group)?
func (p *Parser) parseDeclGroup() {
	p.declareID()
	for p.cur.Type == token.COMMA {
		p.advance()
		p.declareID()
	}

	p.expect(token.COLON)
	typ := p.parseType()
	p.expect(token.SEMICOLON)

	if err := p.vars.AnnotateType(typ, p.alloc); err != nil {
		p.halt(Semantic, "%s", err)
	}

	if p.cur.Type == token.IDENT {
		p.parseDeclGroup()
	}
}

// declareID consumes an identifier and inserts it into the variable
// table with a pending type. A duplicate name is a non-fatal warning:
// the original entry is left alone and compilation continues.
func (p *Parser) declareID() {
	line, col := p.cur.Line, p.cur.Column
	name := p.expect(token.IDENT)
	if err := p.vars.Declare(name); err != nil {
		p.warnings = append(p.warnings, &Error{
			Phase:   Semantic,
			Message: err.Error(),
			Line:    line,
			Column:  col,
		})
	}
}

// parseType: 'int' | 'float'
func (p *Parser) parseType() symtab.Type {
	switch p.cur.Type {
	case token.INT:
		p.advance()
		return symtab.Int
	case token.FLOAT:
		p.advance()
		return symtab.Float
	default:
		p.halt(Syntactic, "unexpected token %q (wanted a type)", p.cur.Literal)
		panic("unreachable")
	}
}

// parseBody: '{' {statement} '}'
func (p *Parser) parseBody() {
	p.expect(token.LBRACE)
	for p.cur.Type != token.RBRACE {
		p.parseStatement()
	}
	p.expect(token.RBRACE)
}

// parseStatement: assign | condition | cycle | print
func (p *Parser) parseStatement() {
	switch p.cur.Type {
	case token.IDENT:
		p.parseAssign()
	case token.IF:
		p.parseCondition()
	case token.DO:
		p.parseCycle()
	case token.COUT:
		p.parsePrint()
	default:
		p.halt(Syntactic, "unexpected token %q (wanted a statement)", p.cur.Literal)
	}
}

// resolveIdentifier looks up name in the variable table, halting with
// an undeclared-variable error if it isn't there.
func (p *Parser) resolveIdentifier(name string, line, col int) operand {
	e, ok := p.vars.Lookup(name)
	if !ok {
		p.haltAt(Semantic, line, col, "undeclared variable %q", name)
	}
	return operand{addr: e.Address, typ: e.Type}
}
