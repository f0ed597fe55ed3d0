// emitter.go implements the statement- and expression-level grammar
// productions: assignment, conditionals, the do/while cycle, cout
// printing, and the classical operator/operand-stack expression
// evaluator that drives quadruple emission (spec.md §4.3-§4.8).
package compiler

import (
	"github.com/felipeyepez/patito/quad"
	"github.com/felipeyepez/patito/symtab"
	"github.com/felipeyepez/patito/token"
)

// parseAssign: ID '=' expression ';'
func (p *Parser) parseAssign() {
	line, col := p.cur.Line, p.cur.Column
	name := p.expect(token.IDENT)
	target := p.resolveIdentifier(name, line, col)

	p.expect(token.EQUAL)
	p.parseExpression()
	p.expect(token.SEMICOLON)

	val, err := p.operands.Pop()
	if err != nil {
		p.halt(Semantic, "%s", err)
	}

	if !assignable(target.typ, val.typ) {
		p.haltAt(Semantic, line, col, "cannot assign %s to variable of type %s", val.typ, target.typ)
	}

	p.quads.Emit(quad.Quadruple{
		Op:     quad.Assig,
		Left:   quad.Of(val.addr),
		Result: quad.Of(target.addr),
	})
}

// assignable reports whether a value of type from may be assigned to a
// variable of type to. Assignment is type-strict, not coerced through
// the semantic cube: int and float are never interchangeable here,
// even though the cube would happily widen one to the other inside an
// expression (spec.md §9 open question, decided as written: no
// implicit widening on assignment).
func assignable(to, from symtab.Type) bool {
	return to == from
}

// parseCondition: 'if' '(' expression ')' body ('else' body)? ';'
func (p *Parser) parseCondition() {
	p.expect(token.IF)
	p.expect(token.LPAREN)
	p.parseExpression()
	p.expect(token.RPAREN)

	cond := p.popBoolOperand("if")

	gotoF := p.quads.Emit(quad.Quadruple{Op: quad.GotoF, Left: quad.Of(cond.addr)})
	p.jumps.Push(gotoF)

	p.parseBody()

	if p.cur.Type == token.ELSE {
		p.advance()

		skipElse := p.quads.Emit(quad.Quadruple{Op: quad.Goto})
		fIdx, _ := p.jumps.Pop()
		if err := p.quads.Patch(fIdx, p.quads.Len()); err != nil {
			p.halt(Semantic, "%s", err)
		}
		p.jumps.Push(skipElse)

		p.parseBody()
	}

	endIdx, _ := p.jumps.Pop()
	if err := p.quads.Patch(endIdx, p.quads.Len()); err != nil {
		p.halt(Semantic, "%s", err)
	}

	p.expect(token.SEMICOLON)
}

// parseCycle: 'do' body 'while' '(' expression ')' ';'
func (p *Parser) parseCycle() {
	p.expect(token.DO)

	top := p.quads.Len()
	p.jumps.Push(top)

	p.parseBody()

	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	p.parseExpression()
	p.expect(token.RPAREN)

	cond := p.popBoolOperand("while")

	retIdx, _ := p.jumps.Pop()
	p.quads.Emit(quad.Quadruple{Op: quad.GotoT, Left: quad.Of(cond.addr), Result: quad.Target(retIdx)})

	p.expect(token.SEMICOLON)
}

// popBoolOperand pops the operand stack and halts if it isn't a bool,
// reporting which construct (if/while) demanded it.
func (p *Parser) popBoolOperand(construct string) operand {
	o, err := p.operands.Pop()
	if err != nil {
		p.halt(Semantic, "%s", err)
	}
	if o.typ != symtab.Bool {
		p.halt(Semantic, "%s condition must be a boolean expression, got %s", construct, o.typ)
	}
	return o
}

// parsePrint: 'cout' '(' printItem {',' printItem} ')' ';'
func (p *Parser) parsePrint() {
	p.expect(token.COUT)
	p.expect(token.LPAREN)

	p.parsePrintItem()
	for p.cur.Type == token.COMMA {
		p.advance()
		p.parsePrintItem()
	}

	p.expect(token.RPAREN)
	p.quads.Emit(quad.Quadruple{Op: quad.Print})
	p.expect(token.SEMICOLON)
}

// parsePrintItem: expression | CTE_STRING
func (p *Parser) parsePrintItem() {
	if p.cur.Type == token.CTE_STRING {
		addr, err := p.consts.Intern(symtab.Str, p.cur.Literal)
		if err != nil {
			p.halt(Semantic, "%s", err)
		}
		p.quads.Emit(quad.Quadruple{Op: quad.Print, Left: quad.Of(addr)})
		p.advance()
		return
	}

	p.parseExpression()
	o, err := p.operands.Pop()
	if err != nil {
		p.halt(Semantic, "%s", err)
	}
	p.quads.Emit(quad.Quadruple{Op: quad.Print, Left: quad.Of(o.addr)})
}

// parseExpression: exp (relop exp)?
func (p *Parser) parseExpression() {
	p.parseExp()

	if op, ok := relOp(p.cur.Type); ok {
		p.operators.Push(op)
		p.advance()
		p.parseExp()
		p.createQuad()
	}
}

// parseExp: term {('+' | '-') term}
func (p *Parser) parseExp() {
	p.parseTerm()

	for {
		op, ok := addOp(p.cur.Type)
		if !ok {
			return
		}
		p.operators.Push(op)
		p.advance()
		p.parseTerm()
		p.createQuad()
	}
}

// parseTerm: factor {('*' | '/') factor}
func (p *Parser) parseTerm() {
	p.parseFactor()

	for {
		op, ok := mulOp(p.cur.Type)
		if !ok {
			return
		}
		p.operators.Push(op)
		p.advance()
		p.parseFactor()
		p.createQuad()
	}
}

// parseFactor: '(' expression ')' | ('+' | '-')? (ID | CTE_INT | CTE_FLOAT)
//
// A leading unary minus is applied *after* the operand underneath it
// is resolved and pushed: the sign is only noticed here, but the
// negation itself is emitted as a separate quadruple into a fresh temp
// once the operand is known, avoiding an ordering hazard the original
// Python implementation this was ported from was prone to (DESIGN
// NOTES §9).
func (p *Parser) parseFactor() {
	negate := false
	switch p.cur.Type {
	case token.PLUS:
		p.advance()
	case token.MINUS:
		negate = true
		p.advance()
	}

	switch p.cur.Type {
	case token.LPAREN:
		p.advance()
		p.parseExpression()
		p.expect(token.RPAREN)

	case token.IDENT:
		line, col := p.cur.Line, p.cur.Column
		name := p.expect(token.IDENT)
		p.operands.Push(p.resolveIdentifier(name, line, col))

	case token.CTE_INT:
		lit := p.cur.Literal
		p.advance()
		addr, err := p.consts.Intern(symtab.Int, lit)
		if err != nil {
			p.halt(Semantic, "%s", err)
		}
		p.operands.Push(operand{addr: addr, typ: symtab.Int})

	case token.CTE_FLOAT:
		lit := p.cur.Literal
		p.advance()
		addr, err := p.consts.Intern(symtab.Float, lit)
		if err != nil {
			p.halt(Semantic, "%s", err)
		}
		p.operands.Push(operand{addr: addr, typ: symtab.Float})

	default:
		p.halt(Syntactic, "unexpected token %q (wanted a factor)", p.cur.Literal)
	}

	if negate {
		o, err := p.operands.Pop()
		if err != nil {
			p.halt(Semantic, "%s", err)
		}
		if o.typ != symtab.Int && o.typ != symtab.Float {
			p.halt(Semantic, "unary minus requires a numeric operand, got %s", o.typ)
		}
		addr, err := p.alloc.Alloc(o.typ)
		if err != nil {
			p.halt(Semantic, "%s", err)
		}
		p.quads.Emit(quad.Quadruple{Op: quad.Sub, Left: quad.Abs, Right: quad.Of(o.addr), Result: quad.Of(addr)})
		p.operands.Push(operand{addr: addr, typ: o.typ})
	}
}

// createQuad pops the top two operands and the top operator, type
// checks the operation against the semantic cube, emits the
// quadruple, and pushes the result as a new operand -- the classical
// operator-precedence reduction step (spec.md §4.4).
func (p *Parser) createQuad() {
	right, err := p.operands.Pop()
	if err != nil {
		p.halt(Semantic, "%s", err)
	}
	left, err := p.operands.Pop()
	if err != nil {
		p.halt(Semantic, "%s", err)
	}
	op, err := p.operators.Pop()
	if err != nil {
		p.halt(Semantic, "%s", err)
	}

	resultType := symtab.Result(left.typ, right.typ, symtab.Operator(op))
	if resultType == symtab.Incompatible {
		p.halt(Semantic, "incompatible types %s %s %s", left.typ, op, right.typ)
	}

	addr, err := p.alloc.Alloc(resultType)
	if err != nil {
		p.halt(Semantic, "%s", err)
	}

	p.quads.Emit(quad.Quadruple{
		Op:     op,
		Left:   quad.Of(left.addr),
		Right:  quad.Of(right.addr),
		Result: quad.Of(addr),
	})
	p.operands.Push(operand{addr: addr, typ: resultType})
}

// relOp maps a relational token type onto its quad.Op, if any.
func relOp(t token.Type) (quad.Op, bool) {
	switch t {
	case token.GT:
		return quad.Gt, true
	case token.LT:
		return quad.Lt, true
	case token.NEQ:
		return quad.Neq, true
	default:
		return "", false
	}
}

// addOp maps '+'/'-' onto their quad.Op, if any.
func addOp(t token.Type) (quad.Op, bool) {
	switch t {
	case token.PLUS:
		return quad.Add, true
	case token.MINUS:
		return quad.Sub, true
	default:
		return "", false
	}
}

// mulOp maps '*'/'/' onto their quad.Op, if any.
func mulOp(t token.Type) (quad.Op, bool) {
	switch t {
	case token.ASTERISK:
		return quad.Mul, true
	case token.SLASH:
		return quad.Div, true
	default:
		return "", false
	}
}
