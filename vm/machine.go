// Package vm executes the quadruples a compiler.Compile call produces:
// a single-program-counter interpreter loop over a compacted flat
// memory image, ported from the original Python
// Virtual_Machine.execute (see image.go for the address-compaction
// half of that port).
package vm

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/felipeyepez/patito/compiler"
	"github.com/felipeyepez/patito/quad"
	"github.com/felipeyepez/patito/symtab"
)

// Machine holds the compacted memory and the quadruple program it
// executes. A fresh Machine is built per run via New or Execute;
// nothing here is shared across runs.
type Machine struct {
	img   *image
	quads quad.List
}

// New builds a Machine from a compiled Program: it sizes and packs the
// memory image, then loads every constant and declared variable into
// it.
func New(prog compiler.Program) (*Machine, error) {
	m := &Machine{
		img:   newImage(computeSizes(prog)),
		quads: prog.Quads,
	}

	for _, c := range prog.Consts.Entries() {
		cell, err := cellFromLiteral(c.Type, c.Literal)
		if err != nil {
			return nil, fmt.Errorf("loading constant %q: %w", c.Literal, err)
		}
		if err := m.img.store(c.Address, cell); err != nil {
			return nil, err
		}
	}

	for _, v := range prog.Vars.Entries() {
		if err := m.img.store(v.Address, Cell{Type: v.Type}); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Execute builds a Machine for an already compiled prog and runs it to
// completion in one call, writing cout output to out.
func Execute(ctx context.Context, prog compiler.Program, out io.Writer) error {
	m, err := New(prog)
	if err != nil {
		return err
	}
	return m.Run(ctx, out)
}

// Run executes quadruples one at a time from pc 0, checking ctx once
// per quadruple as a cooperative cancellation hook (spec.md §5's
// concurrency model is otherwise unaffected: this loop is still a
// single program counter, never parallel).
func (m *Machine) Run(ctx context.Context, out io.Writer) error {
	pc := 0
	for pc < m.quads.Len() {
		if err := ctx.Err(); err != nil {
			return err
		}

		q := m.quads[pc]
		next, err := m.step(pc, q, out)
		if err != nil {
			return err
		}
		pc = next
	}
	return nil
}

// step executes one quadruple and returns the next program counter.
func (m *Machine) step(pc int, q quad.Quadruple, out io.Writer) (int, error) {
	switch q.Op {
	case quad.Add, quad.Sub, quad.Mul, quad.Div:
		return pc + 1, m.arith(pc, q)

	case quad.Gt, quad.Lt, quad.Neq:
		return pc + 1, m.relational(pc, q)

	case quad.Assig:
		return pc + 1, m.assign(pc, q)

	case quad.Print:
		return pc + 1, m.print(pc, q, out)

	case quad.Goto:
		return q.Result.Index, nil

	case quad.GotoF:
		cond, err := m.img.load(q.Left.Addr)
		if err != nil {
			return 0, m.fault(pc, err)
		}
		if !cond.B {
			return q.Result.Index, nil
		}
		return pc + 1, nil

	case quad.GotoT:
		cond, err := m.img.load(q.Left.Addr)
		if err != nil {
			return 0, m.fault(pc, err)
		}
		if cond.B {
			return q.Result.Index, nil
		}
		return pc + 1, nil

	default:
		return 0, &RuntimeError{PC: pc, Message: fmt.Sprintf("unrecognized opcode %q", q.Op)}
	}
}

// arith executes +, -, *, / (both the binary forms and, for '-', the
// unary-minus form the compiler emits with an absent Left operand).
func (m *Machine) arith(pc int, q quad.Quadruple) error {
	right, err := m.img.load(q.Right.Addr)
	if err != nil {
		return m.fault(pc, err)
	}

	if !q.Left.Present {
		if q.Op != quad.Sub {
			return &RuntimeError{PC: pc, Message: fmt.Sprintf("opcode %q requires a left operand", q.Op)}
		}
		result := negate(right)
		return m.fault(pc, m.img.store(q.Result.Addr, result))
	}

	left, err := m.img.load(q.Left.Addr)
	if err != nil {
		return m.fault(pc, err)
	}

	result, err := binary(q.Op, left, right)
	if err != nil {
		return &RuntimeError{PC: pc, Message: err.Error()}
	}
	return m.fault(pc, m.img.store(q.Result.Addr, result))
}

// relational executes >, <, !=, always producing a Bool result.
func (m *Machine) relational(pc int, q quad.Quadruple) error {
	left, err := m.img.load(q.Left.Addr)
	if err != nil {
		return m.fault(pc, err)
	}
	right, err := m.img.load(q.Right.Addr)
	if err != nil {
		return m.fault(pc, err)
	}

	result := Cell{Type: symtab.Bool, B: compare(q.Op, left, right)}
	return m.fault(pc, m.img.store(q.Result.Addr, result))
}

// assign executes '=': copy the source cell's value into the target
// address. Compile-time assignment is type-strict (spec.md §9), so no
// conversion happens here.
func (m *Machine) assign(pc int, q quad.Quadruple) error {
	src, err := m.img.load(q.Left.Addr)
	if err != nil {
		return m.fault(pc, err)
	}
	return m.fault(pc, m.img.store(q.Result.Addr, src))
}

// print executes 'print': write one value to out with no trailing
// newline, matching the original Virtual_Machine's
// `print(value, end='')`. A print with no left operand is the
// terminator every cout statement emits at its closing ';' and writes
// a newline instead of a value.
func (m *Machine) print(pc int, q quad.Quadruple, out io.Writer) error {
	if !q.Left.Present {
		if _, err := io.WriteString(out, "\n"); err != nil {
			return &RuntimeError{PC: pc, Message: err.Error()}
		}
		return nil
	}

	c, err := m.img.load(q.Left.Addr)
	if err != nil {
		return m.fault(pc, err)
	}

	var text string
	switch c.Type {
	case symtab.Int:
		text = strconv.FormatInt(c.I, 10)
	case symtab.Float:
		text = strconv.FormatFloat(c.F, 'g', -1, 64)
	case symtab.Str:
		text = c.S
	case symtab.Bool:
		text = strconv.FormatBool(c.B)
	}

	if _, err := io.WriteString(out, text); err != nil {
		return &RuntimeError{PC: pc, Message: err.Error()}
	}
	return nil
}

// fault wraps a non-nil image-access error as a RuntimeError tagged
// with pc; a nil err passes through unchanged.
func (m *Machine) fault(pc int, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return &RuntimeError{PC: pc, Message: err.Error()}
}

// negate returns the additive inverse of c, preserving its type.
func negate(c Cell) Cell {
	if c.Type == symtab.Int {
		return Cell{Type: symtab.Int, I: -c.I}
	}
	return Cell{Type: symtab.Float, F: -c.F}
}

// binary computes a binary +, -, *, or / over two cells, following
// the semantic cube's typing rule: int op int stays int for +, -, *,
// but / always widens to float, and any float operand widens the
// whole operation to float.
func binary(op quad.Op, left, right Cell) (Cell, error) {
	if left.Type == symtab.Int && right.Type == symtab.Int && op != quad.Div {
		switch op {
		case quad.Add:
			return Cell{Type: symtab.Int, I: left.I + right.I}, nil
		case quad.Sub:
			return Cell{Type: symtab.Int, I: left.I - right.I}, nil
		case quad.Mul:
			return Cell{Type: symtab.Int, I: left.I * right.I}, nil
		}
	}

	l, r := asFloat(left), asFloat(right)
	switch op {
	case quad.Add:
		return Cell{Type: symtab.Float, F: l + r}, nil
	case quad.Sub:
		return Cell{Type: symtab.Float, F: l - r}, nil
	case quad.Mul:
		return Cell{Type: symtab.Float, F: l * r}, nil
	case quad.Div:
		if r == 0 {
			return Cell{}, fmt.Errorf("division by zero")
		}
		return Cell{Type: symtab.Float, F: l / r}, nil
	}
	return Cell{}, fmt.Errorf("unsupported arithmetic opcode %q", op)
}

// compare computes a relational >, <, or != over two cells. Two int
// cells compare exactly; anything else compares as float64.
func compare(op quad.Op, left, right Cell) bool {
	if left.Type == symtab.Int && right.Type == symtab.Int {
		switch op {
		case quad.Gt:
			return left.I > right.I
		case quad.Lt:
			return left.I < right.I
		case quad.Neq:
			return left.I != right.I
		}
	}

	l, r := asFloat(left), asFloat(right)
	switch op {
	case quad.Gt:
		return l > r
	case quad.Lt:
		return l < r
	case quad.Neq:
		return l != r
	}
	return false
}

// cellFromLiteral parses a constant-table literal into a Cell.
func cellFromLiteral(typ symtab.Type, literal string) (Cell, error) {
	switch typ {
	case symtab.Int:
		i, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return Cell{}, err
		}
		return Cell{Type: symtab.Int, I: i}, nil
	case symtab.Float:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Cell{}, err
		}
		return Cell{Type: symtab.Float, F: f}, nil
	case symtab.Str:
		return Cell{Type: symtab.Str, S: literal}, nil
	default:
		return Cell{}, fmt.Errorf("constant %q has unsupported type %q", literal, typ)
	}
}
