// Package quad holds the Quadruple intermediate representation and the
// ordered list the compiler emits into and the VM consumes.
package quad

import (
	"errors"
	"fmt"

	"github.com/felipeyepez/patito/symtab"
)

// Op is the opcode of a quadruple, drawn from the closed set spec.md
// §3 describes.
type Op string

const (
	Add   Op = "+"
	Sub   Op = "-"
	Mul   Op = "*"
	Div   Op = "/"
	Gt    Op = ">"
	Lt    Op = "<"
	Neq   Op = "!="
	Assig Op = "="
	Goto  Op = "Goto"
	GotoF Op = "GotoF"
	GotoT Op = "GotoT"
	Print Op = "print"
)

// Operand is either an Address or absent. The explicit Present flag
// (rather than a sentinel address value) is the "patchable slot"
// abstraction spec.md's DESIGN NOTES §9 recommends.
type Operand struct {
	Present bool
	Addr    symtab.Address
	// Index additionally holds a quadruple-list index for Goto/GotoF/
	// GotoT result slots, which are targets rather than addresses.
	Index int
}

// Abs is the absent Operand.
var Abs = Operand{}

// Of wraps an Address as a present operand.
func Of(a symtab.Address) Operand {
	return Operand{Present: true, Addr: a}
}

// Target wraps a quadruple index as a present (jump-target) operand.
func Target(idx int) Operand {
	return Operand{Present: true, Index: idx}
}

// Quadruple is one four-tuple instruction.
type Quadruple struct {
	Op     Op
	Left   Operand
	Right  Operand
	Result Operand
}

// ErrAlreadyPatched is returned by List.Patch when asked to fill a
// result slot a second time -- spec.md §4.5's back-patch invariant.
var ErrAlreadyPatched = errors.New("quadruple already patched")

// List is the ordered, append-mostly sequence of quadruples. A
// zero-value List is ready to use.
type List []Quadruple

// Emit appends q and returns the index it was assigned -- the length
// of the list at the moment of emission, per spec.md §3.
func (l *List) Emit(q Quadruple) int {
	idx := len(*l)
	*l = append(*l, q)
	return idx
}

// Len returns the number of quadruples emitted so far; also the
// index the next Emit call will assign.
func (l List) Len() int {
	return len(l)
}

// Patch fills the Result slot of the Goto/GotoF/GotoT quadruple at
// idx with target. It is an error to patch an index twice, or an
// index whose Result slot is already Present.
func (l List) Patch(idx int, target int) error {
	if idx < 0 || idx >= len(l) {
		return fmt.Errorf("patch target %d out of range [0, %d)", idx, len(l))
	}
	q := &l[idx]
	if q.Result.Present {
		return ErrAlreadyPatched
	}
	q.Result = Target(target)
	return nil
}
