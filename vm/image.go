package vm

import (
	"fmt"

	"github.com/felipeyepez/patito/compiler"
	"github.com/felipeyepez/patito/quad"
	"github.com/felipeyepez/patito/symtab"
)

// image is the VM's flat, compacted memory. A Patito program's logical
// addresses are sparse -- spread across six 1000-wide segments of
// which a given program typically uses only a handful of cells -- so
// each segment is packed down to the number of cells it actually
// needs, in segment order, before a single quadruple executes. This is
// a restatement of the original Python Virtual_Machine's
// allocate_memory/get_memory_dir pair: that code derives each
// segment's size from the highest address it ever sees referenced
// (vars, constants, and quadruple operands alike) and lays the packed
// segments out back to back; since every address within a segment is
// handed out sequentially starting at offset 0 (symtab.Allocator,
// symtab.ConstTable), "highest address seen" and "segment size" are
// the same number.
type image struct {
	cells []Cell
	bases [symtab.NumSegments]int
	sizes [symtab.NumSegments]int
}

// newImage packs sizes (the number of cells needed per segment, in
// segment order) into a single flat cell slice.
func newImage(sizes [symtab.NumSegments]int) *image {
	var bases [symtab.NumSegments]int
	total := 0
	for i, n := range sizes {
		bases[i] = total
		total += n
	}
	return &image{cells: make([]Cell, total), bases: bases, sizes: sizes}
}

// computeSizes scans a compiled Program's variable table, constant
// table, and quadruples for the highest address referenced in each
// segment, the same three sources the original allocate_memory walks.
//
// A Goto/GotoF/GotoT quadruple's Result slot holds a jump-target
// quadruple index, not a memory address, and must be excluded from
// this scan -- the original Python code doesn't need to, since a small
// integer index never collides with the numeric ranges its segments
// occupy, but our Operand type keeps addresses and jump targets in
// different fields precisely so this package never has to rely on
// that coincidence.
func computeSizes(prog compiler.Program) [symtab.NumSegments]int {
	var sizes [symtab.NumSegments]int

	grow := func(addr symtab.Address) {
		seg := addr.Segment().Index()
		need := int(addr.Offset()) + 1
		if need > sizes[seg] {
			sizes[seg] = need
		}
	}

	for _, c := range prog.Consts.Entries() {
		grow(c.Address)
	}
	for _, v := range prog.Vars.Entries() {
		grow(v.Address)
	}
	for _, q := range prog.Quads {
		if q.Left.Present {
			grow(q.Left.Addr)
		}
		if q.Right.Present {
			grow(q.Right.Addr)
		}
		if q.Result.Present && q.Op != quad.Goto && q.Op != quad.GotoF && q.Op != quad.GotoT {
			grow(q.Result.Addr)
		}
	}

	return sizes
}

// physical translates a logical, segmented Address into an index into
// img.cells.
func (img *image) physical(addr symtab.Address) (int, error) {
	seg := addr.Segment()
	idx := seg.Index()
	offset := int(addr.Offset())
	if offset >= img.sizes[idx] {
		return 0, fmt.Errorf("address %d (%s segment, offset %d) was never allocated", addr, seg, offset)
	}
	return img.bases[idx] + offset, nil
}

// load returns the cell at addr.
func (img *image) load(addr symtab.Address) (Cell, error) {
	i, err := img.physical(addr)
	if err != nil {
		return Cell{}, err
	}
	return img.cells[i], nil
}

// store writes c into the cell at addr.
func (img *image) store(addr symtab.Address, c Cell) error {
	i, err := img.physical(addr)
	if err != nil {
		return err
	}
	img.cells[i] = c
	return nil
}
