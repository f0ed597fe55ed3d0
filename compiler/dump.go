package compiler

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/felipeyepez/patito/quad"
)

// Dump prints the variable table, constant table, and quadruple list,
// in that order, for the -debug CLI flag. It mirrors what the original
// p_program's print_intermediate_code branch showed (via a
// pandas.DataFrame); a tabwriter is the idiomatic Go stand-in for that
// aligned-table formatting.
func (p Program) Dump(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 1, ' ', 0)

	fmt.Fprintln(tw, "-- variables --")
	fmt.Fprintln(tw, "name\ttype\taddress")
	for _, v := range p.Vars.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", v.Name, v.Type, v.Address)
	}
	tw.Flush()

	fmt.Fprintln(tw, "-- constants --")
	fmt.Fprintln(tw, "literal\ttype\taddress")
	for _, c := range p.Consts.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Literal, c.Type, c.Address)
	}
	tw.Flush()

	fmt.Fprintln(tw, "-- quadruples --")
	fmt.Fprintln(tw, "#\top\tleft\tright\tresult")
	for i, q := range p.Quads {
		result := operandString(q.Result)
		if q.Op == quad.Goto || q.Op == quad.GotoF || q.Op == quad.GotoT {
			result = jumpString(q.Result)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, q.Op, operandString(q.Left), operandString(q.Right), result)
	}
	tw.Flush()
}

// operandString renders a value-slot Operand: an address, or "-" when
// absent.
func operandString(o quad.Operand) string {
	if !o.Present {
		return "-"
	}
	return fmt.Sprintf("%d", o.Addr)
}

// jumpString renders a jump-target-slot Operand: a bracketed
// quadruple index, or "-" when not yet patched.
func jumpString(o quad.Operand) string {
	if !o.Present {
		return "-"
	}
	return fmt.Sprintf("[%d]", o.Index)
}
