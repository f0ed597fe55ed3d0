package vm

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/felipeyepez/patito/symtab"
)

// DumpMemory prints every allocated cell of the packed memory image,
// one per line, grounded on the original Virtual_Machine.print_memory
// -- except addressed by the packed physical index rather than the
// logical segmented one, since that's what's actually backing this
// Machine's storage.
func (m *Machine) DumpMemory(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 1, ' ', 0)
	fmt.Fprintln(tw, "index\ttype\tvalue")
	for i, c := range m.img.cells {
		fmt.Fprintf(tw, "%d\t%s\t%v\n", i, c.Type, cellValue(c))
	}
	tw.Flush()
}

// cellValue returns whichever field of c is meaningful for its Type.
func cellValue(c Cell) any {
	switch c.Type {
	case symtab.Int:
		return c.I
	case symtab.Float:
		return c.F
	case symtab.Bool:
		return c.B
	case symtab.Str:
		return c.S
	default:
		return nil
	}
}
