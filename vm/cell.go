package vm

import "github.com/felipeyepez/patito/symtab"

// Cell is one slot of the VM's flat memory: a tagged union rather than
// an interface{}, so the interpreter's arithmetic dispatch is a type
// switch on symtab.Type instead of a runtime type assertion. Only the
// field matching Type is meaningful.
type Cell struct {
	Type symtab.Type
	I    int64
	F    float64
	B    bool
	S    string
}

// asFloat returns a Cell's numeric value widened to float64, for
// mixed int/float arithmetic and comparisons.
func asFloat(c Cell) float64 {
	if c.Type == symtab.Int {
		return float64(c.I)
	}
	return c.F
}
