package symtab

import "fmt"

// Allocator hands out addresses in the three segments that variables
// and temporaries share: var/temp-int, var/temp-float, and
// temp-bool. Spec.md §3 places declared variables and their temps in
// the *same* 1000-wide segment, so a single counter per segment must
// be shared between VarTable.AnnotateType (declarations) and whatever
// allocates temporaries for intermediate expression results -- hence
// pulling the counters out of VarTable and into their own type here.
type Allocator struct {
	intCounter   *counter
	floatCounter *counter
	boolCounter  *counter
}

// NewAllocator returns an Allocator with all three counters freshly
// zeroed at the start of their segments.
func NewAllocator() *Allocator {
	return &Allocator{
		intCounter:   newCounter(SegVarInt),
		floatCounter: newCounter(SegVarFloat),
		boolCounter:  newCounter(SegTempBool),
	}
}

// Alloc returns the next free address for typ (Int, Float, or Bool).
func (a *Allocator) Alloc(typ Type) (Address, error) {
	switch typ {
	case Int:
		return a.intCounter.allocate()
	case Float:
		return a.floatCounter.allocate()
	case Bool:
		return a.boolCounter.allocate()
	default:
		return 0, fmt.Errorf("cannot allocate an address for type %q", typ)
	}
}
