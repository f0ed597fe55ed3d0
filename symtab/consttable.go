package symtab

import "fmt"

// ConstEntry is one row of the constant table.
type ConstEntry struct {
	// Literal is the literal's source text for int/float constants
	// (interning key, per invariant C1), or the unescaped body of a
	// string literal.
	Literal string
	Type    Type
	Address Address
}

// ConstTable interns literal constants: each distinct literal value
// gets exactly one entry (invariant C1), typed into the matching
// segment (invariant C2).
type ConstTable struct {
	order   []string
	entries map[string]*ConstEntry

	intCounter    *counter
	floatCounter  *counter
	stringCounter *counter
}

// NewConstTable returns an empty constant table.
func NewConstTable() *ConstTable {
	return &ConstTable{
		entries:       make(map[string]*ConstEntry),
		intCounter:    newCounter(SegConstInt),
		floatCounter:  newCounter(SegConstFloat),
		stringCounter: newCounter(SegConstString),
	}
}

// key distinguishes literals of different types that share the same
// source text (can't actually happen for int vs. float vs. string
// here, since their lexical forms never collide, but keeping the type
// in the key keeps the intent explicit).
func key(typ Type, literal string) string {
	return string(typ) + ":" + literal
}

// Intern returns the address of literal (interning it on first sight).
// typ must be Int, Float, or Str; anything else is a compiler bug
// (spec.md §7: "constant whose type is neither int nor float" -- Str
// is additionally allowed here since cout string arguments are also
// interned through this table).
func (t *ConstTable) Intern(typ Type, literal string) (Address, error) {
	k := key(typ, literal)
	if e, ok := t.entries[k]; ok {
		return e.Address, nil
	}

	var addr Address
	var err error
	switch typ {
	case Int:
		addr, err = t.intCounter.allocate()
	case Float:
		addr, err = t.floatCounter.allocate()
	case Str:
		addr, err = t.stringCounter.allocate()
	default:
		return 0, fmt.Errorf("constant %q is not int, float, or string", literal)
	}
	if err != nil {
		return 0, err
	}

	t.entries[k] = &ConstEntry{Literal: literal, Type: typ, Address: addr}
	t.order = append(t.order, k)
	return addr, nil
}

// Entries returns every interned constant in first-seen order.
func (t *ConstTable) Entries() []ConstEntry {
	out := make([]ConstEntry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, *t.entries[k])
	}
	return out
}
