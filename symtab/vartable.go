package symtab

import "fmt"

// VarEntry is one row of the variable table: a name together with its
// (eventually resolved) type and address.
type VarEntry struct {
	Name    string
	Type    Type
	Address Address
}

// VarTable is the variable table: name -> {type, address}, built
// incrementally as `var` declaration lists are parsed.
//
// Entries are kept in insertion order (the order doesn't matter
// semantically, per spec.md §3, but a deterministic iteration order
// makes debug dumps and tests reproducible).
type VarTable struct {
	order   []string
	entries map[string]*VarEntry
}

// NewVarTable returns an empty variable table.
func NewVarTable() *VarTable {
	return &VarTable{
		entries: make(map[string]*VarEntry),
	}
}

// Declare inserts name with a pending (None) type. A duplicate name
// is a non-fatal error: the original entry is preserved and the
// caller is expected to surface the error as a warning rather than
// abort compilation (spec.md §4.1, §7).
func (t *VarTable) Declare(name string) error {
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("variable %q already exists", name)
	}
	t.entries[name] = &VarEntry{Name: name, Type: None}
	t.order = append(t.order, name)
	return nil
}

// AnnotateType assigns typ, and an address allocated from alloc, to
// every entry still carrying a pending (None) type -- i.e. every name
// declared since the last annotation. This implements the "textual
// batch" declaration semantics of spec.md §4.1. alloc must be the same
// Allocator the compiler uses for temporaries of the same type, since
// variables and temporaries share a single segment.
func (t *VarTable) AnnotateType(typ Type, alloc *Allocator) error {
	if typ != Int && typ != Float {
		return fmt.Errorf("invalid variable type %q", typ)
	}
	for _, name := range t.order {
		e := t.entries[name]
		if e.Type != None {
			continue
		}
		addr, err := alloc.Alloc(typ)
		if err != nil {
			return err
		}
		e.Type = typ
		e.Address = addr
	}
	return nil
}

// Lookup returns the entry for name, or false if it was never
// declared ("undeclared variable" in spec.md §7).
func (t *VarTable) Lookup(name string) (VarEntry, bool) {
	e, ok := t.entries[name]
	if !ok {
		return VarEntry{}, false
	}
	return *e, true
}

// Entries returns every entry in declaration order.
func (t *VarTable) Entries() []VarEntry {
	out := make([]VarEntry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.entries[name])
	}
	return out
}

// AllResolved reports whether every declared entry has a non-None
// type, i.e. no `var` list was left without its `: type ;` annotation.
func (t *VarTable) AllResolved() bool {
	for _, name := range t.order {
		if t.entries[name].Type == None {
			return false
		}
	}
	return true
}
