// Package symtab holds the segmented virtual address space, the
// variable and constant tables built during parsing, and the semantic
// cube used to type-check expressions.
package symtab

// Type is one of the four Patito value types. Bool is result-only
// (produced by comparisons); String is constant-only (used as a cout
// argument).
type Type string

// Declared/produced types.
const (
	Int   Type = "int"
	Float Type = "float"
	Bool  Type = "bool"
	Str   Type = "string"

	// None marks a variable-table entry whose type annotation has not
	// yet been applied (I2 in spec.md §3).
	None Type = ""
)
