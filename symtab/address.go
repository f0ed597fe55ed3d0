package symtab

import "fmt"

// Address is an unsigned integer in [0, 6000) partitioned into six
// contiguous segments of 1000 cells each. The segment is never stored
// alongside an Address; it is always recovered from the value itself
// via Segment.
type Address uint

// Segment identifies which 1000-wide range of the address space an
// Address falls in.
type Segment int

// Segments, in the fixed order spec.md §3 lays them out in.
const (
	SegConstInt Segment = iota
	SegConstFloat
	SegConstString
	SegVarInt
	SegVarFloat
	SegTempBool

	numSegments
)

// segmentWidth is the width of every segment.
const segmentWidth = 1000

// MemoryLimit is the first address outside the valid [0, 6000) range.
const MemoryLimit = Address(numSegments * segmentWidth)

// base returns the first logical address of a segment.
func (s Segment) base() Address {
	return Address(int(s) * segmentWidth)
}

// String names a segment for diagnostics.
func (s Segment) String() string {
	switch s {
	case SegConstInt:
		return "const-int"
	case SegConstFloat:
		return "const-float"
	case SegConstString:
		return "const-string"
	case SegVarInt:
		return "var-int"
	case SegVarFloat:
		return "var-float"
	case SegTempBool:
		return "temp-bool"
	default:
		return "unknown-segment"
	}
}

// NewAddress builds an Address from a segment and an offset within it.
// It returns an error if the offset would spill into the next segment
// (the "exhausting a segment is an error" invariant of spec.md §3).
func NewAddress(seg Segment, offset uint) (Address, error) {
	if offset >= segmentWidth {
		return 0, fmt.Errorf("segment %s exhausted: offset %d out of range", seg, offset)
	}
	return seg.base() + Address(offset), nil
}

// Segment reports which segment an Address belongs to. An address >=
// MemoryLimit has no valid segment (it is reported as SegTempBool);
// callers that care should check Valid first.
func (a Address) Segment() Segment {
	switch {
	case a < SegConstFloat.base():
		return SegConstInt
	case a < SegConstString.base():
		return SegConstFloat
	case a < SegVarInt.base():
		return SegConstString
	case a < SegVarFloat.base():
		return SegVarInt
	case a < SegTempBool.base():
		return SegVarFloat
	default:
		return SegTempBool
	}
}

// Valid reports whether an Address lies within [0, 6000).
func (a Address) Valid() bool {
	return a < MemoryLimit
}

// Offset returns the position of an Address within its own segment,
// i.e. the value NewAddress(a.Segment(), offset) would need to
// reconstruct it. Callers outside this package (the vm's memory
// compaction, in particular) use this instead of reaching for the
// segment's private base.
func (a Address) Offset() uint {
	return uint(a) - uint(a.Segment().base())
}

// NumSegments is the number of address-space segments, exported so
// callers can size a per-segment array without hard-coding the count.
const NumSegments = int(numSegments)

// Index returns a Segment's position in [0, NumSegments), for
// callers that want to index a per-segment slice.
func (s Segment) Index() int {
	return int(s)
}

// counter allocates successive offsets within a single segment,
// reporting an error once the segment is exhausted.
type counter struct {
	segment Segment
	next    uint
}

func newCounter(seg Segment) *counter {
	return &counter{segment: seg}
}

// allocate returns the next Address in the segment and advances the
// counter, or an error if the segment has been exhausted.
func (c *counter) allocate() (Address, error) {
	addr, err := NewAddress(c.segment, c.next)
	if err != nil {
		return 0, err
	}
	c.next++
	return addr, nil
}
