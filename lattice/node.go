package lattice

// NodeClass identifies where a node's entry came from.
type NodeClass int

const (
	// Dummy marks the two sentinel nodes bounding the lattice.
	Dummy NodeClass = iota
	// Known marks a system dictionary entry.
	Known
	// Unknown marks a synthesized entry for a span with no dictionary match.
	Unknown
	// User marks a user dictionary entry.
	User
)

// String implements fmt.Stringer.
func (c NodeClass) String() string {
	switch c {
	case Dummy:
		return "DUMMY"
	case Known:
		return "KNOWN"
	case Unknown:
		return "UNKNOWN"
	case User:
		return "USER"
	}
	return "UNDEF"
}

// BosEosID is the entry id carried by the sentinel nodes.
const BosEosID = -1

// Node is one candidate morpheme over a span of the input. Nodes live in the
// arena of a single Lattice and are never shared across calls. Cost and Prev
// are filled in by the forward pass.
type Node struct {
	ID      int // entry id within the dictionary section named by Class
	Class   NodeClass
	Start   int // byte offset of the span start
	End     int // byte offset one past the span end
	Surface string
	Left    int16 // left context id
	Right   int16 // right context id
	Weight  int16 // word cost

	Cost int // minimum cumulative cost from the start sentinel
	Prev int // arena index of the best predecessor, -1 if unreached
}
