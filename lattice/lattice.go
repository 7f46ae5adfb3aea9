// Package lattice builds a directed acyclic graph of candidate morphemes
// over an input text and selects the minimum-cost segmentation with a
// Viterbi search. The dictionary is consumed through the narrow read-only
// Dict interface so the search logic is independent of how the dictionary is
// stored.
package lattice

// Dict is the dictionary surface the lattice consumes. *lexicon.Lexicon
// satisfies it; tests substitute small in-memory fixtures.
type Dict interface {
	// PrefixLookup calls f once per system entry whose surface form is a
	// prefix of input, with the entry id and matched byte length, and
	// reports whether any entry matched.
	PrefixLookup(input string, f func(id, length int)) bool
	// UserPrefixLookup is PrefixLookup over the user dictionary; it reports
	// false when none is loaded.
	UserPrefixLookup(input string, f func(id, length int)) bool
	// KnownMorph returns context ids and word cost for a system entry.
	KnownMorph(id int) (left, right, weight int16)
	// UnknownMorph returns context ids and word cost for a synthesized entry.
	UnknownMorph(id int) (left, right, weight int16)
	// ConnectionCost returns the cost of joining a right context id to the
	// following left context id.
	ConnectionCost(right, left int16) int16
	// CharCategory classifies a code point for unknown-word handling.
	CharCategory(r rune) byte
	// Invoke reports whether unknown candidates are generated for the
	// category even when a dictionary entry matched.
	Invoke(category byte) bool
	// Group reports whether a same-category run may form one candidate.
	Group(category byte) bool
	// UnknownIndex returns the first synthesized entry id for a category and
	// the number of entries sharing it.
	UnknownIndex(category byte) (id, count int, ok bool)
}

// Lattice holds every admissible segmentation of one input: an arena of
// nodes plus, for every byte offset, the arena indexes of the nodes whose
// span ends there. Edges are implicit: a node ending at offset e connects to
// every node starting at e. A Lattice belongs to exactly one tokenization
// call and is discarded when the call returns.
type Lattice struct {
	input string
	dict  Dict
	nodes []Node  // arena; index 0 is the start sentinel
	ends  [][]int // ends[e] lists arena indexes of nodes ending at byte e
	eos   int     // arena index of the end sentinel
}

// Build constructs the lattice for input over d. For every byte offset it
// collects user dictionary matches (which preempt everything else at that
// offset), system dictionary matches, and synthesized unknown-word
// candidates whenever the dictionary came up empty or the character category
// demands them. The unknown-word fallback guarantees at least one node
// starts at every offset, so the lattice is always connected end to end.
func Build(input string, d Dict) *Lattice {
	la := &Lattice{
		input: input,
		dict:  d,
		nodes: make([]Node, 0, len(input)+2),
		ends:  make([][]int, len(input)+1),
	}
	bos := la.push(Node{ID: BosEosID, Class: Dummy})
	la.ends[0] = append(la.ends[0], bos)
	la.nodes[bos].Cost = 0

	for pos, ch := range input {
		if la.addUser(pos) {
			continue
		}
		matched := la.addKnown(pos)
		la.addUnknown(pos, ch, matched)
	}

	la.eos = la.push(Node{ID: BosEosID, Class: Dummy, Start: len(input), End: len(input)})
	return la
}

// addUser adds one node per user dictionary match at pos and reports whether
// there was any. User entries carry no context ids or word cost; the forward
// pass treats them as free so an explicit user entry always wins its span.
func (la *Lattice) addUser(pos int) bool {
	return la.dict.UserPrefixLookup(la.input[pos:], func(id, l int) {
		i := la.push(Node{
			ID:      id,
			Class:   User,
			Start:   pos,
			End:     pos + l,
			Surface: la.input[pos : pos+l],
		})
		la.ends[pos+l] = append(la.ends[pos+l], i)
	})
}

// addKnown adds one node per system dictionary entry matching at pos,
// preserving the dictionary's enumeration order for deterministic
// tie-breaking, and reports whether there was any match.
func (la *Lattice) addKnown(pos int) bool {
	return la.dict.PrefixLookup(la.input[pos:], func(id, l int) {
		left, right, weight := la.dict.KnownMorph(id)
		i := la.push(Node{
			ID:      id,
			Class:   Known,
			Start:   pos,
			End:     pos + l,
			Surface: la.input[pos : pos+l],
			Left:    left,
			Right:   right,
			Weight:  weight,
		})
		la.ends[pos+l] = append(la.ends[pos+l], i)
	})
}

// push appends a node to the arena with its search state reset and returns
// its arena index.
func (la *Lattice) push(n Node) int {
	n.Cost = unreachableCost
	n.Prev = -1
	la.nodes = append(la.nodes, n)
	return len(la.nodes) - 1
}
