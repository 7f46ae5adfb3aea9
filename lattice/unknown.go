package lattice

import "unicode/utf8"

// maxUnknownRunLen caps, in runes, how far a grouped unknown-word candidate
// may extend. Without the cap a long run of a single character category
// (e.g. a wall of katakana) would produce unbounded candidate spans.
const maxUnknownRunLen = 1024

// addUnknown synthesizes unknown-word nodes starting at pos. ch is the code
// point at pos and matched reports whether the system dictionary matched
// there. Candidates are generated when nothing matched, or unconditionally
// for categories the dictionary flags as invoked (e.g. numerals). For
// grouping categories the span extends over the whole same-category run;
// the run shy of its final rune is added as a second candidate so the
// search can still cut the run one rune short.
func (la *Lattice) addUnknown(pos int, ch rune, matched bool) {
	class := la.dict.CharCategory(ch)
	if matched && !la.dict.Invoke(class) {
		return
	}

	end := pos + utf8.RuneLen(ch)
	shorter := 0 // byte end of the run minus its final rune; 0 for a single rune
	if la.dict.Group(class) {
		runLen := 1
		for end < len(la.input) && runLen < maxUnknownRunLen {
			c, w := utf8.DecodeRuneInString(la.input[end:])
			if la.dict.CharCategory(c) != class {
				break
			}
			shorter = end
			end += w
			runLen++
		}
	}

	id, count, ok := la.dict.UnknownIndex(class)
	if !ok {
		if matched {
			return
		}
		// No synthesized entry for this category. Fall back to a bare
		// single-rune node with neutral contexts so the lattice stays
		// connected.
		first := pos + utf8.RuneLen(ch)
		i := la.push(Node{
			ID:      BosEosID,
			Class:   Unknown,
			Start:   pos,
			End:     first,
			Surface: la.input[pos:first],
		})
		la.ends[first] = append(la.ends[first], i)
		return
	}

	la.addUnknownSpan(pos, end, id, count)
	if shorter > pos {
		la.addUnknownSpan(pos, shorter, id, count)
	}
}

// addUnknownSpan adds one node per synthesized entry of the category over
// [pos:end).
func (la *Lattice) addUnknownSpan(pos, end, id, count int) {
	for x := 0; x < count; x++ {
		left, right, weight := la.dict.UnknownMorph(id + x)
		n := la.push(Node{
			ID:      id + x,
			Class:   Unknown,
			Start:   pos,
			End:     end,
			Surface: la.input[pos:end],
			Left:    left,
			Right:   right,
			Weight:  weight,
		})
		la.ends[end] = append(la.ends[end], n)
	}
}
