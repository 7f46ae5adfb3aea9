package lattice

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Mode selects how the forward pass weighs long morphemes.
type Mode int

const (
	// Normal keeps the dictionary costs as they are.
	Normal Mode = iota
	// Search penalizes long morphemes so compounds decompose, which suits
	// search-engine indexing.
	Search
	// Extended behaves like Search during the forward pass; the facade
	// additionally splits unknown morphemes into single runes.
	Extended
)

// Search-mode penalties: a kanji run longer than 2 runes and any other
// surface longer than 7 runes pay an extra per-rune cost.
const (
	searchKanjiLen     = 2
	searchKanjiPenalty = 3000
	searchOtherLen     = 7
	searchOtherPenalty = 1700
)

// ErrNoPath reports that no segmentation connects the start sentinel to the
// end sentinel. The unknown-word fallback makes every offset reachable, so
// this is a defect in lattice construction rather than a runtime condition.
var ErrNoPath = errors.New("lattice: no path between start and end sentinels")

const unreachableCost = math.MaxInt

// Search runs the Viterbi forward pass in the given mode and backtracks the
// minimum-cost path. The returned nodes run left to right and include both
// sentinels. The result is deterministic: cost ties keep the predecessor
// enumerated first.
func (la *Lattice) Search(mode Mode) ([]Node, error) {
	la.forward(mode)
	return la.backward()
}

// forward computes, in non-decreasing end-offset order (a topological order,
// since every edge moves strictly forward), each node's minimum cumulative
// cost and best predecessor.
func (la *Lattice) forward(mode Mode) {
	for e := 1; e <= len(la.input); e++ {
		for _, vi := range la.ends[e] {
			la.relax(vi, mode)
		}
	}
	la.relax(la.eos, mode)
}

// relax scans the predecessors of the node at arena index vi (every node
// ending where it starts) and records the cheapest way in.
func (la *Lattice) relax(vi int, mode Mode) {
	v := &la.nodes[vi]
	best := unreachableCost
	for _, ui := range la.ends[v.Start] {
		u := &la.nodes[ui]
		if u.Cost == unreachableCost {
			continue
		}
		conn := 0
		if u.Class != User && v.Class != User {
			conn = int(la.dict.ConnectionCost(u.Right, v.Left))
		}
		if total := u.Cost + conn; total < best {
			best = total
			v.Prev = ui
		}
	}
	if v.Prev < 0 {
		return
	}
	v.Cost = best + int(v.Weight) + penalty(mode, v)
}

// penalty returns the search-mode surcharge for long morphemes.
func penalty(mode Mode, n *Node) int {
	if mode == Normal || n.Class == Dummy {
		return 0
	}
	l := utf8.RuneCountInString(n.Surface)
	switch {
	case l > searchKanjiLen && kanjiOnly(n.Surface):
		return (l - searchKanjiLen) * searchKanjiPenalty
	case l > searchOtherLen:
		return (l - searchOtherLen) * searchOtherPenalty
	}
	return 0
}

func kanjiOnly(s string) bool {
	for _, r := range s {
		if !unicode.In(r, unicode.Ideographic) {
			return false
		}
	}
	return s != ""
}

// backward recovers the best path by following predecessor links from the
// end sentinel, then reverses it into input order.
func (la *Lattice) backward() ([]Node, error) {
	path := make([]Node, 0, len(la.input)/2+2)
	for i := la.eos; ; {
		n := la.nodes[i]
		path = append(path, n)
		if i == 0 {
			break // start sentinel
		}
		if n.Prev < 0 {
			return nil, errors.Wrapf(ErrNoPath, "stuck at %q [%d:%d]", n.Surface, n.Start, n.End)
		}
		i = n.Prev
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, nil
}
