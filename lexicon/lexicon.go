// Package lexicon wraps a compiled morphological dictionary and exposes the
// read-only lookups the analyzer needs: prefix matching over surface forms,
// connection costs between context classes, character categories for
// unknown-word handling, and feature lists for result tokens.
//
// A Lexicon is immutable after Load and safe for unsynchronized concurrent
// use; one instance is shared by every tokenization call in the process.
package lexicon

import (
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/pkg/errors"
)

// Lexicon is an immutable dictionary store: the system dictionary plus an
// optional user dictionary.
type Lexicon struct {
	sys  *dict.Dict
	user *dict.UserDict
}

// Load opens the named system dictionary and, when userPath is non-empty, a
// user dictionary in kagome CSV format. The names "ipa"/"ipadic" and
// "uni"/"unidic" select the embedded dictionaries; any other value is treated
// as a path to a compiled dictionary file. A load failure is fatal for the
// caller: no partially loaded Lexicon is ever returned.
func Load(name, userPath string) (*Lexicon, error) {
	var d *dict.Dict
	switch name {
	case "ipa", "ipadic":
		d = ipa.Dict()
	case "uni", "unidic":
		d = uni.Dict()
	default:
		var err error
		d, err = dict.LoadDictFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "load dictionary %q", name)
		}
	}
	lx := &Lexicon{sys: d}
	if userPath != "" {
		u, err := dict.NewUserDict(userPath)
		if err != nil {
			return nil, errors.Wrapf(err, "load user dictionary %q", userPath)
		}
		lx.user = u
	}
	return lx, nil
}

// PrefixLookup calls f once for every system dictionary entry whose surface
// form is a prefix of input, passing the entry id and the matched byte
// length. Every match length is reported, not just the longest, so the path
// search can arbitrate between overlapping candidates. It reports whether
// any entry matched.
func (lx *Lexicon) PrefixLookup(input string, f func(id, length int)) bool {
	found := false
	lx.sys.Index.CommonPrefixSearchCallback(input, func(id, l int) {
		found = true
		f(id, l)
	})
	return found
}

// UserPrefixLookup is PrefixLookup over the user dictionary. It reports
// false when no user dictionary is loaded.
func (lx *Lexicon) UserPrefixLookup(input string, f func(id, length int)) bool {
	if lx.user == nil {
		return false
	}
	found := false
	lx.user.Index.CommonPrefixSearchCallback(input, func(id, l int) {
		found = true
		f(id, l)
	})
	return found
}

// KnownMorph returns the context ids and word cost of a system entry.
func (lx *Lexicon) KnownMorph(id int) (left, right, weight int16) {
	m := lx.sys.Morphs[id]
	return m.LeftID, m.RightID, m.Weight
}

// UnknownMorph returns the context ids and word cost of a synthesized
// unknown-word entry.
func (lx *Lexicon) UnknownMorph(id int) (left, right, weight int16) {
	m := lx.sys.UnkDict.Morphs[id]
	return m.LeftID, m.RightID, m.Weight
}

// ConnectionCost returns the additive cost of joining a morpheme with the
// given right context id to a following morpheme with the given left context
// id. The lookup is a direct matrix access.
func (lx *Lexicon) ConnectionCost(right, left int16) int16 {
	return lx.sys.Connection.At(int(right), int(left))
}

// CharCategory classifies a code point for unknown-word handling.
func (lx *Lexicon) CharCategory(r rune) byte {
	return lx.sys.CharacterCategory(r)
}

// Invoke reports whether unknown-word candidates must be generated for the
// category even when a dictionary entry already matched at the offset.
func (lx *Lexicon) Invoke(category byte) bool {
	return int(category) < len(lx.sys.InvokeList) && lx.sys.InvokeList[category]
}

// Group reports whether a run of same-category code points may form a single
// unknown-word candidate.
func (lx *Lexicon) Group(category byte) bool {
	return int(category) < len(lx.sys.GroupList) && lx.sys.GroupList[category]
}

// UnknownIndex returns the first synthesized entry id for a category and the
// number of entries sharing it. The duplicate table records how many entries
// follow the first, so a category with a record yields that many plus one.
// ok is false when the dictionary defines no unknown entry for the category.
func (lx *Lexicon) UnknownIndex(category byte) (id, count int, ok bool) {
	i, ok := lx.sys.UnkDict.Index[int32(category)]
	if !ok {
		return 0, 0, false
	}
	n := 1
	if d, ok := lx.sys.UnkDict.IndexDup[int32(category)]; ok {
		n = int(d) + 1
	}
	return int(i), n, true
}

// KnownFeatures returns the feature list of a system entry: the
// part-of-speech hierarchy followed by the remaining dictionary fields
// (inflection, base form, readings). The slice is freshly built per call.
func (lx *Lexicon) KnownFeatures(id int) []string {
	pos := lx.sys.POSTable.POSs[id]
	var contents []string
	if lx.sys.Contents != nil {
		contents = lx.sys.Contents[id]
	}
	fs := make([]string, 0, len(pos)+len(contents))
	for _, p := range pos {
		fs = append(fs, lx.sys.POSTable.NameList[p])
	}
	return append(fs, contents...)
}

// UserFeatures returns the feature list of a user dictionary entry.
func (lx *Lexicon) UserFeatures(id int) []string {
	c := lx.user.Contents[id]
	return []string{c.Pos, strings.Join(c.Tokens, "/"), strings.Join(c.Yomi, "/")}
}
