// Package tokenize is the morphological tokenizer facade: it builds a
// lattice over the input, runs the Viterbi search and materializes the best
// path as an ordered token list with resolved features.
package tokenize

import (
	"strconv"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"jpmorph/lattice"
	"jpmorph/lexicon"
)

// Mode selects the segmentation mode, re-exported from lattice.
type Mode = lattice.Mode

const (
	Normal   = lattice.Normal
	Search   = lattice.Search
	Extended = lattice.Extended
)

// ParseMode maps a mode name to a Mode. "decompose" is accepted as an alias
// for "search".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal", "":
		return Normal, nil
	case "search", "decompose":
		return Search, nil
	case "extended":
		return Extended, nil
	}
	return Normal, errors.Errorf("unsupported mode %q", s)
}

// ErrInvalidInput reports input that is not valid UTF-8. Such input is
// rejected before lattice construction; there is no best-effort recovery.
var ErrInvalidInput = errors.New("tokenize: input is not valid UTF-8")

// UnknownDetail is the placeholder detail attached to morphemes that have no
// dictionary entry.
var UnknownDetail = []string{"UNK"}

// Token is one morpheme of the analyzed input. Text slices the input over
// [Start:End); Detail is the entry's feature list, or UnknownDetail for
// synthesized entries.
type Token struct {
	Text   string   `json:"text"`
	Detail []string `json:"detail"`

	Start int               `json:"-"` // byte offset into the input
	End   int               `json:"-"`
	Class lattice.NodeClass `json:"-"`
}

// POS returns the token's top-level part-of-speech tag, the first feature.
func (t Token) POS() string {
	if len(t.Detail) == 0 {
		return ""
	}
	return t.Detail[0]
}

// Reading returns the token's katakana reading if the dictionary provides
// one (feature index 7 in the IPA layout).
func (t Token) Reading() (string, bool) {
	if len(t.Detail) > 7 {
		return t.Detail[7], true
	}
	return "", false
}

// DefaultCacheSize bounds the result cache of a Tokenizer.
const DefaultCacheSize = 4096

// Tokenizer analyzes text against one immutable Lexicon. It is stateless
// apart from the shared dictionary and the result cache, so a single
// instance serves concurrent calls without locking.
type Tokenizer struct {
	lex       *lexicon.Lexicon
	mode      Mode
	cacheSize int
	cache     *lru.Cache[string, []Token]
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithMode sets the mode used by Tokenize.
func WithMode(m Mode) Option {
	return func(t *Tokenizer) { t.mode = m }
}

// WithCacheSize sets the result cache capacity; zero or negative disables
// caching.
func WithCacheSize(n int) Option {
	return func(t *Tokenizer) { t.cacheSize = n }
}

// New creates a Tokenizer over lex.
func New(lex *lexicon.Lexicon, opts ...Option) *Tokenizer {
	t := &Tokenizer{lex: lex, mode: Normal, cacheSize: DefaultCacheSize}
	for _, o := range opts {
		o(t)
	}
	if t.cacheSize > 0 {
		// lru.New only fails on a non-positive size, which is excluded here.
		t.cache, _ = lru.New[string, []Token](t.cacheSize)
	}
	return t
}

// Tokenize analyzes text in the tokenizer's configured mode.
func (t *Tokenizer) Tokenize(text string) ([]Token, error) {
	return t.Analyze(text, t.mode)
}

// Analyze splits text into morphemes in the given mode. Empty input yields
// an empty token list. The returned spans are contiguous and cover the
// input exactly. Callers must not mutate the result: it may be shared with
// the cache and other callers.
func (t *Tokenizer) Analyze(text string, mode Mode) ([]Token, error) {
	if text == "" {
		return []Token{}, nil
	}
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}

	key := strconv.Itoa(int(mode)) + ":" + text
	if t.cache != nil {
		if tokens, ok := t.cache.Get(key); ok {
			return tokens, nil
		}
	}

	la := lattice.Build(text, t.lex)
	path, err := la.Search(mode)
	if err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(path)-2)
	for _, n := range path {
		if n.Class == lattice.Dummy {
			continue
		}
		if mode == Extended && n.Class == lattice.Unknown && utf8.RuneCountInString(n.Surface) > 1 {
			tokens = append(tokens, splitUnknown(n)...)
			continue
		}
		tokens = append(tokens, Token{
			Text:   n.Surface,
			Detail: t.detail(n),
			Start:  n.Start,
			End:    n.End,
			Class:  n.Class,
		})
	}

	if t.cache != nil {
		t.cache.Add(key, tokens)
	}
	return tokens, nil
}

// detail resolves a node's feature list from its dictionary section.
func (t *Tokenizer) detail(n lattice.Node) []string {
	switch n.Class {
	case lattice.Known:
		return t.lex.KnownFeatures(n.ID)
	case lattice.User:
		return t.lex.UserFeatures(n.ID)
	default:
		return UnknownDetail
	}
}

// splitUnknown breaks an unknown morpheme into single-rune tokens for
// extended mode.
func splitUnknown(n lattice.Node) []Token {
	tokens := make([]Token, 0, utf8.RuneCountInString(n.Surface))
	for i, w := 0, 0; i < len(n.Surface); i += w {
		_, w = utf8.DecodeRuneInString(n.Surface[i:])
		tokens = append(tokens, Token{
			Text:   n.Surface[i : i+w],
			Detail: UnknownDetail,
			Start:  n.Start + i,
			End:    n.Start + i + w,
			Class:  lattice.Unknown,
		})
	}
	return tokens
}
