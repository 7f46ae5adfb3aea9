package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIPAPrefixLookup(t *testing.T) {
	lx, err := Load("ipa", "")
	if err != nil {
		t.Fatalf("Load(ipa) error = %v", err)
	}

	type match struct{ id, length int }
	var matches []match
	found := lx.PrefixLookup("すもももももももものうち", func(id, l int) {
		matches = append(matches, match{id, l})
	})
	if !found || len(matches) == 0 {
		t.Fatal("PrefixLookup found no entries for すもも...")
	}

	sawWhole := false
	for _, m := range matches {
		if m.length == len("すもも") {
			sawWhole = true
			fs := lx.KnownFeatures(m.id)
			if len(fs) == 0 {
				t.Errorf("KnownFeatures(%d) is empty", m.id)
			}
		}
		left, right, _ := lx.KnownMorph(m.id)
		// Exercise the connection matrix; context ids must be in range.
		_ = lx.ConnectionCost(right, left)
	}
	if !sawWhole {
		t.Error("no prefix match for the full surface すもも")
	}
}

func TestCharCategories(t *testing.T) {
	lx, err := Load("ipa", "")
	if err != nil {
		t.Fatalf("Load(ipa) error = %v", err)
	}
	if lx.CharCategory('あ') == lx.CharCategory('亜') {
		t.Error("hiragana and kanji share a character category")
	}
	if !lx.Group(lx.CharCategory('ア')) {
		t.Error("katakana category should group runs")
	}
	if !lx.Invoke(lx.CharCategory('1')) {
		t.Error("numeric category should always invoke unknown candidates")
	}
	if _, count, ok := lx.UnknownIndex(lx.CharCategory('😀')); !ok || count < 1 {
		t.Errorf("UnknownIndex(default category) = count %d, ok %v", count, ok)
	}
}

func TestUnknownIndexEnumeratesDuplicates(t *testing.T) {
	lx, err := Load("ipa", "")
	if err != nil {
		t.Fatalf("Load(ipa) error = %v", err)
	}
	if len(lx.sys.UnkDict.IndexDup) == 0 {
		t.Fatal("embedded dictionary has no duplicate unknown entries to test against")
	}
	for class, dup := range lx.sys.UnkDict.IndexDup {
		id, count, ok := lx.UnknownIndex(byte(class))
		if !ok {
			t.Errorf("category %d: UnknownIndex not found despite a duplicate record", class)
			continue
		}
		if want := int(dup) + 1; count != want {
			t.Errorf("category %d: count = %d, want %d (first entry plus %d duplicates)", class, count, want, dup)
		}
		if last := id + count - 1; last >= len(lx.sys.UnkDict.Morphs) {
			t.Errorf("category %d: entry id %d out of range (%d morphs)", class, last, len(lx.sys.UnkDict.Morphs))
		}
	}
}

func TestLoadFailures(t *testing.T) {
	if _, err := Load("no-such-dictionary", ""); err == nil {
		t.Error("Load with a bogus path should fail")
	}
	if _, err := Load("ipa", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Load with a missing user dictionary should fail")
	}
}

func TestUserDictLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdict.txt")
	entry := "朝青龍,朝青龍,アサショウリュウ,カスタム人名\n"
	if err := os.WriteFile(path, []byte(entry), 0644); err != nil {
		t.Fatal(err)
	}
	lx, err := Load("ipa", path)
	if err != nil {
		t.Fatalf("Load with user dict error = %v", err)
	}

	var ids []int
	found := lx.UserPrefixLookup("朝青龍が勝つ", func(id, l int) {
		if l == len("朝青龍") {
			ids = append(ids, id)
		}
	})
	if !found || len(ids) == 0 {
		t.Fatal("UserPrefixLookup missed the user entry")
	}
	fs := lx.UserFeatures(ids[0])
	if len(fs) == 0 || fs[0] != "カスタム人名" {
		t.Errorf("UserFeatures = %v, want カスタム人名 first", fs)
	}
}

func TestNoUserDictLookup(t *testing.T) {
	lx, err := Load("ipa", "")
	if err != nil {
		t.Fatalf("Load(ipa) error = %v", err)
	}
	if lx.UserPrefixLookup("東京", func(int, int) {}) {
		t.Error("UserPrefixLookup reported a match without a user dictionary")
	}
}
