package spelldict

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/roletitle/matcher/internal/gazetteer"
)

// WordSets is the expensive-to-mine part of building a Dictionary: the
// membership set and the word->frequency map merged from the shipped
// pt-BR/English lists plus everything mined from the catalog and gazetteer
// rule tables. Persisted by C7; BuildSpellIndex on Frequency is cheap
// enough to redo on every load instead of also serializing it.
type WordSets struct {
	Known     map[string]bool
	Frequency map[string]int
}

// Dictionary answers "is this word known?" for the typo-correction step; it
// is the union described in spec §4.2.
type Dictionary struct {
	known map[string]bool
	index *SpellIndex
}

// MineWordSets loads the shipped frequency/word lists from fsys and mines
// the catalog and gazetteer rule tables via gz.
func MineWordSets(fsys fs.FS, gz *gazetteer.Store) (WordSets, error) {
	freq, err := loadFrequencyList(fsys, "pt_word_frequency.txt")
	if err != nil {
		return WordSets{}, fmt.Errorf("spelldict: %w", err)
	}
	english, err := loadWordList(fsys, "english_words.txt")
	if err != nil {
		return WordSets{}, fmt.Errorf("spelldict: %w", err)
	}

	known := make(map[string]bool, len(freq)*2)
	for w := range freq {
		known[w] = true
	}
	for _, w := range english {
		known[w] = true
		bump(freq, w, 1)
	}

	addToken := func(w string) {
		if w == "" {
			return
		}
		known[w] = true
		bump(freq, w, 1)
	}
	addTokens := func(words []string) {
		for _, w := range words {
			addToken(w)
		}
	}

	for conjugated, base := range gz.Conjugation {
		addToken(conjugated)
		addToken(base)
	}
	addTokens(gz.Stopwords.Words())
	for w := range gz.Seniority {
		addToken(w)
	}
	for w := range gz.Hierarchy {
		addToken(w)
	}
	for _, loc := range gz.Locations.Words() {
		addTokens(strings.Fields(loc))
	}
	for _, rule := range gz.Thesaurus {
		addTokens(strings.Fields(rule.Canonical))
		for _, v := range rule.Variants {
			addTokens(strings.Fields(v))
		}
	}
	for _, rule := range gz.SpecialCharacterTerms {
		addToken(rule.Canonical)
	}
	for _, role := range gz.MainRoles {
		addTokens(strings.Fields(strings.ToLower(role.Title)))
	}
	for _, role := range gz.SimilarRoles {
		addTokens(strings.Fields(strings.ToLower(role.Title)))
	}

	return WordSets{Known: known, Frequency: freq}, nil
}

// NewDictionary builds the membership set and the symmetric-delete index
// from already-mined word sets.
func NewDictionary(sets WordSets) *Dictionary {
	return &Dictionary{
		known: sets.Known,
		index: BuildSpellIndex(sets.Frequency),
	}
}

// Build is the non-cached convenience path: mine then construct in one
// call.
func Build(fsys fs.FS, gz *gazetteer.Store) (*Dictionary, error) {
	sets, err := MineWordSets(fsys, gz)
	if err != nil {
		return nil, err
	}
	return NewDictionary(sets), nil
}

// Contains reports whether word is already known, meaning step 6 of
// normalize() must leave it untouched.
func (d *Dictionary) Contains(word string) bool {
	return d.known[word]
}

// Correct returns the top spell suggestion for word, if any.
func (d *Dictionary) Correct(word string) (string, bool) {
	return d.index.Lookup(word)
}

func bump(freq map[string]int, word string, n int) {
	if _, ok := freq[word]; !ok {
		freq[word] = 1000
	}
	freq[word] += n
}
