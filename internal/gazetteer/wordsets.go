package gazetteer

import (
	"bufio"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// loadWordSet reads one token per line, "#" comments and blanks skipped.
func loadWordSet(fsys fs.FS, path string) (map[string]bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %s: %w", path, err)
	}
	defer f.Close()

	set := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gazetteer: read %s: %w", path, err)
	}
	return set, nil
}

// StopwordSet is stopwords.txt minus stopwords_allow.txt plus
// stopwords_add.txt, as described in spec §3.
type StopwordSet struct {
	words map[string]bool
}

func (s StopwordSet) Contains(word string) bool {
	return s.words[word]
}

// Words returns every stopword, for dictionary-union construction.
func (s StopwordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	return out
}

func newStopwordSet(base, allow, add map[string]bool) StopwordSet {
	words := make(map[string]bool, len(base)+len(add))
	for w := range base {
		if !allow[w] {
			words[w] = true
		}
	}
	for w := range add {
		words[w] = true
	}
	return StopwordSet{words: words}
}

// LocationSet is a sorted token list searched by binary search, with any
// token also present among catalog titles removed so a legitimate role
// name is never eaten as a place name.
type LocationSet struct {
	sorted []string
}

func (l LocationSet) Contains(token string) bool {
	i := sort.SearchStrings(l.sorted, token)
	return i < len(l.sorted) && l.sorted[i] == token
}

// Words returns every location token, for dictionary-union construction.
func (l LocationSet) Words() []string {
	return append([]string{}, l.sorted...)
}

func newLocationSet(raw map[string]bool, catalogTitleWords map[string]bool) LocationSet {
	sorted := make([]string, 0, len(raw))
	for loc := range raw {
		if catalogTitleWords[loc] {
			continue
		}
		sorted = append(sorted, loc)
	}
	sort.Strings(sorted)
	return LocationSet{sorted: sorted}
}
