package spelldict

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

const maxEditDistance = 2

// SpellIndex is a symmetric-delete correction index: every known word is
// pre-expanded into its deletion variants (up to maxEditDistance characters
// removed), so a lookup only has to generate deletions of the *query* and
// intersect, never walk the whole dictionary.
type SpellIndex struct {
	frequency map[string]int
	deletes   map[string][]string
}

// BuildSpellIndex constructs the index from a word->frequency map. Words
// that collide on a deletion are bucketed together.
func BuildSpellIndex(frequency map[string]int) *SpellIndex {
	idx := &SpellIndex{
		frequency: frequency,
		deletes:   make(map[string][]string),
	}
	for word := range frequency {
		for _, del := range deletions(word, maxEditDistance) {
			idx.deletes[del] = appendUnique(idx.deletes[del], word)
		}
		idx.deletes[word] = appendUnique(idx.deletes[word], word)
	}
	return idx
}

// Lookup returns the best correction for word: smallest real edit distance
// (<= maxEditDistance) first, then highest frequency, then highest
// Jaro-Winkler similarity as a final tie-break.
func (idx *SpellIndex) Lookup(word string) (string, bool) {
	candidateSet := make(map[string]bool)
	for _, del := range deletions(word, maxEditDistance) {
		for _, c := range idx.deletes[del] {
			candidateSet[c] = true
		}
	}
	for _, c := range idx.deletes[word] {
		candidateSet[c] = true
	}

	var best string
	bestDist := maxEditDistance + 1
	bestFreq := -1
	bestJW := -1.0
	found := false

	for c := range candidateSet {
		dist := levenshtein.ComputeDistance(word, c)
		if dist > maxEditDistance {
			continue
		}
		freq := idx.frequency[c]
		jw := smetrics.JaroWinkler(word, c, 0.7, 4)

		better := !found
		if !better {
			switch {
			case dist != bestDist:
				better = dist < bestDist
			case freq != bestFreq:
				better = freq > bestFreq
			default:
				better = jw > bestJW
			}
		}
		if better {
			best, bestDist, bestFreq, bestJW = c, dist, freq, jw
			found = true
		}
	}
	return best, found
}

func appendUnique(list []string, word string) []string {
	for _, w := range list {
		if w == word {
			return list
		}
	}
	return append(list, word)
}

// deletions enumerates every string reachable from word by deleting 1 to
// maxDist characters. word itself is not included; BuildSpellIndex and
// Lookup add it separately.
func deletions(word string, maxDist int) []string {
	current := map[string]bool{word: true}
	result := map[string]bool{}
	for d := 0; d < maxDist; d++ {
		next := map[string]bool{}
		for s := range current {
			sr := []rune(s)
			if len(sr) == 0 {
				continue
			}
			for i := range sr {
				variant := string(append(append([]rune{}, sr[:i]...), sr[i+1:]...))
				if !result[variant] {
					next[variant] = true
				}
			}
		}
		for v := range next {
			result[v] = true
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	out := make([]string, 0, len(result))
	for v := range result {
		out = append(out, v)
	}
	return out
}
