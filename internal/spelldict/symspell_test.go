package spelldict

import "testing"

func TestSpellIndex_Lookup_CorrectsSingleTypo(t *testing.T) {
	freq := map[string]int{
		"analista":  5000,
		"gerente":   4000,
		"diretor":   3000,
	}
	idx := BuildSpellIndex(freq)

	got, ok := idx.Lookup("anaista") // missing an "l"
	if !ok {
		t.Fatal("expected a correction to be found")
	}
	if got != "analista" {
		t.Errorf("Lookup(anaista) = %q, want analista", got)
	}
}

func TestSpellIndex_Lookup_PrefersHigherFrequencyOnTie(t *testing.T) {
	freq := map[string]int{
		"gerente": 100,
		"gerenta": 9000,
	}
	idx := BuildSpellIndex(freq)

	got, ok := idx.Lookup("gerent")
	if !ok {
		t.Fatal("expected a correction to be found")
	}
	if got != "gerenta" {
		t.Errorf("Lookup(gerent) = %q, want gerenta (higher frequency breaks the tie)", got)
	}
}

func TestSpellIndex_Lookup_NoCandidateWithinEditDistance(t *testing.T) {
	freq := map[string]int{"analista": 100}
	idx := BuildSpellIndex(freq)

	if _, ok := idx.Lookup("xyzxyzxyz"); ok {
		t.Error("expected no correction for a word far outside the edit-distance budget")
	}
}

func TestDeletions_IncludesSingleAndDoubleDeletions(t *testing.T) {
	got := deletions("ab", 2)
	found := map[string]bool{}
	for _, d := range got {
		found[d] = true
	}
	// "ab" itself is registered separately by BuildSpellIndex, but every
	// single-and-double deletion must appear here: "a", "b", "".
	for _, want := range []string{"a", "b", ""} {
		if !found[want] {
			t.Errorf("expected deletion set to contain %q, got %v", want, got)
		}
	}
}
