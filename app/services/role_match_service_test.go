package services

import (
	"testing"
	"testing/fstest"

	"github.com/roletitle/matcher/internal/ahocorasick"
	"github.com/roletitle/matcher/internal/gazetteer"
	"github.com/roletitle/matcher/internal/matcher"
	"github.com/roletitle/matcher/internal/normalize"
)

// passthroughNormalizer returns title unchanged plus fixed markers, letting
// these tests drive the cascade with already-normalized fixture titles.
type passthroughNormalizer struct{}

func (passthroughNormalizer) Normalize(title string, _ normalize.Options) (string, []string, []string) {
	return title, []string{"senior"}, nil
}

func testFacade(t *testing.T) *matcher.MemoFacade {
	t.Helper()
	fsys := fstest.MapFS{
		"special_character_terms.csv": &fstest.MapFile{Data: []byte("")},
		"thesaurus.csv":               &fstest.MapFile{Data: []byte("")},
		"gender.csv":                  &fstest.MapFile{Data: []byte("")},
		"conjugation.csv":             &fstest.MapFile{Data: []byte("")},
		"plural.csv":                  &fstest.MapFile{Data: []byte("")},
		"false_plurals.txt":           &fstest.MapFile{Data: []byte("")},
		"stopwords.txt":               &fstest.MapFile{Data: []byte("")},
		"stopwords_allow.txt":         &fstest.MapFile{Data: []byte("")},
		"stopwords_add.txt":           &fstest.MapFile{Data: []byte("")},
		"locations.txt":               &fstest.MapFile{Data: []byte("")},
		"seniority.txt":               &fstest.MapFile{Data: []byte("")},
		"hierarchy.txt":               &fstest.MapFile{Data: []byte("")},
		"single_word_blocklist.txt":   &fstest.MapFile{Data: []byte("")},
		"w2v_starting_role_words.txt": &fstest.MapFile{Data: []byte("")},
		"catalog_main.yaml": &fstest.MapFile{Data: []byte(`roles:
  - role_id: 1
    title: "analista de dados"
    area_ids: [10]
    hierarchy_level_ids: [1]
    profile_ids: [100]
`)},
		"catalog_similar.yaml": &fstest.MapFile{Data: []byte("roles: []\n")},
		"profiles.yaml":        &fstest.MapFile{Data: []byte("profiles: []\n")},
	}
	store, err := gazetteer.NewStore(fsys, nil)
	if err != nil {
		t.Fatalf("gazetteer.NewStore: %v", err)
	}
	store.Finalize(func(title string) (string, []string, []string) { return title, nil, nil })

	automaton := ahocorasick.Build(store.DistinctNormalizedTitles())
	facade := matcher.New(passthroughNormalizer{}, store, automaton, nil, matcher.Config{})
	return matcher.NewMemo(facade, 0)
}

func TestRoleMatchService_SplitsOnSeparators(t *testing.T) {
	svc := NewRoleMatchService(testFacade(t), nil)

	resp := svc.NormalizeAndMatch([]string{"analista de dados / gerente de projetos"}, nil, false)

	results, ok := resp["analista de dados / gerente de projetos"]
	if !ok {
		t.Fatal("expected the original input to key the response")
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one matched split (only 'analista de dados' is catalogued), got %d", len(results))
	}
	if results[0].RoleID != 1 {
		t.Errorf("RoleID = %d, want 1", results[0].RoleID)
	}
}

func TestRoleMatchService_OmitsInputsWithNoMatches(t *testing.T) {
	svc := NewRoleMatchService(testFacade(t), nil)

	resp := svc.NormalizeAndMatch([]string{"cargo inexistente"}, nil, false)

	if _, ok := resp["cargo inexistente"]; ok {
		t.Error("an input with zero matched splits must be omitted from the response")
	}
}

func TestRoleMatchService_UsesInputMarkersNotRoleMarkers(t *testing.T) {
	svc := NewRoleMatchService(testFacade(t), nil)

	resp := svc.NormalizeAndMatch([]string{"analista de dados"}, nil, false)
	results := resp["analista de dados"]
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Seniority) != 1 || results[0].Seniority[0] != "senior" {
		t.Errorf("Seniority = %v, want [senior] (extracted from the input, not the catalog role)", results[0].Seniority)
	}
}

func TestRoleMatchService_IncludeMatchKind(t *testing.T) {
	svc := NewRoleMatchService(testFacade(t), nil)

	without := svc.NormalizeAndMatch([]string{"analista de dados"}, nil, false)
	if without["analista de dados"][0].MatchType != "" {
		t.Error("MatchType must be empty when includeMatchKind is false")
	}

	with := svc.NormalizeAndMatch([]string{"analista de dados"}, nil, true)
	if with["analista de dados"][0].MatchType != "exact" {
		t.Errorf("MatchType = %q, want exact", with["analista de dados"][0].MatchType)
	}
}

func TestRoleMatchService_Stats(t *testing.T) {
	svc := NewRoleMatchService(testFacade(t), nil)

	svc.NormalizeAndMatch([]string{"analista de dados"}, nil, false)
	svc.NormalizeAndMatch([]string{"cargo inexistente"}, nil, false)

	stats := svc.Stats()
	if stats.Requests != 2 {
		t.Errorf("Requests = %d, want 2", stats.Requests)
	}
	if stats.Exact != 1 {
		t.Errorf("Exact = %d, want 1", stats.Exact)
	}
	if stats.NoMatch != 1 {
		t.Errorf("NoMatch = %d, want 1", stats.NoMatch)
	}
}

func TestSplitTitle(t *testing.T) {
	got := splitTitle("analista / gerente, diretor ou coordenador; vp | ceo")
	want := []string{"analista", "gerente", "diretor", "coordenador", "vp", "ceo"}
	if len(got) != len(want) {
		t.Fatalf("splitTitle() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitTitle()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
