package gazetteer

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/roletitle/matcher/app/models"
)

// testFixture returns a minimal but complete gazetteer fixture: every file
// NewStore expects to find, kept deliberately tiny.
func testFixture() fstest.MapFS {
	return fstest.MapFS{
		"special_character_terms.csv": &fstest.MapFile{Data: []byte("ti,t.i.,t i\n")},
		"thesaurus.csv":               &fstest.MapFile{Data: []byte("programador,desenvolvedor,dev\n")},
		"gender.csv":                  &fstest.MapFile{Data: []byte("analista,analista,analistas\n")},
		"conjugation.csv":             &fstest.MapFile{Data: []byte("gerenciar,gerenciando,gerenciou\n")},
		"plural.csv":                  &fstest.MapFile{Data: []byte(",s\n")},
		"false_plurals.txt":          &fstest.MapFile{Data: []byte("")},
		"stopwords.txt":               &fstest.MapFile{Data: []byte("de\npara\n")},
		"stopwords_allow.txt":        &fstest.MapFile{Data: []byte("")},
		"stopwords_add.txt":          &fstest.MapFile{Data: []byte("")},
		"locations.txt":               &fstest.MapFile{Data: []byte("sp\nrj\n")},
		"seniority.txt":               &fstest.MapFile{Data: []byte("junior\nsenior\npleno\n")},
		"hierarchy.txt":               &fstest.MapFile{Data: []byte("gerente\ndiretor\n")},
		"single_word_blocklist.txt":  &fstest.MapFile{Data: []byte("ti\n")},
		"w2v_starting_role_words.txt": &fstest.MapFile{Data: []byte("analista\n")},
		"catalog_main.yaml": &fstest.MapFile{Data: []byte(`roles:
  - role_id: 1
    title: "Analista de Dados"
    area_ids: [10]
    hierarchy_level_ids: [1]
    profile_ids: [100]
  - role_id: 2
    title: "Gerente de Projetos"
    area_ids: [20]
    hierarchy_level_ids: [2]
    profile_ids: [100]
`)},
		"catalog_similar.yaml": &fstest.MapFile{Data: []byte(`roles:
  - role_id: 3
    title: "Analista de Dados Senior"
    area_ids: [10]
    hierarchy_level_ids: [1]
    profile_ids: [200]
`)},
		"profiles.yaml": &fstest.MapFile{Data: []byte(`profiles:
  - profile_id: 100
    area_ids: [10, 20]
    hierarchy_level_ids: [1, 2]
    profile_ids: [100]
`)},
	}
}

func identityNormalize(title string) (string, []string, []string) {
	return strings.ToLower(title), nil, nil
}

func TestNewStore_LoadsEveryTable(t *testing.T) {
	store, err := NewStore(testFixture(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if !store.Stopwords.Contains("de") {
		t.Error("expected 'de' to be a stopword")
	}
	if !store.Locations.Contains("sp") {
		t.Error("expected 'sp' to be a location")
	}
	if !store.Seniority["senior"] {
		t.Error("expected 'senior' to be a seniority marker")
	}
	if !store.Hierarchy["gerente"] {
		t.Error("expected 'gerente' to be a hierarchy marker")
	}
	if len(store.MainRoles) != 2 || len(store.SimilarRoles) != 1 {
		t.Fatalf("unexpected catalog sizes: main=%d similar=%d", len(store.MainRoles), len(store.SimilarRoles))
	}
	if store.Version() == "" {
		t.Error("expected a non-empty version hash")
	}
}

func TestStore_Version_ChangesWithContent(t *testing.T) {
	fx1 := testFixture()
	s1, err := NewStore(fx1, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	fx2 := testFixture()
	fx2["seniority.txt"] = &fstest.MapFile{Data: []byte("junior\nsenior\npleno\nespecialista\n")}
	s2, err := NewStore(fx2, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if s1.Version() == s2.Version() {
		t.Error("version hash must change when a fixture file's content changes")
	}
}

func TestStore_Finalize_MainWinsOverSimilar(t *testing.T) {
	store, err := NewStore(testFixture(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Force a collision: both a main and a similar role normalize to the
	// same text, so Finalize's index must keep the main-tier entry.
	store.MainRoles = []models.CatalogRole{{RoleID: 1, Title: "Analista"}}
	store.SimilarRoles = []models.CatalogRole{{RoleID: 2, Title: "Analista"}}

	store.Finalize(identityNormalize)

	role, ok := store.Lookup("analista")
	if !ok {
		t.Fatal("expected lookup to find the normalized title")
	}
	if role.RoleID != 1 {
		t.Errorf("expected main-tier role (id 1) to win the collision, got id %d", role.RoleID)
	}
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	store, err := NewStore(testFixture(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	store.Finalize(identityNormalize)

	snap := store.Snapshot()

	fresh, err := NewStore(testFixture(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	fresh.ApplySnapshot(snap)

	if len(fresh.DistinctNormalizedTitles()) != len(store.DistinctNormalizedTitles()) {
		t.Fatal("ApplySnapshot should restore the same distinct-title count")
	}
	if _, ok := fresh.Lookup(store.DistinctNormalizedTitles()[0]); !ok {
		t.Error("ApplySnapshot should rebuild the lookup index")
	}
}
