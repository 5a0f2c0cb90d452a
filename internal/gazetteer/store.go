package gazetteer

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

//go:embed data
var embeddedData embed.FS

// DefaultFS returns the gazetteer/catalog fixtures shipped inside the
// binary. Callers that need to swap fixtures without a rebuild can pass a
// different fs.FS to NewStore (e.g. os.DirFS over a mounted config volume).
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		panic(fmt.Sprintf("gazetteer: embedded data missing: %v", err))
	}
	return sub
}

// Store holds every immutable rewrite table and the catalog. It is built
// once at process start and never mutated afterward; reads are safe for
// concurrent use without locking.
type Store struct {
	SpecialCharacterTerms []Rule
	Thesaurus             []Rule
	Gender                []Rule
	Conjugation           map[string]string
	Plural                PluralRules
	Stopwords             StopwordSet
	Locations             LocationSet
	Seniority             map[string]bool
	Hierarchy             map[string]bool
	SingleWordBlocklist   map[string]bool
	StartingRoleWords     map[string]bool

	MainRoles    []models.CatalogRole
	SimilarRoles []models.CatalogRole
	Profiles     map[int]models.ProfileScope

	// byNormalizedTitle is populated by Finalize, once normalization is
	// available; main-tier entries win collisions with similar-tier ones.
	byNormalizedTitle map[string]*models.CatalogRole
	distinctTitles    []string

	version string
}

// NewStore loads every gazetteer file and the catalog from fsys. logger may
// be nil, in which case a no-op logger is used.
func NewStore(fsys fs.FS, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	special, err := loadRuleFile(fsys, "special_character_terms.csv", logger)
	if err != nil {
		return nil, err
	}
	thesaurus, err := loadRuleFile(fsys, "thesaurus.csv", logger)
	if err != nil {
		return nil, err
	}
	gender, err := loadRuleFile(fsys, "gender.csv", logger)
	if err != nil {
		return nil, err
	}
	conjugation, err := loadConjugationMap(fsys, "conjugation.csv")
	if err != nil {
		return nil, err
	}
	plural, err := loadPluralRules(fsys, "plural.csv", "false_plurals.txt")
	if err != nil {
		return nil, err
	}
	stopBase, err := loadWordSet(fsys, "stopwords.txt")
	if err != nil {
		return nil, err
	}
	stopAllow, err := loadWordSet(fsys, "stopwords_allow.txt")
	if err != nil {
		return nil, err
	}
	stopAdd, err := loadWordSet(fsys, "stopwords_add.txt")
	if err != nil {
		return nil, err
	}
	locationsRaw, err := loadWordSet(fsys, "locations.txt")
	if err != nil {
		return nil, err
	}
	seniority, err := loadWordSet(fsys, "seniority.txt")
	if err != nil {
		return nil, err
	}
	hierarchy, err := loadWordSet(fsys, "hierarchy.txt")
	if err != nil {
		return nil, err
	}
	blocklist, err := loadWordSet(fsys, "single_word_blocklist.txt")
	if err != nil {
		return nil, err
	}
	startingRole, err := loadWordSet(fsys, "w2v_starting_role_words.txt")
	if err != nil {
		return nil, err
	}

	mainRoles, err := loadCatalogFile(fsys, "catalog_main.yaml")
	if err != nil {
		return nil, err
	}
	similarRoles, err := loadCatalogFile(fsys, "catalog_similar.yaml")
	if err != nil {
		return nil, err
	}
	profiles, err := loadProfileMappings(fsys, "profiles.yaml")
	if err != nil {
		return nil, err
	}

	catalogWords := make(map[string]bool)
	for _, r := range append(append([]models.CatalogRole{}, mainRoles...), similarRoles...) {
		for _, w := range strings.Fields(stripDiacritics(strings.ToLower(r.Title))) {
			catalogWords[w] = true
		}
	}
	locations := newLocationSet(locationsRaw, catalogWords)
	stopwords := newStopwordSet(stopBase, stopAllow, stopAdd)

	version, err := hashFS(fsys)
	if err != nil {
		return nil, err
	}

	return &Store{
		SpecialCharacterTerms: special,
		Thesaurus:             thesaurus,
		Gender:                gender,
		Conjugation:           conjugation,
		Plural:                plural,
		Stopwords:             stopwords,
		Locations:             locations,
		Seniority:             seniority,
		Hierarchy:             hierarchy,
		SingleWordBlocklist:   blocklist,
		StartingRoleWords:     startingRole,
		MainRoles:             mainRoles,
		SimilarRoles:          similarRoles,
		Profiles:              profiles,
		version:               version,
	}, nil
}

// Version is a stable hash of every loaded source file's bytes, used by C7
// to detect a stale persisted artifact without re-parsing every file.
func (s *Store) Version() string {
	return s.version
}

// NormalizeFunc computes the C3 pipeline output with correct_typos=false,
// as required to materialize catalog_role.normalized_title (spec §3).
type NormalizeFunc func(title string) (text string, seniorities, hierarchies []string)

// Finalize runs normalize over every catalog title and builds the
// normalized_title -> CatalogRole index, main-tier entries winning
// collisions over similar-tier ones (invariant 2). Must be called once,
// after the normalizer built on top of this Store exists.
func (s *Store) Finalize(normalize NormalizeFunc) {
	var distinct []string
	seen := make(map[string]bool)

	materialize := func(roles []models.CatalogRole) {
		for i := range roles {
			text, sen, hier := normalize(roles[i].Title)
			roles[i].NormalizedTitle = text
			roles[i].Seniorities = sen
			roles[i].Hierarchies = hier
			if !seen[text] {
				seen[text] = true
				distinct = append(distinct, text)
			}
		}
	}
	materialize(s.MainRoles)
	materialize(s.SimilarRoles)

	sort.Strings(distinct)
	s.distinctTitles = distinct
	s.rebuildIndex()
}

// CatalogSnapshot is the serializable result of Finalize, persisted by C7
// so a later process start can skip re-running normalize over every
// catalog title.
type CatalogSnapshot struct {
	MainRoles      []models.CatalogRole
	SimilarRoles   []models.CatalogRole
	DistinctTitles []string
}

// Snapshot captures the finalized catalog state for persistence.
func (s *Store) Snapshot() CatalogSnapshot {
	return CatalogSnapshot{
		MainRoles:      s.MainRoles,
		SimilarRoles:   s.SimilarRoles,
		DistinctTitles: s.distinctTitles,
	}
}

// ApplySnapshot restores previously materialized catalog state without
// re-running normalize, then rebuilds the lookup index from it.
func (s *Store) ApplySnapshot(snap CatalogSnapshot) {
	s.MainRoles = snap.MainRoles
	s.SimilarRoles = snap.SimilarRoles
	s.distinctTitles = snap.DistinctTitles
	s.rebuildIndex()
}

func (s *Store) rebuildIndex() {
	index := make(map[string]*models.CatalogRole)
	for i := range s.MainRoles {
		nt := s.MainRoles[i].NormalizedTitle
		if _, exists := index[nt]; !exists {
			index[nt] = &s.MainRoles[i]
		}
	}
	for i := range s.SimilarRoles {
		nt := s.SimilarRoles[i].NormalizedTitle
		if _, exists := index[nt]; !exists {
			index[nt] = &s.SimilarRoles[i]
		}
	}
	s.byNormalizedTitle = index
}

// Lookup returns the catalog role bound to a normalized title, if any.
func (s *Store) Lookup(normalizedTitle string) (*models.CatalogRole, bool) {
	r, ok := s.byNormalizedTitle[normalizedTitle]
	return r, ok
}

// DistinctNormalizedTitles returns every distinct normalized_title in the
// catalog, used to build C4's automaton and C5's title-embedding index.
func (s *Store) DistinctNormalizedTitles() []string {
	return s.distinctTitles
}

func hashFS(fsys fs.FS) (string, error) {
	h := sha256.New()
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		h.Write([]byte(path))
		h.Write(b)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("gazetteer: hash fixtures: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
