// Package matcher implements C6, the facade that cascades the exact,
// substring and embedding matchers, applies profile-id filtering, and
// memoizes (title, filter) results.
package matcher

import (
	"github.com/roletitle/matcher/app/models"
	"github.com/roletitle/matcher/internal/ahocorasick"
	"github.com/roletitle/matcher/internal/embedding"
	"github.com/roletitle/matcher/internal/gazetteer"
	"github.com/roletitle/matcher/internal/normalize"
)

// Normalizer is the subset of *normalize.MemoNormalizer the facade needs.
type Normalizer interface {
	Normalize(title string, opts normalize.Options) (string, []string, []string)
}

// Config gates the Substring/Embedding cascade steps and C4's tunables
// (spec §6).
type Config struct {
	AhoCorasickEnabled bool
	W2VEnabled         bool
	MaxWords           int
	AhoMinLen          int
	AhoMaxLen          int
	SingleWordBlocklist map[string]bool
}

// Facade is C6. Built once over an immutable Store, Automaton and
// embedding Matcher; safe for concurrent use.
type Facade struct {
	normalizer Normalizer
	store      *gazetteer.Store
	automaton  *ahocorasick.Automaton
	embed      *embedding.Matcher
	profiles   map[int]models.ProfileScope
	cfg        Config
}

// New wires the cascade together.
func New(normalizer Normalizer, store *gazetteer.Store, automaton *ahocorasick.Automaton, embed *embedding.Matcher, cfg Config) *Facade {
	return &Facade{
		normalizer: normalizer,
		store:      store,
		automaton:  automaton,
		embed:      embed,
		profiles:   store.Profiles,
		cfg:        cfg,
	}
}

// NormalizeAndMatch implements spec §4.5.
func (f *Facade) NormalizeAndMatch(title string, profileFilter []int) models.NormalizationResult {
	norm, seniorities, hierarchies := f.normalizer.Normalize(title, normalize.DefaultOptions())

	if role, kind, ok := f.exact(norm); ok {
		return f.applyFilter(norm, seniorities, hierarchies, role, kind, profileFilter)
	}

	if f.cfg.AhoCorasickEnabled {
		if sub, ok := ahocorasick.Match(f.automaton, norm, f.cfg.MaxWords, f.cfg.AhoMinLen, f.cfg.AhoMaxLen, f.cfg.SingleWordBlocklist); ok {
			if role, kind, ok := f.exactText(sub, models.MatchSubstring); ok {
				return f.applyFilter(norm, seniorities, hierarchies, role, kind, profileFilter)
			}
		}
	}

	if f.cfg.W2VEnabled {
		if title2, ok := f.embed.Match(norm); ok {
			if role, kind, ok := f.exactText(title2, models.MatchEmbedding); ok {
				return f.applyFilter(norm, seniorities, hierarchies, role, kind, profileFilter)
			}
		}
	}

	return models.NormalizationResult{NormalizedText: norm, Seniorities: seniorities, Hierarchies: hierarchies}
}

func (f *Facade) exact(norm string) (models.CatalogRole, models.MatchKind, bool) {
	return f.exactText(norm, models.MatchExact)
}

func (f *Facade) exactText(normalizedTitle string, kind models.MatchKind) (models.CatalogRole, models.MatchKind, bool) {
	role, ok := f.store.Lookup(normalizedTitle)
	if !ok {
		return models.CatalogRole{}, "", false
	}
	return *role, kind, true
}

// applyFilter implements the profile-filter discipline shared by every
// cascade step (spec §4.5 steps 2-4).
func (f *Facade) applyFilter(norm string, seniorities, hierarchies []string, role models.CatalogRole, kind models.MatchKind, profileFilter []int) models.NormalizationResult {
	base := models.NormalizationResult{NormalizedText: norm, Seniorities: seniorities, Hierarchies: hierarchies}
	if len(profileFilter) == 0 {
		base.Role, base.Kind, base.Matched = &role, kind, true
		return base
	}
	if !role.HasAnyProfile(profileFilter) {
		return base
	}
	scope := models.UnionScope(f.profiles, profileFilter)
	filtered := role.FilterByProfile(scope)
	base.Role, base.Kind, base.Matched = &filtered, kind, true
	return base
}
