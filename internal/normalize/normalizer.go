package normalize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/internal/gazetteer"
	"github.com/roletitle/matcher/internal/spelldict"
)

// Normalizer is the C3 title normalizer: a pure function of (title,
// options) built once over an immutable gazetteer Store and spell
// Dictionary, safe to call concurrently.
type Normalizer struct {
	gz     *gazetteer.Store
	dict   *spelldict.Dictionary
	logger *zap.Logger
}

// New builds a Normalizer over already-loaded gazetteer and dictionary
// state. logger may be nil.
func New(gz *gazetteer.Store, dict *spelldict.Dictionary, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{gz: gz, dict: dict, logger: logger}
}

// Normalize runs the 16-step pipeline from spec §4.1. Invalid input (empty
// string) short-circuits to ("", nil, nil) at step 0 per the failure mode
// in §4.1/§7.
func (n *Normalizer) Normalize(title string, opts Options) (text string, seniorities, hierarchies []string) {
	if strings.TrimSpace(title) == "" {
		return "", nil, nil
	}

	// 1. lower-case
	s := strings.ToLower(title)

	// 2. line breaks -> single space
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	// 3. special-character-term rewrite, before symbol stripping
	if opts.NormalizeSpecialCharacterTerms {
		s = applyRules(n.gz.SpecialCharacterTerms, s)
	}

	// 4. separator chars -> space, collapse
	s = replaceSeparators(s)

	// 5. strip special symbols
	s = stripSpecialSymbols(s)
	s = collapseSpaces(s)

	tokens := strings.Fields(s)

	// 6. spell correction
	if opts.CorrectTypos {
		for i, tok := range tokens {
			if n.dict.Contains(tok) {
				continue
			}
			if suggestion, ok := n.dict.Correct(tok); ok {
				tokens[i] = suggestion
			}
		}
	}

	// 7. stopword removal
	tokens = filterTokens(tokens, func(tok string) bool {
		return !n.gz.Stopwords.Contains(tok)
	})

	// 8. accent folding
	for i, tok := range tokens {
		tokens[i] = foldAccents(tok)
	}

	// 9. extract seniorities/hierarchies (occurrence order, duplicates kept)
	for _, tok := range tokens {
		if n.gz.Seniority[tok] {
			seniorities = append(seniorities, tok)
		}
		if n.gz.Hierarchy[tok] {
			hierarchies = append(hierarchies, tok)
		}
	}

	// 10. location removal
	if opts.RemoveLocations {
		tokens = filterTokens(tokens, func(tok string) bool {
			return !n.gz.Locations.Contains(tok)
		})
	}

	// 11. conjugation
	if opts.NormalizeConjugation {
		for i, tok := range tokens {
			if base, ok := n.gz.Conjugation[tok]; ok {
				tokens[i] = base
			}
		}
	}

	// 12. plural
	if opts.NormalizePlural {
		for i, tok := range tokens {
			tokens[i] = n.gz.Plural.Apply(tok)
		}
	}

	s = strings.Join(tokens, " ")

	// 13. gender, whole-string
	if opts.NormalizeGender {
		s = applyRules(n.gz.Gender, s)
	}

	// 14. thesaurus, whole-string
	if opts.NormalizeThesaurus {
		s = applyRules(n.gz.Thesaurus, s)
	}

	// 15. stemming
	if opts.Stemming {
		tokens = strings.Fields(s)
		for i, tok := range tokens {
			tokens[i] = stem(tok)
		}
		s = strings.Join(tokens, " ")
	}

	// 16. final whitespace normalization
	return collapseSpaces(s), seniorities, hierarchies
}

func applyRules(rules []gazetteer.Rule, s string) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

func filterTokens(tokens []string, keep func(string) bool) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
