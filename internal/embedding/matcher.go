package embedding

import (
	"sort"
	"strings"
)

const topK = 5
const simAdoptMargin = 0.01

// titleEmbedding is one catalog normalized_title's precomputed embedding
// plus its token set, used for the starting-role guard.
type titleEmbedding struct {
	title  string
	vector []float64
	tokens map[string]bool
}

// Matcher is the C5 Word2Vec matcher: built once over the catalog's
// distinct normalized titles and never mutated afterward.
type Matcher struct {
	vecs              WordVectors
	idf               IDF
	titles            []titleEmbedding
	startingRoleWords map[string]bool
	minLen            int
	minSimilarity     float64
}

// Config bundles the tunables spec §6 exposes for this matcher.
type Config struct {
	MinLen            int
	MinSimilarity     float64
	StartingRoleWords map[string]bool
}

// Build constructs the title-embedding index, silently excluding any
// normalized title with a token missing from the word/IDF tables.
func Build(vecs WordVectors, idf IDF, normalizedTitles []string, cfg Config) *Matcher {
	m := &Matcher{
		vecs:              vecs,
		idf:               idf,
		startingRoleWords: cfg.StartingRoleWords,
		minLen:            cfg.MinLen,
		minSimilarity:     cfg.MinSimilarity,
	}
	for _, t := range normalizedTitles {
		tokens := strings.Fields(t)
		vec, ok := embedTokens(tokens, vecs, idf)
		if !ok {
			continue
		}
		m.titles = append(m.titles, titleEmbedding{
			title:  t,
			vector: vec,
			tokens: toTokenSet(tokens),
		})
	}
	return m
}

func toTokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// Match implements spec §4.4's match(norm_title).
func (m *Matcher) Match(normTitle string) (string, bool) {
	inputTokens := strings.Fields(normTitle)
	if _, ok := embedTokens(inputTokens, m.vecs, m.idf); !ok {
		return "", false
	}
	inputHasStartingRole := tokensIntersect(toTokenSet(inputTokens), m.startingRoleWords)

	var bestTitle string
	var bestSim float64 = -1
	var bestLen int
	found := false

	minLen := m.minLen
	if minLen < 1 {
		minLen = 1
	}

	for length := minLen; length <= len(inputTokens); length++ {
		for start := 0; start+length <= len(inputTokens); start++ {
			seq := inputTokens[start : start+length]
			vec, ok := embedTokens(seq, m.vecs, m.idf)
			if !ok {
				continue
			}
			for _, cand := range m.topKMatches(vec) {
				if tokensIntersect(cand.title2Tokens, m.startingRoleWords) && !inputHasStartingRole {
					continue
				}
				if cand.sim <= m.minSimilarity {
					continue
				}
				switch {
				case !found:
					bestTitle, bestSim, bestLen, found = cand.title, cand.sim, length, true
				case cand.sim > bestSim+simAdoptMargin:
					bestTitle, bestSim, bestLen = cand.title, cand.sim, length
				case absFloat(cand.sim-bestSim) <= simAdoptMargin && length > bestLen:
					bestTitle, bestSim, bestLen = cand.title, cand.sim, length
				}
			}
		}
	}
	return bestTitle, found
}

type scoredCandidate struct {
	title        string
	sim          float64
	title2Tokens map[string]bool
}

// topKMatches returns the top-5 catalog title embeddings by cosine
// similarity to vec.
func (m *Matcher) topKMatches(vec []float64) []scoredCandidate {
	scored := make([]scoredCandidate, 0, len(m.titles))
	for _, t := range m.titles {
		scored = append(scored, scoredCandidate{
			title:        t.title,
			sim:          cosineSimilarity(vec, t.vector),
			title2Tokens: t.tokens,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].sim > scored[j].sim })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

func tokensIntersect(a, b map[string]bool) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for t := range small {
		if large[t] {
			return true
		}
	}
	return false
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
