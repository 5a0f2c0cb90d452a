package normalize

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoCapacity = 8192

type memoEntry struct {
	text        string
	seniorities []string
	hierarchies []string
}

// MemoNormalizer wraps a Normalizer with an LRU cache keyed by (title, all
// options), per spec §4.1's memoization requirement. Safe for concurrent
// use; golang-lru/v2's Cache is internally locked.
type MemoNormalizer struct {
	inner *Normalizer
	cache *lru.Cache[string, memoEntry]
}

// NewMemo wraps inner with an LRU of the given capacity (<=0 uses the
// spec-recommended default of 8192).
func NewMemo(inner *Normalizer, capacity int) *MemoNormalizer {
	if capacity <= 0 {
		capacity = defaultMemoCapacity
	}
	cache, err := lru.New[string, memoEntry](capacity)
	if err != nil {
		panic(err) // capacity > 0 is guaranteed above; New only errors on size <= 0
	}
	return &MemoNormalizer{inner: inner, cache: cache}
}

// Normalize is Normalizer.Normalize, memoized.
func (m *MemoNormalizer) Normalize(title string, opts Options) (string, []string, []string) {
	key := opts.cacheKey(title)
	if e, ok := m.cache.Get(key); ok {
		return e.text, e.seniorities, e.hierarchies
	}
	text, sen, hier := m.inner.Normalize(title, opts)
	m.cache.Add(key, memoEntry{text: text, seniorities: sen, hierarchies: hier})
	return text, sen, hier
}
