package matcher

import (
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roletitle/matcher/app/models"
)

const defaultMemoCapacity = 8192

// MemoFacade wraps a Facade with an LRU cache keyed by (title,
// order-independent digest of the filter), per spec §4.5's memoization
// requirement.
type MemoFacade struct {
	inner *Facade
	cache *lru.Cache[string, models.NormalizationResult]
}

// NewMemo wraps inner with an LRU of the given capacity (<=0 uses the
// spec-recommended default of 8192).
func NewMemo(inner *Facade, capacity int) *MemoFacade {
	if capacity <= 0 {
		capacity = defaultMemoCapacity
	}
	cache, err := lru.New[string, models.NormalizationResult](capacity)
	if err != nil {
		panic(err)
	}
	return &MemoFacade{inner: inner, cache: cache}
}

// NormalizeAndMatch is Facade.NormalizeAndMatch, memoized.
func (m *MemoFacade) NormalizeAndMatch(title string, profileFilter []int) models.NormalizationResult {
	key := cacheKey(title, profileFilter)
	if r, ok := m.cache.Get(key); ok {
		return r
	}
	result := m.inner.NormalizeAndMatch(title, profileFilter)
	m.cache.Add(key, result)
	return result
}

// cacheKey hashes (title, filter) with the filter canonicalized
// (deduplicated, sorted) so that filter order never affects cache hits.
func cacheKey(title string, filter []int) string {
	sorted := append([]int{}, filter...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.Itoa(v))
	}
	return title + "\x00" + strings.Join(parts, ",")
}
