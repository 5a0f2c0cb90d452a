package models

import "sort"

// MatchKind identifies which stage of the cascade produced a match.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchEmbedding MatchKind = "embedding"
)

// CatalogRole is an immutable reference entry from the role catalog.
type CatalogRole struct {
	RoleID            int
	Title             string
	NormalizedTitle   string
	Seniorities       []string
	Hierarchies       []string
	AreaIDs           []int
	HierarchyLevelIDs []int
	ProfileIDs        []int
}

// FilterByProfile returns a copy of r with its taxonomy sets intersected
// against scope. Ids outside scope are dropped from the copy; r itself is
// never mutated.
func (r CatalogRole) FilterByProfile(scope ProfileScope) CatalogRole {
	out := r
	out.AreaIDs = intersectSorted(r.AreaIDs, scope.AreaIDs)
	out.HierarchyLevelIDs = intersectSorted(r.HierarchyLevelIDs, scope.HierarchyLevelIDs)
	out.ProfileIDs = intersectSorted(r.ProfileIDs, scope.ProfileIDs)
	return out
}

// HasAnyProfile reports whether r.ProfileIDs intersects ids.
func (r CatalogRole) HasAnyProfile(ids []int) bool {
	set := toSet(ids)
	for _, p := range r.ProfileIDs {
		if set[p] {
			return true
		}
	}
	return false
}

// ProfileMapping is the precomputed reachable taxonomy scope for one
// caller-facing profile id.
type ProfileMapping struct {
	ProfileID int
	Scope     ProfileScope
}

// ProfileScope is the union of taxonomy ids a set of profile ids may see.
type ProfileScope struct {
	AreaIDs           []int
	HierarchyLevelIDs []int
	ProfileIDs        []int
}

// UnionScope combines the scopes registered for each id in filter. Unknown
// profile ids contribute nothing.
func UnionScope(mappings map[int]ProfileScope, filter []int) ProfileScope {
	var areas, levels, profiles []int
	for _, id := range filter {
		scope, ok := mappings[id]
		if !ok {
			continue
		}
		areas = append(areas, scope.AreaIDs...)
		levels = append(levels, scope.HierarchyLevelIDs...)
		profiles = append(profiles, scope.ProfileIDs...)
	}
	return ProfileScope{
		AreaIDs:           dedupSorted(areas),
		HierarchyLevelIDs: dedupSorted(levels),
		ProfileIDs:        dedupSorted(profiles),
	}
}

func toSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func dedupSorted(ids []int) []int {
	set := toSet(ids)
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func intersectSorted(a, b []int) []int {
	bs := toSet(b)
	var out []int
	for _, v := range a {
		if bs[v] {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// NormalizationResult is the value memoized by the matcher facade.
// Seniorities/Hierarchies are the markers extracted from the *input*
// title during normalization (spec §1), independent of whatever the
// matched role's own Seniorities/Hierarchies happen to be.
type NormalizationResult struct {
	NormalizedText string
	Seniorities    []string
	Hierarchies    []string
	Role           *CatalogRole
	Kind           MatchKind
	Matched        bool
}
