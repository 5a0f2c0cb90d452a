// Package services holds thin orchestration layers over the matching
// engine for the out-of-core HTTP/batch callers.
package services

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
	"github.com/roletitle/matcher/helpers/utils"
	"github.com/roletitle/matcher/internal/matcher"
)

// splitters are the separators the HTTP wrapper splits a raw input title
// on before calling the core per split (spec §6). The " ou " splitter also
// cuts titles like "Tour Operator"; see SPEC_FULL/DESIGN notes.
var splitters = []string{"/", ",", " ou ", ";", "|"}

// Stats mirrors the teacher's cache/admin stats shape, generalized from
// address-parse counters to match-kind counters.
type Stats struct {
	Requests  uint64
	Exact     uint64
	Substring uint64
	Embedding uint64
	NoMatch   uint64
}

// RoleMatchService wraps the C6 facade with request-id correlated logging
// and hit/miss counters, the one thing an HTTP/batch caller is expected to
// talk to directly.
type RoleMatchService struct {
	facade *matcher.MemoFacade
	logger *zap.Logger

	requests  atomic.Uint64
	exact     atomic.Uint64
	substring atomic.Uint64
	embedding atomic.Uint64
	noMatch   atomic.Uint64
}

// NewRoleMatchService wraps facade. logger may be nil.
func NewRoleMatchService(facade *matcher.MemoFacade, logger *zap.Logger) *RoleMatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleMatchService{facade: facade, logger: logger}
}

// NormalizeAndMatch implements spec §6's public entry point: split each
// input on the configured separators, match each split independently, and
// group results back under the original input. Inputs with zero matches
// are omitted from the response.
func (s *RoleMatchService) NormalizeAndMatch(titles []string, profileFilter []int, includeMatchKind bool) models.MatchResponse {
	requestID := utils.GenerateShortID()
	response := make(models.MatchResponse)

	for _, original := range titles {
		var results []models.RoleMatchResult
		for _, part := range splitTitle(original) {
			result := s.matchOne(part, profileFilter)
			s.logger.Debug("role match",
				zap.String("request_id", requestID),
				zap.String("input", part),
				zap.Bool("matched", result.Matched))
			if !result.Matched {
				continue
			}
			results = append(results, toRoleMatchResult(result, includeMatchKind))
		}
		if len(results) > 0 {
			response[original] = results
		}
	}
	return response
}

func (s *RoleMatchService) matchOne(title string, profileFilter []int) models.NormalizationResult {
	s.requests.Add(1)
	result := s.facade.NormalizeAndMatch(title, profileFilter)
	switch {
	case !result.Matched:
		s.noMatch.Add(1)
	case result.Kind == models.MatchExact:
		s.exact.Add(1)
	case result.Kind == models.MatchSubstring:
		s.substring.Add(1)
	case result.Kind == models.MatchEmbedding:
		s.embedding.Add(1)
	}
	return result
}

// Stats returns a point-in-time snapshot of the request/match-kind
// counters.
func (s *RoleMatchService) Stats() Stats {
	return Stats{
		Requests:  s.requests.Load(),
		Exact:     s.exact.Load(),
		Substring: s.substring.Load(),
		Embedding: s.embedding.Load(),
		NoMatch:   s.noMatch.Load(),
	}
}

func splitTitle(title string) []string {
	parts := []string{title}
	for _, sep := range splitters {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toRoleMatchResult(r models.NormalizationResult, includeMatchKind bool) models.RoleMatchResult {
	role := r.Role
	out := models.RoleMatchResult{
		NormalizedRole: role.Title,
		RoleID:         role.RoleID,
		Seniority:      r.Seniorities,
		Hierarchy:      r.Hierarchies,
		AreaIDs:        role.AreaIDs,
		HierarchyLvIDs: role.HierarchyLevelIDs,
	}
	if len(role.ProfileIDs) > 0 {
		out.ProfileIDs = role.ProfileIDs
	}
	if includeMatchKind {
		out.MatchType = string(r.Kind)
	}
	return out
}
