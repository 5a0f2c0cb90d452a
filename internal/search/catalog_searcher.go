// Package search provides a Meilisearch-backed browsing index over the
// role catalog, for the cmd/seedcatalog admin tool. It sits entirely
// outside the C4/C5 matching cascade: it exists so a human can type-ahead
// "what roles does the catalog already have" with typo tolerance, not to
// serve normalize_and_match.
package search

import (
	"errors"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

// SearchConfig configures the Meilisearch connection backing a
// CatalogSearcher.
type SearchConfig struct {
	Host          string
	APIKey        string
	IndexName     string
	MaxCandidates int
}

// CatalogSearcher indexes CatalogRole entries into Meilisearch for
// typo-tolerant catalog browsing.
type CatalogSearcher struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	maxHits   int
}

// NewCatalogSearcher dials Meilisearch at config.Host and verifies the
// connection with a health check.
func NewCatalogSearcher(config SearchConfig, logger *zap.Logger) (*CatalogSearcher, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("meilisearch health check: %w", err)
	}

	maxHits := config.MaxCandidates
	if maxHits <= 0 {
		maxHits = 20
	}

	return &CatalogSearcher{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
		maxHits:   maxHits,
	}, nil
}

// RoleHit is one Meilisearch result, reduced to the fields an admin
// browsing session cares about.
type RoleHit struct {
	RoleID            int     `json:"role_id"`
	Title             string  `json:"title"`
	NormalizedTitle   string  `json:"normalized_title"`
	AreaIDs           []int   `json:"area_ids"`
	HierarchyLevelIDs []int   `json:"hierarchy_level_ids"`
	ProfileIDs        []int   `json:"profile_ids"`
	Score             float64 `json:"score"`
}

// BuildIndex configures the searchable/filterable/sortable attributes and
// typo tolerance for the catalog index.
func (cs *CatalogSearcher) BuildIndex() error {
	index := cs.client.Index(cs.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "normalized_title"},
		FilterableAttributes: []string{"role_id", "area_ids", "hierarchy_level_ids", "profile_ids"},
		SortableAttributes:   []string{"role_id"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  4,
				TwoTypos: 8,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("configure catalog index: %w", err)
	}

	cs.logger.Info("configured catalog search index", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedRoles pushes every role in roles into the catalog index, in batches
// of 1000.
func (cs *CatalogSearcher) SeedRoles(roles []models.CatalogRole) error {
	if len(roles) == 0 {
		return errors.New("no roles to seed")
	}

	index := cs.client.Index(cs.indexName)

	documents := make([]map[string]interface{}, 0, len(roles))
	for _, role := range roles {
		documents = append(documents, map[string]interface{}{
			"id":                  role.RoleID,
			"role_id":             role.RoleID,
			"title":               role.Title,
			"normalized_title":    role.NormalizedTitle,
			"area_ids":            role.AreaIDs,
			"hierarchy_level_ids": role.HierarchyLevelIDs,
			"profile_ids":         role.ProfileIDs,
		})
	}

	const batchSize = 1000
	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}

		task, err := index.AddDocuments(documents[i:end], "id")
		if err != nil {
			return fmt.Errorf("add documents batch %d-%d: %w", i, end, err)
		}
		cs.logger.Info("seeded catalog batch", zap.Int("from", i), zap.Int("to", end), zap.Int64("task_uid", task.TaskUID))
	}

	cs.logger.Info("seeded catalog index", zap.Int("total_documents", len(documents)))
	return nil
}

// Search runs a typo-tolerant query against title/normalized_title,
// optionally narrowed by filter (a Meilisearch filter expression built
// with FilterRoleID/FilterAreaID/FilterProfileID).
func (cs *CatalogSearcher) Search(query, filter string, limit int) ([]RoleHit, error) {
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 || limit > cs.maxHits {
		limit = cs.maxHits
	}

	index := cs.client.Index(cs.indexName)
	result, err := index.Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("search catalog index: %w", err)
	}

	return parseRoleHits(result), nil
}

// SearchByRoleID looks up a single catalog entry by its exact role id.
func (cs *CatalogSearcher) SearchByRoleID(roleID int) (*RoleHit, error) {
	index := cs.client.Index(cs.indexName)
	result, err := index.Search("", &meilisearch.SearchRequest{
		Filter: FilterRoleID(roleID),
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("search by role id: %w", err)
	}

	hits := parseRoleHits(result)
	if len(hits) == 0 {
		return nil, errors.New("role not found")
	}
	return &hits[0], nil
}

func parseRoleHits(result *meilisearch.SearchResponse) []RoleHit {
	hits := make([]RoleHit, 0, len(result.Hits))
	for _, raw := range result.Hits {
		hitMap, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		hit := RoleHit{}
		if v, ok := hitMap["role_id"].(float64); ok {
			hit.RoleID = int(v)
		}
		if v, ok := hitMap["title"].(string); ok {
			hit.Title = v
		}
		if v, ok := hitMap["normalized_title"].(string); ok {
			hit.NormalizedTitle = v
		}
		if v, ok := hitMap["area_ids"]; ok {
			hit.AreaIDs = toIntSlice(v)
		}
		if v, ok := hitMap["hierarchy_level_ids"]; ok {
			hit.HierarchyLevelIDs = toIntSlice(v)
		}
		if v, ok := hitMap["profile_ids"]; ok {
			hit.ProfileIDs = toIntSlice(v)
		}
		if v, ok := hitMap["_rankingScore"].(float64); ok {
			hit.Score = v
		}

		hits = append(hits, hit)
	}
	return hits
}

func toIntSlice(raw interface{}) []int {
	slice, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]int, 0, len(slice))
	for _, v := range slice {
		if f, ok := v.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}
