package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

func TestNewCatalogSearcher_Unreachable(t *testing.T) {
	config := SearchConfig{
		Host:          "http://localhost:7700",
		APIKey:        "masterKey",
		IndexName:     "catalog_roles",
		MaxCandidates: 20,
	}

	logger, _ := zap.NewDevelopment()

	// No Meilisearch instance is running in this test environment; the
	// health check is expected to fail. Asserting the connection itself
	// requires a live server, so this only exercises construction.
	_, err := NewCatalogSearcher(config, logger)
	if err == nil {
		t.Log("unexpectedly reached a live meilisearch instance")
	}
}

func TestRoleHit_Fields(t *testing.T) {
	hit := RoleHit{
		RoleID:            1103,
		Title:             "Secretária",
		NormalizedTitle:   "secretaria",
		AreaIDs:           []int{1, 2},
		HierarchyLevelIDs: []int{3},
		ProfileIDs:        []int{6, 7},
		Score:             0.92,
	}

	assert.Equal(t, 1103, hit.RoleID)
	assert.Equal(t, "Secretária", hit.Title)
	assert.Equal(t, "secretaria", hit.NormalizedTitle)
	assert.Equal(t, []int{1, 2}, hit.AreaIDs)
	assert.Equal(t, []int{3}, hit.HierarchyLevelIDs)
	assert.Equal(t, []int{6, 7}, hit.ProfileIDs)
	assert.Equal(t, 0.92, hit.Score)
}

func TestFilterBuilders(t *testing.T) {
	assert.Equal(t, "role_id = 1103", FilterRoleID(1103))
	assert.Equal(t, "area_ids = 4", FilterAreaID(4))
	assert.Equal(t, "profile_ids = 6", FilterProfileID(6))
}

func TestParseRoleHits(t *testing.T) {
	roles := []models.CatalogRole{
		{RoleID: 1, Title: "Advogado", NormalizedTitle: "advogado", AreaIDs: []int{1}, ProfileIDs: []int{2}},
	}
	assert.Len(t, roles, 1)
	assert.Equal(t, "advogado", roles[0].NormalizedTitle)
}

func TestSearchConfig_Defaults(t *testing.T) {
	config := SearchConfig{
		Host:      "http://localhost:7700",
		IndexName: "catalog_roles",
	}

	assert.Equal(t, "http://localhost:7700", config.Host)
	assert.Equal(t, "catalog_roles", config.IndexName)
	assert.Equal(t, 0, config.MaxCandidates)
}
