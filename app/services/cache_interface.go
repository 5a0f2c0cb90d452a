package services

import (
	"context"
	"time"

	"github.com/roletitle/matcher/app/models"
)

// CacheStats mirrors the hit/miss counters surfaced by each cache tier.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// MatchCacheService is the distributed-cache counterpart to C6's in-process
// memoization: an optional tier for (title, filter) results that several
// instances can share. The matching path does not read from or write to
// it; cmd/server only exposes its invalidation and stats through the admin
// controller.
type MatchCacheService interface {
	// Get returns the cached results for key, the caller-facing
	// (title, filter) digest produced by the matcher's cache-key function.
	Get(ctx context.Context, key string) ([]models.RoleMatchResult, bool, error)

	// Set stores results under key.
	Set(ctx context.Context, key string, results []models.RoleMatchResult) error

	// Delete removes key from the cache.
	Delete(ctx context.Context, key string) error

	// Clear empties the cache entirely.
	Clear(ctx context.Context) error

	// InvalidateByGazetteerVersion drops every entry not stamped with the
	// current gazetteer version, so a catalog reload can't serve stale
	// matches produced against an earlier catalog.
	InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error

	// GetStats returns a point-in-time snapshot of hit/miss counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists reports whether key is present without deserializing it.
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL returns the remaining time-to-live for key, if the tier
	// supports expiry.
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close releases any held connections.
	Close() error
}
