package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/responses"
	"github.com/roletitle/matcher/app/services"
	"github.com/roletitle/matcher/internal/gazetteer"
)

// AdminController exposes operational endpoints: cache invalidation on
// catalog reload and the cache's own hit/miss stats. Seeding the catalog
// itself is a cmd/seedcatalog concern, not an HTTP one.
type AdminController struct {
	store        *gazetteer.Store
	cacheService services.MatchCacheService
	logger       *zap.Logger
}

// NewAdminController wires store and an optional cacheService (nil when
// the deployment runs with only the in-process memo).
func NewAdminController(store *gazetteer.Store, cacheService services.MatchCacheService, logger *zap.Logger) *AdminController {
	return &AdminController{store: store, cacheService: cacheService, logger: logger}
}

// InvalidateCache drops every distributed-cache entry stamped with a
// gazetteer version other than the currently loaded one.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if ac.cacheService == nil {
		c.JSON(http.StatusOK, responses.CacheInvalidateResponse{Success: true, Message: "no distributed cache configured"})
		return
	}

	startTime := time.Now()
	if err := ac.cacheService.InvalidateByGazetteerVersion(c.Request.Context(), ac.store.Version()); err != nil {
		ac.logger.Error("invalidate cache failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "INVALIDATE_ERROR",
			Message: "invalidate cache: " + err.Error(),
		})
		return
	}

	ac.logger.Info("invalidated match cache", zap.String("gazetteer_version", ac.store.Version()))
	c.JSON(http.StatusOK, responses.CacheInvalidateResponse{
		Success:          true,
		GazetteerVersion: ac.store.Version(),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// CacheStats surfaces the distributed cache's hit/miss counters.
func (ac *AdminController) CacheStats(c *gin.Context) {
	if ac.cacheService == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	stats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Warn("cache stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "STATS_ERROR",
			Message: "cache stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GazetteerVersion reports the version tag of the currently loaded
// catalog, for callers reconciling their own cache state.
func (ac *AdminController) GazetteerVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gazetteer_version": ac.store.Version()})
}
