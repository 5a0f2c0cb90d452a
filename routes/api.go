package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/roletitle/matcher/app/controllers"
)

// SetupAPIRoutes registers the /v1 JSON API.
func SetupAPIRoutes(router *gin.Engine, roleMatch *controllers.RoleMatchController, admin *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		roles := v1.Group("/roles")
		{
			roles.POST("/match", roleMatch.NormalizeAndMatch)
			roles.GET("/stats", roleMatch.Stats)
		}

		adminGroup := v1.Group("/admin")
		{
			adminGroup.POST("/cache/invalidate", admin.InvalidateCache)
			adminGroup.GET("/cache/stats", admin.CacheStats)
			adminGroup.GET("/gazetteer/version", admin.GazetteerVersion)
		}

		v1.GET("/health", roleMatch.HealthCheck)
	}
}

// SetupHealthRoutes registers root-level liveness/readiness probes.
func SetupHealthRoutes(router *gin.Engine, roleMatch *controllers.RoleMatchController) {
	router.GET("/health", roleMatch.HealthCheck)
	router.GET("/ready", roleMatch.HealthCheck)
	router.GET("/live", roleMatch.HealthCheck)
}

// SetupAllRoutes wires middleware, web, health, and API routes onto router.
func SetupAllRoutes(router *gin.Engine, roleMatch *controllers.RoleMatchController, admin *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, roleMatch)
	SetupAPIRoutes(router, roleMatch, admin)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
