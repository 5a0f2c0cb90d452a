package routes

import "github.com/gin-gonic/gin"

// SetupWebRoutes registers the small set of human-facing routes: landing
// page and a terse endpoint list.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Role Title Matcher Service",
				"docs":    "/v1/roles/match",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"endpoints": map[string]string{
					"match":             "POST /v1/roles/match",
					"stats":             "GET /v1/roles/stats",
					"cache_invalidate":  "POST /v1/admin/cache/invalidate",
					"cache_stats":       "GET /v1/admin/cache/stats",
					"gazetteer_version": "GET /v1/admin/gazetteer/version",
					"health":            "GET /v1/health",
				},
			})
		})
	}
}
