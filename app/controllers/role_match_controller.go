package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/requests"
	"github.com/roletitle/matcher/app/responses"
	"github.com/roletitle/matcher/app/services"
)

// RoleMatchController exposes the matching facade over HTTP. Per spec §6
// the wire surface is a single normalize_and_match operation plus request
// stats and a health check; there is no parse/batch-job split like the teacher's address
// service, since a match is cheap enough to run synchronously.
type RoleMatchController struct {
	matchService *services.RoleMatchService
	startedAt    time.Time
	logger       *zap.Logger
}

// NewRoleMatchController wires matchService into a controller.
func NewRoleMatchController(matchService *services.RoleMatchService, logger *zap.Logger) *RoleMatchController {
	return &RoleMatchController{
		matchService: matchService,
		startedAt:    time.Now(),
		logger:       logger,
	}
}

// NormalizeAndMatch implements POST /v1/roles/match.
func (rc *RoleMatchController) NormalizeAndMatch(c *gin.Context) {
	var req requests.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	result := rc.matchService.NormalizeAndMatch(req.Titles, req.ProfileFilter, req.IncludeMatchKind)

	c.JSON(http.StatusOK, responses.MatchResponse{
		Results:          result,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// Stats exposes the request/match-kind counters for GET /v1/roles/stats.
func (rc *RoleMatchController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, rc.matchService.Stats())
}

// HealthCheck reports liveness for GET /health and friends.
func (rc *RoleMatchController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(rc.startedAt).String(),
	})
}
