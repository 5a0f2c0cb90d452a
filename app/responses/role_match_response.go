package responses

import "github.com/roletitle/matcher/app/models"

// MatchResponse is the body of a successful POST /v1/roles/match.
type MatchResponse struct {
	Results          models.MatchResponse `json:"results"`
	ProcessingTimeMs int64                `json:"processing_time_ms"`
}

// ErrorResponse is the uniform error envelope for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthCheckResponse is the body of /health, /ready and /live.
type HealthCheckResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// CacheInvalidateResponse is the body of POST /v1/admin/cache/invalidate.
type CacheInvalidateResponse struct {
	Success           bool   `json:"success"`
	GazetteerVersion  string `json:"gazetteer_version,omitempty"`
	ProcessingTimeMs  int64  `json:"processing_time_ms,omitempty"`
	Message           string `json:"message,omitempty"`
}
