package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/config"
	"github.com/roletitle/matcher/app/responses"
	"github.com/roletitle/matcher/app/services"
	"github.com/roletitle/matcher/internal/engine"
)

func testAdminController(t *testing.T, cache services.MatchCacheService) *AdminController {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.ArtifactDir = t.TempDir()

	eng, err := engine.Build(cfg, nil)
	if err != nil {
		t.Fatalf("engine.Build: %v", err)
	}

	return NewAdminController(eng.Store, cache, zap.NewNop())
}

func TestAdminController_InvalidateCache_NoCacheConfigured(t *testing.T) {
	ac := testAdminController(t, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/admin/cache/invalidate", nil)
	ac.InvalidateCache(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp responses.CacheInvalidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success {
		t.Error("expected Success=true when no cache is configured")
	}
}

func TestAdminController_InvalidateCache_WithRealCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache, err := services.NewRedisCacheService("redis://"+mr.Addr(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewRedisCacheService: %v", err)
	}

	ac := testAdminController(t, cache)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/admin/cache/invalidate", nil)
	ac.InvalidateCache(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	var resp responses.CacheInvalidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.GazetteerVersion == "" {
		t.Errorf("resp = %+v, want Success=true and a non-empty GazetteerVersion", resp)
	}
}

func TestAdminController_CacheStats_NoCacheConfigured(t *testing.T) {
	ac := testAdminController(t, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	ac.CacheStats(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if enabled, _ := body["enabled"].(bool); enabled {
		t.Error("expected enabled=false when no cache is configured")
	}
}

func TestAdminController_GazetteerVersion(t *testing.T) {
	ac := testAdminController(t, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	ac.GazetteerVersion(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["gazetteer_version"] == "" {
		t.Error("expected a non-empty gazetteer_version")
	}
}
