package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

func newTestRedisCacheService(t *testing.T) *RedisCacheService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &RedisCacheService{client: client, logger: zap.NewNop(), prefix: "rolematch:"}
}

func TestRedisCacheService_SetThenGet(t *testing.T) {
	rcs := newTestRedisCacheService(t)
	ctx := context.Background()

	want := []models.RoleMatchResult{{NormalizedRole: "analista de dados", RoleID: 1}}
	if err := rcs.Set(ctx, "analista de dados\x00", want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := rcs.Get(ctx, "analista de dados\x00")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 1 || got[0].RoleID != 1 {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestRedisCacheService_GetMiss(t *testing.T) {
	rcs := newTestRedisCacheService(t)
	_, found, err := rcs.Get(context.Background(), "never set")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected a cache miss for a key never set")
	}
}

func TestRedisCacheService_Delete(t *testing.T) {
	rcs := newTestRedisCacheService(t)
	ctx := context.Background()

	_ = rcs.Set(ctx, "k", []models.RoleMatchResult{{RoleID: 1}})
	if err := rcs.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if exists, _ := rcs.Exists(ctx, "k"); exists {
		t.Error("expected key to be gone after Delete")
	}
}

func TestRedisCacheService_Clear(t *testing.T) {
	rcs := newTestRedisCacheService(t)
	ctx := context.Background()

	_ = rcs.Set(ctx, "a", []models.RoleMatchResult{{RoleID: 1}})
	_ = rcs.Set(ctx, "b", []models.RoleMatchResult{{RoleID: 2}})

	if err := rcs.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	stats, err := rcs.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0 after Clear", stats.TotalItems)
	}
}

func TestRedisCacheService_InvalidateByGazetteerVersion_ClearsEverything(t *testing.T) {
	// Redis keys carry no gazetteer version, so invalidating by version must
	// fall back to clearing the whole tier.
	rcs := newTestRedisCacheService(t)
	ctx := context.Background()
	_ = rcs.Set(ctx, "a", []models.RoleMatchResult{{RoleID: 1}})

	if err := rcs.InvalidateByGazetteerVersion(ctx, "v2"); err != nil {
		t.Fatalf("InvalidateByGazetteerVersion: %v", err)
	}
	if exists, _ := rcs.Exists(ctx, "a"); exists {
		t.Error("expected every key to be cleared")
	}
}

func TestRedisCacheService_HitMissStats(t *testing.T) {
	rcs := newTestRedisCacheService(t)
	ctx := context.Background()
	_ = rcs.Set(ctx, "k", []models.RoleMatchResult{{RoleID: 1}})

	rcs.Get(ctx, "k")           // hit
	rcs.Get(ctx, "missing key") // miss

	stats, err := rcs.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalHits != 1 || stats.TotalMiss != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
}
