package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

// RedisCacheService is the L1 distributed tier for memoized match results,
// shared across instances.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisCacheService dials redisURL and verifies the connection.
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "rolematch:",
		ttl:    24 * time.Hour,
	}, nil
}

func (rcs *RedisCacheService) Get(ctx context.Context, key string) ([]models.RoleMatchResult, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		rcs.misses++
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var results []models.RoleMatchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		rcs.logger.Error("unmarshal cached match", zap.Error(err))
		return nil, false, err
	}

	rcs.hits++
	rcs.logger.Debug("redis cache hit", zap.String("key", key))
	return results, true, nil
}

func (rcs *RedisCacheService) Set(ctx context.Context, key string, results []models.RoleMatchResult) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal match results: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("stored match in redis", zap.String("key", key))
	return nil
}

func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key
	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("redis delete failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	pattern := rcs.prefix + "*"
	keys, err := rcs.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("list redis keys: %w", err)
	}
	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete redis keys: %w", err)
		}
	}
	rcs.logger.Info("cleared redis match cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// InvalidateByGazetteerVersion clears the whole tier: Redis keys don't carry
// the gazetteer version, so a version bump can't be reconciled in place.
func (rcs *RedisCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	return rcs.Clear(ctx)
}

func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	total := rcs.hits + rcs.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(rcs.hits) / float64(total)
	}

	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	totalItems := int64(0)
	if err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  rcs.hits,
		TotalMiss:  rcs.misses,
		TotalItems: totalItems,
	}, nil
}

func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	cacheKey := rcs.prefix + key
	exists, err := rcs.client.Exists(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cacheKey := rcs.prefix + key
	return rcs.client.TTL(ctx, cacheKey).Result()
}

func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

// SetTTL overrides the default entry lifetime.
func (rcs *RedisCacheService) SetTTL(ttl time.Duration) {
	rcs.ttl = ttl
}

// GetClient exposes the underlying client for admin/debug tooling.
func (rcs *RedisCacheService) GetClient() *redis.Client {
	return rcs.client
}
