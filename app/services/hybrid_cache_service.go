package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

// HybridCacheService combines a Redis L1 tier with a MongoDB L2 tier for
// memoized match results.
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

// NewHybridCacheService wraps redisCache and mongoCache as a single tier.
func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{redisCache: redisCache, mongoCache: mongoCache, logger: logger}
}

func (hcs *HybridCacheService) Get(ctx context.Context, key string) ([]models.RoleMatchResult, bool, error) {
	results, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache error, falling back to mongo", zap.Error(err))
	} else if found {
		hcs.logger.Debug("l1 cache hit (redis)", zap.String("key", key))
		return results, true, nil
	}

	results, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		hcs.logger.Debug("cache miss (redis and mongo)", zap.String("key", key))
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.redisCache.Set(bgCtx, key, results); err != nil {
			hcs.logger.Warn("sync mongo to redis failed", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("l2 cache hit (mongo)", zap.String("key", key))
	return results, true, nil
}

func (hcs *HybridCacheService) Set(ctx context.Context, key string, results []models.RoleMatchResult) error {
	errCh := make(chan error, 2)

	go func() {
		err := hcs.redisCache.Set(ctx, key, results)
		if err != nil {
			hcs.logger.Warn("redis set failed", zap.Error(err))
		}
		errCh <- err
	}()

	go func() {
		err := hcs.mongoCache.Set(ctx, key, results)
		if err != nil {
			hcs.logger.Warn("mongo set failed", zap.Error(err))
		}
		errCh <- err
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Delete(ctx, key) }()
	go func() { errCh <- hcs.mongoCache.Delete(ctx, key) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("delete errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Clear(ctx) }()
	go func() { errCh <- hcs.mongoCache.Clear(ctx) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear errors: %v", errs)
	}
	hcs.logger.Info("cleared hybrid match cache")
	return nil
}

func (hcs *HybridCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.InvalidateByGazetteerVersion(ctx, gazetteerVersion) }()
	go func() { errCh <- hcs.mongoCache.InvalidateByGazetteerVersion(ctx, gazetteerVersion) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalidate errors: %v", errs)
	}
	hcs.logger.Info("invalidated hybrid match cache", zap.String("gazetteer_version", gazetteerVersion))
	return nil
}

func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.GetStats(ctx)

	if redisErr != nil && mongoErr != nil {
		return nil, fmt.Errorf("both redis and mongo failed: %v, %v", redisErr, mongoErr)
	}

	combined := &CacheStats{}
	switch {
	case redisErr == nil && mongoErr == nil:
		totalHits := redisStats.TotalHits + mongoStats.TotalHits
		totalMiss := redisStats.TotalMiss + mongoStats.TotalMiss
		total := totalHits + totalMiss
		if total > 0 {
			combined.HitRate = float64(totalHits) / float64(total)
		}
		combined.TotalHits = totalHits
		combined.TotalMiss = totalMiss
		combined.TotalItems = redisStats.TotalItems + mongoStats.TotalItems
	case redisErr == nil:
		*combined = *redisStats
	default:
		*combined = *mongoStats
	}

	return combined, nil
}

func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.redisCache.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis exists check failed, falling back to mongo", zap.Error(err))
	} else if exists {
		return true, nil
	}
	return hcs.mongoCache.Exists(ctx, key)
}

func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.redisCache.GetTTL(ctx, key)
}

func (hcs *HybridCacheService) Close() error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Close() }()
	go func() { errCh <- hcs.mongoCache.Close() }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// WarmUpFromMongoDB loads the Mongo tier's most-accessed entries into that
// tier's own in-process L1 LRU; the Redis tier is not touched.
func (hcs *HybridCacheService) WarmUpFromMongoDB(ctx context.Context, limit int) error {
	return hcs.mongoCache.WarmUp(ctx, limit)
}
