package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/models"
)

// MongoCacheService is the persistent L2 tier for memoized match results,
// backed by MongoDB with an in-process LRU layered on top of it.
type MongoCacheService struct {
	db         *mongo.Database
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, []models.RoleMatchResult]
	logger     *zap.Logger

	gazetteerVersion string

	totalHits int64
	totalMiss int64
	l1Hits    int64
	l1Miss    int64
	mongoHits int64
	mongoMiss int64
}

// NewMongoCacheService wires a MongoCacheService over db, with an l1Size
// entry in-process LRU in front of it.
func NewMongoCacheService(db *mongo.Database, l1Size int, gazetteerVersion string, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, []models.RoleMatchResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create l1 lru: %w", err)
	}

	collection := db.Collection("role_match_cache")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "key_fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{bson.E{Key: "gazetteer_version", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create role_match_cache indexes", zap.Error(err))
	}

	return &MongoCacheService{
		db:               db,
		collection:       collection,
		l1Cache:          l1Cache,
		logger:           logger,
		gazetteerVersion: gazetteerVersion,
	}, nil
}

func (mcs *MongoCacheService) Get(ctx context.Context, key string) ([]models.RoleMatchResult, bool, error) {
	if results, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits++
		mcs.totalHits++
		mcs.logger.Debug("l1 cache hit", zap.String("key", key))
		return results, true, nil
	}
	mcs.l1Miss++

	fingerprint := mcs.fingerprint(key)

	var entry models.RoleMatchCache
	filter := bson.M{"key_fingerprint": fingerprint}

	err := mcs.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			mcs.mongoMiss++
			mcs.totalMiss++
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query mongo match cache: %w", err)
	}

	mcs.mongoHits++
	mcs.totalHits++

	go mcs.touch(ctx, fingerprint)

	mcs.l1Cache.Add(key, entry.Results)

	mcs.logger.Debug("mongo cache hit", zap.String("key", key), zap.String("fingerprint", fingerprint))
	return entry.Results, true, nil
}

func (mcs *MongoCacheService) Set(ctx context.Context, key string, results []models.RoleMatchResult) error {
	mcs.l1Cache.Add(key, results)

	fingerprint := mcs.fingerprint(key)

	entry := models.RoleMatchCache{
		KeyFingerprint:   fingerprint,
		InputTitle:       key,
		GazetteerVersion: mcs.gazetteerVersion,
		Results:          results,
		CreatedAt:        time.Now(),
		LastAccessed:     time.Now(),
		AccessCount:      1,
	}

	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"key_fingerprint": fingerprint}

	if _, err := mcs.collection.ReplaceOne(ctx, filter, entry, opts); err != nil {
		mcs.logger.Error("store mongo match cache", zap.Error(err), zap.String("fingerprint", fingerprint))
		return fmt.Errorf("store mongo match cache: %w", err)
	}

	return nil
}

func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	fingerprint := mcs.fingerprint(key)
	_, err := mcs.collection.DeleteOne(ctx, bson.M{"key_fingerprint": fingerprint})
	if err != nil {
		return fmt.Errorf("delete mongo match cache entry: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear mongo match cache: %w", err)
	}

	mcs.totalHits, mcs.totalMiss = 0, 0
	mcs.l1Hits, mcs.l1Miss = 0, 0
	mcs.mongoHits, mcs.mongoMiss = 0, 0
	return nil
}

// InvalidateByGazetteerVersion drops the L1 tier and every Mongo document
// not stamped with gazetteerVersion.
func (mcs *MongoCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	mcs.l1Cache.Purge()
	mcs.gazetteerVersion = gazetteerVersion

	filter := bson.M{"gazetteer_version": bson.M{"$ne": gazetteerVersion}}
	result, err := mcs.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("invalidate mongo match cache by version: %w", err)
	}

	mcs.logger.Info("invalidated mongo match cache",
		zap.String("gazetteer_version", gazetteerVersion),
		zap.Int64("deleted_count", result.DeletedCount))
	return nil
}

func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count mongo match cache: %w", err)
	}

	total := mcs.totalHits + mcs.totalMiss
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(mcs.totalHits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.totalHits,
		TotalMiss:  mcs.totalMiss,
		TotalItems: mongoCount,
	}, nil
}

func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}

	fingerprint := mcs.fingerprint(key)
	count, err := mcs.collection.CountDocuments(ctx, bson.M{"key_fingerprint": fingerprint})
	if err != nil {
		return false, fmt.Errorf("check mongo match cache exists: %w", err)
	}
	return count > 0, nil
}

// GetTTL always returns 0: the persistent tier has no expiry.
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (mcs *MongoCacheService) Close() error {
	return nil
}

func (mcs *MongoCacheService) fingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}

func (mcs *MongoCacheService) touch(ctx context.Context, fingerprint string) {
	filter := bson.M{"key_fingerprint": fingerprint}
	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, filter, update); err != nil {
		mcs.logger.Warn("update match cache access stats", zap.Error(err))
	}
}

// WarmUp loads the limit most-accessed entries from MongoDB into the L1
// LRU, for a fresh instance joining a warm deployment.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("warm up match cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.RoleMatchCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("decode match cache entry during warm up", zap.Error(err))
			continue
		}
		mcs.l1Cache.Add(entry.InputTitle, entry.Results)
		count++
	}

	mcs.logger.Info("match cache warm up complete", zap.Int("loaded_items", count), zap.Int("l1_size", mcs.l1Cache.Len()))
	return nil
}
