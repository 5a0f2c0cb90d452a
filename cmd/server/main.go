// Command server runs the HTTP wrapper around the matching engine: a
// thin gin process exposing normalize_and_match (spec §6). The cascade
// itself never needs the network; this binary exists for callers that
// do.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/config"
	"github.com/roletitle/matcher/app/controllers"
	"github.com/roletitle/matcher/app/logging"
	"github.com/roletitle/matcher/app/services"
	"github.com/roletitle/matcher/internal/engine"
	"github.com/roletitle/matcher/routes"
)

func main() {
	cfg, err := config.Load("config/rolematch.yaml")
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting role match service")

	eng, err := engine.Build(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build matching engine", zap.Error(err))
	}

	matchService := services.NewRoleMatchService(eng.Facade, logger)

	cacheService, closeCache := buildCacheService(cfg, eng.Store.Version(), logger)
	if closeCache != nil {
		defer closeCache()
	}

	roleMatchController := controllers.NewRoleMatchController(matchService, logger)
	adminController := controllers.NewAdminController(eng.Store, cacheService, logger)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, roleMatchController, adminController)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server exited")
}

// buildCacheService wires the optional distributed match-result cache
// per cfg.Redis/cfg.Mongo. Returns (nil, nil) when neither tier is
// enabled, in which case the in-process memo is the only cache.
func buildCacheService(cfg config.Config, gazetteerVersion string, logger *zap.Logger) (services.MatchCacheService, func()) {
	var redisCache *services.RedisCacheService
	var mongoCache *services.MongoCacheService
	var mongoClient *mongo.Client

	if cfg.Redis.Enabled {
		redisURL := "redis://" + cfg.Redis.Addr + "/" + strconv.Itoa(cfg.Redis.DB)
		rc, err := services.NewRedisCacheService(redisURL, logger)
		if err != nil {
			logger.Warn("redis cache disabled: connection failed", zap.Error(err))
		} else {
			rc.SetTTL(cfg.Redis.TTL)
			redisCache = rc
		}
	}

	if cfg.Mongo.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			logger.Warn("mongo cache disabled: connection failed", zap.Error(err))
		} else {
			mongoClient = client
			mc, err := services.NewMongoCacheService(client.Database(cfg.Mongo.Database), cfg.Memo.MatchCapacity, gazetteerVersion, logger)
			if err != nil {
				logger.Warn("mongo cache disabled: setup failed", zap.Error(err))
			} else {
				mongoCache = mc
			}
		}
	}

	closeFn := func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}

	switch {
	case redisCache != nil && mongoCache != nil:
		return services.NewHybridCacheService(redisCache, mongoCache, logger), closeFn
	case redisCache != nil:
		return redisCache, closeFn
	case mongoCache != nil:
		return mongoCache, closeFn
	default:
		return nil, nil
	}
}
