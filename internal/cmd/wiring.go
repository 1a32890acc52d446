package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/zoto/internal/config"
	"github.com/kailas-cloud/zoto/internal/db"
	"github.com/kailas-cloud/zoto/internal/db/memory"
	dbRedis "github.com/kailas-cloud/zoto/internal/db/redis"
	"github.com/kailas-cloud/zoto/internal/metrics"
	"github.com/kailas-cloud/zoto/internal/repository/reccache"
	"github.com/kailas-cloud/zoto/internal/transport/geolocation"
	"github.com/kailas-cloud/zoto/internal/transport/recommend"
	"github.com/kailas-cloud/zoto/internal/usecase/location"
)

// pipeline holds the collaborators shared by search and serve.
type pipeline struct {
	locator     *location.Service
	client      *recommend.Client
	recommender reccache.Recommender
	store       db.Store // nil when the cache is disabled
}

func (p *pipeline) Close() {
	if p.store != nil {
		p.store.Close()
	}
}

func buildPipeline(ctx context.Context, cfg config.Config, logger *zap.Logger) (*pipeline, error) {
	provider, err := buildLocationProvider(cfg.Location, logger)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.Recommend.RateLimitPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Recommend.RateLimitPerSec), cfg.Recommend.Burst)
	}
	client := recommend.NewClient(&recommend.Config{
		Endpoint:  cfg.Recommend.Endpoint,
		HealthURL: cfg.Recommend.HealthURL,
		APIKey:    cfg.Recommend.APIKey,
		Timeout:   cfg.Recommend.Timeout(),
		Limiter:   limiter,
		Logger:    logger,
	})

	p := &pipeline{
		locator:     location.New(provider, cfg.Location.Timeout(), logger),
		client:      client,
		recommender: client,
	}

	if !cfg.Cache.Enabled {
		return p, nil
	}

	store, err := buildCacheStore(cfg.Cache)
	if err != nil {
		return nil, err
	}
	readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	logger.Info("Recommendation cache enabled",
		zap.String("driver", cfg.Cache.Driver),
		zap.Duration("ttl", cfg.Cache.TTL()),
	)

	p.store = store
	p.recommender = reccache.New(client, store, cfg.Cache.TTL(), metrics.RecommendationCacheTotal, logger)
	return p, nil
}

func buildLocationProvider(cfg config.LocationConfig, logger *zap.Logger) (location.Provider, error) {
	switch cfg.Provider {
	case config.LocationStatic:
		static, err := geolocation.NewStatic(cfg.Latitude, cfg.Longitude)
		if err != nil {
			return nil, fmt.Errorf("static location: %w", err)
		}
		return static, nil
	case config.LocationNone:
		return geolocation.Unavailable{}, nil
	case config.LocationIPAPI, "":
		return geolocation.NewIPAPI(&geolocation.IPAPIConfig{URL: cfg.URL, Logger: logger}), nil
	default:
		return nil, fmt.Errorf("unknown location provider %q", cfg.Provider)
	}
}

func buildCacheStore(cfg config.CacheConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.CacheMemory, "":
		return memory.NewStore(), nil
	case config.CacheRedis, config.CacheValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
			Prefix:   cfg.KeyPrefix,

			Standalone:    cfg.Standalone,
			LocalCacheTTL: cfg.ClientCacheTTL(),
		})
		if err != nil {
			return nil, fmt.Errorf("create %s cache store: %w", cfg.Driver, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
