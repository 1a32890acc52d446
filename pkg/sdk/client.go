package zoto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/zoto/internal/db"
	"github.com/kailas-cloud/zoto/internal/db/memory"
	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/repository/reccache"
	"github.com/kailas-cloud/zoto/internal/transport/geolocation"
	"github.com/kailas-cloud/zoto/internal/transport/recommend"
	healthuc "github.com/kailas-cloud/zoto/internal/usecase/health"
	"github.com/kailas-cloud/zoto/internal/usecase/location"
	sessionuc "github.com/kailas-cloud/zoto/internal/usecase/session"
)

// Client is the zoto SDK entry point. It is safe for concurrent use.
type Client struct {
	sessions  *sessionuc.Registry
	store     db.Store // in-memory response cache, nil unless WithCache
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. WithEndpoint is required.
// Without a location option every search fails with ErrLocationUnavailable.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("zoto: recommendation endpoint required (use WithEndpoint)")
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	rec := recommend.NewClient(&recommend.Config{
		Endpoint:   cfg.endpoint,
		HealthURL:  cfg.healthURL,
		APIKey:     cfg.apiKey,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
	})

	var recommender reccache.Recommender = rec
	var store db.Store
	if cfg.cacheTTL > 0 {
		store = memory.NewStore()
		recommender = reccache.New(rec, store, cfg.cacheTTL, nil, nil)
	}

	locator := location.New(provider, cfg.locationTimeout, nil)
	sessions := sessionuc.NewRegistry(locator, recommender, sessionuc.Config{
		LocationTimeout: cfg.locationTimeout,
	})

	return &Client{
		sessions:  sessions,
		store:     store,
		healthSvc: healthuc.New(store, rec),
		obs:       obs,
	}, nil
}

func buildProvider(cfg *clientConfig) (location.Provider, error) {
	switch {
	case cfg.locator != nil:
		return locatorAdapter{inner: cfg.locator}, nil
	case cfg.static != nil:
		p, err := geolocation.NewStatic(cfg.static.Lat, cfg.static.Lng)
		if err != nil {
			return nil, fmt.Errorf("zoto: static location: %w", err)
		}
		return p, nil
	case cfg.ipLookup:
		return geolocation.NewIPAPI(&geolocation.IPAPIConfig{URL: cfg.ipLookupURL}), nil
	default:
		return geolocation.Unavailable{}, nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// NewSession starts a session with an empty selection and the default budget.
func (c *Client) NewSession() *Session {
	start := time.Now()
	s := c.sessions.Create()
	c.obs.observe("new_session", start, nil, "session_id", s.ID)
	return &Session{inner: s, registry: c.sessions, obs: c.obs}
}

// Sessions returns the number of open sessions.
func (c *Client) Sessions() int {
	return c.sessions.Len()
}

// locatorAdapter wraps a public Locator to satisfy location.Provider.
type locatorAdapter struct {
	inner Locator
}

func (a locatorAdapter) Locate(ctx context.Context) (geo.Coordinates, error) {
	c, err := a.inner.Locate(ctx)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("locate: %w", err)
	}
	return geo.Coordinates{Latitude: c.Lat, Longitude: c.Lng}, nil
}

func (a locatorAdapter) Name() string { return "custom" }
