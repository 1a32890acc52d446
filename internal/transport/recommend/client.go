// Package recommend talks to the downstream restaurant recommendation service.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/zoto/internal/domain"
	"github.com/kailas-cloud/zoto/internal/domain/search/request"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
	"github.com/kailas-cloud/zoto/internal/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client performs one POST per Fetch against the recommendation endpoint.
type Client struct {
	endpoint  string
	healthURL string
	apiKey    string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// Config holds the recommendation service settings.
type Config struct {
	Endpoint   string
	HealthURL  string // optional; empty disables HealthCheck
	APIKey     string // optional bearer token
	Timeout    time.Duration
	HTTPClient *http.Client  // overrides Timeout when set
	Limiter    *rate.Limiter // optional outbound limiter
	Logger     *zap.Logger
}

// NewClient creates a recommendation service client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:  cfg.Endpoint,
		healthURL: cfg.HealthURL,
		apiKey:    cfg.APIKey,
		http:      hc,
		limiter:   cfg.Limiter,
		logger:    logger,
	}
}

// Fetch sends the request and returns restaurants in the order received.
// Failures are always *domain.SearchError: ErrNetwork, ErrService or ErrNoMatches.
func (c *Client) Fetch(ctx context.Context, req request.Request) ([]result.Restaurant, error) {
	start := time.Now()
	restaurants, err := c.fetch(ctx, req)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = domain.KindName(err)
	}
	metrics.RecommendationRequestsTotal.WithLabelValues(status).Inc()
	metrics.RecommendationRequestDuration.WithLabelValues(status).Observe(duration.Seconds())

	if err != nil {
		c.logger.Warn("Recommendation request failed",
			zap.String("status", status),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("Recommendation request completed",
		zap.Int("restaurants", len(restaurants)),
		zap.Duration("duration", duration),
	)
	return restaurants, nil
}

func (c *Client) fetch(ctx context.Context, req request.Request) ([]result.Restaurant, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domain.NewNetworkError(fmt.Errorf("rate limiter: %w", err))
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("post %s: %w", c.endpoint, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewServiceError(serviceMessage(resp.StatusCode, body))
	}

	return parseRestaurants(body)
}

// parseRestaurants decodes a 2xx body. A missing or empty list is NoMatches.
func parseRestaurants(body []byte) ([]result.Restaurant, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewNoMatchesError()
	}

	var parsed result.Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Restaurants) == 0 {
		return nil, domain.NewNoMatchesError()
	}
	return parsed.Restaurants, nil
}

// serviceMessage extracts the "error" field of an error body, falling back to a generic message.
func serviceMessage(status int, body []byte) string {
	var parsed result.ErrorResponse
	if json.Unmarshal(body, &parsed) == nil {
		if msg := strings.TrimSpace(parsed.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("recommendation service failed with status %d", status)
}

// HealthCheck verifies the service responds on its health URL.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.healthURL == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", c.healthURL, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New("recommendation service unhealthy: " + resp.Status)
	}
	return nil
}
