package zoto

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	endpoint   string
	healthURL  string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration

	locator         Locator
	static          *Coordinates
	ipLookupURL     string
	ipLookup        bool
	locationTimeout time.Duration

	cacheTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEndpoint sets the recommendation service URL. Required.
func WithEndpoint(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = url
	})
}

// WithHealthURL sets the URL probed by Client.Health. Empty skips the probe.
func WithHealthURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.healthURL = url
	})
}

// WithAPIKey sends the key as a bearer token on every recommendation request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithHTTPClient overrides the HTTP client used for recommendation requests.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds each recommendation request. Default: 15s.
// Ignored when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithLocator sets a custom location source.
func WithLocator(l Locator) Option {
	return optionFunc(func(c *clientConfig) {
		c.locator = l
	})
}

// WithStaticLocation makes every search use fixed coordinates.
func WithStaticLocation(lat, lng float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.static = &Coordinates{Lat: lat, Lng: lng}
	})
}

// WithIPLocation resolves the location from the caller's public IP.
// An empty url uses the default lookup service.
func WithIPLocation(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.ipLookup = true
		c.ipLookupURL = url
	})
}

// WithLocationTimeout bounds location acquisition. Default: 5s.
func WithLocationTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.locationTimeout = d
	})
}

// WithCache keeps non-empty recommendation responses in memory for ttl.
// Identical requests within ttl do not reach the service.
func WithCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
