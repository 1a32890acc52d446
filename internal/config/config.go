package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
)

// Location providers.
const (
	LocationStatic = "static"
	LocationIPAPI  = "ipapi"
	LocationNone   = "none"
)

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheValkey = "valkey"
)

// Config holds the zoto configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Recommend RecommendConfig `yaml:"recommend"`
	Location  LocationConfig  `yaml:"location"`
	Cache     CacheConfig     `yaml:"cache"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RecommendConfig holds recommendation service settings.
type RecommendConfig struct {
	Endpoint        string  `yaml:"endpoint"`
	HealthURL       string  `yaml:"health_url"`
	APIKey          string  `yaml:"api_key"`
	TimeoutSec      int     `yaml:"timeout_sec"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"` // 0 = unlimited
	Burst           int     `yaml:"burst"`
}

// Timeout returns the request timeout.
func (r RecommendConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSec) * time.Second
}

// LocationConfig holds geolocation settings.
type LocationConfig struct {
	Provider  string  `yaml:"provider"` // static, ipapi, none (default: ipapi)
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lng"`
	URL       string  `yaml:"url"`
	TimeoutMs int     `yaml:"timeout_ms"`
}

// Timeout returns the acquisition bound.
func (l LocationConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutMs) * time.Millisecond
}

// CacheConfig holds recommendation cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	Standalone       bool     `yaml:"standalone"`
	// ClientCacheSec enables rueidis client-side caching of reads (0 = off).
	ClientCacheSec int `yaml:"client_cache_sec"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// ClientCacheTTL returns the client-side cache lifetime.
func (c CacheConfig) ClientCacheTTL() time.Duration {
	return time.Duration(c.ClientCacheSec) * time.Second
}

// SessionsConfig holds session registry settings.
type SessionsConfig struct {
	TTLSec int `yaml:"ttl_sec"`
}

// TTL returns the idle session lifetime.
func (s SessionsConfig) TTL() time.Duration {
	return time.Duration(s.TTLSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Default returns a configuration with only defaults applied. Recommend.Endpoint is empty.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Recommend.TimeoutSec <= 0 {
		c.Recommend.TimeoutSec = 15
	}
	if c.Recommend.RateLimitPerSec > 0 && c.Recommend.Burst <= 0 {
		c.Recommend.Burst = 1
	}
	if c.Location.Provider == "" {
		c.Location.Provider = LocationIPAPI
	}
	if c.Location.TimeoutMs <= 0 {
		c.Location.TimeoutMs = 5000
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheMemory
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "zoto:"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 600
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Sessions.TTLSec <= 0 {
		c.Sessions.TTLSec = 1800
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Recommend.Endpoint == "" {
		return fmt.Errorf("recommend.endpoint is required")
	}
	if c.Recommend.RateLimitPerSec < 0 {
		return fmt.Errorf("recommend.rate_limit_per_sec must not be negative, got %v", c.Recommend.RateLimitPerSec)
	}
	if c.Cache.ClientCacheSec < 0 {
		return fmt.Errorf("cache.client_cache_sec must not be negative, got %d", c.Cache.ClientCacheSec)
	}
	switch c.Location.Provider {
	case LocationStatic:
		if !geo.ValidateCoordinates(c.Location.Latitude, c.Location.Longitude) {
			return fmt.Errorf(
				"location.lat/lng out of range: %v,%v",
				c.Location.Latitude, c.Location.Longitude,
			)
		}
	case LocationIPAPI, LocationNone:
		// ok
	default:
		return fmt.Errorf(
			"location.provider must be %q, %q or %q, got %q",
			LocationStatic, LocationIPAPI, LocationNone, c.Location.Provider,
		)
	}
	switch c.Cache.Driver {
	case CacheMemory:
		// ok
	case CacheRedis, CacheValkey:
		if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver must be %q, %q or %q, got %q",
			CacheMemory, CacheRedis, CacheValkey, c.Cache.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
