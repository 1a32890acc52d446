package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		Recommend: RecommendConfig{Endpoint: "http://localhost:3000/api/recommendations"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.Endpoint = ""

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "recommend.endpoint") {
		t.Fatalf("expected endpoint error, got %v", err)
	}
}

func TestValidate_LocationProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		lat, lng float64
		wantErr  bool
	}{
		{"static ok", LocationStatic, 12.9, 77.6, false},
		{"static out of range", LocationStatic, 95, 0, true},
		{"ipapi", LocationIPAPI, 0, 0, false},
		{"none", LocationNone, 0, 0, false},
		{"unknown", "gps", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Location.Provider = tc.provider
			cfg.Location.Latitude = tc.lat
			cfg.Location.Longitude = tc.lng

			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_CacheDriver(t *testing.T) {
	tests := []struct {
		name    string
		cache   CacheConfig
		wantErr bool
	}{
		{"memory", CacheConfig{Enabled: true, Driver: CacheMemory}, false},
		{"redis with addrs", CacheConfig{Enabled: true, Driver: CacheRedis, Addrs: []string{"localhost:6379"}}, false},
		{"valkey without addrs", CacheConfig{Enabled: true, Driver: CacheValkey}, true},
		{"redis disabled without addrs", CacheConfig{Driver: CacheRedis}, false},
		{"unknown", CacheConfig{Driver: "memcached"}, true},
		{"negative client cache", CacheConfig{Driver: CacheRedis, ClientCacheSec: -1}, true},
		{"client cache", CacheConfig{Enabled: true, Driver: CacheValkey, Addrs: []string{"valkey:6379"}, Standalone: true, ClientCacheSec: 30}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Cache = tc.cache

			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Recommend.TimeoutSec != 15 {
		t.Errorf("expected TimeoutSec=15, got %d", cfg.Recommend.TimeoutSec)
	}
	if cfg.Location.Provider != LocationIPAPI {
		t.Errorf("expected Provider=ipapi, got %q", cfg.Location.Provider)
	}
	if cfg.Location.TimeoutMs != 5000 {
		t.Errorf("expected TimeoutMs=5000, got %d", cfg.Location.TimeoutMs)
	}
	if cfg.Cache.Enabled {
		t.Error("cache must be disabled by default")
	}
	if cfg.Cache.Driver != CacheMemory {
		t.Errorf("expected Driver=memory, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.KeyPrefix != "zoto:" {
		t.Errorf("expected KeyPrefix='zoto:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Sessions.TTLSec != 1800 {
		t.Errorf("expected Sessions.TTLSec=1800, got %d", cfg.Sessions.TTLSec)
	}
	if cfg.Recommend.Burst != 0 {
		t.Errorf("expected Burst=0 without a rate limit, got %d", cfg.Recommend.Burst)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 9090, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Recommend: RecommendConfig{TimeoutSec: 3, RateLimitPerSec: 2, Burst: 4},
		Location:  LocationConfig{Provider: LocationStatic, TimeoutMs: 1500},
		Cache:     CacheConfig{Driver: CacheRedis, KeyPrefix: "custom:", TTLSec: 60},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Recommend.Burst != 4 {
		t.Errorf("expected Burst=4, got %d", cfg.Recommend.Burst)
	}
	if cfg.Location.Timeout().Milliseconds() != 1500 {
		t.Errorf("expected location timeout 1500ms, got %v", cfg.Location.Timeout())
	}
	if cfg.Cache.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Cache.KeyPrefix)
	}
}

func TestApplyDefaults_BurstWithRateLimit(t *testing.T) {
	cfg := Config{Recommend: RecommendConfig{RateLimitPerSec: 5}}
	cfg.ApplyDefaults()
	if cfg.Recommend.Burst != 1 {
		t.Errorf("expected Burst=1, got %d", cfg.Recommend.Burst)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ZOTO_TEST_ENDPOINT", "http://svc:3000")

	got := string(expandEnvVars([]byte("a: ${ZOTO_TEST_ENDPOINT}\nb: ${ZOTO_TEST_UNSET:-fallback}\nc: ${ZOTO_TEST_UNSET}")))
	want := "a: http://svc:3000\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("ZOTO_TEST_KEY", "secret")

	path := filepath.Join(t.TempDir(), "test.yaml")
	yaml := `
http:
  port: 9000
recommend:
  endpoint: http://localhost:3000/api/recommendations
  api_key: ${ZOTO_TEST_KEY}
location:
  provider: static
  lat: 12.9
  lng: 77.6
cache:
  enabled: true
  driver: memory
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.Recommend.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.Recommend.APIKey)
	}
	if cfg.Location.Latitude != 12.9 || cfg.Location.Longitude != 77.6 {
		t.Errorf("unexpected location: %+v", cfg.Location)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTLSec != 600 {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for missing endpoint")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
