package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/sessions/{id}", "200"))
	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/sessions/"+id, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/sessions/{id}", "200"))
	if got-before != 3 {
		t.Errorf("expected 3 requests under the route pattern, got %v", got-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("in-flight gauge = %v after requests finished, want 0", v)
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/sessions", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Post("/sessions/{id}/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		path   string
		route  string
		status string
	}{
		{"/sessions", "/sessions", "201"},
		{"/sessions/x/search", "/sessions/{id}/search", "202"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", tc.route, tc.status))
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", tc.path, http.NoBody))
			got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", tc.route, tc.status))
			if got-before != 1 {
				t.Errorf("requests_total{route=%q,status=%q} grew by %v, want 1", tc.route, tc.status, got-before)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/catalog", func(w http.ResponseWriter, _ *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope/123", http.NoBody))
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	if got-before != 1 {
		t.Errorf("unmatched requests grew by %v, want 1", got-before)
	}
}

func TestMiddleware_SkipsScrapePath(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metrics", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/metrics", http.NoBody))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/metrics", "200")); got != before {
		t.Error("scrapes must not be recorded")
	}
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unmatched"},
		{"/", "/"},
		{"/sessions/", "/sessions"},
		{"/sessions/{id}/toggle", "/sessions/{id}/toggle"},
	}
	for _, tc := range tests {
		if got := normalizeRoute(tc.input); got != tc.expected {
			t.Errorf("normalizeRoute(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
