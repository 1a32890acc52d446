package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- Mocks ---

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(keys []string, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	BearerAuthMiddleware(keys)(okHandler()).ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestAuthMiddleware_Disabled(t *testing.T) {
	for _, keys := range [][]string{nil, {}, {"", ""}} {
		if rr := serveAuth(keys, "/sessions", ""); rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want 200", keys, rr.Code)
		}
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing header", "", "missing authorization header"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "authorization header must use Bearer scheme"},
		{"wrong key", "Bearer wrong-key", "invalid api key"},
		{"key prefix only", "Bearer sec", "invalid api key"},
		{"empty token", "Bearer ", "invalid api key"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serveAuth([]string{"secret"}, "/sessions", tc.header)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("got %d, want 401", rr.Code)
			}
			if rr.Header().Get("WWW-Authenticate") == "" {
				t.Error("expected WWW-Authenticate challenge")
			}

			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != CodeUnauthorized {
				t.Errorf("code = %s, want %s", errResp.Code, CodeUnauthorized)
			}
			if errResp.Message != tc.msg {
				t.Errorf("message = %q, want %q", errResp.Message, tc.msg)
			}
		})
	}
}

func TestAuthMiddleware_AcceptsAnyConfiguredKey(t *testing.T) {
	keys := []string{"key-a", "key-b"}
	for _, key := range keys {
		if rr := serveAuth(keys, "/sessions", "Bearer "+key); rr.Code != http.StatusOK {
			t.Errorf("key %q: got %d, want 200", key, rr.Code)
		}
	}
	if rr := serveAuth(keys, "/sessions", "Bearer  key-a "); rr.Code != http.StatusOK {
		t.Errorf("surrounding whitespace: got %d, want 200", rr.Code)
	}
}

func TestAuthMiddleware_PublicPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		if rr := serveAuth([]string{"secret"}, path, ""); rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", path, rr.Code)
		}
	}
}

func TestAuthMiddleware_UtilityRoutesRequireKey(t *testing.T) {
	for _, path := range []string{"/catalog", "/version", "/sessions/abc"} {
		if rr := serveAuth([]string{"secret"}, path, ""); rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: got %d, want 401", path, rr.Code)
		}
	}
}
