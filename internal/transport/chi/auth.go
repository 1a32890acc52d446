package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// publicPaths stay reachable without a key so probes and scrapers keep working.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware rejects requests whose Bearer token is not one of apiKeys.
// Empty apiKeys disables the check.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if msg := checkBearer(r.Header.Get("Authorization"), keys); msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="zoto"`)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkBearer returns a rejection message, or "" when the header carries a known key.
func checkBearer(header string, keys [][]byte) string {
	switch {
	case header == "":
		return "missing authorization header"
	case !strings.HasPrefix(header, bearerPrefix):
		return "authorization header must use Bearer scheme"
	}

	token := []byte(strings.TrimSpace(header[len(bearerPrefix):]))
	for _, k := range keys {
		if subtle.ConstantTimeCompare(token, k) == 1 {
			return ""
		}
	}
	return "invalid api key"
}
