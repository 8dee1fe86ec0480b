package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/mnemo-vocab/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing and
// answers preflight OPTIONS requests itself.
//
// With a "*" origin and no credentials every response carries
// "Access-Control-Allow-Origin: *", so browser tools embedding the API from
// arbitrary pages work without sending Origin-specific config. Otherwise a
// matching Origin is echoed back.
func CORS(cfg config.CORSConfig) Middleware {
	origins := splitTrim(cfg.AllowedOrigins)
	wildcard := contains(origins, "*")
	methods := cfg.AllowedMethods
	headers := cfg.AllowedHeaders
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard && !cfg.AllowCredentials:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && (wildcard || contains(origins, origin)):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func splitTrim(csv string) []string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
