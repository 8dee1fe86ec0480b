package middleware

import (
	"net/http"

	"github.com/heartmarshall/mnemo-vocab/pkg/ctxutil"
)

// RequestIDHeader carries the correlation ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestID reuses a well-formed inbound X-Request-Id or generates one, stores
// it in the context and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ctxutil.SanitizeRequestID(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = ctxutil.NewRequestID()
		}
		ctx := ctxutil.WithRequestID(r.Context(), id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
