// Package middleware holds the HTTP middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mnemo-vocab/internal/config"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Chain(mw1, mw2)(handler) is mw1(mw2(handler)): mw1 runs first.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// Default is the stack wrapped around the router. CORS sits outside the
// router so preflight requests never reach route matching.
func Default(logger *slog.Logger, cors config.CORSConfig) Middleware {
	return Chain(
		RequestID,
		Logger(logger),
		Recovery(logger),
		CORS(cors),
	)
}
