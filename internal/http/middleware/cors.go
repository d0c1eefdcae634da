package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/llm-workflow/internal/config"
)

// Headers set by Trace that browser clients may read.
var exposedHeaders = []string{traceIDHeader, requestIDHeader}

// CORS applies the configured cross-origin policy using rs/cors.
// A nil config disables the policy.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
