// Package middleware provides reusable HTTP middleware for the compliance API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// requestIDHeader is written by chi's RequestID middleware. Exposing it lets
// the web client quote it in support tickets.
const requestIDHeader = "X-Request-Id"

// userIDHeader is set by the auth gateway and bound by the generated handlers.
const userIDHeader = "X-User-ID"

// NewCORSHandler returns a middleware that applies CORS headers for
// allowedOrigins, each a full origin without a trailing slash. Browsers may
// send userIDHeader cross-origin and cache preflights for ten minutes.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", userIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         600,
	})
	return c.Handler
}
