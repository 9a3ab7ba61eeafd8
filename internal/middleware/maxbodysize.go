package middleware

import "net/http"

// NewMaxBodySizeHandler caps request bodies at limit bytes. A request whose
// Content-Length is already over the limit gets 413 without reaching next;
// otherwise the body is wrapped in http.MaxBytesReader and the handler sees
// *http.MaxBytesError once it reads past the limit.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
