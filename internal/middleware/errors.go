package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/nomadsuite/compliance/internal/handler/gen"
)

// WriteError writes the API's error envelope. Middleware and handlers both
// reject requests through it so every error body has the gen.ErrorResponse
// shape.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(gen.ErrorResponse{
		Error: gen.ErrorDetail{Code: code, Message: message},
	})
}
