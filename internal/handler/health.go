package handler

import (
	"context"
	"net/http"

	"github.com/nomadsuite/compliance/internal/handler/gen"
	"github.com/nomadsuite/compliance/spec"
)

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(_ context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}

// GetOpenAPI serves the embedded document. It sits outside the generated
// router since the document does not describe itself.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
