// Package handler implements gen.StrictServerInterface for the compliance API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, compliance.go) but share the same Server struct.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/handler/gen"
)

// TripServicer defines the trip operations the handlers depend on.
// It is declared here, in the consumer package, so handler tests can inject a
// mock without touching the database or the service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Validate(ctx context.Context, candidate domain.Trip, excludeID *uuid.UUID) (domain.Validation, error)
}

// ComplianceServicer defines the report operations the handlers depend on.
type ComplianceServicer interface {
	TaxResidency(ctx context.Context, userID uuid.UUID, year *int) ([]domain.CountryResidency, error)
	Schengen(ctx context.Context, userID uuid.UUID) (domain.SchengenStatus, error)
	Summary(ctx context.Context, userID uuid.UUID) (domain.TravelSummary, error)
}

// Server holds the dependencies of every endpoint.
type Server struct {
	trips      TripServicer
	compliance ComplianceServicer
}

// compile-time check: Server must satisfy gen.StrictServerInterface.
var _ gen.StrictServerInterface = (*Server)(nil)

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, compliance ComplianceServicer) *Server {
	return &Server{trips: trips, compliance: compliance}
}

// Routes returns a router serving every generated operation plus the raw
// OpenAPI document. Parameter, body and unexpected service errors are all
// rendered as gen.ErrorResponse.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/openapi.yaml", s.GetOpenAPI)

	strict := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  writeRequestError,
		ResponseErrorHandlerFunc: writeResponseError,
	})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: writeParamError,
	})
}
