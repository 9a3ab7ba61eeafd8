package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/handler/gen"
)

const entryDateRequired = "entry_date is required"

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	if req.Body.EntryDate.IsZero() {
		return gen.CreateTrip422JSONResponse(errorBody("validation_error", entryDateRequired)), nil
	}

	created, err := s.trips.Create(ctx, requestToTrip(req.Params.XUserID, uuid.Nil, *req.Body))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return gen.CreateTrip409JSONResponse(conflictBody(err)), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse(tripToResponse(created)), nil
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(ctx context.Context, req gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	trips, total, err := s.trips.List(ctx, req.Params.XUserID, params)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	return gen.ListTrips200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	}, nil
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.Params.XUserID, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse(notFoundBody(tripNotFound)), nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(ctx context.Context, req gen.UpdateTripRequestObject) (gen.UpdateTripResponseObject, error) {
	if req.Body.EntryDate.IsZero() {
		return gen.UpdateTrip422JSONResponse(errorBody("validation_error", entryDateRequired)), nil
	}

	updated, err := s.trips.Update(ctx, requestToTrip(req.Params.XUserID, req.Id, *req.Body))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.UpdateTrip404JSONResponse(notFoundBody(tripNotFound)), nil
		case errors.Is(err, domain.ErrConflict):
			return gen.UpdateTrip409JSONResponse(conflictBody(err)), nil
		case errors.Is(err, domain.ErrValidation):
			return gen.UpdateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.UpdateTrip200JSONResponse(tripToResponse(updated)), nil
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(ctx context.Context, req gen.DeleteTripRequestObject) (gen.DeleteTripResponseObject, error) {
	if err := s.trips.Delete(ctx, req.Params.XUserID, req.Id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.DeleteTrip404JSONResponse(notFoundBody(tripNotFound)), nil
		}
		return nil, err
	}
	return gen.DeleteTrip204Response{}, nil
}

// ValidateTrip handles POST /trips/validate.
// An overlap is reported as {"valid": false, "message": ...} with status 200;
// only malformed input is an error.
func (s *Server) ValidateTrip(ctx context.Context, req gen.ValidateTripRequestObject) (gen.ValidateTripResponseObject, error) {
	body := req.Body
	if body.EntryDate.IsZero() {
		return gen.ValidateTrip422JSONResponse(errorBody("validation_error", entryDateRequired)), nil
	}
	candidate := requestToTrip(req.Params.XUserID, uuid.Nil, gen.TripRequest{
		Country:   body.Country,
		EntryDate: body.EntryDate,
		ExitDate:  body.ExitDate,
		Notes:     body.Notes,
	})

	result, err := s.trips.Validate(ctx, candidate, body.ExcludeTripId)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.ValidateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	resp := gen.ValidationResult{Valid: result.Valid}
	if result.Message != "" {
		resp.Message = &result.Message
	}
	return gen.ValidateTrip200JSONResponse(resp), nil
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a request body into a domain.Trip owned by userID.
// Field rules beyond presence are enforced by the service.
func requestToTrip(userID, id uuid.UUID, body gen.TripRequest) domain.Trip {
	t := domain.Trip{
		ID:        id,
		UserID:    userID,
		Country:   body.Country,
		EntryDate: body.EntryDate.Time,
	}
	if body.ExitDate != nil {
		ed := body.ExitDate.Time
		t.ExitDate = &ed
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}

// tripToResponse converts a domain.Trip into its wire form.
func tripToResponse(t domain.Trip) gen.Trip {
	resp := gen.Trip{
		Id:        t.ID,
		Country:   t.Country,
		EntryDate: openapi_types.Date{Time: t.EntryDate},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	if t.ExitDate != nil {
		ed := openapi_types.Date{Time: *t.ExitDate}
		resp.ExitDate = &ed
	}
	return resp
}
