// Package service contains the business logic for the compliance API.
// Services validate inputs, enforce business rules, and orchestrate repo,
// engine and cache calls. No SQL lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nomadsuite/compliance/internal/compliance"
	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/metrics"
	"github.com/nomadsuite/compliance/internal/repo"
)

// Clock returns the current instant. Production passes time.Now; tests pin it.
type Clock func() time.Time

// ReportCache stores computed reports per user. Implemented by cache.ReportCache.
// Invalidate must advance Generation.
type ReportCache interface {
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)
	Get(ctx context.Context, userID uuid.UUID, field string, dest any) (bool, error)
	Set(ctx context.Context, userID uuid.UUID, field string, report any) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Deps bundles the collaborators shared by the services.
// Cache, Metrics and Logger may be nil.
type Deps struct {
	Trips   repo.TripRepo
	Clock   Clock
	Cache   ReportCache
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Cache == nil {
		d.Cache = noopCache{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

// TripService implements business logic for Trip operations.
// Every write is checked against the user's other trips so that a traveller
// is never recorded in two countries on the same day.
//
// Validation and insert are not atomic. This holds because writes for one
// user come from that user's own requests, one at a time.
type TripService struct {
	deps Deps
}

// NewTripService constructs a TripService.
func NewTripService(deps Deps) *TripService {
	return &TripService{deps: deps.withDefaults()}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation for malformed input and domain.ErrConflict when
// the trip overlaps an existing one.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if err := s.ensureNoOverlap(ctx, trip, nil); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	result, err := s.deps.Trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.invalidate(ctx, trip.UserID)
	return result, nil
}

// GetByID returns one trip of the user.
func (s *TripService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	result, err := s.deps.Trips.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of the user's trips and the total count.
// Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.deps.Trips.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip. The trip is
// re-checked against the user's other trips, never against itself.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if _, err := s.deps.Trips.GetByID(ctx, trip.UserID, trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := s.ensureNoOverlap(ctx, trip, &trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	result, err := s.deps.Trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	s.invalidate(ctx, trip.UserID)
	return result, nil
}

// Delete removes a trip of the user.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.deps.Trips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// Validate runs the pre-insert overlap check without persisting anything.
// An overlap is a normal outcome reported in the Validation, not an error.
// excludeID, when set, names the trip being edited.
func (s *TripService) Validate(ctx context.Context, candidate domain.Trip, excludeID *uuid.UUID) (domain.Validation, error) {
	candidate = normalizeTrip(candidate)
	if err := validateTrip(candidate); err != nil {
		return domain.Validation{}, fmt.Errorf("service.TripService.Validate: %w", err)
	}
	result, err := s.checkOverlap(ctx, candidate, excludeID)
	if err != nil {
		return domain.Validation{}, fmt.Errorf("service.TripService.Validate: %w", err)
	}
	if !result.Valid {
		s.deps.Metrics.IncrementConflict()
	}
	return result, nil
}

func (s *TripService) ensureNoOverlap(ctx context.Context, trip domain.Trip, excludeID *uuid.UUID) error {
	result, err := s.checkOverlap(ctx, trip, excludeID)
	if err != nil {
		return err
	}
	if !result.Valid {
		s.deps.Metrics.IncrementConflict()
		return fmt.Errorf("%w: %s", domain.ErrConflict, result.Message)
	}
	return nil
}

func (s *TripService) checkOverlap(ctx context.Context, trip domain.Trip, excludeID *uuid.UUID) (domain.Validation, error) {
	existing, err := s.deps.Trips.ListByUser(ctx, trip.UserID)
	if err != nil {
		return domain.Validation{}, err
	}
	return compliance.ValidateNoOverlap(trip, existing, excludeID, s.deps.Clock())
}

// invalidate drops cached reports. A failure only costs a stale report until
// the TTL expires, so it is logged rather than returned.
func (s *TripService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.deps.Cache.Invalidate(ctx, userID); err != nil {
		s.deps.Logger.WarnContext(ctx, "report cache invalidation failed", "user_id", userID, "error", err)
	}
}

// normalizeTrip trims the country and truncates dates to calendar days.
func normalizeTrip(t domain.Trip) domain.Trip {
	t.Country = strings.TrimSpace(t.Country)
	t.Notes = strings.TrimSpace(t.Notes)
	if !t.EntryDate.IsZero() {
		t.EntryDate = domain.DateOf(t.EntryDate)
	}
	if t.ExitDate != nil {
		exit := domain.DateOf(*t.ExitDate)
		t.ExitDate = &exit
	}
	return t
}

// validateTrip enforces business rules common to Create, Update and Validate.
//   - UserID must be set.
//   - Country must be non-empty.
//   - EntryDate is required.
//   - ExitDate, if set, must not be before EntryDate.
func validateTrip(t domain.Trip) error {
	if t.UserID == uuid.Nil {
		return fmt.Errorf("%w: user is required", domain.ErrValidation)
	}
	if t.Country == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if t.EntryDate.IsZero() {
		return fmt.Errorf("%w: entry_date is required", domain.ErrValidation)
	}
	if t.ExitDate != nil && t.ExitDate.Before(t.EntryDate) {
		return compliance.ErrInvalidInterval
	}
	return nil
}

type noopCache struct{}

func (noopCache) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (noopCache) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, uuid.UUID, string, any) error         { return nil }
func (noopCache) Invalidate(context.Context, uuid.UUID) error               { return nil }
