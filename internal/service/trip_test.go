package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadsuite/compliance/internal/compliance"
	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/metrics"
	"github.com/nomadsuite/compliance/internal/service"
)

// echoRepo stores nothing: it echoes writes and lists the given trips.
func echoRepo(existing ...domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		getByID: func(_ context.Context, _, id uuid.UUID) (domain.Trip, error) {
			for _, t := range existing {
				if t.ID == id {
					return t, nil
				}
			}
			return domain.Trip{}, domain.ErrNotFound
		},
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return existing, nil },
	}
}

func newTripService(r *mockTripRepo, cache *memoryCache) *service.TripService {
	return service.NewTripService(service.Deps{Trips: r, Clock: fixedClock, Cache: cache})
}

func validTrip() domain.Trip {
	return closedTrip("Portugal", date(2025, 6, 1), date(2025, 6, 15))
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	cache := newMemoryCache()
	svc := newTripService(echoRepo(), cache)

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Portugal", got.Country)
	assert.Equal(t, []uuid.UUID{testUser}, cache.invalidated, "reports must be dropped after a write")
}

func TestTripService_Create_TrimsCountryAndTruncatesDates(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	trip := validTrip()
	trip.Country = "  Spain "
	trip.EntryDate = trip.EntryDate.Add(13 * time.Hour)

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Spain", got.Country)
	assert.Equal(t, date(2025, 6, 1), got.EntryDate)
}

func TestTripService_Create_MissingCountry(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	trip := validTrip()
	trip.Country = "   "

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_MissingEntryDate(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	trip := validTrip()
	trip.EntryDate = time.Time{}

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_ExitBeforeEntry(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	trip := validTrip()
	bad := trip.EntryDate.AddDate(0, 0, -1)
	trip.ExitDate = &bad

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, compliance.ErrInvalidInterval)
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	trip := validTrip()
	same := trip.EntryDate
	trip.ExitDate = &same

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_OngoingTripIsValid(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	trip := validTrip()
	trip.ExitDate = nil

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_OverlapIsConflict(t *testing.T) {
	existing := closedTrip("Spain", date(2025, 5, 20), date(2025, 6, 1))
	created := false
	r := echoRepo(existing)
	r.create = func(_ context.Context, t domain.Trip) (domain.Trip, error) {
		created = true
		return t, nil
	}
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewTripService(service.Deps{Trips: r, Clock: fixedClock, Metrics: m})

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorContains(t, err, "Trip overlaps with existing trip to Spain starting 2025-05-20")
	assert.False(t, created, "an overlapping trip must not be persisted")
	assert.InDelta(t, 1, prom.ToFloat64(m.TripConflicts), 0)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := echoRepo()
	r.create = func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, repoErr
	}
	svc := newTripService(r, newMemoryCache())

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

func TestTripService_Create_ListErrorStopsWrite(t *testing.T) {
	listErr := errors.New("connection reset")
	r := echoRepo()
	r.listByUser = func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return nil, listErr }
	svc := newTripService(r, newMemoryCache())

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, listErr)
}

// ---- GetByID / List tests --------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	_, err := svc.GetByID(context.Background(), testUser, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		listPaged: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}
	svc := newTripService(r, newMemoryCache())

	got, total, err := svc.List(context.Background(), testUser, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_ExtendingTripDoesNotConflictWithItself(t *testing.T) {
	stored := validTrip()
	svc := newTripService(echoRepo(stored), newMemoryCache())

	edited := stored
	exit := date(2025, 6, 30)
	edited.ExitDate = &exit

	got, err := svc.Update(context.Background(), edited)

	require.NoError(t, err)
	assert.Equal(t, exit, *got.ExitDate)
}

func TestTripService_Update_ConflictWithOtherTrip(t *testing.T) {
	stored := validTrip()
	next := closedTrip("Spain", date(2025, 6, 16), date(2025, 6, 30))
	svc := newTripService(echoRepo(stored, next), newMemoryCache())

	edited := stored
	exit := date(2025, 6, 16)
	edited.ExitDate = &exit

	_, err := svc.Update(context.Background(), edited)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorContains(t, err, "Spain")
}

func TestTripService_Update_NotFound(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	_, err := svc.Update(context.Background(), validTrip())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_InvalidatesReports(t *testing.T) {
	cache := newMemoryCache()
	r := &mockTripRepo{delete: func(_ context.Context, _, _ uuid.UUID) error { return nil }}
	svc := newTripService(r, cache)

	err := svc.Delete(context.Background(), testUser, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{testUser}, cache.invalidated)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	cache := newMemoryCache()
	r := &mockTripRepo{delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound }}
	svc := newTripService(r, cache)

	err := svc.Delete(context.Background(), testUser, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, cache.invalidated)
}

// ---- Validate tests --------------------------------------------------------

func TestTripService_Validate_Overlap(t *testing.T) {
	existing := closedTrip("France", date(2025, 1, 1), date(2025, 1, 10))
	svc := newTripService(echoRepo(existing), newMemoryCache())

	got, err := svc.Validate(context.Background(), closedTrip("Spain", date(2025, 1, 10), date(2025, 1, 12)), nil)

	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, "Trip overlaps with existing trip to France starting 2025-01-01", got.Message)
}

func TestTripService_Validate_ExcludeSelf(t *testing.T) {
	existing := closedTrip("France", date(2025, 1, 1), date(2025, 1, 10))
	svc := newTripService(echoRepo(existing), newMemoryCache())

	got, err := svc.Validate(context.Background(), existing, &existing.ID)

	require.NoError(t, err)
	assert.True(t, got.Valid)
}

func TestTripService_Validate_MalformedInput(t *testing.T) {
	svc := newTripService(echoRepo(), newMemoryCache())

	_, err := svc.Validate(context.Background(), closedTrip("Spain", date(2025, 1, 12), date(2025, 1, 10)), nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
