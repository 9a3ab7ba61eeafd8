package service_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/repo"
	"github.com/nomadsuite/compliance/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	listPaged  func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// memoryCache is an in-memory service.ReportCache that round-trips values
// through JSON, exactly as the Redis implementation does.
type memoryCache struct {
	data        map[uuid.UUID]map[string][]byte
	generations map[uuid.UUID]int64
	invalidated []uuid.UUID
	getErr      error
	genErr      error
	sets        int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		data:        make(map[uuid.UUID]map[string][]byte),
		generations: make(map[uuid.UUID]int64),
	}
}

func (c *memoryCache) Generation(_ context.Context, userID uuid.UUID) (int64, error) {
	if c.genErr != nil {
		return 0, c.genErr
	}
	return c.generations[userID], nil
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, field string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[userID][field]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, field string, report any) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if c.data[userID] == nil {
		c.data[userID] = make(map[string][]byte)
	}
	c.data[userID][field] = raw
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	c.generations[userID]++
	delete(c.data, userID)
	return nil
}

var _ service.ReportCache = (*memoryCache)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	testUser = uuid.MustParse("7b0f3c2e-5a43-4c1e-9d0a-2f6e8e1c4b11")
	now      = time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return now }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func closedTrip(country string, entry, exit time.Time) domain.Trip {
	return domain.Trip{ID: uuid.New(), UserID: testUser, Country: country, EntryDate: entry, ExitDate: &exit}
}
