package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadsuite/compliance/internal/compliance"
	"github.com/nomadsuite/compliance/internal/domain"
)

// The 180-day window for fixedToday (2025-07-15) starts on 2025-01-16.
var windowStart = date(2025, 1, 16)

// schengenDays returns a closed France trip of n days that ended on 2025-07-01.
func schengenDays(n int) domain.Trip {
	end := date(2025, 7, 1)
	return trip("France", end.AddDate(0, 0, -(n-1)), end)
}

func TestSchengen_EmptyTrips(t *testing.T) {
	got, err := compliance.Schengen(nil, fixedToday)

	require.NoError(t, err)
	assert.Equal(t, domain.SchengenStatus{
		DaysUsed:      0,
		DaysRemaining: 90,
		AlertLevel:    domain.AlertNone,
		Message:       "0/90 days used in last 180 days",
	}, got)
}

func TestSchengen_NonMemberExcluded(t *testing.T) {
	start := date(2025, 1, 1)
	trips := []domain.Trip{trip("United Kingdom", start, start.AddDate(0, 0, 199))}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Zero(t, got.DaysUsed)
	assert.Equal(t, 90, got.DaysRemaining)
}

func TestSchengen_TripBeforeWindowIgnored(t *testing.T) {
	trips := []domain.Trip{trip("Italy", date(2024, 10, 1), windowStart.AddDate(0, 0, -1))}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Zero(t, got.DaysUsed)
}

func TestSchengen_TripClippedAtWindowStart(t *testing.T) {
	trips := []domain.Trip{trip("Italy", date(2024, 10, 1), windowStart.AddDate(0, 0, 4))}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Equal(t, 5, got.DaysUsed)
}

func TestSchengen_FutureTripIgnored(t *testing.T) {
	trips := []domain.Trip{trip("Spain", date(2025, 8, 1), date(2025, 8, 20))}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Zero(t, got.DaysUsed)
}

// Days are counted inclusive of entry and today, so a stay of thirty days
// began 29 days ago; an entry 30 days ago is 31 days (see below).
func TestSchengen_OpenTripOnItsThirtiethDay(t *testing.T) {
	today := domain.DateOf(fixedToday)
	trips := []domain.Trip{trip("Germany", today.AddDate(0, 0, -29), time.Time{})}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Equal(t, 30, got.DaysUsed)
	assert.Equal(t, 60, got.DaysRemaining)
	assert.Equal(t, domain.AlertNone, got.AlertLevel)
}

func TestSchengen_OpenTripNeverCountsPastToday(t *testing.T) {
	today := domain.DateOf(fixedToday)
	trips := []domain.Trip{trip("Germany", today.AddDate(0, 0, -30), time.Time{})}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	// Entry day plus thirty more days up to and including today.
	assert.Equal(t, 31, got.DaysUsed)
}

func TestSchengen_RemainingNeverNegative(t *testing.T) {
	trips := []domain.Trip{trip("Germany", date(2025, 2, 1), time.Time{})}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Greater(t, got.DaysUsed, 90)
	assert.Zero(t, got.DaysRemaining)
	assert.Equal(t, domain.AlertRed, got.AlertLevel)
	assert.Equal(t, "Critical: Only 0 Schengen days remaining!", got.Message)
}

func TestSchengen_Thresholds(t *testing.T) {
	tests := []struct {
		used    int
		level   domain.AlertLevel
		message string
	}{
		{70, domain.AlertNone, "70/90 days used in last 180 days"},
		{71, domain.AlertYellow, "Warning: Only 19 Schengen days remaining"},
		{80, domain.AlertYellow, "Warning: Only 10 Schengen days remaining"},
		{81, domain.AlertRed, "Critical: Only 9 Schengen days remaining!"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, err := compliance.Schengen([]domain.Trip{schengenDays(tt.used)}, fixedToday)

			require.NoError(t, err)
			assert.Equal(t, tt.used, got.DaysUsed)
			assert.Equal(t, tt.level, got.AlertLevel)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestSchengen_SumsMembersOnly(t *testing.T) {
	trips := []domain.Trip{
		trip("spain", date(2025, 3, 1), date(2025, 3, 10)),
		trip("Morocco", date(2025, 3, 11), date(2025, 3, 31)),
		trip(" Portugal ", date(2025, 4, 1), date(2025, 4, 5)),
	}

	got, err := compliance.Schengen(trips, fixedToday)

	require.NoError(t, err)
	assert.Equal(t, 15, got.DaysUsed)
	assert.Equal(t, 75, got.DaysRemaining)
}

func TestIsSchengen(t *testing.T) {
	assert.True(t, compliance.IsSchengen("Switzerland"))
	assert.True(t, compliance.IsSchengen("czech republic"))
	assert.False(t, compliance.IsSchengen("Ireland"))
	assert.False(t, compliance.IsSchengen(""))
}
