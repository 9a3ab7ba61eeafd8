package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadsuite/compliance/internal/compliance"
	"github.com/nomadsuite/compliance/internal/domain"
)

func TestTaxResidency_GermanyPortugalScenario(t *testing.T) {
	trips := []domain.Trip{
		trip("Germany", date(2024, 1, 1), date(2024, 3, 10)),
		trip("Portugal", date(2024, 3, 11), date(2024, 4, 20)),
	}

	got, err := compliance.TaxResidency(trips, 2024, fixedToday)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CountryResidency{
		Country: "Germany", Days: 70, AlertLevel: domain.AlertNone, Message: "70 days in 2024",
	}, got[0])
	assert.Equal(t, domain.CountryResidency{
		Country: "Portugal", Days: 41, AlertLevel: domain.AlertNone, Message: "41 days in 2024",
	}, got[1])
}

func TestTaxResidency_TripInOneYearDoesNotLeakIntoNext(t *testing.T) {
	trips := []domain.Trip{trip("Mexico", date(2023, 2, 1), date(2023, 11, 30))}

	got, err := compliance.TaxResidency(trips, 2024, fixedToday)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTaxResidency_SplitAcrossNewYear(t *testing.T) {
	trips := []domain.Trip{trip("Colombia", date(2023, 12, 20), date(2024, 1, 10))}

	y1, err := compliance.TaxResidency(trips, 2023, fixedToday)
	require.NoError(t, err)
	y2, err := compliance.TaxResidency(trips, 2024, fixedToday)
	require.NoError(t, err)

	require.Len(t, y1, 1)
	require.Len(t, y2, 1)
	assert.Equal(t, 12, y1[0].Days)
	assert.Equal(t, 10, y2[0].Days)
}

func TestTaxResidency_Thresholds(t *testing.T) {
	tests := []struct {
		days    int
		level   domain.AlertLevel
		message string
	}{
		{150, domain.AlertNone, "150 days in 2024"},
		{151, domain.AlertYellow, "Approaching tax residency threshold: 151/183 days in 2024"},
		{180, domain.AlertYellow, "Approaching tax residency threshold: 180/183 days in 2024"},
		{181, domain.AlertRed, "Tax residency risk! 181 days exceeds 183-day threshold in 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			start := date(2024, 1, 1)
			trips := []domain.Trip{trip("Spain", start, start.AddDate(0, 0, tt.days-1))}

			got, err := compliance.TaxResidency(trips, 2024, fixedToday)

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.days, got[0].Days)
			assert.Equal(t, tt.level, got[0].AlertLevel)
			assert.Equal(t, tt.message, got[0].Message)
		})
	}
}

func TestTaxResidency_SumsVisitsAndSortsByDays(t *testing.T) {
	trips := []domain.Trip{
		trip("Thailand", date(2024, 1, 1), date(2024, 1, 10)),
		trip("Bali", date(2024, 1, 11), date(2024, 2, 29)),
		trip("Thailand", date(2024, 3, 1), date(2024, 3, 31)),
	}

	got, err := compliance.TaxResidency(trips, 2024, fixedToday)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bali", got[0].Country)
	assert.Equal(t, 50, got[0].Days)
	assert.Equal(t, "Thailand", got[1].Country)
	assert.Equal(t, 41, got[1].Days)
}

func TestTaxResidency_DefaultsToCurrentYearAndCountsOpenTripToToday(t *testing.T) {
	trips := []domain.Trip{trip("Georgia", date(2024, 12, 1), time.Time{})}

	got, err := compliance.TaxResidency(trips, 0, fixedToday)

	require.NoError(t, err)
	require.Len(t, got, 1)
	// 2025-01-01 through 2025-07-15.
	assert.Equal(t, 196, got[0].Days)
	assert.Equal(t, domain.AlertRed, got[0].AlertLevel)
	assert.Contains(t, got[0].Message, "2025")
}

func TestTaxResidency_EmptyTrips(t *testing.T) {
	got, err := compliance.TaxResidency(nil, 2024, fixedToday)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTaxResidency_RejectsMalformedTrip(t *testing.T) {
	trips := []domain.Trip{trip("Spain", date(2024, 5, 2), date(2024, 5, 1))}

	_, err := compliance.TaxResidency(trips, 2024, fixedToday)

	assert.ErrorIs(t, err, compliance.ErrInvalidInterval)
}
