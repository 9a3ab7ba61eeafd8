package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nomadsuite/compliance/internal/compliance"
	"github.com/nomadsuite/compliance/internal/domain"
)

// Report names, used for cache fields and metric labels.
const (
	ReportTaxResidency = "tax_residency"
	ReportSchengen     = "schengen"
	ReportSummary      = "summary"
)

// Bounds accepted for the tax residency year.
const (
	minReportYear = 1900
	maxReportYear = 9999
)

// ComplianceService produces the travel-compliance reports for one user.
// Each call loads all of the user's trips once and reads the clock once.
type ComplianceService struct {
	deps Deps
}

// NewComplianceService constructs a ComplianceService.
func NewComplianceService(deps Deps) *ComplianceService {
	return &ComplianceService{deps: deps.withDefaults()}
}

// TaxResidency returns the 183-day report for year. A nil year means the
// current calendar year.
func (s *ComplianceService) TaxResidency(ctx context.Context, userID uuid.UUID, year *int) ([]domain.CountryResidency, error) {
	today := domain.DateOf(s.deps.Clock())
	y := today.Year()
	if year != nil {
		if *year < minReportYear || *year > maxReportYear {
			return nil, fmt.Errorf("service.ComplianceService.TaxResidency: %w: year must be between %d and %d",
				domain.ErrValidation, minReportYear, maxReportYear)
		}
		y = *year
	}

	field := fmt.Sprintf("%s:%d:%s", ReportTaxResidency, y, today.Format(time.DateOnly))
	report, err := cachedReport(ctx, s, userID, ReportTaxResidency, field, func(trips []domain.Trip) ([]domain.CountryResidency, error) {
		rows, err := compliance.TaxResidency(trips, y, today)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			s.deps.Metrics.IncrementAlert(ReportTaxResidency, r.AlertLevel)
		}
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ComplianceService.TaxResidency: %w", err)
	}
	if report == nil {
		report = []domain.CountryResidency{}
	}
	return report, nil
}

// Schengen returns the 90/180 status as of today.
func (s *ComplianceService) Schengen(ctx context.Context, userID uuid.UUID) (domain.SchengenStatus, error) {
	today := domain.DateOf(s.deps.Clock())
	field := fmt.Sprintf("%s:%s", ReportSchengen, today.Format(time.DateOnly))

	report, err := cachedReport(ctx, s, userID, ReportSchengen, field, func(trips []domain.Trip) (domain.SchengenStatus, error) {
		status, err := compliance.Schengen(trips, today)
		if err != nil {
			return domain.SchengenStatus{}, err
		}
		s.deps.Metrics.IncrementAlert(ReportSchengen, status.AlertLevel)
		return status, nil
	})
	if err != nil {
		return domain.SchengenStatus{}, fmt.Errorf("service.ComplianceService.Schengen: %w", err)
	}
	return report, nil
}

// Summary returns the lifetime travel summary.
func (s *ComplianceService) Summary(ctx context.Context, userID uuid.UUID) (domain.TravelSummary, error) {
	today := domain.DateOf(s.deps.Clock())
	field := fmt.Sprintf("%s:%s", ReportSummary, today.Format(time.DateOnly))

	report, err := cachedReport(ctx, s, userID, ReportSummary, field, func(trips []domain.Trip) (domain.TravelSummary, error) {
		return compliance.Summarize(trips, today)
	})
	if err != nil {
		return domain.TravelSummary{}, fmt.Errorf("service.ComplianceService.Summary: %w", err)
	}
	if report.CountrySummaries == nil {
		report.CountrySummaries = []domain.CountrySummary{}
	}
	return report, nil
}

// cachedReport serves field from the cache or loads the user's trips, runs
// compute and stores the result. The cache generation is read before the trips
// and becomes part of the field, so a result computed from trips that a write
// has since changed is never served. Cache errors degrade to a recompute.
func cachedReport[T any](ctx context.Context, s *ComplianceService, userID uuid.UUID, report, field string, compute func([]domain.Trip) (T, error)) (T, error) {
	gen, err := s.deps.Cache.Generation(ctx, userID)
	cacheable := err == nil
	if err != nil {
		s.deps.Logger.WarnContext(ctx, "report cache generation read failed", "report", report, "user_id", userID, "error", err)
	}
	field = fmt.Sprintf("%s@%d", field, gen)

	if cacheable {
		var cached T
		hit, err := s.deps.Cache.Get(ctx, userID, field, &cached)
		if err != nil {
			s.deps.Logger.WarnContext(ctx, "report cache read failed", "report", report, "user_id", userID, "error", err)
		}
		if hit {
			s.deps.Metrics.IncrementCacheHit(report)
			return cached, nil
		}
	}

	start := time.Now()
	trips, err := s.deps.Trips.ListByUser(ctx, userID)
	if err != nil {
		var zero T
		return zero, err
	}
	result, err := compute(trips)
	if err != nil {
		var zero T
		return zero, err
	}
	s.deps.Metrics.ObserveReport(report, time.Since(start))

	if cacheable {
		if err := s.deps.Cache.Set(ctx, userID, field, result); err != nil {
			s.deps.Logger.WarnContext(ctx, "report cache write failed", "report", report, "user_id", userID, "error", err)
		}
	}
	return result, nil
}
