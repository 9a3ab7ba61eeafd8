package handler

import (
	"context"
	"errors"

	"github.com/nomadsuite/compliance/internal/domain"
	"github.com/nomadsuite/compliance/internal/handler/gen"
)

// GetTaxResidency handles GET /compliance/tax-residency?year=.
// Without year the current calendar year is reported.
func (s *Server) GetTaxResidency(ctx context.Context, req gen.GetTaxResidencyRequestObject) (gen.GetTaxResidencyResponseObject, error) {
	rows, err := s.compliance.TaxResidency(ctx, req.Params.XUserID, req.Params.Year)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.GetTaxResidency422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	out := make(gen.GetTaxResidency200JSONResponse, len(rows))
	for i, row := range rows {
		out[i] = gen.CountryResidency{
			Country:    row.Country,
			Days:       row.Days,
			AlertLevel: gen.AlertLevel(row.AlertLevel),
			Message:    row.Message,
		}
	}
	return out, nil
}

// GetSchengen handles GET /compliance/schengen.
func (s *Server) GetSchengen(ctx context.Context, req gen.GetSchengenRequestObject) (gen.GetSchengenResponseObject, error) {
	status, err := s.compliance.Schengen(ctx, req.Params.XUserID)
	if err != nil {
		return nil, err
	}
	return gen.GetSchengen200JSONResponse{
		DaysUsed:      status.DaysUsed,
		DaysRemaining: status.DaysRemaining,
		AlertLevel:    gen.AlertLevel(status.AlertLevel),
		Message:       status.Message,
	}, nil
}

// GetSummary handles GET /compliance/summary.
func (s *Server) GetSummary(ctx context.Context, req gen.GetSummaryRequestObject) (gen.GetSummaryResponseObject, error) {
	summary, err := s.compliance.Summary(ctx, req.Params.XUserID)
	if err != nil {
		return nil, err
	}
	return gen.GetSummary200JSONResponse(summaryToResponse(summary)), nil
}

func summaryToResponse(s domain.TravelSummary) gen.TravelSummary {
	out := gen.TravelSummary{
		TotalCountries:   s.TotalCountries,
		CountrySummaries: make([]gen.CountrySummary, len(s.CountrySummaries)),
	}
	for i, c := range s.CountrySummaries {
		out.CountrySummaries[i] = gen.CountrySummary{
			Country:     c.Country,
			TotalDays:   c.TotalDays,
			Visits:      c.Visits,
			LongestStay: c.LongestStay,
		}
	}
	return out
}
