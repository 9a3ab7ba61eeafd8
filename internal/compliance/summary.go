package compliance

import (
	"sort"
	"time"

	"github.com/nomadsuite/compliance/internal/domain"
)

// Summarize aggregates every trip ever recorded into per-country totals.
// Countries are ordered by total days descending, then by name.
func Summarize(trips []domain.Trip, today time.Time) (domain.TravelSummary, error) {
	byCountry := make(map[string]*domain.CountrySummary)
	var order []string

	for _, t := range trips {
		days, err := TripDays(t.EntryDate, t.ExitDate, today)
		if err != nil {
			return domain.TravelSummary{}, err
		}
		cs, ok := byCountry[t.Country]
		if !ok {
			cs = &domain.CountrySummary{Country: t.Country}
			byCountry[t.Country] = cs
			order = append(order, t.Country)
		}
		cs.TotalDays += days
		cs.Visits++
		cs.LongestStay = max(cs.LongestStay, days)
	}

	summaries := make([]domain.CountrySummary, 0, len(order))
	for _, country := range order {
		summaries = append(summaries, *byCountry[country])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalDays != summaries[j].TotalDays {
			return summaries[i].TotalDays > summaries[j].TotalDays
		}
		return summaries[i].Country < summaries[j].Country
	})

	return domain.TravelSummary{
		TotalCountries:   len(summaries),
		CountrySummaries: summaries,
	}, nil
}
