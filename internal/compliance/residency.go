package compliance

import (
	"fmt"
	"sort"
	"time"

	"github.com/nomadsuite/compliance/internal/domain"
)

// TaxResidency applies the 183-day rule to the calendar year. A zero year
// means the year containing today. Days from every trip that intersects
// [Jan 1, Dec 31] are summed per country; an ongoing trip runs until today.
//
// The result is ordered by days descending, then by country name, and is
// never nil.
func TaxResidency(trips []domain.Trip, year int, today time.Time) ([]domain.CountryResidency, error) {
	if year == 0 {
		year = today.UTC().Year()
	}
	windowStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	totals := make(map[string]int)
	var order []string
	for _, t := range trips {
		if err := checkInterval(t); err != nil {
			return nil, err
		}
		end := effectiveEnd(t, today)
		if end.Before(windowStart) || domain.DateOf(t.EntryDate).After(windowEnd) {
			continue
		}
		if _, seen := totals[t.Country]; !seen {
			order = append(order, t.Country)
		}
		totals[t.Country] += OverlapDays(t.EntryDate, end, windowStart, windowEnd)
	}

	out := make([]domain.CountryResidency, 0, len(order))
	for _, country := range order {
		out = append(out, classifyResidency(country, totals[country], year))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days > out[j].Days
		}
		return out[i].Country < out[j].Country
	})
	return out, nil
}

func classifyResidency(country string, days, year int) domain.CountryResidency {
	r := domain.CountryResidency{Country: country, Days: days}
	switch {
	case days > TaxResidencyRedAbove:
		r.AlertLevel = domain.AlertRed
		r.Message = fmt.Sprintf("Tax residency risk! %d days exceeds %d-day threshold in %d", days, TaxResidencyThreshold, year)
	case days > TaxResidencyYellowAbove:
		r.AlertLevel = domain.AlertYellow
		r.Message = fmt.Sprintf("Approaching tax residency threshold: %d/%d days in %d", days, TaxResidencyThreshold, year)
	default:
		r.AlertLevel = domain.AlertNone
		r.Message = fmt.Sprintf("%d days in %d", days, year)
	}
	return r
}
