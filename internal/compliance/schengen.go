package compliance

import (
	"fmt"
	"time"

	"github.com/nomadsuite/compliance/internal/domain"
)

// Schengen computes the 90/180 status for the single window
// [today-180 days, today]. Trips to non-member countries are ignored, and
// nothing after today is ever counted.
//
// The window is anchored at today only. Answering "was I compliant on date X"
// needs a window per day of presence and is not modelled here.
func Schengen(trips []domain.Trip, today time.Time) (domain.SchengenStatus, error) {
	today = domain.DateOf(today)
	windowStart := today.AddDate(0, 0, -SchengenWindowDays)

	used := 0
	for _, t := range trips {
		if err := checkInterval(t); err != nil {
			return domain.SchengenStatus{}, err
		}
		if !IsSchengen(t.Country) {
			continue
		}
		if t.ExitDate != nil && domain.DateOf(*t.ExitDate).Before(windowStart) {
			continue
		}
		if domain.DateOf(t.EntryDate).After(today) {
			continue
		}
		used += OverlapDays(t.EntryDate, effectiveEnd(t, today), windowStart, today)
	}

	return classifySchengen(used), nil
}

func classifySchengen(used int) domain.SchengenStatus {
	remaining := max(0, SchengenMaxDays-used)
	s := domain.SchengenStatus{DaysUsed: used, DaysRemaining: remaining}
	switch {
	case remaining < SchengenRedBelow:
		s.AlertLevel = domain.AlertRed
		s.Message = fmt.Sprintf("Critical: Only %d Schengen days remaining!", remaining)
	case remaining < SchengenYellowBelow:
		s.AlertLevel = domain.AlertYellow
		s.Message = fmt.Sprintf("Warning: Only %d Schengen days remaining", remaining)
	default:
		s.AlertLevel = domain.AlertNone
		s.Message = fmt.Sprintf("%d/%d days used in last %d days", used, SchengenMaxDays, SchengenWindowDays)
	}
	return s
}
