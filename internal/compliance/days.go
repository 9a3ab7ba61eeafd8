package compliance

import (
	"fmt"
	"time"

	"github.com/nomadsuite/compliance/internal/domain"
)

// ErrInvalidInterval is returned when a trip's exit date is before its entry
// date. Such trips must be rejected at the input boundary; the calculators
// refuse them rather than clamping.
var ErrInvalidInterval = fmt.Errorf("%w: exit_date must not be before entry_date", domain.ErrValidation)

const day = 24 * time.Hour

// TripDays returns the number of calendar days spent on a trip, counting both
// the entry and the exit day. A nil exit means the trip is ongoing and ends
// today. An ongoing trip that has not started yet counts 0 days.
func TripDays(entry time.Time, exit *time.Time, today time.Time) (int, error) {
	if exit == nil {
		end := domain.DateOf(today)
		if end.Before(domain.DateOf(entry)) {
			return 0, nil
		}
		return inclusiveDays(entry, end), nil
	}
	if domain.DateOf(*exit).Before(domain.DateOf(entry)) {
		return 0, ErrInvalidInterval
	}
	return inclusiveDays(entry, *exit), nil
}

// OverlapDays returns the inclusive day count of the intersection of
// [tripStart, tripEnd] and [windowStart, windowEnd], or 0 when they are disjoint.
func OverlapDays(tripStart, tripEnd, windowStart, windowEnd time.Time) int {
	start := maxDate(tripStart, windowStart)
	end := minDate(tripEnd, windowEnd)
	if end.Before(start) {
		return 0
	}
	return inclusiveDays(start, end)
}

// inclusiveDays assumes from <= to.
func inclusiveDays(from, to time.Time) int {
	return int(domain.DateOf(to).Sub(domain.DateOf(from))/day) + 1
}

// effectiveEnd is the last day of a trip for window arithmetic: the exit date,
// or today when the trip is ongoing.
func effectiveEnd(t domain.Trip, today time.Time) time.Time {
	if t.ExitDate != nil {
		return domain.DateOf(*t.ExitDate)
	}
	return domain.DateOf(today)
}

// checkInterval rejects trips whose recorded exit precedes the entry.
func checkInterval(t domain.Trip) error {
	if t.ExitDate != nil && domain.DateOf(*t.ExitDate).Before(domain.DateOf(t.EntryDate)) {
		return fmt.Errorf("trip to %s entering %s: %w", t.Country, formatDate(t.EntryDate), ErrInvalidInterval)
	}
	return nil
}

func maxDate(a, b time.Time) time.Time {
	a, b = domain.DateOf(a), domain.DateOf(b)
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	a, b = domain.DateOf(a), domain.DateOf(b)
	if a.Before(b) {
		return a
	}
	return b
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
