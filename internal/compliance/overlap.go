package compliance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nomadsuite/compliance/internal/domain"
)

// IntervalsOverlap reports whether the closed date ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day. Touching ranges overlap: a traveller
// cannot be in two countries on the same day.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !domain.DateOf(aStart).After(domain.DateOf(bEnd)) &&
		!domain.DateOf(bStart).After(domain.DateOf(aEnd))
}

// ValidateNoOverlap checks candidate against existing in the order given and
// reports the first trip it collides with. The trip whose ID equals excludeID
// is ignored so an edited trip is never compared with its stored self.
//
// Open-ended trips run until today. A malformed candidate returns
// ErrInvalidInterval instead of a Validation.
func ValidateNoOverlap(candidate domain.Trip, existing []domain.Trip, excludeID *uuid.UUID, today time.Time) (domain.Validation, error) {
	if err := checkInterval(candidate); err != nil {
		return domain.Validation{}, err
	}
	cStart, cEnd := span(candidate, today)

	for _, t := range existing {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if err := checkInterval(t); err != nil {
			return domain.Validation{}, err
		}
		start, end := span(t, today)
		if IntervalsOverlap(cStart, cEnd, start, end) {
			return domain.Validation{
				Valid:   false,
				Message: fmt.Sprintf("Trip overlaps with existing trip to %s starting %s", t.Country, formatDate(t.EntryDate)),
			}, nil
		}
	}
	return domain.Validation{Valid: true}, nil
}

// span returns the closed interval a trip occupies. An ongoing trip that
// starts after today occupies its entry day only.
func span(t domain.Trip, today time.Time) (time.Time, time.Time) {
	start := domain.DateOf(t.EntryDate)
	end := effectiveEnd(t, today)
	if end.Before(start) {
		end = start
	}
	return start, end
}
