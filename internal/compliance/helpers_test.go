package compliance_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/nomadsuite/compliance/internal/domain"
)

// fixedToday pins "now" for every test in the package.
var fixedToday = time.Date(2025, 7, 15, 14, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

// trip builds a closed trip. Pass a zero exit for an ongoing one.
func trip(country string, entry, exit time.Time) domain.Trip {
	t := domain.Trip{ID: uuid.New(), Country: country, EntryDate: entry}
	if !exit.IsZero() {
		t.ExitDate = datePtr(exit)
	}
	return t
}
