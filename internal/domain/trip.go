// Package domain contains the core data types for the NomadSuite compliance API.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (compliance, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip records one stay of a traveller in a single country.
// Dates are calendar dates held at UTC midnight. ExitDate is nil while the
// traveller is still in the country.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Country   string     `json:"country"`
	EntryDate time.Time  `json:"entry_date"`
	ExitDate  *time.Time `json:"exit_date,omitempty"` // nil when the trip is ongoing
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Ongoing reports whether the traveller has not yet left the country.
func (t Trip) Ongoing() bool {
	return t.ExitDate == nil
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
