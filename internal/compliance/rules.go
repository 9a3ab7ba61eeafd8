// Package compliance computes travel-compliance reports from a traveller's trips:
// inclusive day counts, trip overlap validation, the 183-day tax residency rule,
// the Schengen 90/180 rolling window and a lifetime travel summary.
//
// Every function is pure. "Today" is passed in by the caller, read once per
// request, so nested helpers never see two different clocks.
package compliance

import "strings"

// Legal thresholds. These are facts of the rules, not tunables.
const (
	// SchengenMaxDays is the number of days allowed in any 180-day window.
	SchengenMaxDays = 90
	// SchengenWindowDays is how far back the rolling window reaches from today.
	SchengenWindowDays = 180
	// SchengenRedBelow and SchengenYellowBelow classify the remaining allowance.
	SchengenRedBelow    = 10
	SchengenYellowBelow = 20

	// TaxResidencyThreshold is the day count that usually creates tax residency.
	TaxResidencyThreshold = 183
	// TaxResidencyRedAbove and TaxResidencyYellowAbove leave a 3-day margin
	// below the legal line.
	TaxResidencyRedAbove    = 180
	TaxResidencyYellowAbove = 150
)

// schengenMembers holds the lower-cased names of the 26 Schengen-area countries.
var schengenMembers = map[string]struct{}{
	"austria":        {},
	"belgium":        {},
	"czech republic": {},
	"denmark":        {},
	"estonia":        {},
	"finland":        {},
	"france":         {},
	"germany":        {},
	"greece":         {},
	"hungary":        {},
	"iceland":        {},
	"italy":          {},
	"latvia":         {},
	"liechtenstein":  {},
	"lithuania":      {},
	"luxembourg":     {},
	"malta":          {},
	"netherlands":    {},
	"norway":         {},
	"poland":         {},
	"portugal":       {},
	"slovakia":       {},
	"slovenia":       {},
	"spain":          {},
	"sweden":         {},
	"switzerland":    {},
}

// IsSchengen reports whether country names a Schengen-area member.
// Matching ignores case and surrounding whitespace.
func IsSchengen(country string) bool {
	_, ok := schengenMembers[strings.ToLower(strings.TrimSpace(country))]
	return ok
}
