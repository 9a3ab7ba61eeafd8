package domain

// AlertLevel classifies how close a traveller is to a legal threshold.
type AlertLevel string

const (
	AlertNone   AlertLevel = "none"
	AlertYellow AlertLevel = "yellow"
	AlertRed    AlertLevel = "red"
)

// Validation is the outcome of checking a candidate trip against the
// traveller's existing trips. Message is empty when Valid is true.
type Validation struct {
	Valid   bool
	Message string
}

// CountryResidency is one row of the 183-day tax residency report.
type CountryResidency struct {
	Country    string
	Days       int
	AlertLevel AlertLevel
	Message    string
}

// SchengenStatus is the traveller's position in the 90/180 rolling window
// ending today.
type SchengenStatus struct {
	DaysUsed      int
	DaysRemaining int
	AlertLevel    AlertLevel
	Message       string
}

// CountrySummary aggregates every trip ever made to one country.
type CountrySummary struct {
	Country     string
	TotalDays   int
	Visits      int
	LongestStay int
}

// TravelSummary is the lifetime travel report.
// CountrySummaries is ordered by TotalDays descending.
type TravelSummary struct {
	TotalCountries   int
	CountrySummaries []CountrySummary
}
