// Package metrics exposes Prometheus instruments for the compliance API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nomadsuite/compliance/internal/domain"
)

// Metrics holds the instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Alert levels produced by each report ("tax_residency", "schengen").
	ReportAlerts *prometheus.CounterVec

	// Time spent loading trips and computing a report.
	ReportDuration *prometheus.HistogramVec

	// Report requests answered from the cache.
	CacheHits *prometheus.CounterVec

	// Trip writes and validations rejected because of an overlap.
	TripConflicts prometheus.Counter
}

// New creates the instruments and registers them with reg.
// Tests pass prometheus.NewRegistry() so repeated construction does not panic.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReportAlerts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadsuite_compliance_report_alerts_total",
			Help: "Alert levels produced by compliance reports",
		}, []string{"report", "level"}),

		ReportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nomadsuite_compliance_report_duration_seconds",
			Help:    "Duration of compliance report computation including trip loading",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"report"}),

		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nomadsuite_compliance_report_cache_hits_total",
			Help: "Compliance reports served from the report cache",
		}, []string{"report"}),

		TripConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "nomadsuite_compliance_trip_conflicts_total",
			Help: "Trips rejected because they overlap another trip of the same traveller",
		}),
	}
}

// IncrementAlert records one alert level emitted by report.
func (m *Metrics) IncrementAlert(report string, level domain.AlertLevel) {
	if m != nil {
		m.ReportAlerts.WithLabelValues(report, string(level)).Inc()
	}
}

// ObserveReport records how long computing report took.
func (m *Metrics) ObserveReport(report string, d time.Duration) {
	if m != nil {
		m.ReportDuration.WithLabelValues(report).Observe(d.Seconds())
	}
}

// IncrementCacheHit records a report served from cache.
func (m *Metrics) IncrementCacheHit(report string) {
	if m != nil {
		m.CacheHits.WithLabelValues(report).Inc()
	}
}

// IncrementConflict records a rejected overlapping trip.
func (m *Metrics) IncrementConflict() {
	if m != nil {
		m.TripConflicts.Inc()
	}
}
