package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	PropertiesCreated prometheus.Counter
	ChecksPerformed   prometheus.Counter
	ReportsFiled      *prometheus.CounterVec
	AlertsRaised      prometheus.Counter
	WatchesUpserted   prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PropertiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listingguard_properties_created_total",
			Help: "Total number of canonical properties created",
		}),
		ChecksPerformed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listingguard_property_checks_total",
			Help: "Total number of property checks served",
		}),
		ReportsFiled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "listingguard_scam_reports_total",
			Help: "Total number of scam reports filed, by severity",
		}, []string{"severity"}),
		AlertsRaised: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listingguard_community_alerts_total",
			Help: "Total number of community alerts raised",
		}),
		WatchesUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listingguard_property_watches_total",
			Help: "Total number of property watch upserts",
		}),
	}
}

// IncrementPropertiesCreated increments the properties created counter by 1.
func (m *Metrics) IncrementPropertiesCreated() {
	if m != nil {
		m.PropertiesCreated.Inc()
	}
}

// IncrementChecksPerformed increments the checks counter by 1.
func (m *Metrics) IncrementChecksPerformed() {
	if m != nil {
		m.ChecksPerformed.Inc()
	}
}

// IncrementReportsFiled increments the report counter for a severity.
func (m *Metrics) IncrementReportsFiled(severity string) {
	if m != nil {
		m.ReportsFiled.WithLabelValues(severity).Inc()
	}
}

// IncrementAlertsRaised increments the alerts counter by 1.
func (m *Metrics) IncrementAlertsRaised() {
	if m != nil {
		m.AlertsRaised.Inc()
	}
}

// IncrementWatchesUpserted increments the watch counter by 1.
func (m *Metrics) IncrementWatchesUpserted() {
	if m != nil {
		m.WatchesUpserted.Inc()
	}
}
