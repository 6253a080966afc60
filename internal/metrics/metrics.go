package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request latency per method and status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sponnect_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"method", "status"},
	)

	// AdRequestTransitions counts lifecycle writes by resulting status.
	AdRequestTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sponnect_ad_request_transitions_total",
			Help: "Ad request writes by resulting status",
		},
		[]string{"status"},
	)

	// PaymentsRecorded counts successful payment markings.
	PaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sponnect_payments_recorded_total",
			Help: "Number of ad request payments recorded",
		},
	)
)

// RecordRequestDuration records one served HTTP request.
func RecordRequestDuration(method, status string, seconds float64) {
	RequestDuration.WithLabelValues(method, status).Observe(seconds)
}
