package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	submissionsScored     prometheus.Counter
	gradesRecordedCounter prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors for the grading API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grading_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grading_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grading_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		submissionsScored = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "submissions_scored_total",
			Help: "Total number of submissions auto-scored at submit time.",
		})

		gradesRecordedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grades_recorded_total",
			Help: "Total number of teacher grading overrides recorded.",
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, submissionsScored, gradesRecordedCounter)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// SubmissionsScored exposes the counter for auto-scored submissions.
func SubmissionsScored() prometheus.Counter {
	RegisterMetrics()
	return submissionsScored
}

// GradesRecorded exposes the counter for recorded grading overrides.
func GradesRecorded() prometheus.Counter {
	RegisterMetrics()
	return gradesRecordedCounter
}
