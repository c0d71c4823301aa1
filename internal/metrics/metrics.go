// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors so tests can use a private registry.
type Metrics struct {
	Classifications  *prometheus.CounterVec
	ClassifyErrors   *prometheus.CounterVec
	ContractsExpired prometheus.Counter
	JobRuns          *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rent_engine",
			Name:      "classifications_total",
			Help:      "Derived statuses returned, by record kind and status.",
		}, []string{"kind", "status"}),
		ClassifyErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rent_engine",
			Name:      "classification_errors_total",
			Help:      "Records that could not be classified, by record kind and error code.",
		}, []string{"kind", "code"}),
		ContractsExpired: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rent_engine",
			Name:      "contracts_expired_total",
			Help:      "Active contracts moved to expired by the batch job.",
		}),
		JobRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rent_engine",
			Name:      "job_runs_total",
			Help:      "Scheduled job executions, by job and outcome.",
		}, []string{"job", "outcome"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rent_engine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route template, method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}
}

// NewNop returns collectors bound to a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
