// Package metrics exposes Prometheus counters for the onboarding service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// Metrics holds the service collectors on a private registry. A nil
// *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	stepSaves      *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	authorizations *prometheus.CounterVec
	uploads        *prometheus.CounterVec
	swept          *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboarding_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		stepSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_step_saves_total",
			Help: "Total number of wizard step saves",
		}, []string{"step", "outcome"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Total number of application submissions",
		}, []string{"outcome"}),
		authorizations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_authorizations_total",
			Help: "Total number of medical director authorizations",
		}, []string{"outcome"}),
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_documents_uploaded_total",
			Help: "Total number of uploaded documents",
		}, []string{"outcome"}),
		swept: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_swept_total",
			Help: "Total number of expired entries removed by the sweeper",
		}, []string{"kind"}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) StepSaved(step, outcome string) {
	if m == nil {
		return
	}
	m.stepSaves.WithLabelValues(step, outcome).Inc()
}

func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Authorization(outcome string) {
	if m == nil {
		return
	}
	m.authorizations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) DocumentsUploaded(outcome string, n int) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) Swept(kind string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.swept.WithLabelValues(kind).Add(float64(n))
}
