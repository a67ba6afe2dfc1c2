// Package metrics provides prometheus collectors for the GAII service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Requests by route pattern, method and status code
	Requests *prometheus.CounterVec

	// Request latency by route pattern
	RequestLatency *prometheus.HistogramVec

	// Dataset loads by result: "hit", "miss", "error"
	DatasetLoads *prometheus.CounterVec

	// Reports assembled, by trigger: "read", "archive"
	ReportsAssembled *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests so repeated construction does not collide.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,

		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gaii_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gaii_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),

		DatasetLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gaii_dataset_loads_total",
			Help: "Dataset lookups by cache result",
		}, []string{"result"}),

		ReportsAssembled: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gaii_reports_assembled_total",
			Help: "Reports assembled by trigger",
		}, []string{"trigger"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementDatasetLoad records a dataset cache hit, miss or load error.
func (m *Metrics) IncrementDatasetLoad(result string) {
	if m != nil {
		m.DatasetLoads.WithLabelValues(result).Inc()
	}
}

// IncrementReport records an assembled report.
func (m *Metrics) IncrementReport(trigger string) {
	if m != nil {
		m.ReportsAssembled.WithLabelValues(trigger).Inc()
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
