package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Panel refresh metrics
	PanelRefreshesTotal     *prometheus.CounterVec
	StaleResponsesDiscarded *prometheus.CounterVec

	// Upstream API metrics
	UpstreamAPICalls    *prometheus.CounterVec
	UpstreamAPIDuration *prometheus.HistogramVec
	UpstreamAPIFailures *prometheus.CounterVec

	// Edit reconciliation metrics
	EditSavesTotal *prometheus.CounterVec

	// Workspace metrics
	WorkspacesActive prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		PanelRefreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_refreshes_total",
				Help: "Total number of dashboard panel refreshes",
			},
			[]string{"panel", "trigger", "status"},
		),

		StaleResponsesDiscarded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stale_responses_discarded_total",
				Help: "Total number of fetch responses discarded by the staleness guard",
			},
			[]string{"panel"},
		),

		UpstreamAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_api_calls_total",
				Help: "Total number of career backend API calls",
			},
			[]string{"api", "status"},
		),

		UpstreamAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_api_duration_seconds",
				Help:    "Career backend API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		UpstreamAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_api_failures_total",
				Help: "Total number of career backend API failures",
			},
			[]string{"api", "error_type"},
		),

		EditSavesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edit_saves_total",
				Help: "Total number of edit-buffer save attempts",
			},
			[]string{"kind", "status"},
		),

		WorkspacesActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "workspaces_active",
				Help: "Number of open dashboard workspaces",
			},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Panel refresh outcome metrics
func (m *Metrics) RecordPanelRefresh(panel, trigger, status string) {
	m.PanelRefreshesTotal.WithLabelValues(panel, trigger, status).Inc()
}

// Staleness guard metrics
func (m *Metrics) RecordStaleResponseDiscarded(panel string) {
	m.StaleResponsesDiscarded.WithLabelValues(panel).Inc()
}

// Upstream API call metrics
func (m *Metrics) RecordUpstreamAPICall(api, status string, duration time.Duration) {
	m.UpstreamAPICalls.WithLabelValues(api, status).Inc()
	m.UpstreamAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// Upstream API failure metrics
func (m *Metrics) RecordUpstreamAPIFailure(api, errorType string) {
	m.UpstreamAPIFailures.WithLabelValues(api, errorType).Inc()
}

// Edit-buffer save metrics
func (m *Metrics) RecordEditSave(kind, status string) {
	m.EditSavesTotal.WithLabelValues(kind, status).Inc()
}

// Active workspace gauge
func (m *Metrics) SetWorkspacesActive(count int) {
	m.WorkspacesActive.Set(float64(count))
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
