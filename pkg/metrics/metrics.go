package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all application metrics
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	RenderFailures   *prometheus.CounterVec
	ReportsEmailed   *prometheus.CounterVec

	// Auth metrics
	LoginFailures prometheus.Counter
}

// New creates all application metrics on a private registry, together with
// the Go runtime and process collectors.
func New(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP responses with status >= 400",
		}, []string{"method", "path", "status"}),

		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "generated_total",
			Help:      "Total number of reports generated",
		}, []string{"report", "format"}),
		RenderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "render_failures_total",
			Help:      "Total number of report renders that failed",
		}, []string{"report", "format"}),
		ReportsEmailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "emailed_total",
			Help:      "Total number of report emails attempted",
		}, []string{"status"}),

		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_failures_total",
			Help:      "Total number of failed login attempts",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.ErrorTotal,
		m.ReportsGenerated,
		m.RenderFailures,
		m.ReportsEmailed,
		m.LoginFailures,
	)

	return m
}

// ObserveRender records the outcome of one report render.
func (m *Metrics) ObserveRender(report, format string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.RenderFailures.WithLabelValues(report, format).Inc()
		return
	}
	m.ReportsGenerated.WithLabelValues(report, format).Inc()
}

// ObserveLoginFailure counts one rejected login.
func (m *Metrics) ObserveLoginFailure() {
	if m == nil {
		return
	}
	m.LoginFailures.Inc()
}
