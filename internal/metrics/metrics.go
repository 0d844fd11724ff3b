package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application lifecycle.
type Metrics struct {
	// Submissions by service kind
	ApplicationsCreated *prometheus.CounterVec

	// Status transition outcomes
	Transitions *prometheus.CounterVec

	// Certificates minted on approval
	CertificatesIssued prometheus.Counter

	// Ledger appends that failed after the business transaction committed
	LedgerAppendFailures prometheus.Counter

	// HTTP request latency by route
	RequestDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance with all collectors registered.
func New() *Metrics {
	return &Metrics{
		ApplicationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_applications_created_total",
			Help: "Total applications created by service kind",
		}, []string{"service_kind"}),

		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_status_transitions_total",
			Help: "Total status transition attempts by from/to status and outcome",
		}, []string{"from", "to", "outcome"}), // outcome: "applied", "rejected"

		CertificatesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "portal_certificates_issued_total",
			Help: "Total ESG certificates issued",
		}),

		LedgerAppendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "portal_ledger_append_failures_total",
			Help: "Total activity ledger appends that failed",
		}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method, route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// IncrementApplicationsCreated records a new submission.
func (m *Metrics) IncrementApplicationsCreated(serviceKind string) {
	if m != nil {
		m.ApplicationsCreated.WithLabelValues(serviceKind).Inc()
	}
}

// IncrementTransition records a status transition attempt.
func (m *Metrics) IncrementTransition(from, to, outcome string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to, outcome).Inc()
	}
}

// IncrementCertificatesIssued records a minted certificate.
func (m *Metrics) IncrementCertificatesIssued() {
	if m != nil {
		m.CertificatesIssued.Inc()
	}
}

// IncrementLedgerAppendFailures records a failed ledger append.
func (m *Metrics) IncrementLedgerAppendFailures() {
	if m != nil {
		m.LedgerAppendFailures.Inc()
	}
}

// GinMiddleware records request latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
