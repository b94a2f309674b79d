package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	PaymentsProcessed   *prometheus.CounterVec
	PaymentsRejected    prometheus.Counter
	BankRequestDuration *prometheus.HistogramVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PaymentsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "card_gateway_payments_processed_total",
			Help: "Total number of payments that completed a bank round-trip, labeled by status",
		}, []string{"status"}),
		PaymentsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "card_gateway_payments_rejected_total",
			Help: "Total number of payment requests rejected by validation",
		}),
		BankRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "card_gateway_bank_request_duration_seconds",
			Help:    "Latency of acquiring bank calls in seconds, labeled by outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "card_gateway_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

// IncPaymentProcessed counts a stored payment
func (m *Metrics) IncPaymentProcessed(status string) {
	if m == nil {
		return
	}
	m.PaymentsProcessed.WithLabelValues(status).Inc()
}

// IncPaymentRejected counts a request that failed validation
func (m *Metrics) IncPaymentRejected() {
	if m == nil {
		return
	}
	m.PaymentsRejected.Inc()
}

// ObserveBankRequest records the latency of one bank call
func (m *Metrics) ObserveBankRequest(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.BankRequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveHTTPRequest records the latency of one HTTP request
func (m *Metrics) ObserveHTTPRequest(method, route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}
