package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncPaymentProcessed("Authorized")
	m.IncPaymentProcessed("Authorized")
	m.IncPaymentProcessed("Declined")
	m.IncPaymentRejected()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsProcessed.WithLabelValues("Authorized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsProcessed.WithLabelValues("Declined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsRejected))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncPaymentProcessed("Authorized")
		m.IncPaymentRejected()
		m.ObserveBankRequest("authorized", time.Millisecond)
		m.ObserveHTTPRequest("POST", "/payments", "200", time.Millisecond)
	})
}
