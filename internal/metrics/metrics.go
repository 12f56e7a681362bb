// Package metrics exposes Prometheus instrumentation for the dispatcher.
//
// Every method tolerates a nil receiver, so a disabled Metrics can be
// passed around as a plain nil pointer without callers special-casing it.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks dispatcher-level Prometheus metrics, all under the
// ignite_ prefix.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ConnectionsOpen prometheus.Gauge
}

// New creates dispatcher metrics and registers them with reg. Panics if
// registration fails, which is only expected to happen during init.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignite_requests_total",
				Help: "Total Ignite thin-client requests by opcode and outcome",
			},
			[]string{"opcode", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ignite_request_duration_seconds",
				Help:    "Ignite thin-client request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"opcode"},
		),
		ConnectionsOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ignite_connections_open",
				Help: "Current number of open connections to Ignite servers",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.ConnectionsOpen)
	return m
}

// outcome labels a completed request for RequestsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeCodecError   = "codec_error"
	OutcomeServerStatus = "server_status"
)

// RecordRequest records one completed dispatcher round trip.
func (m *Metrics) RecordRequest(opcode int16, outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	op := strconv.Itoa(int(opcode))
	m.RequestsTotal.WithLabelValues(op, outcome).Inc()
	m.RequestDuration.WithLabelValues(op).Observe(durationSeconds)
}

// SetConnectionsOpen updates the open-connections gauge.
func (m *Metrics) SetConnectionsOpen(n int) {
	if m == nil {
		return
	}
	m.ConnectionsOpen.Set(float64(n))
}

// Null returns nil, which acts as a no-op collector: every Metrics method
// tolerates a nil receiver.
func Null() *Metrics {
	return nil
}
