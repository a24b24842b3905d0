// Package metrics records gateway request metrics with Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wopr-network/wopr-go/core"
)

// LLMBuckets defines histogram buckets suited for inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// Outcome label values for failures that carry no gateway status.
const (
	OutcomeOK      = "ok"
	OutcomeNetwork = "network"
	OutcomeDecode  = "decode"
	OutcomeOther   = "error"
)

// TelemetryHook is a core.TelemetryHook that records Prometheus metrics.
// It is safe for concurrent use.
type TelemetryHook struct {
	// RequestsTotal counts completed requests by method, path and outcome.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration records time to response headers in seconds.
	RequestDuration *prometheus.HistogramVec

	// InFlight tracks requests that have started but not completed.
	InFlight prometheus.Gauge
}

// NewTelemetryHook creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default handler.
func NewTelemetryHook(reg prometheus.Registerer) (*TelemetryHook, error) {
	h := &TelemetryHook{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wopr_requests_total",
				Help: "Gateway requests",
			},
			[]string{"method", "path", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wopr_request_duration_seconds",
				Help:    "Gateway request duration",
				Buckets: LLMBuckets,
			},
			[]string{"method", "path"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wopr_requests_in_flight",
				Help: "Gateway requests in flight",
			},
		),
	}

	for _, c := range []prometheus.Collector{h.RequestsTotal, h.RequestDuration, h.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// OnRequestStart increments the in-flight gauge.
func (h *TelemetryHook) OnRequestStart(core.RequestStartEvent) {
	h.InFlight.Inc()
}

// OnRequestEnd records the request outcome and duration.
func (h *TelemetryHook) OnRequestEnd(e core.RequestEndEvent) {
	h.InFlight.Dec()
	h.RequestsTotal.WithLabelValues(e.Method, e.Path, Outcome(e.Err)).Inc()
	h.RequestDuration.WithLabelValues(e.Method, e.Path).Observe(e.Duration().Seconds())
}

// Outcome maps a request error to its outcome label. Classified gateway
// errors use their kind name, e.g. "rate_limit".
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}

	var ce *core.Error
	switch {
	case errors.As(err, &ce):
		return ce.Kind.String()
	case errors.Is(err, core.ErrNetwork):
		return OutcomeNetwork
	case errors.Is(err, core.ErrDecode):
		return OutcomeDecode
	default:
		return OutcomeOther
	}
}

var _ core.TelemetryHook = (*TelemetryHook)(nil)
