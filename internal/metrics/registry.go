package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics for the recorder. Every record
// method is safe to call on a nil *Registry, so instrumentation can be
// disabled by simply not constructing one.
type Registry struct {
	reg *prometheus.Registry

	frames         prometheus.Counter
	updates        *prometheus.CounterVec
	recordsWritten prometheus.Counter
	reconnects     prometheus.Counter
	heartbeats     prometheus.Counter
	decodeErrors   prometheus.Counter
	connectionUp   prometheus.Gauge
	netLatency     prometheus.Histogram
}

// NewRegistry creates a registry with all recorder metrics. Metrics live in
// a private Prometheus registry rather than the global default one, so
// multiple registries can coexist in one process.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_frames_total",
			Help: "Raw frames received from the feed",
		}),

		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recorder_updates_total",
			Help: "Updates extracted from feed frames",
		}, []string{"event_type"}),

		recordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_records_written_total",
			Help: "Book records appended to the CSV sink",
		}),

		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_reconnects_total",
			Help: "Reconnect attempts after a dropped connection",
		}),

		heartbeats: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_heartbeats_total",
			Help: "Idle heartbeats while waiting for frames",
		}),

		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_decode_errors_total",
			Help: "Frames dropped because they did not decode",
		}),

		connectionUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recorder_connection_up",
			Help: "1 while the feed connection is established",
		}),

		netLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recorder_net_latency_ms",
			Help:    "Exchange timestamp to local receive latency in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
	}

	r.reg.MustRegister(
		r.frames,
		r.updates,
		r.recordsWritten,
		r.reconnects,
		r.heartbeats,
		r.decodeErrors,
		r.connectionUp,
		r.netLatency,
	)

	return r
}

// FrameReceived counts one raw frame.
func (r *Registry) FrameReceived() {
	if r == nil {
		return
	}
	r.frames.Inc()
}

// UpdateProcessed counts one update by event type.
func (r *Registry) UpdateProcessed(eventType string) {
	if r == nil {
		return
	}
	r.updates.WithLabelValues(eventType).Inc()
}

// RecordWritten counts one persisted record.
func (r *Registry) RecordWritten() {
	if r == nil {
		return
	}
	r.recordsWritten.Inc()
}

// Reconnect counts one reconnect attempt.
func (r *Registry) Reconnect() {
	if r == nil {
		return
	}
	r.reconnects.Inc()
}

// Heartbeat counts one idle heartbeat.
func (r *Registry) Heartbeat() {
	if r == nil {
		return
	}
	r.heartbeats.Inc()
}

// DecodeError counts one undecodable frame.
func (r *Registry) DecodeError() {
	if r == nil {
		return
	}
	r.decodeErrors.Inc()
}

// SetConnectionUp flips the connection gauge.
func (r *Registry) SetConnectionUp(up bool) {
	if r == nil {
		return
	}
	if up {
		r.connectionUp.Set(1)
	} else {
		r.connectionUp.Set(0)
	}
}

// ObserveNetLatency records one network latency sample in milliseconds.
func (r *Registry) ObserveNetLatency(ms float64) {
	if r == nil {
		return
	}
	r.netLatency.Observe(ms)
}

// Handler serves the registry in Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
