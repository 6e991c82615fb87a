package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the BFF collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	chatReconnects   prometheus.Counter
	chatFrames       *prometheus.CounterVec
	viewEvictions    *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a nil registerer returns nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_upstream_request_duration_seconds",
			Help:    "Duration of requests sent to the storefront backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_upstream_requests_total",
			Help: "Requests sent to the storefront backend by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		chatReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_chat_reconnects_total",
			Help: "Reconnect attempts made by chat clients.",
		}),
		chatFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_chat_frames_total",
			Help: "Inbound chat frames by type.",
		}, []string{"type"}),
		viewEvictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_view_evictions_total",
			Help: "Idle per-user views closed by the sweeper.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.upstreamDuration, m.upstreamTotal, m.chatReconnects, m.chatFrames, m.viewEvictions)
	return m
}

// ObserveUpstream records one backend round trip. code 0 means the request never got a response.
func (m *Metrics) ObserveUpstream(endpoint string, code int, d time.Duration) {
	if m == nil {
		return
	}
	endpoint = normalizeLabel(endpoint)
	m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	m.upstreamTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

func (m *Metrics) IncChatReconnect() {
	if m == nil {
		return
	}
	m.chatReconnects.Inc()
}

func (m *Metrics) IncChatFrame(frameType string) {
	if m == nil {
		return
	}
	m.chatFrames.WithLabelValues(normalizeLabel(frameType)).Inc()
}

func (m *Metrics) IncViewEviction(kind string) {
	if m == nil {
		return
	}
	m.viewEvictions.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
