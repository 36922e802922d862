package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the realtime service instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	ConnectedSessions prometheus.Gauge
	OpenRooms         prometheus.Gauge
	MessagesRelayed   prometheus.Counter
	SignalsForwarded  *prometheus.CounterVec
	CallErrors        prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ConnectedSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "realtime_connected_sessions",
			Help: "Currently connected websocket sessions.",
		}),
		OpenRooms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "realtime_open_rooms",
			Help: "Exchange rooms with at least one member.",
		}),
		MessagesRelayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "realtime_messages_relayed_total",
			Help: "Chat messages persisted and broadcast.",
		}),
		SignalsForwarded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_signals_forwarded_total",
			Help: "Call signaling frames forwarded, by event.",
		}, []string{"event"}),
		CallErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "realtime_call_errors_total",
			Help: "Signaling frames dropped because the peer was unreachable.",
		}),
	}
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
