package ws

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/skillswap/realtime-service/internal/config"
	"github.com/skillswap/realtime-service/internal/hub"
	"github.com/skillswap/realtime-service/internal/metrics"
)

// Gateway owns the hub components and turns accepted websocket connections
// into sessions.
type Gateway struct {
	presence *hub.Presence
	rooms    *hub.Rooms
	relay    *hub.Relay
	signaler *hub.Signaler
	metrics  *metrics.Metrics
	cfg      *config.Config
	log      *zap.SugaredLogger
}

func NewGateway(presence *hub.Presence, rooms *hub.Rooms, relay *hub.Relay, signaler *hub.Signaler, m *metrics.Metrics, cfg *config.Config, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		presence: presence,
		rooms:    rooms,
		relay:    relay,
		signaler: signaler,
		metrics:  m,
		cfg:      cfg,
		log:      log,
	}
}

// Handler is mounted behind the fiber websocket upgrade. It blocks for the
// lifetime of the connection; returning closes it.
func (g *Gateway) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		s := newSession(conn, g)
		g.metrics.ConnectedSessions.Inc()
		g.log.Infow("client connected", "session", s.ID())

		go s.writePump()
		s.readLoop()

		g.log.Infow("client disconnected", "session", s.ID(), "user", s.UserID())
	}
}
