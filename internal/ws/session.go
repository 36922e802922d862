package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/skillswap/realtime-service/internal/wire"
)

// session is the websocket-backed implementation of hub.Session. The read
// loop runs in the upgrade handler's goroutine; the write pump serializes
// all outbound frames for the connection.
type session struct {
	id   string
	g    *Gateway
	conn *websocket.Conn

	send chan wire.Envelope
	done chan struct{}
	once sync.Once

	mu     sync.RWMutex
	userID string
}

func newSession(conn *websocket.Conn, g *Gateway) *session {
	return &session{
		id:   uuid.NewString(),
		g:    g,
		conn: conn,
		send: make(chan wire.Envelope, g.cfg.WS.SendBuffer),
		done: make(chan struct{}),
	}
}

func (s *session) ID() string { return s.id }

func (s *session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *session) setUserID(id string) {
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
}

// Send enqueues a frame, dropping it when the buffer is full or the session
// is shutting down. At-most-once delivery: never block the caller.
func (s *session) Send(frame wire.Envelope) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

func (s *session) close() {
	s.once.Do(func() { close(s.done) })
}

// readLoop consumes inbound frames until the transport fails, then runs the
// lifecycle cleanup: the session leaves the presence directory and all rooms.
func (s *session) readLoop() {
	defer func() {
		s.g.presence.Unregister(s)
		s.g.rooms.Drop(s)
		s.close()
		_ = s.conn.Close()
		s.g.metrics.ConnectedSessions.Dec()
	}()

	s.conn.SetReadLimit(s.g.cfg.WS.MaxMessageSizeBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.g.cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.g.cfg.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.g.log.Debugw("read loop ended", "session", s.id, "err", err)
			return
		}
		var env wire.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			// Undecodable frame: treat as a broken transport and hang up.
			s.g.log.Warnw("malformed frame, closing", "session", s.id, "err", err)
			return
		}
		s.dispatch(env)
	}
}

func (s *session) dispatch(env wire.Envelope) {
	ctx := context.Background()

	switch env.Event {
	case wire.EventRegisterUser:
		var p wire.RegisterUser
		if !s.bind(env, &p) || p.UserID == "" {
			return
		}
		s.setUserID(p.UserID)
		s.g.presence.Register(p.UserID, s)
		s.g.log.Infow("user registered", "session", s.id, "user", p.UserID)

	case wire.EventJoinExchangeRoom:
		var p wire.JoinExchangeRoom
		if !s.bind(env, &p) || p.ExchangeID == "" {
			return
		}
		s.g.rooms.Join(p.ExchangeID, s)

	case wire.EventSendMessage:
		var p wire.SendMessage
		if !s.bind(env, &p) {
			return
		}
		s.g.relay.SendMessage(ctx, p.ExchangeID, p.SenderID, p.Text)

	case wire.EventCallRequest:
		var p wire.CallRequest
		if s.bind(env, &p) {
			s.g.signaler.CallRequest(s, p)
		}

	case wire.EventCallAccept:
		var p wire.CallAccepted
		if s.bind(env, &p) {
			s.g.signaler.CallAccept(s, p)
		}

	case wire.EventCallDecline:
		var p wire.CallDeclined
		if s.bind(env, &p) {
			s.g.signaler.CallDecline(s, p)
		}

	case wire.EventOffer:
		var p wire.Offer
		if s.bind(env, &p) {
			s.g.signaler.Offer(s, p)
		}

	case wire.EventAnswer:
		var p wire.Answer
		if s.bind(env, &p) {
			s.g.signaler.Answer(s, p)
		}

	case wire.EventICECandidate:
		var p wire.ICECandidate
		if s.bind(env, &p) {
			s.g.signaler.ICECandidate(s, p)
		}

	case wire.EventEndCall:
		var p wire.EndCall
		if s.bind(env, &p) {
			s.g.signaler.EndCall(s, p)
		}

	default:
		s.g.log.Debugw("unknown event", "session", s.id, "event", env.Event)
	}
}

func (s *session) bind(env wire.Envelope, v any) bool {
	if err := json.Unmarshal(env.Data, v); err != nil {
		s.g.log.Warnw("dropping frame with bad payload", "session", s.id, "event", env.Event, "err", err)
		return false
	}
	return true
}

func (s *session) writePump() {
	ticker := time.NewTicker(s.g.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.g.cfg.WriteDeadline))
			if err := s.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.g.cfg.WriteDeadline))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
			return
		}
	}
}
