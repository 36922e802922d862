package hub

import (
	"go.uber.org/zap"

	"github.com/skillswap/realtime-service/internal/metrics"
	"github.com/skillswap/realtime-service/internal/wire"
)

// Signaler forwards call-setup frames between identified users via the
// presence directory. It holds no call state and does not validate frame
// order; WebRTC negotiation tolerates reordering and the client UI enforces
// legality. When the target is not registered, the local sender gets a
// single call-error frame and nothing is forwarded.
type Signaler struct {
	presence *Presence
	metrics  *metrics.Metrics
	log      *zap.SugaredLogger
}

func NewSignaler(presence *Presence, m *metrics.Metrics, log *zap.SugaredLogger) *Signaler {
	return &Signaler{presence: presence, metrics: m, log: log}
}

func (s *Signaler) CallRequest(from Session, req wire.CallRequest) {
	s.deliver(from, req.To, wire.EventIncomingCall, wire.IncomingCall{
		From:       req.From,
		ExchangeID: req.ExchangeID,
	})
}

func (s *Signaler) CallAccept(from Session, p wire.CallAccepted) {
	s.deliver(from, p.To, wire.EventCallAccepted, p)
}

func (s *Signaler) CallDecline(from Session, p wire.CallDeclined) {
	s.deliver(from, p.To, wire.EventCallDeclined, p)
}

func (s *Signaler) Offer(from Session, p wire.Offer) {
	s.deliver(from, p.To, wire.EventOffer, p)
}

func (s *Signaler) Answer(from Session, p wire.Answer) {
	s.deliver(from, p.To, wire.EventAnswer, p)
}

func (s *Signaler) ICECandidate(from Session, p wire.ICECandidate) {
	s.deliver(from, p.To, wire.EventICECandidate, p)
}

func (s *Signaler) EndCall(from Session, p wire.EndCall) {
	s.deliver(from, p.To, wire.EventCallEnded, p)
}

func (s *Signaler) deliver(from Session, to, event string, payload any) {
	target, ok := s.presence.Lookup(to)
	if !ok {
		s.metrics.CallErrors.Inc()
		s.log.Infow("signaling target unreachable", "event", event, "from", from.UserID(), "to", to)
		errFrame, err := wire.NewEnvelope(wire.EventCallError, wire.CallError{
			Message: "user " + to + " is not connected",
		})
		if err == nil {
			_ = from.Send(errFrame)
		}
		return
	}

	frame, err := wire.NewEnvelope(event, payload)
	if err != nil {
		s.log.Errorw("encoding signaling frame", "event", event, "err", err)
		return
	}
	if target.Send(frame) {
		s.metrics.SignalsForwarded.WithLabelValues(event).Inc()
	} else {
		s.log.Debugw("signaling frame dropped, slow consumer", "event", event, "to", to)
	}
}
