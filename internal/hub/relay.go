package hub

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/skillswap/realtime-service/internal/events"
	"github.com/skillswap/realtime-service/internal/metrics"
	"github.com/skillswap/realtime-service/internal/models"
	"github.com/skillswap/realtime-service/internal/wire"
)

// ExchangeStore is the persistence surface the relay depends on. The append
// must re-check the exchange status atomically with the write.
type ExchangeStore interface {
	AppendMessage(ctx context.Context, id string, msg models.Message) (*models.Exchange, error)
}

// DisplayLookup resolves sender display attributes for broadcast enrichment.
type DisplayLookup interface {
	UserDisplay(ctx context.Context, id string) (models.UserDisplay, error)
}

// EventPublisher feeds the notification pipeline after a successful append.
type EventPublisher interface {
	MessageSent(ctx context.Context, ev events.MessageSent) error
}

// Relay persists inbound chat messages and broadcasts them to the exchange
// room. Sends are fire-and-forget from the client's point of view: every
// failure here is logged and swallowed, never surfaced as an error frame.
type Relay struct {
	store   ExchangeStore
	users   DisplayLookup
	rooms   *Rooms
	events  EventPublisher
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewRelay(store ExchangeStore, users DisplayLookup, rooms *Rooms, pub EventPublisher, m *metrics.Metrics, log *zap.SugaredLogger) *Relay {
	return &Relay{
		store:   store,
		users:   users,
		rooms:   rooms,
		events:  pub,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// SendMessage appends one message to the exchange and broadcasts the stored
// copy to the room. The relay is the authoritative gate: a send against a
// missing or non-active exchange is dropped silently, since stale client
// views can still emit after the other party completed the exchange.
func (r *Relay) SendMessage(ctx context.Context, exchangeID, senderID, text string) {
	if text == "" {
		r.log.Debugw("dropping empty message", "exchange", exchangeID, "sender", senderID)
		return
	}
	senderOID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		r.log.Warnw("dropping message with malformed sender id", "exchange", exchangeID, "sender", senderID)
		return
	}

	msg := models.Message{
		Sender:    senderOID,
		Text:      text,
		Timestamp: r.now().UTC(),
	}
	ex, err := r.store.AppendMessage(ctx, exchangeID, msg)
	if err != nil {
		r.log.Warnw("message append rejected", "exchange", exchangeID, "sender", senderID, "err", err)
		return
	}

	sender := wire.Sender{ID: senderID}
	if display, err := r.users.UserDisplay(ctx, senderID); err == nil {
		sender.Name = display.Name
		sender.Avatar = display.Avatar
	} else {
		r.log.Debugw("sender display lookup failed", "sender", senderID, "err", err)
	}

	frame, err := wire.NewEnvelope(wire.EventNewMessage, wire.NewMessage{
		Sender:     sender,
		Text:       msg.Text,
		Timestamp:  msg.Timestamp,
		ExchangeID: exchangeID,
	})
	if err != nil {
		r.log.Errorw("encoding newMessage frame", "exchange", exchangeID, "err", err)
		return
	}
	r.rooms.Broadcast(exchangeID, frame)
	r.metrics.MessagesRelayed.Inc()

	ev := events.MessageSent{
		ExchangeID:  exchangeID,
		SenderID:    senderID,
		RecipientID: ex.Counterpart(senderOID).Hex(),
		Timestamp:   msg.Timestamp,
	}
	if err := r.events.MessageSent(ctx, ev); err != nil {
		r.log.Warnw("publishing message.sent event", "exchange", exchangeID, "err", err)
	}
}
