package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageSent is published after every successful chat append. The
// notification consumer uses it to drive unread counters and emails; it is
// advisory and not part of the delivery contract.
type MessageSent struct {
	ExchangeID  string    `json:"exchange_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Timestamp   time.Time `json:"timestamp"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: w}
}

func (p *Producer) MessageSent(ctx context.Context, ev MessageSent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ExchangeID),
		Value: b,
		Time:  ev.Timestamp,
	})
}

func (p *Producer) Close() error { return p.writer.Close() }
