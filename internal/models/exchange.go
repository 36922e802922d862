package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exchange statuses. Chat is only permitted while an exchange is active.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDeclined  = "declined"
)

// Message is a single chat message embedded in an exchange document.
// Timestamps are assigned server-side at append time.
type Message struct {
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Text      string             `bson:"text" json:"text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Exchange is a skill-trade session between two users. The realtime service
// only appends to Messages and maintains the last-message fields; everything
// else is owned by the marketplace API.
type Exchange struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Proposer             primitive.ObjectID `bson:"proposer" json:"proposer"`
	Receiver             primitive.ObjectID `bson:"receiver" json:"receiver"`
	Status               string             `bson:"status" json:"status"`
	Messages             []Message          `bson:"messages" json:"messages"`
	LastMessageTimestamp time.Time          `bson:"lastMessageTimestamp,omitempty" json:"lastMessageTimestamp,omitempty"`
	LastMessageSender    primitive.ObjectID `bson:"lastMessageSender,omitempty" json:"lastMessageSender,omitempty"`
	LastSeenByProposer   time.Time          `bson:"lastSeenByProposer,omitempty" json:"lastSeenByProposer,omitempty"`
	LastSeenByReceiver   time.Time          `bson:"lastSeenByReceiver,omitempty" json:"lastSeenByReceiver,omitempty"`
}

// IsActive reports whether chat messages may be appended to the exchange.
func (e *Exchange) IsActive() bool {
	return e.Status == StatusActive
}

// Participant reports whether the given user is one of the two parties.
func (e *Exchange) Participant(userID primitive.ObjectID) bool {
	return e.Proposer == userID || e.Receiver == userID
}

// Counterpart returns the other participant of the exchange. The zero
// ObjectID is returned when userID is not a participant.
func (e *Exchange) Counterpart(userID primitive.ObjectID) primitive.ObjectID {
	switch userID {
	case e.Proposer:
		return e.Receiver
	case e.Receiver:
		return e.Proposer
	}
	return primitive.NilObjectID
}

// UserDisplay is the slice of a user document the relay needs to enrich
// outgoing messages: the sender's name and avatar.
type UserDisplay struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
}
