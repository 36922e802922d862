// Package wire defines the JSON frames exchanged with clients over the
// websocket connection. Event names are part of the public contract and
// must not change.
package wire

import (
	"encoding/json"
	"time"
)

// Client -> server events.
const (
	EventRegisterUser     = "registerUser"
	EventJoinExchangeRoom = "joinExchangeRoom"
	EventSendMessage      = "sendMessage"
	EventCallRequest      = "video-call-request"
	EventCallAccept       = "video-call-accepted"
	EventCallDecline      = "video-call-declined"
	EventOffer            = "webrtc-offer"
	EventAnswer           = "webrtc-answer"
	EventICECandidate     = "webrtc-ice-candidate"
	EventEndCall          = "end-call"
)

// Server -> client events. Offer, answer and ICE frames are relayed under
// their inbound names.
const (
	EventNewMessage   = "newMessage"
	EventIncomingCall = "incoming-video-call"
	EventCallAccepted = "call-accepted"
	EventCallDeclined = "call-declined"
	EventCallEnded    = "call-ended"
	EventCallError    = "call-error"
)

// Envelope is the standard frame format: an event name plus an
// event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope marshals payload into an Envelope for the given event.
func NewEnvelope(event string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: b}, nil
}

type RegisterUser struct {
	UserID string `json:"userId"`
}

type JoinExchangeRoom struct {
	ExchangeID string `json:"exchangeId"`
}

type SendMessage struct {
	ExchangeID string `json:"exchangeId"`
	SenderID   string `json:"senderId"`
	Text       string `json:"text"`
}

// Sender carries the minimal display attributes clients render next to a
// message or an incoming call.
type Sender struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type NewMessage struct {
	Sender     Sender    `json:"sender"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	ExchangeID string    `json:"exchangeId"`
}

type CallRequest struct {
	From       Sender `json:"from"`
	To         string `json:"to"`
	ExchangeID string `json:"exchangeId"`
}

type IncomingCall struct {
	From       Sender `json:"from"`
	ExchangeID string `json:"exchangeId"`
}

type CallAccepted struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type CallDeclined struct {
	To string `json:"to"`
}

// Offer, Answer and ICECandidate wrap opaque WebRTC bodies. The relay never
// inspects them.
type Offer struct {
	Offer json.RawMessage `json:"offer"`
	To    string          `json:"to"`
	From  string          `json:"from,omitempty"`
}

type Answer struct {
	Answer json.RawMessage `json:"answer"`
	To     string          `json:"to"`
	From   string          `json:"from,omitempty"`
}

type ICECandidate struct {
	Candidate json.RawMessage `json:"candidate"`
	To        string          `json:"to"`
	From      string          `json:"from,omitempty"`
}

type EndCall struct {
	To string `json:"to"`
}

type CallError struct {
	Message string `json:"message"`
}
