package hub

import "github.com/skillswap/realtime-service/internal/wire"

// Session is one live client connection as seen by the hub. The websocket
// layer implements it; tests substitute fakes.
type Session interface {
	// ID is the per-connection id, unique across the process lifetime.
	// Two tabs of the same user hold distinct session ids.
	ID() string
	// UserID is the identity bound by registerUser, empty before that.
	UserID() string
	// Send enqueues a frame for delivery. Delivery is best effort: a slow
	// consumer's frame is dropped and Send reports false.
	Send(frame wire.Envelope) bool
}
