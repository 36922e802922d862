package hub

import (
	"sync"

	"github.com/skillswap/realtime-service/internal/metrics"
	"github.com/skillswap/realtime-service/internal/wire"
)

// Rooms groups sessions by exchange id for message broadcast. Membership is
// connection-scoped and never persisted; clients rejoin on every reconnect.
type Rooms struct {
	mu      sync.RWMutex
	members map[string]map[string]Session // exchangeID -> sessionID -> session
	metrics *metrics.Metrics
}

func NewRooms(m *metrics.Metrics) *Rooms {
	return &Rooms{members: make(map[string]map[string]Session), metrics: m}
}

// Join adds the session to the exchange's room. Rejoining is a no-op.
func (r *Rooms) Join(exchangeID string, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.members[exchangeID]
	if !ok {
		room = make(map[string]Session)
		r.members[exchangeID] = room
		r.metrics.OpenRooms.Inc()
	}
	room[s.ID()] = s
}

// Drop removes the session from every room it joined. Empty rooms are
// discarded.
func (r *Rooms) Drop(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for exchangeID, room := range r.members {
		if _, ok := room[s.ID()]; !ok {
			continue
		}
		delete(room, s.ID())
		if len(room) == 0 {
			delete(r.members, exchangeID)
			r.metrics.OpenRooms.Dec()
		}
	}
}

// Broadcast delivers the frame to every member of the room, the sender
// included, so all participants observe the canonical server-persisted copy.
func (r *Rooms) Broadcast(exchangeID string, frame wire.Envelope) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.members[exchangeID] {
		_ = s.Send(frame)
	}
}
