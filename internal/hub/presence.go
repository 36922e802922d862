package hub

import "sync"

// Presence maps a user identity to its live session. One slot per user:
// a later Register for the same user replaces the earlier session, which
// then stops receiving direct signaling frames.
type Presence struct {
	mu     sync.RWMutex
	byUser map[string]Session
}

func NewPresence() *Presence {
	return &Presence{byUser: make(map[string]Session)}
}

func (p *Presence) Register(userID string, s Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byUser[userID] = s
}

func (p *Presence) Lookup(userID string) (Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.byUser[userID]
	return s, ok
}

// Unregister removes the entry holding this exact session, if any. A session
// that was already replaced by a newer registration is not in the map
// anymore, so its disconnect does not evict the replacement.
func (p *Presence) Unregister(s Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for userID, cur := range p.byUser {
		if cur.ID() == s.ID() {
			delete(p.byUser, userID)
			return
		}
	}
}
