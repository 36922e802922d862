package hub_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/skillswap/realtime-service/internal/events"
	"github.com/skillswap/realtime-service/internal/models"
	"github.com/skillswap/realtime-service/internal/wire"
)

// fakeSession records every frame the hub sends to it.
type fakeSession struct {
	id     string
	userID string
	full   bool // simulates a consumer whose send buffer is saturated

	mu     sync.Mutex
	frames []wire.Envelope
}

func newFakeSession(id, userID string) *fakeSession {
	return &fakeSession{id: id, userID: userID}
}

func (f *fakeSession) ID() string     { return f.id }
func (f *fakeSession) UserID() string { return f.userID }

func (f *fakeSession) Send(frame wire.Envelope) bool {
	if f.full {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
	return true
}

func (f *fakeSession) Frames() []wire.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]wire.Envelope, len(f.frames))
	copy(out, f.frames)
	return out
}

func (f *fakeSession) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, fr := range f.frames {
		names = append(names, fr.Event)
	}
	return names
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AppendMessage(ctx context.Context, id string, msg models.Message) (*models.Exchange, error) {
	args := m.Called(ctx, id, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exchange), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) UserDisplay(ctx context.Context, id string) (models.UserDisplay, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UserDisplay), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) MessageSent(ctx context.Context, ev events.MessageSent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
