package hub_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/realtime-service/internal/hub"
	"github.com/skillswap/realtime-service/internal/metrics"
	"github.com/skillswap/realtime-service/internal/wire"
)

func testFrame(t *testing.T) wire.Envelope {
	t.Helper()
	frame, err := wire.NewEnvelope(wire.EventNewMessage, wire.NewMessage{Text: "hi"})
	require.NoError(t, err)
	return frame
}

func TestRoomsBroadcastIncludesSender(t *testing.T) {
	r := hub.NewRooms(metrics.New())
	a := newFakeSession("conn-a", "alice")
	b := newFakeSession("conn-b", "bob")
	r.Join("ex1", a)
	r.Join("ex1", b)

	r.Broadcast("ex1", testFrame(t))

	assert.Len(t, a.Frames(), 1)
	assert.Len(t, b.Frames(), 1)
}

func TestRoomsJoinIdempotent(t *testing.T) {
	r := hub.NewRooms(metrics.New())
	a := newFakeSession("conn-a", "alice")
	r.Join("ex1", a)
	r.Join("ex1", a)

	r.Broadcast("ex1", testFrame(t))

	assert.Len(t, a.Frames(), 1)
}

func TestRoomsBroadcastScopedToRoom(t *testing.T) {
	r := hub.NewRooms(metrics.New())
	a := newFakeSession("conn-a", "alice")
	b := newFakeSession("conn-b", "bob")
	r.Join("ex1", a)
	r.Join("ex2", b)

	r.Broadcast("ex1", testFrame(t))

	assert.Len(t, a.Frames(), 1)
	assert.Empty(t, b.Frames())
}

func TestRoomsBroadcastToEmptyRoom(t *testing.T) {
	r := hub.NewRooms(metrics.New())
	r.Broadcast("nope", testFrame(t)) // no members, no panic
}

func TestRoomsDrop(t *testing.T) {
	m := metrics.New()
	r := hub.NewRooms(m)
	a := newFakeSession("conn-a", "alice")
	b := newFakeSession("conn-b", "bob")
	r.Join("ex1", a)
	r.Join("ex2", a)
	r.Join("ex2", b)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OpenRooms))

	r.Drop(a)
	r.Broadcast("ex1", testFrame(t))
	r.Broadcast("ex2", testFrame(t))

	assert.Empty(t, a.Frames())
	assert.Len(t, b.Frames(), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenRooms))
}
