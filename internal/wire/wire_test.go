package wire_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/realtime-service/internal/wire"
)

func TestClientFrameDecodes(t *testing.T) {
	raw := []byte(`{"event":"sendMessage","data":{"exchangeId":"ex1","senderId":"u1","text":"hi"}}`)

	var env wire.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, wire.EventSendMessage, env.Event)

	var p wire.SendMessage
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "ex1", p.ExchangeID)
	assert.Equal(t, "u1", p.SenderID)
	assert.Equal(t, "hi", p.Text)
}

func TestNewEnvelope(t *testing.T) {
	env, err := wire.NewEnvelope(wire.EventCallError, wire.CallError{Message: "user bob is not connected"})
	require.NoError(t, err)

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"call-error","data":{"message":"user bob is not connected"}}`, string(b))
}

func TestEnvelopeWithoutData(t *testing.T) {
	var env wire.Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"event":"registerUser"}`), &env))

	var p wire.RegisterUser
	assert.Error(t, json.Unmarshal(env.Data, &p))
}
