package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	raw, err := Marshal(BaseEvent{Type: ChatCreated, Data: map[string]interface{}{"chat_id": "c1"}, OccurredAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"CHAT_CREATED","data":{"chat_id":"c1"},"occurred_at":"2026-05-01T12:00:00Z"}`, string(raw))

	decoded, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, ChatCreated, decoded.EventType())
	assert.True(t, at.Equal(decoded.Timestamp()))
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"data":{}}`))
	assert.Error(t, err)
}
