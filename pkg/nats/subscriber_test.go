package nats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	evt, err := DecodeEvent("events.POST_PUBLISHED",
		[]byte(`{"post_id":"p1","occurred_at":"2024-05-01T10:00:00Z"}`))
	require.NoError(t, err)

	assert.Equal(t, "POST_PUBLISHED", evt.EventType())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), evt.Timestamp())
	assert.Equal(t, map[string]interface{}{"post_id": "p1"}, evt.Payload())
}

func TestDecodeEventWithoutTimestamp(t *testing.T) {
	before := time.Now()
	evt, err := DecodeEvent("events.POST_DELETED", []byte(`{"post_id":"p1"}`))
	require.NoError(t, err)
	assert.False(t, evt.Timestamp().Before(before))
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	_, err := DecodeEvent("events.POST_DELETED", []byte(`not json`))
	assert.Error(t, err)
}
