package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPostEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	evt := NewPostEvent(PostPublished, "p1", "Hello", "published", "", at)
	assert.Equal(t, PostPublished, evt.EventType())
	assert.Equal(t, at, evt.Timestamp())
	assert.Equal(t, "p1", evt.Payload()["post_id"])
	assert.NotContains(t, evt.Payload(), "author_id")

	evt = NewPostEvent(PostCreated, "p2", "", "draft", "u1", at)
	assert.Equal(t, "u1", evt.Payload()["author_id"])
}

func TestIsPostEvent(t *testing.T) {
	for _, typ := range []string{PostCreated, PostUpdated, PostPublished, PostDeleted} {
		assert.True(t, IsPostEvent(typ), typ)
	}
	assert.False(t, IsPostEvent("NOTE_CREATED"))
	assert.False(t, IsPostEvent(""))
}
