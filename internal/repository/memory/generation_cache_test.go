package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerationCache(t *testing.T) {
	c := NewGenerationCache(time.Minute)

	_, ok := c.Get("summarize", "text")
	assert.False(t, ok)

	c.Save("summarize", "text", "short")
	got, ok := c.Get("summarize", "text")
	assert.True(t, ok)
	assert.Equal(t, "short", got)

	_, ok = c.Get("expand", "text")
	assert.False(t, ok, "keyed by action")
	assert.Equal(t, 1, c.ItemCount())
}

func TestGenerationCacheExpires(t *testing.T) {
	c := NewGenerationCache(10 * time.Millisecond)
	c.Save("title", "text", "1. Title")
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("title", "text")
	assert.False(t, ok)
}
