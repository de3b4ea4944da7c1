package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// GenerationCache keeps AI results keyed by action and input text.
type GenerationCache struct {
	cache *cache.Cache
}

func NewGenerationCache(ttl time.Duration) *GenerationCache {
	cleanup := ttl * 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &GenerationCache{
		cache: cache.New(ttl, cleanup),
	}
}

func generationKey(action, text string) string {
	sum := sha256.Sum256([]byte(text))
	return action + ":" + hex.EncodeToString(sum[:])
}

func (r *GenerationCache) Save(action, text, result string) {
	r.cache.Set(generationKey(action, text), result, cache.DefaultExpiration)
}

func (r *GenerationCache) Get(action, text string) (string, bool) {
	if x, found := r.cache.Get(generationKey(action, text)); found {
		return x.(string), true
	}
	return "", false
}

func (r *GenerationCache) ItemCount() int {
	return r.cache.ItemCount()
}
