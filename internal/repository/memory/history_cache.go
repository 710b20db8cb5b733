package memory

import (
	"time"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// HistoryCache keeps each user's chat list hot between history reads. Any
// write touching the user's chats must invalidate their entry.
type HistoryCache struct {
	cache *cache.Cache
}

func NewHistoryCache() *HistoryCache {
	// Short TTL; the cache only has to absorb bursts of history polling.
	c := cache.New(30*time.Second, 5*time.Minute)
	return &HistoryCache{
		cache: c,
	}
}

func (r *HistoryCache) Get(userId uuid.UUID) ([]*entity.Chat, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.([]*entity.Chat), true
	}
	return nil, false
}

func (r *HistoryCache) Set(userId uuid.UUID, chats []*entity.Chat) {
	r.cache.Set(userId.String(), chats, cache.DefaultExpiration)
}

func (r *HistoryCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
