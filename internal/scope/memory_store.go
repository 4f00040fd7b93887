package scope

import (
	"context"
	"time"

	"HealthAssistant/internal/entity"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultMaxScopes = 10000

type memoryStore struct {
	cache *expirable.LRU[string, entity.History]
}

// NewMemoryStore keeps histories in process memory. Idle scopes expire after
// ttl (zero disables expiry) and the least recently used scope is dropped
// once maxScopes is reached.
func NewMemoryStore(maxScopes int, ttl time.Duration) HistoryStore {
	if maxScopes <= 0 {
		maxScopes = DefaultMaxScopes
	}
	return &memoryStore{
		cache: expirable.NewLRU[string, entity.History](maxScopes, nil, ttl),
	}
}

func (s *memoryStore) Load(_ context.Context, scopeID string) (entity.History, error) {
	h, ok := s.cache.Get(scopeID)
	if !ok {
		return entity.History{}, nil
	}
	return h.Clone(), nil
}

func (s *memoryStore) Append(_ context.Context, scopeID string, turns ...entity.Turn) error {
	h, _ := s.cache.Get(scopeID)
	s.cache.Add(scopeID, h.With(turns...))
	return nil
}

func (s *memoryStore) Clear(_ context.Context, scopeID string) error {
	s.cache.Remove(scopeID)
	return nil
}
