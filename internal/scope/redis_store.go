package scope

import (
	"context"
	"fmt"
	"time"

	"HealthAssistant/internal/entity"
	"HealthAssistant/pkg/redis"
	jsoniter "github.com/json-iterator/go"
)

const historyKeyPrefix = "chat:history:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type redisStore struct {
	client redis.IRedis
	ttl    time.Duration
}

// NewRedisStore keeps each scope's turns in a redis list whose expiry is
// pushed forward on every append, so history lives as long as the session.
func NewRedisStore(client redis.IRedis, ttl time.Duration) HistoryStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func historyKey(scopeID string) string {
	return historyKeyPrefix + scopeID
}

func (s *redisStore) Load(ctx context.Context, scopeID string) (entity.History, error) {
	raw, err := s.client.GetList(ctx, historyKey(scopeID))
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return decodeTurns(raw)
}

func (s *redisStore) Append(ctx context.Context, scopeID string, turns ...entity.Turn) error {
	values, err := encodeTurns(turns)
	if err != nil {
		return err
	}
	if err := s.client.AppendList(ctx, historyKey(scopeID), values, s.ttl); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, scopeID string) error {
	if err := s.client.Delete(ctx, historyKey(scopeID)); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func encodeTurns(turns []entity.Turn) ([][]byte, error) {
	out := make([][]byte, len(turns))
	for i, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encode turn: %w", err)
		}
		out[i] = b
	}
	return out, nil
}

func decodeTurns(raw [][]byte) (entity.History, error) {
	h := make(entity.History, 0, len(raw))
	for _, b := range raw {
		var t entity.Turn
		if err := json.Unmarshal(b, &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		h = append(h, t)
	}
	return h, nil
}
