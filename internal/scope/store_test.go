package scope

import (
	"context"
	"errors"
	"testing"
	"time"

	"HealthAssistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, 0)

	require.NoError(t, s.Append(ctx, "a", turn(entity.SenderUser, "hi")))

	h, err := s.Load(ctx, "a")
	require.NoError(t, err)
	h[0].Message = "mutated"

	again, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "hi", again[0].Message)
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, 30*time.Millisecond)

	require.NoError(t, s.Append(ctx, "a", turn(entity.SenderUser, "hi")))

	assert.Eventually(t, func() bool {
		h, err := s.Load(ctx, "a")
		return err == nil && len(h) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, 0)

	require.NoError(t, s.Append(ctx, "a", turn(entity.SenderUser, "1")))
	require.NoError(t, s.Append(ctx, "b", turn(entity.SenderUser, "2")))
	require.NoError(t, s.Append(ctx, "c", turn(entity.SenderUser, "3")))

	h, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, h)

	h, err = s.Load(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

type fakeRedis struct {
	lists  map[string][][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{lists: map[string][][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) AppendList(_ context.Context, key string, values [][]byte, exp time.Duration) error {
	f.lists[key] = append(f.lists[key], values...)
	f.ttls[key] = exp
	return nil
}

func (f *fakeRedis) GetList(_ context.Context, key string) ([][]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.lists[key], nil
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	delete(f.lists, key)
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return nil }
func (f *fakeRedis) Close() error               { return nil }

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fr := newFakeRedis()
	s := NewRedisStore(fr, time.Hour)

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Append(ctx, "sess",
		entity.Turn{Sender: entity.SenderUser, Message: "fever?", CreatedAt: at},
		entity.Turn{Sender: entity.SenderBot, Message: "rest", CreatedAt: at},
	))

	assert.Contains(t, fr.lists, "chat:history:sess")
	assert.Equal(t, time.Hour, fr.ttls["chat:history:sess"])

	h, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, entity.SenderBot, h[1].Sender)
	assert.Equal(t, "rest", h[1].Message)
	assert.True(t, at.Equal(h[0].CreatedAt))

	require.NoError(t, s.Clear(ctx, "sess"))
	h, err = s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	fr := newFakeRedis()
	fr.getErr = errors.New("connection refused")
	s := NewRedisStore(fr, time.Hour)

	_, err := s.Load(ctx, "x")
	assert.ErrorIs(t, err, fr.getErr)

	fr.getErr = nil
	fr.lists["chat:history:bad"] = [][]byte{[]byte("{not json")}
	_, err = s.Load(ctx, "bad")
	assert.Error(t, err)
}
