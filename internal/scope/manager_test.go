package scope

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"HealthAssistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turn(sender entity.Sender, msg string) entity.Turn {
	return entity.Turn{Sender: sender, Message: msg, CreatedAt: time.Now()}
}

func TestManager_AppendAndHistory(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(10, 0))

	err := m.WithScope(ctx, "s1", func(s *Scope) error {
		assert.Empty(t, s.History())
		require.NoError(t, s.Append(ctx, turn(entity.SenderUser, "hi")))
		require.NoError(t, s.Append(ctx, turn(entity.SenderBot, "hello")))
		assert.Len(t, s.History(), 2)
		return nil
	})
	require.NoError(t, err)

	h, err := m.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, entity.SenderUser, h[0].Sender)
	assert.Equal(t, "hello", h[1].Message)
}

func TestManager_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(10, 0))

	require.NoError(t, m.WithScope(ctx, "a", func(s *Scope) error {
		return s.Append(ctx, turn(entity.SenderUser, "only in a"))
	}))

	h, err := m.History(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestManager_ClearResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(10, 0))

	require.NoError(t, m.WithScope(ctx, "s", func(s *Scope) error {
		return s.Append(ctx, turn(entity.SenderUser, "1"), turn(entity.SenderBot, "2"))
	}))
	require.NoError(t, m.Clear(ctx, "s"))

	h, err := m.History(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, h)

	require.NoError(t, m.WithScope(ctx, "s", func(s *Scope) error {
		return s.Append(ctx, turn(entity.SenderUser, "again"), turn(entity.SenderBot, "reply"))
	}))
	h, err = m.History(ctx, "s")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "again", h[0].Message)
}

func TestManager_EmptyScopeID(t *testing.T) {
	m := NewManager(NewMemoryStore(10, 0))

	err := m.WithScope(context.Background(), "", func(*Scope) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyScopeID)
	assert.ErrorIs(t, m.Clear(context.Background(), ""), ErrEmptyScopeID)
}

func TestManager_PropagatesCallbackError(t *testing.T) {
	m := NewManager(NewMemoryStore(10, 0))
	boom := errors.New("boom")

	err := m.WithScope(context.Background(), "s", func(*Scope) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestManager_SerialisesSameScope(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(10, 0))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf("m%d", i)
			_ = m.WithScope(ctx, "shared", func(s *Scope) error {
				if err := s.Append(ctx, turn(entity.SenderUser, msg)); err != nil {
					return err
				}
				time.Sleep(time.Millisecond)
				return s.Append(ctx, turn(entity.SenderBot, "re:"+msg))
			})
		}(i)
	}
	wg.Wait()

	h, err := m.History(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, h, workers*2)
	for i := 0; i < len(h); i += 2 {
		assert.Equal(t, entity.SenderUser, h[i].Sender)
		assert.Equal(t, entity.SenderBot, h[i+1].Sender)
		assert.Equal(t, "re:"+h[i].Message, h[i+1].Message)
	}

	m.mu.Lock()
	assert.Empty(t, m.locks)
	m.mu.Unlock()
}

func TestManager_DifferentScopesRunInParallel(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(10, 0))

	entered := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = m.WithScope(ctx, "slow", func(*Scope) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan struct{})
	go func() {
		_ = m.WithScope(ctx, "fast", func(*Scope) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scope fast was blocked by scope slow")
	}
	close(release)
}

type failingStore struct{ HistoryStore }

func (failingStore) Load(context.Context, string) (entity.History, error) {
	return nil, errors.New("store down")
}

func TestManager_LoadErrorPropagates(t *testing.T) {
	m := NewManager(failingStore{NewMemoryStore(10, 0)})

	called := false
	err := m.WithScope(context.Background(), "s", func(*Scope) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
