package scope

import (
	"context"
	"errors"
	"sync"

	"HealthAssistant/internal/entity"
)

var ErrEmptyScopeID = errors.New("scope id is empty")

// Scope is the conversation state a Manager hands to a caller while it holds
// the scope lock. It must not be retained after the callback returns.
type Scope struct {
	ID      string
	history entity.History
	store   HistoryStore
}

// History returns a copy of the turns recorded so far.
func (s *Scope) History() entity.History {
	return s.history.Clone()
}

// Append records turns in order, after the ones already present.
func (s *Scope) Append(ctx context.Context, turns ...entity.Turn) error {
	if err := s.store.Append(ctx, s.ID, turns...); err != nil {
		return err
	}
	s.history = s.history.With(turns...)
	return nil
}

type IManager interface {
	WithScope(ctx context.Context, scopeID string, fn func(*Scope) error) error
	History(ctx context.Context, scopeID string) (entity.History, error)
	Clear(ctx context.Context, scopeID string) error
}

type scopeLock struct {
	mu   sync.Mutex
	refs int
}

// Manager serialises all work on one scope while letting different scopes
// run in parallel.
type Manager struct {
	store HistoryStore

	mu    sync.Mutex
	locks map[string]*scopeLock
}

func NewManager(store HistoryStore) *Manager {
	return &Manager{
		store: store,
		locks: make(map[string]*scopeLock),
	}
}

func (m *Manager) acquire(scopeID string) *scopeLock {
	m.mu.Lock()
	l, ok := m.locks[scopeID]
	if !ok {
		l = &scopeLock{}
		m.locks[scopeID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return l
}

func (m *Manager) release(scopeID string, l *scopeLock) {
	l.mu.Unlock()

	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, scopeID)
	}
	m.mu.Unlock()
}

// WithScope loads the scope's history and runs fn with exclusive access to it.
func (m *Manager) WithScope(ctx context.Context, scopeID string, fn func(*Scope) error) error {
	if scopeID == "" {
		return ErrEmptyScopeID
	}

	l := m.acquire(scopeID)
	defer m.release(scopeID, l)

	h, err := m.store.Load(ctx, scopeID)
	if err != nil {
		return err
	}

	return fn(&Scope{ID: scopeID, history: h, store: m.store})
}

func (m *Manager) History(ctx context.Context, scopeID string) (entity.History, error) {
	var h entity.History
	err := m.WithScope(ctx, scopeID, func(s *Scope) error {
		h = s.History()
		return nil
	})
	return h, err
}

// Clear resets the scope to an empty history.
func (m *Manager) Clear(ctx context.Context, scopeID string) error {
	if scopeID == "" {
		return ErrEmptyScopeID
	}

	l := m.acquire(scopeID)
	defer m.release(scopeID, l)

	return m.store.Clear(ctx, scopeID)
}
