package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/screen"
)

// Manager runs screen actions against stored session states.
// Actions on one session are serialized; different sessions run independently.
type Manager struct {
	store  Store
	screen screen.Service

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager creates a Manager.
func NewManager(store Store, screenService screen.Service) *Manager {
	return &Manager{
		store:  store,
		screen: screenService,
		locks:  make(map[string]*sessionLock),
	}
}

// Do loads the state for id (creating and initially fetching it if absent),
// applies fn, saves the result and returns a copy of it.
// A nil fn only loads the state.
func (m *Manager) Do(ctx context.Context, id string, fn func(ctx context.Context, st *screen.State)) (*screen.State, error) {
	unlock := m.lock(id)
	defer unlock()

	ctx = activity.WithSession(ctx, id)

	st, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		st = screen.NewState()
	}

	m.screen.Init(ctx, st)
	if fn != nil {
		fn(ctx, st)
	}

	if err := m.store.Save(ctx, id, st); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return st.Clone(), nil
}

// Discard removes the stored state for id.
func (m *Manager) Discard(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	return m.store.Delete(ctx, id)
}

// lock acquires the per-session mutex, dropping its map entry once unused.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
