package fsm

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore constructs an in-memory Store. Sessions do not survive a
// process restart, which is acceptable: losing one mid-dialog only forces
// the user to start the workflow again.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[int64]*Session)}
}

func (m *memoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return session.clone(), nil
}

func (m *memoryStore) Set(_ context.Context, userID int64, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = session.clone()
	return nil
}

func (m *memoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[int64]*Session)
	return nil
}
