package storage

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/store-assistant-bot/internal/domain/constants"
	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
)

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
	timeout  time.Duration
}

// NewMemorySessionStore creates an in-memory session store with the
// standard idle timeout.
func NewMemorySessionStore() repository.SessionRepository {
	return NewMemorySessionStoreWithTimeout(constants.SessionTimeout)
}

// NewMemorySessionStoreWithTimeout allows tests to shrink the idle timeout.
func NewMemorySessionStoreWithTimeout(timeout time.Duration) repository.SessionRepository {
	return &memorySessionStore{
		sessions: make(map[string]*entity.Session),
		timeout:  timeout,
	}
}

func (m *memorySessionStore) Create(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.New().String())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session, nil
}

func (m *memorySessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

func (m *memorySessionStore) SweepExpired(ctx context.Context) int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if now.Sub(session.LastActive) > m.timeout {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Очищено %d истёкших сессий", removed)
	}
	return removed
}
