package session

import (
	"context"
	"sync"
	"time"

	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// MemoryStore is an in-process SessionStore. Expired entries are reaped
// lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	identity  ports.Identity
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, identity ports.Identity, ttl time.Duration) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memorySession{identity: identity, expiresAt: s.now().Add(ttl)}
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*ports.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	identity := sess.identity
	return &identity, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
