package session

import (
	"context"
	"sync"

	"github.com/spec-kit/leave-portal/internal/domain"
)

type memoryEntry struct {
	token string
	user  string
}

// MemoryStore is an in-process Store used in tests and when Redis is not
// configured. Values pass through the same codec as the Redis store so the
// defensive-decode behavior is identical.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	entry := s.entries[id]
	s.mu.RUnlock()
	return domain.Session{Token: entry.token, User: decodeUser(entry.user)}, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{token: token, user: encodeUser(user)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Corrupt overwrites the stored user field verbatim. Test hook for
// simulating the partial corruption the store must tolerate.
func (s *MemoryStore) Corrupt(id, rawUser string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[id]
	entry.user = rawUser
	s.entries[id] = entry
}
