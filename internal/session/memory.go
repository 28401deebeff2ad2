package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	username string
	deadline time.Time
}

// MemoryStore is an in-process session backend. It serves single-node
// deployments without Redis, and the handler tests.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return "", ErrNotFound
	}
	if s.now().After(e.deadline) {
		delete(s.entries, token)
		return "", ErrNotFound
	}
	// rolling expiry
	e.deadline = s.now().Add(s.ttl)
	s.entries[token] = e
	return e.username, nil
}

func (s *MemoryStore) Save(_ context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{username: username, deadline: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
