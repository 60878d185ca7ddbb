package session

import (
	"context"
	"encoding/json"
	"sync"

	"sukaikan/internal/cart"
)

// MemoryStore keeps sessions in process. Used when Redis is not configured
// and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	raw, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	s := New()
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	s.ID = id
	if s.Cart == nil {
		s.Cart = cart.Cart{}
	}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[s.ID] = raw
	m.mu.Unlock()
	return nil
}
