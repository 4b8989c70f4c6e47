package prefs

import (
	"context"
	"sync"
)

// MemoryProvider keeps preferences in process memory
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryProvider creates an empty in-memory provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string]map[string]string)}
}

// Store returns the store of clientID
func (p *MemoryProvider) Store(clientID string) Store {
	return &memoryStore{p: p, clientID: clientID}
}

// Close is a no-op
func (p *MemoryProvider) Close() error {
	return nil
}

type memoryStore struct {
	p        *MemoryProvider
	clientID string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.p.mu.RLock()
	defer s.p.mu.RUnlock()
	v, ok := s.p.data[s.clientID][key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	values, ok := s.p.data[s.clientID]
	if !ok {
		values = make(map[string]string)
		s.p.data[s.clientID] = values
	}
	values[key] = value
	return nil
}
