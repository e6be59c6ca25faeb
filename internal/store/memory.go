package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements domain.Store with an in-process map. The
// single-office default; datasets do not survive a restart.
type MemoryStore struct {
	mu          sync.RWMutex
	data        map[string][]byte
	lastUpdated time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

// SaveDataset stores a copy of the document under key.
func (s *MemoryStore) SaveDataset(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.data[key] = buf
	s.lastUpdated = time.Now().UTC()
	return nil
}

// LoadDataset returns a copy of the document under key, nil when unset.
func (s *MemoryStore) LoadDataset(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// LastUpdated returns the time of the most recent save.
func (s *MemoryStore) LastUpdated(_ context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
