// Package store provides dataset persistence implementations.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/courtmetrics/gavel/internal/domain"
)

// New creates a store based on configuration. Every backend is wrapped
// so that operations on the same key are serialized.
func New(cfg domain.StoreConfig) (domain.Store, error) {
	var inner domain.Store
	var err error

	switch cfg.Driver {
	case "", "memory":
		inner = NewMemoryStore()
	case "redis":
		inner, err = NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "sqlite", "postgres":
		inner, err = NewSQLStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &lockedStore{inner: inner, locks: map[string]*sync.Mutex{}}, nil
}

// lockedStore serializes saves and loads per key, so a slow save can
// never interleave with a load of the same dataset.
type lockedStore struct {
	inner domain.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *lockedStore) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *lockedStore) SaveDataset(ctx context.Context, key string, data []byte) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()
	return s.inner.SaveDataset(ctx, key, data)
}

func (s *lockedStore) LoadDataset(ctx context.Context, key string) ([]byte, error) {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()
	return s.inner.LoadDataset(ctx, key)
}

func (s *lockedStore) LastUpdated(ctx context.Context) (time.Time, error) {
	return s.inner.LastUpdated(ctx)
}

func (s *lockedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *lockedStore) Close() error {
	return s.inner.Close()
}
