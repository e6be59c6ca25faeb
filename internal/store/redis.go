package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtmetrics/gavel/internal/domain"
)

// RedisStore implements domain.Store using Redis, the drop-in backend
// for offices already holding their datasets in a hosted KV namespace.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// SaveDataset writes the document and stamps the last-updated marker in
// one pipeline, so the marker can never lag a visible save.
func (s *RedisStore) SaveDataset(ctx context.Context, key string, data []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.makeKey(key), data, 0)
	pipe.Set(ctx, s.makeKey(domain.KeyLastUpdated), time.Now().UTC().Format(time.RFC3339), 0)
	_, err := pipe.Exec(ctx)
	return err
}

// LoadDataset retrieves a document, (nil, nil) when the key is unset.
func (s *RedisStore) LoadDataset(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.makeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// LastUpdated reads the last-updated marker, zero time when unset.
func (s *RedisStore) LastUpdated(ctx context.Context) (time.Time, error) {
	val, err := s.client.Get(ctx, s.makeKey(domain.KeyLastUpdated)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad last-updated marker: %w", err)
	}
	return t, nil
}

// Ping checks Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) makeKey(key string) string {
	return "gavel:" + key
}
