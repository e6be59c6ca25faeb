package domain

import (
	"context"
	"time"
)

// Dataset keys under which the dashboard persists its state. The names
// match the storage keys the court office already uses, so an existing
// KV namespace can be pointed at a Gavel instance unchanged.
const (
	KeyLedger      = "relatorio-padrao-data"
	KeyCases       = "jurimetria-data"
	KeyLastUpdated = "last-updated"
)

// Store defines the interface for dataset persistence. Datasets are
// opaque JSON documents keyed by name; normalization happens above the
// store so every backend holds identical bytes.
type Store interface {
	// SaveDataset replaces the document under key and stamps the
	// last-updated marker.
	SaveDataset(ctx context.Context, key string, data []byte) error

	// LoadDataset returns the document under key, or (nil, nil) when
	// the key has never been written.
	LoadDataset(ctx context.Context, key string) ([]byte, error)

	// LastUpdated returns the timestamp of the most recent save, or
	// the zero time when nothing was ever saved.
	LastUpdated(ctx context.Context) (time.Time, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// StoreConfig holds configuration for store initialization.
type StoreConfig struct {
	// Driver is the backend: "memory", "redis", "sqlite" or "postgres"
	Driver string `koanf:"driver"`

	// SQLite specific
	SQLitePath string `koanf:"sqlite_path"`

	// Redis specific
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// PostgreSQL specific
	PostgresHost     string `koanf:"postgres_host"`
	PostgresPort     int    `koanf:"postgres_port"`
	PostgresUser     string `koanf:"postgres_user"`
	PostgresPassword string `koanf:"postgres_password"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresSSLMode  string `koanf:"postgres_sslmode"`

	// Connection pool settings
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}
