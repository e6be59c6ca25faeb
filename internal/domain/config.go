package domain

// Config holds the complete Gavel configuration. Tags feed the koanf
// loader, so every field can come from YAML or a GAVEL_ env var.
type Config struct {
	// Server settings
	Server ServerConfig `koanf:"server"`

	// Store backend
	Store StoreConfig `koanf:"store"`

	// Auth secrets
	Auth AuthConfig `koanf:"auth"`

	// Observability
	Logging LoggingConfig `koanf:"logging"`
	Tracing TracingConfig `koanf:"tracing"`

	// Alert engine settings
	Alerts AlertsConfig `koanf:"alerts"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	ReadTimeout  int    `koanf:"read_timeout"`  // seconds
	WriteTimeout int    `koanf:"write_timeout"` // seconds
}

// AuthConfig holds the dashboard credentials. Password gates the login
// endpoint; Key, when set, must accompany every mutating request.
type AuthConfig struct {
	Password string `koanf:"password"`
	Key      string `koanf:"key"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
}

// AlertsConfig holds alert engine settings.
type AlertsConfig struct {
	// Workers caps concurrent rule evaluation. Zero selects the
	// built-in default.
	Workers int `koanf:"workers"`
}

// DefaultConfig returns the single-office default: in-memory store, no
// auth, JSON logs.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Store: StoreConfig{
			Driver:     "memory",
			SQLitePath: "./gavel.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "gavel",
		},
	}
}
