// Package config loads the Gavel configuration.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/courtmetrics/gavel/internal/domain"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (domain.DefaultConfig)
//  2. file (YAML) if GAVEL_CONFIG is set
//  3. env (prefix GAVEL_)
func Load() (*domain.Config, error) {
	// Start with defaults
	base := domain.DefaultConfig()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GAVEL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: GAVEL_SERVER_PORT, GAVEL_STORE_DRIVER, ...
	// The first underscore separates the section, the rest stay literal
	// to match the koanf tags on the nested structs.
	envProvider := env.Provider("GAVEL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gavel_")
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, errors.New("server port out of range")
	}
	switch cfg.Store.Driver {
	case "", "memory", "redis", "sqlite", "postgres":
	default:
		return nil, errors.New("store driver must be memory, redis, sqlite or postgres")
	}
	return &cfg, nil
}
