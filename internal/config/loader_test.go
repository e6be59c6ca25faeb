package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("default driver = %q, want memory", cfg.Store.Driver)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GAVEL_SERVER_PORT", "9090")
	t.Setenv("GAVEL_STORE_DRIVER", "sqlite")
	t.Setenv("GAVEL_STORE_SQLITE_PATH", "/tmp/gavel.db")
	t.Setenv("GAVEL_AUTH_PASSWORD", "segredo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Store.Driver)
	}
	if cfg.Store.SQLitePath != "/tmp/gavel.db" {
		t.Errorf("sqlite path = %q", cfg.Store.SQLitePath)
	}
	if cfg.Auth.Password != "segredo" {
		t.Errorf("password = %q", cfg.Auth.Password)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gavel.yaml")
	body := "server:\n  port: 7000\nstore:\n  driver: redis\n  redis_addr: localhost:6379\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GAVEL_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Store.Driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg.Store.Driver)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gavel.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GAVEL_CONFIG", path)
	t.Setenv("GAVEL_SERVER_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("port = %d, want 7001", cfg.Server.Port)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("GAVEL_SERVER_PORT", "99999")
	if _, err := Load(); err == nil {
		t.Error("expected error for out of range port")
	}

	t.Setenv("GAVEL_SERVER_PORT", "8080")
	t.Setenv("GAVEL_STORE_DRIVER", "cassandra")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown driver")
	}
}
