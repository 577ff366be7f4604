package config

import (
	"testing"
	"time"
)

func TestLoadRegistryDefaults(t *testing.T) {
	cfg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %s", cfg.ListenAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.EventsChannel != "airports:events" {
		t.Fatalf("unexpected events channel: %s", cfg.EventsChannel)
	}
	if cfg.RedisURL != "" || cfg.DatabaseURL != "" {
		t.Fatalf("side channels should be disabled by default: %#v", cfg)
	}
	if !cfg.SeedLegacyKeys {
		t.Fatalf("legacy seed keys should be on by default")
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
}

func TestLoadRegistryEnvOverrides(t *testing.T) {
	t.Setenv("AIRPORTS_LISTEN_ADDR", ":9090")
	t.Setenv("AIRPORTS_SEED_LEGACY_KEYS", "false")
	t.Setenv("AIRPORTS_REQUEST_TIMEOUT", "1m30s")
	t.Setenv("AIRPORTS_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("unexpected listen addr: %s", cfg.ListenAddr)
	}
	if cfg.SeedLegacyKeys {
		t.Fatalf("expected legacy seed keys disabled from env")
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Fatalf("unexpected redis url: %s", cfg.RedisURL)
	}
}
