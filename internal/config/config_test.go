package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppPort != 8080 || cfg.LogLevel != "info" || !cfg.SeedCatalog {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ListCacheTTL != 30*time.Second || cfg.RedisURL != "" {
		t.Fatalf("unexpected cache defaults: %+v", cfg)
	}
	if cfg.RateLimit != (RateLimitConfig{Requests: 30, Window: time.Minute, Burst: 10}) {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Snapshots.Enabled() {
		t.Fatal("snapshots should be disabled without a bucket")
	}
	if cfg.Snapshots.Region != "us-east-1" || cfg.Snapshots.Prefix != "snapshots" || cfg.Snapshots.Workers != 1 || cfg.Snapshots.QueueSize != 16 || cfg.Snapshots.Retain != 100 {
		t.Fatalf("unexpected snapshot defaults: %+v", cfg.Snapshots)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHORTFLIX_PORT", "9090")
	t.Setenv("SHORTFLIX_SEED", "false")
	t.Setenv("SHORTFLIX_LIST_CACHE_TTL", "5s")
	t.Setenv("SHORTFLIX_RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("SHORTFLIX_SNAPSHOT_BUCKET", "catalog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Fatalf("expected port 9090 got %d", cfg.AppPort)
	}
	if cfg.SeedCatalog {
		t.Fatal("expected seeding disabled")
	}
	if cfg.ListCacheTTL != 5*time.Second {
		t.Fatalf("expected 5s ttl got %s", cfg.ListCacheTTL)
	}
	if cfg.RateLimit.Burst != 10 {
		t.Fatalf("expected fallback burst got %d", cfg.RateLimit.Burst)
	}
	if !cfg.Snapshots.Enabled() {
		t.Fatal("expected snapshots enabled")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SHORTFLIX_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv sets process variables directly; restore them when the test ends.
	t.Setenv("SHORTFLIX_LOG_LEVEL", "")
	os.Unsetenv("SHORTFLIX_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level from .env got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHORTFLIX_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
