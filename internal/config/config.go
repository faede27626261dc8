package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures the runtime configuration for the shortflix backend service.
type Config struct {
	AppPort      int
	LogLevel     string
	SeedCatalog  bool
	ListCacheTTL time.Duration
	RedisURL     string
	RateLimit    RateLimitConfig
	Snapshots    ObjectStoreConfig
}

// RateLimitConfig controls the per-client limiter applied to write endpoints.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// ObjectStoreConfig describes the S3-compatible bucket catalog snapshots are exported to.
type ObjectStoreConfig struct {
	Bucket        string
	Endpoint      string
	Region        string
	PublicBaseURL string
	Prefix        string
	Workers       int
	QueueSize     int
	Retain        int
}

// Enabled reports whether a bucket has been configured.
func (c ObjectStoreConfig) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

// Load reads configuration from environment variables, applying sensible defaults
// for local development. Values from a .env file in the working directory are
// loaded first without overriding variables already set in the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		AppPort:      getInt("SHORTFLIX_PORT", 8080),
		LogLevel:     getString("SHORTFLIX_LOG_LEVEL", "info"),
		SeedCatalog:  getBool("SHORTFLIX_SEED", true),
		ListCacheTTL: getDuration("SHORTFLIX_LIST_CACHE_TTL", 30*time.Second),
		RedisURL:     getString("SHORTFLIX_REDIS_URL", ""),
		RateLimit: RateLimitConfig{
			Requests: getInt("SHORTFLIX_RATE_LIMIT_REQUESTS", 30),
			Window:   getDuration("SHORTFLIX_RATE_LIMIT_WINDOW", time.Minute),
			Burst:    getInt("SHORTFLIX_RATE_LIMIT_BURST", 10),
		},
		Snapshots: ObjectStoreConfig{
			Bucket:        getString("SHORTFLIX_SNAPSHOT_BUCKET", ""),
			Endpoint:      getString("SHORTFLIX_SNAPSHOT_ENDPOINT", ""),
			Region:        getString("SHORTFLIX_SNAPSHOT_REGION", "us-east-1"),
			PublicBaseURL: getString("SHORTFLIX_SNAPSHOT_PUBLIC_URL", ""),
			Prefix:        getString("SHORTFLIX_SNAPSHOT_PREFIX", "snapshots"),
			Workers:       getInt("SHORTFLIX_SNAPSHOT_WORKERS", 1),
			QueueSize:     getInt("SHORTFLIX_SNAPSHOT_QUEUE", 16),
			Retain:        getInt("SHORTFLIX_SNAPSHOT_RETAIN", 100),
		},
	}

	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return Config{}, fmt.Errorf("invalid SHORTFLIX_PORT %d", cfg.AppPort)
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
