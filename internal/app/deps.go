package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shortflix/backend/internal/cache"
	"github.com/shortflix/backend/internal/config"
	"github.com/shortflix/backend/internal/handlers"
	"github.com/shortflix/backend/internal/metrics"
	"github.com/shortflix/backend/internal/middleware"
	"github.com/shortflix/backend/internal/models"
	"github.com/shortflix/backend/internal/repositories"
	"github.com/shortflix/backend/internal/snapshots"
	"github.com/shortflix/backend/internal/storage"
	"github.com/shortflix/backend/internal/videos"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The returned cleanup stops background workers and closes connections.
func buildDependencies(ctx context.Context, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) (handlers.Dependencies, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var seed []models.Video
	if cfg.SeedCatalog {
		seed = repositories.SeedVideos(time.Now())
	}
	repo := repositories.NewMemoryVideoRepository(seed)

	deps := handlers.Dependencies{
		Limiter: middleware.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst, 0),
	}
	var closers []func(context.Context) error

	var listCache videos.ListCache = videos.NewMemoryListCache(cfg.ListCacheTTL)
	if cfg.RedisURL != "" {
		redisCache := cache.NewRedisListCache(ctx, cfg.RedisURL, cfg.ListCacheTTL, logger)
		if redisCache.Enabled() {
			listCache = redisCache
			deps.HealthChecks = map[string]handlers.Pinger{"redis": redisCache}
			closers = append(closers, func(context.Context) error { return redisCache.Close() })
		}
	}

	var observer videos.Observer
	if m != nil {
		observer = m
		deps.Metrics = m.Handler()
	}

	svc := videos.NewService(repo, listCache, observer)
	deps.Videos = svc

	if cfg.Snapshots.Enabled() {
		store, err := storage.NewS3Storage(ctx, cfg.Snapshots)
		if err != nil {
			return handlers.Dependencies{}, nil, fmt.Errorf("configure snapshot storage: %w", err)
		}

		var snapshotObserver snapshots.Observer
		if m != nil {
			snapshotObserver = m
		}
		exporter := snapshots.NewExporter(svc, store, snapshotObserver, snapshots.Config{
			QueueSize: cfg.Snapshots.QueueSize,
			Workers:   cfg.Snapshots.Workers,
			Retain:    cfg.Snapshots.Retain,
		}, logger.With(slog.String("component", "snapshots")))

		deps.Snapshots = exporter
		closers = append([]func(context.Context) error{exporter.Shutdown}, closers...)
	}

	logger.Info("catalog ready",
		slog.Int("videos", repo.Len()),
		slog.Bool("redis_cache", deps.HealthChecks != nil),
		slog.Bool("snapshots", deps.Snapshots != nil),
	)

	cleanup := func(ctx context.Context) error {
		var errs []error
		for _, closeFn := range closers {
			if err := closeFn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	return deps, cleanup, nil
}
