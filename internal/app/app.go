package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shortflix/backend/internal/config"
	"github.com/shortflix/backend/internal/handlers"
	"github.com/shortflix/backend/internal/httpserver"
	"github.com/shortflix/backend/internal/logging"
	"github.com/shortflix/backend/internal/metrics"
	"github.com/shortflix/backend/internal/middleware"
	"github.com/shortflix/backend/internal/repositories"
)

// Run bootstraps the shortflix backend application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve or seed")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "seed":
		return runSeed(os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	deps, cleanup, err := buildDependencies(ctx, cfg, m, logger)
	if err != nil {
		return err
	}
	defer func() {
		cleanupCtx, cancel := httpserver.WithShutdownTimeout()
		defer cancel()
		if err := cleanup(cleanupCtx); err != nil {
			logger.Error("cleanup failed", "error", err)
		}
	}()

	srv := httpserver.New(cfg.AppPort, newHandler(deps, m, logger))

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", srv.Addr())
		srvErr <- srv.Start()
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down http server", "cause", context.Cause(ctx))
	}

	return srv.Drain()
}

// newHandler assembles the routed mux behind the logging and metrics middleware.
func newHandler(deps handlers.Dependencies, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	var handler http.Handler = mux
	if m != nil {
		handler = m.Middleware(handler)
	}
	return middleware.RequestLogger(logger)(handler)
}

// runSeed writes the fixture catalog to w as indented JSON.
func runSeed(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(repositories.SeedVideos(time.Now())); err != nil {
		return fmt.Errorf("encode seed catalog: %w", err)
	}
	return nil
}
