package httpserver

import (
	"context"
	"time"
)

// ShutdownTimeout bounds graceful shutdown and the cleanup that follows it.
var ShutdownTimeout = 10 * time.Second

// WithShutdownTimeout returns a context for draining work after the serving
// context is already done.
func WithShutdownTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ShutdownTimeout)
}

// Drain stops accepting connections and waits up to ShutdownTimeout for
// in-flight requests.
func (s *Server) Drain() error {
	ctx, cancel := WithShutdownTimeout()
	defer cancel()
	return s.Shutdown(ctx)
}
