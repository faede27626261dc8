package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServerServeAndShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := New(0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("unexpected body %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("expected clean stop got %v", err)
	}
}

func TestNewUsesPort(t *testing.T) {
	if got := New(8080, nil).Addr(); got != ":8080" {
		t.Fatalf("unexpected addr %q", got)
	}
}

func TestDrainStopsServing(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := New(0, http.NotFoundHandler())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()

	previous := ShutdownTimeout
	ShutdownTimeout = time.Second
	t.Cleanup(func() { ShutdownTimeout = previous })

	if err := srv.Drain(); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("expected clean stop got %v", err)
	}
}
