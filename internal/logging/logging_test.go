package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Fatal("expected default logger")
	}
}

func TestStartSpanUsesRequestIDAsTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")

	ctx := WithLogger(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-1")

	ctx, parent := StartSpan(ctx, "outer")
	childCtx, child := StartSpan(ctx, "inner", slog.String("video_id", "7"))

	if TraceIDFromContext(childCtx) != "req-1" {
		t.Fatalf("expected trace id from request id got %q", TraceIDFromContext(childCtx))
	}
	if SpanIDFromContext(childCtx) == SpanIDFromContext(ctx) {
		t.Fatal("expected child span id to differ from parent")
	}

	child.End()
	parent.End()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected two span entries got %d", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["span_name"] != "inner" || entry["video_id"] != "7" || entry["parent_span_id"] != SpanIDFromContext(ctx) || entry["trace_id"] != "req-1" {
		t.Fatalf("unexpected span entry: %v", entry)
	}
}

func TestSpanEndIsSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, "info"))

	_, span := StartSpan(ctx, "quiet")
	span.End()

	if buf.Len() != 0 {
		t.Fatalf("expected no output at info level, got %s", buf.String())
	}

	var nilSpan *Span
	nilSpan.End()
}
