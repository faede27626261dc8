package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/shortflix/backend/internal/videos"
)

func TestObserverCounters(t *testing.T) {
	m := New()

	m.VideoCreated()
	m.VideoCreated()
	m.ActionApplied(videos.ActionLike, nil)
	m.ActionApplied(videos.ActionRate, &videos.ValidationError{Kind: videos.ErrInvalidInput})
	m.ActionApplied("", videos.ErrUnsupportedAction)
	m.ListCacheLookup(true)
	m.ListCacheLookup(false)
	m.ListCacheLookup(false)
	m.SnapshotFinished(nil)
	m.SnapshotFinished(errors.New("boom"))

	if got := testutil.ToFloat64(m.VideosCreated); got != 2 {
		t.Fatalf("expected 2 creations got %v", got)
	}
	if got := testutil.ToFloat64(m.ActionsTotal.WithLabelValues("like", "ok")); got != 1 {
		t.Fatalf("expected 1 like got %v", got)
	}
	if got := testutil.ToFloat64(m.ActionsTotal.WithLabelValues("rate", "invalid_input")); got != 1 {
		t.Fatalf("expected 1 invalid rate got %v", got)
	}
	if got := testutil.ToFloat64(m.ActionsTotal.WithLabelValues("none", "unsupported_action")); got != 1 {
		t.Fatalf("expected 1 unsupported action got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 misses got %v", got)
	}
	if got := testutil.ToFloat64(m.SnapshotsTotal.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed snapshot got %v", got)
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("wrap: %w", videos.ErrNotFound), "not_found"},
		{videos.ErrInternalValidation, "internal_validation"},
		{errors.New("other"), "error"},
	}

	for _, tc := range cases {
		if got := Outcome(tc.err); got != tc.want {
			t.Fatalf("Outcome(%v) = %q want %q", tc.err, got, tc.want)
		}
	}
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	m := New()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if testutil.ToFloat64(m.RequestsInFlight) != 1 {
			t.Errorf("expected one request in flight")
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/shorts/42", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	if got := testutil.ToFloat64(m.RequestsInFlight); got != 0 {
		t.Fatalf("expected no requests in flight got %v", got)
	}
	if got := testutil.CollectAndCount(m.RequestDuration, "shortflix_http_request_duration_seconds"); got != 1 {
		t.Fatalf("expected one duration series got %d", got)
	}

	// /metrics itself is not instrumented.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if got := testutil.CollectAndCount(m.RequestDuration, "shortflix_http_request_duration_seconds"); got != 1 {
		t.Fatalf("expected metrics endpoint to be skipped, got %d series", got)
	}
}

func TestSanitizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"/api/shorts":            "/api/shorts",
		"/api/shorts/":           "/api/shorts",
		"/api/shorts/7":          "/api/shorts/:id",
		"/api/shorts/7/related":  "/api/shorts/:id/related",
		"/healthz":               "/healthz",
		"/api/admin/snapshots":   "/api/admin/snapshots",
		"/random/path/123456789": "other",
	}

	for path, want := range cases {
		if got := sanitizeEndpoint(path); got != want {
			t.Fatalf("sanitizeEndpoint(%q) = %q want %q", path, got, want)
		}
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.VideoCreated()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "shortflix_videos_created_total 1") {
		t.Fatalf("expected counter in exposition, got:\n%s", rr.Body.String())
	}
}
