package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shortflix/backend/internal/videos"
)

// Metrics holds the Prometheus collectors for the shortflix backend.
type Metrics struct {
	registry *prometheus.Registry

	VideosCreated    prometheus.Counter
	ActionsTotal     *prometheus.CounterVec
	CacheRequests    *prometheus.CounterVec
	SnapshotsTotal   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry together
// with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		VideosCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shortflix_videos_created_total",
			Help: "Total videos added to the catalog.",
		}),
		ActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortflix_video_actions_total",
			Help: "Video mutations by action and outcome.",
		}, []string{"action", "outcome"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortflix_list_cache_requests_total",
			Help: "List cache lookups by result.",
		}, []string{"result"}),
		SnapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortflix_snapshots_total",
			Help: "Catalog snapshot exports by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shortflix_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "method", "status"}),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shortflix_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.VideosCreated,
		m.ActionsTotal,
		m.CacheRequests,
		m.SnapshotsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// VideoCreated implements videos.Observer.
func (m *Metrics) VideoCreated() {
	m.VideosCreated.Inc()
}

// ActionApplied implements videos.Observer.
func (m *Metrics) ActionApplied(action string, err error) {
	if action == "" {
		action = "none"
	}
	m.ActionsTotal.WithLabelValues(action, Outcome(err)).Inc()
}

// ListCacheLookup implements videos.Observer.
func (m *Metrics) ListCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

// SnapshotFinished records the result of a snapshot export.
func (m *Metrics) SnapshotFinished(err error) {
	outcome := "ready"
	if err != nil {
		outcome = "failed"
	}
	m.SnapshotsTotal.WithLabelValues(outcome).Inc()
}

// Outcome classifies an action error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, videos.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, videos.ErrNotFound):
		return "not_found"
	case errors.Is(err, videos.ErrUnsupportedAction):
		return "unsupported_action"
	case errors.Is(err, videos.ErrInternalValidation):
		return "internal_validation"
	default:
		return "error"
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request duration and in-flight count.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't instrument the /metrics endpoint itself
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		endpoint := sanitizeEndpoint(r.URL.Path)

		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.RequestDuration.
			WithLabelValues(endpoint, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/shorts/") && strings.HasSuffix(path, "/related"):
		return "/api/shorts/:id/related"
	case strings.HasPrefix(path, "/api/shorts/") && len(path) > len("/api/shorts/"):
		return "/api/shorts/:id"
	case path == "/api/shorts", path == "/api/shorts/", path == "/healthz", path == "/api/admin/snapshots":
		return strings.TrimSuffix(path, "/")
	default:
		return "other"
	}
}

var _ videos.Observer = (*Metrics)(nil)
