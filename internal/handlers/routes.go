package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{Checks: deps.HealthChecks}
	videos := VideoHandler{Videos: deps.Videos, Limiter: deps.Limiter}
	snapshots := SnapshotHandler{Snapshots: deps.Snapshots, Limiter: deps.Limiter}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/shorts", videos.Collection)
	mux.HandleFunc("/api/shorts/{id}", videos.Show)
	mux.HandleFunc("/api/shorts/{id}/related", videos.Related)
	mux.HandleFunc("/api/admin/snapshots", snapshots.Collection)
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics)
	}
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Videos       VideoCatalog
	Snapshots    SnapshotScheduler
	Limiter      RateLimiter
	HealthChecks map[string]Pinger
	Metrics      http.Handler
}
