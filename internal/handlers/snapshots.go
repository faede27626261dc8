package handlers

import (
	"net/http"

	"github.com/shortflix/backend/internal/logging"
	"github.com/shortflix/backend/internal/snapshots"
)

// SnapshotHandler exposes catalog snapshot exports to operators.
type SnapshotHandler struct {
	Snapshots SnapshotScheduler
	Limiter   RateLimiter
}

// Collection handles GET and POST /api/admin/snapshots.
func (h SnapshotHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		respondMethodNotAllowed(w, "GET, POST")
	}
}

// Create schedules a snapshot and responds with its pending record.
func (h SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "snapshots") {
		respondRateLimited(ctx, w)
		return
	}
	if !h.available(w, r) {
		return
	}

	snap, err := h.Snapshots.Schedule(ctx)
	if err != nil {
		logger.Error("schedule snapshot", "error", err)
		respondJSON(ctx, w, http.StatusServiceUnavailable, errorResponse{Error: "snapshot exporter unavailable", Code: CodeUnavailable})
		return
	}

	logger.Info("snapshot scheduled", "snapshot_id", snap.ID)
	respondJSON(ctx, w, http.StatusAccepted, snap)
}

// List responds with known snapshots, newest first.
func (h SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.available(w, r) {
		return
	}

	list, err := h.Snapshots.List(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	if list == nil {
		list = []snapshots.Snapshot{}
	}

	respondJSON(ctx, w, http.StatusOK, list)
}

func (h SnapshotHandler) available(w http.ResponseWriter, r *http.Request) bool {
	if h.Snapshots != nil {
		return true
	}
	respondJSON(r.Context(), w, http.StatusServiceUnavailable, errorResponse{Error: "snapshots are not configured", Code: CodeUnavailable})
	return false
}
