package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shortflix/backend/internal/logging"
	"github.com/shortflix/backend/internal/models"
	"github.com/shortflix/backend/internal/videos"
)

const writeScope = "shorts:write"

// VideoHandler serves the /api/shorts resource.
type VideoHandler struct {
	Videos  VideoCatalog
	Limiter RateLimiter
}

// Collection dispatches /api/shorts by method.
func (h VideoHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodPatch:
		h.Patch(w, r)
	default:
		respondMethodNotAllowed(w, "GET, POST, PATCH")
	}
}

// List handles GET /api/shorts?search=&tag=&trending=.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	if !h.available(w, r) {
		return
	}

	query := r.URL.Query()
	opts := videos.ListOptions{
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
	}
	if raw := strings.TrimSpace(query.Get("trending")); raw != "" {
		trending, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(ctx, w, &videos.ValidationError{Kind: videos.ErrInvalidInput, Fields: map[string]string{"trending": "must be a boolean"}})
			return
		}
		opts.Trending = trending
	}

	list, err := h.Videos.List(ctx, opts)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	if list == nil {
		list = []models.Video{}
	}

	respondJSON(ctx, w, http.StatusOK, list)
}

// Create handles POST /api/shorts.
func (h VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMethodNotAllowed(w, http.MethodPost)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, writeScope) {
		logger.Warn("create rate limited", "client_ip", clientIP(r))
		respondRateLimited(ctx, w)
		return
	}
	if !h.available(w, r) {
		return
	}

	var input videos.VideoInput
	if err := decodeJSON(w, r, &input); err != nil {
		logger.Warn("invalid create payload", "error", err)
		respondError(ctx, w, err)
		return
	}

	video, err := h.Videos.Create(ctx, input)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, video)
}

// Patch handles PATCH /api/shorts with a {id, action, ...payload} body.
func (h VideoHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respondMethodNotAllowed(w, http.MethodPatch)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, writeScope) {
		logger.Warn("patch rate limited", "client_ip", clientIP(r))
		respondRateLimited(ctx, w)
		return
	}
	if !h.available(w, r) {
		return
	}

	var req videos.PatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid patch payload", "error", err)
		respondError(ctx, w, err)
		return
	}

	video, err := h.Videos.Mutate(ctx, req)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// Show handles GET /api/shorts/{id}.
func (h VideoHandler) Show(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	if !h.available(w, r) {
		return
	}

	video, err := h.Videos.Get(ctx, r.PathValue("id"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// Related handles GET /api/shorts/{id}/related?limit=.
func (h VideoHandler) Related(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMethodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	if !h.available(w, r) {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > videos.MaxRelatedLimit {
			respondError(ctx, w, &videos.ValidationError{
				Kind:   videos.ErrInvalidInput,
				Fields: map[string]string{"limit": "must be an integer between 1 and " + strconv.Itoa(videos.MaxRelatedLimit)},
			})
			return
		}
		limit = n
	}

	related, err := h.Videos.Related(ctx, r.PathValue("id"), limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, related)
}

func (h VideoHandler) available(w http.ResponseWriter, r *http.Request) bool {
	if h.Videos != nil {
		return true
	}
	ctx := r.Context()
	logging.FromContext(ctx).Error("video catalog unavailable")
	respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "video catalog unavailable", Code: CodeInternalError})
	return false
}
