package repositories

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/shortflix/backend/internal/models"
)

// MemoryVideoRepository keeps the catalog in process memory. Contents are lost on restart.
type MemoryVideoRepository struct {
	mu     sync.RWMutex
	videos []models.Video
}

// NewMemoryVideoRepository returns a repository seeded with copies of the provided videos.
func NewMemoryVideoRepository(seed []models.Video) *MemoryVideoRepository {
	videos := make([]models.Video, 0, len(seed))
	for _, v := range seed {
		videos = append(videos, v.Clone())
	}
	return &MemoryVideoRepository{videos: videos}
}

// Query returns the videos matching query in insertion order.
func (r *MemoryVideoRepository) Query(_ context.Context, query VideoQuery) ([]models.Video, error) {
	// Filters are matched as given, surrounding whitespace included.
	search := strings.ToLower(query.Search)
	tag := strings.ToLower(query.Tag)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Video, 0, len(r.videos))
	for _, v := range r.videos {
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		if tag != "" && !matchesTag(v, tag) {
			continue
		}
		out = append(out, v.Clone())
	}
	return out, nil
}

// Insert appends the video and assigns its id from the current catalog length.
func (r *MemoryVideoRepository) Insert(_ context.Context, video models.Video) (models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := video.Clone()
	stored.ID = strconv.Itoa(len(r.videos) + 1)
	r.videos = append(r.videos, stored)

	return stored.Clone(), nil
}

// FindByID returns the video with the given id.
func (r *MemoryVideoRepository) FindByID(_ context.Context, id string) (models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexLocked(id); idx >= 0 {
		return r.videos[idx].Clone(), nil
	}
	return models.Video{}, ErrNotFound
}

// Update replaces the stored video sharing video.ID.
func (r *MemoryVideoRepository) Update(_ context.Context, video models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(video.ID)
	if idx < 0 {
		return ErrNotFound
	}
	r.videos[idx] = video.Clone()
	return nil
}

// Len reports the number of stored videos.
func (r *MemoryVideoRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.videos)
}

func (r *MemoryVideoRepository) indexLocked(id string) int {
	for i := range r.videos {
		if r.videos[i].ID == id {
			return i
		}
	}
	return -1
}

func matchesSearch(v models.Video, search string) bool {
	return strings.Contains(strings.ToLower(v.Title), search) ||
		strings.Contains(strings.ToLower(v.Description), search)
}

func matchesTag(v models.Video, tag string) bool {
	for _, t := range v.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

var _ VideoRepository = (*MemoryVideoRepository)(nil)
