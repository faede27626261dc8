package videos

import (
	"context"
	"sync"
	"time"

	"github.com/shortflix/backend/internal/models"
)

// DefaultListCacheTTL bounds how long a cached listing is served.
const DefaultListCacheTTL = 30 * time.Second

// ListCache stores listing results keyed by a normalized query. Implementations
// must treat cache failures as misses from the caller's point of view.
type ListCache interface {
	Get(ctx context.Context, key string) ([]models.Video, bool, error)
	Set(ctx context.Context, key string, videos []models.Video) error
	Invalidate(ctx context.Context) error
}

type cacheEntry struct {
	videos  []models.Video
	expires time.Time
}

// MemoryListCache is a TTL-based in-process ListCache.
type MemoryListCache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewMemoryListCache returns a cache that keeps listings for the provided TTL.
func NewMemoryListCache(ttl time.Duration) *MemoryListCache {
	if ttl <= 0 {
		ttl = DefaultListCacheTTL
	}
	return &MemoryListCache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]cacheEntry),
	}
}

// Get returns a copy of the cached listing when present and unexpired.
func (c *MemoryListCache) Get(_ context.Context, key string) ([]models.Video, bool, error) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expires) {
		return nil, false, nil
	}
	return cloneVideos(entry.videos), true, nil
}

// Set stores a copy of videos under key.
func (c *MemoryListCache) Set(_ context.Context, key string, videos []models.Video) error {
	entry := cacheEntry{videos: cloneVideos(videos), expires: c.now().Add(c.ttl)}

	c.mu.Lock()
	c.items[key] = entry
	c.mu.Unlock()
	return nil
}

// Invalidate drops every cached listing.
func (c *MemoryListCache) Invalidate(context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]cacheEntry)
	c.mu.Unlock()
	return nil
}

func cloneVideos(videos []models.Video) []models.Video {
	out := make([]models.Video, len(videos))
	for i, v := range videos {
		out[i] = v.Clone()
	}
	return out
}
