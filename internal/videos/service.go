package videos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shortflix/backend/internal/logging"
	"github.com/shortflix/backend/internal/models"
	"github.com/shortflix/backend/internal/repositories"
)

const (
	// DefaultRelatedLimit is the number of related videos returned when no limit is given.
	DefaultRelatedLimit = 8
	// MaxRelatedLimit caps the related videos limit.
	MaxRelatedLimit = 50
)

// Observer receives notifications about catalog activity, typically for metrics.
type Observer interface {
	VideoCreated()
	ActionApplied(action string, err error)
	ListCacheLookup(hit bool)
}

// ListOptions filters and orders a catalog listing.
type ListOptions struct {
	Search string
	Tag    string
	// Trending orders the result by likes, highest first.
	Trending bool
}

func (o ListOptions) cacheKey() string {
	return fmt.Sprintf("search=%q|tag=%q|trending=%t",
		strings.ToLower(o.Search),
		strings.ToLower(o.Tag),
		o.Trending)
}

// Service validates requests and applies them to the catalog.
type Service struct {
	repo     repositories.VideoRepository
	cache    ListCache
	observer Observer
	now      func() time.Time

	// mu serializes writes so concurrent mutations of one video do not lose
	// updates. List holds it for reading across query and cache fill, so a
	// listing taken before a write can never be cached after that write's
	// invalidation.
	mu sync.RWMutex
}

// NewService constructs a Service. cache and observer may be nil.
func NewService(repo repositories.VideoRepository, cache ListCache, observer Observer) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		observer: observer,
		now:      time.Now,
	}
}

// WithNowFunc allows tests to override the time source.
func (s *Service) WithNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// List returns the videos matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]models.Video, error) {
	logger := logging.FromContext(ctx)
	key := opts.cacheKey()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("list cache lookup failed", "error", err)
		} else {
			s.observeCache(ok)
			if ok {
				return cached, nil
			}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	videos, err := s.repo.Query(ctx, repositories.VideoQuery{Search: opts.Search, Tag: opts.Tag})
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}

	if opts.Trending {
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].Likes > videos[j].Likes
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, videos); err != nil {
			logger.Warn("list cache store failed", "error", err)
		}
	}

	return videos, nil
}

// Get returns a single video.
func (s *Service) Get(ctx context.Context, id string) (models.Video, error) {
	return s.find(ctx, strings.TrimSpace(id))
}

// Related returns up to limit other videos that share at least one tag with id.
func (s *Service) Related(ctx context.Context, id string, limit int) ([]models.Video, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	if limit > MaxRelatedLimit {
		limit = MaxRelatedLimit
	}

	video, err := s.find(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	all, err := s.repo.Query(ctx, repositories.VideoQuery{})
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}

	related := make([]models.Video, 0, limit)
	for _, candidate := range all {
		if len(related) == limit {
			break
		}
		if candidate.ID == video.ID || !sharesTag(video, candidate) {
			continue
		}
		related = append(related, candidate)
	}
	return related, nil
}

// Create validates input, assembles the canonical record and inserts it.
func (s *Service) Create(ctx context.Context, input VideoInput) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "videos.create")
	defer span.End()
	logger := logging.FromContext(ctx)

	if err := ValidateInput(input); err != nil {
		return models.Video{}, err
	}

	video := newVideo(input)
	if err := ValidateVideo(video); err != nil {
		logger.Error("assembled video failed validation", "error", err)
		return models.Video{}, err
	}

	s.mu.Lock()
	stored, err := s.repo.Insert(ctx, video)
	if err == nil {
		s.invalidate(ctx)
	}
	s.mu.Unlock()
	if err != nil {
		return models.Video{}, fmt.Errorf("insert video: %w", err)
	}

	if s.observer != nil {
		s.observer.VideoCreated()
	}

	logger.Info("video created", slog.String("video_id", stored.ID))
	return stored, nil
}

// Mutate resolves the request's video, parses its action and applies it.
func (s *Service) Mutate(ctx context.Context, req PatchRequest) (models.Video, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		err := invalidInput("id", "is required")
		s.observeAction(req.Action, err)
		return models.Video{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	video, err := s.find(ctx, id)
	if err != nil {
		s.observeAction(req.Action, err)
		return models.Video{}, err
	}

	action, err := req.ParseAction()
	if err != nil {
		s.observeAction(req.Action, err)
		return models.Video{}, err
	}

	return s.commitLocked(ctx, video, action)
}

// Apply applies a typed action to the video with the given id.
func (s *Service) Apply(ctx context.Context, id string, action Action) (models.Video, error) {
	action = normalizeAction(action)
	name := actionName(action)

	s.mu.Lock()
	defer s.mu.Unlock()

	video, err := s.find(ctx, strings.TrimSpace(id))
	if err != nil {
		s.observeAction(name, err)
		return models.Video{}, err
	}

	if err := ValidateAction(action); err != nil {
		s.observeAction(name, err)
		return models.Video{}, err
	}

	return s.commitLocked(ctx, video, action)
}

func (s *Service) commitLocked(ctx context.Context, video models.Video, action Action) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "videos.apply_action")
	defer span.End()
	logger := logging.FromContext(ctx)

	if err := applyAction(&video, action, s.now()); err != nil {
		s.observeAction(actionName(action), err)
		return models.Video{}, err
	}

	if err := ValidateVideo(video); err != nil {
		logger.Error("mutated video failed validation", "video_id", video.ID, "action", action.Name(), "error", err)
		s.observeAction(action.Name(), err)
		return models.Video{}, err
	}

	if err := s.repo.Update(ctx, video); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			err = notFound(video.ID)
		} else {
			err = fmt.Errorf("update video %s: %w", video.ID, err)
		}
		s.observeAction(action.Name(), err)
		return models.Video{}, err
	}

	s.invalidate(ctx)
	s.observeAction(action.Name(), nil)

	logger.Info("video action applied", slog.String("video_id", video.ID), slog.String("action", action.Name()))
	return video, nil
}

func (s *Service) find(ctx context.Context, id string) (models.Video, error) {
	if id == "" {
		return models.Video{}, invalidInput("id", "is required")
	}
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Video{}, notFound(id)
		}
		return models.Video{}, fmt.Errorf("find video %s: %w", id, err)
	}
	return video, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.FromContext(ctx).Warn("list cache invalidation failed", "error", err)
	}
}

func (s *Service) observeAction(name string, err error) {
	if s.observer != nil {
		s.observer.ActionApplied(name, err)
	}
}

func (s *Service) observeCache(hit bool) {
	if s.observer != nil {
		s.observer.ListCacheLookup(hit)
	}
}

func newVideo(input VideoInput) models.Video {
	video := models.Video{
		VideoURL: input.VideoURL,
		Title:    input.Title,
		Tags:     append([]string(nil), input.Tags...),
		Quality:  models.DefaultQuality,
		Comments: []models.Comment{},
	}
	if input.Description != nil {
		video.Description = *input.Description
	}
	if input.Duration != nil {
		video.Duration = *input.Duration
	}
	return video
}

func notFound(id string) error {
	return &ValidationError{Kind: ErrNotFound, Fields: map[string]string{"id": fmt.Sprintf("no video with id %q", id)}}
}

func actionName(action Action) string {
	if action == nil {
		return ""
	}
	return action.Name()
}

func sharesTag(a, b models.Video) bool {
	for _, tag := range b.Tags {
		if a.HasTag(tag) {
			return true
		}
	}
	return false
}
