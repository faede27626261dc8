package handlers

import (
	"context"

	"github.com/shortflix/backend/internal/models"
	"github.com/shortflix/backend/internal/snapshots"
	"github.com/shortflix/backend/internal/videos"
)

// VideoCatalog captures the catalog operations required by the video handlers.
type VideoCatalog interface {
	List(ctx context.Context, opts videos.ListOptions) ([]models.Video, error)
	Get(ctx context.Context, id string) (models.Video, error)
	Related(ctx context.Context, id string, limit int) ([]models.Video, error)
	Create(ctx context.Context, input videos.VideoInput) (models.Video, error)
	Mutate(ctx context.Context, req videos.PatchRequest) (models.Video, error)
}

// SnapshotScheduler schedules background exports of the catalog.
type SnapshotScheduler interface {
	Schedule(ctx context.Context) (snapshots.Snapshot, error)
	List(ctx context.Context) ([]snapshots.Snapshot, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
