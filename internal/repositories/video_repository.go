package repositories

import (
	"context"

	"github.com/shortflix/backend/internal/models"
)

// VideoQuery narrows a catalog listing. Empty fields are ignored.
type VideoQuery struct {
	// Search is matched case-insensitively as a substring of the title or description.
	Search string
	// Tag is matched case-insensitively against each tag exactly.
	Tag string
}

// VideoRepository exposes data access for the video catalog.
type VideoRepository interface {
	Query(ctx context.Context, query VideoQuery) ([]models.Video, error)
	Insert(ctx context.Context, video models.Video) (models.Video, error)
	FindByID(ctx context.Context, id string) (models.Video, error)
	Update(ctx context.Context, video models.Video) error
}
