package interfaces

import (
	"context"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// PageStorage is the durable registry of published pages. Records are written
// by the pipeline controller when the publish stage succeeds and read back by
// the pages API.
type PageStorage interface {
	SavePage(ctx context.Context, page *models.PageRecord) error
	GetPage(ctx context.Context, id string) (*models.PageRecord, error)
	ListPages(ctx context.Context, limit, offset int) ([]*models.PageRecord, error)
	CountPages(ctx context.Context) (int, error)
}
