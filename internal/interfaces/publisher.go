package interfaces

import (
	"context"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// PageInput carries everything the content store needs to create one page.
type PageInput struct {
	Title       string
	Slug        string
	Keywords    string
	Summary     string
	CoverImgURL string
	Blocks      []models.Block
}

// Publisher is the content-store collaborator. CreatePage creates the page
// with its properties and appends the block tree in order, returning the
// hosted page URL. The store's error detail is preserved in the returned
// error for terminal progress reporting.
type Publisher interface {
	CreatePage(ctx context.Context, page *PageInput) (url string, err error)
}
