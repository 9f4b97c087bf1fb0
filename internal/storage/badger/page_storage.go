package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// PageStorage implements the PageStorage interface for Badger
type PageStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPageStorage creates a new PageStorage instance
func NewPageStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PageStorage {
	return &PageStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PageStorage) SavePage(_ context.Context, page *models.PageRecord) error {
	if page.ID == "" {
		return fmt.Errorf("page ID is required")
	}

	if page.PublishedAt.IsZero() {
		page.PublishedAt = time.Now()
	}

	if err := s.db.Store().Upsert(page.ID, page); err != nil {
		return fmt.Errorf("failed to save page record: %w", err)
	}
	return nil
}

func (s *PageStorage) GetPage(_ context.Context, id string) (*models.PageRecord, error) {
	var page models.PageRecord
	if err := s.db.Store().Get(id, &page); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("page not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get page record: %w", err)
	}
	return &page, nil
}

func (s *PageStorage) ListPages(_ context.Context, limit, offset int) ([]*models.PageRecord, error) {
	// PublishedAt is stamped on every save, so this matches all records.
	query := badgerhold.Where("PublishedAt").Ge(time.Time{}).SortBy("PublishedAt").Reverse()
	if offset > 0 {
		query = query.Skip(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var pages []models.PageRecord
	if err := s.db.Store().Find(&pages, query); err != nil {
		return nil, fmt.Errorf("failed to list page records: %w", err)
	}

	result := make([]*models.PageRecord, len(pages))
	for i := range pages {
		result[i] = &pages[i]
	}
	return result, nil
}

func (s *PageStorage) CountPages(_ context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.PageRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count page records: %w", err)
	}
	return int(count), nil
}
