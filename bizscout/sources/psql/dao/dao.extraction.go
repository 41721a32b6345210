package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizscout/bizscout/sources/psql/models"
)

const maxListLimit = 100

type ExtractionDAO struct {
	DB *gorm.DB
}

func NewExtractionDAO(db *gorm.DB) *ExtractionDAO {
	return &ExtractionDAO{DB: db}
}

func (dao *ExtractionDAO) Create(ctx context.Context, e *models.Extraction) error {
	return dao.DB.WithContext(ctx).Create(e).Error
}

// ListRecent returns the newest extractions first. limit is clamped to [1, 100].
func (dao *ExtractionDAO) ListRecent(ctx context.Context, limit int) ([]models.Extraction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	extractions := []models.Extraction{}
	err := dao.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&extractions).Error
	if err != nil {
		return nil, err
	}
	return extractions, nil
}

// GetByID returns nil, nil when no row matches.
func (dao *ExtractionDAO) GetByID(ctx context.Context, id uuid.UUID) (*models.Extraction, error) {
	var e models.Extraction
	err := dao.DB.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
