package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/internal/model"
)

// ContentRepository home page content versions; rows are insert-only
type ContentRepository interface {
	Create(ctx context.Context, content *model.HomePageContent) error
	GetLatest(ctx context.Context) (*model.HomePageContent, error)
	ListRecent(ctx context.Context, limit int) ([]model.HomePageContent, error)
}

type contentRepo struct {
	db *gorm.DB
}

// NewContentRepo creates a ContentRepository
func NewContentRepo(db *gorm.DB) ContentRepository {
	return &contentRepo{db: db}
}

func (r *contentRepo) Create(ctx context.Context, content *model.HomePageContent) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepo) GetLatest(ctx context.Context) (*model.HomePageContent, error) {
	var content model.HomePageContent
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepo) ListRecent(ctx context.Context, limit int) ([]model.HomePageContent, error) {
	var rows []model.HomePageContent
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
