package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faizm10/DressToImpress-sub000/internal/model"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
)

// AttireFilter catalog filters, zero values are ignored
type AttireFilter struct {
	Query         string
	Gender        string
	Category      string
	Size          string
	Status        string
	ExcludeStatus string // hides rows in this status
}

// AttireRepository catalog access
type AttireRepository interface {
	Create(ctx context.Context, attire *model.Attire) error
	GetByID(ctx context.Context, id string) (*model.Attire, error)
	// LockByID reads the row with SELECT ... FOR UPDATE; call inside a transaction
	LockByID(ctx context.Context, id string) (*model.Attire, error)
	List(ctx context.Context, filter AttireFilter, offset, limit int) ([]model.Attire, int64, error)
	ListImagePaths(ctx context.Context) ([]string, error)
	Update(ctx context.Context, attire *model.Attire) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type attireRepo struct {
	db *gorm.DB
}

// NewAttireRepo creates an AttireRepository
func NewAttireRepo(db *gorm.DB) AttireRepository {
	return &attireRepo{db: db}
}

func (r *attireRepo) Create(ctx context.Context, attire *model.Attire) error {
	return r.db.WithContext(ctx).Create(attire).Error
}

func (r *attireRepo) GetByID(ctx context.Context, id string) (*model.Attire, error) {
	var attire model.Attire
	err := r.db.WithContext(ctx).
		Where("attire_id = ?", id).
		First(&attire).Error
	if err != nil {
		return nil, err
	}
	return &attire, nil
}

func (r *attireRepo) LockByID(ctx context.Context, id string) (*model.Attire, error) {
	var attire model.Attire
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("attire_id = ?", id).
		First(&attire).Error
	if err != nil {
		return nil, err
	}
	return &attire, nil
}

func (r *attireRepo) List(ctx context.Context, filter AttireFilter, offset, limit int) ([]model.Attire, int64, error) {
	var attires []model.Attire
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attire{})
	if filter.Query != "" {
		db = db.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Gender != "" {
		db = db.Where("gender = ?", filter.Gender)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Size != "" {
		db = db.Where("size = ?", filter.Size)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ExcludeStatus != "" {
		db = db.Where("status <> ?", filter.ExcludeStatus)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&attires).Error; err != nil {
		return nil, 0, err
	}

	return attires, total, nil
}

// ListImagePaths image paths referenced by live attires
func (r *attireRepo) ListImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&model.Attire{}).
		Where("image_path <> ''").
		Pluck("image_path", &paths).Error
	return paths, err
}

func (r *attireRepo) Update(ctx context.Context, attire *model.Attire) error {
	oldVersion := attire.Version
	result := r.db.WithContext(ctx).
		Model(attire).
		Where("attire_id = ? AND version = ?", attire.AttireID, oldVersion).
		Updates(map[string]interface{}{
			"name":       attire.Name,
			"size":       attire.Size,
			"gender":     attire.Gender,
			"category":   attire.Category,
			"image_path": attire.ImagePath,
			"status":     attire.Status,
			"updated_by": attire.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	attire.Version = oldVersion + 1
	return nil
}

func (r *attireRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Attire{}).
			Where("attire_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("attire_id = ?", id).Delete(&model.Attire{}).Error
	})
}
