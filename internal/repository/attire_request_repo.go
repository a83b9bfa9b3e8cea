package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/internal/model"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
)

// AttireRequestFilter list filters, zero values are ignored.
// From/To select requests whose held window (rental plus buffer) touches [From, To].
type AttireRequestFilter struct {
	Status    string
	StudentID string
	AttireID  string
	From      *time.Time
	To        *time.Time
}

// AttireRequestRepository booking access
type AttireRequestRepository interface {
	Create(ctx context.Context, req *model.AttireRequest) error
	GetByID(ctx context.Context, id string) (*model.AttireRequest, error)
	List(ctx context.Context, filter AttireRequestFilter, offset, limit int) ([]model.AttireRequest, int64, error)
	// ListAll unpaginated list for calendar projection and export
	ListAll(ctx context.Context, filter AttireRequestFilter) ([]model.AttireRequest, error)
	ListByAttire(ctx context.Context, attireID string) ([]model.AttireRequest, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, req *model.AttireRequest) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type attireRequestRepo struct {
	db *gorm.DB
}

// NewAttireRequestRepo creates an AttireRequestRepository
func NewAttireRequestRepo(db *gorm.DB) AttireRequestRepository {
	return &attireRequestRepo{db: db}
}

func (r *attireRequestRepo) Create(ctx context.Context, req *model.AttireRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *attireRequestRepo) GetByID(ctx context.Context, id string) (*model.AttireRequest, error) {
	var req model.AttireRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Attire").
		Where("attire_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// defaultBufferSQL mirrors rental.DefaultBufferDays for rows with no buffer set
const defaultBufferSQL = 7

func (r *attireRequestRepo) scoped(ctx context.Context, filter AttireRequestFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.AttireRequest{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StudentID != "" {
		db = db.Where("student_id = ?", filter.StudentID)
	}
	if filter.AttireID != "" {
		db = db.Where("attire_id = ?", filter.AttireID)
	}
	if filter.To != nil {
		db = db.Where("start_date <= ?", filter.To.Format("2006-01-02"))
	}
	if filter.From != nil {
		db = db.Where("end_date + COALESCE(buffer_days, ?)::int >= ?", defaultBufferSQL, filter.From.Format("2006-01-02"))
	}
	return db
}

func (r *attireRequestRepo) List(ctx context.Context, filter AttireRequestFilter, offset, limit int) ([]model.AttireRequest, int64, error) {
	var reqs []model.AttireRequest
	var total int64

	db := r.scoped(ctx, filter)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").Preload("Attire").
		Offset(offset).Limit(limit).
		Order("start_date DESC, created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

func (r *attireRequestRepo) ListAll(ctx context.Context, filter AttireRequestFilter) ([]model.AttireRequest, error) {
	var reqs []model.AttireRequest
	err := r.scoped(ctx, filter).
		Preload("Student").Preload("Attire").
		Order("start_date ASC, attire_request_id ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *attireRequestRepo) ListByAttire(ctx context.Context, attireID string) ([]model.AttireRequest, error) {
	var reqs []model.AttireRequest
	err := r.db.WithContext(ctx).
		Where("attire_id = ?", attireID).
		Order("start_date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *attireRequestRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.AttireRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *attireRequestRepo) Update(ctx context.Context, req *model.AttireRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("attire_request_id = ? AND version = ?", req.AttireRequestID, oldVersion).
		Updates(map[string]interface{}{
			"attire_id":   req.AttireID,
			"start_date":  req.StartDate,
			"end_date":    req.EndDate,
			"status":      req.Status,
			"buffer_days": req.BufferDays,
			"notes":       req.Notes,
			"updated_by":  req.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}

func (r *attireRequestRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.AttireRequest{}).
			Where("attire_request_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("attire_request_id = ?", id).Delete(&model.AttireRequest{}).Error
	})
}
