package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/internal/model"
)

// StaffUserRepository staff account access
type StaffUserRepository interface {
	Create(ctx context.Context, user *model.StaffUser) error
	GetByID(ctx context.Context, id string) (*model.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*model.StaffUser, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type staffUserRepo struct {
	db *gorm.DB
}

// NewStaffUserRepo creates a StaffUserRepository
func NewStaffUserRepo(db *gorm.DB) StaffUserRepository {
	return &staffUserRepo{db: db}
}

func (r *staffUserRepo) Create(ctx context.Context, user *model.StaffUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *staffUserRepo) GetByID(ctx context.Context, id string) (*model.StaffUser, error) {
	var user model.StaffUser
	err := r.db.WithContext(ctx).
		Where("staff_user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *staffUserRepo) GetByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	var user model.StaffUser
	err := r.db.WithContext(ctx).
		Where("lower(email) = lower(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *staffUserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.StaffUser{}).
		Where("staff_user_id = ?", id).
		Update("last_login_at", at).Error
}
