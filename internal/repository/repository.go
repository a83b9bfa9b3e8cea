package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate of every repository
type Repository struct {
	db *gorm.DB

	StaffUser     StaffUserRepository
	Student       StudentRepository
	Attire        AttireRepository
	AttireRequest AttireRequestRepository
	Content       ContentRepository
}

// NewRepository builds the aggregate over one connection pool
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		StaffUser:     NewStaffUserRepo(db),
		Student:       NewStudentRepo(db),
		Attire:        NewAttireRepo(db),
		AttireRequest: NewAttireRequestRepo(db),
		Content:       NewContentRepo(db),
	}
}

// BeginTx starts a transaction.
// A Repository assembled without a connection (unit tests) returns a nil tx.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a Repository whose members all run inside tx.
// A nil tx returns r unchanged.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
