package model

import "time"

// StaffUser program staff account (staff_users)
type StaffUser struct {
	StaffUserID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_user_id"`
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	SoftDeleteModel
}

func (StaffUser) TableName() string { return "staff_users" }
