package model

import "gorm.io/datatypes"

// Student roster entry (students)
type Student struct {
	StudentID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	FirstName     string         `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName      string         `gorm:"type:varchar(100);not null"                     json:"last_name"`
	StudentNumber string         `gorm:"type:varchar(20);not null;index"                json:"student_number"` // institutional id, not unique
	Email         string         `gorm:"type:varchar(255);not null"                     json:"email"`
	Status        string         `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"`
	OrderItems    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"               json:"order_items"` // []OrderItem snapshot
	VersionedModel

	Requests []AttireRequest `gorm:"foreignKey:StudentID;references:StudentID" json:"requests,omitempty"`
}

func (Student) TableName() string { return "students" }

// OrderItem denormalized snapshot of an item the student asked for
type OrderItem struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Size     string `json:"size,omitempty"`
}
