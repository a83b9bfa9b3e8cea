package model

import "time"

// AttireRequest a student's booking of one attire (attire_requests)
type AttireRequest struct {
	AttireRequestID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attire_request_id"`
	StudentID       string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	AttireID        string    `gorm:"type:uuid;not null;index"                       json:"attire_id"`
	StartDate       time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Status          string    `gorm:"type:varchar(30);not null;default:'Requested'"  json:"status"`
	BufferDays      *int      `gorm:"type:smallint"                                  json:"buffer_days,omitempty"` // nil = default
	Notes           string    `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Attire  *Attire  `gorm:"foreignKey:AttireID;references:AttireID"   json:"attire,omitempty"`
}

func (AttireRequest) TableName() string { return "attire_requests" }
