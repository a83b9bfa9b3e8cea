package model

import "gorm.io/datatypes"

// HomePageContent one version of the landing page copy (home_page_content)
// Rows are never updated; the latest updated_at wins.
type HomePageContent struct {
	ContentID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"content_id"`
	Content   datatypes.JSON `gorm:"type:jsonb;not null"                            json:"content"`
	BaseModel
}

func (HomePageContent) TableName() string { return "home_page_content" }
