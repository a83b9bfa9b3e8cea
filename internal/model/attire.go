package model

// Attire clothing catalog item (attires)
type Attire struct {
	AttireID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"attire_id"`
	Name      string `gorm:"type:varchar(200);not null"                       json:"name"`
	Size      string `gorm:"type:varchar(10);not null"                        json:"size"`   // S | M | L | XL | No Size
	Gender    string `gorm:"type:varchar(10);not null"                        json:"gender"` // Men | Women | Unisex
	Category  string `gorm:"type:varchar(50);not null"                        json:"category"`
	ImagePath string `gorm:"type:varchar(500);not null;default:''"            json:"image_path"`
	Status    string `gorm:"type:varchar(30);not null;default:'Ready for Rent'" json:"status"`
	VersionedModel
}

func (Attire) TableName() string { return "attires" }
