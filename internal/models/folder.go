package models

type Folder struct {
	BaseModel
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
}
