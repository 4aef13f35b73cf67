package models

type File struct {
	BaseModel
	FolderID *uint  `gorm:"index" json:"folder_id,omitempty"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Format   string `gorm:"type:varchar(255)" json:"format"`
	Size     int64  `gorm:"default:0" json:"size"`
	SHA256   string `gorm:"type:char(64)" json:"sha256,omitempty"`
}
