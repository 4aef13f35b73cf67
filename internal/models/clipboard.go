package models

// ClipboardEntry is a pending copy/cut marker. The whole set is
// replaced on every new copy or cut and consumed by paste.
type ClipboardEntry struct {
	BaseModel
	ItemID    uint   `gorm:"index;not null" json:"item_id"`
	ItemKind  string `gorm:"type:varchar(16);not null" json:"item_kind"`
	Operation string `gorm:"type:varchar(16);not null" json:"operation"`
}
