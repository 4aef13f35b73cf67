package models

import "time"

// ShareGrant is a public, token-addressed grant on one file. Expiry
// and access counting are enforced on every resolution.
type ShareGrant struct {
	BaseModel
	FileID         uint       `gorm:"index;not null" json:"file_id"`
	Token          string     `gorm:"type:char(36);uniqueIndex;not null" json:"token"`
	Role           string     `gorm:"type:varchar(32);not null" json:"role"`
	CanDownload    bool       `json:"can_download"`
	CanPreview     bool       `json:"can_preview"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	MaxAccessCount *int       `json:"max_access_count,omitempty"`
	AccessCount    int        `gorm:"default:0" json:"access_count"`
}

// Expired reports whether the grant can no longer be used.
func (s *ShareGrant) Expired(now time.Time) bool {
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return true
	}
	if s.MaxAccessCount != nil && s.AccessCount >= *s.MaxAccessCount {
		return true
	}
	return false
}

// DownloadTicket backs a short-lived signed download URL.
type DownloadTicket struct {
	BaseModel
	FileID    uint      `gorm:"index;not null" json:"file_id"`
	Token     string    `gorm:"type:char(36);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
