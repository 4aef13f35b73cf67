package dto

import "time"

type ShareRequest struct {
	Role           string     `json:"role"`
	CanDownload    bool       `json:"can_download"`
	CanPreview     bool       `json:"can_preview"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	MaxAccessCount *int       `json:"max_access_count,omitempty"`
}

type ShareResponse struct {
	ShareableLink string `json:"shareableLink"`
	Message       string `json:"message,omitempty"`
}

type SharePermissions struct {
	Role           string     `json:"role"`
	CanDownload    bool       `json:"can_download"`
	CanPreview     bool       `json:"can_preview"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	MaxAccessCount *int       `json:"max_access_count,omitempty"`
	AccessCount    int        `json:"access_count"`
}

type ResolveShareResponse struct {
	File        Item             `json:"file"`
	Permissions SharePermissions `json:"permissions"`
}
