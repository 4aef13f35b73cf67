package dto

import "time"

const (
	KindFile   = "file"
	KindFolder = "folder"
)

// Item is the wire shape for both files and folders. Kind ("type" on
// the wire) discriminates the two variants: files carry Size, Format,
// FolderID and PublicURL; folders carry ParentID. A nil parent
// reference means the item sits at the root.
type Item struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`

	Size      int64  `json:"size,omitempty"`
	Format    string `json:"format,omitempty"`
	FolderID  *uint  `json:"folder_id,omitempty"`
	PublicURL string `json:"publicUrl,omitempty"`

	ParentID *uint `json:"parent_id,omitempty"`
}

// EffectiveParentID returns the parent reference that scopes the item
// to a folder: FolderID for files, ParentID for folders.
func (i Item) EffectiveParentID() *uint {
	if i.Kind == KindFile {
		return i.FolderID
	}
	return i.ParentID
}

type ItemsResponse struct {
	Files []Item `json:"files"`
}

type SearchResponse struct {
	Results []Item `json:"results"`
}

type UploadResponse struct {
	File      Item   `json:"file"`
	Message   string `json:"message,omitempty"`
	PublicURL string `json:"publicUrl"`
}

type FolderResponse struct {
	Folder  Item   `json:"folder"`
	Message string `json:"message,omitempty"`
}

type FileResponse struct {
	File    Item   `json:"file"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type DownloadResponse struct {
	SignedURL  string `json:"signedUrl"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	FileFormat string `json:"fileFormat"`
	ExpiresIn  int64  `json:"expiresIn"`
}
