package mapper

import (
	"Stowed/internal/dto"
	"Stowed/internal/models"
)

func FileToItem(file *models.File) dto.Item {
	return dto.Item{
		ID:        file.ID,
		Name:      file.Name,
		Kind:      dto.KindFile,
		CreatedAt: file.CreatedAt,
		Size:      file.Size,
		Format:    file.Format,
		FolderID:  file.FolderID,
	}
}

func FolderToItem(folder *models.Folder) dto.Item {
	return dto.Item{
		ID:        folder.ID,
		Name:      folder.Name,
		Kind:      dto.KindFolder,
		CreatedAt: folder.CreatedAt,
		ParentID:  folder.ParentID,
	}
}

// ToItems merges files and folders into one wire collection. Folders
// sort ahead of files.
func ToItems(folders []models.Folder, files []models.File) []dto.Item {
	items := make([]dto.Item, 0, len(folders)+len(files))
	for i := range folders {
		items = append(items, FolderToItem(&folders[i]))
	}
	for i := range files {
		items = append(items, FileToItem(&files[i]))
	}
	return items
}

func ClipboardToDTO(entries []models.ClipboardEntry) []dto.ClipboardEntry {
	out := make([]dto.ClipboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ClipboardEntry{ItemID: e.ItemID, ItemKind: e.ItemKind, Operation: e.Operation})
	}
	return out
}

func ShareToPermissions(grant *models.ShareGrant) dto.SharePermissions {
	return dto.SharePermissions{
		Role:           grant.Role,
		CanDownload:    grant.CanDownload,
		CanPreview:     grant.CanPreview,
		ExpiresAt:      grant.ExpiresAt,
		MaxAccessCount: grant.MaxAccessCount,
		AccessCount:    grant.AccessCount,
	}
}
