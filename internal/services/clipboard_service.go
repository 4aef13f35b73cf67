package services

import (
	"Stowed/internal/dto"
	"Stowed/internal/mapper"
	"Stowed/internal/models"
	"Stowed/internal/repository"
)

type ClipboardService interface {
	// Mark replaces the outstanding clipboard set with one entry.
	Mark(itemID uint, itemKind, operation string) error
	Entries() ([]dto.ClipboardEntry, error)
	// Paste applies the pending set to the target folder: cut moves,
	// copy duplicates. The set is consumed either way.
	Paste(targetFolderID *uint) (*dto.Item, string, error)
}

type ClipboardServiceImpl struct {
	clipboardRepo repository.ClipboardRepository
	itemService   ItemService
}

func NewClipboardService(clipboardRepo repository.ClipboardRepository, itemService ItemService) ClipboardService {
	return &ClipboardServiceImpl{clipboardRepo: clipboardRepo, itemService: itemService}
}

func (s *ClipboardServiceImpl) Mark(itemID uint, itemKind, operation string) error {
	if itemKind != dto.KindFile && itemKind != dto.KindFolder {
		return &ValidationError{Message: "item kind must be file or folder"}
	}
	if operation != dto.ClipboardCopy && operation != dto.ClipboardCut {
		return &ValidationError{Message: "operation must be copy or cut"}
	}
	if itemKind == dto.KindFile {
		if _, err := s.itemService.GetFile(itemID); err != nil {
			return err
		}
	} else {
		if _, err := s.itemService.GetFolder(itemID); err != nil {
			return err
		}
	}
	return s.clipboardRepo.Replace([]models.ClipboardEntry{{
		ItemID:    itemID,
		ItemKind:  itemKind,
		Operation: operation,
	}})
}

func (s *ClipboardServiceImpl) Entries() ([]dto.ClipboardEntry, error) {
	entries, err := s.clipboardRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return mapper.ClipboardToDTO(entries), nil
}

func (s *ClipboardServiceImpl) Paste(targetFolderID *uint) (*dto.Item, string, error) {
	entries, err := s.clipboardRepo.FindAll()
	if err != nil {
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", &ConflictError{Message: "clipboard is empty"}
	}
	entry := entries[0]

	var item dto.Item
	switch {
	case entry.Operation == dto.ClipboardCut && entry.ItemKind == dto.KindFile:
		file, err := s.itemService.MoveFile(entry.ItemID, targetFolderID)
		if err != nil {
			return nil, "", err
		}
		item = mapper.FileToItem(file)
	case entry.Operation == dto.ClipboardCut && entry.ItemKind == dto.KindFolder:
		folder, err := s.itemService.MoveFolder(entry.ItemID, targetFolderID)
		if err != nil {
			return nil, "", err
		}
		item = mapper.FolderToItem(folder)
	case entry.Operation == dto.ClipboardCopy && entry.ItemKind == dto.KindFile:
		file, err := s.itemService.DuplicateFile(entry.ItemID, targetFolderID)
		if err != nil {
			return nil, "", err
		}
		item = mapper.FileToItem(file)
	default:
		folder, err := s.itemService.CopyFolderTree(entry.ItemID, targetFolderID)
		if err != nil {
			return nil, "", err
		}
		item = mapper.FolderToItem(folder)
	}

	if err := s.clipboardRepo.Clear(); err != nil {
		return nil, "", err
	}
	return &item, entry.Operation, nil
}
