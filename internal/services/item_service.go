package services

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"Stowed/internal/dto"
	"Stowed/internal/mapper"
	"Stowed/internal/models"
	"Stowed/internal/repository"
)

// maxDepth caps ancestor walks; the parent graph is a forest, so any
// longer chain means corrupted data.
const maxDepth = 1000

type ItemService interface {
	ListAll() ([]dto.Item, error)
	Search(query string) ([]dto.Item, error)

	GetFile(id uint) (*models.File, error)
	GetFolder(id uint) (*models.Folder, error)

	CreateFolder(name string, parentID *uint) (*models.Folder, error)
	SaveUpload(name, format string, folderID *uint, content io.Reader) (*models.File, error)

	RenameFile(id uint, newName string) (*models.File, error)
	RenameFolder(id uint, newName string) (*models.Folder, error)
	MoveFile(id uint, targetFolderID *uint) (*models.File, error)
	MoveFolder(id uint, targetParentID *uint) (*models.Folder, error)
	DeleteFile(id uint) error
	DeleteFolder(id uint) error

	DuplicateFile(id uint, targetFolderID *uint) (*models.File, error)
	CopyFolderTree(id uint, targetParentID *uint) (*models.Folder, error)
}

type ItemServiceImpl struct {
	fileRepo   repository.FileRepository
	folderRepo repository.FolderRepository
	blobs      BlobService
}

func NewItemService(fileRepo repository.FileRepository, folderRepo repository.FolderRepository, blobs BlobService) ItemService {
	return &ItemServiceImpl{fileRepo: fileRepo, folderRepo: folderRepo, blobs: blobs}
}

func (s *ItemServiceImpl) ListAll() ([]dto.Item, error) {
	folders, err := s.folderRepo.FindAll()
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return mapper.ToItems(folders, files), nil
}

func (s *ItemServiceImpl) Search(query string) ([]dto.Item, error) {
	folders, err := s.folderRepo.SearchByName(query)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.SearchByName(query)
	if err != nil {
		return nil, err
	}
	return mapper.ToItems(folders, files), nil
}

func (s *ItemServiceImpl) GetFile(id uint) (*models.File, error) {
	file, err := s.fileRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Message: "file not found"}
		}
		return nil, err
	}
	return file, nil
}

func (s *ItemServiceImpl) GetFolder(id uint) (*models.Folder, error) {
	folder, err := s.folderRepo.FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Message: "folder not found"}
		}
		return nil, err
	}
	return folder, nil
}

func (s *ItemServiceImpl) CreateFolder(name string, parentID *uint) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Message: "folder name must not be empty"}
	}
	if parentID != nil {
		if _, err := s.GetFolder(*parentID); err != nil {
			return nil, err
		}
	}
	folder := &models.Folder{Name: name, ParentID: parentID}
	if err := s.folderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *ItemServiceImpl) SaveUpload(name, format string, folderID *uint, content io.Reader) (*models.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Message: "file name must not be empty"}
	}
	if folderID != nil {
		if _, err := s.GetFolder(*folderID); err != nil {
			return nil, err
		}
	}
	if format == "" {
		format = mime.TypeByExtension(filepath.Ext(name))
		if format == "" {
			format = "application/octet-stream"
		}
	}

	sum, size, err := s.blobs.Save(content)
	if err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}

	file := &models.File{
		Name:     name,
		Format:   format,
		Size:     size,
		SHA256:   sum,
		FolderID: folderID,
	}
	if err := s.fileRepo.Create(file); err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}
	return file, nil
}

func (s *ItemServiceImpl) RenameFile(id uint, newName string) (*models.File, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, &ValidationError{Message: "name must not be empty"}
	}
	file, err := s.GetFile(id)
	if err != nil {
		return nil, err
	}
	file.Name = newName
	if err := s.fileRepo.Update(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *ItemServiceImpl) RenameFolder(id uint, newName string) (*models.Folder, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, &ValidationError{Message: "name must not be empty"}
	}
	folder, err := s.GetFolder(id)
	if err != nil {
		return nil, err
	}
	folder.Name = newName
	if err := s.folderRepo.Update(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *ItemServiceImpl) MoveFile(id uint, targetFolderID *uint) (*models.File, error) {
	file, err := s.GetFile(id)
	if err != nil {
		return nil, err
	}
	if targetFolderID != nil {
		if _, err := s.GetFolder(*targetFolderID); err != nil {
			return nil, err
		}
	}
	file.FolderID = targetFolderID
	if err := s.fileRepo.Update(file); err != nil {
		return nil, err
	}
	return file, nil
}

// MoveFolder re-parents a folder. Moving a folder into itself or any
// of its descendants would cut a cycle into the forest and is refused.
func (s *ItemServiceImpl) MoveFolder(id uint, targetParentID *uint) (*models.Folder, error) {
	folder, err := s.GetFolder(id)
	if err != nil {
		return nil, err
	}
	if targetParentID != nil {
		if *targetParentID == id {
			return nil, &ConflictError{Message: "cannot move a folder into itself"}
		}
		target, err := s.GetFolder(*targetParentID)
		if err != nil {
			return nil, err
		}
		descendant, err := s.isDescendantOf(target, id)
		if err != nil {
			return nil, err
		}
		if descendant {
			return nil, &ConflictError{Message: "cannot move a folder into its own descendant"}
		}
	}
	folder.ParentID = targetParentID
	if err := s.folderRepo.Update(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *ItemServiceImpl) isDescendantOf(folder *models.Folder, ancestorID uint) (bool, error) {
	current := folder
	for hops := 0; current.ParentID != nil && hops < maxDepth; hops++ {
		if *current.ParentID == ancestorID {
			return true, nil
		}
		parent, err := s.GetFolder(*current.ParentID)
		if err != nil {
			return false, err
		}
		current = parent
	}
	return false, nil
}

func (s *ItemServiceImpl) DeleteFile(id uint) error {
	if _, err := s.GetFile(id); err != nil {
		return err
	}
	return s.fileRepo.Delete(id)
}

// DeleteFolder refuses non-empty folders; clients surface the message
// verbatim.
func (s *ItemServiceImpl) DeleteFolder(id uint) error {
	if _, err := s.GetFolder(id); err != nil {
		return err
	}
	children, err := s.folderRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return &ConflictError{Message: "folder is not empty"}
	}
	return s.folderRepo.Delete(id)
}

// DuplicateFile creates a new record sharing the source's blob. Name
// collisions in the target folder get a " (copy)" suffix.
func (s *ItemServiceImpl) DuplicateFile(id uint, targetFolderID *uint) (*models.File, error) {
	source, err := s.GetFile(id)
	if err != nil {
		return nil, err
	}
	name, err := s.uniqueFileName(source.Name, targetFolderID)
	if err != nil {
		return nil, err
	}
	copy := &models.File{
		Name:     name,
		Format:   source.Format,
		Size:     source.Size,
		SHA256:   source.SHA256,
		FolderID: targetFolderID,
	}
	if err := s.fileRepo.Create(copy); err != nil {
		return nil, err
	}
	return copy, nil
}

// CopyFolderTree duplicates a folder and everything inside it.
func (s *ItemServiceImpl) CopyFolderTree(id uint, targetParentID *uint) (*models.Folder, error) {
	source, err := s.GetFolder(id)
	if err != nil {
		return nil, err
	}
	if targetParentID != nil {
		descendantTarget, err := s.GetFolder(*targetParentID)
		if err != nil {
			return nil, err
		}
		if *targetParentID == id {
			return nil, &ConflictError{Message: "cannot copy a folder into itself"}
		}
		inside, err := s.isDescendantOf(descendantTarget, id)
		if err != nil {
			return nil, err
		}
		if inside {
			return nil, &ConflictError{Message: "cannot copy a folder into its own descendant"}
		}
	}
	return s.copyFolderRec(source, targetParentID, 0)
}

func (s *ItemServiceImpl) copyFolderRec(source *models.Folder, targetParentID *uint, depth int) (*models.Folder, error) {
	if depth >= maxDepth {
		return nil, &ConflictError{Message: "folder tree too deep"}
	}
	clone := &models.Folder{Name: source.Name, ParentID: targetParentID}
	if err := s.folderRepo.Create(clone); err != nil {
		return nil, err
	}

	files, err := s.fileRepo.FindByFolderID(&source.ID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if _, err := s.DuplicateFile(files[i].ID, &clone.ID); err != nil {
			return nil, err
		}
	}

	subfolders, err := s.folderRepo.FindByParentID(&source.ID)
	if err != nil {
		return nil, err
	}
	for i := range subfolders {
		if _, err := s.copyFolderRec(&subfolders[i], &clone.ID, depth+1); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

func (s *ItemServiceImpl) uniqueFileName(name string, folderID *uint) (string, error) {
	siblings, err := s.fileRepo.FindByFolderID(folderID)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(siblings))
	for _, f := range siblings {
		taken[f.Name] = true
	}
	if !taken[name] {
		return name, nil
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 0; i < 100; i++ {
		candidate := base + " (copy)" + ext
		if i > 0 {
			candidate = fmt.Sprintf("%s (copy %d)%s", base, i+1, ext)
		}
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", &ConflictError{Message: "too many copies of " + name}
}
