package repository

import (
	"gorm.io/gorm"

	"Stowed/internal/models"
)

type FolderRepository interface {
	GenericRepository[models.Folder]
	FindByParentID(parentID *uint) ([]models.Folder, error)
	FindByNameAndParent(name string, parentID *uint) (*models.Folder, error)
	SearchByName(query string) ([]models.Folder, error)
	CountChildren(folderID uint) (int64, error)
	FindDeleted() ([]models.Folder, error)
	HardDelete(folder *models.Folder) error
}

type FolderRepositoryImpl struct {
	GenericRepository[models.Folder]
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &FolderRepositoryImpl{
		GenericRepository: NewGenericRepository[models.Folder](db),
		db:                db,
	}
}

func (r *FolderRepositoryImpl) FindByParentID(parentID *uint) ([]models.Folder, error) {
	var folders []models.Folder
	query := r.db
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("id").Find(&folders).Error
	return folders, err
}

func (r *FolderRepositoryImpl) FindByNameAndParent(name string, parentID *uint) (*models.Folder, error) {
	var folder models.Folder
	query := r.db.Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.First(&folder).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepositoryImpl) SearchByName(query string) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").Order("id").Find(&folders).Error
	return folders, err
}

// CountChildren counts live files and subfolders inside a folder.
func (r *FolderRepositoryImpl) CountChildren(folderID uint) (int64, error) {
	var files, folders int64
	if err := r.db.Model(&models.File{}).Where("folder_id = ?", folderID).Count(&files).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&models.Folder{}).Where("parent_id = ?", folderID).Count(&folders).Error; err != nil {
		return 0, err
	}
	return files + folders, nil
}

func (r *FolderRepositoryImpl) FindDeleted() ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&folders).Error
	return folders, err
}

func (r *FolderRepositoryImpl) HardDelete(folder *models.Folder) error {
	return r.db.Unscoped().Delete(folder).Error
}
