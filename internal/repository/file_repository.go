package repository

import (
	"errors"

	"gorm.io/gorm"

	"Stowed/internal/models"
)

type FileRepository interface {
	GenericRepository[models.File]
	FindByFolderID(folderID *uint) ([]models.File, error)
	SearchByName(query string) ([]models.File, error)
	FindDeleted() ([]models.File, error)
	CountBySHA256(sum string) (int64, error)
	HardDelete(file *models.File) error
}

type FileRepositoryImpl struct {
	GenericRepository[models.File]
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &FileRepositoryImpl{
		GenericRepository: NewGenericRepository[models.File](db),
		db:                db,
	}
}

func (r *FileRepositoryImpl) FindByFolderID(folderID *uint) ([]models.File, error) {
	var files []models.File
	query := r.db
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	err := query.Order("id").Find(&files).Error
	return files, err
}

func (r *FileRepositoryImpl) SearchByName(query string) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").Order("id").Find(&files).Error
	return files, err
}

func (r *FileRepositoryImpl) FindDeleted() ([]models.File, error) {
	var files []models.File
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&files).Error
	return files, err
}

// CountBySHA256 counts live records referencing a blob, used before
// removing the blob from disk.
func (r *FileRepositoryImpl) CountBySHA256(sum string) (int64, error) {
	var count int64
	err := r.db.Model(&models.File{}).Where("sha256 = ?", sum).Count(&count).Error
	return count, err
}

func (r *FileRepositoryImpl) HardDelete(file *models.File) error {
	return r.db.Unscoped().Delete(file).Error
}

// IsNotFound normalizes gorm's sentinel for callers outside the
// repository layer.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
