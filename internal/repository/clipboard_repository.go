package repository

import (
	"gorm.io/gorm"

	"Stowed/internal/models"
)

type ClipboardRepository interface {
	// Replace clears the outstanding set and stores the new entries in
	// one transaction.
	Replace(entries []models.ClipboardEntry) error
	FindAll() ([]models.ClipboardEntry, error)
	Clear() error
}

type ClipboardRepositoryImpl struct {
	db *gorm.DB
}

func NewClipboardRepository(db *gorm.DB) ClipboardRepository {
	return &ClipboardRepositoryImpl{db: db}
}

func (r *ClipboardRepositoryImpl) Replace(entries []models.ClipboardEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.ClipboardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *ClipboardRepositoryImpl) FindAll() ([]models.ClipboardEntry, error) {
	var entries []models.ClipboardEntry
	err := r.db.Order("id").Find(&entries).Error
	return entries, err
}

func (r *ClipboardRepositoryImpl) Clear() error {
	return r.db.Unscoped().Where("1 = 1").Delete(&models.ClipboardEntry{}).Error
}
