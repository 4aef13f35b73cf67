package repository

import (
	"time"

	"gorm.io/gorm"

	"Stowed/internal/models"
)

type ShareRepository interface {
	GenericRepository[models.ShareGrant]
	FindByToken(token string) (*models.ShareGrant, error)
	DeleteExpired(now time.Time) (int64, error)

	CreateTicket(ticket *models.DownloadTicket) error
	FindTicket(token string) (*models.DownloadTicket, error)
	DeleteExpiredTickets(now time.Time) (int64, error)
}

type ShareRepositoryImpl struct {
	GenericRepository[models.ShareGrant]
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &ShareRepositoryImpl{
		GenericRepository: NewGenericRepository[models.ShareGrant](db),
		db:                db,
	}
}

func (r *ShareRepositoryImpl) FindByToken(token string) (*models.ShareGrant, error) {
	var grant models.ShareGrant
	err := r.db.Where("token = ?", token).First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// DeleteExpired hard-deletes grants past their expiry time. Grants
// exhausted by access count stay resolvable so the caller can report
// why access was denied.
func (r *ShareRepositoryImpl) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Unscoped().
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Delete(&models.ShareGrant{})
	return res.RowsAffected, res.Error
}

func (r *ShareRepositoryImpl) CreateTicket(ticket *models.DownloadTicket) error {
	return r.db.Create(ticket).Error
}

func (r *ShareRepositoryImpl) FindTicket(token string) (*models.DownloadTicket, error) {
	var ticket models.DownloadTicket
	err := r.db.Where("token = ?", token).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ShareRepositoryImpl) DeleteExpiredTickets(now time.Time) (int64, error) {
	res := r.db.Unscoped().Where("expires_at < ?", now).Delete(&models.DownloadTicket{})
	return res.RowsAffected, res.Error
}
