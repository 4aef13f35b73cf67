package services

import (
	"time"

	"github.com/google/uuid"

	"Stowed/internal/dto"
	"Stowed/internal/models"
	"Stowed/internal/repository"
)

// ticketTTL is how long a signed download URL stays valid.
const ticketTTL = 15 * time.Minute

type ShareService interface {
	CreateShare(fileID uint, req dto.ShareRequest) (*models.ShareGrant, error)
	ResolveShare(token string) (*models.ShareGrant, *models.File, error)
	// RecordAccess bumps the access counter after a permitted download.
	RecordAccess(grant *models.ShareGrant) error

	IssueTicket(fileID uint) (*models.DownloadTicket, error)
	RedeemTicket(token string) (*models.File, error)
}

type ShareServiceImpl struct {
	shareRepo   repository.ShareRepository
	itemService ItemService
}

func NewShareService(shareRepo repository.ShareRepository, itemService ItemService) ShareService {
	return &ShareServiceImpl{shareRepo: shareRepo, itemService: itemService}
}

func (s *ShareServiceImpl) CreateShare(fileID uint, req dto.ShareRequest) (*models.ShareGrant, error) {
	if _, err := s.itemService.GetFile(fileID); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = "view"
	}
	if role != "view" && role != "edit" {
		return nil, &ValidationError{Message: "role must be view or edit"}
	}
	grant := &models.ShareGrant{
		FileID:         fileID,
		Token:          uuid.NewString(),
		Role:           role,
		CanDownload:    req.CanDownload,
		CanPreview:     req.CanPreview,
		ExpiresAt:      req.ExpiresAt,
		MaxAccessCount: req.MaxAccessCount,
	}
	if err := s.shareRepo.Create(grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *ShareServiceImpl) ResolveShare(token string) (*models.ShareGrant, *models.File, error) {
	grant, err := s.shareRepo.FindByToken(token)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, &NotFoundError{Message: "share not found"}
		}
		return nil, nil, err
	}
	if grant.Expired(time.Now()) {
		return nil, nil, &ConflictError{Message: "share link has expired"}
	}
	file, err := s.itemService.GetFile(grant.FileID)
	if err != nil {
		return nil, nil, err
	}
	return grant, file, nil
}

func (s *ShareServiceImpl) RecordAccess(grant *models.ShareGrant) error {
	grant.AccessCount++
	return s.shareRepo.Update(grant)
}

func (s *ShareServiceImpl) IssueTicket(fileID uint) (*models.DownloadTicket, error) {
	if _, err := s.itemService.GetFile(fileID); err != nil {
		return nil, err
	}
	ticket := &models.DownloadTicket{
		FileID:    fileID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(ticketTTL),
	}
	if err := s.shareRepo.CreateTicket(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ShareServiceImpl) RedeemTicket(token string) (*models.File, error) {
	ticket, err := s.shareRepo.FindTicket(token)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Message: "download link not found"}
		}
		return nil, err
	}
	if time.Now().After(ticket.ExpiresAt) {
		return nil, &ConflictError{Message: "download link has expired"}
	}
	return s.itemService.GetFile(ticket.FileID)
}

// TicketTTLSeconds is exposed for the download handler's expiresIn
// field.
func TicketTTLSeconds() int64 { return int64(ticketTTL / time.Second) }
