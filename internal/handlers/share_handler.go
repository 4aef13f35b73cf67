package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"Stowed/internal/dto"
	"Stowed/internal/mapper"
	"Stowed/internal/services"
)

type ShareHandler struct {
	shareService services.ShareService
	blobService  services.BlobService
}

func NewShareHandler(shareService services.ShareService, blobService services.BlobService) *ShareHandler {
	return &ShareHandler{shareService: shareService, blobService: blobService}
}

func (h *ShareHandler) Create(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	var req dto.ShareRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
		}
	}
	grant, err := h.shareService.CreateShare(id, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.ShareResponse{
		ShareableLink: fmt.Sprintf("%s/share/%s", c.BaseURL(), grant.Token),
		Message:       "share link created",
	})
}

// Resolve returns the shared file's metadata and the grant's
// permissions. Each resolve counts against a capped grant.
func (h *ShareHandler) Resolve(c *fiber.Ctx) error {
	grant, file, err := h.shareService.ResolveShare(c.Params("token"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.shareService.RecordAccess(grant); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.ResolveShareResponse{
		File:        mapper.FileToItem(file),
		Permissions: mapper.ShareToPermissions(grant),
	})
}

func (h *ShareHandler) Download(c *fiber.Ctx) error {
	grant, file, err := h.shareService.ResolveShare(c.Params("token"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if !grant.CanDownload {
		return c.Status(http.StatusForbidden).JSON(map[string]interface{}{"error": "downloads are disabled for this link"})
	}
	if err := h.shareService.RecordAccess(grant); err != nil {
		return writeServiceError(c, err)
	}

	blob, err := h.blobService.Open(file.SHA256)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "file content missing"})
	}
	c.Set(fiber.HeaderContentType, file.Format)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.SendStream(blob, int(file.Size))
}
