package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Stowed/internal/dto"
	"Stowed/internal/services"
)

type ClipboardHandler struct {
	clipboardService services.ClipboardService
}

func NewClipboardHandler(clipboardService services.ClipboardService) *ClipboardHandler {
	return &ClipboardHandler{clipboardService: clipboardService}
}

func (h *ClipboardHandler) Copy(c *fiber.Ctx) error {
	return h.mark(c, dto.ClipboardCopy)
}

func (h *ClipboardHandler) Cut(c *fiber.Ctx) error {
	return h.mark(c, dto.ClipboardCut)
}

func (h *ClipboardHandler) mark(c *fiber.Ctx, operation string) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.clipboardService.Mark(id, c.Params("kind"), operation); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "item placed on clipboard"})
}

func (h *ClipboardHandler) Get(c *fiber.Ctx) error {
	entries, err := h.clipboardService.Entries()
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.ClipboardResponse{Entries: entries})
}

// Paste applies the pending operation into the target folder, or the
// root when no target segment is given.
func (h *ClipboardHandler) Paste(c *fiber.Ctx) error {
	var target *uint
	if raw := c.Params("target"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid target folder"})
		}
		parsed := uint(id)
		target = &parsed
	}
	item, operation, err := h.clipboardService.Paste(target)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.PasteResponse{Item: *item, Operation: operation})
}
