package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"Stowed/internal/dto"
	"Stowed/internal/mapper"
	"Stowed/internal/services"
)

type FolderHandler struct {
	itemService services.ItemService
}

func NewFolderHandler(itemService services.ItemService) *FolderHandler {
	return &FolderHandler{itemService: itemService}
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

func (h *FolderHandler) Create(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	folder, err := h.itemService.CreateFolder(req.Name, req.ParentID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.FolderResponse{
		Folder:  mapper.FolderToItem(folder),
		Message: "folder created",
	})
}

// Patch renames on {name} and moves on {parent_id}, where parent_id
// null means the root.
func (h *FolderHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}

	if raw, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid name"})
		}
		folder, err := h.itemService.RenameFolder(id, name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto.FolderResponse{Folder: mapper.FolderToItem(folder), Message: "folder renamed"})
	}

	if raw, ok := fields["parent_id"]; ok {
		var target *uint
		if err := json.Unmarshal(raw, &target); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid parent_id"})
		}
		folder, err := h.itemService.MoveFolder(id, target)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto.FolderResponse{Folder: mapper.FolderToItem(folder), Message: "folder moved"})
	}

	return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "nothing to update"})
}

func (h *FolderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.itemService.DeleteFolder(id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "folder deleted"})
}
