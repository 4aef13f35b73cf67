package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Stowed/internal/dto"
	"Stowed/internal/mapper"
	"Stowed/internal/services"
)

type FileHandler struct {
	itemService  services.ItemService
	shareService services.ShareService
	blobService  services.BlobService
}

func NewFileHandler(itemService services.ItemService, shareService services.ShareService, blobService services.BlobService) *FileHandler {
	return &FileHandler{itemService: itemService, shareService: shareService, blobService: blobService}
}

// ListWithFolders returns the whole collection, folders and files
// merged, under the "files" key.
func (h *FileHandler) ListWithFolders(c *fiber.Ctx) error {
	items, err := h.itemService.ListAll()
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.ItemsResponse{Files: items})
}

func (h *FileHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "query must not be empty"})
	}
	results, err := h.itemService.Search(query)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.SearchResponse{Results: results})
}

func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "file field is required"})
	}

	var folderID *uint
	if raw := c.FormValue("folder_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid folder_id"})
		}
		parsed := uint(id)
		folderID = &parsed
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}
	defer src.Close()

	file, err := h.itemService.SaveUpload(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), folderID, src)
	if err != nil {
		return writeServiceError(c, err)
	}

	item := mapper.FileToItem(file)
	publicURL := fmt.Sprintf("%s/files/%d/download", c.BaseURL(), file.ID)
	return c.Status(http.StatusCreated).JSON(dto.UploadResponse{
		File:      item,
		Message:   "file uploaded",
		PublicURL: publicURL,
	})
}

// Patch handles both rename ({name}) and move ({folder_id}), keyed by
// which field the body carries. folder_id may be an explicit null,
// meaning a move to root, so field presence matters.
func (h *FileHandler) Patch(c *fiber.Ctx) error {
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
		file, err := h.itemService.RenameFile(id, name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto.FileResponse{File: mapper.FileToItem(file), Message: "file renamed"})
	}

	if raw, ok := fields["folder_id"]; ok {
		var target *uint
		if err := json.Unmarshal(raw, &target); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid folder_id"})
		}
		file, err := h.itemService.MoveFile(id, target)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto.FileResponse{File: mapper.FileToItem(file), Message: "file moved"})
	}

	return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "nothing to update"})
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.itemService.DeleteFile(id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "file deleted"})
}

// DownloadURL issues a short-lived signed URL for the file content.
func (h *FileHandler) DownloadURL(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}
	file, err := h.itemService.GetFile(id)
	if err != nil {
		return writeServiceError(c, err)
	}
	ticket, err := h.shareService.IssueTicket(id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.DownloadResponse{
		SignedURL:  fmt.Sprintf("%s/dl/%s", c.BaseURL(), ticket.Token),
		FileName:   file.Name,
		FileSize:   file.Size,
		FileFormat: file.Format,
		ExpiresIn:  services.TicketTTLSeconds(),
	})
}

// Content streams a blob for a valid ticket. No bearer auth: the
// ticket is the grant.
func (h *FileHandler) Content(c *fiber.Ctx) error {
	file, err := h.shareService.RedeemTicket(c.Params("token"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return h.streamBlob(c, file.SHA256, file.Name, file.Format, file.Size)
}

func (h *FileHandler) streamBlob(c *fiber.Ctx, sum, name, format string, size int64) error {
	blob, err := h.blobService.Open(sum)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "file content missing"})
	}
	c.Set(fiber.HeaderContentType, format)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(size, 10))
	return c.SendStream(blob, int(size))
}
